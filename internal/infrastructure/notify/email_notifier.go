package notify

import (
	"context"
	"strings"

	"github.com/oksasatya/go-account-service/internal/application"
	"github.com/oksasatya/go-account-service/pkg/mailer"
	mailtpl "github.com/oksasatya/go-account-service/pkg/mailer/templates"
)

// Publisher is satisfied by helpers.RabbitQueue.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// EmailNotifier turns account events into email jobs for the worker queue.
type EmailNotifier struct {
	pub         Publisher
	appName     string
	companyName string
	supportURL  string
}

func NewEmailNotifier(pub Publisher, appName, companyName, supportURL string) *EmailNotifier {
	return &EmailNotifier{pub: pub, appName: appName, companyName: companyName, supportURL: supportURL}
}

var templateFor = map[application.EventType]string{
	application.EventRegistered:     mailtpl.Welcome,
	application.EventProfileUpdated: mailtpl.ProfileUpdated,
	application.EventAccountDeleted: mailtpl.AccountDeleted,
}

func (n *EmailNotifier) Notify(ctx context.Context, ev application.AccountEvent) error {
	tpl, ok := templateFor[ev.Type]
	if !ok || ev.Identity.Email == "" {
		return nil
	}
	data := mailtpl.EmailData{
		Name:        ev.Identity.Name,
		Email:       ev.Identity.Email,
		AppName:     n.appName,
		CompanyName: n.companyName,
		SupportURL:  n.supportURL,
		Changes:     strings.Join(ev.Changes, ", "),
		Time:        ev.At.UTC().Format("02 January 2006, 15:04 MST"),
	}
	job := mailer.EmailJob{To: ev.Identity.Email, Template: tpl, Data: mailtpl.ToMap(data)}
	return n.pub.PublishJSON(ctx, job)
}

var _ application.Notifier = (*EmailNotifier)(nil)
