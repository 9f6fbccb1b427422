package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	mailtpl "github.com/oksasatya/go-account-service/pkg/mailer/templates"
)

// Outcome tells the consumer what to do with a delivery.
type Outcome int

const (
	Ack     Outcome = iota // sent
	Requeue                // transient send failure
	Drop                   // payload can never be sent
)

// Sender delivers one rendered message.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

var errNoRecipient = errors.New("email job has no recipient")

// Worker turns queued EmailJobs into sent emails.
type Worker struct {
	Sender Sender
}

func NewWorker(s Sender) *Worker { return &Worker{Sender: s} }

// Handle processes one raw queue message.
func (w *Worker) Handle(ctx context.Context, body []byte) (Outcome, error) {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return Drop, fmt.Errorf("decode job: %w", err)
	}
	subject, text, html, err := prepare(&job)
	if err != nil {
		return Drop, err
	}
	if err := w.Sender.Send(ctx, job.To, subject, text, html); err != nil {
		return Requeue, fmt.Errorf("send to %s: %w", job.To, err)
	}
	return Ack, nil
}

func prepare(job *EmailJob) (subject, text, html string, err error) {
	job.To = strings.TrimSpace(job.To)
	if job.To == "" {
		return "", "", "", errNoRecipient
	}
	if job.Template == "" {
		if job.Subject == "" || (job.Text == "" && job.HTML == "") {
			return "", "", "", fmt.Errorf("email job for %s has neither template nor content", job.To)
		}
		return job.Subject, job.Text, job.HTML, nil
	}

	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
	subject, text, html, err = mailtpl.Render(strings.ToLower(job.Template), job.Data)
	if err != nil {
		return "", "", "", fmt.Errorf("render %s: %w", job.Template, err)
	}
	return subject, text, html, nil
}
