package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mailtpl "github.com/oksasatya/go-account-service/pkg/mailer/templates"
)

type sent struct{ to, subject, text, html string }

type fakeSender struct {
	err  error
	sent []sent
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sent{to, subject, text, html})
	return nil
}

func jobBytes(t *testing.T, job EmailJob) []byte {
	t.Helper()
	b, err := json.Marshal(job)
	require.NoError(t, err)
	return b
}

func TestWorker_RendersTemplate(t *testing.T) {
	s := &fakeSender{}
	w := NewWorker(s)

	out, err := w.Handle(context.Background(), jobBytes(t, EmailJob{
		To:       "ann@x.com",
		Template: mailtpl.Welcome,
		Data:     mailtpl.ToMap(mailtpl.EmailData{Name: "Ann", AppName: "Accounts"}),
	}))

	require.NoError(t, err)
	assert.Equal(t, Ack, out)
	require.Len(t, s.sent, 1)
	assert.Equal(t, "ann@x.com", s.sent[0].to)
	assert.Equal(t, "Welcome to Accounts", s.sent[0].subject)
	// recipient fills a missing Email field
	assert.Contains(t, s.sent[0].text, "ann@x.com")
}

func TestWorker_RawContent(t *testing.T) {
	s := &fakeSender{}
	out, err := NewWorker(s).Handle(context.Background(), jobBytes(t, EmailJob{To: "a@x.com", Subject: "Hi", Text: "body"}))

	require.NoError(t, err)
	assert.Equal(t, Ack, out)
	assert.Equal(t, sent{"a@x.com", "Hi", "body", ""}, s.sent[0])
}

func TestWorker_Drops(t *testing.T) {
	w := NewWorker(&fakeSender{})
	cases := map[string][]byte{
		"bad json":         []byte("{"),
		"no recipient":     jobBytes(t, EmailJob{Template: mailtpl.Welcome}),
		"unknown template": jobBytes(t, EmailJob{To: "a@x.com", Template: "nope"}),
		"no content":       jobBytes(t, EmailJob{To: "a@x.com"}),
	}
	for name, body := range cases {
		out, err := w.Handle(context.Background(), body)
		assert.Error(t, err, name)
		assert.Equal(t, Drop, out, name)
	}
}

func TestWorker_RequeuesSendFailure(t *testing.T) {
	w := NewWorker(&fakeSender{err: errors.New("mailgun 503")})
	out, err := w.Handle(context.Background(), jobBytes(t, EmailJob{To: "a@x.com", Subject: "Hi", Text: "x"}))
	assert.Error(t, err)
	assert.Equal(t, Requeue, out)
}
