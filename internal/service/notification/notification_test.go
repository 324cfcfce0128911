package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/pkg/logger"

	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	sent []Message
	err  error
}

func (r *recordingSender) Send(_ context.Context, msg Message) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func TestSendWelcome(t *testing.T) {
	sender := &recordingSender{}
	n := NewNotifier(logger.Discard(), sender)

	require.NoError(t, n.SendWelcome(context.Background(), "ann@example.com", "ann"))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "ann@example.com", sender.sent[0].ToEmail)
	assert.Equal(t, welcomeSubject, sender.sent[0].Subject)
	assert.Equal(t, "Hello, ann! Thank you for registering.", sender.sent[0].Text)
}

func TestSendWelcomeWithoutEmail(t *testing.T) {
	sender := &recordingSender{}
	n := NewNotifier(logger.Discard(), sender)

	require.NoError(t, n.SendWelcome(context.Background(), " ", "ann"))
	assert.Empty(t, sender.sent)
}

func TestSendWelcomeFailure(t *testing.T) {
	boom := errors.New("smtp down")
	n := NewNotifier(logger.Discard(), &recordingSender{err: boom})

	assert.ErrorIs(t, n.SendWelcome(context.Background(), "ann@example.com", "ann"), boom)
}

func TestSendGridPayload(t *testing.T) {
	s := NewSendGridSender("key", "Courses", "noreply@example.com")
	body := sgmail.GetRequestBody(s.prepare(WelcomeMessage("ann@example.com", "ann")))

	var payload struct {
		From struct {
			Email string `json:"email"`
		} `json:"from"`
		Personalizations []struct {
			To []struct {
				Email string `json:"email"`
			} `json:"to"`
			Subject string `json:"subject"`
		} `json:"personalizations"`
		Content []struct {
			Type  string `json:"type"`
			Value string `json:"value"`
		} `json:"content"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "noreply@example.com", payload.From.Email)
	require.Len(t, payload.Personalizations, 1)
	assert.Equal(t, "ann@example.com", payload.Personalizations[0].To[0].Email)
	assert.Equal(t, welcomeSubject, payload.Personalizations[0].Subject)
	require.Len(t, payload.Content, 1)
	assert.Equal(t, "text/plain", payload.Content[0].Type)
}
