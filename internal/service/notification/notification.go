package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/pkg/logger"
)

const welcomeSubject = "Welcome to the platform!"

type Message struct {
	ToName  string
	ToEmail string
	Subject string
	Text    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type Notifier struct {
	log    logger.Log
	sender Sender
}

func NewNotifier(log logger.Log, sender Sender) *Notifier {
	return &Notifier{log: log, sender: sender}
}

func WelcomeMessage(email, username string) Message {
	return Message{
		ToName:  username,
		ToEmail: email,
		Subject: welcomeSubject,
		Text:    fmt.Sprintf("Hello, %s! Thank you for registering.", username),
	}
}

// SendWelcome greets a newly registered user. Users without an email address
// are skipped.
func (n *Notifier) SendWelcome(ctx context.Context, email, username string) error {
	if strings.TrimSpace(email) == "" {
		n.log.Debug("welcome mail skipped, no email address", "username", username)
		return nil
	}
	if err := n.sender.Send(ctx, WelcomeMessage(email, username)); err != nil {
		return fmt.Errorf("send welcome mail: %w", err)
	}
	n.log.Info("welcome mail sent", "username", username)
	return nil
}
