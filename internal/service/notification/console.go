package notification

import (
	"context"

	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/pkg/logger"
)

// ConsoleSender writes messages to the log instead of delivering them.
type ConsoleSender struct {
	log  logger.Log
	from string
}

var _ Sender = (*ConsoleSender)(nil)

func NewConsoleSender(log logger.Log, from string) *ConsoleSender {
	return &ConsoleSender{log: log, from: from}
}

func (s *ConsoleSender) Send(_ context.Context, msg Message) error {
	s.log.Info("email",
		"from", s.from,
		"to", msg.ToEmail,
		"subject", msg.Subject,
		"body", msg.Text,
	)
	return nil
}
