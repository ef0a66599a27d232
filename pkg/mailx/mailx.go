package mailx

import (
	"context"
	"errors"
	"strings"
)

// Message is a single HTML email
type Message struct {
	To      string
	Subject string
	HTML    string
}

func (m Message) Validate() error {
	if strings.TrimSpace(m.To) == "" {
		return errors.New("mailx: recipient is required")
	}
	if strings.TrimSpace(m.Subject) == "" {
		return errors.New("mailx: subject is required")
	}
	return nil
}

// Mailer delivers messages; delivery failures are returned to the caller
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
