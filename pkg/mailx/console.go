package mailx

import (
	"context"

	"github.com/0Omaaar/iRecruitApp/pkg/logx"
)

// ConsoleMailer logs messages instead of sending them, for development
type ConsoleMailer struct{}

func NewConsoleMailer() *ConsoleMailer {
	return &ConsoleMailer{}
}

func (ConsoleMailer) Send(_ context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	logx.Info("📧 mail", "to", msg.To, "subject", msg.Subject, "bytes", len(msg.HTML))
	return nil
}
