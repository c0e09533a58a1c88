package notification

import (
	"context"

	"medagenda/config"

	"gopkg.in/gomail.v2"
)

// SMTPSender delivers email over SMTP.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSenderFromConfig builds an SMTPSender from AppConfig, or a nil
// EmailSender when no SMTP host is configured, so the notification service
// degrades to logging.
func NewSMTPSenderFromConfig() EmailSender {
	cfg := config.AppConfig
	if cfg.SMTPHost == "" {
		return nil
	}
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.SMTPFrom,
	}
}

// SendEmail delivers a single plain-text message. gomail dials per send,
// which is acceptable at clinic volumes; delivery errors surface to the
// caller, who treats them as best-effort.
func (s *SMTPSender) SendEmail(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return s.dialer.DialAndSend(m)
}
