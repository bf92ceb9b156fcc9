package newsletter

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/jtbakery/storefront-backend/pkg/config"
)

// Mailer sends the owner a note about a new subscriber.
type Mailer interface {
	NotifySubscribed(subscriberEmail string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

// NewSMTPMailer builds a mailer from SMTP config, or nil when mail is not
// configured. A nil mailer is valid: subscription still works, only the
// notification is skipped.
func NewSMTPMailer(cfg config.SMTPConfig, notifyTo string) Mailer {
	if !cfg.Configured() || notifyTo == "" {
		return nil
	}
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		to:     notifyTo,
	}
}

func (m *smtpMailer) NotifySubscribed(subscriberEmail string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", "New newsletter subscriber")
	msg.SetBody("text/plain", fmt.Sprintf("Email: %s", subscriberEmail))
	return m.dialer.DialAndSend(msg)
}
