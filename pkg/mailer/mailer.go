package mailer

import (
	"fmt"

	"github.com/stitchworks/storefront/config"
	"gopkg.in/gomail.v2"
)

// Mailer sends operational notification mail. It is inert when no SMTP
// host is configured, so callers can invoke it unconditionally.
type Mailer struct {
	cfg config.SmtpConfig
}

func New(cfg config.SmtpConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) Enabled() bool {
	return m != nil && m.cfg.Host != "" && m.cfg.NotifyTo != ""
}

// SendContactNotice mails the configured recipient about a new contact
// form submission. Callers treat failures as log-only.
func (m *Mailer) SendContactNotice(name, email, phone, message string) error {
	if !m.Enabled() {
		return nil
	}
	msg := gomail.NewMessage()
	from := m.cfg.From
	if from == "" {
		from = m.cfg.Username
	}
	msg.SetHeader("From", from)
	msg.SetHeader("To", m.cfg.NotifyTo)
	msg.SetHeader("Subject", fmt.Sprintf("New contact message from %s", name))
	msg.SetBody("text/plain", fmt.Sprintf(
		"Name: %s\nEmail: %s\nPhone: %s\n\n%s\n", name, email, phone, message))

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	return d.DialAndSend(msg)
}
