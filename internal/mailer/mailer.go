package mailer

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/jordan-wright/email"
)

// Config holds SMTP connection and sender details.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	Sender   string
}

// SMTPMailer sends plain-text mail through an SMTP relay. It satisfies
// services.Mailer.
type SMTPMailer struct {
	cfg Config
}

// NewSMTPMailer creates a new SMTPMailer.
func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send delivers a single message to the given recipient.
func (m *SMTPMailer) Send(to, subject, body string) error {
	e := email.NewEmail()
	e.From = m.cfg.Sender
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := e.Send(addr, auth); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	log.Printf("Email sent to %s: %s", to, subject)
	return nil
}
