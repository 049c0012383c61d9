// Package mailer provides functionality to send emails over SMTP. It backs
// reminder notifications and password-reset delivery. Deployments without an
// SMTP server use the no-op implementation.
package mailer

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// Mailer defines the interface for sending a single email.
type Mailer interface {
	Send(recipient, subject, body string) error
}

// SMTPConfig contains options for creating a new SMTPMailer.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Sender   string
}

// SMTPMailer sends mail through a configured SMTP server.
type SMTPMailer struct {
	cfg SMTPConfig
}

// NewSMTPMailer creates a new SMTPMailer. Host and Sender must be set;
// Username/Password are optional for servers that accept unauthenticated
// relay (local dev).
func NewSMTPMailer(cfg SMTPConfig) (Mailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host cannot be empty")
	}
	if cfg.Sender == "" {
		return nil, fmt.Errorf("SMTP sender address cannot be empty")
	}
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	return &SMTPMailer{cfg: cfg}, nil
}

// Send delivers a single email. The Content-Type header is inferred from the
// body: anything containing basic HTML tags is sent as text/html.
func (m *SMTPMailer) Send(recipient, subject, body string) error {
	if recipient == "" {
		return fmt.Errorf("recipient email address cannot be empty")
	}
	if subject == "" {
		return fmt.Errorf("email subject cannot be empty")
	}

	contentType := "text/plain; charset=UTF-8"
	if strings.Contains(strings.ToLower(body), "<html>") || strings.Contains(strings.ToLower(body), "<p>") {
		contentType = "text/html; charset=UTF-8"
	}

	message := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: %s\r\n"+
		"Subject: %s\r\n"+
		"Content-Type: %s\r\n"+
		"\r\n"+
		"%s\r\n", recipient, m.cfg.Sender, subject, contentType, body))

	addr := m.cfg.Host + ":" + m.cfg.Port

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.Sender, []string{recipient}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// Noop is a Mailer that logs instead of sending. Used when SMTP is not
// configured.
type Noop struct{}

// NewNoop creates a no-op mailer.
func NewNoop() Mailer { return Noop{} }

func (Noop) Send(recipient, subject, body string) error {
	log.Printf("Mailer disabled: dropping email to %s (subject: %s)", recipient, subject)
	return nil
}
