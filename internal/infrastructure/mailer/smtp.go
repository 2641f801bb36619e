// Package mailer delivers job alert digests over SMTP.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"jobcrawler/internal/domain"
	"jobcrawler/internal/ports"
)

// Config carries the SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender sends one HTML digest per user per cycle.
type SMTPSender struct {
	cfg Config
}

var _ ports.AlertSender = (*SMTPSender)(nil)

func NewSMTPSender(cfg Config) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// SendAlert renders the digest for matched and mails it to email.
// Context cancellation is honored before the dial; net/smtp itself does
// not take a context.
func (s *SMTPSender) SendAlert(ctx context.Context, email string, skills []string, matched []domain.ScoredJob) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(matched) == 0 {
		return nil
	}

	subject := fmt.Sprintf("%d new job matches for you", len(matched))
	body := renderDigest(skills, matched)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", email)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{email}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send alert to %s: %w", email, err)
	}
	return nil
}
