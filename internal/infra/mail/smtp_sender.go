// Package mail delivers transactional email over SMTP.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"passport/config"
	"passport/internal/domain/service"
	"passport/internal/errors"
)

// smtpSender implements service.MailSender on top of net/smtp.
type smtpSender struct {
	cfg    *config.SMTPConfig
	logger *slog.Logger
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender is the constructor for smtpSender. When no SMTP block is
// configured it falls back to a sender that only logs, so local development
// works without a mail relay.
func NewSMTPSender(cfg *config.Config, logger *slog.Logger) service.MailSender {
	if cfg.SMTP == nil {
		return &nopSender{logger: logger}
	}

	return &smtpSender{
		cfg:    cfg.SMTP,
		logger: logger,
		send:   smtp.SendMail,
	}
}

func (s *smtpSender) Send(ctx context.Context, kind service.EmailKind, recipient string, data map[string]string) error {
	subject, body, err := renderEmail(s.cfg.BaseURL, kind, data)
	if err != nil {
		return err
	}

	msg := buildMessage(s.cfg.From, recipient, subject, body)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	if err := s.send(addr, auth, s.cfg.From, []string{recipient}, msg); err != nil {
		return errors.Wrap(err, "failed to send email")
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "email sent",
		slog.String("recipient", recipient),
		slog.String("subject", subject),
	)

	return nil
}

// renderEmail resolves the subject and body for a given email kind.
func renderEmail(baseURL string, kind service.EmailKind, data map[string]string) (string, string, error) {
	switch kind {
	case service.EmailAccountVerification:
		link := fmt.Sprintf("%s/api/accounts/email-verification?token=%s", baseURL, data["token"])

		return "Verify your email address",
			fmt.Sprintf("Hi %s,\r\n\r\nPlease confirm your email address by opening the link below:\r\n\r\n%s\r\n",
				data["name"], link),
			nil
	default:
		return "", "", errors.Errorf("unknown email kind: %d", kind)
	}
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)

	return []byte(b.String())
}

// nopSender logs outbound mail instead of delivering it.
type nopSender struct {
	logger *slog.Logger
}

func (s *nopSender) Send(ctx context.Context, kind service.EmailKind, recipient string, data map[string]string) error {
	s.logger.LogAttrs(ctx, slog.LevelInfo, "smtp not configured, skipping email",
		slog.String("recipient", recipient),
		slog.Int("kind", int(kind)),
	)

	return nil
}
