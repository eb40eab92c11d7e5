package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/evcraddock/visitor-log/internal/visitor"
)

// SMTPConfig holds SMTP connection settings.
type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

// IsConfigured returns true if SMTP settings are present.
func (c SMTPConfig) IsConfigured() bool {
	return c.Host != "" && c.From != ""
}

// SMTPNotifier sends check-in notifications over SMTP.
// Supports both port 465 (implicit TLS) and port 587 (STARTTLS).
type SMTPNotifier struct {
	cfg   SMTPConfig
	admin string
}

// NewSMTPNotifier creates an SMTP notifier addressing the admin recipient.
func NewSMTPNotifier(cfg SMTPConfig, admin string) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, admin: admin}
}

// Send formats and delivers the notification for one visitor.
func (n *SMTPNotifier) Send(ctx context.Context, v *visitor.Visitor) error {
	if !n.cfg.IsConfigured() {
		return &NotifyError{Cause: ErrNotConfigured}
	}

	msg := buildMessage(n.cfg.From, n.admin, Subject(v), FormatMessage(v))
	if err := n.send(ctx, msg); err != nil {
		return &NotifyError{Cause: err}
	}
	return nil
}

// send dials the server under the caller's deadline, upgrades to TLS as
// the port dictates, authenticates when a username is set, and submits
// the message.
func (n *SMTPNotifier) send(ctx context.Context, msg []byte) (err error) {
	addr := n.cfg.Host + ":" + n.cfg.Port

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dialing %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return fmt.Errorf("setting deadline: %w", err)
		}
	}

	// Port 465 is SMTPS: the whole session is TLS from the first byte.
	if n.cfg.Port == "465" {
		conn = tls.Client(conn, &tls.Config{ServerName: n.cfg.Host})
	}

	c, err := smtp.NewClient(conn, n.cfg.Host)
	if err != nil {
		return fmt.Errorf("creating SMTP client: %w", err)
	}
	defer func() {
		if quitErr := c.Quit(); quitErr != nil && err == nil {
			err = fmt.Errorf("quit: %w", quitErr)
		}
	}()

	if n.cfg.Port != "465" {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(&tls.Config{ServerName: n.cfg.Host}); err != nil {
				return fmt.Errorf("starttls: %w", err)
			}
		}
	}

	if n.cfg.User != "" {
		auth := smtp.PlainAuth("", n.cfg.User, n.cfg.Pass, n.cfg.Host)
		if err := c.Auth(auth); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}

	if err := c.Mail(n.cfg.From); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := c.Rcpt(n.admin); err != nil {
		return fmt.Errorf("rcpt to %s: %w", n.admin, err)
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close data: %w", err)
	}

	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", to))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)
	return []byte(sb.String())
}
