package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"os"
	"strings"
)

// sendMail can be replaced in tests.
var sendMail = smtp.SendMail

// Mailer delivers notifications over SMTP.
type Mailer struct {
	Addr    string // host:port of the mail relay
	From    string
	ReplyTo string
	To      []string
}

// Notify sends the message as a plain-text mail to all recipients.
// Authentication is taken from PROMOTE_SMTP_USERNAME / PROMOTE_SMTP_PASSWORD
// when set; otherwise the relay is used unauthenticated.
func (m *Mailer) Notify(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if user := os.Getenv("PROMOTE_SMTP_USERNAME"); user != "" {
		host := m.Addr
		if i := strings.IndexByte(host, ':'); i >= 0 {
			host = host[:i]
		}
		auth = smtp.PlainAuth("", user, os.Getenv("PROMOTE_SMTP_PASSWORD"), host)
	}

	if err := sendMail(m.Addr, auth, m.From, m.To, m.format(msg)); err != nil {
		return fmt.Errorf("failed to send notification mail: %w", err)
	}

	return nil
}

// format renders the full RFC 5322 message.
func (m *Mailer) format(msg Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(m.To, ", "))
	if m.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", m.ReplyTo)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject())
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body())
	b.WriteString("\r\n")
	return []byte(b.String())
}
