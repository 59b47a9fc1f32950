package contact

import (
	"net/url"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/rushikulya/marketkit/internal/apperrs"
)

// Notifier delivers a drafted message. Implementations cannot confirm that
// the message reached anyone; the handoff treats a nil error as "handed
// over".
type Notifier interface {
	Notify(msg Message) error
}

// MailtoNotifier renders the message as a mailto URL and passes it to the
// platform opener, which is expected to raise the user's default mail
// composition surface. A nil opener logs the URL instead, for headless use.
type MailtoNotifier struct {
	Open func(rawURL string) error
}

func (n MailtoNotifier) Notify(msg Message) error {
	raw := "mailto:" + msg.To +
		"?subject=" + escape(msg.Subject) +
		"&body=" + escape(msg.Body)
	if n.Open == nil {
		zap.L().Info("mail draft ready", zap.String("to", msg.To), zap.String("subject", msg.Subject))
		return nil
	}
	return n.Open(raw)
}

// mailto URLs want %20 for spaces, not the + that query escaping produces.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// SMTPNotifier sends the draft through a real SMTP relay. Swapping it in for
// MailtoNotifier changes delivery without touching any validation logic.
type SMTPNotifier struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (n SMTPNotifier) Notify(msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	d := gomail.NewDialer(n.Host, n.Port, n.Username, n.Password)
	if err := d.DialAndSend(m); err != nil {
		return apperrs.Network("Could not reach the mail relay.", err)
	}
	return nil
}
