package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// EmailSender sends plain-text mail through an SMTP relay. Auth is used only
// when a user is configured.
type EmailSender struct {
	host string
	addr string
	from string
	auth smtp.Auth
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewEmailSender(host, port, user, password, from string) *EmailSender {
	host = strings.TrimSpace(host)
	port = strings.TrimSpace(port)
	from = strings.TrimSpace(from)
	if from == "" {
		from = user
	}

	s := &EmailSender{
		host: host,
		addr: fmt.Sprintf("%s:%s", host, port),
		from: from,
		send: smtp.SendMail,
	}
	if user != "" {
		s.auth = smtp.PlainAuth("", user, password, host)
	}
	return s
}

func (s *EmailSender) Channel() string { return ChannelEmail }

func (s *EmailSender) Send(ctx context.Context, to, subject, body string) error {
	if s.host == "" || s.from == "" {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	to = strings.TrimSpace(to)
	if to == "" || strings.ContainsAny(to, "\r\n") || strings.ContainsAny(subject, "\r\n") {
		return fmt.Errorf("email: invalid recipient or subject")
	}
	msg := buildMessage(s.from, to, subject, body)
	return s.send(s.addr, s.auth, s.from, []string{to}, []byte(msg))
}

func buildMessage(from, to, subject, body string) string {
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		from,
		to,
		subject,
		strings.ReplaceAll(body, "\n", "\r\n"),
	)
}
