package contact

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

// ErrNotConfigured is returned when SMTP credentials are missing.
var ErrNotConfigured = errors.New("SMTP credentials not configured")

// SMTPSender mails submissions to the site owner through an SMTP relay.
type SMTPSender struct {
	Host string
	Port string
	User string
	Pass string
	To   string

	// sendMail is smtp.SendMail outside tests.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender returns a sender for the given relay and inbox.
func NewSMTPSender(host, port, user, pass, to string) *SMTPSender {
	return &SMTPSender{Host: host, Port: port, User: user, Pass: pass, To: to, sendMail: smtp.SendMail}
}

// Send implements Sender.
func (s *SMTPSender) Send(ctx context.Context, m Message) error {
	if s.User == "" || s.Pass == "" {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	auth := smtp.PlainAuth("", s.User, s.Pass, s.Host)
	if err := s.sendMail(s.Host+":"+s.Port, auth, s.User, []string{s.To}, s.compose(m)); err != nil {
		return fmt.Errorf("send mail via %s: %w", s.Host, err)
	}
	return nil
}

func (s *SMTPSender) compose(m Message) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", oneLine(m.Subject))
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Subject: %s
Message:
%s

---
Sent from your portfolio contact form
`, oneLine(m.Name), oneLine(m.Email), oneLine(m.Subject), m.Message)

	return []byte("To: " + s.To + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + s.User + "\r\n" +
		"Reply-To: " + oneLine(m.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

// oneLine strips line breaks so user input cannot add headers.
func oneLine(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
