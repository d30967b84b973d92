package email

import (
	"fmt"
	"net/smtp"
)

// Transport delivers a rendered email to a recipient.
type Transport interface {
	Send(to, subject string, body []byte) error
}

// SMTPTransport sends mail through an SMTP server with PLAIN auth.
type SMTPTransport struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// Send sends a single HTML email.
func (t *SMTPTransport) Send(to, subject string, body []byte) error {
	message := []byte("From: " + t.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-version: 1.0;\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\";\r\n\r\n")
	message = append(message, body...)

	auth := smtp.PlainAuth("", t.Username, t.Password, t.Host)
	err := smtp.SendMail(t.Host+":"+t.Port, auth, t.Username, []string{to}, message)
	if err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}

	return nil
}
