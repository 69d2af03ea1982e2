package services

import (
	"context"
	"fmt"
	"net/smtp"
)

// SMTPChannel sends transactional email through a plain SMTP endpoint.
type SMTPChannel struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func NewSMTPChannel(host, port, username, password, from string) *SMTPChannel {
	return &SMTPChannel{host: host, port: port, username: username, password: password, from: from}
}

func (s *SMTPChannel) Send(ctx context.Context, recipient string, message Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		s.from, recipient, message.Subject, message.Body)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	if err := smtp.SendMail(s.host+":"+s.port, auth, s.from, []string{recipient}, []byte(body)); err != nil {
		return fmt.Errorf("smtp send to %s failed: %w", recipient, err)
	}
	return nil
}
