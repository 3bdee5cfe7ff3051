package utils

import (
	"log"
	"net/smtp"
)

// Mailer is the notification sink. Sends are best-effort: order and account
// creation must never fail because the relay is down.
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	host string
	port string
	from string
	auth smtp.Auth
}

// NewSMTPMailer builds a mailer against an SMTP relay. Pass an empty password
// for relays without auth (e.g. a local MailHog).
func NewSMTPMailer(host, port, from, password string) Mailer {
	var auth smtp.Auth
	if password != "" {
		auth = smtp.PlainAuth("", from, password, host)
	}
	return &smtpMailer{host: host, port: port, from: from, auth: auth}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	msg := "From: " + m.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n" +
		body
	return smtp.SendMail(m.host+":"+m.port, m.auth, m.from, []string{to}, []byte(msg))
}

// SendAsync fires the mail off on its own goroutine and only logs failures.
func SendAsync(m Mailer, to, subject, body string) {
	if m == nil || to == "" {
		return
	}
	go func() {
		if err := m.Send(to, subject, body); err != nil {
			log.Printf("❌ Failed to send mail to %s: %v", to, err)
		}
	}()
}
