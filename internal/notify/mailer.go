package notify

import (
	"fmt"
	"net/smtp"
)

// Mailer sends OTP emails over authenticated SMTP.
type Mailer struct {
	host string
	port string
	user string
	pass string
	from string
}

// NewMailer creates a mailer. Returns nil when SMTP is not configured,
// in which case callers fall back to the development OTP path.
func NewMailer(host, port, user, pass, from string) *Mailer {
	if host == "" || user == "" {
		return nil
	}
	return &Mailer{host: host, port: port, user: user, pass: pass, from: from}
}

// SendOTP delivers a verification code to the given address.
func (m *Mailer) SendOTP(email, code string) error {
	if m == nil {
		return fmt.Errorf("mailer not configured")
	}
	subject := "Email Verification OTP"
	body := fmt.Sprintf(
		"Your OTP for email verification is: %s\r\nThis OTP is valid for 10 minutes.\r\nIf you didn't request this OTP, please ignore this email.\r\n",
		code,
	)
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.from, email, subject, body)

	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	addr := m.host + ":" + m.port
	if err := smtp.SendMail(addr, auth, m.user, []string{email}, []byte(msg)); err != nil {
		return fmt.Errorf("send otp email: %w", err)
	}
	return nil
}
