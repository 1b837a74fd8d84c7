package email

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
)

const (
	DefaultHost    = "smtp.example.com"
	DefaultPort    = 587
	DefaultFrom    = "no-reply@medappointments.local"
	DefaultSubject = "Medical appointment notification"
)

type Config struct {
	Host     string
	Port     int
	From     string
	Username string
	Password string
	Subject  string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Sender delivers plain text mail over SMTP.
type Sender struct {
	addr    string
	from    string
	subject string
	auth    smtp.Auth
	send    sendFunc
}

func NewSender(cfg Config) *Sender {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = DefaultHost
	}
	port := cfg.Port
	if port <= 0 {
		port = DefaultPort
	}
	from := strings.TrimSpace(cfg.From)
	if from == "" {
		from = DefaultFrom
	}
	subject := cfg.Subject
	if subject == "" {
		subject = DefaultSubject
	}

	s := &Sender{
		addr:    net.JoinHostPort(host, strconv.Itoa(port)),
		from:    from,
		subject: subject,
		send:    smtp.SendMail,
	}
	if cfg.Username != "" {
		s.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, host)
	}
	return s
}

func (s *Sender) Addr() string {
	return s.addr
}

func (s *Sender) Send(ctx context.Context, recipient, message string) error {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return errors.New("email: recipient is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := buildMessage(s.from, recipient, s.subject, message)
	if err := s.send(s.addr, s.auth, s.from, []string{recipient}, []byte(msg)); err != nil {
		return fmt.Errorf("email: send to %s via %s: %w", recipient, s.addr, err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) string {
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		from,
		to,
		subject,
		body,
	)
}
