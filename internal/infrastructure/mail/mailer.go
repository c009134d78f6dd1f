package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/smartwaste/smartwaste-backend/internal/domain/ports"
	"github.com/smartwaste/smartwaste-backend/internal/infrastructure/config"
)

const resetSubject = "Reset your password"

var resetTemplate = template.Must(template.New("reset").Parse(
	`<p>Click <a href="{{.URL}}">here</a> to reset your password. This link is valid for 1 hour.</p>`,
))

// New escolhe o mailer: SMTP quando SMTP_HOST está definido, senão apenas log
func New(cfg config.SMTPConfig, log ports.Logger) ports.Mailer {
	if cfg.Host == "" {
		log.Warn("SMTP_HOST not set, password reset emails will only be logged")
		return NewLogMailer(log)
	}
	return NewSMTPMailer(cfg)
}

// SMTPMailer envia emails por SMTP com STARTTLS quando o servidor oferece
type SMTPMailer struct {
	addr string
	host string
	from string
	auth smtp.Auth
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer cria um mailer SMTP
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	var auth smtp.Auth
	if cfg.User != "" {
		auth = smtp.PlainAuth("", cfg.User, cfg.Password, cfg.Host)
	}
	return &SMTPMailer{
		addr: net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		host: cfg.Host,
		from: cfg.From,
		auth: auth,
		send: smtp.SendMail,
	}
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := buildResetMessage(m.from, to, resetURL)
	if err != nil {
		return err
	}

	if err := m.send(m.addr, m.auth, envelopeAddress(m.from), []string{to}, msg); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}
	return nil
}

func buildResetMessage(from, to, resetURL string) ([]byte, error) {
	var body bytes.Buffer
	if err := resetTemplate.Execute(&body, struct{ URL string }{URL: resetURL}); err != nil {
		return nil, err
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", resetSubject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())
	return msg.Bytes(), nil
}

// envelopeAddress extrai o endereço de `"Nome" <addr>`
func envelopeAddress(from string) string {
	if start := strings.LastIndex(from, "<"); start >= 0 {
		if end := strings.LastIndex(from, ">"); end > start {
			return from[start+1 : end]
		}
	}
	return from
}

// LogMailer registra o link em vez de enviar; usado em desenvolvimento
type LogMailer struct {
	log ports.Logger
}

// NewLogMailer cria um LogMailer
func NewLogMailer(log ports.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	m.log.Info("password reset email", "to", to, "reset_url", resetURL)
	return nil
}
