// Package email delivers outbound notification mail over pooled SMTP
// connections.
package email

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"github.com/knadh/smtppool"

	"shopadmin/internal/config"
)

// Sender defines the interface for sending notification emails
type Sender interface {
	SendOTPEmail(to, name, code string, expiryMinutes int) error
}

var otpTemplate = template.Must(template.New("otp").Parse(`
	<h2>Hello {{.Name}},</h2>
	<p>Your one-time verification code is:</p>
	<p style="font-size: 24px; letter-spacing: 4px;"><strong>{{.Code}}</strong></p>
	<p>The code expires in {{.ExpiryMinutes}} minutes.</p>
	<p>If you did not request a code, no further action is required.</p>
`))

// Service implements Sender over a pooled SMTP connection
type Service struct {
	config config.EmailConfig
	pool   *smtppool.Pool
}

// NewService creates an email service with an SMTP connection pool
func NewService(cfg config.EmailConfig) (*Service, error) {
	var auth smtp.Auth
	if cfg.Username != "" || cfg.Password != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	pool, err := smtppool.New(smtppool.Opt{
		Host:            cfg.Host,
		Port:            cfg.Port,
		MaxConns:        cfg.MaxConnections,
		IdleTimeout:     time.Duration(cfg.SendTimeoutSeconds) * time.Second,
		PoolWaitTimeout: time.Duration(cfg.SendTimeoutSeconds) * time.Second,
		TLSConfig:       &tls.Config{ServerName: cfg.Host},
		Auth:            auth,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP pool: %w", err)
	}

	return &Service{config: cfg, pool: pool}, nil
}

// SendOTPEmail renders and sends a one-time-password message
func (s *Service) SendOTPEmail(to, name, code string, expiryMinutes int) error {
	if name == "" {
		name = to
	}

	var body bytes.Buffer
	if err := otpTemplate.Execute(&body, map[string]interface{}{
		"Name":          name,
		"Code":          code,
		"ExpiryMinutes": expiryMinutes,
	}); err != nil {
		return fmt.Errorf("failed to render OTP email: %w", err)
	}

	e := smtppool.Email{
		To:      []string{to},
		From:    s.config.From,
		Subject: "Your verification code",
		HTML:    body.Bytes(),
	}

	if err := s.pool.Send(e); err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}
	return nil
}

// Close shuts down the SMTP connection pool
func (s *Service) Close() {
	s.pool.Close()
}
