// Package email sends console notification mail over SMTP. Bodies are
// authored in markdown and rendered to sanitized HTML.
package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/carmen-hq/carmen/internal/shared/services/markdown"
)

// Service is the outbound mail contract used by the application layer.
type Service interface {
	SendInviteEmail(to, displayName, username, tempPassword string) error
	SendPasswordChangedEmail(to, displayName string) error
}

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	ConsoleURL  string
}

type SMTPEmailService struct {
	config   SMTPConfig
	dialer   *gomail.Dialer
	renderer markdown.Service
}

func NewSMTPEmailService(config SMTPConfig) *SMTPEmailService {
	return &SMTPEmailService{
		config:   config,
		dialer:   gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
		renderer: markdown.NewService(),
	}
}

func (s *SMTPEmailService) SendInviteEmail(to, displayName, username, tempPassword string) error {
	subject := "Your Carmen Console Account"
	body := fmt.Sprintf(`## Welcome to Carmen, %s

An administrator has created a console account for you.

- **Sign-in page:** %s
- **Username:** %s
- **Temporary password:** %s

Please sign in and change your password right away.

If you were not expecting this account, contact your platform administrator.`,
		displayName, s.config.ConsoleURL, username, tempPassword)

	return s.sendMarkdown(to, subject, body)
}

func (s *SMTPEmailService) SendPasswordChangedEmail(to, displayName string) error {
	subject := "Password Changed"
	body := fmt.Sprintf(`## Password Changed

Hello %s,

Your console password has been changed.

If you did not make this change, contact your platform administrator immediately.`,
		displayName)

	return s.sendMarkdown(to, subject, body)
}

func (s *SMTPEmailService) sendMarkdown(to, subject, markdownBody string) error {
	htmlBody, err := s.renderer.ToHTMLSanitized(markdownBody)
	if err != nil {
		return fmt.Errorf("failed to render email body: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.config.FromAddress, s.config.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", markdownBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// NoopEmailService is used when email delivery is disabled in configuration.
type NoopEmailService struct{}

func NewNoopEmailService() *NoopEmailService {
	return &NoopEmailService{}
}

func (s *NoopEmailService) SendInviteEmail(to, displayName, username, tempPassword string) error {
	return nil
}

func (s *NoopEmailService) SendPasswordChangedEmail(to, displayName string) error {
	return nil
}
