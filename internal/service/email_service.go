package service

import (
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"
)

// EmailSender отправляет транзакционные письма пользователям
type EmailSender interface {
	SendWelcome(toEmail, fullName string) error
}

// ResendEmailService реализует EmailSender через Resend API
type ResendEmailService struct {
	client *resend.Client
	from   string
}

// NewResendEmailService создает новый сервис отправки писем
func NewResendEmailService(apiKey, from string) (*ResendEmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Resend API key is required for ResendEmailService")
	}
	if from == "" {
		return nil, fmt.Errorf("sender address is required for ResendEmailService")
	}
	return &ResendEmailService{
		client: resend.NewClient(apiKey),
		from:   from,
	}, nil
}

// SendWelcome отправляет приветственное письмо новому пользователю
func (s *ResendEmailService) SendWelcome(toEmail, fullName string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{toEmail},
		Subject: "Welcome to the Campus Time Machine",
		Html: fmt.Sprintf(
			"<p>Hi %s,</p><p>Your account is ready. Scan the campus markers, answer the quizzes and unlock the history of your school.</p>",
			fullName,
		),
	}

	sent, err := s.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send welcome email to %s: %w", toEmail, err)
	}
	log.Printf("[EmailService] Приветственное письмо отправлено: to=%s id=%s", toEmail, sent.Id)
	return nil
}

// NoopEmailService — заглушка, когда отправка писем выключена в конфигурации
type NoopEmailService struct{}

// NewNoopEmailService создает сервис-заглушку
func NewNoopEmailService() *NoopEmailService {
	return &NoopEmailService{}
}

// SendWelcome ничего не отправляет
func (s *NoopEmailService) SendWelcome(toEmail, fullName string) error {
	return nil
}
