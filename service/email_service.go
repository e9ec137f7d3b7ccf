package service

import (
	"fmt"
	"log"

	"skycast.app/errors"
	"skycast.app/providers"
)

// EmailService handles email operations using a provider
type EmailService struct {
	provider providers.EmailProvider
}

// NewEmailService creates a new email service with the specified provider
func NewEmailService(provider providers.EmailProvider) *EmailService {
	return &EmailService{
		provider: provider,
	}
}

// SendPasswordResetEmail sends the one-time reset code to an account holder
func (s *EmailService) SendPasswordResetEmail(email, name, otp string) error {
	log.Printf("[DEBUG] SendPasswordResetEmail called for: %s\n", email)

	if email == "" {
		return errors.NewValidationError("email cannot be empty")
	}
	if otp == "" {
		return errors.NewValidationError("reset code cannot be empty")
	}
	if name == "" {
		name = "there"
	}

	subject := "Your SkyCast password reset code"
	htmlContent := fmt.Sprintf(
		"<p>Hi %s,</p>"+
			"<p>Your password reset code is:</p>"+
			"<h2>%s</h2>"+
			"<p>The code expires in 10 minutes. If you did not request a reset, you can ignore this email.</p>",
		name, otp,
	)

	err := s.provider.SendEmail(email, subject, htmlContent, true)
	if err != nil {
		log.Printf("[ERROR] Failed to send password reset email: %v\n", err)
		return err
	}
	return nil
}

// SendWelcomeEmail greets a freshly registered account
func (s *EmailService) SendWelcomeEmail(email, name string) error {
	log.Printf("[DEBUG] SendWelcomeEmail called for: %s\n", email)

	if email == "" {
		return errors.NewValidationError("email cannot be empty")
	}
	if name == "" {
		name = "there"
	}

	subject := "Welcome to SkyCast"
	htmlContent := fmt.Sprintf(
		"<p>Hi %s,</p>"+
			"<p>Your SkyCast account is ready. Add your favorite cities and your dashboard will keep their forecasts one click away.</p>",
		name,
	)

	return s.provider.SendEmail(email, subject, htmlContent, true)
}
