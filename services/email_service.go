package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/grk-gaming/tournament-hub/config"
	"github.com/grk-gaming/tournament-hub/models"
)

// EmailService sends operator notifications over SMTP. Failures are
// reported to the caller, who decides whether they are fatal; a lost
// notification never fails the request that triggered it.
type EmailService struct {
	cfg *config.Config
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{cfg: cfg}
}

func (s *EmailService) SendEmail(to []string, subject string, body string) error {
	auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)

	msg := []byte("To: " + to[0] + "\r\n" +
		"From: " + s.cfg.SMTPFrom + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\r\n" +
		"\r\n" +
		body + "\r\n")

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	tlsconfig := &tls.Config{
		ServerName: s.cfg.SMTPHost,
	}

	var client *smtp.Client
	if s.cfg.SMTPPort == 465 {
		// Implicit TLS.
		conn, err := tls.Dial("tcp", addr, tlsconfig)
		if err != nil {
			return fmt.Errorf("smtp tls dial: %w", err)
		}
		defer conn.Close()
		client, err = smtp.NewClient(conn, s.cfg.SMTPHost)
		if err != nil {
			return fmt.Errorf("smtp client: %w", err)
		}
	} else {
		// STARTTLS, usually port 587.
		c, err := smtp.Dial(addr)
		if err != nil {
			return fmt.Errorf("smtp dial: %w", err)
		}
		client = c
		if err = client.StartTLS(tlsconfig); err != nil {
			client.Close()
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}
	defer client.Quit()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	if err := client.Mail(s.cfg.SMTPFrom); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp rcpt to: %w", err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err = w.Write(msg); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("smtp close data: %w", err)
	}

	return nil
}

func (s *EmailService) GenerateEmailBody(templatePath string, data interface{}) (string, error) {
	t, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", templatePath, err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templatePath, err)
	}

	return body.String(), nil
}

// SendRegistrationNotification tells the operator a new player signed up.
func (s *EmailService) SendRegistrationNotification(user *models.User) error {
	subject := "New Player Registration - GRK"
	data := struct {
		Username      string
		Email         string
		Phone         string
		PreferredGame string
	}{
		Username:      user.Username,
		Email:         user.Email,
		Phone:         user.Phone,
		PreferredGame: user.PreferredGame,
	}

	htmlBody, err := s.GenerateEmailBody("templates/emails/registration_notification.html", data)
	if err != nil {
		return fmt.Errorf("failed to generate registration notification body: %w", err)
	}

	return s.SendEmail([]string{s.cfg.RegistrationEmail}, subject, htmlBody)
}

// SendContactMessage forwards a contact form submission to the operator.
func (s *EmailService) SendContactMessage(name, email, subject, message string) error {
	data := struct {
		Name    string
		Email   string
		Subject string
		Message string
	}{
		Name:    name,
		Email:   email,
		Subject: subject,
		Message: message,
	}

	htmlBody, err := s.GenerateEmailBody("templates/emails/contact_message.html", data)
	if err != nil {
		return fmt.Errorf("failed to generate contact message body: %w", err)
	}

	return s.SendEmail([]string{s.cfg.ContactEmail}, "Contact Form: "+subject, htmlBody)
}
