package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) SendProjectInvitation(ctx context.Context, toEmail, projectName, inviterName, link, message string) error {
	subject := fmt.Sprintf("Invitation to join %s", projectName)

	plainText := fmt.Sprintf("Hello,\n\n%s has invited you to join the project: %s.\n", inviterName, projectName)
	if message != "" {
		plainText += fmt.Sprintf("\n%q\n", message)
	}
	plainText += fmt.Sprintf("\nOpen the link below to respond:\n\n%s\n\nThis invitation expires in 7 days.\n\nBest regards,\nThe ProjectHub Team", link)

	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>You're invited to %s</h2>
				<p><strong>%s</strong> has invited you to join the project <strong>%s</strong>.</p>`, projectName, inviterName, projectName)
	if message != "" {
		htmlContent += fmt.Sprintf(`<blockquote>%s</blockquote>`, message)
	}
	htmlContent += fmt.Sprintf(`
				<p><a href="%s">Respond to invitation</a></p>
				<p>This invitation expires in 7 days.</p>
			</body>
		</html>
	`, link)

	return s.send(toEmail, subject, plainText, htmlContent)
}

func (s *emailService) SendInvitationReminder(ctx context.Context, toEmail, projectName, link string) error {
	subject := fmt.Sprintf("Reminder: your invitation to %s expires soon", projectName)
	plainText := fmt.Sprintf("Hello,\n\nYour invitation to join the project %s expires within 24 hours.\n\nRespond here:\n\n%s\n\nBest regards,\nThe ProjectHub Team", projectName, link)
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<p>Your invitation to join <strong>%s</strong> expires within 24 hours.</p>
				<p><a href="%s">Respond to invitation</a></p>
			</body>
		</html>
	`, projectName, link)

	return s.send(toEmail, subject, plainText, htmlContent)
}

func (s *emailService) send(to, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)

	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
