package mail

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridMailer delivers account emails through the SendGrid API.
type SendGridMailer struct {
	client *sendgrid.Client
	from   *sgmail.Email
}

// NewSendGridMailer constructs a mailer with the given API key and sender
// address.
func NewSendGridMailer(apiKey string, fromAddress string) *SendGridMailer {
	return &SendGridMailer{
		client: sendgrid.NewSendClient(apiKey),
		from:   sgmail.NewEmail("Taskkeeper", fromAddress),
	}
}

func (m *SendGridMailer) send(ctx context.Context, email, name, subject, body string) error {
	to := sgmail.NewEmail(name, email)
	message := sgmail.NewSingleEmailPlainText(m.from, subject, to, body)

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid error: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected message: status %d", resp.StatusCode)
	}
	return nil
}

func (m *SendGridMailer) SendWelcome(ctx context.Context, email string, name string) error {
	body := fmt.Sprintf("Welcome to the Task App %s. Let me know how you get along with the app", name)
	return m.send(ctx, email, name, "Thanks for joining in!", body)
}

func (m *SendGridMailer) SendGoodbye(ctx context.Context, email string, name string) error {
	body := fmt.Sprintf("Goodbye, %s. I hope to see you back sometime soon", name)
	return m.send(ctx, email, name, "Sorry to see you go!", body)
}
