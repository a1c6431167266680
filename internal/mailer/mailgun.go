package mailer

import (
	"context"

	"github.com/mailgun/mailgun-go/v4"
)

// Every message this service sends is a reminder notification, so the
// subject line is fixed.
const subject = "Event reminder"

// MailgunMailer sends through the Mailgun messages API.
type MailgunMailer struct {
	mg     *mailgun.MailgunImpl
	sender string
}

// NewMailgunMailer creates a Mailgun client for the given sending domain.
// The sender is the fixed From address used for every message.
func NewMailgunMailer(domain, apiKey, sender string) *MailgunMailer {
	return &MailgunMailer{
		mg:     mailgun.NewMailgun(domain, apiKey),
		sender: sender,
	}
}

// SetAPIBase points the client at a different API endpoint. Tests use it
// to target mailgun-go's mock server.
func (m *MailgunMailer) SetAPIBase(url string) {
	m.mg.SetAPIBase(url)
}

func (m *MailgunMailer) Send(ctx context.Context, to, text string) (*Response, error) {
	msg := m.mg.NewMessage(m.sender, subject, text, to)
	resp, id, err := m.mg.Send(ctx, msg)
	if err != nil {
		return nil, err
	}
	return &Response{ID: id, Message: resp}, nil
}
