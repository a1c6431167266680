// Package mailer provides the outbound email port and the Mailgun adapter.
package mailer

import "context"

// Response is the provider's answer to a successful dispatch.
type Response struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Mailer dispatches one message synchronously. A failed dispatch is not
// retried; the error is surfaced to the caller.
type Mailer interface {
	Send(ctx context.Context, to, text string) (*Response, error)
}
