package models

// SendEmailRequest is the body of POST /send-email. It is never persisted.
type SendEmailRequest struct {
	Email   string `json:"email" binding:"required"`
	Message string `json:"message" binding:"required"`
}
