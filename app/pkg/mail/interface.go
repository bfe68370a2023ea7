package mail

import (
	"context"
)

// Message is one outbound email.
type Message struct {
	Recipient string `json:"recipient"`
	Sender    string `json:"sender"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// SendResult is the provider's acknowledgement of an accepted message.
type SendResult struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
}

type MailClient interface {
	Send(ctx context.Context, message Message) (SendResult, error)
}
