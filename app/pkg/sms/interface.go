package sms

import (
	"context"
)

// Message is one outbound SMS.
type Message struct {
	Recipient string `json:"recipient"`
	Sender    string `json:"sender"`
	Body      string `json:"body"`
}

// SendResult is the gateway's acknowledgement of an accepted message.
type SendResult struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
}

type SmsClient interface {
	Send(ctx context.Context, message Message) (SendResult, error)
}
