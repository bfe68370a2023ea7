package sqs

import "time"

// SqsMessage represents the base structure for all SQS messages
type SqsMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// AuditPayload is the payload carried by every audit event.
type AuditPayload struct {
	UserID     string            `json:"user_id"`
	Username   string            `json:"username,omitempty"`
	IPAddress  string            `json:"ip_address,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
	Detail     map[string]string `json:"detail,omitempty"`
}
