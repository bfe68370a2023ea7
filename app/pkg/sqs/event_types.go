package sqs

// EventType represents the types of audit events published via SQS
type EventType string

const (
	UserRegistered  EventType = "user.registered"
	UserLogin       EventType = "user.login"
	PasswordChanged EventType = "password.changed"
	PhoneVerified   EventType = "user.phone_verified"
	EmailVerified   EventType = "user.email_verified"
	UserDeleted     EventType = "user.deleted"
)

// String returns the string representation of the event type
func (e EventType) String() string {
	return string(e)
}

// IsValid checks if the event type is valid
func (e EventType) IsValid() bool {
	switch e {
	case UserRegistered, UserLogin, PasswordChanged, PhoneVerified, EmailVerified, UserDeleted:
		return true
	default:
		return false
	}
}

// GetAllEventTypes returns all valid event types
func GetAllEventTypes() []EventType {
	return []EventType{
		UserRegistered,
		UserLogin,
		PasswordChanged,
		PhoneVerified,
		EmailVerified,
		UserDeleted,
	}
}
