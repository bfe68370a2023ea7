package user

import (
	"database/sql/driver"
	"fmt"
)

// Status represents the status of a user account
type Status string

const (
	// Active indicates the account can authenticate and use the API
	Active Status = "active"
	// Inactive indicates the account has been disabled by an operator
	Inactive Status = "inactive"
	// Deleted indicates the account has been removed and must never authenticate
	Deleted Status = "deleted"
)

// Scan implements the sql.Scanner interface for database scanning
func (s *Status) Scan(value interface{}) error {
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("cannot scan UserStatus from %T", value)
	}
	*s = Status(str)
	return nil
}

// Value implements the driver.Valuer interface for database storage
func (s Status) Value() (driver.Value, error) {
	return string(s), nil
}
