package profile

import (
	"database/sql/driver"
	"fmt"
)

// PrivacyLevel controls who may view a user's profile
type PrivacyLevel string

const (
	// Public profiles are visible to anyone
	Public PrivacyLevel = "public"
	// Friends profiles are visible to confirmed friends only
	Friends PrivacyLevel = "friends"
	// Private profiles are visible to the owner only
	Private PrivacyLevel = "private"
)

// Scan implements the sql.Scanner interface for database scanning
func (p *PrivacyLevel) Scan(value interface{}) error {
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("cannot scan PrivacyLevel from %T", value)
	}
	*p = PrivacyLevel(str)
	return nil
}

// Value implements the driver.Valuer interface for database storage
func (p PrivacyLevel) Value() (driver.Value, error) {
	return string(p), nil
}
