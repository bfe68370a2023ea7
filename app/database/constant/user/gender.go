package user

import (
	"database/sql/driver"
	"fmt"
)

// Gender represents the declared gender of a user
type Gender string

const (
	Male    Gender = "male"
	Female  Gender = "female"
	Unknown Gender = "unknown"
)

// Scan implements the sql.Scanner interface for database scanning
func (g *Gender) Scan(value interface{}) error {
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("cannot scan Gender from %T", value)
	}
	*g = Gender(str)
	return nil
}

// Value implements the driver.Valuer interface for database storage
func (g Gender) Value() (driver.Value, error) {
	return string(g), nil
}
