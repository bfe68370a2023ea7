package entity

import (
	"backend/identity-platform/app/database/constant/profile"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Preferences map[string]interface{}

func (p Preferences) Value() (driver.Value, error) {
	if p == nil {
		return "{}", nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal Preferences: %w", err)
	}
	return string(data), nil
}

func (p *Preferences) Scan(value interface{}) error {
	if value == nil {
		*p = make(Preferences)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Preferences", value)
	}

	if len(bytes) == 0 {
		*p = make(Preferences)
		return nil
	}

	return json.Unmarshal(bytes, p)
}

type UserProfile struct {
	bun.BaseModel `bun:"table:user_profiles,alias:p"`

	ID            uuid.UUID            `bun:"id,pk,type:uuid,default:uuid_generate_v4()"`
	UserID        uuid.UUID            `bun:"user_id,notnull,unique"`
	Bio           *string              `bun:"bio"`
	Location      *string              `bun:"location"`
	Website       *string              `bun:"website"`
	Company       *string              `bun:"company"`
	JobTitle      *string              `bun:"job_title"`
	PrivacyLevel  profile.PrivacyLevel `bun:"privacy_level,notnull,default:'public'"`
	Preferences   Preferences          `bun:"preferences,type:jsonb"`
	EmailVerified bool                 `bun:"email_verified,notnull,default:false"`
	PhoneVerified bool                 `bun:"phone_verified,notnull,default:false"`
	CreatedAt     time.Time            `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt     *time.Time           `bun:"updated_at"`
	DeletedAt     *time.Time           `bun:"deleted_at,soft_delete"`
}

func (p UserProfile) Alias() string {
	return "p"
}
