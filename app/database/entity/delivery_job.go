package entity

import (
	"backend/identity-platform/app/database/constant/delivery"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// DeliveryJob is one attempt to deliver a verification code to a user over
// sms or email. The code itself lives in redis under CodeKey and expires
// there; the row records delivery state only.
type DeliveryJob struct {
	bun.BaseModel `bun:"table:delivery_jobs,alias:d"`

	ID          uuid.UUID        `bun:"id,pk,type:uuid,default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID        `bun:"user_id,notnull" json:"user_id"`
	Channel     delivery.Channel `bun:"channel,notnull" json:"channel"`
	Recipient   string           `bun:"recipient,notnull" json:"recipient"`
	CodeKey     string           `bun:"code_key,notnull" json:"code_key"`
	Attempts    int              `bun:"attempts,notnull,default:0" json:"attempts"`
	MaxAttempts int              `bun:"max_attempts,notnull,default:3" json:"max_attempts"`
	Status      delivery.Status  `bun:"status,notnull,default:'pending'" json:"status"`
	Error       string           `bun:"error" json:"error,omitempty"`
	CreatedAt   time.Time        `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   *time.Time       `bun:"updated_at" json:"updated_at"`
	StartedAt   *time.Time       `bun:"started_at,nullzero" json:"started_at,omitempty"`
	CompletedAt *time.Time       `bun:"completed_at,nullzero" json:"completed_at,omitempty"`
}

func (d DeliveryJob) Alias() string {
	return "d"
}
