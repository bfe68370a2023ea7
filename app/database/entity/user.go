package entity

import (
	"backend/identity-platform/app/database/constant/user"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID          uuid.UUID   `bun:"id,pk,type:uuid,default:uuid_generate_v4()"`
	Username    string      `bun:"username,notnull,unique"`
	Email       *string     `bun:"email"`
	PhoneNumber *string     `bun:"phone_number,unique"`
	Password    string      `bun:"password,notnull"`
	Nickname    string      `bun:"nickname,notnull"`
	Avatar      *string     `bun:"avatar"`
	Gender      user.Gender `bun:"gender,notnull,default:'unknown'"`
	Birthday    *time.Time  `bun:"birthday"`
	Status      user.Status `bun:"status,notnull,default:'active'"`
	LastLoginIP *string     `bun:"last_login_ip"`
	LastLoginAt *time.Time  `bun:"last_login_at"`
	CreatedAt   time.Time   `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt   *time.Time  `bun:"updated_at"`
	DeletedAt   *time.Time  `bun:"deleted_at,soft_delete"`

	Profile *UserProfile `bun:"rel:has-one,join:id=user_id"`
}

func (u User) Alias() string {
	return "u"
}
