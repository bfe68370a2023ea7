package repository

import (
	"backend/identity-platform/app/database/constant/user"
	"backend/identity-platform/app/database/entity"
	queryUtil "backend/identity-platform/app/database/repository/query_utils"
	"backend/identity-platform/app/internal/runtime"
	paging "backend/identity-platform/app/pkg/util/paging"
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type UserRepository interface {
	Insert(ctx context.Context, user *entity.User) (*entity.User, error)
	InsertWithProfile(ctx context.Context, user *entity.User, profile *entity.UserProfile) error
	Update(ctx context.Context, user entity.User) (*entity.User, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByIDWithProfile(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByPhoneNumber(ctx context.Context, phoneNumber string) (*entity.User, error)
	FindActiveByUsername(ctx context.Context, username string) (*entity.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByPhoneNumber(ctx context.Context, phoneNumber string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, hashed string) error
	UpdateLastLogin(ctx context.Context, userID uuid.UUID, ip string) error
	UpdateStatus(ctx context.Context, userID uuid.UUID, status user.Status) error
	CountTotal(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status user.Status) (int, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)
	Search(ctx context.Context, filter UserSearchFilter, page paging.Page) ([]entity.User, int, error)
}

// UserSearchFilter narrows the admin user listing. Nil fields are ignored.
type UserSearchFilter struct {
	Status *user.Status `mapstructure:"status,omitempty"`
	Gender *user.Gender `mapstructure:"gender,omitempty"`
}

type DefaultUserRepository struct {
	res runtime.Resource
}

func NewUserRepository(res runtime.Resource) UserRepository {
	return &DefaultUserRepository{res: res}
}

func (r DefaultUserRepository) Insert(ctx context.Context, user *entity.User) (*entity.User, error) {
	err := r.res.DB.
		NewInsert().
		Model(user).
		Returning("*").
		Scan(ctx, user)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// InsertWithProfile creates the user and its profile in one transaction, so a
// user row never exists without its profile.
func (r DefaultUserRepository) InsertWithProfile(ctx context.Context, user *entity.User, profile *entity.UserProfile) error {
	return r.res.DB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := tx.NewInsert().
			Model(user).
			Returning("*").
			Scan(ctx, user); err != nil {
			return err
		}

		profile.UserID = user.ID
		return tx.NewInsert().
			Model(profile).
			Returning("*").
			Scan(ctx, profile)
	})
}

func (r DefaultUserRepository) Update(ctx context.Context, user entity.User) (*entity.User, error) {
	now := time.Now()
	user.UpdatedAt = &now

	var u entity.User
	err := r.res.DB.
		NewUpdate().
		Model(&user).
		WherePK().
		Where("deleted_at IS NULL").
		Returning("*").
		Scan(ctx, &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r DefaultUserRepository) DeleteByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var u entity.User
	err := r.res.DB.
		NewUpdate().
		Model(&u).
		Set("deleted_at = ?", time.Now()).
		Set("status = ?", user.Deleted).
		Where("id = ?", id).
		Where("deleted_at IS NULL").
		Returning("*").
		Scan(ctx, &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r DefaultUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	u := new(entity.User)
	err := r.res.DB.
		ReplicaNewSelect().
		Model(u).
		Where("u.id = ?", id).
		Where("u.deleted_at IS NULL").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r DefaultUserRepository) FindByIDWithProfile(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	u := new(entity.User)
	err := r.res.DB.
		ReplicaNewSelect().
		Model(u).
		Relation("Profile").
		Where("u.id = ?", id).
		Where("u.deleted_at IS NULL").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r DefaultUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	u := new(entity.User)
	err := r.res.DB.
		ReplicaNewSelect().
		Model(u).
		Where("username = ?", username).
		Where("deleted_at IS NULL").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r DefaultUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	u := new(entity.User)
	err := r.res.DB.
		ReplicaNewSelect().
		Model(u).
		Where("email = ?", email).
		Where("deleted_at IS NULL").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r DefaultUserRepository) FindByPhoneNumber(ctx context.Context, phoneNumber string) (*entity.User, error) {
	u := new(entity.User)
	err := r.res.DB.
		ReplicaNewSelect().
		Model(u).
		Where("phone_number = ?", phoneNumber).
		Where("deleted_at IS NULL").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r DefaultUserRepository) FindActiveByUsername(ctx context.Context, username string) (*entity.User, error) {
	u := new(entity.User)
	err := r.res.DB.
		ReplicaNewSelect().
		Model(u).
		Where("username = ?", username).
		Where("status = ?", user.Active).
		Where("deleted_at IS NULL").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r DefaultUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.res.DB.
		ReplicaNewSelect().
		Model((*entity.User)(nil)).
		Where("username = ?", username).
		Where("deleted_at IS NULL").
		Exists(ctx)
}

func (r DefaultUserRepository) ExistsByPhoneNumber(ctx context.Context, phoneNumber string) (bool, error) {
	return r.res.DB.
		ReplicaNewSelect().
		Model((*entity.User)(nil)).
		Where("phone_number = ?", phoneNumber).
		Where("deleted_at IS NULL").
		Exists(ctx)
}

func (r DefaultUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.res.DB.
		ReplicaNewSelect().
		Model((*entity.User)(nil)).
		Where("email = ?", email).
		Where("deleted_at IS NULL").
		Exists(ctx)
}

func (r DefaultUserRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, hashed string) error {
	_, err := r.res.DB.
		NewUpdate().
		Model((*entity.User)(nil)).
		Set("password = ?", hashed).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", userID).
		Where("deleted_at IS NULL").
		Exec(ctx)
	return err
}

func (r DefaultUserRepository) UpdateLastLogin(ctx context.Context, userID uuid.UUID, ip string) error {
	_, err := r.res.DB.
		NewUpdate().
		Model((*entity.User)(nil)).
		Set("last_login_at = ?", time.Now()).
		Set("last_login_ip = ?", ip).
		Where("id = ?", userID).
		Where("deleted_at IS NULL").
		Exec(ctx)
	return err
}

func (r DefaultUserRepository) UpdateStatus(ctx context.Context, userID uuid.UUID, status user.Status) error {
	_, err := r.res.DB.
		NewUpdate().
		Model((*entity.User)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", userID).
		Where("deleted_at IS NULL").
		Exec(ctx)
	return err
}

func (r DefaultUserRepository) CountTotal(ctx context.Context) (int, error) {
	return r.res.DB.
		ReplicaNewSelect().
		Model((*entity.User)(nil)).
		Where("deleted_at IS NULL").
		Count(ctx)
}

func (r DefaultUserRepository) CountByStatus(ctx context.Context, status user.Status) (int, error) {
	return r.res.DB.
		ReplicaNewSelect().
		Model((*entity.User)(nil)).
		Where("status = ?", status).
		Where("deleted_at IS NULL").
		Count(ctx)
}

func (r DefaultUserRepository) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	return r.res.DB.
		ReplicaNewSelect().
		Model((*entity.User)(nil)).
		Where("created_at >= ?", since).
		Where("deleted_at IS NULL").
		Count(ctx)
}

func (r DefaultUserRepository) Search(ctx context.Context, filter UserSearchFilter, page paging.Page) ([]entity.User, int, error) {
	return queryUtil.FindManyEntityWithCount[entity.User](ctx, r.res.DB.ReplicaConn(), filter, nil, page, "Profile")
}
