package repository

import (
	"backend/identity-platform/app/database/entity"
	"backend/identity-platform/app/internal/runtime"
	"context"
	"time"

	"github.com/google/uuid"
)

type ProfileRepository interface {
	Insert(ctx context.Context, profile *entity.UserProfile) (*entity.UserProfile, error)
	Update(ctx context.Context, profile entity.UserProfile) (*entity.UserProfile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserProfile, error)
	UpdateEmailVerified(ctx context.Context, userID uuid.UUID, verified bool) error
	UpdatePhoneVerified(ctx context.Context, userID uuid.UUID, verified bool) error
}

type DefaultProfileRepository struct {
	res runtime.Resource
}

func NewProfileRepository(res runtime.Resource) ProfileRepository {
	return &DefaultProfileRepository{res: res}
}

func (r DefaultProfileRepository) Insert(ctx context.Context, profile *entity.UserProfile) (*entity.UserProfile, error) {
	err := r.res.DB.
		NewInsert().
		Model(profile).
		Returning("*").
		Scan(ctx, profile)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (r DefaultProfileRepository) Update(ctx context.Context, profile entity.UserProfile) (*entity.UserProfile, error) {
	now := time.Now()
	profile.UpdatedAt = &now

	var p entity.UserProfile
	err := r.res.DB.
		NewUpdate().
		Model(&profile).
		WherePK().
		Where("deleted_at IS NULL").
		Returning("*").
		Scan(ctx, &p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r DefaultProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserProfile, error) {
	p := new(entity.UserProfile)
	err := r.res.DB.
		ReplicaNewSelect().
		Model(p).
		Where("user_id = ?", userID).
		Where("deleted_at IS NULL").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r DefaultProfileRepository) UpdateEmailVerified(ctx context.Context, userID uuid.UUID, verified bool) error {
	_, err := r.res.DB.
		NewUpdate().
		Model((*entity.UserProfile)(nil)).
		Set("email_verified = ?", verified).
		Set("updated_at = ?", time.Now()).
		Where("user_id = ?", userID).
		Where("deleted_at IS NULL").
		Exec(ctx)
	return err
}

func (r DefaultProfileRepository) UpdatePhoneVerified(ctx context.Context, userID uuid.UUID, verified bool) error {
	_, err := r.res.DB.
		NewUpdate().
		Model((*entity.UserProfile)(nil)).
		Set("phone_verified = ?", verified).
		Set("updated_at = ?", time.Now()).
		Where("user_id = ?", userID).
		Where("deleted_at IS NULL").
		Exec(ctx)
	return err
}
