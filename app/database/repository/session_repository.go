package repository

import (
	"backend/identity-platform/app/database/entity"
	"backend/identity-platform/app/internal/runtime"
	"context"
	"time"

	"github.com/google/uuid"
)

type SessionRepository interface {
	Insert(ctx context.Context, session *entity.Session) (*entity.Session, error)
	FindByTokenHash(ctx context.Context, tokenHash string) (*entity.Session, error)
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeByUserID(ctx context.Context, userID uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Session, error)
	DeleteExpired(ctx context.Context, before time.Time) (int, error)
}

type DefaultSessionRepository struct {
	res runtime.Resource
}

func NewSessionRepository(res runtime.Resource) SessionRepository {
	return &DefaultSessionRepository{res: res}
}

func (r DefaultSessionRepository) Insert(ctx context.Context, session *entity.Session) (*entity.Session, error) {
	// Revoke existing token if duplicated
	_ = r.RevokeByTokenHash(ctx, session.TokenHash)
	// Soft-revoke existing sessions for the same user
	_ = r.RevokeByUserID(ctx, session.UserID)

	err := r.res.DB.NewInsert().Model(session).Returning("*").Scan(ctx, session)
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (r DefaultSessionRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*entity.Session, error) {
	var session entity.Session
	err := r.res.DB.ReplicaNewSelect().Model(&session).Where("token_hash = ?", tokenHash).Where("deleted_at IS NULL").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r DefaultSessionRepository) RevokeByTokenHash(ctx context.Context, tokenHash string) error {
	_, err := r.res.DB.NewUpdate().Model((*entity.Session)(nil)).Set("revoked = ?", true).Set("deleted_at = ?", time.Now()).Where("token_hash = ?", tokenHash).Where("deleted_at IS NULL").Exec(ctx)
	return err
}

func (r DefaultSessionRepository) RevokeByUserID(ctx context.Context, userID uuid.UUID) error {
	_, err := r.res.DB.NewUpdate().Model((*entity.Session)(nil)).Set("revoked = ?", true).Set("deleted_at = ?", time.Now()).Where("user_id = ?", userID).Where("deleted_at IS NULL").Exec(ctx)
	return err
}

func (r DefaultSessionRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Session, error) {
	var sessions []entity.Session
	err := r.res.DB.NewUpdate().Model(&sessions).Set("deleted_at = ?", time.Now()).Where("user_id = ?", userID).Where("deleted_at IS NULL").Returning("*").Scan(ctx, &sessions)
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r DefaultSessionRepository) DeleteExpired(ctx context.Context, before time.Time) (int, error) {
	res, err := r.res.DB.NewUpdate().Model((*entity.Session)(nil)).Set("deleted_at = ?", time.Now()).Where("expires_at < ?", before).Where("deleted_at IS NULL").Exec(ctx)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}
