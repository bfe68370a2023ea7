package repository

import (
	"backend/identity-platform/app/database/constant/delivery"
	"backend/identity-platform/app/database/entity"
	"backend/identity-platform/app/internal/runtime"
	"context"
	"time"

	"github.com/uptrace/bun"
)

type DeliveryRepository interface {
	Create(ctx context.Context, job *entity.DeliveryJob) error
	GetByID(ctx context.Context, id string) (*entity.DeliveryJob, error)
	UpdateToProcessing(ctx context.Context, id string, startedAt time.Time) error
	UpdateToSent(ctx context.Context, id string, completedAt time.Time) error
	UpdateToFailed(ctx context.Context, id string, errorMsg string) error
	UpdateToRetrying(ctx context.Context, id string, errorMsg string) error
	UpdateToPending(ctx context.Context, id string) error
	GetPendingJobs(ctx context.Context, limit int) ([]*entity.DeliveryJob, error)
	GetRetryableJobs(ctx context.Context, beforeTime time.Time, limit int) ([]*entity.DeliveryJob, error)
	DeleteFinishedBefore(ctx context.Context, before time.Time) (int, error)
}

type deliveryRepository struct {
	res runtime.Resource
}

func NewDeliveryRepository(res runtime.Resource) DeliveryRepository {
	return &deliveryRepository{res: res}
}

func (r *deliveryRepository) Create(ctx context.Context, job *entity.DeliveryJob) error {
	_, err := r.res.DB.NewInsert().Model(job).Exec(ctx)
	return err
}

func (r *deliveryRepository) GetByID(ctx context.Context, id string) (*entity.DeliveryJob, error) {
	job := &entity.DeliveryJob{}
	err := r.res.DB.NewSelect().Model(job).Where("id = ?", id).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (r *deliveryRepository) UpdateToProcessing(ctx context.Context, id string, startedAt time.Time) error {
	_, err := r.res.DB.NewUpdate().
		Model((*entity.DeliveryJob)(nil)).
		Set("status = ?", delivery.Processing).
		Set("started_at = ?", startedAt).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func (r *deliveryRepository) UpdateToSent(ctx context.Context, id string, completedAt time.Time) error {
	_, err := r.res.DB.NewUpdate().
		Model((*entity.DeliveryJob)(nil)).
		Set("status = ?", delivery.Sent).
		Set("completed_at = ?", completedAt).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func (r *deliveryRepository) UpdateToFailed(ctx context.Context, id string, errorMsg string) error {
	update := r.res.DB.NewUpdate().
		Model((*entity.DeliveryJob)(nil)).
		Set("status = ?", delivery.Failed).
		Set("attempts = attempts + 1").
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id)

	if errorMsg != "" {
		update = update.Set("error = ?", errorMsg)
	}

	_, err := update.Exec(ctx)
	return err
}

func (r *deliveryRepository) UpdateToRetrying(ctx context.Context, id string, errorMsg string) error {
	update := r.res.DB.NewUpdate().
		Model((*entity.DeliveryJob)(nil)).
		Set("status = ?", delivery.Retrying).
		Set("attempts = attempts + 1").
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id)

	if errorMsg != "" {
		update = update.Set("error = ?", errorMsg)
	}

	_, err := update.Exec(ctx)
	return err
}

func (r *deliveryRepository) UpdateToPending(ctx context.Context, id string) error {
	_, err := r.res.DB.NewUpdate().
		Model((*entity.DeliveryJob)(nil)).
		Set("status = ?", delivery.Pending).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func (r *deliveryRepository) GetPendingJobs(ctx context.Context, limit int) ([]*entity.DeliveryJob, error) {
	var jobs []*entity.DeliveryJob
	err := r.res.DB.NewSelect().
		Model(&jobs).
		Where("status = ?", delivery.Pending).
		Order("created_at ASC").
		Limit(limit).
		Scan(ctx)
	return jobs, err
}

func (r *deliveryRepository) GetRetryableJobs(ctx context.Context, beforeTime time.Time, limit int) ([]*entity.DeliveryJob, error) {
	var jobs []*entity.DeliveryJob
	err := r.res.DB.NewSelect().
		Model(&jobs).
		Where("status = ?", delivery.Failed).
		Where("attempts < max_attempts").
		Where("updated_at < ?", beforeTime).
		Order("updated_at ASC").
		Limit(limit).
		Scan(ctx)
	return jobs, err
}

func (r *deliveryRepository) DeleteFinishedBefore(ctx context.Context, before time.Time) (int, error) {
	result, err := r.res.DB.NewDelete().
		Model((*entity.DeliveryJob)(nil)).
		Where("status IN (?)", bun.In([]delivery.Status{delivery.Sent, delivery.Failed})).
		Where("updated_at < ?", before).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}
