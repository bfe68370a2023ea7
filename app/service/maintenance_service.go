package service

import (
	"backend/identity-platform/app/database/repository"
	"backend/identity-platform/app/internal/config"
	"backend/identity-platform/app/internal/runtime"
	"backend/identity-platform/app/pkg/locker"
	"backend/identity-platform/app/pkg/worker"
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

const (
	sessionPurgeInterval  = 1 * time.Hour
	deliveryPurgeInterval = 24 * time.Hour
	deliveryRetention     = 7 * 24 * time.Hour
)

// MaintenanceService runs periodic cleanup of expired sessions and
// finished delivery jobs.
type MaintenanceService struct {
	scheduler    worker.Scheduler
	sessionRepo  repository.SessionRepository
	deliveryRepo repository.DeliveryRepository
	logger       *zap.Logger
}

func NewMaintenanceService(res runtime.Resource, workerConfig config.WorkerConfig) (*MaintenanceService, error) {
	logger := res.Logger.With(zap.String("component", "maintenance_service"))

	lock, err := locker.NewLocker(res.Redis.GetUniversalClient())
	if err != nil {
		return nil, err
	}

	scheduler, err := worker.NewScheduler(workerConfig, logger, lock)
	if err != nil {
		return nil, err
	}

	return &MaintenanceService{
		scheduler:    scheduler,
		sessionRepo:  repository.NewSessionRepository(res),
		deliveryRepo: repository.NewDeliveryRepository(res),
		logger:       logger,
	}, nil
}

// Start registers the cleanup jobs and runs the scheduler until the
// context is cancelled.
func (ms *MaintenanceService) Start(ctx context.Context) error {
	if _, err := ms.scheduler.NewJob(
		gocron.DurationJob(sessionPurgeInterval),
		gocron.NewTask(ms.purgeExpiredSessions),
	); err != nil {
		return err
	}

	if _, err := ms.scheduler.NewJob(
		gocron.DurationJob(deliveryPurgeInterval),
		gocron.NewTask(ms.purgeFinishedDeliveries),
	); err != nil {
		return err
	}

	ms.scheduler.Start()
	ms.logger.Info("Maintenance service started")

	<-ctx.Done()
	ms.logger.Info("Shutting down maintenance service")

	return ms.scheduler.Shutdown()
}

func (ms *MaintenanceService) Stop(ctx context.Context) error {
	return ms.scheduler.Shutdown()
}

func (ms *MaintenanceService) purgeExpiredSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := ms.sessionRepo.DeleteExpired(ctx, time.Now())
	if err != nil {
		ms.logger.Error("Failed to purge expired sessions", zap.Error(err))
		return
	}
	if deleted > 0 {
		ms.logger.Info("Purged expired sessions", zap.Int("count", deleted))
	}
}

func (ms *MaintenanceService) purgeFinishedDeliveries() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := ms.deliveryRepo.DeleteFinishedBefore(ctx, time.Now().Add(-deliveryRetention))
	if err != nil {
		ms.logger.Error("Failed to purge finished delivery jobs", zap.Error(err))
		return
	}
	if deleted > 0 {
		ms.logger.Info("Purged finished delivery jobs", zap.Int("count", deleted))
	}
}
