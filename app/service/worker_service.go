package service

import (
	"backend/identity-platform/app/database/repository"
	"backend/identity-platform/app/internal/config"
	"backend/identity-platform/app/internal/runtime"
	"backend/identity-platform/app/pkg/mail"
	"backend/identity-platform/app/pkg/queue"
	"backend/identity-platform/app/pkg/sms"
	"backend/identity-platform/app/pkg/verification"
	"backend/identity-platform/app/pkg/worker"
	"backend/identity-platform/app/pkg/worker/handlers"
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// WorkerService manages the delivery worker pool and background processes
type WorkerService struct {
	workerPool   worker.Pool
	deliveryRepo repository.DeliveryRepository
	queue        queue.Queue
	logger       *zap.Logger
	workerConfig config.WorkerConfig
}

// NewWorkerService creates a new worker service with all necessary components
func NewWorkerService(res runtime.Resource, workerConfig config.WorkerConfig) *WorkerService {
	logger := res.Logger.With(zap.String("component", "worker_service"))

	deliveryRepo := repository.NewDeliveryRepository(res)

	redisQueue := queue.NewRedisQueue(res.Redis.GetUniversalClient(), logger)

	verifier := verification.NewVerifier(res.Config.VerificationConfig, res.Redis)
	smsClient := sms.NewSmsClient(res.HttpClient, res.Config.SmsConfig, logger)
	mailClient := mail.NewMailClient(res.HttpClient, res.Config.MailConfig, logger)

	handlerRegistry := worker.NewDeliveryHandlerRegistry(logger)
	handlerRegistry.Register(handlers.NewSmsDeliveryHandler(verifier, smsClient, logger))
	handlerRegistry.Register(handlers.NewEmailDeliveryHandler(verifier, mailClient, logger))

	workerPool := worker.NewWorkerPool(
		workerConfig.PoolSize,
		redisQueue,
		deliveryRepo,
		handlerRegistry,
		logger,
	)

	return &WorkerService{
		workerPool:   workerPool,
		deliveryRepo: deliveryRepo,
		queue:        redisQueue,
		logger:       logger,
		workerConfig: workerConfig,
	}
}

// Start starts all worker processes
func (ws *WorkerService) Start(ctx context.Context) error {
	ws.logger.Info("Starting worker service", zap.Int("pool_size", ws.workerConfig.PoolSize))

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := ws.workerPool.Start(ctx); err != nil {
			ws.logger.Error("Failed to start worker pool", zap.Error(err))
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		ws.runRetryScheduler(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		ws.runHealthMonitor(ctx)
	}()

	ws.logger.Info("Worker service started successfully")

	<-ctx.Done()
	ws.logger.Info("Shutting down worker service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := ws.workerPool.Stop(shutdownCtx); err != nil {
		ws.logger.Error("Failed to stop worker pool gracefully", zap.Error(err))
		return err
	}

	wg.Wait()
	ws.logger.Info("Worker service stopped")
	return nil
}

// Stop gracefully stops all worker processes
func (ws *WorkerService) Stop(ctx context.Context) error {
	return ws.workerPool.Stop(ctx)
}

// GetStats returns worker pool statistics
func (ws *WorkerService) GetStats() worker.PoolStats {
	return ws.workerPool.GetStats()
}

// GetWorkerPool returns the underlying worker pool
func (ws *WorkerService) GetWorkerPool() worker.Pool {
	return ws.workerPool
}

func (ws *WorkerService) runRetryScheduler(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	retryLogger := ws.logger.With(zap.String("component", "retry_scheduler"))
	retryLogger.Info("Starting retry scheduler")

	for {
		select {
		case <-ctx.Done():
			retryLogger.Info("Retry scheduler stopping")
			return
		case <-ticker.C:
			ws.processRetryableJobs(ctx, retryLogger)
		}
	}
}

func (ws *WorkerService) processRetryableJobs(ctx context.Context, logger *zap.Logger) {
	retryTime := time.Now().Add(-5 * time.Minute)
	jobs, err := ws.deliveryRepo.GetRetryableJobs(ctx, retryTime, 100)
	if err != nil {
		logger.Error("Failed to get retryable delivery jobs", zap.Error(err))
		return
	}

	if len(jobs) == 0 {
		return
	}

	logger.Info("Found retryable delivery jobs", zap.Int("count", len(jobs)))

	for _, job := range jobs {
		jobID := job.ID.String()

		if err := ws.deliveryRepo.UpdateToPending(ctx, jobID); err != nil {
			logger.Error("Failed to reset delivery job for retry",
				zap.String("job_id", jobID),
				zap.Error(err))
			continue
		}

		if err := ws.queue.Enqueue(ctx, job); err != nil {
			logger.Error("Failed to re-enqueue delivery job",
				zap.String("job_id", jobID),
				zap.Error(err))
			continue
		}

		logger.Info("Delivery job re-queued for retry", zap.String("job_id", jobID))
	}
}

func (ws *WorkerService) runHealthMonitor(ctx context.Context) {
	interval := ws.workerConfig.HealthMonitorInterval
	ws.logger.Info(fmt.Sprintf("Health Monitor interval: %s", interval))
	if interval <= 0 {
		interval = 1 * time.Minute
		ws.logger.Warn("Invalid health monitor interval, using default",
			zap.Duration("configured", ws.workerConfig.HealthMonitorInterval),
			zap.Duration("default", interval))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	healthLogger := ws.logger.With(zap.String("component", "worker_service"))
	healthLogger.Info("Starting health monitor", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			healthLogger.Info("Health monitor stopping")
			return
		case <-ticker.C:
			stats := ws.workerPool.GetStats()
			healthLogger.Info("Worker pool stats",
				zap.Int("active_workers", stats.ActiveWorkers),
				zap.Int("processing_jobs", stats.ProcessingJobs),
				zap.Int64("total_processed", stats.TotalProcessed),
				zap.Int64("total_failed", stats.TotalFailed),
				zap.Any("queue_depths", stats.QueueDepths))
		}
	}
}
