package queue

import (
	"backend/identity-platform/app/database/entity"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	QueueKey = "{delivery}:queue"

	ProcessingSetKey = "{delivery}:processing"
	RetrySetKey      = "{delivery}:retry_schedule"
)

type Queue interface {
	Enqueue(ctx context.Context, job *entity.DeliveryJob) error
	Dequeue(ctx context.Context, queues []string) (*entity.DeliveryJob, error)
	MarkProcessing(ctx context.Context, jobID string) error
	MarkCompleted(ctx context.Context, jobID string) error
	MarkFailed(ctx context.Context, jobID string, retryDelay time.Duration) error
	GetQueueDepth(ctx context.Context, queue string) (int64, error)
	GetProcessingJobs(ctx context.Context) ([]string, error)
}

type redisQueue struct {
	client redis.UniversalClient
	logger *zap.Logger
}

func NewRedisQueue(client redis.UniversalClient, logger *zap.Logger) Queue {
	return &redisQueue{
		client: client,
		logger: logger,
	}
}

func (q *redisQueue) Enqueue(ctx context.Context, job *entity.DeliveryJob) error {
	jobData, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal delivery job: %w", err)
	}

	err = q.client.LPush(ctx, QueueKey, jobData).Err()
	if err != nil {
		q.logger.Error("Failed to enqueue delivery job", zap.String("job_id", job.ID.String()), zap.Error(err))
		return fmt.Errorf("failed to enqueue delivery job: %w", err)
	}

	q.logger.Info("Delivery job enqueued successfully",
		zap.String("job_id", job.ID.String()),
		zap.String("channel", string(job.Channel)),
		zap.String("queue", QueueKey))

	return nil
}

func (q *redisQueue) Dequeue(ctx context.Context, queues []string) (*entity.DeliveryJob, error) {
	result, err := q.client.BRPop(ctx, 5*time.Second, queues...).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to dequeue delivery job: %w", err)
	}

	if len(result) != 2 {
		return nil, fmt.Errorf("unexpected result format from BRPOP")
	}

	var job entity.DeliveryJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		q.logger.Error("Failed to unmarshal delivery job", zap.String("data", result[1]), zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal delivery job: %w", err)
	}

	q.logger.Info("Delivery job dequeued successfully",
		zap.String("job_id", job.ID.String()),
		zap.String("channel", string(job.Channel)),
		zap.String("queue", result[0]))

	return &job, nil
}

func (q *redisQueue) MarkProcessing(ctx context.Context, jobID string) error {
	timestamp := time.Now().Unix()
	err := q.client.ZAdd(ctx, ProcessingSetKey, redis.Z{
		Score:  float64(timestamp),
		Member: jobID,
	}).Err()

	if err != nil {
		q.logger.Error("Failed to mark delivery job as processing", zap.String("job_id", jobID), zap.Error(err))
		return fmt.Errorf("failed to mark delivery job as processing: %w", err)
	}

	return nil
}

func (q *redisQueue) MarkCompleted(ctx context.Context, jobID string) error {
	err := q.client.ZRem(ctx, ProcessingSetKey, jobID).Err()
	if err != nil {
		q.logger.Error("Failed to mark delivery job as completed", zap.String("job_id", jobID), zap.Error(err))
		return fmt.Errorf("failed to mark delivery job as completed: %w", err)
	}

	q.logger.Info("Delivery job marked as completed", zap.String("job_id", jobID))
	return nil
}

func (q *redisQueue) MarkFailed(ctx context.Context, jobID string, retryDelay time.Duration) error {
	pipe := q.client.TxPipeline()

	pipe.ZRem(ctx, ProcessingSetKey, jobID)

	if retryDelay > 0 {
		retryTime := time.Now().Add(retryDelay)
		pipe.ZAdd(ctx, RetrySetKey, redis.Z{
			Score:  float64(retryTime.Unix()),
			Member: jobID,
		})
	}

	_, err := pipe.Exec(ctx)
	if err != nil {
		q.logger.Error("Failed to mark delivery job as failed", zap.String("job_id", jobID), zap.Error(err))
		return fmt.Errorf("failed to mark delivery job as failed: %w", err)
	}

	q.logger.Info("Delivery job marked as failed",
		zap.String("job_id", jobID),
		zap.Duration("retry_delay", retryDelay))

	return nil
}

func (q *redisQueue) GetQueueDepth(ctx context.Context, queue string) (int64, error) {
	return q.client.LLen(ctx, queue).Result()
}

func (q *redisQueue) GetProcessingJobs(ctx context.Context) ([]string, error) {
	return q.client.ZRange(ctx, ProcessingSetKey, 0, -1).Result()
}

func GetDeliveryQueues() []string {
	return []string{QueueKey}
}
