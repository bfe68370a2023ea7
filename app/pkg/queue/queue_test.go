package queue_test

import (
	"context"
	"testing"
	"time"

	"backend/identity-platform/app/database/constant/delivery"
	"backend/identity-platform/app/database/entity"
	"backend/identity-platform/app/pkg/queue"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestQueue(t *testing.T) queue.Queue {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return queue.NewRedisQueue(client, zap.NewNop())
}

func newTestJob() *entity.DeliveryJob {
	return &entity.DeliveryJob{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Channel:     delivery.Sms,
		Recipient:   "13800138000",
		CodeKey:     "verification:code:test:sms",
		MaxAttempts: 3,
		Status:      delivery.Pending,
	}
}

func TestEnqueueDequeue(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()
	job := newTestJob()

	require.NoError(t, q.Enqueue(ctx, job))

	depth, err := q.GetQueueDepth(ctx, queue.QueueKey)
	require.NoError(t, err)
	assert.Equal(t, int64(1), depth)

	got, err := q.Dequeue(ctx, queue.GetDeliveryQueues())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, job.ID, got.ID)
	assert.Equal(t, delivery.Sms, got.Channel)
	assert.Equal(t, job.Recipient, got.Recipient)
}

func TestDequeue_Ordering(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()

	first := newTestJob()
	second := newTestJob()
	require.NoError(t, q.Enqueue(ctx, first))
	require.NoError(t, q.Enqueue(ctx, second))

	got, err := q.Dequeue(ctx, queue.GetDeliveryQueues())
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	got, err = q.Dequeue(ctx, queue.GetDeliveryQueues())
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
}

func TestMarkProcessingAndCompleted(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()
	job := newTestJob()

	require.NoError(t, q.MarkProcessing(ctx, job.ID.String()))

	processing, err := q.GetProcessingJobs(ctx)
	require.NoError(t, err)
	assert.Contains(t, processing, job.ID.String())

	require.NoError(t, q.MarkCompleted(ctx, job.ID.String()))

	processing, err = q.GetProcessingJobs(ctx)
	require.NoError(t, err)
	assert.NotContains(t, processing, job.ID.String())
}

func TestMarkFailed_SchedulesRetry(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()
	job := newTestJob()

	require.NoError(t, q.MarkProcessing(ctx, job.ID.String()))
	require.NoError(t, q.MarkFailed(ctx, job.ID.String(), 30*time.Second))

	processing, err := q.GetProcessingJobs(ctx)
	require.NoError(t, err)
	assert.NotContains(t, processing, job.ID.String())
}
