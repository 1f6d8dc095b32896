package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingExecutor struct {
	calls atomic.Int32
	fail  atomic.Int32 // number of leading calls that fail
	done  chan struct{}
}

func newCountingExecutor(failures int) *countingExecutor {
	e := &countingExecutor{done: make(chan struct{}, 64)}
	e.fail.Store(int32(failures))
	return e
}

func (e *countingExecutor) Execute(ctx context.Context, job *Job) error {
	e.calls.Add(1)
	defer func() { e.done <- struct{}{} }()
	if e.fail.Add(-1) >= 0 {
		return errors.New("boom")
	}
	return nil
}

func waitFor(t *testing.T, ch chan struct{}, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for execution %d of %d", i+1, n)
		}
	}
}

func TestJobLifecycle(t *testing.T) {
	job := NewJob(JobKindSalesReport, 2)

	assert.Equal(t, JobStatusPending, job.Status)
	assert.Equal(t, 2, job.MaxRetries)
	assert.NotEqual(t, "", job.ID.String())

	job.Start()
	assert.Equal(t, JobStatusRunning, job.Status)
	require.NotNil(t, job.StartedAt)

	job.Fail("boom")
	assert.Equal(t, JobStatusFailed, job.Status)
	assert.Equal(t, "boom", job.Error)
	assert.True(t, job.ShouldRetry())

	job.ScheduleRetry(time.Millisecond)
	assert.Equal(t, JobStatusPending, job.Status)
	assert.Equal(t, 1, job.RetryCount)
	assert.Empty(t, job.Error)

	job.Start()
	job.Complete()
	assert.Equal(t, JobStatusSuccess, job.Status)
	assert.False(t, job.ShouldRetry())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 16, cfg.QueueSize)
	assert.Equal(t, 5*time.Minute, cfg.JobTimeout)
	assert.Equal(t, 3, cfg.RetryAttempts)
	assert.Equal(t, 30*time.Second, cfg.RetryDelay)
}

func TestSchedulerExecutesSubmittedJob(t *testing.T) {
	executor := newCountingExecutor(0)
	s := NewScheduler(DefaultConfig(), executor, zap.NewNop())

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop(context.Background())

	require.NoError(t, s.SubmitSalesReport())
	waitFor(t, executor.done, 1)

	assert.Equal(t, int32(1), executor.calls.Load())
}

func TestSchedulerRetriesFailedJob(t *testing.T) {
	executor := newCountingExecutor(1)

	cfg := DefaultConfig()
	cfg.RetryAttempts = 2
	cfg.RetryDelay = time.Millisecond
	s := NewScheduler(cfg, executor, zap.NewNop())

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop(context.Background())

	require.NoError(t, s.SubmitSalesReport())
	waitFor(t, executor.done, 2)

	assert.Equal(t, int32(2), executor.calls.Load())
}

func TestSubmitJobWhenNotRunning(t *testing.T) {
	s := NewScheduler(DefaultConfig(), newCountingExecutor(0), zap.NewNop())

	err := s.SubmitJob(NewJob(JobKindSalesReport, 0))
	assert.ErrorIs(t, err, ErrSchedulerNotRunning)
}

func TestStopWithConcurrentSubmits(t *testing.T) {
	executor := newCountingExecutor(0)
	s := NewScheduler(DefaultConfig(), executor, zap.NewNop())
	require.NoError(t, s.Start(context.Background()))

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					_ = s.SubmitJob(NewJob(JobKindSalesReport, 0))
				}
			}
		}()
	}

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, s.Stop(context.Background()))
	close(stop)
	wg.Wait()

	err := s.SubmitJob(NewJob(JobKindSalesReport, 0))
	assert.ErrorIs(t, err, ErrSchedulerNotRunning)
}

func TestSchedulerStartIsIdempotent(t *testing.T) {
	s := NewScheduler(DefaultConfig(), newCountingExecutor(0), zap.NewNop())

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Stop(context.Background()))
	require.NoError(t, s.Stop(context.Background()))
}
