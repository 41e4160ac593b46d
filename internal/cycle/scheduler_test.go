package cycle

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRunner struct {
	calls atomic.Int32
	err   error
}

func (r *countingRunner) Run(ctx context.Context) (*Result, error) {
	r.calls.Add(1)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if r.err != nil {
		return nil, r.err
	}
	return &Result{CycleID: "c"}, nil
}

func TestScheduler_RunsImmediatelyThenOnTrigger(t *testing.T) {
	runner := &countingRunner{}
	s := NewScheduler(runner, time.Hour)
	outcomes := make(chan error, 4)
	s.OnResult = func(_ *Result, err error) { outcomes <- err }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	select {
	case err := <-outcomes:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("no startup cycle")
	}

	s.Trigger()
	select {
	case <-outcomes:
	case <-time.After(2 * time.Second):
		t.Fatal("trigger did not run a cycle")
	}

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, int32(2), runner.calls.Load())
}

func TestScheduler_KeepsTickingAfterFailures(t *testing.T) {
	runner := &countingRunner{err: errors.New("upstream down")}
	s := NewScheduler(runner, 5*time.Millisecond)
	failures := make(chan error, 16)
	s.OnResult = func(_ *Result, err error) {
		select {
		case failures <- err:
		default:
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = s.Start(ctx) }()

	for i := 0; i < 3; i++ {
		select {
		case err := <-failures:
			assert.Error(t, err)
		case <-time.After(2 * time.Second):
			t.Fatalf("cycle %d never ran", i+1)
		}
	}
}

func TestScheduler_CycleContextIsNotCancelledWithScheduler(t *testing.T) {
	runner := &countingRunner{}
	s := NewScheduler(runner, time.Hour)
	outcomes := make(chan error, 1)
	s.OnResult = func(_ *Result, err error) { outcomes <- err }

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, s.Start(ctx))

	assert.NoError(t, <-outcomes)
}

func TestNewScheduler_DefaultInterval(t *testing.T) {
	s := NewScheduler(&countingRunner{}, 0)
	assert.Equal(t, DefaultInterval, s.interval)
}
