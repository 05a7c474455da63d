package shutdown_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"elevennote/pkg/shutdown"
)

func TestWaitRunsHooksOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var calls atomic.Int32
	hook := func(context.Context) error {
		calls.Add(1)
		return nil
	}
	failing := func(context.Context) error {
		calls.Add(1)
		return errors.New("close failed")
	}

	done := make(chan struct{})
	go func() {
		shutdown.Wait(ctx, time.Second, hook, failing)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return")
	}
	assert.Equal(t, int32(2), calls.Load())
}

func TestWaitRunsHooksInReverseOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var mu sync.Mutex
	var order []string
	hook := func(name string) shutdown.Hook {
		return func(context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
			return nil
		}
	}

	shutdown.Wait(ctx, time.Second, hook("db"), hook("redis"), hook("grpc"), hook("http"))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"http", "grpc", "redis", "db"}, order)
}

func TestWaitRespectsTimeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	slow := func(hookCtx context.Context) error {
		select {
		case <-time.After(5 * time.Second):
		case <-hookCtx.Done():
		}
		return hookCtx.Err()
	}

	start := time.Now()
	shutdown.Wait(ctx, 100*time.Millisecond, slow)
	assert.Less(t, time.Since(start), 2*time.Second)
}
