package platform

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestContextPlatform(t *testing.T) {
	t.Parallel()
	errStop := errors.New("stop")
	tests := []struct {
		name      string
		setup     func() (context.Context, func())
		wantCause error
	}{
		{
			name: "cancel",
			setup: func() (context.Context, func()) {
				ctx, cancel := context.WithCancel(context.Background())
				return ctx, cancel
			},
			wantCause: context.Canceled,
		},
		{
			name: "cancel with cause",
			setup: func() (context.Context, func()) {
				ctx, cancel := context.WithCancelCause(context.Background())
				return ctx, func() { cancel(errStop) }
			},
			wantCause: errStop,
		},
		{
			name: "deadline",
			setup: func() (context.Context, func()) {
				ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
				return ctx, func() {
					<-ctx.Done()
					cancel()
				}
			},
			wantCause: context.DeadlineExceeded,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx, stop := tt.setup()
			p := NewContextPlatform(ctx)
			if tt.name != "deadline" {
				if p.InterruptRequested() {
					t.Fatal("interrupt requested before the context ended")
				}
				if p.Cause() != nil {
					t.Fatalf("Cause() = %v before the context ended", p.Cause())
				}
			}
			stop()
			if !p.InterruptRequested() {
				t.Fatal("interrupt not requested after the context ended")
			}
			if !errors.Is(p.Cause(), tt.wantCause) {
				t.Errorf("Cause() = %v, want %v", p.Cause(), tt.wantCause)
			}
			if p.Polled() == 0 {
				t.Error("Polled() = 0")
			}
		})
	}
}

func TestFlagPlatform(t *testing.T) {
	t.Parallel()
	var p FlagPlatform
	if p.InterruptRequested() {
		t.Fatal("zero FlagPlatform requests an interrupt")
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		p.Interrupt()
	}()
	wg.Wait()

	if !p.InterruptRequested() {
		t.Fatal("Interrupt() not observed")
	}
	if !p.InterruptRequested() {
		t.Error("interrupt request is not sticky")
	}
}

func TestInterruptOnDone(t *testing.T) {
	t.Parallel()

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		p, stop := InterruptOnDone(ctx)
		defer stop()
		if p.InterruptRequested() {
			t.Fatal("interrupt requested before cancellation")
		}
		cancel()
		deadline := time.After(2 * time.Second)
		for !p.InterruptRequested() {
			select {
			case <-deadline:
				t.Fatal("cancellation never reached the platform")
			default:
				time.Sleep(time.Millisecond)
			}
		}
	})

	t.Run("detached", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		p, stop := InterruptOnDone(ctx)
		if !stop() {
			t.Fatal("stop() = false before cancellation")
		}
		cancel()
		time.Sleep(10 * time.Millisecond)
		if p.InterruptRequested() {
			t.Error("detached platform was interrupted")
		}
	})
}
