package importer

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestRateLimiterUpdateFromHeaders(t *testing.T) {
	rl := NewRateLimiter()
	h := http.Header{}
	h.Set("X-RateLimit-Usage", "34,512")
	rl.UpdateFromHeaders(h)
	usage, limit := rl.Usage()
	if usage != 34 {
		t.Errorf("usage = %d, want 34", usage)
	}
	if limit != 100 {
		t.Errorf("limit = %d, want 100", limit)
	}
}

func TestRateLimiterWaitRespectsContextCancellation(t *testing.T) {
	rl := NewRateLimiter()
	rl.PauseUntilReset(time.Now().Add(time.Hour))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := rl.Wait(ctx)
	if err == nil {
		t.Fatal("expected context deadline error while paused")
	}
}

func TestRateLimiterWaitProceedsImmediatelyWithinBurst(t *testing.T) {
	rl := NewRateLimiter()
	ctx := context.Background()
	done := make(chan error, 1)
	go func() { done <- rl.Wait(ctx) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Wait: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Wait did not return promptly for the first request in the burst")
	}
}
