package ui

import (
	"context"
	"testing"
	"time"
)

func TestRun_StopsCleanlyOnContextCancel(t *testing.T) {
	srv := New("127.0.0.1:0")

	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() { errs <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errs:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("server did not stop after cancel")
	}
}
