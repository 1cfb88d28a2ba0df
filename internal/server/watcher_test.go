package server

import (
	"context"
	"testing"
	"time"
)

func TestWatchAssetsStopsOnCancel(t *testing.T) {
	srv := New(Options{Root: t.TempDir()})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.WatchAssets(ctx)
	}()

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestWatchAssetsMissingRoot(t *testing.T) {
	srv := New(Options{Root: "/nonexistent/webfront-assets"})

	if err := srv.WatchAssets(context.Background()); err == nil {
		t.Error("expected error for missing asset root")
	}
}
