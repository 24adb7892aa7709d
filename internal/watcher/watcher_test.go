package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestIsRelevant(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"markdown write", fsnotify.Event{Name: "/docs/a.md", Op: fsnotify.Write}, true},
		{"markdown create", fsnotify.Event{Name: "/docs/a.md", Op: fsnotify.Create}, true},
		{"markdown remove", fsnotify.Event{Name: "/docs/a.md", Op: fsnotify.Remove}, true},
		{"markdown rename", fsnotify.Event{Name: "/docs/A.MD", Op: fsnotify.Rename}, true},
		{"markdown chmod", fsnotify.Event{Name: "/docs/a.md", Op: fsnotify.Chmod}, false},
		{"other file", fsnotify.Event{Name: "/docs/a.txt", Op: fsnotify.Write}, false},
		{"hidden file", fsnotify.Event{Name: "/docs/.a.md", Op: fsnotify.Write}, false},
		{"directory removed", fsnotify.Event{Name: "/docs/guide", Op: fsnotify.Remove}, true},
		{"directory write", fsnotify.Event{Name: "/docs/guide", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRelevant(tt.event); got != tt.want {
				t.Errorf("isRelevant(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestNew_RequiresCallback(t *testing.T) {
	if _, err := New(t.TempDir(), nil); err == nil {
		t.Error("New() without callback expected error")
	}
}

func TestNew_MissingRoot(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing"), func(context.Context) {}); err == nil {
		t.Error("New() with missing root expected error")
	}
}

func waitFor(t *testing.T, calls *atomic.Int32, want int32) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if calls.Load() >= want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("onChange called %d times, want at least %d", calls.Load(), want)
}

func TestWatcher_Run_DebouncesChanges(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "guide")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}

	var calls atomic.Int32
	w, err := New(root, func(context.Context) { calls.Add(1) }, WithDebounce(100*time.Millisecond))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(filepath.Join(sub, "install.md"), []byte("# Install"), 0644); err != nil {
			t.Fatalf("Failed to write file: %v", err)
		}
	}

	waitFor(t, &calls, 1)
	time.Sleep(300 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("onChange called %d times for one burst, want 1", got)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestWatcher_Run_WatchesNewDirectories(t *testing.T) {
	root := t.TempDir()

	var calls atomic.Int32
	w, err := New(root, func(context.Context) { calls.Add(1) }, WithDebounce(50*time.Millisecond))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	dir := filepath.Join(root, "api")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	waitFor(t, &calls, 1)

	// Give Run time to register the new directory.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "render.md"), []byte("# Render"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	waitFor(t, &calls, 2)
}
