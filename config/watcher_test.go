package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "regionring.toml")

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	reloads := make(chan Config, 8)
	errs := make(chan error, 8)
	w.OnReload(func(c Config) { reloads <- c })
	w.OnError(func(err error) { errs <- err })

	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("[history]\ncapacity = 7\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	select {
	case cfg := <-reloads:
		if cfg.History.Capacity != 7 {
			t.Errorf("expected reloaded capacity 7, got %d", cfg.History.Capacity)
		}
	case err := <-errs:
		t.Fatalf("unexpected watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherKeepsConfigOnInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "regionring.toml")

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	reloads := make(chan Config, 8)
	errs := make(chan error, 8)
	w.OnReload(func(c Config) { reloads <- c })
	w.OnError(func(err error) { errs <- err })

	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("[history]\ncapacity = -1\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case err := <-errs:
			if !errors.Is(err, ErrInvalidCapacity) {
				t.Fatalf("expected ErrInvalidCapacity, got %v", err)
			}
			return
		case cfg := <-reloads:
			t.Fatalf("expected no reload for invalid file, got %+v", cfg)
		case <-deadline:
			t.Fatal("timed out waiting for reload error")
		}
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "regionring.toml")

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	reloads := make(chan Config, 8)
	w.OnReload(func(c Config) { reloads <- c })

	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "other.toml"), []byte("[history]\ncapacity = 9\n"), 0o644); err != nil {
		t.Fatalf("writing sibling: %v", err)
	}

	select {
	case cfg := <-reloads:
		t.Fatalf("expected no reload for a sibling file, got %+v", cfg)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcherClose(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "regionring.toml"))
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("expected second Close to be a no-op, got %v", err)
	}
	if err := w.Start(); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("expected ErrWatcherClosed, got %v", err)
	}
}
