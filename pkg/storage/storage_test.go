package storage_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/JaimeStill/film-catalog/pkg/lifecycle"
	"github.com/JaimeStill/film-catalog/pkg/logging"
	"github.com/JaimeStill/film-catalog/pkg/storage"
)

func newStore(t *testing.T) (storage.System, string) {
	t.Helper()
	dir := t.TempDir()
	sys, err := storage.New(&storage.Config{BasePath: dir}, logging.Discard())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return sys, dir
}

func TestFilesystem_RoundTrip(t *testing.T) {
	sys, dir := newStore(t)
	ctx := context.Background()
	data := []byte("poster bytes")

	if err := sys.Store(ctx, "a_poster.png", data); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "a_poster.png")); err != nil {
		t.Errorf("stored file missing: %v", err)
	}

	got, err := sys.Retrieve(ctx, "a_poster.png")
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Retrieve() = %q, want %q", got, data)
	}

	exists, err := sys.Exists(ctx, "a_poster.png")
	if err != nil || !exists {
		t.Errorf("Exists() = %v, %v, want true, nil", exists, err)
	}
}

func TestFilesystem_Retrieve_NotFound(t *testing.T) {
	sys, _ := newStore(t)

	if _, err := sys.Retrieve(context.Background(), "missing.png"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Retrieve() error = %v, want ErrNotFound", err)
	}
}

func TestFilesystem_Delete_Idempotent(t *testing.T) {
	sys, _ := newStore(t)
	ctx := context.Background()

	if err := sys.Store(ctx, "gone.png", []byte("x")); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	for i := range 2 {
		if err := sys.Delete(ctx, "gone.png"); err != nil {
			t.Fatalf("Delete() call %d error = %v", i+1, err)
		}
	}

	exists, err := sys.Exists(ctx, "gone.png")
	if err != nil || exists {
		t.Errorf("Exists() = %v, %v, want false, nil", exists, err)
	}
}

func TestFilesystem_InvalidKeys(t *testing.T) {
	sys, _ := newStore(t)
	ctx := context.Background()

	for _, key := range []string{"", "..", "../escape.png", "/etc/passwd", "."} {
		t.Run(key, func(t *testing.T) {
			if err := sys.Store(ctx, key, []byte("x")); !errors.Is(err, storage.ErrInvalidKey) {
				t.Errorf("Store(%q) error = %v, want ErrInvalidKey", key, err)
			}
		})
	}
}

func TestFilesystem_Start_CreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "uploads")
	sys, err := storage.New(&storage.Config{BasePath: root}, logging.Discard())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	lc := lifecycle.New()
	if err := sys.Start(lc); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	lc.WaitForStartup()

	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		t.Errorf("root directory not created: %v", err)
	}
}

func TestConfig_Finalize(t *testing.T) {
	cfg := &storage.Config{MaxUploadSize: "5MB"}

	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if cfg.BasePath != "uploads" {
		t.Errorf("BasePath = %q, want %q", cfg.BasePath, "uploads")
	}
	if cfg.MaxUploadSizeBytes() != 5_000_000 {
		t.Errorf("MaxUploadSizeBytes() = %d, want 5000000", cfg.MaxUploadSizeBytes())
	}
}

func TestConfig_Finalize_InvalidSize(t *testing.T) {
	cfg := &storage.Config{MaxUploadSize: "lots"}

	if err := cfg.Finalize(nil); err == nil {
		t.Error("Finalize() succeeded with invalid size, want error")
	}
}
