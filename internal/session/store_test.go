package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/puntotecno/terminal/pkg/enums"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("build store: %v", err)
	}
	ctx := context.Background()

	// Absent file is not an error.
	sess, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load absent: %v", err)
	}
	if sess != nil {
		t.Fatalf("expected nil session, got %+v", sess)
	}

	saved := &Session{
		UserID:       3,
		Username:     "vendedor",
		Role:         enums.RoleEmployee,
		AccessToken:  "access",
		RefreshToken: "refresh",
	}
	if err := store.Save(ctx, saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded == nil || loaded.Username != "vendedor" || loaded.Role != enums.RoleEmployee {
		t.Fatalf("unexpected session %+v", loaded)
	}

	// No stray temp file after the atomic rename.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind")
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear twice: %v", err)
	}
	sess, err = store.Load(ctx)
	if err != nil || sess != nil {
		t.Fatalf("expected cleared store, got %+v %v", sess, err)
	}
}

func TestFileStoreRejectsNilSession(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("build store: %v", err)
	}
	if err := store.Save(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil session")
	}
}
