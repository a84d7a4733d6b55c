package history

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"codeberg.org/snonux/neural/internal/language"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "state", DefaultFile))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestDefaultPath(t *testing.T) {
	path := DefaultPath()
	if !strings.HasSuffix(path, filepath.Join("neural", DefaultFile)) {
		t.Errorf("DefaultPath() = %q", path)
	}
}

func TestStore_AppendAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	entries := []Entry{
		{Text: "Hello", Translated: "こんにちは", From: language.Auto, To: language.Japanese, Provider: "ollama", CreatedAt: base},
		{Text: "Thanks", Translated: "Danke", From: language.English, To: language.German, Provider: "ollama", CreatedAt: base.Add(time.Minute)},
		{Text: "Bye", Translated: "Adiós", From: language.English, To: language.Spanish, Provider: "openai", CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, e := range entries {
		if err := store.Append(ctx, e); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	got, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Recent(2) returned %d entries", len(got))
	}
	if got[0].Text != "Bye" || got[1].Text != "Thanks" {
		t.Errorf("Recent() order = [%s %s], want [Bye Thanks]", got[0].Text, got[1].Text)
	}
	if got[1].From != language.English || got[1].To != language.German || got[1].Translated != "Danke" {
		t.Errorf("Recent() entry = %+v", got[1])
	}
	if !got[0].CreatedAt.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("CreatedAt = %v", got[0].CreatedAt)
	}
	if got[0].ID == 0 {
		t.Error("ID not set")
	}

	n, err := store.Count(ctx)
	if err != nil || n != 3 {
		t.Errorf("Count() = %d, %v; want 3", n, err)
	}
}

func TestStore_AppendSetsTimestamp(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	before := time.Now()
	if err := store.Append(ctx, Entry{Text: "a", Translated: "b", From: language.English, To: language.French}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	got, err := store.Recent(ctx, 10)
	if err != nil || len(got) != 1 {
		t.Fatalf("Recent() = %v, %v", got, err)
	}
	if got[0].CreatedAt.Before(before) {
		t.Errorf("CreatedAt %v is before %v", got[0].CreatedAt, before)
	}
}

func TestStore_RecentZeroLimit(t *testing.T) {
	store := openTestStore(t)

	got, err := store.Recent(context.Background(), 0)
	if err != nil || len(got) != 0 {
		t.Errorf("Recent(0) = %v, %v", got, err)
	}
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	ctx := context.Background()

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := store.Append(ctx, Entry{Text: "Hello", Translated: "Hallo", From: language.English, To: language.German}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	store, err = Open(path)
	if err != nil {
		t.Fatalf("Reopen error = %v", err)
	}
	defer func() { _ = store.Close() }()

	n, err := store.Count(ctx)
	if err != nil || n != 1 {
		t.Errorf("Count() after reopen = %d, %v; want 1", n, err)
	}
}

func TestStore_ConcurrentAppend(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := store.Append(ctx, Entry{Text: "x", Translated: "y", From: language.English, To: language.Korean}); err != nil {
				t.Errorf("Append() error = %v", err)
			}
		}()
	}
	wg.Wait()

	n, err := store.Count(ctx)
	if err != nil || n != 20 {
		t.Errorf("Count() = %d, %v; want 20", n, err)
	}
}
