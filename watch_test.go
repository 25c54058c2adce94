package folio

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestWatcher(t *testing.T, dir string, store *MemoryStore) *Watcher {
	t.Helper()
	w, err := NewWatcher(dir, store, echo.New().Logger)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	w.debounce = 10 * time.Millisecond
	t.Cleanup(func() { w.Close() })
	return w
}

func waitFor(t *testing.T, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return false
}

func TestWatcherPicksUpNewFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "hello.md", helloSource)
	store, err := NewMemoryStore()
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := newTestWatcher(t, dir, store)
	if err := w.Reload(ctx); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	w.Start(ctx)

	writeFile(t, dir, "second.md", "---\ntitle: Second\npostNumber: 2\n---\nbody\n")
	ok := waitFor(t, func() bool {
		_, err := store.Fetch(ctx, "second")
		return err == nil
	})
	if !ok {
		t.Fatal("new file never became fetchable")
	}
	if _, err := store.Fetch(ctx, "hello"); err != nil {
		t.Errorf("existing document lost after reload: %v", err)
	}
}

func TestWatcherKeepsDocumentsOnBadFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "hello.md", helloSource)
	store, err := NewMemoryStore()
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := newTestWatcher(t, dir, store)
	if err := w.Reload(ctx); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	writeFile(t, dir, "broken.md", "---\ntitle: [unclosed\n---\nbody\n")
	if err := w.Reload(ctx); err == nil {
		t.Fatal("expected reload error for bad front matter")
	}
	docs, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 || docs[0].Slug != "hello" {
		t.Errorf("documents = %+v, want the previous set", docs)
	}
}

func TestWatcherStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	store, err := NewMemoryStore()
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())

	w := newTestWatcher(t, dir, store)
	w.Start(ctx)
	cancel()

	select {
	case <-w.exited:
	case <-time.After(2 * time.Second):
		t.Fatal("watch loop still running after cancel")
	}
}
