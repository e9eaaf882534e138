package sitefs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFSStoreWriteCreatesParents(t *testing.T) {
	dir := t.TempDir()
	store := NewFSStore(dir)
	ctx := context.Background()

	if err := store.Write(ctx, "content/posts/2016-06-21-hello.html", []byte("hi")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "content", "posts", "2016-06-21-hello.html"))
	if err != nil {
		t.Fatalf("file not written: %v", err)
	}
	if string(data) != "hi" {
		t.Errorf("got %q, want %q", data, "hi")
	}
}

func TestFSStoreExists(t *testing.T) {
	dir := t.TempDir()
	store := NewFSStore(dir)
	ctx := context.Background()

	exists, err := store.Exists(ctx, "content/about/index.html")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("file should not exist yet")
	}

	if err := store.Write(ctx, "content/about/index.html", nil); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	exists, err = store.Exists(ctx, "content/about/index.html")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("file should exist after write")
	}
}

func TestFSStoreOverwrite(t *testing.T) {
	store := NewFSStore(t.TempDir())
	ctx := context.Background()

	_ = store.Write(ctx, "a.html", []byte("first"))
	if err := store.Write(ctx, "a.html", []byte("second")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, _ := os.ReadFile(filepath.Join(store.Root(), "a.html"))
	if string(data) != "second" {
		t.Errorf("got %q, want last write to win", data)
	}
}

func TestFSStoreRejectsEscapingPaths(t *testing.T) {
	store := NewFSStore(t.TempDir())
	ctx := context.Background()

	for _, rel := range []string{"", "/etc/passwd", "../outside", "content/../../x", "."} {
		if err := store.Write(ctx, rel, []byte("x")); err == nil {
			t.Errorf("Write(%q) should fail", rel)
		}
	}
}
