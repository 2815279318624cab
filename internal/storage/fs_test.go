package storage

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestFSStoreRoundTrip(t *testing.T) {
	s, err := NewFSStore(t.TempDir(), "http://localhost:8080/api/files/")
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}
	ctx := context.Background()

	key, err := s.Put(ctx, "books/1_notes.txt", strings.NewReader("hello"), "text/plain")
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if key != "books/1_notes.txt" {
		t.Errorf("key = %q", key)
	}

	rc, err := s.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "hello" {
		t.Errorf("data = %q", data)
	}
}

func TestFSStorePublicURL(t *testing.T) {
	s, err := NewFSStore(t.TempDir(), "http://x.test/files/")
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}
	if got := s.PublicURL("books/a.txt"); got != "http://x.test/files/books/a.txt" {
		t.Errorf("url = %q", got)
	}
}

func TestFSStoreEmptyKey(t *testing.T) {
	s, _ := NewFSStore(t.TempDir(), "")
	if _, err := s.Put(context.Background(), "", strings.NewReader("x"), ""); err == nil {
		t.Error("want error for empty key")
	}
}
