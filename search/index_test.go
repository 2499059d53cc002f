// Copyright © 2025 Texelterm contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package search

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestIndex(t *testing.T) *Index {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	ix, err := Open(DefaultOptions(path))
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	t.Cleanup(func() { ix.Close() })
	return ix
}

func TestIndexCreateAndClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ix, err := Open(DefaultOptions(path))
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	if err := ix.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file not created")
	}
}

func TestAddAndSearch(t *testing.T) {
	ix := openTestIndex(t)
	ix.Add(0, "docker run nginx")
	ix.Add(1, "make test")
	ix.Flush()

	results, err := ix.Search("docker", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].LineNum != 0 || results[0].Text != "docker run nginx" {
		t.Errorf("result: %+v", results[0])
	}
}

func TestSearchSubstring(t *testing.T) {
	ix := openTestIndex(t)
	ix.Add(0, "ls -la /var/log")
	ix.Flush()

	// Trigram matching works on any substring, including flags.
	for _, q := range []string{"-la", "var/log", "ls -la"} {
		results, err := ix.Search(q, 10)
		if err != nil {
			t.Fatalf("search %q: %v", q, err)
		}
		if len(results) != 1 {
			t.Errorf("query %q: expected 1 result, got %d", q, len(results))
		}
	}
}

func TestShortQueryUsesLike(t *testing.T) {
	ix := openTestIndex(t)
	ix.Add(0, "cd /tmp")
	ix.Flush()

	results, err := ix.Search("cd", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("two-byte query must still match, got %d results", len(results))
	}
}

func TestBlankLinesSkipped(t *testing.T) {
	ix := openTestIndex(t)
	ix.Add(0, "   ")
	ix.Add(1, "")
	ix.Add(2, "real content")
	ix.Flush()

	results, err := ix.Search("real", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 || results[0].LineNum != 2 {
		t.Errorf("results: %+v", results)
	}
}

func TestDelete(t *testing.T) {
	ix := openTestIndex(t)
	ix.Add(0, "secret token")
	ix.Flush()
	if err := ix.Delete(0); err != nil {
		t.Fatalf("delete: %v", err)
	}
	results, err := ix.Search("secret", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("deleted line still matches: %+v", results)
	}
}

func TestSearchRange(t *testing.T) {
	ix := openTestIndex(t)
	before := time.Now().Add(-time.Minute)
	ix.Add(0, "inside the window")
	ix.Flush()
	after := time.Now().Add(time.Minute)

	results, err := ix.SearchRange("window", before, after, 10)
	if err != nil {
		t.Fatalf("search range: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("in-range: got %d results", len(results))
	}

	results, err = ix.SearchRange("window", after, after.Add(time.Minute), 10)
	if err != nil {
		t.Fatalf("search range: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("out-of-range: got %+v", results)
	}
}

func TestSearchOrderNewestFirst(t *testing.T) {
	ix := openTestIndex(t)
	ix.Add(0, "match one")
	ix.Flush()
	time.Sleep(2 * time.Millisecond)
	ix.Add(1, "match two")
	ix.Flush()

	results, err := ix.Search("match", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].LineNum != 1 {
		t.Errorf("newest first: %+v", results)
	}
}

func TestEmptyQuery(t *testing.T) {
	ix := openTestIndex(t)
	results, err := ix.Search("", 10)
	if err != nil || results != nil {
		t.Errorf("empty query: %v %v", results, err)
	}
}
