package database

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewConnection(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	if _, _, err := RunMigrations(db); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestFetchStateRoundTrip(t *testing.T) {
	repo := NewFetchStateRepo(openTestDB(t))

	state, err := repo.GetFetchState("https://example.com/feed.xml")
	if err != nil {
		t.Fatal(err)
	}
	if state != nil {
		t.Errorf("Expected nil for unknown URL, got %v", state)
	}

	fetchedAt := time.Date(2023, 7, 3, 12, 0, 0, 0, time.UTC)
	err = repo.UpsertFetchState(FetchState{
		URL:           "https://example.com/feed.xml",
		ETag:          `"v1"`,
		LastModified:  "Mon, 03 Jul 2023 12:00:00 GMT",
		LastFetchedAt: &fetchedAt,
		LastStatus:    200,
		LastVersion:   "rss20",
		LastBozo:      false,
	})
	if err != nil {
		t.Fatal(err)
	}

	state, err = repo.GetFetchState("https://example.com/feed.xml")
	if err != nil {
		t.Fatal(err)
	}
	if state == nil {
		t.Fatal("Expected stored state")
	}
	if state.ETag != `"v1"` {
		t.Errorf("Expected etag '\"v1\"', got '%s'", state.ETag)
	}
	if state.LastModified != "Mon, 03 Jul 2023 12:00:00 GMT" {
		t.Errorf("Expected last modified, got '%s'", state.LastModified)
	}
	if state.LastVersion != "rss20" {
		t.Errorf("Expected version 'rss20', got '%s'", state.LastVersion)
	}
	if state.LastFetchedAt == nil {
		t.Error("Expected last fetched timestamp")
	}
}

func TestUpsertFetchStateUpdates(t *testing.T) {
	repo := NewFetchStateRepo(openTestDB(t))

	if err := repo.UpsertFetchState(FetchState{URL: "https://example.com/a", ETag: `"v1"`, LastStatus: 200}); err != nil {
		t.Fatal(err)
	}
	if err := repo.UpsertFetchState(FetchState{URL: "https://example.com/a", ETag: `"v2"`, LastStatus: 200, LastBozo: true}); err != nil {
		t.Fatal(err)
	}

	state, err := repo.GetFetchState("https://example.com/a")
	if err != nil {
		t.Fatal(err)
	}
	if state.ETag != `"v2"` {
		t.Errorf("Expected updated etag '\"v2\"', got '%s'", state.ETag)
	}
	if !state.LastBozo {
		t.Error("Expected bozo flag updated")
	}

	count, err := repo.GetFetchStateCount()
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("Expected 1 row after upsert, got %d", count)
	}
}
