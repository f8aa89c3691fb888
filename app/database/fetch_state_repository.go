package database

import (
	"database/sql"
	"fmt"
	"time"
)

// FetchStateRepo persists conditional-GET state per feed URL.
type FetchStateRepo struct {
	db *DB
}

func NewFetchStateRepo(db *DB) *FetchStateRepo {
	return &FetchStateRepo{db: db}
}

// GetFetchState returns the stored state for url, or nil when the URL has
// never been fetched.
func (r *FetchStateRepo) GetFetchState(url string) (*FetchState, error) {
	var state FetchState
	err := r.db.QueryRow(`
		SELECT url, etag, last_modified, last_fetched_at, last_status,
		       last_version, last_bozo, created_at, updated_at
		FROM fetch_states
		WHERE url = ?
	`, url).Scan(&state.URL, &state.ETag, &state.LastModified,
		&state.LastFetchedAt, &state.LastStatus, &state.LastVersion,
		&state.LastBozo, &state.CreatedAt, &state.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get fetch state: %w", err)
	}
	return &state, nil
}

// UpsertFetchState inserts or refreshes the state row for state.URL.
func (r *FetchStateRepo) UpsertFetchState(state FetchState) error {
	now := time.Now().UTC()
	_, err := r.db.Exec(`
		INSERT INTO fetch_states (url, etag, last_modified, last_fetched_at,
		                          last_status, last_version, last_bozo,
		                          created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (url) DO UPDATE SET
			etag = excluded.etag,
			last_modified = excluded.last_modified,
			last_fetched_at = excluded.last_fetched_at,
			last_status = excluded.last_status,
			last_version = excluded.last_version,
			last_bozo = excluded.last_bozo,
			updated_at = excluded.updated_at
	`, state.URL, state.ETag, state.LastModified, state.LastFetchedAt,
		state.LastStatus, state.LastVersion, state.LastBozo, now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert fetch state: %w", err)
	}
	return nil
}

func (r *FetchStateRepo) GetFetchStateCount() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM fetch_states`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count fetch states: %w", err)
	}
	return count, nil
}
