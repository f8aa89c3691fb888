package database

import (
	"time"
)

// FetchState is the persisted conditional-GET state for one feed URL.
type FetchState struct {
	URL           string
	ETag          string
	LastModified  string
	LastFetchedAt *time.Time
	LastStatus    int
	LastVersion   string // parsed format token, e.g. "rss20"
	LastBozo      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
