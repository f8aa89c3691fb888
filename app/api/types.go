package api

import (
	"context"

	"github.com/fazalmajid/feedparser/app/database"
	"github.com/fazalmajid/feedparser/app/fetch"
	"github.com/fazalmajid/feedparser/app/parser"
)

type FetcherInterface interface {
	Get(ctx context.Context, url, etag, lastModified string) (*fetch.Result, error)
}

var _ FetcherInterface = (*fetch.Client)(nil)

type Handler struct {
	fetcher FetcherInterface
	states  database.FetchStateRepository
	limits  parser.ParserLimits
}
