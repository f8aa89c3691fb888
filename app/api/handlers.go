package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fazalmajid/feedparser/app/database"
	"github.com/fazalmajid/feedparser/app/fetch"
	"github.com/fazalmajid/feedparser/app/parser"
)

func NewHandler(fetcher FetcherInterface, states database.FetchStateRepository,
	limits parser.ParserLimits) *Handler {
	return &Handler{
		fetcher: fetcher,
		states:  states,
		limits:  limits,
	}
}

var knownFormats = map[string]parser.FeedVersion{
	"rss20":  parser.VersionRSS20,
	"rss10":  parser.VersionRSS10,
	"rss09x": parser.VersionRSS09x,
	"atom10": parser.VersionAtom10,
	"atom03": parser.VersionAtom03,
	"json10": parser.VersionJSONFeed10,
	"json11": parser.VersionJSONFeed11,
}

// ParseBody parses a feed document posted as the raw request body. The
// optional format query parameter skips detection.
func (h *Handler) ParseBody(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}
	if len(data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty request body"})
		return
	}

	var result *parser.ParsedFeed
	if format := c.Query("format"); format != "" {
		version, ok := knownFormats[format]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown format: " + format})
			return
		}
		result, err = parser.ParseAs(data, version, h.limits)
	} else {
		result, err = parser.ParseWithLimits(data, h.limits)
	}
	if err != nil {
		var sizeErr *parser.SizeLimitError
		if errors.As(err, &sizeErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
			return
		}
		slog.Error("Parse error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "parse failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ParseURL fetches the feed at the url query parameter and parses it.
// Conditional-GET state is kept per URL; an upstream 304 is passed through
// as a bodyless 304.
func (h *Handler) ParseURL(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter required"})
		return
	}

	var etag, lastModified string
	state, err := h.states.GetFetchState(url)
	if err != nil {
		slog.Error("Database error", "operation", "get_fetch_state", "url", url, "error", err)
	} else if state != nil {
		etag = state.ETag
		lastModified = state.LastModified
	}

	result, err := h.fetcher.Get(c.Request.Context(), url, etag, lastModified)
	if err != nil {
		slog.Error("Fetch error", "url", url, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch feed: " + err.Error()})
		return
	}

	if result.NotModified {
		version, bozo := "", false
		if state != nil {
			version, bozo = state.LastVersion, state.LastBozo
		}
		h.saveFetchState(url, result, state, version, bozo)
		c.Status(http.StatusNotModified)
		return
	}

	feed, err := parser.ParseWithLimits(result.Body, h.limits)
	if err != nil {
		var sizeErr *parser.SizeLimitError
		if errors.As(err, &sizeErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
			return
		}
		slog.Error("Parse error", "url", url, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "parse failed"})
		return
	}

	h.saveFetchState(url, result, state, string(feed.Version), feed.Bozo)

	c.JSON(http.StatusOK, feed)
}

// saveFetchState records the fetch outcome. A 304 carries no validators,
// so the previous ones are kept for the next conditional request.
func (h *Handler) saveFetchState(url string, result *fetch.Result, prev *database.FetchState, version string, bozo bool) {
	now := time.Now().UTC()
	next := database.FetchState{
		URL:           url,
		ETag:          result.ETag,
		LastModified:  result.LastModified,
		LastFetchedAt: &now,
		LastStatus:    result.Status,
		LastVersion:   version,
		LastBozo:      bozo,
	}
	if prev != nil {
		if next.ETag == "" {
			next.ETag = prev.ETag
		}
		if next.LastModified == "" {
			next.LastModified = prev.LastModified
		}
	}
	if err := h.states.UpsertFetchState(next); err != nil {
		slog.Error("Database error", "operation", "upsert_fetch_state", "url", url, "error", err)
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if count, err := h.states.GetFetchStateCount(); err == nil {
		health["tracked_urls"] = count
	}

	c.JSON(http.StatusOK, health)
}
