package parser

import (
	"strings"
	"testing"
	"time"
)

func TestParseJSONFeed11(t *testing.T) {
	jsonData := `{
  "version": "https://jsonfeed.org/version/1.1",
  "title": "JSON Test Feed",
  "description": "A test feed",
  "home_page_url": "https://example.com/",
  "feed_url": "https://example.com/feed.json",
  "language": "en-US",
  "icon": "https://example.com/icon.png",
  "favicon": "https://example.com/favicon.ico",
  "authors": [{"name": "Jane Doe", "url": "https://example.com/jane"}],
  "items": [
    {
      "id": "1",
      "url": "https://example.com/1",
      "external_url": "https://elsewhere.example.com/story",
      "title": "First Item",
      "content_html": "<p>Hello</p>",
      "summary": "First summary",
      "date_published": "2023-07-03T10:00:00Z",
      "date_modified": "2023-07-03T11:00:00Z",
      "tags": ["tech", "news"],
      "attachments": [
        {"url": "https://example.com/1.mp3", "mime_type": "audio/mpeg", "size_in_bytes": 12345}
      ]
    },
    {
      "id": "2",
      "content_text": "Plain text body",
      "authors": [{"name": "John Roe"}]
    }
  ]
}`

	result, err := Parse([]byte(jsonData))
	if err != nil {
		t.Fatal(err)
	}
	if result.Bozo {
		t.Errorf("Expected clean parse, got bozo: %s", result.BozoException)
	}
	if result.Version != VersionJSONFeed11 {
		t.Errorf("Expected version json11, got %s", result.Version)
	}

	f := result.Feed
	if f.Title != "JSON Test Feed" {
		t.Errorf("Expected title 'JSON Test Feed', got '%s'", f.Title)
	}
	if f.Subtitle != "A test feed" {
		t.Errorf("Expected description mapped to subtitle, got '%s'", f.Subtitle)
	}
	if f.Language != "en-US" {
		t.Errorf("Expected language 'en-US', got '%s'", f.Language)
	}
	if f.Logo != "https://example.com/icon.png" || f.Icon != "https://example.com/favicon.ico" {
		t.Errorf("Expected icon/favicon mapped to logo/icon, got '%s' '%s'", f.Logo, f.Icon)
	}
	if f.Link != "https://example.com/" {
		t.Errorf("Expected home page link, got '%s'", f.Link)
	}
	if len(f.Links) != 2 || f.Links[0].Rel != "alternate" || f.Links[1].Rel != "self" {
		t.Errorf("Expected alternate and self links, got %v", f.Links)
	}
	if f.Author != "Jane Doe" {
		t.Errorf("Expected author 'Jane Doe', got '%s'", f.Author)
	}
	if f.AuthorDetail == nil || f.AuthorDetail.URI != "https://example.com/jane" {
		t.Errorf("Expected author detail with url, got %v", f.AuthorDetail)
	}

	if len(result.Entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(result.Entries))
	}
	e := result.Entries[0]
	if e.ID != "1" || e.Title != "First Item" {
		t.Errorf("Expected first item id/title, got '%s' '%s'", e.ID, e.Title)
	}
	if e.Link != "https://example.com/1" {
		t.Errorf("Expected item link, got '%s'", e.Link)
	}
	if len(e.Links) != 2 || e.Links[1].Rel != "related" {
		t.Errorf("Expected alternate and related links, got %v", e.Links)
	}
	if len(e.Content) != 1 || e.Content[0].Type != "text/html" || e.Content[0].Value != "<p>Hello</p>" {
		t.Errorf("Expected html content block, got %v", e.Content)
	}
	if e.Summary != "First summary" {
		t.Errorf("Expected summary, got '%s'", e.Summary)
	}
	if e.Published == nil || !e.Published.Equal(time.Date(2023, 7, 3, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected published timestamp, got %v", e.Published)
	}
	if e.Updated == nil || !e.Updated.Equal(time.Date(2023, 7, 3, 11, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected updated timestamp, got %v", e.Updated)
	}
	if len(e.Tags) != 2 || e.Tags[0].Term != "tech" {
		t.Errorf("Expected 2 tags, got %v", e.Tags)
	}
	if len(e.Enclosures) != 1 {
		t.Fatalf("Expected 1 enclosure, got %d", len(e.Enclosures))
	}
	if e.Enclosures[0].Type != "audio/mpeg" || e.Enclosures[0].Length == nil || *e.Enclosures[0].Length != 12345 {
		t.Errorf("Expected attachment mapped to enclosure, got %v", e.Enclosures[0])
	}

	e2 := result.Entries[1]
	if len(e2.Content) != 1 || e2.Content[0].Type != "text/plain" || e2.Content[0].Value != "Plain text body" {
		t.Errorf("Expected plain content block, got %v", e2.Content)
	}
	if e2.Author != "John Roe" {
		t.Errorf("Expected item author, got '%s'", e2.Author)
	}
}

func TestParseJSONFeed10AuthorFallback(t *testing.T) {
	jsonData := `{
  "version": "https://jsonfeed.org/version/1",
  "title": "Old JSON Feed",
  "author": {"name": "Solo Author"},
  "items": [{"id": "1", "title": "Item"}]
}`

	result, err := Parse([]byte(jsonData))
	if err != nil {
		t.Fatal(err)
	}
	if result.Version != VersionJSONFeed10 {
		t.Errorf("Expected version json10, got %s", result.Version)
	}
	if result.Feed.Author != "Solo Author" {
		t.Errorf("Expected singular author honored, got '%s'", result.Feed.Author)
	}
}

func TestParseJSONFeedInvalidJSON(t *testing.T) {
	result, err := ParseAs([]byte(`{"version": "https://jsonfeed.org/version/1.1",`), VersionJSONFeed11, DefaultLimits())
	if err != nil {
		t.Fatal(err)
	}
	if !result.Bozo {
		t.Error("Expected bozo for undecodable JSON")
	}
	if !strings.Contains(result.BozoException, "Invalid JSON") {
		t.Errorf("Expected invalid JSON message, got '%s'", result.BozoException)
	}
}

func TestParseJSONFeedInvalidDate(t *testing.T) {
	jsonData := `{
  "version": "https://jsonfeed.org/version/1.1",
  "title": "Feed",
  "items": [{"id": "1", "date_published": "sometime"}]
}`

	result, err := Parse([]byte(jsonData))
	if err != nil {
		t.Fatal(err)
	}
	if !result.Bozo {
		t.Error("Expected bozo for unparseable date_published")
	}
	if result.BozoException != "Invalid date_published format" {
		t.Errorf("Expected date message, got '%s'", result.BozoException)
	}
	if len(result.Entries) != 1 {
		t.Errorf("Expected entry kept, got %d", len(result.Entries))
	}
}

func TestParseJSONFeedDepthLimit(t *testing.T) {
	jsonData := `{"version": "https://jsonfeed.org/version/1.1", "x": ` +
		strings.Repeat("[", 150) + strings.Repeat("]", 150) + `}`

	result, err := Parse([]byte(jsonData))
	if err != nil {
		t.Fatal(err)
	}
	if !result.Bozo {
		t.Error("Expected bozo for over-deep JSON")
	}
	if !strings.Contains(result.BozoException, "nesting depth") {
		t.Errorf("Expected depth message, got '%s'", result.BozoException)
	}
}

func TestParseJSONFeedWrongTypes(t *testing.T) {
	jsonData := `{
  "version": "https://jsonfeed.org/version/1.1",
  "title": 42,
  "items": [{"id": "1", "title": "OK"}, "not an object"]
}`

	result, err := Parse([]byte(jsonData))
	if err != nil {
		t.Fatal(err)
	}
	if result.Feed.Title != "" {
		t.Errorf("Expected non-string title ignored, got '%s'", result.Feed.Title)
	}
	if len(result.Entries) != 1 {
		t.Errorf("Expected 1 parseable item, got %d", len(result.Entries))
	}
	if !result.Bozo {
		t.Error("Expected bozo for non-object item")
	}
}
