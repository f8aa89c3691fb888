package parser

import (
	"fmt"

	"github.com/goccy/go-json"
)

const (
	jsonFeedVersion10 = "https://jsonfeed.org/version/1"
	jsonFeedVersion11 = "https://jsonfeed.org/version/1.1"
)

// parseJSONFeed walks a JSON Feed document. Field-level type mismatches
// are ignored per field; only undecodable JSON or an oversized structure
// stops the walk, and both still return the partial feed with bozo set.
func parseJSONFeed(data []byte, version FeedVersion, limits ParserLimits) *ParsedFeed {
	feed := newParsedFeed(version)
	if depth := jsonNestingDepth(data, limits.MaxNestingDepth); depth > limits.MaxNestingDepth && limits.MaxNestingDepth > 0 {
		feed.recordError(limits.depthError(depth).Error())
		return feed
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		feed.recordError(fmt.Sprintf("Invalid JSON: %s", err))
		return feed
	}

	switch jsonString(doc, "version", limits) {
	case jsonFeedVersion11:
		feed.Version = VersionJSONFeed11
	case jsonFeedVersion10:
		feed.Version = VersionJSONFeed10
	}

	f := &feed.Feed
	f.Title = jsonString(doc, "title", limits)
	f.Subtitle = jsonString(doc, "description", limits)
	f.Language = jsonString(doc, "language", limits)
	// icon is the large square image, favicon the small one. They map to
	// logo and icon following the Atom convention.
	f.Logo = jsonString(doc, "icon", limits)
	f.Icon = jsonString(doc, "favicon", limits)

	if home := jsonString(doc, "home_page_url", limits); home != "" {
		f.Link = home
		var stored bool
		f.Links, stored = appendLimited(f.Links, Link{Href: home, Rel: "alternate"}, limits.MaxLinksPerFeed)
		if !stored {
			feed.recordError(fmt.Sprintf("Link limit exceeded: %d", limits.MaxLinksPerFeed))
		}
	}
	if self := jsonString(doc, "feed_url", limits); self != "" {
		var stored bool
		f.Links, stored = appendLimited(f.Links, Link{Href: self, Rel: "self"}, limits.MaxLinksPerFeed)
		if !stored {
			feed.recordError(fmt.Sprintf("Link limit exceeded: %d", limits.MaxLinksPerFeed))
		}
	}

	for _, p := range jsonAuthors(doc, limits) {
		if len(f.Authors) == 0 {
			f.Author = personLabel(p)
			detail := p
			f.AuthorDetail = &detail
		}
		var ok bool
		if f.Authors, ok = appendLimited(f.Authors, p, limits.MaxAuthors); !ok {
			feed.recordError(fmt.Sprintf("Author limit exceeded: %d", limits.MaxAuthors))
			break
		}
	}

	items, ok := doc["items"].([]any)
	if !ok {
		if _, present := doc["items"]; present {
			feed.recordError("Invalid items: not an array")
		}
		return feed
	}
	for _, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			feed.recordError("Invalid item: not an object")
			continue
		}
		entry := parseJSONItem(item, feed, limits)
		var appended bool
		if feed.Entries, appended = appendLimited(feed.Entries, entry, limits.MaxEntries); !appended {
			feed.recordError(fmt.Sprintf("Entry limit exceeded: %d", limits.MaxEntries))
			break
		}
	}
	return feed
}

func parseJSONItem(item map[string]any, feed *ParsedFeed, limits ParserLimits) Entry {
	entry := Entry{
		ID:      jsonString(item, "id", limits),
		Title:   jsonString(item, "title", limits),
		Summary: jsonString(item, "summary", limits),
	}

	if url := jsonString(item, "url", limits); url != "" {
		entry.Link = url
		var stored bool
		entry.Links, stored = appendLimited(entry.Links, Link{Href: url, Rel: "alternate"}, limits.MaxLinksPerEntry)
		if !stored {
			feed.recordError(fmt.Sprintf("Link limit exceeded: %d", limits.MaxLinksPerEntry))
		}
	}
	if ext := jsonString(item, "external_url", limits); ext != "" {
		var stored bool
		entry.Links, stored = appendLimited(entry.Links, Link{Href: ext, Rel: "related"}, limits.MaxLinksPerEntry)
		if !stored {
			feed.recordError(fmt.Sprintf("Link limit exceeded: %d", limits.MaxLinksPerEntry))
		}
	}

	if html := jsonString(item, "content_html", limits); html != "" {
		var stored bool
		entry.Content, stored = appendLimited(entry.Content, Content{Value: html, Type: "text/html"}, limits.MaxContentBlocks)
		if !stored {
			feed.recordError(fmt.Sprintf("Content block limit exceeded: %d", limits.MaxContentBlocks))
		}
	}
	if text := jsonString(item, "content_text", limits); text != "" {
		var stored bool
		entry.Content, stored = appendLimited(entry.Content, Content{Value: text, Type: "text/plain"}, limits.MaxContentBlocks)
		if !stored {
			feed.recordError(fmt.Sprintf("Content block limit exceeded: %d", limits.MaxContentBlocks))
		}
	}
	if entry.Summary != "" {
		entry.SummaryDetail = &TextConstruct{Value: entry.Summary, Type: TextPlain}
	}

	if raw := jsonString(item, "date_published", limits); raw != "" {
		if dt := parseDate(raw); dt != nil {
			entry.Published = dt
		} else {
			feed.recordError("Invalid date_published format")
		}
	}
	if raw := jsonString(item, "date_modified", limits); raw != "" {
		if dt := parseDate(raw); dt != nil {
			entry.Updated = dt
		} else {
			feed.recordError("Invalid date_modified format")
		}
	}

	for _, p := range jsonAuthors(item, limits) {
		if len(entry.Authors) == 0 {
			entry.Author = personLabel(p)
			detail := p
			entry.AuthorDetail = &detail
		}
		var ok bool
		if entry.Authors, ok = appendLimited(entry.Authors, p, limits.MaxAuthors); !ok {
			feed.recordError(fmt.Sprintf("Author limit exceeded: %d", limits.MaxAuthors))
			break
		}
	}

	if tags, ok := item["tags"].([]any); ok {
		for _, raw := range tags {
			term, ok := raw.(string)
			if !ok || term == "" {
				continue
			}
			var appended bool
			if entry.Tags, appended = appendLimited(entry.Tags, Tag{Term: limits.truncateText(term)}, limits.MaxTags); !appended {
				feed.recordError(fmt.Sprintf("Tag limit exceeded: %d", limits.MaxTags))
				break
			}
		}
	}

	if attachments, ok := item["attachments"].([]any); ok {
		for _, raw := range attachments {
			att, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			url := jsonString(att, "url", limits)
			if url == "" {
				continue
			}
			enc := Enclosure{URL: url, Type: jsonString(att, "mime_type", limits)}
			if size, ok := jsonNumber(att, "size_in_bytes"); ok {
				length := int64(size)
				enc.Length = &length
			}
			var appended bool
			if entry.Enclosures, appended = appendLimited(entry.Enclosures, enc, limits.MaxEnclosures); !appended {
				feed.recordError(fmt.Sprintf("Enclosure limit exceeded: %d", limits.MaxEnclosures))
				break
			}
		}
	}

	if img := jsonString(item, "image", limits); img != "" {
		if entry.Media == nil {
			entry.Media = &MediaMeta{}
		}
		entry.Media.Thumbnails = append(entry.Media.Thumbnails, MediaThumbnail{URL: img})
	}
	return entry
}

// jsonAuthors reads the 1.1 "authors" array, falling back to the 1.0
// singular "author" object.
func jsonAuthors(obj map[string]any, limits ParserLimits) []Person {
	var persons []Person
	push := func(raw any) {
		author, ok := raw.(map[string]any)
		if !ok {
			return
		}
		p := Person{
			Name: jsonString(author, "name", limits),
			URI:  jsonString(author, "url", limits),
		}
		if p != (Person{}) {
			persons = append(persons, p)
		}
	}
	if list, ok := obj["authors"].([]any); ok {
		for _, raw := range list {
			push(raw)
		}
		return persons
	}
	push(obj["author"])
	return persons
}

func jsonString(obj map[string]any, key string, limits ParserLimits) string {
	s, _ := obj[key].(string)
	return limits.truncateText(s)
}

func jsonNumber(obj map[string]any, key string) (float64, bool) {
	n, ok := obj[key].(float64)
	return n, ok
}

// jsonNestingDepth scans the raw bytes for the maximum brace/bracket
// nesting, ignoring structural characters inside strings. The scan stops
// early once max is exceeded so hostile input costs at most one pass.
func jsonNestingDepth(data []byte, max int) int {
	depth, deepest := 0, 0
	inString, escaped := false, false
	for _, c := range data {
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
			if depth > deepest {
				deepest = depth
				if max > 0 && deepest > max {
					return deepest
				}
			}
		case '}', ']':
			if depth > 0 {
				depth--
			}
		}
	}
	return deepest
}
