package parser

import (
	"fmt"
	"strconv"

	xpp "github.com/mmcdole/goxpp"
)

// Namespaces whose elements count as core RSS vocabulary rather than
// extensions.
var rssCoreNamespaces = map[string]bool{
	"":                                            true,
	"http://purl.org/rss/1.0/":                    true,
	"http://my.netscape.com/rdf/simple/0.9/":      true,
	"http://channel.netscape.com/rdf/simple/0.9/": true,
	"http://www.w3.org/1999/02/22-rdf-syntax-ns#": true,
	"http://backend.userland.com/rss2":            true,
}

// parseRSS handles RSS 0.9x, 1.0 (RDF) and 2.0. Traversal is tolerant:
// recoverable failures set bozo and parsing resumes at the next sibling;
// only the pre-flight size check is fatal.
func parseRSS(data []byte, version FeedVersion, limits ParserLimits) (*ParsedFeed, error) {
	feed := newParsedFeed(version)
	feed.Encoding = sniffEncoding(data)
	x := newXMLDoc(data, feed, limits)
	base := baseContext{}

	for {
		tok, err := x.p.Next()
		if err != nil {
			feed.recordError("XML parsing error: " + err.Error())
			break
		}
		if tok == xpp.EndDocument {
			break
		}
		if tok != xpp.StartTag {
			continue
		}
		x.recordNamespaces()
		switch x.p.Name {
		case "rss", "RDF":
			// Root element: depth 1, carry on into its children.
			x.depth = 1
			base = base.child(x.xmlBase())
		case "channel":
			if err := x.enter(); err != nil {
				x.leave()
				feed.recordError(err.Error())
				if err := x.skip(); err != nil {
					feed.recordError(err.Error())
				}
				continue
			}
			if err := parseChannel(x, base.child(x.xmlBase())); err != nil {
				feed.recordError(err.Error())
			}
			x.leave()
		case "item":
			// RSS 1.0 places items as channel siblings under the root.
			if err := x.enter(); err != nil {
				x.leave()
				feed.recordError(err.Error())
				if err := x.skip(); err != nil {
					feed.recordError(err.Error())
				}
				continue
			}
			parseChannelItem(x, base.child(x.xmlBase()))
			x.leave()
		default:
			if err := x.skip(); err != nil {
				feed.recordError(err.Error())
			}
		}
	}

	return feed, nil
}

// parseChannelItem runs the shared item flow: entry-count gate, parse,
// try-push, substructure-scoped recovery. The caller has already counted
// the item's own descent level.
func parseChannelItem(x *xmlDoc, base baseContext) {
	feed := x.feed
	if x.limits.MaxEntries > 0 && len(feed.Entries) >= x.limits.MaxEntries {
		feed.recordError(fmt.Sprintf("Entry limit exceeded: %d", x.limits.MaxEntries))
		if err := x.skip(); err != nil {
			feed.recordError(err.Error())
		}
		return
	}
	entry, err := parseItem(x, base)
	if err != nil {
		feed.recordError(err.Error())
	} else {
		feed.Entries = append(feed.Entries, *entry)
	}
}

func parseChannel(x *xmlDoc, base baseContext) error {
	f := &x.feed.Feed
	for {
		tok, err := x.p.Next()
		if err != nil {
			return err
		}
		switch tok {
		case xpp.EndDocument:
			return nil
		case xpp.EndTag:
			if x.p.Name == "channel" {
				return nil
			}
		case xpp.StartTag:
			x.recordNamespaces()
			if err := x.enter(); err != nil {
				x.leave()
				x.feed.recordError(err.Error())
				if err := x.skip(); err != nil {
					return err
				}
				continue
			}
			childBase := base.child(x.xmlBase())
			if err := parseChannelElement(x, f, childBase); err != nil {
				x.leave()
				return err
			}
			x.leave()
		}
	}
}

func parseChannelElement(x *xmlDoc, f *FeedMeta, base baseContext) error {
	if !rssCoreNamespaces[x.p.Space] {
		handled, err := parseFeedExtension(x, f, base)
		if err != nil {
			return err
		}
		if !handled {
			return x.skip()
		}
		return nil
	}

	switch x.p.Name {
	case "title":
		text, err := x.readText()
		if err != nil {
			return err
		}
		f.Title = text
	case "link":
		text, err := x.readText()
		if err != nil {
			return err
		}
		href := base.resolve(text)
		f.Link = href
		var stored bool
		f.Links, stored = appendLimited(f.Links, Link{Href: href, Rel: "alternate"}, x.limits.MaxLinksPerFeed)
		if !stored {
			x.feed.recordError(fmt.Sprintf("Link limit exceeded: %d", x.limits.MaxLinksPerFeed))
		}
	case "description", "tagline":
		text, err := x.readText()
		if err != nil {
			return err
		}
		f.Subtitle = text
	case "language":
		text, err := x.readText()
		if err != nil {
			return err
		}
		f.Language = text
	case "copyright":
		text, err := x.readText()
		if err != nil {
			return err
		}
		f.Rights = text
	case "pubDate", "lastBuildDate":
		name := x.p.Name
		text, err := x.readText()
		if err != nil {
			return err
		}
		switch dt := parseDate(text); {
		case dt != nil:
			f.Updated = dt
		case text != "":
			x.feed.recordError(fmt.Sprintf("Invalid %s format", name))
		}
	case "managingEditor":
		text, err := x.readText()
		if err != nil {
			return err
		}
		f.Author = text
		if p := parseAuthorText(text); p != nil {
			f.AuthorDetail = p
			var stored bool
			f.Authors, stored = appendLimited(f.Authors, *p, x.limits.MaxAuthors)
			if !stored {
				x.feed.recordError(fmt.Sprintf("Author limit exceeded: %d", x.limits.MaxAuthors))
			}
		}
	case "webMaster":
		text, err := x.readText()
		if err != nil {
			return err
		}
		f.Publisher = text
		if p := parseAuthorText(text); p != nil {
			f.PublisherDetail = p
		}
	case "generator":
		text, err := x.readText()
		if err != nil {
			return err
		}
		f.Generator = text
		if text != "" {
			f.GeneratorDetail = &Generator{Value: text}
		}
	case "ttl":
		text, err := x.readText()
		if err != nil {
			return err
		}
		if n, err := strconv.Atoi(text); err == nil {
			f.TTL = &n
		}
	case "category":
		scheme := x.attr("domain")
		term, err := x.readText()
		if err != nil {
			return err
		}
		if term != "" {
			var stored bool
			f.Tags, stored = appendLimited(f.Tags, Tag{Term: term, Scheme: scheme}, x.limits.MaxTags)
			if !stored {
				x.feed.recordError(fmt.Sprintf("Tag limit exceeded: %d", x.limits.MaxTags))
			}
		}
	case "image":
		img, err := parseRSSImage(x, base)
		if err != nil {
			return err
		}
		if img != nil {
			f.Image = img
		}
	case "item":
		parseChannelItem(x, base)
	default:
		return x.skip()
	}
	return nil
}

func parseItem(x *xmlDoc, base baseContext) (*Entry, error) {
	entry := &Entry{}
	for {
		tok, err := x.p.Next()
		if err != nil {
			return nil, err
		}
		switch tok {
		case xpp.EndDocument:
			return entry, nil
		case xpp.EndTag:
			if x.p.Name == "item" {
				return entry, nil
			}
		case xpp.StartTag:
			x.recordNamespaces()
			if err := x.enter(); err != nil {
				x.leave()
				x.feed.recordError(err.Error())
				if err := x.skip(); err != nil {
					return nil, err
				}
				continue
			}
			childBase := base.child(x.xmlBase())
			if err := parseItemElement(x, entry, childBase); err != nil {
				x.leave()
				return nil, err
			}
			x.leave()
		}
	}
}

func parseItemElement(x *xmlDoc, entry *Entry, base baseContext) error {
	if !rssCoreNamespaces[x.p.Space] {
		handled, err := parseEntryExtension(x, entry, base)
		if err != nil {
			return err
		}
		if !handled {
			return x.skip()
		}
		return nil
	}

	switch x.p.Name {
	case "title":
		text, err := x.readText()
		if err != nil {
			return err
		}
		entry.Title = text
	case "link":
		text, err := x.readText()
		if err != nil {
			return err
		}
		href := base.resolve(text)
		entry.Link = href
		var stored bool
		entry.Links, stored = appendLimited(entry.Links, Link{Href: href, Rel: "alternate"}, x.limits.MaxLinksPerEntry)
		if !stored {
			x.feed.recordError(fmt.Sprintf("Link limit exceeded: %d", x.limits.MaxLinksPerEntry))
		}
	case "description":
		text, err := x.readText()
		if err != nil {
			return err
		}
		entry.Summary = text
		entry.SummaryDetail = &TextConstruct{Value: text, Type: TextHTML, Base: base.base}
	case "guid":
		text, err := x.readText()
		if err != nil {
			return err
		}
		entry.ID = text
	case "pubDate":
		text, err := x.readText()
		if err != nil {
			return err
		}
		switch dt := parseDate(text); {
		case dt != nil:
			entry.Published = dt
		case text != "":
			x.feed.recordError("Invalid pubDate format")
		}
	case "expirationDate":
		text, err := x.readText()
		if err != nil {
			return err
		}
		switch dt := parseDate(text); {
		case dt != nil:
			entry.Expired = dt
		case text != "":
			x.feed.recordError("Invalid expirationDate format")
		}
	case "author":
		text, err := x.readText()
		if err != nil {
			return err
		}
		entry.Author = text
		if p := parseAuthorText(text); p != nil {
			entry.AuthorDetail = p
			var stored bool
			entry.Authors, stored = appendLimited(entry.Authors, *p, x.limits.MaxAuthors)
			if !stored {
				x.feed.recordError(fmt.Sprintf("Author limit exceeded: %d", x.limits.MaxAuthors))
			}
		}
	case "category":
		scheme := x.attr("domain")
		term, err := x.readText()
		if err != nil {
			return err
		}
		if term != "" {
			var stored bool
			entry.Tags, stored = appendLimited(entry.Tags, Tag{Term: term, Scheme: scheme}, x.limits.MaxTags)
			if !stored {
				x.feed.recordError(fmt.Sprintf("Tag limit exceeded: %d", x.limits.MaxTags))
			}
		}
	case "enclosure":
		// Attribute-only element; anything nested inside is skipped.
		if enc := parseRSSEnclosure(x, base); enc != nil {
			var stored bool
			entry.Enclosures, stored = appendLimited(entry.Enclosures, *enc, x.limits.MaxEnclosures)
			if !stored {
				x.feed.recordError(fmt.Sprintf("Enclosure limit exceeded: %d", x.limits.MaxEnclosures))
			}
		}
		return x.skip()
	case "comments":
		text, err := x.readText()
		if err != nil {
			return err
		}
		entry.Comments = text
	case "source":
		link := base.resolve(x.attr("url"))
		title, err := x.readText()
		if err != nil {
			return err
		}
		if title != "" || link != "" {
			entry.Source = &Source{Title: title, Link: link}
		}
	default:
		return x.skip()
	}
	return nil
}

// parseRSSEnclosure builds an Enclosure from the current start tag's
// attributes. A missing url drops the whole record.
func parseRSSEnclosure(x *xmlDoc, base baseContext) *Enclosure {
	url := x.attr("url")
	if url == "" {
		return nil
	}
	enc := &Enclosure{URL: base.resolve(url), Type: x.attr("type")}
	if n, err := strconv.ParseInt(x.attr("length"), 10, 64); err == nil {
		enc.Length = &n
	}
	return enc
}

// parseRSSImage reads the channel <image> sub-record. An image without a
// url is dropped entirely rather than kept partially.
func parseRSSImage(x *xmlDoc, base baseContext) (*Image, error) {
	img := &Image{}
	for {
		tok, err := x.p.Next()
		if err != nil {
			return nil, err
		}
		switch tok {
		case xpp.EndDocument:
			return nil, nil
		case xpp.EndTag:
			if x.p.Name == "image" {
				if img.URL == "" {
					return nil, nil
				}
				return img, nil
			}
		case xpp.StartTag:
			if err := x.enter(); err != nil {
				x.leave()
				return nil, err
			}
			switch x.p.Name {
			case "url":
				text, err := x.readText()
				if err != nil {
					x.leave()
					return nil, err
				}
				img.URL = base.resolve(text)
			case "title":
				text, err := x.readText()
				if err != nil {
					x.leave()
					return nil, err
				}
				img.Title = text
			case "link":
				text, err := x.readText()
				if err != nil {
					x.leave()
					return nil, err
				}
				img.Link = base.resolve(text)
			case "width":
				text, err := x.readText()
				if err != nil {
					x.leave()
					return nil, err
				}
				if n, err := strconv.Atoi(text); err == nil {
					img.Width = &n
				}
			case "height":
				text, err := x.readText()
				if err != nil {
					x.leave()
					return nil, err
				}
				if n, err := strconv.Atoi(text); err == nil {
					img.Height = &n
				}
			case "description":
				text, err := x.readText()
				if err != nil {
					x.leave()
					return nil, err
				}
				img.Description = text
			default:
				if err := x.skip(); err != nil {
					x.leave()
					return nil, err
				}
			}
			x.leave()
		}
	}
}
