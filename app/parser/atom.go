package parser

import (
	"cmp"
	"fmt"
	"strconv"

	xpp "github.com/mmcdole/goxpp"
)

var atomCoreNamespaces = map[string]bool{
	"":                            true,
	"http://www.w3.org/2005/Atom": true,
	"http://purl.org/atom/ns#":    true,
}

// parseAtom handles Atom 0.3 and 1.0 with the same tolerance discipline as
// the RSS parser. Atom 0.3 element names (tagline, modified, issued,
// copyright) map onto their 1.0 equivalents.
func parseAtom(data []byte, version FeedVersion, limits ParserLimits) (*ParsedFeed, error) {
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
		if x.p.Name == "feed" {
			x.depth = 1
			if err := parseAtomFeed(x, base.child(x.xmlBase())); err != nil {
				feed.recordError(err.Error())
			}
			continue
		}
		if err := x.skip(); err != nil {
			feed.recordError(err.Error())
		}
	}

	return feed, nil
}

func parseAtomFeed(x *xmlDoc, base baseContext) error {
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
			if x.p.Name == "feed" {
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
			if err := parseAtomFeedElement(x, f, childBase); err != nil {
				x.leave()
				return err
			}
			x.leave()
		}
	}
}

func parseAtomFeedElement(x *xmlDoc, f *FeedMeta, base baseContext) error {
	if !atomCoreNamespaces[x.p.Space] {
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
	case "id":
		text, err := x.readText()
		if err != nil {
			return err
		}
		f.ID = text
	case "title":
		tc, err := parseTextConstruct(x, base)
		if err != nil {
			return err
		}
		f.Title = tc.Value
		f.TitleDetail = tc
	case "subtitle", "tagline":
		tc, err := parseTextConstruct(x, base)
		if err != nil {
			return err
		}
		f.Subtitle = tc.Value
		f.SubtitleDetail = tc
	case "rights", "copyright":
		tc, err := parseTextConstruct(x, base)
		if err != nil {
			return err
		}
		f.Rights = tc.Value
		f.RightsDetail = tc
	case "updated", "modified":
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
	case "link":
		link := parseAtomLink(x, base)
		if err := x.skip(); err != nil {
			return err
		}
		if link == nil {
			return nil
		}
		var stored bool
		f.Links, stored = appendLimited(f.Links, *link, x.limits.MaxLinksPerFeed)
		if !stored {
			x.feed.recordError(fmt.Sprintf("Link limit exceeded: %d", x.limits.MaxLinksPerFeed))
		}
		if f.Link == "" && (link.Rel == "" || link.Rel == "alternate") {
			f.Link = link.Href
		}
	case "author":
		p, err := parseAtomPerson(x, "author", base)
		if err != nil {
			return err
		}
		if p == nil {
			return nil
		}
		if f.AuthorDetail == nil {
			f.AuthorDetail = p
			f.Author = personLabel(*p)
		}
		var stored bool
		f.Authors, stored = appendLimited(f.Authors, *p, x.limits.MaxAuthors)
		if !stored {
			x.feed.recordError(fmt.Sprintf("Author limit exceeded: %d", x.limits.MaxAuthors))
		}
	case "contributor":
		p, err := parseAtomPerson(x, "contributor", base)
		if err != nil {
			return err
		}
		if p == nil {
			return nil
		}
		var stored bool
		f.Contributors, stored = appendLimited(f.Contributors, *p, x.limits.MaxContributors)
		if !stored {
			x.feed.recordError(fmt.Sprintf("Contributor limit exceeded: %d", x.limits.MaxContributors))
		}
	case "category":
		tag := parseAtomCategory(x)
		if err := x.skip(); err != nil {
			return err
		}
		if tag != nil {
			var stored bool
			f.Tags, stored = appendLimited(f.Tags, *tag, x.limits.MaxTags)
			if !stored {
				x.feed.recordError(fmt.Sprintf("Tag limit exceeded: %d", x.limits.MaxTags))
			}
		}
	case "generator":
		gen := &Generator{
			URI:     base.resolve(cmp.Or(x.attr("uri"), x.attr("url"))),
			Version: x.attr("version"),
		}
		text, err := x.readText()
		if err != nil {
			return err
		}
		gen.Value = text
		f.Generator = text
		f.GeneratorDetail = gen
	case "icon":
		text, err := x.readText()
		if err != nil {
			return err
		}
		f.Icon = base.resolve(text)
	case "logo":
		text, err := x.readText()
		if err != nil {
			return err
		}
		f.Logo = base.resolve(text)
	case "entry":
		parseFeedEntry(x, base)
	default:
		return x.skip()
	}
	return nil
}

// parseFeedEntry runs the shared entry flow: count gate, parse, try-push,
// substructure-scoped recovery.
func parseFeedEntry(x *xmlDoc, base baseContext) {
	feed := x.feed
	if x.limits.MaxEntries > 0 && len(feed.Entries) >= x.limits.MaxEntries {
		feed.recordError(fmt.Sprintf("Entry limit exceeded: %d", x.limits.MaxEntries))
		if err := x.skip(); err != nil {
			feed.recordError(err.Error())
		}
		return
	}
	entry, err := parseAtomEntry(x, base)
	if err != nil {
		feed.recordError(err.Error())
		return
	}
	feed.Entries = append(feed.Entries, *entry)
}

func parseAtomEntry(x *xmlDoc, base baseContext) (*Entry, error) {
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
			if x.p.Name == "entry" {
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
			if err := parseAtomEntryElement(x, entry, childBase); err != nil {
				x.leave()
				return nil, err
			}
			x.leave()
		}
	}
}

func parseAtomEntryElement(x *xmlDoc, entry *Entry, base baseContext) error {
	if !atomCoreNamespaces[x.p.Space] {
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
	case "id":
		text, err := x.readText()
		if err != nil {
			return err
		}
		entry.ID = text
	case "title":
		tc, err := parseTextConstruct(x, base)
		if err != nil {
			return err
		}
		entry.Title = tc.Value
		entry.TitleDetail = tc
	case "summary":
		tc, err := parseTextConstruct(x, base)
		if err != nil {
			return err
		}
		entry.Summary = tc.Value
		entry.SummaryDetail = tc
	case "content":
		content, err := parseAtomContent(x, base)
		if err != nil {
			return err
		}
		if content == nil {
			return nil
		}
		var stored bool
		entry.Content, stored = appendLimited(entry.Content, *content, x.limits.MaxContentBlocks)
		if !stored {
			x.feed.recordError(fmt.Sprintf("Content block limit exceeded: %d", x.limits.MaxContentBlocks))
		}
	case "link":
		link := parseAtomLink(x, base)
		if err := x.skip(); err != nil {
			return err
		}
		if link == nil {
			return nil
		}
		var stored bool
		entry.Links, stored = appendLimited(entry.Links, *link, x.limits.MaxLinksPerEntry)
		if !stored {
			x.feed.recordError(fmt.Sprintf("Link limit exceeded: %d", x.limits.MaxLinksPerEntry))
		}
		if entry.Link == "" && (link.Rel == "" || link.Rel == "alternate") {
			entry.Link = link.Href
		}
		if link.Rel == "enclosure" {
			enc := Enclosure{URL: link.Href, Type: link.Type, Length: link.Length}
			var stored bool
			entry.Enclosures, stored = appendLimited(entry.Enclosures, enc, x.limits.MaxEnclosures)
			if !stored {
				x.feed.recordError(fmt.Sprintf("Enclosure limit exceeded: %d", x.limits.MaxEnclosures))
			}
		}
	case "published", "issued":
		name := x.p.Name
		text, err := x.readText()
		if err != nil {
			return err
		}
		switch dt := parseDate(text); {
		case dt != nil:
			entry.Published = dt
		case text != "":
			x.feed.recordError(fmt.Sprintf("Invalid %s format", name))
		}
	case "updated", "modified":
		name := x.p.Name
		text, err := x.readText()
		if err != nil {
			return err
		}
		switch dt := parseDate(text); {
		case dt != nil:
			entry.Updated = dt
		case text != "":
			x.feed.recordError(fmt.Sprintf("Invalid %s format", name))
		}
	case "created":
		text, err := x.readText()
		if err != nil {
			return err
		}
		switch dt := parseDate(text); {
		case dt != nil:
			entry.Created = dt
		case text != "":
			x.feed.recordError("Invalid created format")
		}
	case "author":
		p, err := parseAtomPerson(x, "author", base)
		if err != nil {
			return err
		}
		if p == nil {
			return nil
		}
		if entry.AuthorDetail == nil {
			entry.AuthorDetail = p
			entry.Author = personLabel(*p)
		}
		var stored bool
		entry.Authors, stored = appendLimited(entry.Authors, *p, x.limits.MaxAuthors)
		if !stored {
			x.feed.recordError(fmt.Sprintf("Author limit exceeded: %d", x.limits.MaxAuthors))
		}
	case "contributor":
		p, err := parseAtomPerson(x, "contributor", base)
		if err != nil {
			return err
		}
		if p != nil {
			var stored bool
			entry.Contributors, stored = appendLimited(entry.Contributors, *p, x.limits.MaxContributors)
			if !stored {
				x.feed.recordError(fmt.Sprintf("Contributor limit exceeded: %d", x.limits.MaxContributors))
			}
		}
	case "category":
		tag := parseAtomCategory(x)
		if err := x.skip(); err != nil {
			return err
		}
		if tag != nil {
			var stored bool
			entry.Tags, stored = appendLimited(entry.Tags, *tag, x.limits.MaxTags)
			if !stored {
				x.feed.recordError(fmt.Sprintf("Tag limit exceeded: %d", x.limits.MaxTags))
			}
		}
	case "source":
		src, err := parseAtomSource(x, base)
		if err != nil {
			return err
		}
		if src != nil {
			entry.Source = src
		}
	default:
		return x.skip()
	}
	return nil
}

// parseAtomLink builds a Link from the current start tag's attributes. A
// missing href drops the record; the caller still owns consuming the
// element.
func parseAtomLink(x *xmlDoc, base baseContext) *Link {
	href := x.attr("href")
	if href == "" {
		return nil
	}
	link := &Link{
		Href:     base.resolve(href),
		Rel:      x.attr("rel"),
		Type:     x.attr("type"),
		Title:    x.attr("title"),
		HrefLang: x.attr("hreflang"),
	}
	if n, err := strconv.ParseInt(x.attr("length"), 10, 64); err == nil {
		link.Length = &n
	}
	return link
}

// parseAtomCategory builds a Tag from the current start tag's attributes.
// A missing term drops the record.
func parseAtomCategory(x *xmlDoc) *Tag {
	term := x.attr("term")
	if term == "" {
		return nil
	}
	return &Tag{Term: term, Scheme: x.attr("scheme"), Label: x.attr("label")}
}

// parseTextConstruct reads an Atom text construct, mapping both 1.0
// (text/html/xhtml) and 0.3 (MIME-style) type attributes. XHTML bodies
// keep their markup; everything else goes through entity decoding.
func parseTextConstruct(x *xmlDoc, base baseContext) (*TextConstruct, error) {
	tc := &TextConstruct{
		Type:     textTypeFromAttr(x.attr("type")),
		Language: x.xmlLang(),
		Base:     base.base,
	}
	var (
		value string
		err   error
	)
	if tc.Type == TextXHTML {
		value, err = x.readInnerXML()
	} else {
		value, err = x.readText()
	}
	if err != nil {
		return nil, err
	}
	tc.Value = value
	return tc, nil
}

func textTypeFromAttr(attr string) TextType {
	switch attr {
	case "", "text", "text/plain":
		return TextPlain
	case "html", "text/html":
		return TextHTML
	case "xhtml", "application/xhtml+xml":
		return TextXHTML
	default:
		return TextPlain
	}
}

// parseAtomContent reads an entry <content> element. An out-of-line
// construct (src attribute) produces a block with an empty value and the
// resolved source recorded as its base.
func parseAtomContent(x *xmlDoc, base baseContext) (*Content, error) {
	typeAttr := x.attr("type")
	src := x.attr("src")
	content := &Content{
		Type:     contentTypeFromAttr(typeAttr),
		Language: x.xmlLang(),
		Base:     base.base,
	}
	if src != "" {
		content.Base = base.resolve(src)
		if err := x.skip(); err != nil {
			return nil, err
		}
		return content, nil
	}
	var (
		value string
		err   error
	)
	if textTypeFromAttr(typeAttr) == TextXHTML {
		value, err = x.readInnerXML()
	} else {
		value, err = x.readText()
	}
	if err != nil {
		return nil, err
	}
	content.Value = value
	return content, nil
}

func contentTypeFromAttr(attr string) string {
	switch attr {
	case "", "text", "text/plain":
		return "text/plain"
	case "html", "text/html":
		return "text/html"
	case "xhtml", "application/xhtml+xml":
		return "application/xhtml+xml"
	default:
		return attr
	}
}

// parseAtomPerson reads a person construct (name/email/uri children).
// endName is the enclosing element name, author or contributor.
func parseAtomPerson(x *xmlDoc, endName string, base baseContext) (*Person, error) {
	p := &Person{}
	for {
		tok, err := x.p.Next()
		if err != nil {
			return nil, err
		}
		switch tok {
		case xpp.EndDocument:
			return nil, nil
		case xpp.EndTag:
			if x.p.Name == endName {
				if (Person{}) == *p {
					return nil, nil
				}
				return p, nil
			}
		case xpp.StartTag:
			if err := x.enter(); err != nil {
				x.leave()
				return nil, err
			}
			switch x.p.Name {
			case "name":
				text, err := x.readText()
				if err != nil {
					x.leave()
					return nil, err
				}
				p.Name = text
			case "email":
				text, err := x.readText()
				if err != nil {
					x.leave()
					return nil, err
				}
				p.Email = text
			case "uri", "url", "homepage":
				text, err := x.readText()
				if err != nil {
					x.leave()
					return nil, err
				}
				p.URI = base.resolve(text)
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

// parseAtomSource reads the nested <source> feed reference, keeping only
// id, title and the alternate link.
func parseAtomSource(x *xmlDoc, base baseContext) (*Source, error) {
	src := &Source{}
	for {
		tok, err := x.p.Next()
		if err != nil {
			return nil, err
		}
		switch tok {
		case xpp.EndDocument:
			return nil, nil
		case xpp.EndTag:
			if x.p.Name == "source" {
				if (Source{}) == *src {
					return nil, nil
				}
				return src, nil
			}
		case xpp.StartTag:
			if err := x.enter(); err != nil {
				x.leave()
				return nil, err
			}
			switch x.p.Name {
			case "id":
				text, err := x.readText()
				if err != nil {
					x.leave()
					return nil, err
				}
				src.ID = text
			case "title":
				text, err := x.readText()
				if err != nil {
					x.leave()
					return nil, err
				}
				src.Title = text
			case "link":
				if link := parseAtomLink(x, base); link != nil {
					if src.Link == "" || link.Rel == "" || link.Rel == "alternate" {
						src.Link = link.Href
					}
				}
				if err := x.skip(); err != nil {
					x.leave()
					return nil, err
				}
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

func personLabel(p Person) string {
	return cmp.Or(p.Name, p.Email)
}
