package parser

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	xpp "github.com/mmcdole/goxpp"
	"golang.org/x/net/html/charset"
)

// xmlDoc bundles the pull parser with the feed under construction and the
// limit governor state threaded through every recursive step.
type xmlDoc struct {
	p      *xpp.XMLPullParser
	feed   *ParsedFeed
	limits ParserLimits
	depth  int
}

func newXMLDoc(data []byte, feed *ParsedFeed, limits ParserLimits) *xmlDoc {
	p := xpp.NewXMLPullParser(bytes.NewReader(data), false, charset.NewReaderLabel)
	return &xmlDoc{p: p, feed: feed, limits: limits}
}

// enter registers one level of element descent, failing when the document
// nests deeper than the governor allows.
func (x *xmlDoc) enter() error {
	x.depth++
	if x.limits.MaxNestingDepth > 0 && x.depth > x.limits.MaxNestingDepth {
		return x.limits.depthError(x.depth)
	}
	return nil
}

func (x *xmlDoc) leave() {
	if x.depth > 0 {
		x.depth--
	}
}

// attr returns the named attribute of the current start tag, ignoring
// values longer than the governor's attribute cap.
func (x *xmlDoc) attr(name string) string {
	for _, a := range x.p.Attrs {
		if a.Name.Local != name {
			continue
		}
		if x.limits.MaxAttributeLength > 0 && len(a.Value) > x.limits.MaxAttributeLength {
			return ""
		}
		return a.Value
	}
	return ""
}

// xmlBase returns the xml:base attribute of the current start tag, if any.
func (x *xmlDoc) xmlBase() string {
	for _, a := range x.p.Attrs {
		if a.Name.Local != "base" {
			continue
		}
		if a.Name.Space == "xml" || a.Name.Space == "http://www.w3.org/XML/1998/namespace" {
			if x.limits.MaxAttributeLength > 0 && len(a.Value) > x.limits.MaxAttributeLength {
				return ""
			}
			return a.Value
		}
	}
	return ""
}

// xmlLang returns the xml:lang attribute of the current start tag, if any.
func (x *xmlDoc) xmlLang() string {
	for _, a := range x.p.Attrs {
		if a.Name.Local != "lang" {
			continue
		}
		if a.Name.Space == "xml" || a.Name.Space == "http://www.w3.org/XML/1998/namespace" {
			return a.Value
		}
	}
	return ""
}

// recordNamespaces stores prefix -> URI bindings declared on the current
// start tag. The binding map is capped; overflow sets bozo and drops the
// binding rather than failing.
func (x *xmlDoc) recordNamespaces() {
	for _, a := range x.p.Attrs {
		var prefix string
		switch {
		case a.Name.Space == "xmlns":
			prefix = a.Name.Local
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			prefix = ""
		default:
			continue
		}
		if _, ok := x.feed.Namespaces[prefix]; ok {
			continue
		}
		if x.limits.MaxNamespaces > 0 && len(x.feed.Namespaces) >= x.limits.MaxNamespaces {
			x.feed.recordError(fmt.Sprintf("Namespace limit exceeded: %d", x.limits.MaxNamespaces))
			continue
		}
		x.feed.Namespaces[prefix] = a.Value
	}
}

// readText consumes the current element and returns its decoded text.
// CDATA sections and entity-escaped text decode to the same stored value.
func (x *xmlDoc) readText() (string, error) {
	var inner struct {
		InnerXML string `xml:",innerxml"`
	}
	if err := x.p.DecodeElement(&inner); err != nil {
		return "", err
	}
	return x.limits.truncateText(decodeElementText(inner.InnerXML)), nil
}

// readInnerXML consumes the current element and returns its raw inner
// markup, for XHTML text constructs where tags are part of the value.
func (x *xmlDoc) readInnerXML() (string, error) {
	var inner struct {
		InnerXML string `xml:",innerxml"`
	}
	if err := x.p.DecodeElement(&inner); err != nil {
		return "", err
	}
	return x.limits.truncateText(strings.TrimSpace(inner.InnerXML)), nil
}

// skip consumes the current element's entire subtree without storing it.
// Depth is still governed, so a deeply nested unknown subtree cannot
// bypass the limit.
func (x *xmlDoc) skip() error {
	rel := 0
	for {
		tok, err := x.p.Next()
		if err != nil {
			return err
		}
		switch tok {
		case xpp.StartTag:
			rel++
			if x.limits.MaxNestingDepth > 0 && x.depth+rel > x.limits.MaxNestingDepth {
				return x.limits.depthError(x.depth + rel)
			}
		case xpp.EndTag:
			if rel == 0 {
				return nil
			}
			rel--
		case xpp.EndDocument:
			return errors.New("unexpected end of document")
		}
	}
}

var cdataRE = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)

// decodeElementText turns raw inner XML into the stored text value:
// CDATA wrappers are unwrapped verbatim, everything else gets entity
// references decoded.
func decodeElementText(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.Contains(raw, "<![CDATA[") {
		var b strings.Builder
		last := 0
		for _, m := range cdataRE.FindAllStringSubmatchIndex(raw, -1) {
			b.WriteString(decodeEntities(raw[last:m[0]]))
			b.WriteString(raw[m[2]:m[3]])
			last = m[1]
		}
		b.WriteString(decodeEntities(raw[last:]))
		return strings.TrimSpace(b.String())
	}
	return decodeEntities(raw)
}

var namedEntities = map[string]string{
	"amp":  "&",
	"lt":   "<",
	"gt":   ">",
	"quot": `"`,
	"apos": "'",
	"nbsp": " ",
}

// decodeEntities resolves character and the predefined named entity
// references. Unrecognized references are kept as-is rather than dropped.
func decodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for {
		i := strings.IndexByte(s, '&')
		if i < 0 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:i])
		s = s[i:]
		end := strings.IndexByte(s, ';')
		if end < 0 || end > 32 {
			b.WriteByte('&')
			s = s[1:]
			continue
		}
		name := s[1:end]
		switch {
		case strings.HasPrefix(name, "#x"), strings.HasPrefix(name, "#X"):
			if cp, err := strconv.ParseUint(name[2:], 16, 32); err == nil {
				b.WriteRune(rune(cp))
			} else {
				b.WriteString(s[:end+1])
			}
		case strings.HasPrefix(name, "#"):
			if cp, err := strconv.ParseUint(name[1:], 10, 32); err == nil {
				b.WriteRune(rune(cp))
			} else {
				b.WriteString(s[:end+1])
			}
		default:
			if v, ok := namedEntities[name]; ok {
				b.WriteString(v)
			} else {
				b.WriteString(s[:end+1])
			}
		}
		s = s[end+1:]
	}
	return b.String()
}

// parseAuthorText splits the common RSS author forms "email (Name)" and
// "Name <email>" into a detailed Person. A plain value lands in whichever
// field it looks like.
func parseAuthorText(text string) *Person {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	p := &Person{}
	switch {
	case strings.Contains(text, "(") && strings.HasSuffix(text, ")"):
		open := strings.Index(text, "(")
		p.Email = strings.TrimSpace(text[:open])
		p.Name = strings.TrimSpace(strings.TrimSuffix(text[open+1:], ")"))
	case strings.Contains(text, "<") && strings.HasSuffix(text, ">"):
		open := strings.Index(text, "<")
		p.Name = strings.TrimSpace(text[:open])
		p.Email = strings.TrimSpace(strings.TrimSuffix(text[open+1:], ">"))
	case strings.Contains(text, "@"):
		p.Email = text
	default:
		p.Name = text
	}
	return p
}

// sniffEncoding reads the declared encoding out of the XML declaration.
// The tokenizer transcodes to UTF-8 either way; this only reports what the
// document claimed.
func sniffEncoding(data []byte) string {
	head := data[:min(len(data), 1024)]
	i := bytes.Index(head, []byte("<?xml"))
	if i < 0 {
		return "utf-8"
	}
	end := bytes.Index(head[i:], []byte("?>"))
	if end < 0 {
		return "utf-8"
	}
	decl := string(head[i : i+end])
	if enc := tagAttribute(decl, "encoding"); enc != "" {
		return strings.ToLower(enc)
	}
	return "utf-8"
}
