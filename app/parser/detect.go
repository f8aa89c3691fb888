package parser

import (
	"bytes"
	"strings"
)

const netscapeRSS09NS = "http://my.netscape.com/rdf/simple/0.9/"

// DetectFormat classifies raw bytes as one of the supported feed formats
// by sniffing the first structural tokens. It never fails; empty or binary
// input yields VersionUnknown.
func DetectFormat(data []byte) FeedVersion {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}) // UTF-8 BOM
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return VersionUnknown
	}

	if data[0] == '{' {
		return detectJSONVersion(data)
	}
	if data[0] != '<' {
		return VersionUnknown
	}

	name, tag := rootElement(data)
	switch name {
	case "rss":
		version := tagAttribute(tag, "version")
		switch {
		case strings.HasPrefix(version, "0.9"):
			return VersionRSS09x
		default:
			return VersionRSS20
		}
	case "RDF":
		if bytes.Contains(data[:min(len(data), 2048)], []byte(netscapeRSS09NS)) {
			return VersionRSS09x
		}
		return VersionRSS10
	case "feed":
		if tagAttribute(tag, "version") == "0.3" {
			return VersionAtom03
		}
		return VersionAtom10
	default:
		return VersionUnknown
	}
}

func detectJSONVersion(data []byte) FeedVersion {
	head := data[:min(len(data), 4096)]
	switch {
	case bytes.Contains(head, []byte("https://jsonfeed.org/version/1.1")):
		return VersionJSONFeed11
	case bytes.Contains(head, []byte("https://jsonfeed.org/version/1")):
		return VersionJSONFeed10
	default:
		return VersionUnknown
	}
}

// rootElement scans past the XML prolog (declaration, comments, doctype)
// and returns the local name of the first real element plus the raw text
// of its start tag. Scanning never parses the full document.
func rootElement(data []byte) (string, string) {
	for len(data) > 0 {
		i := bytes.IndexByte(data, '<')
		if i < 0 || i+1 >= len(data) {
			return "", ""
		}
		data = data[i+1:]
		switch {
		case data[0] == '?' || data[0] == '!':
			// Declaration, comment or doctype: skip to closing '>'.
			end := bytes.IndexByte(data, '>')
			if end < 0 {
				return "", ""
			}
			data = data[end+1:]
		default:
			end := bytes.IndexByte(data, '>')
			if end < 0 {
				end = len(data)
			}
			tag := string(data[:end])
			name := tag
			if j := strings.IndexAny(name, " \t\r\n/"); j >= 0 {
				name = name[:j]
			}
			// Drop the namespace prefix: rdf:RDF detects as RDF.
			if j := strings.IndexByte(name, ':'); j >= 0 {
				name = name[j+1:]
			}
			return name, tag
		}
	}
	return "", ""
}

// tagAttribute extracts an attribute value from raw start-tag text.
func tagAttribute(tag, name string) string {
	for _, quote := range []string{`"`, `'`} {
		marker := name + "="
		i := strings.Index(tag, marker)
		if i < 0 {
			continue
		}
		rest := tag[i+len(marker):]
		if !strings.HasPrefix(rest, quote) {
			continue
		}
		rest = rest[1:]
		if j := strings.Index(rest, quote); j >= 0 {
			return rest[:j]
		}
	}
	return ""
}
