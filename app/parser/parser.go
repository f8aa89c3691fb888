package parser

// Parse consumes a complete feed document and returns the parsed result.
// Malformed input is tolerated wherever possible: recoverable problems set
// the Bozo flag on the result instead of failing. The only error returned
// is a SizeLimitError from the pre-flight size check.
func Parse(data []byte) (*ParsedFeed, error) {
	return ParseWithLimits(data, DefaultLimits())
}

// ParseWithLimits is Parse with caller-supplied resource limits.
func ParseWithLimits(data []byte, limits ParserLimits) (*ParsedFeed, error) {
	if err := limits.checkFeedSize(len(data)); err != nil {
		return nil, err
	}
	return ParseAs(data, DetectFormat(data), limits)
}

// ParseAs parses the document as the given format, bypassing detection.
// An Unknown version yields an empty feed with Bozo set rather than an
// error, matching the tolerance contract of Parse.
func ParseAs(data []byte, version FeedVersion, limits ParserLimits) (*ParsedFeed, error) {
	if err := limits.checkFeedSize(len(data)); err != nil {
		return nil, err
	}
	switch version {
	case VersionRSS20, VersionRSS10, VersionRSS09x:
		return parseRSS(data, version, limits)
	case VersionAtom10, VersionAtom03:
		return parseAtom(data, version, limits)
	case VersionJSONFeed10, VersionJSONFeed11:
		return parseJSONFeed(data, version, limits), nil
	default:
		feed := newParsedFeed(VersionUnknown)
		feed.recordError("unrecognized feed format")
		return feed, nil
	}
}
