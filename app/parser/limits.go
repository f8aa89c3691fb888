package parser

import "fmt"

// ParserLimits bounds memory and CPU spent on a single parse call.
// Defaults are generous enough for legitimate feeds; hostile input runs
// into truncation rather than unbounded allocation.
type ParserLimits struct {
	MaxFeedSizeBytes   int
	MaxEntries         int
	MaxLinksPerFeed    int
	MaxLinksPerEntry   int
	MaxAuthors         int
	MaxContributors    int
	MaxTags            int
	MaxContentBlocks   int
	MaxEnclosures      int
	MaxNamespaces      int
	MaxNestingDepth    int
	MaxTextLength      int
	MaxAttributeLength int
}

// DefaultLimits returns the standard limit set.
func DefaultLimits() ParserLimits {
	return ParserLimits{
		MaxFeedSizeBytes:   100_000_000, // 100 MB
		MaxEntries:         10_000,
		MaxLinksPerFeed:    100,
		MaxLinksPerEntry:   50,
		MaxAuthors:         20,
		MaxContributors:    20,
		MaxTags:            100,
		MaxContentBlocks:   10,
		MaxEnclosures:      20,
		MaxNamespaces:      50,
		MaxNestingDepth:    100,
		MaxTextLength:      1_000_000,
		MaxAttributeLength: 8_192,
	}
}

// SizeLimitError is the single fatal parse error: the input exceeded
// MaxFeedSizeBytes before any byte was consumed.
type SizeLimitError struct {
	Size  int
	Limit int
}

func (e *SizeLimitError) Error() string {
	return fmt.Sprintf("feed size %d exceeds limit %d", e.Size, e.Limit)
}

func (l ParserLimits) checkFeedSize(size int) error {
	if l.MaxFeedSizeBytes > 0 && size > l.MaxFeedSizeBytes {
		return &SizeLimitError{Size: size, Limit: l.MaxFeedSizeBytes}
	}
	return nil
}

// appendLimited appends v to dst unless the collection is already at its
// cap. The second return value reports whether the append happened, so the
// caller can decide whether a rejected append should flip the bozo flag.
func appendLimited[T any](dst []T, v T, max int) ([]T, bool) {
	if max > 0 && len(dst) >= max {
		return dst, false
	}
	return append(dst, v), true
}

// truncateText caps a single text node at MaxTextLength bytes without
// splitting a UTF-8 sequence.
func (l ParserLimits) truncateText(s string) string {
	max := l.MaxTextLength
	if max <= 0 || len(s) <= max {
		return s
	}
	for max > 0 && s[max]&0xC0 == 0x80 {
		max--
	}
	return s[:max]
}

func (l ParserLimits) depthError(depth int) error {
	return fmt.Errorf("nesting depth %d exceeds maximum %d", depth, l.MaxNestingDepth)
}
