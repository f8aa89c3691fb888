package cfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fazalmajid/feedparser/app/parser"
)

// rawLimits mirrors parser.ParserLimits with yaml tags. Only keys present
// in the file override the defaults; zero-valued keys disable a limit the
// same way the parser treats zero.
type rawLimits struct {
	MaxFeedSizeBytes   *int `yaml:"max_feed_size_bytes"`
	MaxEntries         *int `yaml:"max_entries"`
	MaxLinksPerFeed    *int `yaml:"max_links_per_feed"`
	MaxLinksPerEntry   *int `yaml:"max_links_per_entry"`
	MaxAuthors         *int `yaml:"max_authors"`
	MaxContributors    *int `yaml:"max_contributors"`
	MaxTags            *int `yaml:"max_tags"`
	MaxContentBlocks   *int `yaml:"max_content_blocks"`
	MaxEnclosures      *int `yaml:"max_enclosures"`
	MaxNamespaces      *int `yaml:"max_namespaces"`
	MaxNestingDepth    *int `yaml:"max_nesting_depth"`
	MaxTextLength      *int `yaml:"max_text_length"`
	MaxAttributeLength *int `yaml:"max_attribute_length"`
}

// LoadLimits returns the parser limits to run with: the defaults, or the
// defaults overridden by the YAML file at path when path is non-empty.
func LoadLimits(path string) (parser.ParserLimits, error) {
	limits := parser.DefaultLimits()
	if path == "" {
		return limits, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return limits, fmt.Errorf("failed to read limits file: %w", err)
	}

	var raw rawLimits
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return limits, fmt.Errorf("failed to parse limits file %s: %w", path, err)
	}

	apply := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&limits.MaxFeedSizeBytes, raw.MaxFeedSizeBytes)
	apply(&limits.MaxEntries, raw.MaxEntries)
	apply(&limits.MaxLinksPerFeed, raw.MaxLinksPerFeed)
	apply(&limits.MaxLinksPerEntry, raw.MaxLinksPerEntry)
	apply(&limits.MaxAuthors, raw.MaxAuthors)
	apply(&limits.MaxContributors, raw.MaxContributors)
	apply(&limits.MaxTags, raw.MaxTags)
	apply(&limits.MaxContentBlocks, raw.MaxContentBlocks)
	apply(&limits.MaxEnclosures, raw.MaxEnclosures)
	apply(&limits.MaxNamespaces, raw.MaxNamespaces)
	apply(&limits.MaxNestingDepth, raw.MaxNestingDepth)
	apply(&limits.MaxTextLength, raw.MaxTextLength)
	apply(&limits.MaxAttributeLength, raw.MaxAttributeLength)

	return limits, nil
}
