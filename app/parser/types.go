package parser

import "time"

// FeedVersion identifies the wire format a feed was parsed from.
type FeedVersion string

const (
	VersionRSS20      FeedVersion = "rss20"
	VersionRSS10      FeedVersion = "rss10"
	VersionRSS09x     FeedVersion = "rss09x"
	VersionAtom03     FeedVersion = "atom03"
	VersionAtom10     FeedVersion = "atom10"
	VersionJSONFeed10 FeedVersion = "json10"
	VersionJSONFeed11 FeedVersion = "json11"
	VersionUnknown    FeedVersion = "unknown"
)

// TextType classifies the body of a TextConstruct.
type TextType string

const (
	TextPlain TextType = "text"
	TextHTML  TextType = "html"
	TextXHTML TextType = "xhtml"
)

// Link is a single feed or entry link. Href is always non-empty.
type Link struct {
	Href     string `json:"href"`
	Rel      string `json:"rel,omitempty"`
	Type     string `json:"type,omitempty"`
	Title    string `json:"title,omitempty"`
	Length   *int64 `json:"length,omitempty"`
	HrefLang string `json:"hreflang,omitempty"`
}

// Person is an author, contributor or publisher.
type Person struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	URI   string `json:"uri,omitempty"`
}

// Tag is a category. Term is always non-empty.
type Tag struct {
	Term   string `json:"term"`
	Scheme string `json:"scheme,omitempty"`
	Label  string `json:"label,omitempty"`
}

// Image is channel-level artwork.
type Image struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Link        string `json:"link,omitempty"`
	Width       *int   `json:"width,omitempty"`
	Height      *int   `json:"height,omitempty"`
	Description string `json:"description,omitempty"`
}

// Enclosure is an attached media file. URL is always non-empty.
type Enclosure struct {
	URL    string `json:"url"`
	Length *int64 `json:"length,omitempty"`
	Type   string `json:"type,omitempty"`
}

// Content is one full-content block of an entry.
type Content struct {
	Value    string `json:"value"`
	Type     string `json:"type,omitempty"`
	Language string `json:"language,omitempty"`
	Base     string `json:"base,omitempty"`
}

// TextConstruct is a text value bundled with its content type.
type TextConstruct struct {
	Value    string   `json:"value"`
	Type     TextType `json:"type"`
	Language string   `json:"language,omitempty"`
	Base     string   `json:"base,omitempty"`
}

// Generator describes the software that produced the feed.
type Generator struct {
	Value   string `json:"value"`
	URI     string `json:"uri,omitempty"`
	Version string `json:"version,omitempty"`
}

// Source is the back-reference of a republished entry.
type Source struct {
	Title string `json:"title,omitempty"`
	Link  string `json:"link,omitempty"`
	ID    string `json:"id,omitempty"`
}

// FeedMeta is channel/feed-level metadata.
type FeedMeta struct {
	ID              string         `json:"id,omitempty"`
	Title           string         `json:"title,omitempty"`
	TitleDetail     *TextConstruct `json:"title_detail,omitempty"`
	Link            string         `json:"link,omitempty"`
	Links           []Link         `json:"links,omitempty"`
	Subtitle        string         `json:"subtitle,omitempty"`
	SubtitleDetail  *TextConstruct `json:"subtitle_detail,omitempty"`
	Updated         *time.Time     `json:"updated,omitempty"`
	Author          string         `json:"author,omitempty"`
	AuthorDetail    *Person        `json:"author_detail,omitempty"`
	Authors         []Person       `json:"authors,omitempty"`
	Contributors    []Person       `json:"contributors,omitempty"`
	Publisher       string         `json:"publisher,omitempty"`
	PublisherDetail *Person        `json:"publisher_detail,omitempty"`
	Language        string         `json:"language,omitempty"`
	Rights          string         `json:"rights,omitempty"`
	RightsDetail    *TextConstruct `json:"rights_detail,omitempty"`
	Generator       string         `json:"generator,omitempty"`
	GeneratorDetail *Generator     `json:"generator_detail,omitempty"`
	Image           *Image         `json:"image,omitempty"`
	Icon            string         `json:"icon,omitempty"`
	Logo            string         `json:"logo,omitempty"`
	Tags            []Tag          `json:"tags,omitempty"`
	TTL             *int           `json:"ttl,omitempty"`

	ITunes      *ItunesFeedMeta  `json:"itunes,omitempty"`
	Podcast     *PodcastMeta     `json:"podcast,omitempty"`
	Geo         *GeoRSSMeta      `json:"georss,omitempty"`
	DublinCore  *DublinCoreMeta  `json:"dc,omitempty"`
	Syndication *SyndicationMeta `json:"syndication,omitempty"`
}

// Entry is a single item/entry of a feed.
type Entry struct {
	ID              string         `json:"id,omitempty"`
	Title           string         `json:"title,omitempty"`
	TitleDetail     *TextConstruct `json:"title_detail,omitempty"`
	Link            string         `json:"link,omitempty"`
	Links           []Link         `json:"links,omitempty"`
	Summary         string         `json:"summary,omitempty"`
	SummaryDetail   *TextConstruct `json:"summary_detail,omitempty"`
	Content         []Content      `json:"content,omitempty"`
	Published       *time.Time     `json:"published,omitempty"`
	Updated         *time.Time     `json:"updated,omitempty"`
	Created         *time.Time     `json:"created,omitempty"`
	Expired         *time.Time     `json:"expired,omitempty"`
	Author          string         `json:"author,omitempty"`
	AuthorDetail    *Person        `json:"author_detail,omitempty"`
	Authors         []Person       `json:"authors,omitempty"`
	Contributors    []Person       `json:"contributors,omitempty"`
	Publisher       string         `json:"publisher,omitempty"`
	PublisherDetail *Person        `json:"publisher_detail,omitempty"`
	Tags            []Tag          `json:"tags,omitempty"`
	Enclosures      []Enclosure    `json:"enclosures,omitempty"`
	Comments        string         `json:"comments,omitempty"`
	Source          *Source        `json:"source,omitempty"`

	ITunes     *ItunesEntryMeta  `json:"itunes,omitempty"`
	Podcast    *PodcastEntryMeta `json:"podcast,omitempty"`
	Media      *MediaMeta        `json:"media,omitempty"`
	Geo        *GeoRSSMeta       `json:"georss,omitempty"`
	DublinCore *DublinCoreMeta   `json:"dc,omitempty"`
}

// ParsedFeed is the aggregate result of one parse call.
type ParsedFeed struct {
	Feed          FeedMeta          `json:"feed"`
	Entries       []Entry           `json:"entries"`
	Bozo          bool              `json:"bozo"`
	BozoException string            `json:"bozo_exception,omitempty"`
	Encoding      string            `json:"encoding"`
	Version       FeedVersion       `json:"version"`
	Namespaces    map[string]string `json:"namespaces,omitempty"`
}

func newParsedFeed(version FeedVersion) *ParsedFeed {
	return &ParsedFeed{
		Encoding:   "utf-8",
		Version:    version,
		Namespaces: make(map[string]string),
	}
}

// recordError marks the feed as partially parsed. Only the most recent
// diagnostic is kept.
func (f *ParsedFeed) recordError(msg string) {
	f.Bozo = true
	f.BozoException = msg
}
