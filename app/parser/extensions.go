package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	xpp "github.com/mmcdole/goxpp"
)

// Known extension namespaces. Elements in any other namespace keep their
// prefix -> URI binding on the result but are not parsed further.
const (
	nsITunes      = "http://www.itunes.com/dtds/podcast-1.0.dtd"
	nsPodcast     = "https://podcastindex.org/namespace/1.0"
	nsMedia       = "http://search.yahoo.com/mrss/"
	nsGeoRSS      = "http://www.georss.org/georss"
	nsDublinCore  = "http://purl.org/dc/elements/1.1/"
	nsSyndication = "http://purl.org/rss/1.0/modules/syndication/"
	nsContent     = "http://purl.org/rss/1.0/modules/content/"
)

// normalizeNamespace strips the scheme and trailing slash so that near-miss
// URI spellings (https scheme, missing slash) still resolve.
func normalizeNamespace(space string) string {
	space = strings.TrimPrefix(space, "http://")
	space = strings.TrimPrefix(space, "https://")
	return strings.TrimSuffix(space, "/")
}

// extensionKindFor maps a namespace identifier to a handler identity. When
// the prefix is left undeclared the tokenizer reports the bare prefix, so
// the conventional prefixes resolve too.
func extensionKindFor(space string) string {
	switch normalizeNamespace(space) {
	case "www.itunes.com/dtds/podcast-1.0.dtd", "itunes":
		return "itunes"
	case "podcastindex.org/namespace/1.0", "podcast":
		return "podcast"
	case "search.yahoo.com/mrss", "media":
		return "media"
	case "www.georss.org/georss", "georss":
		return "georss"
	case "purl.org/dc/elements/1.1", "dc":
		return "dc"
	case "purl.org/rss/1.0/modules/syndication", "sy":
		return "sy"
	case "purl.org/rss/1.0/modules/content", "content":
		return "content"
	default:
		return ""
	}
}

// ItunesOwner is the podcast owner contact.
type ItunesOwner struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// ItunesCategory is a category with an optional nested subcategory.
type ItunesCategory struct {
	Text        string `json:"text"`
	Subcategory string `json:"subcategory,omitempty"`
}

// ItunesFeedMeta is iTunes podcast metadata at feed level.
type ItunesFeedMeta struct {
	Author     string           `json:"author,omitempty"`
	Owner      *ItunesOwner     `json:"owner,omitempty"`
	Categories []ItunesCategory `json:"categories,omitempty"`
	Explicit   *bool            `json:"explicit,omitempty"`
	Image      string           `json:"image,omitempty"`
	Keywords   []string         `json:"keywords,omitempty"`
	Type       string           `json:"type,omitempty"`
	Subtitle   string           `json:"subtitle,omitempty"`
	Summary    string           `json:"summary,omitempty"`
}

// ItunesEntryMeta is iTunes podcast metadata at episode level.
type ItunesEntryMeta struct {
	Title       string `json:"title,omitempty"`
	Author      string `json:"author,omitempty"`
	Duration    *int   `json:"duration,omitempty"` // seconds
	Explicit    *bool  `json:"explicit,omitempty"`
	Image       string `json:"image,omitempty"`
	Episode     *int   `json:"episode,omitempty"`
	Season      *int   `json:"season,omitempty"`
	EpisodeType string `json:"episode_type,omitempty"`
	Subtitle    string `json:"subtitle,omitempty"`
	Summary     string `json:"summary,omitempty"`
}

// PodcastPerson is a podcast:person credit.
type PodcastPerson struct {
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
	Group string `json:"group,omitempty"`
	Img   string `json:"img,omitempty"`
	Href  string `json:"href,omitempty"`
}

// PodcastFunding is a podcast:funding call-to-action.
type PodcastFunding struct {
	URL     string `json:"url"`
	Message string `json:"message,omitempty"`
}

// PodcastTranscript is a podcast:transcript reference.
type PodcastTranscript struct {
	URL      string `json:"url"`
	Type     string `json:"type,omitempty"`
	Language string `json:"language,omitempty"`
	Rel      string `json:"rel,omitempty"`
}

// PodcastValueRecipient is one split of a podcast:value block.
type PodcastValueRecipient struct {
	Name    string `json:"name,omitempty"`
	Type    string `json:"type,omitempty"`
	Address string `json:"address,omitempty"`
	Split   *int   `json:"split,omitempty"`
}

// PodcastValue is a podcast:value payment block.
type PodcastValue struct {
	Type       string                  `json:"type"`
	Method     string                  `json:"method,omitempty"`
	Suggested  string                  `json:"suggested,omitempty"`
	Recipients []PodcastValueRecipient `json:"recipients,omitempty"`
}

// PodcastMeta is Podcast 2.0 metadata at feed level.
type PodcastMeta struct {
	GUID    string           `json:"guid,omitempty"`
	Persons []PodcastPerson  `json:"persons,omitempty"`
	Funding []PodcastFunding `json:"funding,omitempty"`
	Value   *PodcastValue    `json:"value,omitempty"`
}

// PodcastEntryMeta is Podcast 2.0 metadata at item level.
type PodcastEntryMeta struct {
	Transcripts []PodcastTranscript `json:"transcripts,omitempty"`
	Persons     []PodcastPerson     `json:"persons,omitempty"`
	Value       *PodcastValue       `json:"value,omitempty"`
}

// MediaThumbnail is a media:thumbnail reference.
type MediaThumbnail struct {
	URL    string `json:"url"`
	Width  *int   `json:"width,omitempty"`
	Height *int   `json:"height,omitempty"`
}

// MediaContent is a media:content reference.
type MediaContent struct {
	URL      string `json:"url"`
	Type     string `json:"type,omitempty"`
	Medium   string `json:"medium,omitempty"`
	FileSize *int64 `json:"filesize,omitempty"`
	Width    *int   `json:"width,omitempty"`
	Height   *int   `json:"height,omitempty"`
	Duration *int   `json:"duration,omitempty"` // seconds
}

// MediaMeta groups Media-RSS references attached to an entry.
type MediaMeta struct {
	Thumbnails []MediaThumbnail `json:"thumbnails,omitempty"`
	Content    []MediaContent   `json:"content,omitempty"`
}

// GeoPoint is one WGS84 coordinate pair.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// GeoBox is a bounding box given by its lower-left and upper-right corners.
type GeoBox struct {
	LowerLeft  GeoPoint `json:"lower_left"`
	UpperRight GeoPoint `json:"upper_right"`
}

// GeoRSSMeta is GeoRSS-Simple geographic metadata.
type GeoRSSMeta struct {
	Point   *GeoPoint  `json:"point,omitempty"`
	Line    []GeoPoint `json:"line,omitempty"`
	Polygon []GeoPoint `json:"polygon,omitempty"`
	Box     *GeoBox    `json:"box,omitempty"`
}

// DublinCoreMeta carries the Dublin Core scalar fields.
type DublinCoreMeta struct {
	Title       string     `json:"title,omitempty"`
	Creator     string     `json:"creator,omitempty"`
	Subject     string     `json:"subject,omitempty"`
	Description string     `json:"description,omitempty"`
	Publisher   string     `json:"publisher,omitempty"`
	Contributor string     `json:"contributor,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Type        string     `json:"type,omitempty"`
	Format      string     `json:"format,omitempty"`
	Identifier  string     `json:"identifier,omitempty"`
	Source      string     `json:"source,omitempty"`
	Language    string     `json:"language,omitempty"`
	Relation    string     `json:"relation,omitempty"`
	Coverage    string     `json:"coverage,omitempty"`
	Rights      string     `json:"rights,omitempty"`
}

// SyndicationMeta is the RSS 1.0 syndication module's update hints.
type SyndicationMeta struct {
	UpdatePeriod    string     `json:"update_period,omitempty"`
	UpdateFrequency *int       `json:"update_frequency,omitempty"`
	UpdateBase      *time.Time `json:"update_base,omitempty"`
}

func (x *xmlDoc) extensionKind() string {
	return extensionKindFor(x.p.Space)
}

// parseFeedExtension merges a foreign-namespace element into the feed's
// typed extension blocks. The bool result reports whether the element was
// consumed; unhandled namespaces are left for the caller to skip.
func parseFeedExtension(x *xmlDoc, f *FeedMeta, base baseContext) (bool, error) {
	switch x.extensionKind() {
	case "itunes":
		if f.ITunes == nil {
			f.ITunes = &ItunesFeedMeta{}
		}
		return parseItunesFeedElement(x, f.ITunes, base)
	case "podcast":
		if f.Podcast == nil {
			f.Podcast = &PodcastMeta{}
		}
		return parsePodcastFeedElement(x, f.Podcast, base)
	case "georss":
		if f.Geo == nil {
			f.Geo = &GeoRSSMeta{}
		}
		return parseGeoRSSElement(x, f.Geo)
	case "dc":
		if f.DublinCore == nil {
			f.DublinCore = &DublinCoreMeta{}
		}
		return parseDublinCoreFeedElement(x, f)
	case "sy":
		if f.Syndication == nil {
			f.Syndication = &SyndicationMeta{}
		}
		return parseSyndicationElement(x, f.Syndication)
	default:
		return false, nil
	}
}

// parseEntryExtension is the item-level counterpart of parseFeedExtension.
func parseEntryExtension(x *xmlDoc, entry *Entry, base baseContext) (bool, error) {
	switch x.extensionKind() {
	case "content":
		if x.p.Name != "encoded" {
			return false, nil
		}
		text, err := x.readText()
		if err != nil {
			return false, err
		}
		block := Content{Value: text, Type: "text/html", Base: base.base}
		var stored bool
		entry.Content, stored = appendLimited(entry.Content, block, x.limits.MaxContentBlocks)
		if !stored {
			x.feed.recordError(fmt.Sprintf("Content block limit exceeded: %d", x.limits.MaxContentBlocks))
		}
		return true, nil
	case "itunes":
		if entry.ITunes == nil {
			entry.ITunes = &ItunesEntryMeta{}
		}
		return parseItunesEntryElement(x, entry.ITunes, base)
	case "podcast":
		if entry.Podcast == nil {
			entry.Podcast = &PodcastEntryMeta{}
		}
		return parsePodcastEntryElement(x, entry.Podcast, base)
	case "media":
		if entry.Media == nil {
			entry.Media = &MediaMeta{}
		}
		return parseMediaElement(x, entry.Media, base)
	case "georss":
		if entry.Geo == nil {
			entry.Geo = &GeoRSSMeta{}
		}
		return parseGeoRSSElement(x, entry.Geo)
	case "dc":
		if entry.DublinCore == nil {
			entry.DublinCore = &DublinCoreMeta{}
		}
		return parseDublinCoreEntryElement(x, entry)
	default:
		return false, nil
	}
}

func parseExplicit(text string) *bool {
	var v bool
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "yes", "true", "explicit":
		v = true
	case "no", "false", "clean":
		v = false
	default:
		return nil
	}
	return &v
}

// parseItunesDuration accepts plain seconds as well as MM:SS and HH:MM:SS.
func parseItunesDuration(text string) *int {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) > 3 {
		return nil
	}
	total := 0
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return nil
		}
		total = total*60 + n
	}
	return &total
}

func parseItunesFeedElement(x *xmlDoc, meta *ItunesFeedMeta, base baseContext) (bool, error) {
	switch x.p.Name {
	case "author":
		text, err := x.readText()
		if err != nil {
			return false, err
		}
		meta.Author = text
	case "subtitle":
		text, err := x.readText()
		if err != nil {
			return false, err
		}
		meta.Subtitle = text
	case "summary":
		text, err := x.readText()
		if err != nil {
			return false, err
		}
		meta.Summary = text
	case "explicit":
		text, err := x.readText()
		if err != nil {
			return false, err
		}
		meta.Explicit = parseExplicit(text)
	case "keywords":
		text, err := x.readText()
		if err != nil {
			return false, err
		}
		for _, kw := range strings.Split(text, ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				meta.Keywords = append(meta.Keywords, kw)
			}
		}
	case "type":
		text, err := x.readText()
		if err != nil {
			return false, err
		}
		meta.Type = text
	case "image":
		if href := x.attr("href"); href != "" {
			meta.Image = base.resolve(href)
		}
		return true, x.skip()
	case "owner":
		owner, err := parseItunesOwner(x)
		if err != nil {
			return false, err
		}
		if owner != nil {
			meta.Owner = owner
		}
	case "category":
		cat, err := parseItunesCategory(x)
		if err != nil {
			return false, err
		}
		if cat != nil {
			meta.Categories = append(meta.Categories, *cat)
		}
	default:
		return true, x.skip()
	}
	return true, nil
}

func parseItunesEntryElement(x *xmlDoc, meta *ItunesEntryMeta, base baseContext) (bool, error) {
	switch x.p.Name {
	case "title":
		text, err := x.readText()
		if err != nil {
			return false, err
		}
		meta.Title = text
	case "author":
		text, err := x.readText()
		if err != nil {
			return false, err
		}
		meta.Author = text
	case "subtitle":
		text, err := x.readText()
		if err != nil {
			return false, err
		}
		meta.Subtitle = text
	case "summary":
		text, err := x.readText()
		if err != nil {
			return false, err
		}
		meta.Summary = text
	case "duration":
		text, err := x.readText()
		if err != nil {
			return false, err
		}
		meta.Duration = parseItunesDuration(text)
	case "explicit":
		text, err := x.readText()
		if err != nil {
			return false, err
		}
		meta.Explicit = parseExplicit(text)
	case "episode":
		text, err := x.readText()
		if err != nil {
			return false, err
		}
		if n, err := strconv.Atoi(strings.TrimSpace(text)); err == nil {
			meta.Episode = &n
		}
	case "season":
		text, err := x.readText()
		if err != nil {
			return false, err
		}
		if n, err := strconv.Atoi(strings.TrimSpace(text)); err == nil {
			meta.Season = &n
		}
	case "episodeType":
		text, err := x.readText()
		if err != nil {
			return false, err
		}
		meta.EpisodeType = text
	case "image":
		if href := x.attr("href"); href != "" {
			meta.Image = base.resolve(href)
		}
		return true, x.skip()
	default:
		return true, x.skip()
	}
	return true, nil
}

func parseItunesOwner(x *xmlDoc) (*ItunesOwner, error) {
	owner := &ItunesOwner{}
	for {
		tok, err := x.p.Next()
		if err != nil {
			return nil, err
		}
		switch tok {
		case xpp.EndDocument:
			return nil, nil
		case xpp.EndTag:
			if x.p.Name == "owner" {
				if (ItunesOwner{}) == *owner {
					return nil, nil
				}
				return owner, nil
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
				owner.Name = text
			case "email":
				text, err := x.readText()
				if err != nil {
					x.leave()
					return nil, err
				}
				owner.Email = text
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

// parseItunesCategory reads a category and its first nested subcategory.
// A category without the text attribute is dropped whole.
func parseItunesCategory(x *xmlDoc) (*ItunesCategory, error) {
	text := x.attr("text")
	if text == "" {
		return nil, x.skip()
	}
	cat := &ItunesCategory{Text: text}
	rel := 0
	for {
		tok, err := x.p.Next()
		if err != nil {
			return nil, err
		}
		switch tok {
		case xpp.EndDocument:
			return cat, nil
		case xpp.EndTag:
			if rel == 0 {
				return cat, nil
			}
			rel--
		case xpp.StartTag:
			rel++
			if x.p.Name == "category" && cat.Subcategory == "" {
				cat.Subcategory = x.attr("text")
			}
			if x.limits.MaxNestingDepth > 0 && x.depth+rel > x.limits.MaxNestingDepth {
				return nil, x.limits.depthError(x.depth + rel)
			}
		}
	}
}

func parsePodcastFeedElement(x *xmlDoc, meta *PodcastMeta, base baseContext) (bool, error) {
	switch x.p.Name {
	case "guid":
		text, err := x.readText()
		if err != nil {
			return false, err
		}
		meta.GUID = text
	case "person":
		person, err := parsePodcastPerson(x, base)
		if err != nil {
			return false, err
		}
		if person != nil {
			meta.Persons = append(meta.Persons, *person)
		}
	case "funding":
		funding, err := parsePodcastFunding(x, base)
		if err != nil {
			return false, err
		}
		if funding != nil {
			meta.Funding = append(meta.Funding, *funding)
		}
	case "value":
		value, err := parsePodcastValue(x)
		if err != nil {
			return false, err
		}
		if value != nil {
			meta.Value = value
		}
	default:
		return true, x.skip()
	}
	return true, nil
}

func parsePodcastEntryElement(x *xmlDoc, meta *PodcastEntryMeta, base baseContext) (bool, error) {
	switch x.p.Name {
	case "transcript":
		// The url attribute identifies the record; without it the whole
		// fragment is dropped.
		url := x.attr("url")
		if url != "" {
			meta.Transcripts = append(meta.Transcripts, PodcastTranscript{
				URL:      base.resolve(url),
				Type:     x.attr("type"),
				Language: x.attr("language"),
				Rel:      x.attr("rel"),
			})
		}
		return true, x.skip()
	case "person":
		person, err := parsePodcastPerson(x, base)
		if err != nil {
			return false, err
		}
		if person != nil {
			meta.Persons = append(meta.Persons, *person)
		}
	case "value":
		value, err := parsePodcastValue(x)
		if err != nil {
			return false, err
		}
		if value != nil {
			meta.Value = value
		}
	default:
		return true, x.skip()
	}
	return true, nil
}

func parsePodcastPerson(x *xmlDoc, base baseContext) (*PodcastPerson, error) {
	person := &PodcastPerson{
		Role:  x.attr("role"),
		Group: x.attr("group"),
		Img:   base.resolve(x.attr("img")),
		Href:  base.resolve(x.attr("href")),
	}
	name, err := x.readText()
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, nil
	}
	person.Name = name
	return person, nil
}

func parsePodcastFunding(x *xmlDoc, base baseContext) (*PodcastFunding, error) {
	url := x.attr("url")
	message, err := x.readText()
	if err != nil {
		return nil, err
	}
	if url == "" {
		return nil, nil
	}
	return &PodcastFunding{URL: base.resolve(url), Message: message}, nil
}

func parsePodcastValue(x *xmlDoc) (*PodcastValue, error) {
	valueType := x.attr("type")
	value := &PodcastValue{
		Type:      valueType,
		Method:    x.attr("method"),
		Suggested: x.attr("suggested"),
	}
	for {
		tok, err := x.p.Next()
		if err != nil {
			return nil, err
		}
		switch tok {
		case xpp.EndDocument:
			return nil, nil
		case xpp.EndTag:
			if x.p.Name == "value" {
				if valueType == "" {
					return nil, nil
				}
				return value, nil
			}
		case xpp.StartTag:
			if err := x.enter(); err != nil {
				x.leave()
				return nil, err
			}
			if x.p.Name == "valueRecipient" {
				recipient := PodcastValueRecipient{
					Name:    x.attr("name"),
					Type:    x.attr("type"),
					Address: x.attr("address"),
				}
				if n, err := strconv.Atoi(x.attr("split")); err == nil {
					recipient.Split = &n
				}
				if recipient.Address != "" {
					value.Recipients = append(value.Recipients, recipient)
				}
			}
			if err := x.skip(); err != nil {
				x.leave()
				return nil, err
			}
			x.leave()
		}
	}
}

func parseMediaElement(x *xmlDoc, meta *MediaMeta, base baseContext) (bool, error) {
	switch x.p.Name {
	case "thumbnail":
		if url := x.attr("url"); url != "" {
			thumb := MediaThumbnail{URL: base.resolve(url)}
			if n, err := strconv.Atoi(x.attr("width")); err == nil {
				thumb.Width = &n
			}
			if n, err := strconv.Atoi(x.attr("height")); err == nil {
				thumb.Height = &n
			}
			meta.Thumbnails = append(meta.Thumbnails, thumb)
		}
		return true, x.skip()
	case "content":
		if url := x.attr("url"); url != "" {
			content := MediaContent{
				URL:    base.resolve(url),
				Type:   x.attr("type"),
				Medium: x.attr("medium"),
			}
			if n, err := strconv.ParseInt(x.attr("fileSize"), 10, 64); err == nil {
				content.FileSize = &n
			}
			if n, err := strconv.Atoi(x.attr("width")); err == nil {
				content.Width = &n
			}
			if n, err := strconv.Atoi(x.attr("height")); err == nil {
				content.Height = &n
			}
			if n, err := strconv.Atoi(x.attr("duration")); err == nil {
				content.Duration = &n
			}
			meta.Content = append(meta.Content, content)
		}
		// media:content may nest further media elements; those are
		// skipped along with the rest of the subtree.
		return true, x.skip()
	default:
		return true, x.skip()
	}
}

// parseCoordinatePairs splits "lat lon lat lon ..." text into points.
// An odd number of values invalidates the whole list.
func parseCoordinatePairs(text string) []GeoPoint {
	fields := strings.Fields(text)
	if len(fields) == 0 || len(fields)%2 != 0 {
		return nil
	}
	points := make([]GeoPoint, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		lat, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil
		}
		lon, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return nil
		}
		points = append(points, GeoPoint{Lat: lat, Lon: lon})
	}
	return points
}

func parseGeoRSSElement(x *xmlDoc, meta *GeoRSSMeta) (bool, error) {
	switch x.p.Name {
	case "point":
		text, err := x.readText()
		if err != nil {
			return false, err
		}
		if points := parseCoordinatePairs(text); len(points) == 1 {
			meta.Point = &points[0]
		}
	case "line":
		text, err := x.readText()
		if err != nil {
			return false, err
		}
		if points := parseCoordinatePairs(text); len(points) >= 2 {
			meta.Line = points
		}
	case "polygon":
		text, err := x.readText()
		if err != nil {
			return false, err
		}
		if points := parseCoordinatePairs(text); len(points) >= 3 {
			meta.Polygon = points
		}
	case "box":
		text, err := x.readText()
		if err != nil {
			return false, err
		}
		if points := parseCoordinatePairs(text); len(points) == 2 {
			meta.Box = &GeoBox{LowerLeft: points[0], UpperRight: points[1]}
		}
	default:
		return true, x.skip()
	}
	return true, nil
}

func parseDublinCoreFeedElement(x *xmlDoc, f *FeedMeta) (bool, error) {
	text, err := x.readText()
	if err != nil {
		return false, err
	}
	dc := f.DublinCore
	switch x.p.Name {
	case "title":
		dc.Title = text
	case "creator":
		dc.Creator = text
		if f.Author == "" {
			f.Author = text
		}
	case "subject":
		dc.Subject = text
	case "description":
		dc.Description = text
	case "publisher":
		dc.Publisher = text
		if f.Publisher == "" {
			f.Publisher = text
		}
	case "contributor":
		dc.Contributor = text
	case "date":
		if dt := parseDate(text); dt != nil {
			dc.Date = dt
			if f.Updated == nil {
				f.Updated = dt
			}
		}
	case "type":
		dc.Type = text
	case "format":
		dc.Format = text
	case "identifier":
		dc.Identifier = text
	case "source":
		dc.Source = text
	case "language":
		dc.Language = text
		if f.Language == "" {
			f.Language = text
		}
	case "relation":
		dc.Relation = text
	case "coverage":
		dc.Coverage = text
	case "rights":
		dc.Rights = text
		if f.Rights == "" {
			f.Rights = text
		}
	}
	return true, nil
}

func parseDublinCoreEntryElement(x *xmlDoc, entry *Entry) (bool, error) {
	text, err := x.readText()
	if err != nil {
		return false, err
	}
	dc := entry.DublinCore
	switch x.p.Name {
	case "title":
		dc.Title = text
	case "creator":
		dc.Creator = text
		if entry.Author == "" {
			entry.Author = text
			if p := parseAuthorText(text); p != nil {
				entry.AuthorDetail = p
				var stored bool
				entry.Authors, stored = appendLimited(entry.Authors, *p, x.limits.MaxAuthors)
				if !stored {
					x.feed.recordError(fmt.Sprintf("Author limit exceeded: %d", x.limits.MaxAuthors))
				}
			}
		}
	case "subject":
		dc.Subject = text
	case "description":
		dc.Description = text
	case "publisher":
		dc.Publisher = text
		if entry.Publisher == "" {
			entry.Publisher = text
		}
	case "contributor":
		dc.Contributor = text
	case "date":
		if dt := parseDate(text); dt != nil {
			dc.Date = dt
			if entry.Published == nil {
				entry.Published = dt
			}
		}
	case "type":
		dc.Type = text
	case "format":
		dc.Format = text
	case "identifier":
		dc.Identifier = text
	case "source":
		dc.Source = text
	case "language":
		dc.Language = text
	case "relation":
		dc.Relation = text
	case "coverage":
		dc.Coverage = text
	case "rights":
		dc.Rights = text
	}
	return true, nil
}

func parseSyndicationElement(x *xmlDoc, meta *SyndicationMeta) (bool, error) {
	text, err := x.readText()
	if err != nil {
		return false, err
	}
	switch x.p.Name {
	case "updatePeriod":
		meta.UpdatePeriod = text
	case "updateFrequency":
		if n, err := strconv.Atoi(strings.TrimSpace(text)); err == nil {
			meta.UpdateFrequency = &n
		}
	case "updateBase":
		meta.UpdateBase = parseDate(text)
	}
	return true, nil
}
