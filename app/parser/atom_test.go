package parser

import (
	"strings"
	"testing"
	"time"
)

func TestParseAtom10(t *testing.T) {
	atomData := `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <id>https://example.com/feed</id>
  <title type="text">Test Atom Feed</title>
  <subtitle type="html">Test &lt;em&gt;Atom&lt;/em&gt; Description</subtitle>
  <updated>2023-07-03T12:00:00Z</updated>
  <rights>2023 Example</rights>
  <link href="https://example.com" rel="alternate"/>
  <link href="https://example.com/feed.xml" rel="self" type="application/atom+xml"/>
  <author>
    <name>Feed Author</name>
    <email>author@example.com</email>
    <uri>https://example.com/about</uri>
  </author>
  <category term="tech" scheme="https://example.com/cats" label="Technology"/>
  <generator uri="https://gen.example.com" version="1.0">TestGen</generator>
  <icon>https://example.com/icon.png</icon>
  <logo>https://example.com/logo.png</logo>
  <entry>
    <id>urn:entry-1</id>
    <title>Entry One</title>
    <link href="https://example.com/1"/>
    <link href="https://example.com/1.mp3" rel="enclosure" type="audio/mpeg" length="54321"/>
    <published>2023-07-03T10:00:00Z</published>
    <updated>2023-07-03T11:00:00Z</updated>
    <summary>Entry one summary</summary>
    <content type="html">Entry &lt;b&gt;one&lt;/b&gt; content</content>
    <author>
      <name>Entry Author</name>
    </author>
    <contributor>
      <name>Helper</name>
    </contributor>
    <category term="news"/>
    <source>
      <id>https://origin.example.com/feed</id>
      <title>Origin Feed</title>
      <link href="https://origin.example.com"/>
    </source>
  </entry>
</feed>`

	result, err := Parse([]byte(atomData))
	if err != nil {
		t.Fatal(err)
	}
	if result.Bozo {
		t.Errorf("Expected clean parse, got bozo: %s", result.BozoException)
	}
	if result.Version != VersionAtom10 {
		t.Errorf("Expected version atom10, got %s", result.Version)
	}

	f := result.Feed
	if f.ID != "https://example.com/feed" {
		t.Errorf("Expected feed id, got '%s'", f.ID)
	}
	if f.Title != "Test Atom Feed" {
		t.Errorf("Expected title 'Test Atom Feed', got '%s'", f.Title)
	}
	if f.TitleDetail == nil || f.TitleDetail.Type != TextPlain {
		t.Errorf("Expected plain title detail, got %v", f.TitleDetail)
	}
	if f.Subtitle != "Test <em>Atom</em> Description" {
		t.Errorf("Expected decoded html subtitle, got '%s'", f.Subtitle)
	}
	if f.SubtitleDetail == nil || f.SubtitleDetail.Type != TextHTML {
		t.Errorf("Expected html subtitle detail, got %v", f.SubtitleDetail)
	}
	if f.Updated == nil || !f.Updated.Equal(time.Date(2023, 7, 3, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected updated timestamp, got %v", f.Updated)
	}
	if f.Link != "https://example.com" {
		t.Errorf("Expected alternate link promoted, got '%s'", f.Link)
	}
	if len(f.Links) != 2 || f.Links[1].Rel != "self" {
		t.Errorf("Expected 2 links with self second, got %v", f.Links)
	}
	if f.Author != "Feed Author" {
		t.Errorf("Expected author 'Feed Author', got '%s'", f.Author)
	}
	if f.AuthorDetail == nil || f.AuthorDetail.Email != "author@example.com" || f.AuthorDetail.URI != "https://example.com/about" {
		t.Errorf("Expected full author detail, got %v", f.AuthorDetail)
	}
	if len(f.Tags) != 1 || f.Tags[0].Label != "Technology" {
		t.Errorf("Expected labeled tag, got %v", f.Tags)
	}
	if f.GeneratorDetail == nil || f.GeneratorDetail.URI != "https://gen.example.com" || f.GeneratorDetail.Version != "1.0" {
		t.Errorf("Expected generator detail, got %v", f.GeneratorDetail)
	}
	if f.Icon != "https://example.com/icon.png" || f.Logo != "https://example.com/logo.png" {
		t.Errorf("Expected icon and logo, got '%s' '%s'", f.Icon, f.Logo)
	}

	if len(result.Entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(result.Entries))
	}
	e := result.Entries[0]
	if e.ID != "urn:entry-1" {
		t.Errorf("Expected entry id, got '%s'", e.ID)
	}
	if e.Link != "https://example.com/1" {
		t.Errorf("Expected entry link, got '%s'", e.Link)
	}
	if len(e.Links) != 2 {
		t.Errorf("Expected 2 entry links, got %d", len(e.Links))
	}
	if len(e.Enclosures) != 1 {
		t.Fatalf("Expected enclosure from rel=enclosure link, got %d", len(e.Enclosures))
	}
	if e.Enclosures[0].URL != "https://example.com/1.mp3" || e.Enclosures[0].Length == nil || *e.Enclosures[0].Length != 54321 {
		t.Errorf("Expected enclosure url/length, got %v", e.Enclosures[0])
	}
	if e.Published == nil || !e.Published.Equal(time.Date(2023, 7, 3, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected published timestamp, got %v", e.Published)
	}
	if e.Updated == nil || !e.Updated.Equal(time.Date(2023, 7, 3, 11, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected updated timestamp, got %v", e.Updated)
	}
	if e.Summary != "Entry one summary" {
		t.Errorf("Expected summary, got '%s'", e.Summary)
	}
	if len(e.Content) != 1 {
		t.Fatalf("Expected 1 content block, got %d", len(e.Content))
	}
	if e.Content[0].Value != "Entry <b>one</b> content" || e.Content[0].Type != "text/html" {
		t.Errorf("Expected decoded html content, got %v", e.Content[0])
	}
	if e.Author != "Entry Author" {
		t.Errorf("Expected entry author, got '%s'", e.Author)
	}
	if len(e.Contributors) != 1 || e.Contributors[0].Name != "Helper" {
		t.Errorf("Expected contributor, got %v", e.Contributors)
	}
	if e.Source == nil || e.Source.Title != "Origin Feed" || e.Source.Link != "https://origin.example.com" {
		t.Errorf("Expected source reference, got %v", e.Source)
	}
}

func TestParseAtomXHTMLContent(t *testing.T) {
	atomData := `<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Feed</title>
  <entry>
    <title>Entry</title>
    <content type="xhtml"><div xmlns="http://www.w3.org/1999/xhtml"><p>Rich <b>text</b></p></div></content>
  </entry>
</feed>`

	result, err := Parse([]byte(atomData))
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Entries) != 1 || len(result.Entries[0].Content) != 1 {
		t.Fatal("Expected one entry with one content block")
	}
	c := result.Entries[0].Content[0]
	if c.Type != "application/xhtml+xml" {
		t.Errorf("Expected xhtml content type, got '%s'", c.Type)
	}
	if !strings.Contains(c.Value, "<p>Rich <b>text</b></p>") {
		t.Errorf("Expected markup preserved, got '%s'", c.Value)
	}
}

func TestParseAtomXMLBase(t *testing.T) {
	atomData := `<feed xmlns="http://www.w3.org/2005/Atom" xml:base="https://example.com/feeds/">
  <title>Feed</title>
  <link href="../index.html"/>
  <entry xml:base="entries/">
    <title>Entry</title>
    <link href="1.html"/>
  </entry>
</feed>`

	result, err := Parse([]byte(atomData))
	if err != nil {
		t.Fatal(err)
	}
	if result.Feed.Link != "https://example.com/index.html" {
		t.Errorf("Expected resolved feed link, got '%s'", result.Feed.Link)
	}
	if len(result.Entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(result.Entries))
	}
	if result.Entries[0].Link != "https://example.com/feeds/entries/1.html" {
		t.Errorf("Expected nested base resolution, got '%s'", result.Entries[0].Link)
	}
}

func TestParseAtomXMLBaseAbsentAttributes(t *testing.T) {
	atomData := `<feed xmlns="http://www.w3.org/2005/Atom" xml:base="http://example.com/feed/">
  <title>Feed</title>
  <generator>HandMade</generator>
  <author>
    <name>Alice</name>
    <uri></uri>
  </author>
</feed>`

	result, err := Parse([]byte(atomData))
	if err != nil {
		t.Fatal(err)
	}
	if result.Feed.GeneratorDetail == nil {
		t.Fatal("Expected generator detail")
	}
	if result.Feed.GeneratorDetail.URI != "" {
		t.Errorf("Expected empty generator uri for absent attribute, got '%s'", result.Feed.GeneratorDetail.URI)
	}
	if result.Feed.AuthorDetail == nil {
		t.Fatal("Expected author detail")
	}
	if result.Feed.AuthorDetail.URI != "" {
		t.Errorf("Expected empty author uri for empty element, got '%s'", result.Feed.AuthorDetail.URI)
	}
}

func TestParseAtom03(t *testing.T) {
	atomData := `<feed version="0.3" xmlns="http://purl.org/atom/ns#">
  <title>Old Feed</title>
  <tagline>Old tagline</tagline>
  <modified>2003-12-13T18:30:02Z</modified>
  <entry>
    <title>Old Entry</title>
    <issued>2003-12-13T08:29:29Z</issued>
    <content type="text/html">Old &lt;i&gt;content&lt;/i&gt;</content>
  </entry>
</feed>`

	result, err := Parse([]byte(atomData))
	if err != nil {
		t.Fatal(err)
	}
	if result.Version != VersionAtom03 {
		t.Errorf("Expected version atom03, got %s", result.Version)
	}
	if result.Feed.Subtitle != "Old tagline" {
		t.Errorf("Expected tagline mapped to subtitle, got '%s'", result.Feed.Subtitle)
	}
	if result.Feed.Updated == nil || !result.Feed.Updated.Equal(time.Date(2003, 12, 13, 18, 30, 2, 0, time.UTC)) {
		t.Errorf("Expected modified mapped to updated, got %v", result.Feed.Updated)
	}
	if len(result.Entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(result.Entries))
	}
	e := result.Entries[0]
	if e.Published == nil || !e.Published.Equal(time.Date(2003, 12, 13, 8, 29, 29, 0, time.UTC)) {
		t.Errorf("Expected issued mapped to published, got %v", e.Published)
	}
	if len(e.Content) != 1 || e.Content[0].Value != "Old <i>content</i>" {
		t.Errorf("Expected mime-typed content decoded, got %v", e.Content)
	}
}

func TestParseAtomInvalidDate(t *testing.T) {
	atomData := `<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Feed</title>
  <updated>whenever</updated>
</feed>`

	result, err := Parse([]byte(atomData))
	if err != nil {
		t.Fatal(err)
	}
	if !result.Bozo {
		t.Error("Expected bozo for unparseable updated")
	}
	if result.BozoException != "Invalid updated format" {
		t.Errorf("Expected 'Invalid updated format', got '%s'", result.BozoException)
	}
	if result.Feed.Title != "Feed" {
		t.Errorf("Expected title still parsed, got '%s'", result.Feed.Title)
	}
}

func TestParseAtomLinkWithoutHref(t *testing.T) {
	atomData := `<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Feed</title>
  <link rel="alternate"/>
  <link href="https://example.com"/>
</feed>`

	result, err := Parse([]byte(atomData))
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Feed.Links) != 1 {
		t.Errorf("Expected href-less link dropped, got %v", result.Feed.Links)
	}
	if result.Feed.Link != "https://example.com" {
		t.Errorf("Expected surviving link promoted, got '%s'", result.Feed.Link)
	}
}

func TestParseAtomEmptyAuthor(t *testing.T) {
	atomData := `<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Feed</title>
  <author></author>
</feed>`

	result, err := Parse([]byte(atomData))
	if err != nil {
		t.Fatal(err)
	}
	if result.Feed.AuthorDetail != nil || len(result.Feed.Authors) != 0 {
		t.Errorf("Expected empty author dropped, got %v", result.Feed.AuthorDetail)
	}
}
