package parser

import (
	"net/url"
	"strings"
)

var absoluteSchemes = []string{"http://", "https://", "ftp://", "mailto:", "tel:"}

// ResolveURL resolves href against base per RFC 3986. An href that already
// carries a recognized absolute scheme is returned unchanged, as is any
// href for which no usable base exists. An empty base means "no base".
func ResolveURL(href, base string) string {
	for _, scheme := range absoluteSchemes {
		if strings.HasPrefix(href, scheme) {
			return href
		}
	}
	if base == "" {
		return href
	}
	baseURL, err := url.Parse(base)
	if err != nil || !baseURL.IsAbs() {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}

// CombineBases computes the effective base for a nested scope that may
// declare its own base. A child base can itself be relative to the parent.
// An empty string stands for "no base".
func CombineBases(parent, child string) string {
	if child == "" {
		return parent
	}
	if parent == "" {
		return child
	}
	return ResolveURL(child, parent)
}

// baseContext tracks the in-scope xml:base while traversal descends.
// Values are small and copied down the recursion, so an inner scope never
// mutates its parent's base.
type baseContext struct {
	base string
}

// resolve maps href against the in-scope base. An absent attribute or
// empty element must not materialize the base as a value, so an empty
// href stays empty.
func (b baseContext) resolve(href string) string {
	if href == "" {
		return ""
	}
	return ResolveURL(href, b.base)
}

// child returns the context for a nested scope declaring xmlBase, or the
// receiver unchanged when the scope declares none.
func (b baseContext) child(xmlBase string) baseContext {
	if xmlBase == "" {
		return b
	}
	return baseContext{base: CombineBases(b.base, xmlBase)}
}
