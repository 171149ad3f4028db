package fetcher

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Anchor is the visible text and target of a single <a> element.
type Anchor struct {
	Text string
	Href string
}

// catalogKeywords are matched case-insensitively against anchor text to
// locate the page that carries the firm's line sheet or product catalog.
var catalogKeywords = []string{
	"line sheet",
	"linesheet",
	"product",
	"catalog",
	"equipment",
	"brand",
	"manufacturer",
}

// CollectAnchors gathers every anchor's visible text and href from a parsed
// document. Anchors without an href are skipped.
func CollectAnchors(doc *goquery.Document) []Anchor {
	var anchors []Anchor
	doc.Find("a").Each(func(i int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists {
			return
		}
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}
		anchors = append(anchors, Anchor{
			Text: strings.TrimSpace(s.Text()),
			Href: href,
		})
	})
	return anchors
}

// FindCatalogLink scans anchors in document order for the first one whose
// visible text contains a catalog keyword. It is a pure function so the
// heuristic can be tested without a live browser.
func FindCatalogLink(anchors []Anchor) (string, bool) {
	for _, a := range anchors {
		text := strings.ToLower(a.Text)
		for _, kw := range catalogKeywords {
			if strings.Contains(text, kw) {
				return a.Href, true
			}
		}
	}
	return "", false
}

// ResolveLink resolves href against the page's base URL, turning relative
// catalog links into absolute ones.
func ResolveLink(baseURL, href string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}

// navigable reports whether a resolved catalog link is worth loading as a
// second page: http(s) only, and not the page we already have.
func navigable(pageURL, resolved string) bool {
	if resolved == "" {
		return false
	}
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return strings.TrimRight(resolved, "/") != strings.TrimRight(pageURL, "/")
}
