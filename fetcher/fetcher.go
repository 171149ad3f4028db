package fetcher

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"linesheet-extractor/internal/types"
	"linesheet-extractor/utils"
)

// Fetcher loads a rep firm's page in a headless browser (or over plain HTTP
// when the browser is disabled) and returns its visible text. If the page
// links to a catalog or line sheet, that one extra page is loaded and its
// text appended.
type Fetcher struct {
	config        *types.Config
	logger        types.Logger
	httpClient    *utils.HTTPClient
	browserClient *utils.BrowserClient
}

// New creates a fetcher with initialized HTTP and browser clients.
func New(config *types.Config, logger types.Logger) *Fetcher {
	return &Fetcher{
		config:        config,
		logger:        logger,
		httpClient:    utils.NewHTTPClient(config, logger),
		browserClient: utils.NewBrowserClient(config, logger),
	}
}

// Fetch loads url, extracts its visible text, and follows at most one
// inferred catalog link. Failure to load the second page is not fatal; the
// first page's text is still returned.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*types.ScrapedPage, error) {
	f.logger.Infof("Extracting data from: %s", url)

	doc, err := f.loadDocument(ctx, url)
	if err != nil {
		return nil, types.NewFetchError("failed to load page", err)
	}

	text := ExtractText(doc)

	if link, ok := FindCatalogLink(CollectAnchors(doc)); ok {
		resolved, err := ResolveLink(url, link)
		if err != nil {
			f.logger.Warnf("Skipping catalog link %q: %v", link, err)
		} else if navigable(url, resolved) {
			f.logger.Infof("Following catalog link: %s", resolved)
			catalogDoc, err := f.loadDocument(ctx, resolved)
			if err != nil {
				f.logger.Warnf("Failed to load catalog page %s: %v", resolved, err)
			} else {
				text = text + "\n" + ExtractText(catalogDoc)
			}
		}
	}

	if strings.TrimSpace(text) == "" {
		return nil, types.NewFetchError("page contained no extractable text", nil)
	}

	f.logger.Infof("Extracted %d characters of text content", len(text))
	return &types.ScrapedPage{URL: url, RawText: text}, nil
}

// loadDocument fetches a URL and parses it into a goquery document.
func (f *Fetcher) loadDocument(ctx context.Context, url string) (*goquery.Document, error) {
	html, err := f.getPageContent(ctx, url)
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// getPageContent retrieves raw HTML using either the headless browser or the
// plain HTTP client, per configuration.
func (f *Fetcher) getPageContent(ctx context.Context, url string) (string, error) {
	if f.config.UseHeadlessBrowser {
		return f.browserClient.GetPageContent(ctx, url)
	}

	body, err := f.httpClient.Get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// ExtractText returns the document's visible text with script and style
// content removed and runs of whitespace collapsed to single spaces.
func ExtractText(doc *goquery.Document) string {
	clone := doc.Selection.Clone()
	clone.Find("script, style, noscript").Remove()
	return strings.Join(strings.Fields(clone.Text()), " ")
}

// Close cleans up resources
func (f *Fetcher) Close() {
	if f.httpClient != nil {
		f.httpClient.Close()
	}
}
