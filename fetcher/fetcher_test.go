package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linesheet-extractor/internal/types"
)

func testConfig() *types.Config {
	config := types.DefaultConfig()
	config.UseHeadlessBrowser = false
	config.RequestDelay = 10 * time.Millisecond
	return config
}

func TestFetch_FollowsCatalogLinkOnce(t *testing.T) {
	var catalogHits int32

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
			<p>Welcome to Acme Reps</p>
			<a href="/about">About</a>
			<a href="/line-sheet">View our Catalog</a>
		</body></html>`))
	})
	mux.HandleFunc("/line-sheet", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&catalogHits, 1)
		w.Write([]byte(`<html><body><p>BrandX Surface Aerators</p></body></html>`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	f := New(testConfig(), logrus.New())
	defer f.Close()

	page, err := f.Fetch(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&catalogHits))
	assert.Contains(t, page.RawText, "Welcome to Acme Reps")
	assert.Contains(t, page.RawText, "BrandX Surface Aerators")
	assert.Equal(t, server.URL, page.URL)
}

func TestFetch_NoCatalogLink(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
			<p>Acme Reps serves the Midwest</p>
			<a href="/contact">Contact Us</a>
		</body></html>`))
	}))
	defer server.Close()

	f := New(testConfig(), logrus.New())
	defer f.Close()

	page, err := f.Fetch(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, "Acme Reps serves the Midwest Contact Us", page.RawText)
}

func TestFetch_CatalogLinkFailureIsTolerated(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
			<p>Acme Reps</p>
			<a href="/products">Products</a>
		</body></html>`))
	})
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	f := New(testConfig(), logrus.New())
	defer f.Close()

	page, err := f.Fetch(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Contains(t, page.RawText, "Acme Reps")
}

func TestFetch_EmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><script>var x = 1;</script></body></html>`))
	}))
	defer server.Close()

	f := New(testConfig(), logrus.New())
	defer f.Close()

	_, err := f.Fetch(context.Background(), server.URL)

	require.Error(t, err)
	assert.True(t, types.IsStage(err, types.StageFetch))
}

func TestFetch_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	f := New(testConfig(), logrus.New())
	defer f.Close()

	_, err := f.Fetch(context.Background(), server.URL)

	require.Error(t, err)
	assert.True(t, types.IsStage(err, types.StageFetch))
}

func TestExtractText_StripsScriptAndStyle(t *testing.T) {
	html := `<html><head><style>body { color: red; }</style></head><body>
		<script>console.log("hidden");</script>
		<p>Visible   text</p>
		<noscript>fallback</noscript>
		<div>more
		text</div>
	</body></html>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	text := ExtractText(doc)

	assert.Equal(t, "Visible text more text", text)
	assert.NotContains(t, text, "console.log")
	assert.NotContains(t, text, "color: red")
}
