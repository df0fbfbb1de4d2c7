package ingestion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jonathan/skillgap/internal/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func servePage(t *testing.T, html string, status int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(server.Close)
	return server
}

func longDescription() string {
	return strings.Repeat("We are looking for a backend engineer with Go and PostgreSQL. ", 12)
}

func TestFromURL_ExtractsMainText(t *testing.T) {
	server := servePage(t, `<html><body>
		<nav>Jobs Home</nav>
		<div class="job-description"><h2>About the role</h2><ul><li>Go</li><li>SQL</li></ul></div>
		<form>Apply now</form>
	</body></html>`, http.StatusOK)

	text, metadata, err := FromURL(context.Background(), server.URL, URLOptions{})
	require.NoError(t, err)

	assert.Equal(t, "About the role\nGo\nSQL", text)
	assert.Equal(t, SourceURL, metadata.Source)
	assert.Equal(t, server.URL, metadata.URL)
	assert.Equal(t, string(fetch.PlatformUnknown), metadata.Platform)
	assert.False(t, metadata.Rendered)
}

func TestFromURL_HTTPError(t *testing.T) {
	server := servePage(t, "gone", http.StatusGone)

	_, _, err := FromURL(context.Background(), server.URL, URLOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)

	var fetchErr *fetch.Error
	assert.ErrorAs(t, err, &fetchErr)
}

func TestFromURL_EmptyPage(t *testing.T) {
	server := servePage(t, `<html><body><script>render()</script></body></html>`, http.StatusOK)

	_, _, err := FromURL(context.Background(), server.URL, URLOptions{})
	assert.ErrorIs(t, err, ErrContentExtractionFailed)
}

func TestFromURL_BrowserFallback(t *testing.T) {
	server := servePage(t, `<html><body><div id="root">Loading...</div></body></html>`, http.StatusOK)

	var renderedURL string
	render := func(_ context.Context, url string) (string, error) {
		renderedURL = url
		return `<html><body><main>` + longDescription() + `</main></body></html>`, nil
	}

	text, metadata, err := FromURL(context.Background(), server.URL, URLOptions{UseBrowser: true, Render: render})
	require.NoError(t, err)

	assert.Equal(t, server.URL, renderedURL)
	assert.Contains(t, text, "backend engineer with Go")
	assert.True(t, metadata.Rendered)
}

func TestFromURL_BrowserNotUsedForLongText(t *testing.T) {
	server := servePage(t, `<html><body><main>`+longDescription()+`</main></body></html>`, http.StatusOK)

	render := func(context.Context, string) (string, error) {
		t.Fatal("renderer must not run when HTTP text is long enough")
		return "", nil
	}

	_, metadata, err := FromURL(context.Background(), server.URL, URLOptions{UseBrowser: true, Render: render})
	require.NoError(t, err)
	assert.False(t, metadata.Rendered)
}

func TestFromURL_BrowserFailureKeepsHTTPText(t *testing.T) {
	server := servePage(t, `<html><body><main>Short posting: Go</main></body></html>`, http.StatusOK)

	render := func(context.Context, string) (string, error) {
		return "", errors.New("chrome not installed")
	}

	text, metadata, err := FromURL(context.Background(), server.URL, URLOptions{UseBrowser: true, Render: render})
	require.NoError(t, err)
	assert.Equal(t, "Short posting: Go", text)
	assert.False(t, metadata.Rendered)
}
