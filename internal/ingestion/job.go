package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jonathan/skillgap/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when the posting cannot be downloaded
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when no text can be extracted
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// URLOptions configures FromURL.
type URLOptions struct {
	// UseBrowser renders the page headlessly when the HTTP text is too short.
	UseBrowser bool
	Verbose    bool
	Fetch      *fetch.Options
	// Render overrides the headless renderer; nil uses Chrome.
	Render fetch.RenderFunc
}

// FromURL fetches a job posting and returns its cleaned main text.
// Platform-specific selectors are applied when the job board is recognized.
// A failed browser render falls back to the HTTP text.
func FromURL(ctx context.Context, urlStr string, opts URLOptions) (string, *Metadata, error) {
	platform := fetch.DetectPlatform(urlStr)
	if opts.Verbose {
		log.Printf("[ingestion] URL: %s (platform %s)", urlStr, platform)
	}

	result, err := fetch.URL(ctx, urlStr, opts.Fetch)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	contentSelectors, noiseSelectors := fetch.Selectors(platform)
	text, err := fetch.ExtractMainText(result.HTML, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	if opts.Verbose {
		log.Printf("[ingestion] extracted %d chars over HTTP", len(text))
	}

	rendered := false
	if opts.UseBrowser && fetch.ShouldUseBrowser(text) {
		render := opts.Render
		if render == nil {
			render = fetch.ChromeRenderer(fetch.DefaultBrowserTimeout, opts.Verbose)
		}
		if opts.Verbose {
			log.Printf("[ingestion] content too short (%d < %d chars), rendering in browser", len(text), fetch.MinContentLength)
		}

		if html, renderErr := render(ctx, urlStr); renderErr != nil {
			log.Printf("[ingestion] browser rendering failed, using HTTP content: %v", renderErr)
		} else if browserText, extractErr := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...); extractErr != nil {
			log.Printf("[ingestion] browser content extraction failed: %v", extractErr)
		} else {
			text = browserText
			rendered = true
		}
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", nil, fmt.Errorf("%w: no text found at %s", ErrContentExtractionFailed, urlStr)
	}

	metadata := NewMetadata(cleaned, SourceURL)
	metadata.URL = urlStr
	metadata.Platform = string(platform)
	metadata.Rendered = rendered
	return cleaned, metadata, nil
}
