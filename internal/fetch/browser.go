package fetch

import (
	"context"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/jonathan/resume-tailor/internal/logger"
)

// MinContentLength is the shortest extracted posting accepted from a plain
// HTTP fetch; anything shorter is assumed to be rendered client-side.
const MinContentLength = 500

// BrowserTimeout bounds a headless rendering session.
const BrowserTimeout = 30 * time.Second

// ShouldUseBrowser reports whether the extracted text is too short to be a
// real job posting.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// WithBrowser renders a page in headless Chrome and returns the resulting
// HTML. Chrome or Chromium must be installed.
func WithBrowser(ctx context.Context, url string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = BrowserTimeout
	}
	log := logger.Ctx(ctx)
	log.Debug().Str("url", url).Msg("starting headless browser")

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		// job boards hydrate the description after load
		chromedp.Sleep(3*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: url, Message: "browser rendering failed", Cause: err}
	}

	log.Debug().Str("url", url).Int("bytes", len(html)).Msg("browser rendered page")
	return html, nil
}

// PostingText fetches a job posting and extracts its description using
// platform-aware selectors. When useBrowser is set and the plain fetch yields
// too little text, the page is rendered with headless Chrome instead; a failed
// render keeps the plain result.
func PostingText(ctx context.Context, urlStr string, useBrowser bool) (string, error) {
	platform := DetectPlatform(urlStr)
	content := PlatformContentSelectors(platform)
	noise := PlatformNoiseSelectors(platform)
	log := logger.Ctx(ctx)

	result, err := URL(ctx, urlStr, nil)
	if err != nil {
		return "", err
	}

	text, err := ExtractMainText(result.HTML, content, noise...)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "content extraction failed", Cause: err}
	}
	log.Debug().Str("platform", string(platform)).Int("chars", len(text)).Msg("extracted posting text")

	if useBrowser && ShouldUseBrowser(text) {
		text = renderedText(ctx, urlStr, text, content, noise)
	}

	if text == "" {
		return "", &Error{URL: urlStr, Message: "job posting is empty"}
	}
	return text, nil
}

// renderedText returns the browser-rendered posting text when it is longer
// than fallback.
func renderedText(ctx context.Context, urlStr, fallback string, content, noise []string) string {
	html, err := WithBrowser(ctx, urlStr, BrowserTimeout)
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).Msg("browser fallback failed, keeping HTTP content")
		return fallback
	}
	rendered, err := ExtractMainText(html, content, noise...)
	if err != nil || len(rendered) <= len(fallback) {
		return fallback
	}
	return rendered
}
