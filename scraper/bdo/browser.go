package bdo

import (
	"context"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rotisserie/eris"

	"atm-scraper/config"
	"atm-scraper/utils"
)

// BrowserFetcher renders pages in headless Chrome and returns the resulting
// document. Useful when the locator starts serving script-built markup.
type BrowserFetcher struct {
	cfg    *config.Config
	logger *utils.Logger

	once        sync.Once
	allocCtx    context.Context
	cancelAlloc context.CancelFunc
	browserCtx  context.Context
	cancelTab   context.CancelFunc
}

// NewBrowserFetcher creates a BrowserFetcher. Chrome is started on first use.
func NewBrowserFetcher(cfg *config.Config, logger *utils.Logger) *BrowserFetcher {
	return &BrowserFetcher{cfg: cfg, logger: logger}
}

func (b *BrowserFetcher) start() {
	chromeBin := findChromeBinary(b.cfg.ChromeBin)
	b.logger.Info("[browser] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(b.cfg.UserAgent),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	b.allocCtx, b.cancelAlloc = chromedp.NewExecAllocator(context.Background(), opts...)
	b.browserCtx, b.cancelTab = chromedp.NewContext(b.allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
}

// Fetch navigates to url and returns the rendered HTML.
func (b *BrowserFetcher) Fetch(ctx context.Context, url string) (string, error) {
	b.once.Do(b.start)

	tabCtx, cancel := chromedp.NewContext(b.browserCtx)
	defer cancel()

	timeout := time.Duration(b.cfg.HTTPTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, timeout)
	defer cancelTimeout()

	// Propagate caller cancellation into the tab.
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", &NetworkError{URL: url, Err: eris.Wrap(err, "fetch: chromedp")}
	}
	return html, nil
}

// Close shuts the browser down.
func (b *BrowserFetcher) Close() error {
	if b.cancelTab != nil {
		b.cancelTab()
	}
	if b.cancelAlloc != nil {
		b.cancelAlloc()
	}
	return nil
}

// findChromeBinary locates a Chrome/Chromium binary, preferring the configured one.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
