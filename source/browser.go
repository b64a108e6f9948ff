package source

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"exchange-catalog/models"
	"exchange-catalog/utils"
)

// nextDataScript reads the page props the site embeds for hydration.
const nextDataScript = `JSON.stringify(window.__NEXT_DATA__?.props?.pageProps ?? null)`

// BrowserSource renders the platform's pages in headless Chrome and reads
// the data embedded in them. It serves the same envelopes as the API.
type BrowserSource struct {
	siteURL   string
	chromeBin string
	timeout   time.Duration
	settle    time.Duration
	logger    *utils.Logger
	retry     *utils.RetryConfig
}

// NewBrowserSource creates a BrowserSource. chromeBin may be empty, in which
// case the usual install locations are searched.
func NewBrowserSource(siteURL, chromeBin string, timeout time.Duration, maxRetries int, logger *utils.Logger) *BrowserSource {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	return &BrowserSource{
		siteURL:   strings.TrimRight(siteURL, "/"),
		chromeBin: chromeBin,
		timeout:   timeout,
		settle:    time.Second,
		logger:    logger,
		retry: &utils.RetryConfig{
			MaxAttempts: maxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// Fetch navigates to the endpoint's page and returns its embedded props.
func (b *BrowserSource) Fetch(ctx context.Context, ep models.Endpoint) ([]byte, error) {
	if ep.Page == "" {
		return nil, fmt.Errorf("%w: endpoint %s has no page", ErrLoadFailed, ep.Path)
	}
	pageURL := b.siteURL + ep.Page
	b.logger.Debug("[browser] Using browser binary: %q", b.chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(userAgent),
	)
	if b.chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(b.chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	var props string
	err := b.retry.Do(ctx, "render "+ep.Page, func() error {
		tabCtx, cancel := chromedp.NewContext(browserCtx)
		defer cancel()

		tabCtx, cancelTimeout := context.WithTimeout(tabCtx, b.timeout)
		defer cancelTimeout()

		err := chromedp.Run(tabCtx,
			chromedp.Navigate(pageURL),
			chromedp.WaitReady("body", chromedp.ByQuery),
			chromedp.Sleep(b.settle),
			chromedp.Evaluate(nextDataScript, &props),
		)
		if err != nil {
			if isTimeout(err) || tabCtx.Err() != nil {
				return fmt.Errorf("%w: %s", ErrTimeout, pageURL)
			}
			return fmt.Errorf("%w: chromedp: %v", ErrLoadFailed, err)
		}
		if props == "" || props == "null" {
			return fmt.Errorf("%w: no embedded data on %s", ErrLoadFailed, pageURL)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	b.logger.Info("[browser] Read %d bytes of page data from %s", len(props), pageURL)
	return []byte(props), nil
}

// findChromeBinary locates a Chrome/Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
