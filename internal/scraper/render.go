package scraper

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/chromedp"
)

// RenderHTML loads a URL in headless Chrome and returns the rendered markup.
// Useful when the schedule table is filled in client-side and a plain GET
// only sees the page skeleton. CHROME_PATH overrides the browser binary.
func RenderHTML(ctx context.Context, url string) (string, error) {
	opts := chromedp.DefaultExecAllocatorOptions[:]
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	opts = append(opts,
		chromedp.Headless,
		chromedp.DisableGPU,
		chromedp.NoSandbox,
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromeCtx, chromeCancel := chromedp.NewContext(allocCtx)
	defer chromeCancel()

	var page string
	err := chromedp.Run(chromeCtx,
		chromedp.Navigate(url),
		// Wait for the schedule table to be rendered
		chromedp.WaitVisible(`table`, chromedp.ByQuery),
		// Give the page scripts a moment to finish
		chromedp.Sleep(1*time.Second),
		chromedp.OuterHTML(`html`, &page, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("rendering page: %w", err)
	}

	return page, nil
}
