// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// PageFunc writes the printable HTML page for a data file to w.
type PageFunc func(ctx context.Context, sourcePath string, w io.Writer) error

// Chrome renders PDFs by printing the site's own HTML page with headless
// Chrome. It needs Chrome or Chromium installed.
type Chrome struct {
	page    PageFunc
	timeout time.Duration
}

// NewChrome creates a renderer that prints the page produced by fn. A
// positive timeout bounds each render.
func NewChrome(fn PageFunc, timeout time.Duration) *Chrome {
	return &Chrome{page: fn, timeout: timeout}
}

// Render writes the page for sourcePath to a temporary file, loads it in
// headless Chrome and saves the printed PDF at destPath.
func (c *Chrome) Render(ctx context.Context, sourcePath, destPath string) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	htmlPath, err := c.writePage(ctx, sourcePath)
	if err != nil {
		return &RenderError{Source: sourcePath, Cause: err}
	}
	defer os.Remove(htmlPath)

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

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			return err
		}),
	)
	if err != nil {
		return &RenderError{Source: sourcePath, Cause: fmt.Errorf("printing page: %w", err)}
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(destPath, pdf, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", destPath, err)
	}
	return nil
}

func (c *Chrome) writePage(ctx context.Context, sourcePath string) (string, error) {
	f, err := os.CreateTemp("", "cvsite-*.html")
	if err != nil {
		return "", fmt.Errorf("creating page file: %w", err)
	}
	defer f.Close()

	if err := c.page(ctx, sourcePath, f); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("building page: %w", err)
	}

	abs, err := filepath.Abs(f.Name())
	if err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return abs, nil
}
