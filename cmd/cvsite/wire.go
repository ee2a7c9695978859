// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/pdiddy/cvsite/internal/cvdoc"
	"github.com/pdiddy/cvsite/internal/page"
	"github.com/pdiddy/cvsite/internal/pdf"
	"github.com/pdiddy/cvsite/pkg/types"
)

func newLoader(cfg types.SiteConfig) *cvdoc.Loader {
	var opts []cvdoc.Option
	if cfg.Data.Schema {
		opts = append(opts, cvdoc.WithSchema())
	}
	return cvdoc.NewLoader(cfg.Data.Files, opts...)
}

// newRenderer returns the configured renderer, or nil for the "none"
// backend.
func newRenderer(cfg types.SiteConfig, log zerolog.Logger) pdf.Renderer {
	switch cfg.PDF.Backend {
	case types.BackendChrome:
		return pdf.NewChrome(printPage(cfg.Data.Files), cfg.PDF.Timeout)
	case types.BackendNone:
		return nil
	default:
		r := pdf.NewRendercv(cfg.PDF.Bin, cfg.PDF.Timeout)
		if !r.Available() {
			log.Warn().Str("bin", cfg.PDF.Bin).Msg("rendercv not found on PATH; only existing PDFs will be served")
		}
		return r
	}
}

// newPDFService wires the renderer and ledger. The returned func closes
// the ledger.
func newPDFService(cfg types.SiteConfig, log zerolog.Logger) (*pdf.Service, func(), error) {
	var store *pdf.Store
	closeFn := func() {}
	if cfg.PDF.LedgerPath != "" {
		s, err := pdf.OpenStore(cfg.PDF.LedgerPath)
		if err != nil {
			return nil, nil, err
		}
		store = s
		closeFn = func() { s.Close() }
	}

	svc := pdf.NewService(pdf.ServiceConfig{
		Renderer: newRenderer(cfg, log),
		Store:    store,
		Sources:  cfg.Data.Files,
		Outputs:  cfg.PDF.Files,
		Logger:   log,
	})
	return svc, closeFn, nil
}

// printPage builds the fully expanded page for a data file so headless
// Chrome can print it.
func printPage(files map[types.Lang]string) pdf.PageFunc {
	return func(_ context.Context, sourcePath string, w io.Writer) error {
		doc, err := cvdoc.ReadFile(sourcePath)
		if err != nil {
			return err
		}

		lang := types.LangEN
		for l, p := range files {
			if filepath.Clean(p) == filepath.Clean(sourcePath) {
				lang = l
				break
			}
		}

		opts := page.Options{Expanded: true}
		if p, ok := page.PhotoPath(doc, filepath.Dir(sourcePath)); ok {
			if abs, err := filepath.Abs(p); err == nil {
				opts.PhotoURL = "file://" + filepath.ToSlash(abs)
			}
		}
		return page.Render(w, page.Build(doc, lang, opts))
	}
}
