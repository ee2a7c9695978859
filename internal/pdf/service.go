// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/cvsite/pkg/types"
)

// ServiceConfig wires a Service. Renderer and Store are optional: without
// a renderer only pre-built artifacts are served, without a store
// freshness falls back to comparing file modification times.
type ServiceConfig struct {
	Renderer Renderer
	Store    *Store
	Sources  map[types.Lang]string
	Outputs  map[types.Lang]string
	Logger   zerolog.Logger
}

// Service hands out PDF artifacts, rendering them on demand.
type Service struct {
	renderer Renderer
	store    *Store
	sources  map[types.Lang]string
	outputs  map[types.Lang]string
	log      zerolog.Logger

	mu    sync.Mutex
	locks map[types.Lang]*sync.Mutex
}

// BatchResult holds the outcome of a RenderAll run.
type BatchResult struct {
	Rendered int
	Skipped  int
	Failed   int
}

// Total returns the number of languages processed.
func (r BatchResult) Total() int {
	return r.Rendered + r.Skipped + r.Failed
}

// HasFailures reports whether any language failed to render.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// NewService creates a Service from cfg.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		renderer: cfg.Renderer,
		store:    cfg.Store,
		sources:  cfg.Sources,
		outputs:  cfg.Outputs,
		log:      cfg.Logger,
		locks:    make(map[types.Lang]*sync.Mutex),
	}
}

// Output returns the configured artifact path for lang.
func (s *Service) Output(lang types.Lang) (string, bool) {
	p, ok := s.outputs[lang]
	return p, ok && p != ""
}

// installChecker is implemented by renderers that depend on an external
// tool and can tell whether it is installed.
type installChecker interface {
	Available() bool
}

// Available reports whether a PDF can be offered for lang without
// rendering anything: an artifact exists, or a usable renderer and a
// source are configured.
func (s *Service) Available(lang types.Lang) bool {
	out, ok := s.Output(lang)
	if !ok {
		return false
	}
	if _, err := os.Stat(out); err == nil {
		return true
	}
	if s.renderer == nil {
		return false
	}
	if ic, ok := s.renderer.(installChecker); ok && !ic.Available() {
		return false
	}
	src, ok := s.sources[lang]
	if !ok {
		return false
	}
	_, err := os.Stat(src)
	return err == nil
}

// Ensure returns the path of an up-to-date PDF for lang, rendering it when
// the artifact is missing or older than its source. When rendering fails
// and an older artifact exists, that artifact is returned. Errors wrap
// ErrUnavailable.
func (s *Service) Ensure(ctx context.Context, lang types.Lang) (string, error) {
	out, ok := s.Output(lang)
	if !ok {
		return "", fmt.Errorf("%w: no output configured for %s", ErrUnavailable, lang)
	}

	if s.renderer == nil {
		if _, err := os.Stat(out); err != nil {
			return "", fmt.Errorf("%w: %s", ErrUnavailable, out)
		}
		return out, nil
	}

	src, ok := s.sources[lang]
	if !ok || src == "" {
		return "", fmt.Errorf("%w: no source configured for %s", ErrUnavailable, lang)
	}

	lock := s.lock(lang)
	lock.Lock()
	defer lock.Unlock()

	srcInfo, err := os.Stat(src)
	if err != nil {
		return s.fallback(lang, out, fmt.Errorf("reading source: %w", err))
	}
	if s.fresh(ctx, lang, out, srcInfo.ModTime()) {
		return out, nil
	}

	if err := s.render(ctx, lang, src, out, srcInfo.ModTime()); err != nil {
		return s.fallback(lang, out, err)
	}
	return out, nil
}

// RenderAll renders every configured language, printing per-language
// status to w followed by a summary. Up-to-date artifacts are skipped
// unless force is set.
func (s *Service) RenderAll(ctx context.Context, w io.Writer, force bool) BatchResult {
	var result BatchResult
	for _, lang := range types.Langs {
		src, ok := s.sources[lang]
		if !ok {
			continue
		}
		out, ok := s.Output(lang)
		if !ok {
			fmt.Fprintf(w, "failed:   %s (no output path configured)\n", lang)
			result.Failed++
			continue
		}
		if s.renderer == nil {
			fmt.Fprintf(w, "failed:   %s (no renderer configured)\n", lang)
			result.Failed++
			continue
		}

		srcInfo, err := os.Stat(src)
		if err != nil {
			fmt.Fprintf(w, "failed:   %s (%v)\n", lang, err)
			result.Failed++
			continue
		}
		if !force && s.fresh(ctx, lang, out, srcInfo.ModTime()) {
			fmt.Fprintf(w, "skipped:  %s (up to date)\n", lang)
			result.Skipped++
			continue
		}

		lock := s.lock(lang)
		lock.Lock()
		err = s.render(ctx, lang, src, out, srcInfo.ModTime())
		lock.Unlock()
		if err != nil {
			fmt.Fprintf(w, "failed:   %s (%v)\n", lang, err)
			result.Failed++
			continue
		}
		fmt.Fprintf(w, "rendered: %s -> %s\n", lang, out)
		result.Rendered++
	}
	fmt.Fprintf(w, "\nBatch summary: %d rendered, %d skipped, %d failed (total: %d)\n",
		result.Rendered, result.Skipped, result.Failed, result.Total())
	return result
}

func (s *Service) lock(lang types.Lang) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[lang]
	if !ok {
		l = &sync.Mutex{}
		s.locks[lang] = l
	}
	return l
}

// fresh reports whether out was built from the source as of srcModTime.
// The ledger is authoritative when it has an entry; otherwise the
// artifact must be at least as new as the source.
func (s *Service) fresh(ctx context.Context, lang types.Lang, out string, srcModTime time.Time) bool {
	outInfo, err := os.Stat(out)
	if err != nil {
		return false
	}
	if s.store != nil {
		b, ok, err := s.store.Latest(ctx, lang)
		if err != nil {
			s.log.Warn().Err(err).Str("lang", string(lang)).Msg("reading build ledger")
		} else if ok {
			return b.Status == StatusDone && b.PDFPath == out && b.SourceModTime.Equal(srcModTime)
		}
	}
	return !outInfo.ModTime().Before(srcModTime)
}

func (s *Service) render(ctx context.Context, lang types.Lang, src, out string, srcModTime time.Time) error {
	start := time.Now()
	err := s.renderer.Render(ctx, src, out)

	b := Build{
		Lang:          lang,
		SourcePath:    src,
		SourceModTime: srcModTime,
		PDFPath:       out,
		Status:        StatusDone,
		BuiltAt:       time.Now(),
	}
	if err != nil {
		b.Status = StatusFailed
		b.Message = err.Error()
		var re *RenderError
		if errors.As(err, &re) {
			b.ExitCode = re.ExitCode
		}
		s.log.Error().Err(err).Str("lang", string(lang)).Str("source", src).Msg("pdf render failed")
	} else {
		s.log.Info().Str("lang", string(lang)).Str("pdf", out).Dur("took", time.Since(start)).Msg("pdf rendered")
	}

	if s.store != nil {
		if recErr := s.store.Record(ctx, b); recErr != nil {
			s.log.Warn().Err(recErr).Str("lang", string(lang)).Msg("recording build")
		}
	}
	return err
}

func (s *Service) fallback(lang types.Lang, out string, cause error) (string, error) {
	if _, err := os.Stat(out); err == nil {
		s.log.Warn().Err(cause).Str("lang", string(lang)).Str("pdf", out).Msg("serving stale pdf")
		return out, nil
	}
	return "", fmt.Errorf("%w: %v", ErrUnavailable, cause)
}
