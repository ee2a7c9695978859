// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the résumé site over HTTP with gin.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pdiddy/cvsite/pkg/types"
)

const (
	defaultCookieName      = "cvsite_lang"
	defaultShutdownTimeout = 10 * time.Second
	cookieMaxAge           = 365 * 24 * 60 * 60
)

// DocumentSource loads the document for a language.
type DocumentSource interface {
	Load(lang types.Lang) (*types.Document, error)
	// Dir is the directory relative photo paths resolve against.
	Dir(lang types.Lang) string
}

// PDFSource hands out PDF artifacts.
type PDFSource interface {
	Available(lang types.Lang) bool
	Ensure(ctx context.Context, lang types.Lang) (string, error)
}

// Deps are the collaborators a Server needs. PDFs may be nil, in which
// case no download is offered.
type Deps struct {
	Documents DocumentSource
	PDFs      PDFSource
	Config    types.ServerConfig
	Logger    zerolog.Logger
}

// Server is the HTTP front end.
type Server struct {
	engine *gin.Engine
	docs   DocumentSource
	pdfs   PDFSource
	cfg    types.ServerConfig
	log    zerolog.Logger

	// seen holds the last document warned about per language so shadowed
	// sections are reported once per load.
	seen sync.Map
}

// New builds a Server and registers its routes.
func New(d Deps) *Server {
	cfg := d.Config
	if cfg.CookieName == "" {
		cfg.CookieName = defaultCookieName
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	s := &Server{
		docs: d.Documents,
		pdfs: d.PDFs,
		cfg:  cfg,
		log:  d.Logger,
	}

	s.engine = gin.New()
	s.engine.Use(gin.Recovery())
	s.engine.Use(requestLogger(s.log))
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/", s.index)
	s.engine.POST("/lang", s.toggleLang)
	s.engine.GET("/lang/:code", s.setLang)
	s.engine.GET("/cv.pdf", s.download)
	s.engine.GET("/photo", s.photo)
	s.engine.GET("/healthz", s.healthz)
}

// Handler returns the http.Handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on the configured address until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listening on %s: %w", srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info().Msg("server is shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	s.log.Info().Msg("server stopped")
	return nil
}
