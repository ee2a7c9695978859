// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"errors"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/cvsite/internal/cvdoc"
	"github.com/pdiddy/cvsite/internal/locale"
	"github.com/pdiddy/cvsite/internal/page"
	"github.com/pdiddy/cvsite/internal/section"
	"github.com/pdiddy/cvsite/pkg/types"
)

const (
	photoURL = "/photo"
	pdfURL   = "/cv.pdf"
)

// sessionLang returns the language stored in the session cookie. Without
// a valid cookie the language is resolved from Accept-Language and
// stored.
func (s *Server) sessionLang(c *gin.Context) types.Lang {
	if v, err := c.Cookie(s.cfg.CookieName); err == nil {
		if l, ok := locale.Parse(v); ok {
			return l
		}
	}
	l := locale.ResolveWith(locale.AcceptLanguage(c.GetHeader("Accept-Language")), "")
	s.setCookie(c, l)
	return l
}

func (s *Server) setCookie(c *gin.Context, l types.Lang) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cfg.CookieName, string(l), cookieMaxAge, "/", "", false, true)
}

func (s *Server) index(c *gin.Context) {
	lang := s.sessionLang(c)

	doc, err := s.docs.Load(lang)
	switch {
	case errors.Is(err, cvdoc.ErrNotFound):
		s.log.Warn().Err(err).Str("lang", string(lang)).Msg("cv data not found")
		s.renderPage(c, http.StatusNotFound, page.MissingView(lang))
		return
	case err != nil:
		s.log.Error().Err(err).Str("lang", string(lang)).Msg("loading cv data")
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "The CV data file is malformed and cannot be displayed.")
		return
	}

	s.warnShadowed(lang, doc)

	var opts page.Options
	if _, ok := page.PhotoPath(doc, s.docs.Dir(lang)); ok {
		opts.PhotoURL = photoURL
	}
	if s.pdfs != nil && s.pdfs.Available(lang) {
		opts.PDFURL = pdfURL
	}
	s.renderPage(c, http.StatusOK, page.Build(doc, lang, opts))
}

func (s *Server) renderPage(c *gin.Context, status int, v page.View) {
	var buf bytes.Buffer
	if err := page.Render(&buf, v); err != nil {
		s.log.Error().Err(err).Msg("rendering page")
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) warnShadowed(lang types.Lang, doc *types.Document) {
	if prev, ok := s.seen.Load(lang); ok && prev == doc {
		return
	}
	s.seen.Store(lang, doc)
	for _, sh := range section.Shadowed(doc.Sections) {
		s.log.Warn().
			Str("lang", string(lang)).
			Str("label", sh.Label).
			Str("role", sh.Role.String()).
			Str("shown", sh.Winner).
			Msg("section ignored, role already filled")
	}
}

func (s *Server) toggleLang(c *gin.Context) {
	s.setCookie(c, locale.Toggle(s.sessionLang(c)))
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) setLang(c *gin.Context) {
	l, ok := locale.Parse(c.Param("code"))
	if !ok {
		c.String(http.StatusBadRequest, "unsupported language %q", c.Param("code"))
		return
	}
	s.setCookie(c, l)
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) download(c *gin.Context) {
	lang := s.sessionLang(c)
	if s.pdfs == nil {
		c.String(http.StatusServiceUnavailable, "download unavailable")
		return
	}

	path, err := s.pdfs.Ensure(c.Request.Context(), lang)
	if err != nil {
		s.log.Warn().Err(err).Str("lang", string(lang)).Msg("pdf unavailable")
		_ = c.Error(err)
		c.String(http.StatusServiceUnavailable, "download unavailable")
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

func (s *Server) photo(c *gin.Context) {
	lang := s.sessionLang(c)
	doc, err := s.docs.Load(lang)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	p, ok := page.PhotoPath(doc, s.docs.Dir(lang))
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	c.File(p)
}

func (s *Server) healthz(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
