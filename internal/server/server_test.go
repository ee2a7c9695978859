// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cvsite/internal/cvdoc"
	"github.com/pdiddy/cvsite/internal/pdf"
	"github.com/pdiddy/cvsite/pkg/types"
)

const cvEN = `cv:
  name: Ada Lovelace
  headline: Backend Engineer
  photo: photo.jpg
  sections:
    summary:
      - Writes programs for engines.
    experience:
      - company: Analytical Engines
        position: Engineer
        start_date: 2020
        highlights:
          - "Technologies: Go, SQL"
`

const cvES = `cv:
  name: Ada Lovelace
  sections:
    resumen:
      - Escribe programas.
    experiencia:
      - company: Analytical Engines
        position: Ingeniera
        start_date: 2020
`

type fakePDFs struct {
	path      string
	err       error
	available bool
}

func (f *fakePDFs) Available(types.Lang) bool { return f.available }

func (f *fakePDFs) Ensure(context.Context, types.Lang) (string, error) {
	return f.path, f.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, files map[string]string, pdfs PDFSource) *Server {
	t.Helper()
	dir := t.TempDir()
	paths := map[types.Lang]string{}
	for _, lang := range types.Langs {
		name := "cv_" + string(lang) + ".yaml"
		paths[lang] = filepath.Join(dir, name)
		if content, ok := files[name]; ok {
			require.NoError(t, os.WriteFile(paths[lang], []byte(content), 0o644))
		}
	}
	if content, ok := files["photo.jpg"]; ok {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "photo.jpg"), []byte(content), 0o644))
	}
	return New(Deps{
		Documents: cvdoc.NewLoader(paths),
		PDFs:      pdfs,
		Logger:    zerolog.New(io.Discard),
	})
}

func do(s *Server, method, path string, cookie string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: defaultCookieName, Value: cookie})
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func cookieValue(w *httptest.ResponseRecorder) string {
	for _, c := range w.Result().Cookies() {
		if c.Name == defaultCookieName {
			return c.Value
		}
	}
	return ""
}

func TestIndexResolvesLanguage(t *testing.T) {
	s := newTestServer(t, map[string]string{"cv_en.yaml": cvEN, "cv_es.yaml": cvES}, nil)

	tests := []struct {
		name       string
		cookie     string
		accept     string
		wantLang   string
		wantBody   string
		wantCookie string
	}{
		{name: "spanish browser", accept: "es-ES,es;q=0.9", wantBody: "Sobre mí", wantCookie: "es"},
		{name: "english browser", accept: "en-GB", wantBody: "About Me", wantCookie: "en"},
		{name: "no header falls back to english", wantBody: "About Me", wantCookie: "en"},
		{name: "unsupported browser language", accept: "fr-FR", wantBody: "About Me", wantCookie: "en"},
		{name: "cookie wins over header", cookie: "es", accept: "en-US", wantBody: "Experiencia"},
		{name: "invalid cookie re-resolved", cookie: "de", accept: "es", wantBody: "Sobre mí", wantCookie: "es"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(s, http.MethodGet, "/", tt.cookie, map[string]string{"Accept-Language": tt.accept})
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			assert.Equal(t, tt.wantCookie, cookieValue(w))
		})
	}
}

func TestIndexRendersTimeline(t *testing.T) {
	s := newTestServer(t, map[string]string{"cv_en.yaml": cvEN}, nil)

	w := do(s, http.MethodGet, "/", "en", nil)
	body := w.Body.String()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body, "<summary>Engineer @ Analytical Engines (2020 — present)</summary>")
	assert.Contains(t, body, `<span class="tag">Go</span><span class="tag">SQL</span>`)
	assert.NotContains(t, body, pdfURL, "no pdf source configured")
}

func TestIndexMissingData(t *testing.T) {
	s := newTestServer(t, map[string]string{"cv_en.yaml": cvEN}, nil)

	w := do(s, http.MethodGet, "/", "es", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "No se encontraron los datos del CV.")
	assert.Contains(t, w.Body.String(), "🇬🇧 English", "language switch stays available")
}

func TestIndexMalformedData(t *testing.T) {
	s := newTestServer(t, map[string]string{"cv_en.yaml": "design:\n  theme: classic\n"}, nil)

	w := do(s, http.MethodGet, "/", "en", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "<html")
}

func TestToggleLang(t *testing.T) {
	s := newTestServer(t, map[string]string{"cv_en.yaml": cvEN}, nil)

	tests := []struct {
		cookie string
		want   string
	}{
		{cookie: "en", want: "es"},
		{cookie: "es", want: "en"},
	}
	for _, tt := range tests {
		t.Run(tt.cookie, func(t *testing.T) {
			w := do(s, http.MethodPost, "/lang", tt.cookie, nil)
			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, "/", w.Header().Get("Location"))
			assert.Equal(t, tt.want, cookieValue(w))
		})
	}
}

func TestSetLang(t *testing.T) {
	s := newTestServer(t, nil, nil)

	w := do(s, http.MethodGet, "/lang/ES", "en", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "es", cookieValue(w))

	w = do(s, http.MethodGet, "/lang/fr", "en", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, cookieValue(w))
}

func TestDownloadUnavailable(t *testing.T) {
	pdfs := &fakePDFs{err: fmt.Errorf("%w: rendercv exited 1", pdf.ErrUnavailable)}
	s := newTestServer(t, map[string]string{"cv_en.yaml": cvEN}, pdfs)

	w := do(s, http.MethodGet, "/cv.pdf", "en", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "download unavailable")

	w = do(s, http.MethodGet, "/", "en", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), pdfURL)
	assert.Contains(t, w.Body.String(), "PDF not found.")
}

func TestDownloadWithoutPDFSource(t *testing.T) {
	s := newTestServer(t, map[string]string{"cv_en.yaml": cvEN}, nil)

	w := do(s, http.MethodGet, "/cv.pdf", "en", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestDownload(t *testing.T) {
	out := filepath.Join(t.TempDir(), "cv_en.pdf")
	require.NoError(t, os.WriteFile(out, []byte("%PDF-1.7"), 0o644))
	s := newTestServer(t, map[string]string{"cv_en.yaml": cvEN}, &fakePDFs{path: out, available: true})

	w := do(s, http.MethodGet, "/", "en", nil)
	assert.Contains(t, w.Body.String(), `href="/cv.pdf"`)

	w = do(s, http.MethodGet, "/cv.pdf", "en", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "cv_en.pdf")
}

func TestPhoto(t *testing.T) {
	s := newTestServer(t, map[string]string{"cv_en.yaml": cvEN, "photo.jpg": "jpeg"}, nil)

	w := do(s, http.MethodGet, "/", "en", nil)
	assert.Contains(t, w.Body.String(), `src="/photo"`)

	w = do(s, http.MethodGet, "/photo", "en", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jpeg", w.Body.String())

	s = newTestServer(t, map[string]string{"cv_en.yaml": cvEN}, nil)
	w = do(s, http.MethodGet, "/photo", "en", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(s, http.MethodGet, "/", "en", nil)
	assert.NotContains(t, w.Body.String(), `src="/photo"`)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, nil, nil)

	w := do(s, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}
