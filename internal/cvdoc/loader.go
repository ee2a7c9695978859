// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cvdoc loads per-language résumé data files into immutable
// documents and memoizes them.
package cvdoc

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pdiddy/cvsite/pkg/types"
)

// Loader resolves a language to its data file and caches the parsed
// document. A cached document is reused while the file's modification time
// and size are unchanged and replaced wholesale otherwise. Documents are
// shared between callers and must not be modified.
type Loader struct {
	files  map[types.Lang]string
	schema bool

	mu    sync.RWMutex
	cache map[types.Lang]cacheEntry
}

type cacheEntry struct {
	doc     *types.Document
	modTime time.Time
	size    int64
}

// Option configures a Loader.
type Option func(*Loader)

// WithSchema validates every file against the embedded JSON Schema before
// it is cached.
func WithSchema() Option {
	return func(l *Loader) { l.schema = true }
}

// NewLoader creates a loader for the given language → file mapping.
func NewLoader(files map[types.Lang]string, opts ...Option) *Loader {
	l := &Loader{
		files: make(map[types.Lang]string, len(files)),
		cache: make(map[types.Lang]cacheEntry),
	}
	for lang, path := range files {
		l.files[lang] = path
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the data file configured for lang.
func (l *Loader) Path(lang types.Lang) (string, bool) {
	p, ok := l.files[lang]
	return p, ok && p != ""
}

// Dir returns the directory of lang's data file; relative paths inside the
// document (the photo) resolve against it.
func (l *Loader) Dir(lang types.Lang) string {
	p, ok := l.Path(lang)
	if !ok {
		return "."
	}
	return filepath.Dir(p)
}

// Load returns the document for lang. A missing or unconfigured file
// yields ErrNotFound; an unusable file yields *MalformedDocumentError.
// Neither touches the cache entries of other languages.
func (l *Loader) Load(lang types.Lang) (*types.Document, error) {
	path, ok := l.Path(lang)
	if !ok {
		return nil, fmt.Errorf("%w: no data file configured for %q", ErrNotFound, lang)
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.Invalidate(lang)
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("checking cv data %s: %w", path, err)
	}

	l.mu.RLock()
	entry, cached := l.cache[lang]
	l.mu.RUnlock()
	if cached && entry.modTime.Equal(info.ModTime()) && entry.size == info.Size() {
		return entry.doc, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cv data %s: %w", path, err)
	}

	if l.schema {
		if err := ValidateSchema(data); err != nil {
			return nil, withPath(err, path)
		}
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, withPath(err, path)
	}

	// Concurrent misses may both parse; the last write wins and both
	// documents are equivalent.
	l.mu.Lock()
	l.cache[lang] = cacheEntry{doc: doc, modTime: info.ModTime(), size: info.Size()}
	l.mu.Unlock()

	return doc, nil
}

// Invalidate drops the cached document for lang.
func (l *Loader) Invalidate(lang types.Lang) {
	l.mu.Lock()
	delete(l.cache, lang)
	l.mu.Unlock()
}

// Cached reports whether a document for lang is currently memoized.
func (l *Loader) Cached(lang types.Lang) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.cache[lang]
	return ok
}
