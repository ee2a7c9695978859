// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package locale picks the active site language and holds the UI labels
// for each language.
//
// The active language is per-session state: it is resolved once when a
// session starts and afterwards changed only by an explicit toggle. This
// package only computes values; callers persist them.
package locale

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/pdiddy/cvsite/pkg/types"
)

// ErrNoLocale is returned by detectors that found nothing to report.
var ErrNoLocale = errors.New("no locale detected")

// Detector supplies a raw locale string such as "es-AR" or "en".
type Detector interface {
	Detect() (string, error)
}

// DetectorFunc adapts a function to Detector.
type DetectorFunc func() (string, error)

// Detect calls f.
func (f DetectorFunc) Detect() (string, error) { return f() }

// AcceptLanguage returns a Detector that reports the highest-weighted tag
// of an HTTP Accept-Language header.
func AcceptLanguage(header string) Detector {
	return DetectorFunc(func() (string, error) {
		if strings.TrimSpace(header) == "" {
			return "", ErrNoLocale
		}
		tags, _, err := language.ParseAcceptLanguage(header)
		if err != nil {
			return "", fmt.Errorf("parsing Accept-Language %q: %w", header, err)
		}
		if len(tags) == 0 {
			return "", ErrNoLocale
		}
		return tags[0].String(), nil
	})
}

// Resolve picks the active language.
//
// A valid stored choice wins outright. Otherwise a detected locale starting
// with "es" (any case) resolves to Spanish; anything else, including no
// detection at all, resolves to English.
func Resolve(detected, stored string) types.Lang {
	if l := normalize(stored); l.Valid() {
		return l
	}

	detected = strings.ToLower(strings.TrimSpace(detected))
	if strings.HasPrefix(detected, "es") {
		return types.LangES
	}
	return types.LangEN
}

// ResolveWith is Resolve with the detected locale supplied by d. Detection
// is skipped when a valid stored choice exists. Detector errors and panics
// count as "nothing detected" and never reach the caller.
func ResolveWith(d Detector, stored string) types.Lang {
	if normalize(stored).Valid() {
		return Resolve("", stored)
	}
	return Resolve(detect(d), "")
}

func detect(d Detector) (tag string) {
	if d == nil {
		return ""
	}
	defer func() {
		if recover() != nil {
			tag = ""
		}
	}()
	tag, err := d.Detect()
	if err != nil {
		return ""
	}
	return tag
}

// Toggle returns the other supported language.
func Toggle(l types.Lang) types.Lang {
	if l == types.LangES {
		return types.LangEN
	}
	return types.LangES
}

// Parse converts a user-supplied code into a Lang, reporting whether it is
// supported.
func Parse(code string) (types.Lang, bool) {
	l := normalize(code)
	return l, l.Valid()
}

func normalize(code string) types.Lang {
	return types.Lang(strings.ToLower(strings.TrimSpace(code)))
}
