// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdf produces and serves the downloadable PDF of each language's
// résumé. Rendering is delegated to a pluggable Renderer (rendercv or
// headless Chrome); the Service decides when a render is needed and keeps
// a ledger of builds.
package pdf

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable reports that no PDF can be served for a language. The
// page stays viewable; only the download is affected.
var ErrUnavailable = errors.New("pdf unavailable")

// Renderer turns a YAML data file into a PDF written at destPath.
type Renderer interface {
	Render(ctx context.Context, sourcePath, destPath string) error
}

// RenderError reports a failed render.
type RenderError struct {
	Source   string
	ExitCode int
	Output   string
	Cause    error
}

func (e *RenderError) Error() string {
	msg := fmt.Sprintf("rendering %s failed", e.Source)
	if e.ExitCode != 0 {
		msg += fmt.Sprintf(" (exit code %d)", e.ExitCode)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
