// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const defaultRendercvBin = "rendercv"

// Rendercv renders PDFs by running `rendercv render <src> --pdf-path <dst>`.
type Rendercv struct {
	bin     string
	timeout time.Duration
	exec    executor
}

// NewRendercv creates a renderer using the given executable (default
// "rendercv"). A positive timeout bounds each render.
func NewRendercv(bin string, timeout time.Duration) *Rendercv {
	return newRendercv(bin, timeout, osExecutor{})
}

func newRendercv(bin string, timeout time.Duration, exec executor) *Rendercv {
	if bin == "" {
		bin = defaultRendercvBin
	}
	return &Rendercv{bin: bin, timeout: timeout, exec: exec}
}

// Available reports whether the executable is on PATH.
func (r *Rendercv) Available() bool {
	_, err := r.exec.LookPath(r.bin)
	return err == nil
}

// Render runs rendercv for one data file.
func (r *Rendercv) Render(ctx context.Context, sourcePath, destPath string) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	out, code, err := r.exec.Run(ctx, r.bin, "render", sourcePath, "--pdf-path", destPath)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return &RenderError{
			Source:   sourcePath,
			ExitCode: code,
			Output:   strings.TrimSpace(string(out)),
			Cause:    err,
		}
	}

	if _, err := os.Stat(destPath); err != nil {
		return &RenderError{
			Source: sourcePath,
			Output: strings.TrimSpace(string(out)),
			Cause:  fmt.Errorf("%s produced no PDF at %s", r.bin, destPath),
		}
	}
	return nil
}
