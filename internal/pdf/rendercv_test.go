// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool
	runFunc       func(name string, args []string) ([]byte, int, error)
	calls         []string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) Run(_ context.Context, name string, args ...string) ([]byte, int, error) {
	m.calls = append(m.calls, name+" "+strings.Join(args, " "))
	if m.runFunc != nil {
		return m.runFunc(name, args)
	}
	return nil, 0, nil
}

// writePDF simulates rendercv writing the --pdf-path argument.
func writePDF(_ string, args []string) ([]byte, int, error) {
	for i, a := range args {
		if a == "--pdf-path" && i+1 < len(args) {
			return []byte("ok"), 0, os.WriteFile(args[i+1], []byte("%PDF-1.7"), 0o644)
		}
	}
	return nil, 0, nil
}

func TestRendercvAvailable(t *testing.T) {
	tests := []struct {
		name string
		bin  string
		bins map[string]bool
		want bool
	}{
		{name: "default binary present", bins: map[string]bool{"rendercv": true}, want: true},
		{name: "default binary missing", bins: map[string]bool{}, want: false},
		{name: "custom binary", bin: "/opt/rendercv", bins: map[string]bool{"/opt/rendercv": true}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRendercv(tt.bin, 0, &mockExecutor{availableBins: tt.bins})
			assert.Equal(t, tt.want, r.Available())
		})
	}
}

func TestRendercvRenderArgs(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out", "cv_en.pdf")
	exec := &mockExecutor{runFunc: writePDF}
	r := newRendercv("", time.Minute, exec)

	require.NoError(t, r.Render(context.Background(), "data/cv_en.yaml", dst))

	require.Len(t, exec.calls, 1)
	assert.Equal(t, "rendercv render data/cv_en.yaml --pdf-path "+dst, exec.calls[0])
	assert.FileExists(t, dst)
}

func TestRendercvRenderFailure(t *testing.T) {
	dir := t.TempDir()
	exec := &mockExecutor{runFunc: func(string, []string) ([]byte, int, error) {
		return []byte("  validation error: cv.name  \n"), 2, errors.New("exit status 2")
	}}
	r := newRendercv("", 0, exec)

	err := r.Render(context.Background(), "cv_en.yaml", filepath.Join(dir, "cv_en.pdf"))

	var re *RenderError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 2, re.ExitCode)
	assert.Equal(t, "validation error: cv.name", re.Output)
	assert.Contains(t, err.Error(), "exit code 2")
}

func TestRendercvRenderNoOutput(t *testing.T) {
	dir := t.TempDir()
	r := newRendercv("", 0, &mockExecutor{})

	err := r.Render(context.Background(), "cv_en.yaml", filepath.Join(dir, "cv_en.pdf"))

	var re *RenderError
	require.ErrorAs(t, err, &re)
	assert.Contains(t, err.Error(), "produced no PDF")
}
