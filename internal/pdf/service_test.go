// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cvsite/pkg/types"
)

// fakeRenderer writes a placeholder PDF or returns err.
type fakeRenderer struct {
	calls int
	err   error
}

func (f *fakeRenderer) Render(_ context.Context, _, dest string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(dest, []byte("%PDF-1.7"), 0o644)
}

type fixture struct {
	src, out string
	renderer *fakeRenderer
	store    *Store
	svc      *Service
}

func newFixture(t *testing.T, withStore bool) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{
		src:      filepath.Join(dir, "cv_en.yaml"),
		out:      filepath.Join(dir, "cv_en.pdf"),
		renderer: &fakeRenderer{},
	}
	require.NoError(t, os.WriteFile(f.src, []byte("cv:\n  name: Jane\n"), 0o644))
	if withStore {
		f.store = openTestStore(t)
	}
	f.svc = NewService(ServiceConfig{
		Renderer: f.renderer,
		Store:    f.store,
		Sources:  map[types.Lang]string{types.LangEN: f.src},
		Outputs:  map[types.Lang]string{types.LangEN: f.out},
		Logger:   zerolog.New(io.Discard),
	})
	return f
}

func touch(t *testing.T, path string, when time.Time) {
	t.Helper()
	require.NoError(t, os.Chtimes(path, when, when))
}

func TestEnsureRendersOnce(t *testing.T) {
	for _, withStore := range []bool{false, true} {
		name := "mtime"
		if withStore {
			name = "ledger"
		}
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, withStore)
			ctx := context.Background()

			path, err := f.svc.Ensure(ctx, types.LangEN)
			require.NoError(t, err)
			assert.Equal(t, f.out, path)

			_, err = f.svc.Ensure(ctx, types.LangEN)
			require.NoError(t, err)
			assert.Equal(t, 1, f.renderer.calls)
		})
	}
}

func TestEnsureRerendersWhenSourceChanges(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	_, err := f.svc.Ensure(ctx, types.LangEN)
	require.NoError(t, err)

	touch(t, f.src, time.Now().Add(time.Hour))
	_, err = f.svc.Ensure(ctx, types.LangEN)
	require.NoError(t, err)
	assert.Equal(t, 2, f.renderer.calls)
}

func TestEnsureServesStaleOnFailure(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	_, err := f.svc.Ensure(ctx, types.LangEN)
	require.NoError(t, err)

	touch(t, f.src, time.Now().Add(time.Hour))
	f.renderer.err = &RenderError{Source: f.src, ExitCode: 3, Cause: errors.New("exit status 3")}

	path, err := f.svc.Ensure(ctx, types.LangEN)
	require.NoError(t, err)
	assert.Equal(t, f.out, path)

	b, ok, err := f.store.Latest(ctx, types.LangEN)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, StatusFailed, b.Status)
	assert.Equal(t, 3, b.ExitCode)
}

func TestEnsureUnavailable(t *testing.T) {
	f := newFixture(t, false)
	f.renderer.err = errors.New("no rendercv")

	_, err := f.svc.Ensure(context.Background(), types.LangEN)
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = f.svc.Ensure(context.Background(), types.LangES)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestEnsureWithoutRenderer(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "cv_es.pdf")
	svc := NewService(ServiceConfig{
		Outputs: map[types.Lang]string{types.LangES: out},
		Logger:  zerolog.New(io.Discard),
	})

	_, err := svc.Ensure(context.Background(), types.LangES)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, svc.Available(types.LangES))

	require.NoError(t, os.WriteFile(out, []byte("%PDF"), 0o644))
	path, err := svc.Ensure(context.Background(), types.LangES)
	require.NoError(t, err)
	assert.Equal(t, out, path)
	assert.True(t, svc.Available(types.LangES))
}

func TestAvailable(t *testing.T) {
	f := newFixture(t, false)
	assert.True(t, f.svc.Available(types.LangEN), "renderer and source configured")
	assert.False(t, f.svc.Available(types.LangES), "no output configured")

	require.NoError(t, os.Remove(f.src))
	assert.False(t, f.svc.Available(types.LangEN))
}

// missingTool is a renderer whose external tool is not installed.
type missingTool struct {
	fakeRenderer
}

func (*missingTool) Available() bool { return false }

func TestAvailableRendererNotInstalled(t *testing.T) {
	f := newFixture(t, false)
	svc := NewService(ServiceConfig{
		Renderer: &missingTool{},
		Sources:  map[types.Lang]string{types.LangEN: f.src},
		Outputs:  map[types.Lang]string{types.LangEN: f.out},
		Logger:   zerolog.New(io.Discard),
	})
	assert.False(t, svc.Available(types.LangEN))

	require.NoError(t, os.WriteFile(f.out, []byte("%PDF"), 0o644))
	assert.True(t, svc.Available(types.LangEN), "an existing artifact is still offered")
}

func TestAvailableRendercvNotOnPath(t *testing.T) {
	f := newFixture(t, false)
	svc := NewService(ServiceConfig{
		Renderer: newRendercv("", 0, &mockExecutor{availableBins: map[string]bool{}}),
		Sources:  map[types.Lang]string{types.LangEN: f.src},
		Outputs:  map[types.Lang]string{types.LangEN: f.out},
		Logger:   zerolog.New(io.Discard),
	})
	assert.False(t, svc.Available(types.LangEN))
}

func TestRenderAll(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	var buf bytes.Buffer

	result := f.svc.RenderAll(ctx, &buf, false)
	assert.Equal(t, BatchResult{Rendered: 1}, result)
	assert.Contains(t, buf.String(), "rendered: en")

	buf.Reset()
	result = f.svc.RenderAll(ctx, &buf, false)
	assert.Equal(t, BatchResult{Skipped: 1}, result)
	assert.Contains(t, buf.String(), "skipped:  en (up to date)")

	buf.Reset()
	f.renderer.err = errors.New("boom")
	result = f.svc.RenderAll(ctx, &buf, true)
	assert.True(t, result.HasFailures())
	assert.Equal(t, 1, result.Total())
	assert.Contains(t, buf.String(), "Batch summary: 0 rendered, 0 skipped, 1 failed (total: 1)")
}
