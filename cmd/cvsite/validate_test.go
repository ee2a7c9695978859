// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cvsite/internal/cvdoc"
	"github.com/pdiddy/cvsite/pkg/types"
)

const sampleCV = `cv:
  name: Ada Lovelace
  headline: Backend Engineer
  sections:
    summary:
      - Writes programs for engines.
    experience:
      - company: Analytical Engines
        position: Engineer
        start_date: 2020-01
        highlights:
          - Built the difference engine.
          - "Technologies: Go, Rust"
    experiencia previa:
      - company: Babbage & Co
        position: Intern
        start_date: 2018
        end_date: 2019
    education:
      - institution: University of London
        degree: BSc Mathematics
        start_date: 2014
        end_date: 2018
`

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	noName := filepath.Join(dir, "noname.yaml")
	require.NoError(t, os.WriteFile(good, []byte(sampleCV), 0o644))
	require.NoError(t, os.WriteFile(noName, []byte("cv:\n  headline: x\n"), 0o644))

	tests := []struct {
		name    string
		path    string
		schema  bool
		wantErr bool
		want    string
	}{
		{name: "valid", path: good, schema: true, want: "ok:      en"},
		{name: "schema violation", path: noName, schema: true, wantErr: true, want: "invalid: en"},
		{name: "parse error without schema", path: noName, wantErr: true, want: "cv.name is required"},
		{name: "missing file", path: filepath.Join(dir, "absent.yaml"), wantErr: true, want: "cv data not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := validateFile(&buf, types.LangEN, tt.path, tt.schema)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestValidateFileMissingIsNotFound(t *testing.T) {
	var buf bytes.Buffer
	err := validateFile(&buf, types.LangES, filepath.Join(t.TempDir(), "cv_es.yaml"), true)
	assert.ErrorIs(t, err, cvdoc.ErrNotFound)
}

func TestLangArgs(t *testing.T) {
	files := map[types.Lang]string{types.LangES: "es.yaml", types.LangEN: "en.yaml"}

	got, err := langArgs(nil, files)
	require.NoError(t, err)
	assert.Equal(t, []types.Lang{types.LangEN, types.LangES}, got)

	got, err = langArgs([]string{"ES"}, files)
	require.NoError(t, err)
	assert.Equal(t, []types.Lang{types.LangES}, got)

	_, err = langArgs([]string{"fr"}, files)
	assert.ErrorContains(t, err, "unsupported language")

	_, err = langArgs([]string{"es"}, map[types.Lang]string{types.LangEN: "en.yaml"})
	assert.ErrorContains(t, err, "no data file configured")
}
