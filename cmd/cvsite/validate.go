// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cvsite/internal/cvdoc"
	"github.com/pdiddy/cvsite/internal/locale"
	"github.com/pdiddy/cvsite/pkg/types"
)

var validateCmd = &cobra.Command{
	Use:   "validate [lang...]",
	Short: "Check the YAML data files",
	Long: `Validate reads each language's data file, checks it against the bundled
JSON Schema, and parses it the way the site does. With no arguments every
configured language is checked.`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	schema, _ := cmd.Flags().GetBool("schema")

	cfg, _, err := setup()
	if err != nil {
		return err
	}

	langs, err := langArgs(args, cfg.Data.Files)
	if err != nil {
		return err
	}

	failed := 0
	for _, lang := range langs {
		if err := validateFile(os.Stdout, lang, cfg.Data.Files[lang], schema); err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d data file(s) invalid", failed)
	}
	return nil
}

// validateFile checks one data file, printing the outcome to w.
func validateFile(w io.Writer, lang types.Lang, path string, schema bool) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		err = fmt.Errorf("%w: %s", cvdoc.ErrNotFound, path)
	}
	if err == nil && schema {
		err = cvdoc.ValidateSchema(data)
	}
	if err == nil {
		_, err = cvdoc.Parse(data)
	}

	if err != nil {
		fmt.Fprintf(w, "invalid: %s (%s)\n", lang, path)
		var se *cvdoc.SchemaError
		if errors.As(err, &se) {
			for _, fe := range se.Errors {
				fmt.Fprintf(w, "  - %s: %s\n", fe.Field, fe.Message)
			}
		} else {
			fmt.Fprintf(w, "  - %v\n", err)
		}
		return err
	}
	fmt.Fprintf(w, "ok:      %s (%s)\n", lang, path)
	return nil
}

// langArgs parses language arguments, defaulting to every configured
// language in display order.
func langArgs(args []string, files map[types.Lang]string) ([]types.Lang, error) {
	if len(args) == 0 {
		var langs []types.Lang
		for _, l := range types.Langs {
			if _, ok := files[l]; ok {
				langs = append(langs, l)
			}
		}
		return langs, nil
	}

	langs := make([]types.Lang, 0, len(args))
	for _, a := range args {
		l, ok := locale.Parse(a)
		if !ok {
			return nil, fmt.Errorf("unsupported language %q (want en or es)", a)
		}
		if _, ok := files[l]; !ok {
			return nil, fmt.Errorf("no data file configured for %s", l)
		}
		langs = append(langs, l)
	}
	return langs, nil
}

func init() {
	validateCmd.Flags().Bool("schema", true, "validate against the bundled JSON Schema")

	rootCmd.AddCommand(validateCmd)
}
