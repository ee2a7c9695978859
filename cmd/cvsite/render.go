// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the PDF for every configured language",
	Long: `Render builds the PDF of each language from its YAML data file with the
configured backend. Languages whose PDF is already up to date are skipped
unless --force is given. Every attempt is recorded in the build ledger.`,
	RunE: runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	cfg, log, err := setup()
	if err != nil {
		return err
	}

	svc, closeFn, err := newPDFService(cfg, log)
	if err != nil {
		return err
	}
	defer closeFn()

	result := svc.RenderAll(context.Background(), os.Stdout, force)
	if result.HasFailures() {
		return fmt.Errorf("%d language(s) failed rendering", result.Failed)
	}
	return nil
}

func init() {
	renderCmd.Flags().Bool("force", false, "re-render even when the PDF is up to date")

	rootCmd.AddCommand(renderCmd)
}
