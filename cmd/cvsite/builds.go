// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cvsite/internal/pdf"
)

var buildsCmd = &cobra.Command{
	Use:   "builds",
	Short: "List recorded PDF builds",
	Long: `Builds prints the PDF build ledger, newest first: which data file was
rendered, when, and whether it succeeded.`,
	RunE: runBuilds,
}

func runBuilds(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, _, err := setup()
	if err != nil {
		return err
	}
	if cfg.PDF.LedgerPath == "" {
		return fmt.Errorf("no build ledger configured (pdf.ledger_path)")
	}

	store, err := pdf.OpenStore(cfg.PDF.LedgerPath)
	if err != nil {
		return err
	}
	defer store.Close()

	builds, err := store.History(context.Background(), limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(builds)
	}
	formatBuilds(os.Stdout, builds)
	return nil
}

func formatBuilds(w io.Writer, builds []pdf.Build) {
	if len(builds) == 0 {
		fmt.Fprintln(w, "No builds recorded.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-6s  %-4s  %-20s  %-24s  %s\n",
		"Lang", "Status", "Exit", "Built", "PDF", "Message")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, b := range builds {
		out := b.PDFPath
		if len(out) > 24 {
			out = "..." + out[len(out)-21:]
		}
		msg := b.Message
		if len(msg) > 40 {
			msg = msg[:37] + "..."
		}
		fmt.Fprintf(w, "%-4s  %-6s  %-4d  %-20s  %-24s  %s\n",
			b.Lang, b.Status, b.ExitCode, b.BuiltAt.Local().Format(time.DateTime), out, msg)
	}

	fmt.Fprintf(w, "\n%d builds\n", len(builds))
}

func init() {
	buildsCmd.Flags().Int("limit", 20, "maximum number of builds to list (0 for all)")
	buildsCmd.Flags().Bool("json", false, "print builds as JSON")

	rootCmd.AddCommand(buildsCmd)
}
