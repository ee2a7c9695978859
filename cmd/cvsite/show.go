// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cvsite/internal/page"
	"github.com/pdiddy/cvsite/internal/section"
	"github.com/pdiddy/cvsite/internal/timeline"
	"github.com/pdiddy/cvsite/pkg/types"
)

var showCmd = &cobra.Command{
	Use:   "show <lang>",
	Short: "Preview how a data file is classified and rendered",
	Long: `Show loads one language's data file and prints each section with the
role it was classified into, the labels ignored because their role was
already taken, and the timeline headers and tags the page will display.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, _, err := setup()
	if err != nil {
		return err
	}

	langs, err := langArgs(args, cfg.Data.Files)
	if err != nil {
		return err
	}
	lang := langs[0]

	doc, err := newLoader(cfg).Load(lang)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(page.Build(doc, lang, page.Options{}))
	}
	showDocument(os.Stdout, doc, lang)
	return nil
}

// showDocument prints the classification and timeline preview of doc.
func showDocument(w io.Writer, doc *types.Document, lang types.Lang) {
	fmt.Fprintf(w, "%s", doc.Name)
	if doc.Headline != "" {
		fmt.Fprintf(w, " | %s", doc.Headline)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\n%-24s  %-12s  %s\n", "Section", "Role", "Shape")
	fmt.Fprintln(w, strings.Repeat("-", 50))

	roles := section.Classify(doc.Sections)
	for _, sec := range doc.Sections {
		role := "-"
		for _, r := range section.Roles {
			if label, ok := roles.Label(r); ok && label == sec.Label {
				role = r.String()
			}
		}
		fmt.Fprintf(w, "%-24s  %-12s  %s\n", sec.Label, role, sec.Body.Kind)
	}

	if shadows := section.Shadowed(doc.Sections); len(shadows) > 0 {
		fmt.Fprintln(w, "\nIgnored sections:")
		for _, sh := range shadows {
			fmt.Fprintf(w, "  %s (%s already shown from %q)\n", sh.Label, sh.Role, sh.Winner)
		}
	}

	v := page.Build(doc, lang, page.Options{})
	for _, tl := range v.Timelines {
		fmt.Fprintf(w, "\n%s:\n", tl.Title)
		for _, b := range tl.Blocks {
			fmt.Fprintf(w, "  %s\n", b.Header)
			for _, it := range b.Items {
				if it.Kind == timeline.ItemTags {
					fmt.Fprintf(w, "    %s: [%s]\n", v.Labels.Tech, strings.Join(it.Tags, "] ["))
					continue
				}
				fmt.Fprintf(w, "    - %s\n", it.Text)
			}
		}
	}
}

func init() {
	showCmd.Flags().Bool("json", false, "print the page view model as JSON")

	rootCmd.AddCommand(showCmd)
}
