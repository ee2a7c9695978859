// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package timeline turns experience and education entries into ordered,
// collapsible display blocks.
package timeline

import (
	"fmt"
	"strings"

	"github.com/pdiddy/cvsite/internal/section"
	"github.com/pdiddy/cvsite/pkg/types"
)

// TechMarkers are the highlight prefixes that introduce a technology list.
var TechMarkers = []string{"Technologies", "Tecnologías"}

// ItemKind distinguishes plain bullets from tag groups.
type ItemKind int

const (
	ItemBullet ItemKind = iota
	ItemTags
)

// Item is one line of a block body.
type Item struct {
	Kind ItemKind
	// Text is the full highlight for bullets.
	Text string
	// Tags holds the parsed technologies for tag groups.
	Tags []string
}

// Block is one rendered entry.
type Block struct {
	Header       string
	Role         string
	Organization string
	Start        string
	End          string
	Location     string
	Items        []Item
}

// Render builds one block per entry, in input order. present replaces a
// missing end date. Entries with missing fields render with empty strings.
func Render(entries []types.TimelineEntry, role section.Role, present string) []Block {
	blocks := make([]Block, 0, len(entries))
	for _, e := range entries {
		b := Block{
			Role:         RoleOrDegree(e, role),
			Organization: Organization(e, role),
			Start:        e.StartDate,
			End:          e.EndDate,
			Location:     e.Location,
		}
		if b.End == "" {
			b.End = present
		}
		b.Header = fmt.Sprintf("%s @ %s (%s — %s)", b.Role, b.Organization, b.Start, b.End)

		for _, h := range e.Highlights {
			if techs, ok := techValue(h); ok {
				b.Items = append(b.Items, Item{Kind: ItemTags, Text: h, Tags: ParseTags(techs)})
				continue
			}
			b.Items = append(b.Items, Item{Kind: ItemBullet, Text: h})
		}
		blocks = append(blocks, b)
	}
	return blocks
}

// techValue reports whether h is a technology line and returns the text
// after its first colon (all of h when there is none).
func techValue(h string) (string, bool) {
	for _, m := range TechMarkers {
		if strings.HasPrefix(h, m) {
			if _, after, found := strings.Cut(h, ":"); found {
				return after, true
			}
			return h, true
		}
	}
	return "", false
}

// Organization returns the employer or school. Education entries prefer
// the institution; every other role prefers the company. Either falls back
// to the other field.
func Organization(e types.TimelineEntry, role section.Role) string {
	if role == section.Education {
		return firstNonEmpty(e.Institution, e.Company)
	}
	return firstNonEmpty(e.Company, e.Institution)
}

// RoleOrDegree returns the position or degree, preferring the degree for
// education entries and the position otherwise.
func RoleOrDegree(e types.TimelineEntry, role section.Role) string {
	if role == section.Education {
		return firstNonEmpty(e.Degree, e.Position)
	}
	return firstNonEmpty(e.Position, e.Degree)
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
