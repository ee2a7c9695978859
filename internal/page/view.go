// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package page assembles the résumé view model from a loaded document and
// renders it as HTML.
package page

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/cvsite/internal/locale"
	"github.com/pdiddy/cvsite/internal/section"
	"github.com/pdiddy/cvsite/internal/timeline"
	"github.com/pdiddy/cvsite/pkg/types"
)

// Link is one social profile link.
type Link struct {
	Network string
	URL     string
}

// TimelineSection is a titled list of timeline blocks.
type TimelineSection struct {
	Role   section.Role
	Title  string
	Blocks []timeline.Block
}

// View is everything the template paints.
type View struct {
	Lang     types.Lang
	SwitchTo types.Lang
	Labels   locale.Labels

	// Missing renders only the shell and the "data not found" notice.
	Missing bool

	Name     string
	Headline string
	Location string
	Email    string
	PhotoURL string
	Links    []Link
	PDFURL   string

	// Expanded opens every timeline block (used for print).
	Expanded bool

	Summary   string
	Timelines []TimelineSection
	Languages []string
}

// Options carries the per-request facts the document does not know.
type Options struct {
	// PhotoURL is set only when the photo file exists.
	PhotoURL string
	// PDFURL is set only when a PDF can be served.
	PDFURL   string
	Expanded bool
}

// Build classifies the document's sections and assembles the view. Roles
// without a section, or whose section has an unexpected shape, are skipped.
func Build(doc *types.Document, lang types.Lang, opts Options) View {
	labels := locale.LabelsFor(lang)
	v := View{
		Lang:     lang,
		SwitchTo: locale.Toggle(lang),
		Labels:   labels,
		Name:     doc.Name,
		Headline: doc.Headline,
		Location: doc.Location,
		Email:    doc.Email,
		PhotoURL: opts.PhotoURL,
		PDFURL:   opts.PDFURL,
		Expanded: opts.Expanded,
		Links:    SocialLinks(doc.SocialNetworks),
	}

	roles := section.Classify(doc.Sections)

	if body, ok := bodyFor(doc, roles, section.Summary, types.BodyText); ok {
		v.Summary = strings.Join(body.Paragraphs, " ")
	}

	for _, r := range []section.Role{section.Experience, section.Education} {
		body, ok := bodyFor(doc, roles, r, types.BodyEntries)
		if !ok {
			continue
		}
		v.Timelines = append(v.Timelines, TimelineSection{
			Role:   r,
			Title:  Title(labels, r),
			Blocks: timeline.Render(body.Entries, r, labels.Present),
		})
	}

	if body, ok := bodyFor(doc, roles, section.Languages, types.BodyText); ok {
		v.Languages = body.Paragraphs
	}

	return v
}

// MissingView is the shell shown when no data exists for lang.
func MissingView(lang types.Lang) View {
	return View{
		Lang:     lang,
		SwitchTo: locale.Toggle(lang),
		Labels:   locale.LabelsFor(lang),
		Missing:  true,
	}
}

func bodyFor(doc *types.Document, roles section.Classification, r section.Role, kind types.BodyKind) (types.SectionBody, bool) {
	label, ok := roles.Label(r)
	if !ok {
		return types.SectionBody{}, false
	}
	body, ok := doc.Sections.Lookup(label)
	if !ok || body.Kind != kind {
		return types.SectionBody{}, false
	}
	return body, true
}

// Title returns the heading for a role in the labels' language.
func Title(l locale.Labels, r section.Role) string {
	switch r {
	case section.Summary:
		return l.About
	case section.Experience:
		return l.Experience
	case section.Education:
		return l.Education
	case section.Languages:
		return l.Languages
	default:
		return ""
	}
}

// SocialLinks builds profile URLs of the form
// https://<network lowercased>.com/<username>.
func SocialLinks(networks []types.SocialLink) []Link {
	links := make([]Link, 0, len(networks))
	for _, sn := range networks {
		links = append(links, Link{
			Network: sn.Network,
			URL:     "https://" + strings.ToLower(sn.Network) + ".com/" + sn.Username,
		})
	}
	return links
}

// PhotoPath resolves the document photo against baseDir and reports
// whether the file exists.
func PhotoPath(doc *types.Document, baseDir string) (string, bool) {
	if doc == nil || doc.Photo == "" {
		return "", false
	}
	p := doc.Photo
	if !filepath.IsAbs(p) {
		p = filepath.Join(baseDir, strings.TrimPrefix(filepath.ToSlash(p), "./"))
	}
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return "", false
	}
	return p, true
}
