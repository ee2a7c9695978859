// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Lang is a supported site language code.
type Lang string

const (
	LangEN Lang = "en"
	LangES Lang = "es"
)

// Langs lists the supported languages in display order.
var Langs = []Lang{LangEN, LangES}

// Valid reports whether l is one of the supported languages.
func (l Lang) Valid() bool {
	return l == LangEN || l == LangES
}

// Document is the parsed résumé content for one language. It is built once
// by the loader and never mutated afterwards.
type Document struct {
	// Name is the only required field.
	Name string `json:"name" yaml:"name"`

	Headline string `json:"headline" yaml:"headline"`
	Location string `json:"location" yaml:"location"`
	Email    string `json:"email" yaml:"email"`

	// Photo is a path relative to the data file (e.g. "./photo.jpg").
	Photo string `json:"photo,omitempty" yaml:"photo,omitempty"`

	SocialNetworks []SocialLink `json:"social_networks" yaml:"social_networks"`

	// Sections keeps the labels exactly as authored, in authored order.
	Sections Sections `json:"sections" yaml:"-"`
}

// SocialLink is one entry of the social_networks list.
type SocialLink struct {
	Network  string `json:"network" yaml:"network"`
	Username string `json:"username" yaml:"username"`
}

// Section is one labeled group of résumé content.
type Section struct {
	Label string      `json:"label"`
	Body  SectionBody `json:"body"`
}

// Sections is the ordered list of document sections.
type Sections []Section

// Lookup returns the body stored under the exact label.
func (s Sections) Lookup(label string) (SectionBody, bool) {
	for _, sec := range s {
		if sec.Label == label {
			return sec.Body, true
		}
	}
	return SectionBody{}, false
}

// Labels returns the section labels in authored order.
func (s Sections) Labels() []string {
	labels := make([]string, len(s))
	for i, sec := range s {
		labels[i] = sec.Label
	}
	return labels
}

// BodyKind identifies which variant a SectionBody holds.
type BodyKind int

const (
	// BodyUnknown marks a section whose YAML shape is neither a list of
	// strings nor a list of entries. Renderers skip it.
	BodyUnknown BodyKind = iota
	// BodyText holds paragraphs (summary) or short items (languages).
	BodyText
	// BodyEntries holds timeline entries (experience, education).
	BodyEntries
)

// String returns the lowercase kind name.
func (k BodyKind) String() string {
	switch k {
	case BodyText:
		return "text"
	case BodyEntries:
		return "entries"
	default:
		return "unknown"
	}
}

// SectionBody is the content of one section. Exactly one of Paragraphs or
// Entries is meaningful, depending on Kind.
type SectionBody struct {
	Kind       BodyKind        `json:"kind"`
	Paragraphs []string        `json:"paragraphs,omitempty"`
	Entries    []TimelineEntry `json:"entries,omitempty"`
}

// TimelineEntry is one job or degree record as authored. Which of
// Company/Institution and Position/Degree is displayed depends on the
// section's role; see timeline.Organization and timeline.RoleOrDegree.
type TimelineEntry struct {
	Company     string   `json:"company,omitempty" yaml:"company"`
	Institution string   `json:"institution,omitempty" yaml:"institution"`
	Position    string   `json:"position,omitempty" yaml:"position"`
	Degree      string   `json:"degree,omitempty" yaml:"degree"`
	StartDate   string   `json:"start_date,omitempty" yaml:"start_date"`
	EndDate     string   `json:"end_date,omitempty" yaml:"end_date"`
	Location    string   `json:"location,omitempty" yaml:"location"`
	Highlights  []string `json:"highlights,omitempty" yaml:"highlights"`
}
