// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cvdoc

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cvsite/pkg/types"
)

const rootKey = "cv"

// rawCV mirrors the fields under the "cv" root key. Sections stay a node
// so their order and shape can be inspected.
type rawCV struct {
	Name           string             `yaml:"name"`
	Headline       string             `yaml:"headline"`
	Location       string             `yaml:"location"`
	Email          string             `yaml:"email"`
	Photo          string             `yaml:"photo"`
	SocialNetworks []types.SocialLink `yaml:"social_networks"`
	Sections       yaml.Node          `yaml:"sections"`
}

// ReadFile parses the data file at path without caching.
func ReadFile(path string) (*types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading cv data %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, withPath(err, path)
	}
	return doc, nil
}

// Parse decodes a YAML data file. Every field except cv.name is optional.
// Errors are *MalformedDocumentError.
func Parse(data []byte) (*types.Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &MalformedDocumentError{Reason: "invalid YAML", Cause: err}
	}

	top := &root
	if top.Kind == yaml.DocumentNode && len(top.Content) > 0 {
		top = top.Content[0]
	}
	top = resolve(top)
	if top.Kind != yaml.MappingNode {
		return nil, &MalformedDocumentError{Reason: fmt.Sprintf("missing root key %q", rootKey)}
	}

	cvNode := mappingValue(top, rootKey)
	if cvNode == nil {
		return nil, &MalformedDocumentError{Reason: fmt.Sprintf("missing root key %q", rootKey)}
	}
	if cvNode.Kind != yaml.MappingNode {
		return nil, &MalformedDocumentError{Reason: fmt.Sprintf("%q is not a mapping", rootKey)}
	}

	var raw rawCV
	if err := cvNode.Decode(&raw); err != nil {
		return nil, &MalformedDocumentError{Reason: "decoding cv", Cause: err}
	}
	if strings.TrimSpace(raw.Name) == "" {
		return nil, &MalformedDocumentError{Reason: "cv.name is required"}
	}

	sections, err := decodeSections(&raw.Sections)
	if err != nil {
		return nil, err
	}

	return &types.Document{
		Name:           raw.Name,
		Headline:       raw.Headline,
		Location:       raw.Location,
		Email:          raw.Email,
		Photo:          raw.Photo,
		SocialNetworks: raw.SocialNetworks,
		Sections:       sections,
	}, nil
}

func decodeSections(n *yaml.Node) (types.Sections, error) {
	n = resolve(n)
	switch {
	case n.Kind == 0, isNull(n):
		return nil, nil
	case n.Kind != yaml.MappingNode:
		return nil, &MalformedDocumentError{Reason: "cv.sections is not a mapping"}
	}

	sections := make(types.Sections, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		sections = append(sections, types.Section{
			Label: n.Content[i].Value,
			Body:  decodeBody(n.Content[i+1]),
		})
	}
	return sections, nil
}

// decodeBody picks the body variant from the node shape: a list of scalars
// is text, a list of mappings is entries. A bare scalar is one paragraph.
func decodeBody(n *yaml.Node) types.SectionBody {
	n = resolve(n)
	switch n.Kind {
	case yaml.ScalarNode:
		if isNull(n) {
			return types.SectionBody{Kind: types.BodyText}
		}
		return types.SectionBody{Kind: types.BodyText, Paragraphs: []string{n.Value}}
	case yaml.SequenceNode:
	default:
		return types.SectionBody{Kind: types.BodyUnknown}
	}

	var scalars, mappings int
	for _, item := range n.Content {
		switch resolve(item).Kind {
		case yaml.ScalarNode:
			scalars++
		case yaml.MappingNode:
			mappings++
		}
	}

	switch {
	case len(n.Content) == 0:
		return types.SectionBody{Kind: types.BodyText}
	case scalars == len(n.Content):
		paragraphs := make([]string, 0, scalars)
		for _, item := range n.Content {
			paragraphs = append(paragraphs, resolve(item).Value)
		}
		return types.SectionBody{Kind: types.BodyText, Paragraphs: paragraphs}
	case mappings == len(n.Content):
		entries := make([]types.TimelineEntry, 0, mappings)
		for _, item := range n.Content {
			entries = append(entries, decodeEntry(resolve(item)))
		}
		return types.SectionBody{Kind: types.BodyEntries, Entries: entries}
	default:
		return types.SectionBody{Kind: types.BodyUnknown}
	}
}

// decodeEntry reads the known keys of one entry mapping. Values of an
// unexpected shape read as empty so one bad field never drops the entry.
func decodeEntry(n *yaml.Node) types.TimelineEntry {
	var e types.TimelineEntry
	for i := 0; i+1 < len(n.Content); i += 2 {
		value := n.Content[i+1]
		switch n.Content[i].Value {
		case "company":
			e.Company = scalar(value)
		case "institution":
			e.Institution = scalar(value)
		case "position":
			e.Position = scalar(value)
		case "degree":
			e.Degree = scalar(value)
		case "start_date":
			e.StartDate = scalar(value)
		case "end_date":
			e.EndDate = scalar(value)
		case "location":
			e.Location = scalar(value)
		case "highlights":
			e.Highlights = highlights(value)
		}
	}
	return e
}

func highlights(n *yaml.Node) []string {
	n = resolve(n)
	switch n.Kind {
	case yaml.ScalarNode:
		if s := scalar(n); s != "" {
			return []string{s}
		}
	case yaml.SequenceNode:
		out := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			if s := scalar(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func scalar(n *yaml.Node) string {
	n = resolve(n)
	if n.Kind != yaml.ScalarNode || isNull(n) {
		return ""
	}
	return n.Value
}

func mappingValue(n *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return resolve(n.Content[i+1])
		}
	}
	return nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

func withPath(err error, path string) error {
	if m, ok := err.(*MalformedDocumentError); ok && m.Path == "" {
		m.Path = path
	}
	return err
}
