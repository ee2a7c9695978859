// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package section maps loosely named document sections to the fixed set of
// semantic roles the page knows how to render.
//
// Classification is a prefix match over the lowercased label against an
// ordered rule table. Labels are scanned in authored order and the first
// label matching a role is bound to it; later labels matching the same role
// stay in the document but are not rendered. Shadowed reports them.
package section

import (
	"strings"

	"github.com/pdiddy/cvsite/pkg/types"
)

// Role is the meaning assigned to a section.
type Role int

const (
	Summary Role = iota
	Experience
	Education
	Languages
)

// Roles lists every role in rule priority order.
var Roles = []Role{Summary, Experience, Education, Languages}

// String returns the lowercase role name.
func (r Role) String() string {
	switch r {
	case Summary:
		return "summary"
	case Experience:
		return "experience"
	case Education:
		return "education"
	case Languages:
		return "languages"
	default:
		return "unknown"
	}
}

type rule struct {
	role     Role
	prefixes []string
}

// rules is tested top to bottom; the first rule with a matching prefix
// decides the role of a label.
var rules = []rule{
	{role: Summary, prefixes: []string{"sum", "res"}},
	{role: Experience, prefixes: []string{"exp"}},
	{role: Education, prefixes: []string{"educ"}},
	{role: Languages, prefixes: []string{"lang", "leng"}},
}

// Match returns the role a single label maps to.
func Match(label string) (Role, bool) {
	lower := strings.ToLower(label)
	for _, r := range rules {
		for _, p := range r.prefixes {
			if strings.HasPrefix(lower, p) {
				return r.role, true
			}
		}
	}
	return 0, false
}

// Classification maps each bound role to the authored label.
type Classification map[Role]string

// Label returns the label bound to r.
func (c Classification) Label(r Role) (string, bool) {
	l, ok := c[r]
	return l, ok
}

// Classify binds each role to the first label, in authored order, that
// matches it. Roles with no matching label are absent.
func Classify(sections types.Sections) Classification {
	c := make(Classification, len(rules))
	for _, sec := range sections {
		role, ok := Match(sec.Label)
		if !ok {
			continue
		}
		if _, taken := c[role]; taken {
			continue
		}
		c[role] = sec.Label
	}
	return c
}

// Shadow is a label that matched a role already bound to an earlier label.
type Shadow struct {
	Label  string
	Role   Role
	Winner string
}

// Shadowed lists the labels Classify ignores because their role was
// already taken.
func Shadowed(sections types.Sections) []Shadow {
	bound := make(map[Role]string, len(rules))
	var out []Shadow
	for _, sec := range sections {
		role, ok := Match(sec.Label)
		if !ok {
			continue
		}
		if winner, taken := bound[role]; taken {
			out = append(out, Shadow{Label: sec.Label, Role: role, Winner: winner})
			continue
		}
		bound[role] = sec.Label
	}
	return out
}
