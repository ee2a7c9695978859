// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package locale

import "github.com/pdiddy/cvsite/pkg/types"

// Labels holds the fixed UI strings for one language.
type Labels struct {
	About      string
	Experience string
	Education  string
	Languages  string
	Download   string
	NoPDF      string
	Switch     string
	Present    string
	Tech       string
	Missing    string
}

var labels = map[types.Lang]Labels{
	types.LangEN: {
		About:      "About Me",
		Experience: "Experience",
		Education:  "Education",
		Languages:  "Languages",
		Download:   "⬇️ Download CV (PDF)",
		NoPDF:      "PDF not found.",
		Switch:     "🇪🇸 Español",
		Present:    "present",
		Tech:       "Tech Stack",
		Missing:    "CV data not found.",
	},
	types.LangES: {
		About:      "Sobre mí",
		Experience: "Experiencia",
		Education:  "Educación",
		Languages:  "Idiomas",
		Download:   "⬇️ Descargar CV (PDF)",
		NoPDF:      "PDF no encontrado.",
		Switch:     "🇬🇧 English",
		Present:    "presente",
		Tech:       "Tecnologías",
		Missing:    "No se encontraron los datos del CV.",
	},
}

// LabelsFor returns the labels for l, falling back to English.
func LabelsFor(l types.Lang) Labels {
	if lb, ok := labels[l]; ok {
		return lb
	}
	return labels[types.LangEN]
}
