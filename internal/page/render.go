// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package page

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/pdiddy/cvsite/internal/timeline"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var tmpl = template.Must(template.New("page").Funcs(template.FuncMap{
	"isTags": func(it timeline.Item) bool { return it.Kind == timeline.ItemTags },
}).ParseFS(templateFS, "templates/*.tmpl"))

// Render writes the HTML page for v. Nothing is written to w if the
// template fails.
func Render(w io.Writer, v View) error {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "page.html.tmpl", v); err != nil {
		return fmt.Errorf("executing page template: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}
