package rendering

import (
	"embed"
	"html/template"
	"strings"

	"github.com/jonathan/resume-assist/internal/types"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

var htmlTemplate = template.Must(template.New("resume.html.tmpl").Funcs(template.FuncMap{
	"inline": HTMLInline,
	"join":   strings.Join,
}).ParseFS(templateFiles, "templates/resume.html.tmpl"))

type htmlData struct {
	resumeView
	Standard bool
}

// ToHTML renders a self-contained A4 HTML document with inline styles.
// The header comes from the resume alone.
func ToHTML(r *types.GeneratedResume) string {
	var header types.Contact
	if r != nil {
		header = r.Header
	}
	return executeHTML(htmlData{resumeView: buildView(r, header)})
}

// ToStandardHTML renders the fixed ATS template as HTML. Empty header fields
// are filled from the profile.
func ToStandardHTML(r *types.GeneratedResume, p *types.NormalizedProfile) string {
	return executeHTML(htmlData{resumeView: standardView(r, p), Standard: true})
}

func executeHTML(data htmlData) string {
	var b strings.Builder
	// The template is parsed at init and only ranges over strings, so
	// execution cannot fail on well-formed data.
	if err := htmlTemplate.Execute(&b, data); err != nil {
		return ""
	}
	return b.String()
}
