package rendering

import (
	"os"
	"strings"
	"text/template"

	"github.com/jonathan/resume-assist/internal/types"
)

var latexFuncs = template.FuncMap{
	"tex":     LaTeXInline,
	"texjoin": texJoin,
}

// texJoin escapes each item and separates them with a math-mode bar
func texJoin(items []string) string {
	escaped := make([]string, len(items))
	for i, s := range items {
		escaped[i] = EscapeLaTeX(s)
	}
	return strings.Join(escaped, ` $|$ `)
}

var latexTemplate = template.Must(newLaTeXTemplate("resume.tex.tmpl").ParseFS(templateFiles, "templates/resume.tex.tmpl"))

func newLaTeXTemplate(name string) *template.Template {
	return template.New(name).Delims("<<", ">>").Funcs(latexFuncs)
}

// ToLaTeX renders a compilable LaTeX article. Header fields missing from the
// resume are taken from the profile.
func ToLaTeX(r *types.GeneratedResume, p *types.NormalizedProfile) string {
	out, err := executeLaTeX(latexTemplate, r, p)
	if err != nil {
		return ""
	}
	return out
}

// ToLaTeXWithTemplate renders with a custom template file. The template uses
// << >> delimiters and the tex and texjoin functions.
func ToLaTeXWithTemplate(r *types.GeneratedResume, p *types.NormalizedProfile, templatePath string) (string, error) {
	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return "", err
	}
	return executeLaTeX(tmpl, r, p)
}

func executeLaTeX(tmpl *template.Template, r *types.GeneratedResume, p *types.NormalizedProfile) (string, error) {
	var header types.Contact
	if r != nil {
		header = r.Header
	}
	data := buildView(r, header.WithProfile(p))

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return "", &TemplateError{Path: tmpl.Name(), Message: "failed to execute template", Cause: err}
	}
	return result.String(), nil
}

// parseTemplate reads and parses a custom LaTeX template file
func parseTemplate(templatePath string) (*template.Template, error) {
	content, err := os.ReadFile(templatePath)
	switch {
	case os.IsNotExist(err):
		return nil, &TemplateError{Path: templatePath, Message: "template file not found", Cause: err}
	case err != nil:
		return nil, &TemplateError{Path: templatePath, Message: "failed to read template file", Cause: err}
	}

	tmpl, err := newLaTeXTemplate("custom").Parse(string(content))
	if err != nil {
		return nil, &TemplateError{Path: templatePath, Message: "failed to parse template", Cause: err}
	}
	return tmpl, nil
}
