// Package rendering formats a generated resume as HTML, plain text, LaTeX,
// the standard ATS template and DOCX. Every formatter is a pure function.
package rendering

import (
	"html/template"
	"regexp"
	"strings"
)

// boldRe matches a markdown bold span
var boldRe = regexp.MustCompile(`\*\*(.+?)\*\*`)

// EscapeLaTeX escapes special LaTeX characters in text
// Special characters: \ { } $ & % # ^ _ ~
func EscapeLaTeX(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) * 2)

	for _, r := range text {
		switch r {
		case '\\':
			result.WriteString(`\textbackslash{}`)
		case '{':
			result.WriteString(`\{`)
		case '}':
			result.WriteString(`\}`)
		case '$':
			result.WriteString(`\$`)
		case '&':
			result.WriteString(`\&`)
		case '%':
			result.WriteString(`\%`)
		case '#':
			result.WriteString(`\#`)
		case '^':
			result.WriteString(`\textasciicircum{}`)
		case '_':
			result.WriteString(`\_`)
		case '~':
			result.WriteString(`\textasciitilde{}`)
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

// LaTeXInline converts **bold** spans to \textbf{} and escapes everything
// else. Bold spans are located on the raw text; escaping happens per piece.
func LaTeXInline(text string) string {
	return replaceBold(text, EscapeLaTeX, func(inner string) string {
		return `\textbf{` + EscapeLaTeX(inner) + `}`
	})
}

// EscapeHTML escapes & < > " ' for safe interpolation into HTML
func EscapeHTML(text string) string {
	return template.HTMLEscapeString(text)
}

// HTMLInline escapes text for HTML and renders **bold** spans as <strong>
func HTMLInline(text string) template.HTML {
	//nolint:gosec // every piece is escaped before it is wrapped
	return template.HTML(replaceBold(text, EscapeHTML, func(inner string) string {
		return "<strong>" + EscapeHTML(inner) + "</strong>"
	}))
}

// StripBold removes markdown bold markers, keeping the text
func StripBold(text string) string {
	return boldRe.ReplaceAllString(text, "$1")
}

func replaceBold(text string, plain, bold func(string) string) string {
	matches := boldRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return plain(text)
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(plain(text[last:m[0]]))
		b.WriteString(bold(text[m[2]:m[3]]))
		last = m[1]
	}
	b.WriteString(plain(text[last:]))
	return b.String()
}
