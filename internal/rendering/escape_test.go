package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLaTeX(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "Backend engineer", "Backend engineer"},
		{"backslash", `a\b`, `a\textbackslash{}b`},
		{"braces", "x{y}z", `x\{y\}z`},
		{"dollar", "$1M", `\$1M`},
		{"ampersand", "R&D", `R\&D`},
		{"percent", "40%", `40\%`},
		{"hash", "C#", `C\#`},
		{"caret", "x^2", `x\textasciicircum{}2`},
		{"underscore", "snake_case", `snake\_case`},
		{"tilde", "~5", `\textasciitilde{}5`},
		{"all", `${}~&%#^_\`, `\$\{\}\textasciitilde{}\&\%\#\textasciicircum{}\_\textbackslash{}`},
		{"unicode", "résumé α β", "résumé α β"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeLaTeX(tt.in))
		})
	}
}

func TestLaTeXInline(t *testing.T) {
	assert.Equal(t, `\textbf{C\#} \& Go`, LaTeXInline("**C#** & Go"))
	assert.Equal(t, `Cut cost by \textbf{40\%} in \textbf{Q1}`, LaTeXInline("Cut cost by **40%** in **Q1**"))
	assert.Equal(t, `2 ** 3`, LaTeXInline("2 ** 3"))
	assert.Equal(t, "", LaTeXInline(""))
}

func TestEscapeHTML(t *testing.T) {
	assert.Equal(t, "&lt;b&gt; &#34;q&#34; &amp; &#39;a&#39;", EscapeHTML(`<b> "q" & 'a'`))
}

func TestHTMLInline(t *testing.T) {
	assert.Equal(t, "&lt;i&gt; <strong>Go &amp; SQL</strong>", string(HTMLInline("<i> **Go & SQL**")))
	assert.Equal(t, "<strong>&lt;script&gt;</strong>", string(HTMLInline("**<script>**")))
}

func TestStripBold(t *testing.T) {
	assert.Equal(t, "Engineer at Acme", StripBold("**Engineer** at **Acme**"))
	assert.Equal(t, "no markers", StripBold("no markers"))
}
