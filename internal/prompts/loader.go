// Package prompts loads the embedded LLM prompt templates and assembles the
// resume generation prompt from a normalized profile.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// ResumeFile is the template file used for resume generation
const ResumeFile = "resume.json"

// catalog is one decoded prompt file: template name to template text
type catalog map[string]string

func (c catalog) names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// catalogs holds decoded files keyed by file name
var catalogs sync.Map

func openCatalog(filename string) (catalog, error) {
	if c, ok := catalogs.Load(filename); ok {
		return c.(catalog), nil
	}

	raw, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	var c catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	actual, _ := catalogs.LoadOrStore(filename, c)
	return actual.(catalog), nil
}

// Get returns the template stored under key in an embedded prompt file,
// e.g. Get(ResumeFile, "output-contract").
func Get(filename, key string) (string, error) {
	c, err := openCatalog(filename)
	if err != nil {
		return "", err
	}
	text, ok := c[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return text, nil
}

// MustGet is Get for templates that ship with the binary; a miss panics.
func MustGet(filename, key string) string {
	text, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return text
}

// List returns the template names in a prompt file, sorted
func List(filename string) ([]string, error) {
	c, err := openCatalog(filename)
	if err != nil {
		return nil, err
	}
	return c.names(), nil
}

// ClearCache forgets every decoded prompt file
func ClearCache() {
	catalogs.Clear()
}

// Format substitutes {{.Name}} placeholders in one pass. Values are inserted
// verbatim, so placeholder text inside a value is never expanded.
func Format(tmpl string, values map[string]string) string {
	names := catalog(values).names()
	oldnew := make([]string, 0, 2*len(names))
	for _, name := range names {
		oldnew = append(oldnew, "{{."+name+"}}", values[name])
	}
	return strings.NewReplacer(oldnew...).Replace(tmpl)
}
