package profile

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// document is a view over a schema-less stored document with alias-aware lookups
type document map[string]any

// flatten merges nested form sections into a single lookup view.
// Top-level keys win over nested ones; earlier containers win over later ones.
func flatten(raw map[string]any) document {
	doc := make(document, len(raw))
	for k, v := range raw {
		doc[k] = v
	}
	for _, key := range containerKeys {
		nested, ok := raw[key].(map[string]any)
		if !ok {
			if steps, isList := raw[key].([]any); isList {
				for _, step := range steps {
					if m, ok := step.(map[string]any); ok {
						doc.mergeMissing(m)
					}
				}
			}
			continue
		}
		doc.mergeMissing(nested)
		// steps: {"step1": {...}, "step2": {...}}
		for _, k := range sortedKeys(nested) {
			if m, ok := nested[k].(map[string]any); ok && !isContainerKey(k) {
				doc.mergeMissing(m)
			}
		}
	}
	return doc
}

func (d document) mergeMissing(src map[string]any) {
	for k, v := range src {
		if existing, ok := d[k]; !ok || isEmpty(existing) {
			d[k] = v
		}
	}
}

func isContainerKey(key string) bool {
	for _, k := range containerKeys {
		if k == key {
			return true
		}
	}
	return false
}

// lookup returns the first non-empty value stored under any alias.
// Exact key matches are tried before case-insensitive ones.
func (d document) lookup(aliases []string) any {
	for _, alias := range aliases {
		if v, ok := d[alias]; ok && !isEmpty(v) {
			return v
		}
	}
	lowered := make(map[string]any, len(d))
	for k, v := range d {
		lk := strings.ToLower(k)
		if _, seen := lowered[lk]; !seen {
			lowered[lk] = v
		}
	}
	for _, alias := range aliases {
		if v, ok := lowered[strings.ToLower(alias)]; ok && !isEmpty(v) {
			return v
		}
	}
	return nil
}

// str returns the first alias value coerced to a trimmed string
func (d document) str(aliases []string) string {
	return asString(d.lookup(aliases))
}

// field resolves a canonical field through the given alias table
func (d document) field(table aliasTable, canonical string) string {
	return d.str(table[canonical])
}

// hasAny reports whether any alias of any canonical field in the table is present
func (d document) hasAny(table aliasTable) bool {
	for _, aliases := range table {
		if d.lookup(aliases) != nil {
			return true
		}
	}
	return false
}

func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	}
	return false
}

// asString coerces a scalar document value to text.
// Lists of scalars are joined with newlines; objects cannot be coerced.
func asString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case json.Number:
		return val.String()
	case bool:
		if val {
			return "Yes"
		}
		return "No"
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := asString(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "\n")
	case []string:
		return strings.TrimSpace(strings.Join(val, "\n"))
	}
	return ""
}

// listEntries turns a collection value into its entries and reports whether
// the value was usable as a list. Strings are returned unchanged for the
// caller's text heuristics.
func listEntries(v any, recordTable aliasTable) []any {
	switch val := v.(type) {
	case []any:
		return val
	case []map[string]any:
		out := make([]any, len(val))
		for i, m := range val {
			out[i] = m
		}
		return out
	case map[string]any:
		// A single record stored as an object, or a list stored as a map
		if recordTable != nil && document(val).hasAny(recordTable) && !allValuesAreObjects(val) {
			return []any{val}
		}
		return orderedValues(val)
	case string:
		return []any{val}
	}
	return nil
}

func allValuesAreObjects(m map[string]any) bool {
	for _, v := range m {
		if _, ok := v.(map[string]any); !ok {
			return false
		}
	}
	return len(m) > 0
}

// orderedValues returns map values ordered by key, numeric keys numerically
func orderedValues(m map[string]any) []any {
	keys := sortedKeys(m)
	out := make([]any, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ni, errI := strconv.Atoi(keys[i])
		nj, errJ := strconv.Atoi(keys[j])
		switch {
		case errI == nil && errJ == nil:
			return ni < nj
		case errI == nil:
			return true
		case errJ == nil:
			return false
		}
		return keys[i] < keys[j]
	})
	return keys
}
