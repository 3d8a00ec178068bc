package utils

import (
	"regexp"
	"strings"
)

var templateTokenRe = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_]+)\s*\}\}`)

// RenderTemplate substitutes {{key}} tokens in a description template with
// matching fields from the payload. Unmatched tokens render as an empty
// string; this is deliberately lossy rather than an error.
func RenderTemplate(template string, fields map[string]string) string {
	return templateTokenRe.ReplaceAllStringFunc(template, func(token string) string {
		key := templateTokenRe.FindStringSubmatch(token)[1]
		return fields[key]
	})
}

// TemplateFields flattens a payload into the string fields available to
// RenderTemplate. Non-string values are skipped.
func TemplateFields(payload map[string]any) map[string]string {
	fields := make(map[string]string, len(payload))
	for k, v := range payload {
		if s, ok := v.(string); ok {
			fields[k] = s
		}
	}
	return fields
}

// CollapseSpaces collapses the redundant whitespace left behind by empty
// substitutions so rendered descriptions stay readable.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
