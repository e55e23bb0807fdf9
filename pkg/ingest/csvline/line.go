// Package csvline implements the tolerant CSV primitives used by the
// ingestion pipeline: a quote-aware line splitter and a header field mapper
// that absorbs the naming drift between CRM export variants.
//
// encoding/csv is deliberately not used here: it unescapes doubled quotes and
// rejects malformed lines, while CRM exports in the wild need every line to
// yield some sequence of fields.
package csvline

import "strings"

// SplitFields tokenizes one CSV line into raw string fields. Commas inside
// double quotes are treated as literal text. Quote characters toggle quoting
// mode and are not included in the output; the standard "" escape convention
// is not interpreted. Every field is trimmed of surrounding whitespace.
//
// Any input, however malformed, yields some sequence of fields; there is no
// error path.
func SplitFields(line string) []string {
	fields := make([]string, 0, strings.Count(line, ",")+1)
	var current strings.Builder
	inQuotes := false

	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))
	return fields
}
