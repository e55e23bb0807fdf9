package csvline

import "strings"

// FieldMapper resolves logical field names against a CSV header row.
// Matching ignores case and internal spaces/underscores, so "Placement Id",
// "placement_id" and "PlacementID" all resolve to the same column. The first
// matching header wins when duplicates exist.
//
// The header row is normalized once at construction; exact lookups are map
// hits, fuzzy lookups scan headers in column order so results stay
// deterministic.
type FieldMapper struct {
	index      map[string]int
	normalized []string
}

// NewFieldMapper builds a mapper over the given header row.
func NewFieldMapper(headers []string) *FieldMapper {
	index := make(map[string]int, len(headers))
	normalized := make([]string, len(headers))
	for i, h := range headers {
		key := Normalize(h)
		normalized[i] = key
		if _, exists := index[key]; !exists {
			index[key] = i
		}
	}
	return &FieldMapper{index: index, normalized: normalized}
}

// Value returns the value in the column matching name, or "" when no header
// matches or the row is too short.
func (m *FieldMapper) Value(name string, row []string) string {
	i, ok := m.index[Normalize(name)]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// ValueFuzzy returns the first non-empty value whose normalized header
// contains any of the given keys, in key order. Used by the email and
// calendar parsers, whose exports name columns even more loosely than the
// placement export does.
func (m *FieldMapper) ValueFuzzy(keys []string, row []string) string {
	for _, key := range keys {
		for i, header := range m.normalized {
			if strings.Contains(header, key) && i < len(row) && row[i] != "" {
				return row[i]
			}
		}
	}
	return ""
}

// Normalize lowercases a header name and strips spaces and underscores.
func Normalize(h string) string {
	h = strings.ToLower(h)
	h = strings.ReplaceAll(h, " ", "")
	h = strings.ReplaceAll(h, "_", "")
	return h
}
