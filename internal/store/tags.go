package store

import "strings"

// NormalizeTags splits a raw comma-separated tag string into individual
// tags, trimming surrounding whitespace from each piece. An empty input
// yields an empty slice. Tags keep their original casing and duplicates
// are preserved; the backend owns any further canonicalization.
func NormalizeTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		tags = append(tags, strings.TrimSpace(p))
	}
	return tags
}
