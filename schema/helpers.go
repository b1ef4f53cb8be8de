package schema

import (
	"sort"
	"strings"
	"unicode"
)

// cleanParts cleans a slice of name parts by trimming non-alphanumeric punctuation from ends,
// and additionally trims trailing periods for looser handling.
func cleanParts(parts []string) []string {
	var cleaned []string
	for _, p := range parts {
		cp := strings.TrimFunc(p, func(r rune) bool {
			if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' || r == '\'' || r == '.' {
				return false
			}
			return true
		})
		cp = strings.TrimSuffix(cp, ".")
		if cp != "" {
			cleaned = append(cleaned, cp)
		}
	}
	return cleaned
}

// getInitial extracts the initial from the last name part, using the first rune for Unicode safety.
func getInitial(last string) string {
	rr := []rune(last)
	if len(rr) > 0 {
		return string(rr[0])
	}
	return ""
}

// AbbreviateName formats "Samuel Huang" to "Samuel H".
// It handles names with parentheses, quotes, backticks, hyphens, and apostrophes appropriately.
// It also handles single-word names by returning them unchanged, and bot accounts without abbreviation.
func AbbreviateName(name string) string {
	// Trim leading/trailing whitespace.
	trimmedName := strings.TrimSpace(name)

	// Special case: bot accounts (e.g., dependabot[bot]) are not abbreviated.
	if strings.Contains(name, "[bot]") {
		parts := strings.Fields(trimmedName)
		if len(parts) > 0 {
			return strings.Join(parts, " ")
		}
		return trimmedName
	}

	// Remove outer punctuation.
	trimmedName = strings.Trim(trimmedName, "()\"'`")

	// Split into parts.
	parts := strings.Fields(trimmedName)
	cleaned := cleanParts(parts)

	// Handle based on number of cleaned parts.
	if len(cleaned) >= 2 {
		first := cleaned[0]
		last := cleaned[len(cleaned)-1]
		initial := getInitial(last)
		if initial != "" {
			return first + " " + initial
		}
		return first
	}

	if len(cleaned) == 1 {
		return cleaned[0]
	}

	// Fallback.
	return trimmedName
}

// AbbreviateContributors applies abbreviation to all contributors in the slice
func AbbreviateContributors(names []string) []string {
	abbreviated := make([]string, len(names))
	for i, name := range names {
		abbreviated[i] = AbbreviateName(name)
	}
	return abbreviated
}

// FormatContributors formats contributors as "Alice E, Bob S"
func FormatContributors(names []string) string {
	return strings.Join(AbbreviateContributors(names), ", ")
}

// TopCounts returns the keys of counts ordered by count descending, then key
// ascending, truncated to n entries (n <= 0 keeps all).
func TopCounts(counts map[string]int, n int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if n > 0 && len(keys) > n {
		return keys[:n]
	}
	return keys
}

// TopContributors returns contributor names ordered by score descending, then name.
func TopContributors(scores map[string]float64, n int) []string {
	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if scores[names[i]] != scores[names[j]] {
			return scores[names[i]] > scores[names[j]]
		}
		return names[i] < names[j]
	})
	if n > 0 && len(names) > n {
		return names[:n]
	}
	return names
}
