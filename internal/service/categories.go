package service

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Category is one entry of the digital-goods taxonomy.
type Category struct {
	Value string
	Label string
}

// Categories is the backend's listing taxonomy.
var Categories = []Category{
	{Value: "templates", Label: "Templates"},
	{Value: "graphics", Label: "Graphics"},
	{Value: "photos", Label: "Photos"},
	{Value: "videos", Label: "Videos"},
	{Value: "audio", Label: "Audio"},
	{Value: "fonts", Label: "Fonts"},
	{Value: "ebooks", Label: "E-books"},
	{Value: "courses", Label: "Courses"},
	{Value: "software", Label: "Software"},
	{Value: "other", Label: "Other"},
}

// MatchCategory maps free-typed category text onto the taxonomy: exact
// value or label first, then prefix, then closest edit distance. Unmatched
// input falls back to "other" so the backend never sees an unknown tag.
func MatchCategory(input string) string {
	q := strings.ToLower(strings.TrimSpace(input))
	if q == "" {
		return "other"
	}

	for _, c := range Categories {
		if q == c.Value || q == strings.ToLower(c.Label) {
			return c.Value
		}
	}
	for _, c := range Categories {
		if strings.HasPrefix(c.Value, q) || strings.HasPrefix(strings.ToLower(c.Label), q) {
			return c.Value
		}
	}

	best, bestScore := "other", 0.0
	for _, c := range Categories {
		if s := categorySimilarity(q, c.Value); s > bestScore {
			best, bestScore = c.Value, s
		}
	}
	if bestScore < 0.6 {
		return "other"
	}
	return best
}

func categorySimilarity(a, b string) float64 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(n)
}
