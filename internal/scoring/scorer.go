package scoring

import (
	"sort"
	"strings"

	"github.com/spigell/career-navigator/internal/catalog"
)

// Scored is a category paired with its share of all keyword hits.
type Scored struct {
	Category   string
	Confidence float64
}

// Scorer maps interest phrases to ranked categories.
type Scorer interface {
	Score(interests []string) []Scored
}

// KeywordScorer counts substring hits of catalog keywords in interest phrases.
type KeywordScorer struct {
	catalog *catalog.Catalog
}

func NewKeywordScorer(c *catalog.Catalog) *KeywordScorer {
	if c == nil {
		c = catalog.Default()
	}
	return &KeywordScorer{catalog: c}
}

// Score returns every catalog category sorted by descending confidence. Ties
// keep catalog order. Confidences sum to 1 when anything matched, else all are 0.
//
// Matching is plain substring containment on the lowercased phrase, so "art"
// also matches "smart" and each keyword hit counts separately.
func (s *KeywordScorer) Score(interests []string) []Scored {
	categories := s.catalog.Categories()
	counts := make([]int, len(categories))
	total := 0

	for _, interest := range interests {
		phrase := strings.ToLower(interest)
		for i, category := range categories {
			for _, keyword := range category.Keywords {
				if strings.Contains(phrase, keyword) {
					counts[i]++
					total++
				}
			}
		}
	}

	result := make([]Scored, len(categories))
	for i, category := range categories {
		result[i] = Scored{Category: category.Name}
		if total > 0 {
			result[i].Confidence = float64(counts[i]) / float64(total)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Confidence > result[j].Confidence
	})

	return result
}
