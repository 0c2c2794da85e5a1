package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/spigell/career-navigator/internal/dialogue"
)

const (
	separatorWidth = 30
	// NoRecommendations is rendered when there is nothing to recommend yet.
	NoRecommendations = "I need more information to provide career recommendations. Could you tell me more about your interests?"
)

// Format renders recommendations as a plain-text report.
func Format(recommendations []dialogue.Recommendation) string {
	if len(recommendations) == 0 {
		return NoRecommendations
	}

	rule := strings.Repeat("=", separatorWidth)
	thin := strings.Repeat("-", separatorWidth)

	var b strings.Builder
	b.WriteString("Career Path Recommendations\n")
	b.WriteString(rule + "\n\n")

	for _, rec := range recommendations {
		fmt.Fprintf(&b, "Career Path: %s\n", rec.Category)
		fmt.Fprintf(&b, "Match Confidence: %s\n", Percent(rec.Confidence))
		b.WriteString(thin + "\n")

		b.WriteString("Overview:\n")
		b.WriteString(rec.Description + "\n\n")

		b.WriteString("Recommended Career Options:\n")
		for i, role := range rec.Roles {
			if i == dialogue.MaxRoles {
				break
			}
			fmt.Fprintf(&b, "%d. %s\n", i+1, role)
		}

		if len(rec.Roadmap) > 0 {
			b.WriteString("\nRoadmap:\n")
			for i, stage := range rec.Roadmap {
				fmt.Fprintf(&b, "  %d) %s\n", i+1, stage)
			}
		}

		b.WriteString("\n" + rule + "\n\n")
	}

	return b.String()
}

// Percent renders a confidence in [0,1] as a whole percentage.
func Percent(confidence float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(confidence*100)))
}
