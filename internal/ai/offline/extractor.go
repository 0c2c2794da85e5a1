// Package offline provides an Extractor that needs no network: each user turn
// is treated as if the backend had echoed it back as a comma-separated list.
package offline

import (
	"context"

	"github.com/spigell/career-navigator/internal/ai"
)

type Extractor struct{}

var _ ai.Extractor = Extractor{}

func New() Extractor {
	return Extractor{}
}

func (Extractor) ExtractInterests(ctx context.Context, transcript []ai.Turn) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var interests []string
	for _, turn := range transcript {
		if turn.Role != ai.RoleUser {
			continue
		}
		interests = append(interests, ai.ParseInterests(turn.Content)...)
	}
	return interests, nil
}
