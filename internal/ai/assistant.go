package ai

import (
	"context"
	"strings"
)

// Role tags a transcript turn with its author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry of the conversation transcript.
type Turn struct {
	Role    Role
	Content string
}

// Extractor turns the transcript so far into a flat list of interest phrases.
// Implementations must return a nil error together with an empty list when the
// backend answered but nothing usable was found.
type Extractor interface {
	ExtractInterests(ctx context.Context, transcript []Turn) ([]string, error)
}

// ExtractorFunc adapts a plain function to Extractor.
type ExtractorFunc func(ctx context.Context, transcript []Turn) ([]string, error)

func (f ExtractorFunc) ExtractInterests(ctx context.Context, transcript []Turn) ([]string, error) {
	return f(ctx, transcript)
}

// ParseInterests splits a comma-delimited backend answer into trimmed phrases.
// Empty fragments are dropped; duplicates and case are kept as returned.
func ParseInterests(raw string) []string {
	parts := strings.Split(raw, ",")
	interests := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		interests = append(interests, part)
	}
	return interests
}
