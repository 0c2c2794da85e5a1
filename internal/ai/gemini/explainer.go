package gemini

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/career-navigator/internal/catalog"
)

//go:embed explain.md
var explainTemplate string

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
}

// Explainer produces a short free-text explanation of a catalog category.
type Explainer struct {
	generator contentGenerator
	catalog   *catalog.Catalog
	logger    *zap.Logger
}

func NewExplainer(generator contentGenerator, c *catalog.Catalog, logger *zap.Logger) *Explainer {
	if c == nil {
		c = catalog.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Explainer{generator: generator, catalog: c, logger: logger}
}

func (e *Explainer) Explain(ctx context.Context, category string) (string, error) {
	if _, ok := e.catalog.Get(category); !ok {
		return "", fmt.Errorf("unknown career category %q (known: %s)", category, strings.Join(e.catalog.Names(), ", "))
	}

	prompt := buildExplainPrompt(category, e.catalog.Lookup(category))
	e.logger.Debug("gemini explain request", zap.String("category", category))

	text, err := e.generator.GenerateContent(ctx, "", prompt)
	if err != nil {
		return "", fmt.Errorf("explain %s: %w", category, err)
	}
	return text, nil
}

func buildExplainPrompt(category string, entry catalog.Entry) string {
	roles := "none"
	if len(entry.Roles) > 0 {
		roles = strings.Join(entry.Roles, ", ")
	}

	prompt := strings.ReplaceAll(explainTemplate, "{{CAREER_PATH}}", category)
	prompt = strings.ReplaceAll(prompt, "{{DESCRIPTION}}", entry.Description)
	prompt = strings.ReplaceAll(prompt, "{{ROLES}}", roles)
	return strings.TrimSpace(prompt)
}
