package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/career-navigator/internal/ai"
	"github.com/spigell/career-navigator/internal/ai/gemini"
	"github.com/spigell/career-navigator/internal/ai/offline"
	"github.com/spigell/career-navigator/internal/catalog"
	applog "github.com/spigell/career-navigator/internal/logger"
	"github.com/spigell/career-navigator/internal/secrets"
)

const (
	providerGemini  = "gemini"
	providerOffline = "offline"
)

// setup builds the logger and reads the config; any failure is fatal.
func setup() (*zap.Logger, *Config) {
	logger, err := applog.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	// secrets must not end up in logs
	redacted := *config.AI.Gemini
	if redacted.APIKey != "" {
		redacted.APIKey = "***"
	}
	pretty, _ := json.MarshalIndent(redacted, "", "  ")
	logger.Debug(fmt.Sprintf("starting with gemini config: \n %s", pretty),
		zap.String("provider", config.AI.Provider),
		zap.String("catalog_file", config.CatalogFile),
	)

	return logger, config
}

// loadCatalog picks the catalog file, then an inline catalog section, then the built-in one.
func loadCatalog(config *Config, logger *zap.Logger) (*catalog.Catalog, error) {
	if file := strings.TrimSpace(config.CatalogFile); file != "" {
		c, err := catalog.Load(file)
		if err != nil {
			return nil, err
		}
		logger.Info("using catalog from file", zap.String("file", file), zap.Int("categories", c.Len()))
		return c, nil
	}

	if config.Catalog != nil {
		c, err := catalog.FromConfig(config.Catalog)
		if err != nil {
			return nil, err
		}
		logger.Info("using catalog from config", zap.Int("categories", c.Len()))
		return c, nil
	}

	return catalog.Default(), nil
}

func newGenerator(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (*gemini.Generator, error) {
	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or GEMINI_API_KEY, or use --provider offline)", err)
	}

	genLogger := applog.WithCommonFields(logger, providerGemini, cfg.Gemini.Model).With(
		zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries),
	)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	return generator.WithTemperature(cfg.Gemini.Temperature), nil
}

func newExtractor(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Extractor, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))

	switch provider {
	case providerOffline:
		logger.Info("using offline interest extractor")
		return offline.New(), nil
	case "", providerGemini:
		generator, err := newGenerator(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		extractorLogger := logger.With(zap.String("component", "extractor"))
		return gemini.NewExtractor(generator, cfg.Gemini.MaxLogLength, extractorLogger), nil
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}
