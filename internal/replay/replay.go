// Package replay runs scripted conversations through independent dialogue
// controllers, several at a time.
package replay

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/spigell/career-navigator/internal/dialogue"
)

// Script is a set of conversations to replay.
type Script struct {
	Conversations []Conversation `yaml:"conversations"`
}

// Conversation is a named list of user answers fed to one controller in order.
type Conversation struct {
	Name    string   `yaml:"name"`
	Answers []string `yaml:"answers"`
}

// Exchange is a single user answer with the controller's reaction.
type Exchange struct {
	Answer          string
	Prompt          string
	Recommendations []dialogue.Recommendation
}

// Result is the outcome of one replayed conversation.
type Result struct {
	Name          string
	SessionID     string
	InitialPrompt string
	Exchanges     []Exchange
}

// NewController creates a fresh controller per conversation.
type NewController func() *dialogue.Controller

// Load reads a YAML script from path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML script. Blank answers are rejected the
// same way the interactive prompt rejects them.
func Parse(data []byte) (*Script, error) {
	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}

	if len(script.Conversations) == 0 {
		return nil, errors.New("script has no conversations")
	}

	for i := range script.Conversations {
		conv := &script.Conversations[i]
		if strings.TrimSpace(conv.Name) == "" {
			conv.Name = fmt.Sprintf("conversation-%d", i+1)
		}
		if len(conv.Answers) == 0 {
			return nil, fmt.Errorf("%s: no answers", conv.Name)
		}
		for j, answer := range conv.Answers {
			if strings.TrimSpace(answer) == "" {
				return nil, fmt.Errorf("%s: answer #%d is empty", conv.Name, j+1)
			}
		}
	}

	return &script, nil
}

// Run replays every conversation, at most parallel at a time (unlimited when
// parallel <= 0). Results keep script order. The first failing conversation
// cancels the rest.
func Run(ctx context.Context, script *Script, newController NewController, parallel int, logger *zap.Logger) ([]Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	results := make([]Result, len(script.Conversations))

	g, ctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}

	for i, conv := range script.Conversations {
		g.Go(func() error {
			result, err := play(ctx, conv, newController())
			if err != nil {
				return fmt.Errorf("%s: %w", conv.Name, err)
			}
			logger.Debug("conversation replayed",
				zap.String("name", conv.Name),
				zap.String("session_id", result.SessionID),
				zap.Int("answers", len(result.Exchanges)),
			)
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func play(ctx context.Context, conv Conversation, controller *dialogue.Controller) (Result, error) {
	result := Result{
		Name:          conv.Name,
		SessionID:     controller.SessionID(),
		InitialPrompt: controller.Start(),
		Exchanges:     make([]Exchange, 0, len(conv.Answers)),
	}

	for _, answer := range conv.Answers {
		prompt, recs, err := controller.Process(ctx, answer)
		if err != nil {
			return Result{}, err
		}
		result.Exchanges = append(result.Exchanges, Exchange{
			Answer:          answer,
			Prompt:          prompt,
			Recommendations: recs,
		})
	}

	return result, nil
}
