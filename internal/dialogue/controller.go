package dialogue

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/career-navigator/internal/ai"
	"github.com/spigell/career-navigator/internal/catalog"
	"github.com/spigell/career-navigator/internal/logger"
	"github.com/spigell/career-navigator/internal/scoring"
)

const (
	// MinConfidence is the exclusive lower bound for a category to be recommended.
	MinConfidence = 0.01
	// MaxRecommendations caps the recommendations returned per turn.
	MaxRecommendations = 3
	// MaxRoles caps the representative roles in a recommendation.
	MaxRoles = 3

	// sameTopicLimit forces a diversification prompt on the third consecutive
	// turn with an unchanged top category.
	sameTopicLimit = 2
	// failsafeTurns is compared against the transcript length before the
	// assistant reply of the current round is appended.
	failsafeTurns = 6
)

var (
	// ErrEmptyUtterance is returned for blank user input. State is untouched.
	ErrEmptyUtterance = errors.New("user response must not be empty")
	// ErrExtraction wraps interest extractor failures. State is untouched.
	ErrExtraction = errors.New("interest extraction failed")
)

// Recommendation is a category suggestion built for a single turn.
type Recommendation struct {
	Category    string
	Confidence  float64
	Description string
	Roles       []string
	Roadmap     []string
}

// State is the conversation state owned by one Controller. An empty LastTopic
// means no topic is being tracked.
type State struct {
	Transcript     []ai.Turn
	LastPrompt     string
	LastTopic      string
	SameTopicCount int
	Cursor         int
}

func (s State) clone() State {
	s.Transcript = slices.Clone(s.Transcript)
	return s
}

// resetTracking clears everything but the transcript and the last prompt.
func (s *State) resetTracking() {
	s.LastTopic = ""
	s.SameTopicCount = 0
	s.Cursor = 0
}

// Controller drives one conversation. It is not safe for concurrent use: run
// one Controller per conversation and feed it one turn at a time.
type Controller struct {
	id        string
	extractor ai.Extractor
	scorer    scoring.Scorer
	catalog   *catalog.Catalog
	logger    *zap.Logger
	state     State
}

// New creates a controller. A nil scorer or catalog falls back to keyword
// scoring over the built-in catalog.
func New(extractor ai.Extractor, scorer scoring.Scorer, c *catalog.Catalog, log *zap.Logger) *Controller {
	if c == nil {
		c = catalog.Default()
	}
	if scorer == nil {
		scorer = scoring.NewKeywordScorer(c)
	}

	id := uuid.NewString()

	return &Controller{
		id:        id,
		extractor: extractor,
		scorer:    scorer,
		catalog:   c,
		logger:    logger.WithSession(log, id),
	}
}

// SessionID identifies the conversation in logs.
func (c *Controller) SessionID() string {
	return c.id
}

// Start resets topic tracking and returns the opening prompt. The transcript is kept.
func (c *Controller) Start() string {
	c.state.resetTracking()
	c.state.LastPrompt = InitialPrompt
	c.logger.Debug("conversation started")
	return InitialPrompt
}

// Reset drops the whole conversation, transcript included, and starts over.
func (c *Controller) Reset() string {
	c.state = State{}
	c.logger.Info("conversation reset")
	return c.Start()
}

// State returns a copy of the current conversation state.
func (c *Controller) State() State {
	return c.state.clone()
}

// Process runs one dialogue turn for the user's answer and returns the next
// question with the current recommendations. Nothing is committed unless the
// whole turn succeeds, so a failed turn can simply be retried.
func (c *Controller) Process(ctx context.Context, userText string) (string, []Recommendation, error) {
	if strings.TrimSpace(userText) == "" {
		return "", nil, ErrEmptyUtterance
	}

	next := c.state.clone()
	next.Transcript = append(next.Transcript, ai.Turn{Role: ai.RoleUser, Content: userText})

	interests, err := c.extractor.ExtractInterests(ctx, slices.Clone(next.Transcript))
	if err != nil {
		c.logger.Warn("turn failed", zap.Error(err))
		return "", nil, fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	scores := c.scorer.Score(interests)
	recommendations := Recommend(c.catalog, scores)

	c.logger.Debug("interests scored",
		zap.Strings("interests", interests),
		zap.Int("recommendations", len(recommendations)),
	)

	prompt := c.nextPrompt(&next, recommendations)

	next.Transcript = append(next.Transcript, ai.Turn{Role: ai.RoleAssistant, Content: prompt})
	next.LastPrompt = prompt
	c.state = next

	return prompt, recommendations, nil
}

// Recommend turns ranked scores into at most MaxRecommendations
// recommendations, skipping categories at or below MinConfidence.
func Recommend(c *catalog.Catalog, scores []scoring.Scored) []Recommendation {
	if c == nil {
		c = catalog.Default()
	}

	recommendations := make([]Recommendation, 0, MaxRecommendations)
	for _, s := range scores {
		if len(recommendations) == MaxRecommendations {
			break
		}
		if s.Confidence <= MinConfidence {
			continue
		}

		entry := c.Lookup(s.Category)
		roles := entry.Roles
		if len(roles) > MaxRoles {
			roles = roles[:MaxRoles]
		}

		recommendations = append(recommendations, Recommendation{
			Category:    s.Category,
			Confidence:  s.Confidence,
			Description: entry.Description,
			Roles:       roles,
			Roadmap:     entry.Roadmap,
		})
	}
	return recommendations
}

// nextPrompt applies the topic tracking rules to s, which already holds the
// current user turn, and returns the question to ask.
func (c *Controller) nextPrompt(s *State, recommendations []Recommendation) string {
	if len(recommendations) == 0 {
		s.resetTracking()
		return NeedMoreInfoPrompt
	}

	top := recommendations[0].Category

	if s.LastTopic == top {
		s.SameTopicCount++
	} else {
		s.SameTopicCount = 0
		s.LastTopic = top
	}

	var prompt string
	if s.SameTopicCount >= sameTopicLimit {
		c.logger.Info("forcing a broader question", zap.String("topic", top))
		prompt = DiversifyPrompt(top)
		s.resetTracking()
	} else {
		question := QuestionCycle[s.Cursor]
		prompt = FollowUpPrompt(question, top)
		c.logger.Debug("follow-up question",
			zap.String("topic", top),
			zap.String("question", string(question)),
			zap.Int("same_topic_count", s.SameTopicCount),
		)
		s.Cursor = (s.Cursor + 1) % len(QuestionCycle)
	}

	if len(s.Transcript) >= failsafeTurns &&
		strings.Contains(prompt, interestsMarker) &&
		!strings.Contains(prompt, diversifyMarker) {
		c.logger.Info("failsafe triggered", zap.Int("transcript_turns", len(s.Transcript)))
		prompt = FailsafePrompt
		s.resetTracking()
	}

	return prompt
}
