package gemini

import (
	"context"
	_ "embed"
	"errors"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/career-navigator/internal/ai"
	"github.com/spigell/career-navigator/internal/utils"
)

//go:embed extract_interests.md
var extractInstruction string

const defaultMaxLogLength = 200

type chatGenerator interface {
	Chat(ctx context.Context, system string, history []*genai.Content, message string) (string, error)
}

// Extractor asks Gemini to condense the transcript into interest phrases.
type Extractor struct {
	generator chatGenerator
	logger    *zap.Logger
	maxLogLen int
}

var _ ai.Extractor = (*Extractor)(nil)

func NewExtractor(generator chatGenerator, maxLogLength int, logger *zap.Logger) *Extractor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Extractor{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// Instruction returns the system instruction sent with every extraction request.
func Instruction() string {
	return strings.TrimSpace(extractInstruction)
}

// ExtractInterests sends the whole transcript: every turn but the last becomes
// chat history and the last one is sent as the new message. An empty answer
// from the model is not an error and yields no interests.
func (e *Extractor) ExtractInterests(ctx context.Context, transcript []ai.Turn) ([]string, error) {
	if len(transcript) == 0 {
		return nil, nil
	}

	history, message := splitTranscript(transcript)

	e.logger.Debug("gemini extract interests request",
		zap.Int("turns", len(transcript)),
		zap.String("message_preview", utils.TruncateForLog(message, e.maxLogLen)),
	)

	raw, err := e.generator.Chat(ctx, Instruction(), history, message)
	if errors.Is(err, ErrEmptyResponse) {
		e.logger.Debug("gemini returned no interests")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	interests := ai.ParseInterests(raw)

	e.logger.Debug("gemini extract interests response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, e.maxLogLen)),
		zap.Strings("interests", interests),
	)

	return interests, nil
}

func splitTranscript(transcript []ai.Turn) ([]*genai.Content, string) {
	last := transcript[len(transcript)-1]
	history := make([]*genai.Content, 0, len(transcript)-1)
	for _, turn := range transcript[:len(transcript)-1] {
		history = append(history, toContent(turn))
	}
	return history, last.Content
}

func toContent(turn ai.Turn) *genai.Content {
	if turn.Role == ai.RoleAssistant {
		return genai.NewContentFromText(turn.Content, genai.RoleModel)
	}
	return genai.NewContentFromText(turn.Content, genai.RoleUser)
}
