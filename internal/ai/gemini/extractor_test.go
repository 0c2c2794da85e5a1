package gemini

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/genai"

	"github.com/spigell/career-navigator/internal/ai"
)

type stubChat struct {
	response    string
	err         error
	lastSystem  string
	lastHistory []*genai.Content
	lastMessage string
}

func (s *stubChat) Chat(_ context.Context, system string, history []*genai.Content, message string) (string, error) {
	s.lastSystem = system
	s.lastHistory = history
	s.lastMessage = message
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestExtractorSendsTranscript(t *testing.T) {
	stub := &stubChat{response: "programming, data analysis , robotics"}
	extractor := NewExtractor(stub, 0, zap.NewNop())

	transcript := []ai.Turn{
		{Role: ai.RoleUser, Content: "I like computers"},
		{Role: ai.RoleAssistant, Content: "Tell me more"},
		{Role: ai.RoleUser, Content: "I write code and build robots"},
	}

	interests, err := extractor.ExtractInterests(context.Background(), transcript)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"programming", "data analysis", "robotics"}
	if !reflect.DeepEqual(interests, want) {
		t.Fatalf("expected %v, got %v", want, interests)
	}

	if stub.lastSystem != Instruction() || !strings.Contains(stub.lastSystem, "comma-separated") {
		t.Fatalf("unexpected system instruction: %q", stub.lastSystem)
	}

	if stub.lastMessage != "I write code and build robots" {
		t.Fatalf("unexpected message: %q", stub.lastMessage)
	}

	if len(stub.lastHistory) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(stub.lastHistory))
	}
	if stub.lastHistory[0].Role != "user" || stub.lastHistory[1].Role != "model" {
		t.Fatalf("unexpected history roles: %q, %q", stub.lastHistory[0].Role, stub.lastHistory[1].Role)
	}
	if stub.lastHistory[1].Parts[0].Text != "Tell me more" {
		t.Fatalf("unexpected history text: %q", stub.lastHistory[1].Parts[0].Text)
	}
}

func TestExtractorToleratesEmptyAnswer(t *testing.T) {
	stub := &stubChat{err: fmt.Errorf("gemini request failed after 1 attempts: %w", ErrEmptyResponse)}
	extractor := NewExtractor(stub, 0, zap.NewNop())

	interests, err := extractor.ExtractInterests(context.Background(), []ai.Turn{{Role: ai.RoleUser, Content: "hmm"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(interests) != 0 {
		t.Fatalf("expected no interests, got %v", interests)
	}
}

func TestExtractorPropagatesTransportError(t *testing.T) {
	boom := errors.New("connection reset")
	extractor := NewExtractor(&stubChat{err: boom}, 0, zap.NewNop())

	_, err := extractor.ExtractInterests(context.Background(), []ai.Turn{{Role: ai.RoleUser, Content: "hi"}})
	if !errors.Is(err, boom) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestExtractorEmptyTranscript(t *testing.T) {
	stub := &stubChat{response: "should not be used"}
	interests, err := NewExtractor(stub, 0, nil).ExtractInterests(context.Background(), nil)
	if err != nil || interests != nil {
		t.Fatalf("expected nil result, got %v, %v", interests, err)
	}
	if stub.lastMessage != "" {
		t.Fatal("expected no backend call for an empty transcript")
	}
}

func TestExtractorLogsTruncatedPreview(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	stub := &stubChat{response: "teaching, mentoring"}
	extractor := NewExtractor(stub, 5, zap.New(core))

	if _, err := extractor.ExtractInterests(context.Background(), []ai.Turn{{Role: ai.RoleUser, Content: "I enjoy tutoring kids"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := observed.FilterMessage("gemini extract interests request").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 request entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["message_preview"]; got != "I enj..." {
		t.Fatalf("unexpected preview: %v", got)
	}
}
