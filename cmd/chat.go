package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/career-navigator/internal/dialogue"
	"github.com/spigell/career-navigator/internal/report"
)

const (
	PromptAnswer     = "Answer the question"
	PromptRecommend  = "Show recommendations again"
	PromptTranscript = "Show transcript"
	PromptReset      = "Reset conversation"
	PromptQuit       = "Quit"
)

var errQuit = errors.New("quit requested")

var actionPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptAnswer, PromptRecommend, PromptTranscript, PromptReset, PromptQuit},
}

var answerPrompt = promptui.Prompt{
	Label:    "Your answer",
	Validate: validateAnswer,
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive career guidance conversation",
	Run: func(cmd *cobra.Command, _ []string) {
		chat(cmd)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().Bool("no-menu", false, "do not show the action menu between answers")
}

func validateAnswer(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("please provide a response")
	}
	return nil
}

func chat(cmd *cobra.Command) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger, config := setup()

	cat, err := loadCatalog(config, logger)
	if err != nil {
		logger.Fatal("loading career catalog", zap.Error(err))
	}

	extractor, err := newExtractor(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("creating interest extractor", zap.Error(err))
	}

	controller := dialogue.New(extractor, nil, cat, logger)
	logger.Info("starting the conversation", zap.String("version", version), zap.String("session_id", controller.SessionID()))

	fmt.Println(controller.Start())

	noMenu, _ := cmd.Flags().GetBool("no-menu")
	session := &chatSession{controller: controller, logger: logger}

	for {
		action := PromptAnswer
		if !noMenu && session.turns > 0 {
			_, action, err = actionPrompt.Run()
			if err != nil {
				return
			}
		}

		if err := session.handle(ctx, action); err != nil {
			if errors.Is(err, errQuit) || errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				logger.Info("exiting", zap.String("reason", "conversation finished"))
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

type chatSession struct {
	controller *dialogue.Controller
	logger     *zap.Logger
	last       []dialogue.Recommendation
	turns      int
}

func (s *chatSession) handle(ctx context.Context, action string) error {
	switch action {
	case PromptAnswer:
		return s.answer(ctx)
	case PromptRecommend:
		fmt.Println(report.Format(s.last))
		return nil
	case PromptTranscript:
		for _, turn := range s.controller.State().Transcript {
			fmt.Printf("[%s] %s\n\n", turn.Role, turn.Content)
		}
		return nil
	case PromptReset:
		s.last = nil
		s.turns = 0
		fmt.Println(s.controller.Reset())
		return nil
	case PromptQuit:
		return errQuit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func (s *chatSession) answer(ctx context.Context) error {
	text, err := answerPrompt.Run()
	if err != nil {
		return err
	}

	next, recommendations, err := s.controller.Process(ctx, text)
	if err != nil {
		// The turn was not committed, so the same answer can be sent again.
		s.logger.Warn("processing the answer", zap.Error(err))
		fmt.Println(dialogue.RetryMessage)
		return nil
	}

	s.turns++
	s.last = recommendations

	if len(recommendations) > 0 {
		fmt.Println(report.Format(recommendations))
	}
	fmt.Println(next)

	return nil
}
