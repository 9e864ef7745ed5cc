// Package assistant binds the ai.Chatter operations to an OpenAI-compatible
// completion endpoint through langchaingo.
package assistant

import (
	"fmt"

	"github.com/cyberstar-dev/soudan-bot/config"
	"github.com/cyberstar-dev/soudan-bot/logging"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Bot is a client for the chat-completion provider.
type Bot struct {
	llm       llms.Model
	modelName string
	logger    *logging.Logger
}

// Setup creates the completion client from configuration.
func Setup(cfg *config.Config, logger *logging.Logger) (*Bot, error) {
	if logger == nil {
		logger = logging.Default()
	}

	logger.Info("setting up completion client", "model", cfg.Model, "baseURL", cfg.OpenAIBaseURL)

	opts := []openai.Option{
		openai.WithToken(cfg.OpenAIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.OpenAIBaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.OpenAIBaseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		logger.Error("failed to create OpenAI LLM", "error", err.Error())
		return nil, fmt.Errorf("failed to create OpenAI LLM: %w", err)
	}

	return &Bot{
		llm:       llm,
		modelName: cfg.Model,
		logger:    logger,
	}, nil
}
