package assistant

import (
	"context"
	"fmt"

	"github.com/cyberstar-dev/soudan-bot/ai"
	"github.com/cyberstar-dev/soudan-bot/metrics"
	"github.com/cyberstar-dev/soudan-bot/persona"
	"github.com/cyberstar-dev/soudan-bot/serpapi"
	"github.com/tmc/langchaingo/llms"
)

func (b *Bot) generate(ctx context.Context, msgs []llms.MessageContent, opts ...llms.CallOption) (string, error) {
	resp, err := b.llm.GenerateContent(ctx, msgs, opts...)
	if err != nil {
		metrics.FailedLLMGen.Add(1)
		return "", fmt.Errorf("failed to get llm response: %w", err)
	}
	if len(resp.Choices) == 0 {
		metrics.EmptyLLMResponse.Add(1)
		return "", fmt.Errorf("llm returned no choices")
	}
	return ai.CleanResponse(resp.Choices[0].Content), nil
}

// RespondWithPersona answers under the persona's system prompt using its
// temperature.
func (b *Bot) RespondWithPersona(ctx context.Context, tpl persona.Template, userText, contextBlock string) (string, error) {
	b.logger.Debug("persona response requested", "persona", tpl.ID)

	msgs := ai.ComposePersona(tpl, userText, contextBlock)
	text, err := b.generate(ctx, msgs,
		llms.WithCandidateCount(1),
		llms.WithTemperature(tpl.Temperature))
	if err != nil {
		b.logger.Error("persona generation failed", "error", err.Error(), "persona", tpl.ID)
		return "", err
	}
	if text == "" {
		b.logger.Warn("empty persona response", "persona", tpl.ID)
		metrics.EmptyLLMResponse.Add(1)
		return "申し訳ありません、うまく応答できませんでした。もう一度お試しください。", nil
	}
	metrics.SuccessfulLLMGen.Add(1)
	return text, nil
}

// ClassifySearchIntent asks the model whether the text needs a web search.
// The verdict uses the provider's default temperature, and a response
// counts as "search" only under the ai.ParseVerdict substring rule.
func (b *Bot) ClassifySearchIntent(ctx context.Context, userText string) (bool, error) {
	text, err := b.generate(ctx, ai.ComposeClassifier(userText), llms.WithCandidateCount(1))
	if err != nil {
		b.logger.Error("classifier call failed", "error", err.Error())
		return false, err
	}
	verdict := ai.ParseVerdict(text)
	b.logger.Debug("classifier verdict", "needsSearch", verdict, "raw", text)
	metrics.SuccessfulLLMGen.Add(1)
	return verdict, nil
}

// AnswerFromSearch grounds an answer in the retrieved snippets. Search mode
// uses the provider's default temperature, not a persona's.
func (b *Bot) AnswerFromSearch(ctx context.Context, query string, results []serpapi.Result) (string, error) {
	text, err := b.generate(ctx, ai.ComposeSearch(query, results), llms.WithCandidateCount(1))
	if err != nil {
		b.logger.Error("search-mode generation failed", "error", err.Error(), "query", query)
		return "", err
	}
	metrics.SuccessfulLLMGen.Add(1)
	return text, nil
}

// Summarize condenses transcript lines into a short digest.
func (b *Bot) Summarize(ctx context.Context, logs string) (string, error) {
	text, err := b.generate(ctx, ai.ComposeSummary(logs), llms.WithCandidateCount(1))
	if err != nil {
		b.logger.Error("summary generation failed", "error", err.Error())
		return "", err
	}
	metrics.SuccessfulLLMGen.Add(1)
	return text, nil
}
