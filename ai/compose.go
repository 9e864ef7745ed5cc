package ai

import (
	"fmt"
	"strings"

	"github.com/cyberstar-dev/soudan-bot/persona"
	"github.com/cyberstar-dev/soudan-bot/serpapi"
	"github.com/tmc/langchaingo/llms"
)

// contextBlockHeader labels the rolling log summary inside the system
// prompt.
const contextBlockHeader = "▼ 直近ログの要約"

// ComposePersona builds the two-message conversation for a persona answer:
// the persona system prompt (with the summary block appended when present)
// followed by the user text. Exactly one system message first and one user
// message last, never an assistant turn.
func ComposePersona(tpl persona.Template, userText, contextBlock string) []llms.MessageContent {
	systemText := tpl.SystemText
	if contextBlock != "" {
		systemText = systemText + "\n" + contextBlockHeader + "\n" + contextBlock + "\n"
	}
	return []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemText),
		llms.TextParts(llms.ChatMessageTypeHuman, userText),
	}
}

// ComposeSearch builds the search-mode conversation: a fixed web-research
// system prompt and a synthesized user message embedding the retrieved
// title/snippet/link blocks followed by the original query.
func ComposeSearch(query string, results []serpapi.Result) []llms.MessageContent {
	blocks := make([]string, 0, len(results))
	for _, r := range results {
		blocks = append(blocks, fmt.Sprintf("%s\n%s\n%s\n", r.Title, r.Snippet, r.Link))
	}
	content := strings.Join(blocks, "\n\n")
	userText := fmt.Sprintf("以下はWeb検索で得られた結果です。これを参考に、ユーザーの質問『%s』に日本語で簡潔に答えてください：\n%s", query, content)
	return []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, SearchSystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, userText),
	}
}

// ComposeClassifier builds the two-message yes/no judgement conversation.
func ComposeClassifier(userText string) []llms.MessageContent {
	return []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, ClassifierSystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, fmt.Sprintf(ClassifierUserTemplate, userText)),
	}
}

// ComposeSummary builds the transcript digestion conversation.
func ComposeSummary(logs string) []llms.MessageContent {
	userText := "以下はDiscordでの会話ログです。要点を簡潔にまとめてください：\n" + logs
	return []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, SummarySystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, userText),
	}
}
