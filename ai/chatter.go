// Package ai defines the operations the router needs from the completion
// provider, plus the fixed prompt text and the pure composition helpers.
package ai

import (
	"context"

	"github.com/cyberstar-dev/soudan-bot/persona"
	"github.com/cyberstar-dev/soudan-bot/serpapi"
)

// ClassifierSystemPrompt asks the model to act as a binary yes/no judge.
const ClassifierSystemPrompt = "あなたは内容が検索向きかを yes/no で判断する分類アシスタントです。"

// ClassifierUserTemplate wraps the user text for the search-intent verdict.
// The model is told to answer with the bare token so ParseVerdict can read it.
const ClassifierUserTemplate = `次のユーザーの発言が、インターネットでの情報検索（Web検索）を必要とする内容かどうかを判定してください。
情報が一般的・最新ニュース・製品・定義・仕様などであれば「yes」、Botに人格的な相談・創作・表現指導などなら「no」とだけ答えてください。

発言内容:「%s」
`

// SearchSystemPrompt replaces the persona when answering from web results.
const SearchSystemPrompt = "あなたは信頼できるWeb調査アシスタントです。"

// SummarySystemPrompt drives transcript digestion.
const SummarySystemPrompt = "あなたはログを要約する優秀なアシスタントです。"

// Chatter is the completion surface the router orchestrates. One
// implementation talks to the real provider; tests substitute fakes.
type Chatter interface {
	// RespondWithPersona answers user text under a persona's system prompt
	// and temperature. contextBlock, when non-empty, is the rolling log
	// summary appended to the system prompt.
	RespondWithPersona(ctx context.Context, tpl persona.Template, userText, contextBlock string) (string, error)

	// ClassifySearchIntent asks whether the text needs web search.
	ClassifySearchIntent(ctx context.Context, userText string) (bool, error)

	// AnswerFromSearch grounds an answer in retrieved snippets.
	AnswerFromSearch(ctx context.Context, query string, results []serpapi.Result) (string, error)

	// Summarize condenses raw transcript lines.
	Summarize(ctx context.Context, logs string) (string, error)
}
