package discord

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateRange(t *testing.T) {
	from, to, err := parseDateRange("2025-06-01", "2025-06-03")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), from)
	// end of the last day is included
	assert.True(t, to.After(time.Date(2025, 6, 3, 23, 59, 59, 0, time.UTC)))
	assert.True(t, to.Before(time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)))
}

func TestParseDateRangeErrors(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
	}{
		{name: "bad start", start: "June 1", end: "2025-06-03"},
		{name: "bad end", start: "2025-06-01", end: "03-06-2025"},
		{name: "reversed range", start: "2025-06-03", end: "2025-06-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseDateRange(tt.start, tt.end)
			assert.Error(t, err)
		})
	}
}

func messageWith(content string, mentions ...*discordgo.User) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{Message: &discordgo.Message{
		Content:  content,
		Mentions: mentions,
	}}
}

func TestStripSelfMention(t *testing.T) {
	self := &discordgo.User{ID: "42"}
	other := &discordgo.User{ID: "7"}

	tests := []struct {
		name          string
		m             *discordgo.MessageCreate
		wantMentioned bool
		wantStripped  string
	}{
		{
			name:          "mention with text",
			m:             messageWith("<@42> 今日の予定を教えて", self),
			wantMentioned: true,
			wantStripped:  "今日の予定を教えて",
		},
		{
			name:          "nickname mention form",
			m:             messageWith("<@!42>   ", self),
			wantMentioned: true,
			wantStripped:  "",
		},
		{
			name:          "mention of someone else",
			m:             messageWith("<@7> hello", other),
			wantMentioned: false,
		},
		{
			name:          "no mentions",
			m:             messageWith("ただの雑談"),
			wantMentioned: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mentioned, stripped := stripSelfMention("42", tt.m)
			assert.Equal(t, tt.wantMentioned, mentioned)
			if mentioned {
				assert.Equal(t, tt.wantStripped, stripped)
			}
		})
	}
}

func TestErrorBlockHidesInternalDetail(t *testing.T) {
	block := ErrorBlock("応答の生成に失敗しました。")
	assert.Contains(t, block, "⚠️")
	assert.Contains(t, block, "応答の生成に失敗しました。")
	assert.NotContains(t, block, "goroutine", "no stack detail may cross the boundary")
}

func TestResolveAttachment(t *testing.T) {
	att := &discordgo.MessageAttachment{ID: "att-1", Filename: "notes.pdf"}
	data := discordgo.ApplicationCommandInteractionData{
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			{Type: discordgo.ApplicationCommandOptionString, Value: "prompt text"},
			{Type: discordgo.ApplicationCommandOptionAttachment, Value: "att-1"},
		},
		Resolved: &discordgo.ApplicationCommandInteractionDataResolved{
			Attachments: map[string]*discordgo.MessageAttachment{"att-1": att},
		},
	}

	got := resolveAttachment(data)
	require.NotNil(t, got)
	assert.Equal(t, "notes.pdf", got.Filename)
}

func TestResolveAttachmentAbsent(t *testing.T) {
	data := discordgo.ApplicationCommandInteractionData{
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			{Type: discordgo.ApplicationCommandOptionString, Value: "prompt text"},
		},
	}
	assert.Nil(t, resolveAttachment(data))
}
