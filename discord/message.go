package discord

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/cyberstar-dev/soudan-bot/metrics"
	"github.com/cyberstar-dev/soudan-bot/router"
	"github.com/cyberstar-dev/soudan-bot/types"
)

// handleMessageCreate feeds every observed non-bot message into the
// transcript and treats a direct mention of the bot as an invocation.
func (c Client) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	metrics.DiscordMessageReceived.Add(1)

	mentioned, stripped := stripSelfMention(s.State.User.ID, m)
	if !mentioned {
		// plain channel chatter: record it and move on. Routed
		// invocations are recorded by the router itself.
		entry := types.TranscriptEntry{
			Timestamp:   time.Now().UTC(),
			ChannelName: channelName(s, m.ChannelID),
			AuthorName:  m.Author.Username,
			Content:     m.Content,
		}
		if err := c.db.AppendTranscript(context.Background(), entry); err != nil {
			metrics.TranscriptWriteFailures.Add(1)
			c.logger.Error("failed to append transcript", "error", err.Error(), "channelID", m.ChannelID)
		}
		return
	}

	if stripped == "" {
		c.sendToChannel(m.ChannelID, router.GreetingMessage)
		return
	}

	reply, err := c.router.Handle(context.Background(), router.Request{
		ChannelName: channelName(s, m.ChannelID),
		AuthorName:  m.Author.Username,
		Text:        stripped,
	})
	if err != nil {
		c.sendFailure(m.ChannelID, "応答の生成に失敗しました。", err)
		return
	}
	c.sendToChannel(m.ChannelID, reply.Text)
}

// stripSelfMention reports whether the message mentions the bot and
// returns the content with the mention tokens removed.
func stripSelfMention(selfID string, m *discordgo.MessageCreate) (bool, string) {
	mentioned := false
	for _, u := range m.Mentions {
		if u.ID == selfID {
			mentioned = true
			break
		}
	}
	if !mentioned {
		return false, ""
	}
	content := m.Content
	for _, token := range []string{"<@" + selfID + ">", "<@!" + selfID + ">"} {
		content = strings.ReplaceAll(content, token, "")
	}
	return true, strings.TrimSpace(content)
}
