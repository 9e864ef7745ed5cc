package discord

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/cyberstar-dev/soudan-bot/extract"
	"github.com/cyberstar-dev/soudan-bot/metrics"
	"github.com/cyberstar-dev/soudan-bot/router"
)

func (c Client) chat(s *discordgo.Session, i *discordgo.InteractionCreate) {
	start := time.Now()
	metrics.CommandTotal.WithLabelValues("chat").Inc()
	defer func() {
		metrics.CommandDuration.WithLabelValues("chat").Observe(time.Since(start).Seconds())
	}()

	data, ok := commandData(i)
	if !ok || len(data.Options) == 0 {
		metrics.CommandErrors.WithLabelValues("chat").Inc()
		c.respond(s, i, ErrorBlock("コマンドの内容を読み取れませんでした。"))
		return
	}
	prompt := data.Options[0].StringValue()

	// acknowledge first; the pipeline involves up to three network calls
	c.respond(s, i, "💬 処理中…")

	if attachment := resolveAttachment(data); attachment != nil {
		text, err := c.extractAttachment(attachment)
		switch {
		case errors.Is(err, extract.ErrUnsupportedFormat):
			c.sendToChannel(i.ChannelID, "📎 このファイル形式には対応していません："+attachment.Filename)
			return
		case err != nil:
			metrics.CommandErrors.WithLabelValues("chat").Inc()
			c.sendFailure(i.ChannelID, "添付ファイルの読み取りに失敗しました。", err)
			return
		}
		prompt = prompt + "\n\n▼ 添付資料（" + attachment.Filename + "）\n" + text
	}

	reply, err := c.router.Handle(context.Background(), router.Request{
		ChannelName: channelName(s, i.ChannelID),
		AuthorName:  authorName(i),
		Text:        prompt,
	})
	if err != nil {
		metrics.CommandErrors.WithLabelValues("chat").Inc()
		c.sendFailure(i.ChannelID, "応答の生成に失敗しました。", err)
		return
	}
	c.sendToChannel(i.ChannelID, reply.Text)
}

// resolveAttachment returns the attachment passed to the command, if any.
func resolveAttachment(data discordgo.ApplicationCommandInteractionData) *discordgo.MessageAttachment {
	if data.Resolved == nil || len(data.Resolved.Attachments) == 0 {
		return nil
	}
	for _, opt := range data.Options {
		if opt.Type != discordgo.ApplicationCommandOptionAttachment {
			continue
		}
		if att, ok := data.Resolved.Attachments[opt.Value.(string)]; ok {
			return att
		}
	}
	return nil
}

func channelName(s *discordgo.Session, channelID string) string {
	channel, err := s.Channel(channelID)
	if err != nil || channel.Name == "" {
		return channelID
	}
	return channel.Name
}
