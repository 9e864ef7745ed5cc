package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/cyberstar-dev/soudan-bot/metrics"
	"github.com/cyberstar-dev/soudan-bot/router"
)

func (c Client) websearch(s *discordgo.Session, i *discordgo.InteractionCreate) {
	start := time.Now()
	metrics.CommandTotal.WithLabelValues("websearch").Inc()
	defer func() {
		metrics.CommandDuration.WithLabelValues("websearch").Observe(time.Since(start).Seconds())
	}()

	data, ok := commandData(i)
	if !ok || len(data.Options) == 0 {
		metrics.CommandErrors.WithLabelValues("websearch").Inc()
		c.respond(s, i, ErrorBlock("コマンドの内容を読み取れませんでした。"))
		return
	}
	query := data.Options[0].StringValue()

	c.respond(s, i, "🌐 『"+query+"』をWeb検索しています…")

	reply, err := c.router.HandleSearch(context.Background(), router.Request{
		ChannelName: channelName(s, i.ChannelID),
		AuthorName:  authorName(i),
		Text:        query,
	})
	if err != nil {
		metrics.CommandErrors.WithLabelValues("websearch").Inc()
		c.sendFailure(i.ChannelID, "Web検索でエラーが発生しました。", err)
		return
	}
	c.sendToChannel(i.ChannelID, reply.Text)
}
