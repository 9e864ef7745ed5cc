package discord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/cyberstar-dev/soudan-bot/metrics"
	"github.com/cyberstar-dev/soudan-bot/router"
)

const dateLayout = "2006-01-02"

// parseDateRange turns the start/end option strings into an inclusive UTC
// range covering both whole days.
func parseDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("開始日 %q は YYYY-MM-DD 形式で指定してください", startDate)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("終了日 %q は YYYY-MM-DD 形式で指定してください", endDate)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("終了日が開始日より前になっています")
	}
	// include the whole end day
	return start, end.Add(24*time.Hour - time.Nanosecond), nil
}

func (c Client) summarize(s *discordgo.Session, i *discordgo.InteractionCreate) {
	start := time.Now()
	metrics.CommandTotal.WithLabelValues("summarize").Inc()
	defer func() {
		metrics.CommandDuration.WithLabelValues("summarize").Observe(time.Since(start).Seconds())
	}()

	data, ok := commandData(i)
	if !ok || len(data.Options) < 2 {
		metrics.CommandErrors.WithLabelValues("summarize").Inc()
		c.respond(s, i, ErrorBlock("コマンドの内容を読み取れませんでした。"))
		return
	}

	from, to, err := parseDateRange(data.Options[0].StringValue(), data.Options[1].StringValue())
	if err != nil {
		c.respond(s, i, "⚠️ "+err.Error())
		return
	}

	c.respond(s, i, "📝 ログを要約しています…")

	summaryText, err := c.router.SummarizeRange(context.Background(), from, to)
	if errors.Is(err, router.ErrNoLogs) {
		c.sendToChannel(i.ChannelID, router.NoLogsMessage)
		return
	}
	if err != nil {
		metrics.CommandErrors.WithLabelValues("summarize").Inc()
		c.sendFailure(i.ChannelID, "要約中にエラーが発生しました。", err)
		return
	}
	c.sendToChannel(i.ChannelID, router.SummaryPrefix+summaryText)
}
