package discord

import (
	"github.com/bwmarrin/discordgo"
)

// AddCommands lists the slash commands the bot registers on startup.
func AddCommands() []*discordgo.ApplicationCommand {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "chat",
			Description: "アシスタントに相談・質問する（必要に応じてWeb検索します）",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "prompt",
					Description: "相談内容。@hiroyuki: などのプレフィックスでキャラを指定できます",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionAttachment,
					Name:        "file",
					Description: "参考資料（txt / csv / xlsx / pdf / docx）",
					Required:    false,
				},
			},
		},
		{
			Name:        "websearch",
			Description: "Web検索して要約回答します",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "query",
					Description: "検索したい内容",
					Required:    true,
				},
			},
		},
		{
			Name:        "summarize",
			Description: "期間内の会話ログを要約します",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "start_date",
					Description: "開始日 (YYYY-MM-DD)",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "end_date",
					Description: "終了日 (YYYY-MM-DD)",
					Required:    true,
				},
			},
		},
		{
			Name:        "ping",
			Description: "疎通確認",
		},
		{
			Name:        "help",
			Description: "使い方を表示します",
		},
	}
	return commands
}

// MakeCommandHandlers returns a map of command names to their respective functions
func (c Client) MakeCommandHandlers() map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate){
		"chat":      c.chat,
		"websearch": c.websearch,
		"summarize": c.summarize,
		"ping":      c.ping,
		"help":      c.help,
	}
}

func (c Client) ping(s *discordgo.Session, i *discordgo.InteractionCreate) {
	c.respond(s, i, "pong")
}

func (c Client) help(s *discordgo.Session, i *discordgo.InteractionCreate) {
	c.respond(s, i, "使い方：\n"+
		"`/chat prompt` — アシスタントに相談します。検索が必要そうな質問は自動でWeb検索します。\n"+
		"`@hiroyuki:` や `@asuka:` をプレフィックスに付けるとキャラを切り替えられます。\n"+
		"`/websearch query` — 判定をスキップして直接Web検索します。\n"+
		"`/summarize start_date end_date` — 期間内の会話ログを要約します。\n"+
		"ボットにメンションしても `/chat` と同じように応答します。")
}
