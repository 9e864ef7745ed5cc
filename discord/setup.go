// Package discord wires the bot into the Discord gateway: slash commands,
// the message handler that feeds the transcript, and reply rendering.
package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/cyberstar-dev/soudan-bot/database"
	"github.com/cyberstar-dev/soudan-bot/logging"
	"github.com/cyberstar-dev/soudan-bot/router"
)

type Client struct {
	Session *discordgo.Session
	router  *router.Router
	db      database.TranscriptWriter
	logger  *logging.Logger
}

// Setup connects to Discord, registers the slash commands, and installs
// the handlers.
func Setup(token string, rt *router.Router, db database.TranscriptWriter, logger *logging.Logger) (Client, error) {
	if logger == nil {
		logger = logging.Default()
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return Client{}, fmt.Errorf("error creating discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	c := Client{
		Session: session,
		router:  rt,
		db:      db,
		logger:  logger,
	}

	// opens websocket connection
	err = session.Open()
	if err != nil {
		return Client{}, fmt.Errorf("error opening connection to discord: %w", err)
	}
	logger.Info("discord session opened", "user", session.State.User.Username)

	for _, v := range AddCommands() {
		_, err := session.ApplicationCommandCreate(session.State.User.ID, "", v)
		if err != nil {
			return Client{}, fmt.Errorf("error creating command %s: %w", v.Name, err)
		}
	}

	commandHandlers := c.MakeCommandHandlers()
	// after the commands are registered we can add the handlers
	session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if h, ok := commandHandlers[i.ApplicationCommandData().Name]; ok {
			h(s, i)
		}
	})
	session.AddHandler(c.handleMessageCreate)

	return c, nil
}
