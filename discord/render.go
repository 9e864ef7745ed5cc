package discord

import (
	"github.com/bwmarrin/discordgo"
	"github.com/cyberstar-dev/soudan-bot/metrics"
)

// ErrorBlock renders the user-facing failure template. Only the short
// description crosses the boundary; the underlying error stays in the
// internal log.
func ErrorBlock(description string) string {
	return "⚠️ " + description + "\n時間をおいて、もう一度お試しください。"
}

// respond answers an interaction with a visible message.
func (c Client) respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
	if err != nil {
		c.logger.Error("error responding to interaction", "error", err.Error())
		return
	}
	metrics.DiscordMessageSent.Add(1)
}

// sendToChannel posts a plain message, used for replies after the initial
// interaction acknowledgement.
func (c Client) sendToChannel(channelID, content string) {
	_, err := c.Session.ChannelMessageSend(channelID, content)
	if err != nil {
		c.logger.Error("error sending message to channel", "error", err.Error(), "channelID", channelID)
		return
	}
	metrics.DiscordMessageSent.Add(1)
}

// sendFailure logs the real error internally and shows the templated
// diagnostic to the user.
func (c Client) sendFailure(channelID, description string, err error) {
	c.logger.Error("request failed", "error", err.Error(), "channelID", channelID, "description", description)
	c.sendToChannel(channelID, ErrorBlock(description))
}

// commandData extracts the interaction's command payload, rejecting
// interactions without a member or data.
func commandData(i *discordgo.InteractionCreate) (discordgo.ApplicationCommandInteractionData, bool) {
	if i.Interaction == nil || i.Interaction.Data == nil {
		return discordgo.ApplicationCommandInteractionData{}, false
	}
	data, ok := i.Interaction.Data.(discordgo.ApplicationCommandInteractionData)
	return data, ok
}

// authorName returns the invoking user's name for transcript entries,
// whether the command came from a guild or a DM.
func authorName(i *discordgo.InteractionCreate) string {
	if i.Interaction.Member != nil && i.Interaction.Member.User != nil {
		return i.Interaction.Member.User.Username
	}
	if i.Interaction.User != nil {
		return i.Interaction.User.Username
	}
	return "unknown"
}
