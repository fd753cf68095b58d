package msg

import (
	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// SendResponse sends a message in response to a user interaction.
func SendResponse(s *discordgo.Session, i *discordgo.InteractionCreate, msg string) {
	respond(s, i, msg, 0)
}

// SendEphemeralResponse sends a response only the interacting user can
// see.
func SendEphemeralResponse(s *discordgo.Session, i *discordgo.InteractionCreate, msg string) {
	respond(s, i, msg, discordgo.MessageFlagsEphemeral)
}

// SendEmbeds sends one or more embeds in response to a user interaction.
func SendEmbeds(s *discordgo.Session, i *discordgo.InteractionCreate, embeds []*discordgo.MessageEmbed) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: embeds,
		},
	})
	if err != nil {
		log.Error("Unable to send an embed response, error:", err)
	}
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, msg string, flags discordgo.MessageFlags) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: msg,
			Flags:   flags,
		},
	})
	if err != nil {
		log.Error("Unable to send a response, error:", err)
	}
}
