package discord

import (
	"os"

	"github.com/bwmarrin/discordgo"
	"github.com/sarratt/treasury/pkg/economy"
	"github.com/sarratt/treasury/pkg/shop"
	log "github.com/sirupsen/logrus"
)

const (
	botIntents = discordgo.IntentGuilds |
		discordgo.IntentGuildMessages |
		discordgo.IntentDirectMessages
)

// Bot runs the treasury slash commands against a Discord session.
type Bot struct {
	Session *discordgo.Session
}

// NewBot creates the Discord bot and registers the treasury commands.
// The bot token, application ID and guild ID come from the
// TREASURY_BOT_TOKEN, TREASURY_APP_ID and TREASURY_GUILD_ID environment
// variables.
func NewBot(e *economy.Engine, sh *shop.Shop) *Bot {
	appID := os.Getenv("TREASURY_APP_ID")
	guildID := os.Getenv("TREASURY_GUILD_ID")
	token := os.Getenv("TREASURY_BOT_TOKEN")

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		log.Fatal("Failed to create the bot, error:", err)
	}
	session.Identify.Intents = botIntents

	engine = e
	shopEngine = sh
	granter = NewRoleGranter(session)

	session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Info("Treasury bot is up!")
	})
	session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionApplicationCommand {
			return
		}
		if handler, ok := commandHandlers[i.ApplicationCommandData().Name]; ok {
			handler(s, i)
		}
	})

	if _, err := session.ApplicationCommandBulkOverwrite(appID, guildID, commands); err != nil {
		log.Fatal("Failed to load treasury commands, error:", err)
	}

	return &Bot{
		Session: session,
	}
}
