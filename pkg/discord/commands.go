package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/olekukonko/tablewriter"
	"github.com/sarratt/treasury/pkg/economy"
	"github.com/sarratt/treasury/pkg/msg"
	"github.com/sarratt/treasury/pkg/shop"
	log "github.com/sirupsen/logrus"
)

var (
	engine     *economy.Engine
	shopEngine *shop.Shop
	granter    *RoleGranter
)

var (
	commandHandlers = map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate){
		"balance":  balance,
		"daily":    claimDaily,
		"work":     claimWork,
		"weekly":   claimWeekly,
		"deposit":  deposit,
		"withdraw": withdraw,
		"shop":     shopCommand,
		"richest":  richest,
	}

	commands = []*discordgo.ApplicationCommand{
		{
			Name:        "balance",
			Description: "Shows your current balance and bank balance.",
		},
		{
			Name:        "daily",
			Description: "Claims your daily reward.",
		},
		{
			Name:        "work",
			Description: "Claims your work reward.",
		},
		{
			Name:        "weekly",
			Description: "Claims your weekly reward.",
		},
		{
			Name:        "deposit",
			Description: "Moves credits from your balance into your bank account.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "The amount to deposit.",
					Required:    true,
				},
			},
		},
		{
			Name:        "withdraw",
			Description: "Moves credits from your bank account into your balance.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "The amount to withdraw.",
					Required:    true,
				},
			},
		},
		{
			Name:        "richest",
			Description: "Shows the wealthiest members of this server.",
		},
		{
			Name:        "shop",
			Description: "Commands used to interact with the server shop.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "list",
					Description: "Lists the items available for purchase.",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        "buy",
					Description: "Buys an item from the shop.",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "item",
							Description: "The item ID or name.",
							Required:    true,
						},
					},
				},
				{
					Name:        "use",
					Description: "Uses an item from your inventory.",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "item",
							Description: "The item ID or name.",
							Required:    true,
						},
					},
				},
			},
		},
	}
)

// balance shows the member's current balance and bank balance.
func balance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	log.Debug("--> balance")
	defer log.Debug("<-- balance")

	p := getPrinter(i)
	money, err := engine.Balance(i.GuildID, i.Member.User.ID)
	if err != nil {
		msg.SendEphemeralResponse(s, i, "Unable to look up your balance right now.")
		return
	}
	bank, _ := engine.Bank(i.GuildID, i.Member.User.ID)
	msg.SendEphemeralResponse(s, i, p.Sprintf("You have %d credits on hand and %d in the bank.", money, bank))
}

func claimDaily(s *discordgo.Session, i *discordgo.InteractionCreate) {
	claim(s, i, economy.ClaimDaily)
}

func claimWork(s *discordgo.Session, i *discordgo.InteractionCreate) {
	claim(s, i, economy.ClaimWork)
}

func claimWeekly(s *discordgo.Session, i *discordgo.InteractionCreate) {
	claim(s, i, economy.ClaimWeekly)
}

// claim grants a timed reward, or tells the member how long to wait.
func claim(s *discordgo.Session, i *discordgo.InteractionCreate, kind economy.ClaimKind) {
	log.Debug("--> claim")
	defer log.Debug("<-- claim")

	p := getPrinter(i)
	result, err := engine.Claim(kind, i.GuildID, i.Member.User.ID, "")
	if err != nil {
		msg.SendEphemeralResponse(s, i, "Unable to claim your reward right now.")
		return
	}
	if !result.Claimed {
		msg.SendEphemeralResponse(s, i, p.Sprintf("You can't claim your %s reward yet. You need to wait %s.", kind, result.Cooldown.Pretty))
		return
	}
	msg.SendEphemeralResponse(s, i, p.Sprintf("You claimed your %s reward of %d credits.", kind, result.Reward))
}

// deposit moves credits from the member's balance into their bank.
func deposit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	log.Debug("--> deposit")
	defer log.Debug("<-- deposit")

	p := getPrinter(i)
	amount := int(i.ApplicationCommandData().Options[0].IntValue())
	if _, err := engine.SubtractBalance(i.GuildID, i.Member.User.ID, amount, "bank deposit"); err != nil {
		msg.SendEphemeralResponse(s, i, "Unable to deposit right now.")
		return
	}
	bank, err := engine.AddBank(i.GuildID, i.Member.User.ID, amount, "bank deposit")
	if err != nil {
		msg.SendEphemeralResponse(s, i, "Unable to deposit right now.")
		return
	}
	msg.SendEphemeralResponse(s, i, p.Sprintf("You deposited %d credits. Your bank balance is now %d.", amount, bank))
}

// withdraw moves credits from the member's bank into their balance.
func withdraw(s *discordgo.Session, i *discordgo.InteractionCreate) {
	log.Debug("--> withdraw")
	defer log.Debug("<-- withdraw")

	p := getPrinter(i)
	amount := int(i.ApplicationCommandData().Options[0].IntValue())
	if _, err := engine.SubtractBank(i.GuildID, i.Member.User.ID, amount, "bank withdrawal"); err != nil {
		msg.SendEphemeralResponse(s, i, "Unable to withdraw right now.")
		return
	}
	balance, err := engine.AddBalance(i.GuildID, i.Member.User.ID, amount, "bank withdrawal")
	if err != nil {
		msg.SendEphemeralResponse(s, i, "Unable to withdraw right now.")
		return
	}
	msg.SendEphemeralResponse(s, i, p.Sprintf("You withdrew %d credits. You now have %d credits on hand.", amount, balance))
}

// shopCommand routes the shop subcommands.
func shopCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	log.Debug("--> shopCommand")
	defer log.Debug("<-- shopCommand")

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}
	switch options[0].Name {
	case "list":
		shopList(s, i)
	case "buy":
		shopBuy(s, i, options[0].Options[0].StringValue())
	case "use":
		shopUse(s, i, options[0].Options[0].StringValue())
	}
}

func shopList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	p := getPrinter(i)
	items, err := shopEngine.List(i.GuildID)
	if err != nil || len(items) == 0 {
		msg.SendEphemeralResponse(s, i, "There is nothing for sale right now.")
		return
	}

	var tableBuffer strings.Builder
	table := tablewriter.NewWriter(&tableBuffer)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	table.SetHeader([]string{"ID", "Item", "Price", "Description"})
	for _, item := range items {
		table.Append([]string{p.Sprintf("%d", item.ID), item.ItemName, p.Sprintf("%d", item.Price), item.Description})
	}
	table.Render()

	embed := &discordgo.MessageEmbed{
		Title:       "Shop",
		Description: "```\n" + tableBuffer.String() + "```",
	}
	msg.SendEmbeds(s, i, []*discordgo.MessageEmbed{embed})
}

func shopBuy(s *discordgo.Session, i *discordgo.InteractionCreate, key string) {
	p := getPrinter(i)
	result, err := shopEngine.Buy(i.GuildID, i.Member.User.ID, key, "")
	if err != nil {
		msg.SendEphemeralResponse(s, i, "Unable to buy that item right now.")
		return
	}
	switch result.Status {
	case shop.BuyNotFound:
		msg.SendEphemeralResponse(s, i, "That item isn't for sale.")
	case shop.BuyMaxReached:
		msg.SendEphemeralResponse(s, i, "You already hold as many of that item as you can.")
	default:
		msg.SendEphemeralResponse(s, i, p.Sprintf("You bought %s for %d credits. You now have %d credits.", result.Item.ItemName, result.Item.Price, result.Balance))
	}
}

func shopUse(s *discordgo.Session, i *discordgo.InteractionCreate, key string) {
	message, ok, err := shopEngine.UseItem(i.GuildID, i.Member.User.ID, key, granter)
	if err != nil {
		msg.SendEphemeralResponse(s, i, "Unable to use that item right now.")
		return
	}
	if !ok {
		msg.SendEphemeralResponse(s, i, "You don't hold that item.")
		return
	}
	if message == "" {
		message = "Item used."
	}
	msg.SendResponse(s, i, message)
}

// richest shows the guild's wealth leaderboard.
func richest(s *discordgo.Session, i *discordgo.InteractionCreate) {
	log.Debug("--> richest")
	defer log.Debug("<-- richest")

	p := getPrinter(i)
	entries, err := engine.Leaderboard(i.GuildID, 10)
	if err != nil || len(entries) == 0 {
		msg.SendEphemeralResponse(s, i, "There is no one on the leaderboard yet.")
		return
	}

	var tableBuffer strings.Builder
	table := tablewriter.NewWriter(&tableBuffer)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	table.SetHeader([]string{"Member", "Balance", "Bank", "Total"})
	for _, entry := range entries {
		table.Append([]string{entry.MemberID, p.Sprintf("%d", entry.Money), p.Sprintf("%d", entry.Bank), p.Sprintf("%d", entry.Total)})
	}
	table.Render()

	embed := &discordgo.MessageEmbed{
		Title:       "Richest Members",
		Description: "```\n" + tableBuffer.String() + "```",
	}
	msg.SendEmbeds(s, i, []*discordgo.MessageEmbed{embed})
}
