// Offline inspection tool for a treasury storage file. It prints the
// balances, catalog, inventory or history for a guild without running
// the bot.
package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/sarratt/treasury/pkg/config"
	"github.com/sarratt/treasury/pkg/economy"
	"github.com/sarratt/treasury/pkg/notify"
	"github.com/sarratt/treasury/pkg/shop"
	"github.com/sarratt/treasury/pkg/store"
	log "github.com/sirupsen/logrus"
)

func main() {
	if len(os.Args) < 3 {
		usage()
	}
	command, guildID := os.Args[1], os.Args[2]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load the configuration, error:", err)
	}
	st, err := store.New(cfg)
	if err != nil {
		log.Fatal("Failed to create the store, error:", err)
	}
	engine := economy.New(cfg, st, notify.Noop{})
	if err := engine.Start(); err != nil {
		log.Fatal("Failed to open the storage, error:", err)
	}
	defer engine.Stop()
	shopEngine := shop.New(engine)

	switch command {
	case "balances":
		printBalances(engine, guildID)
	case "shop":
		printShop(shopEngine, guildID)
	case "inventory":
		printInventory(shopEngine, guildID, memberArg())
	case "history":
		printHistory(shopEngine, guildID, memberArg())
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: treasuryctl balances|shop <guildID>")
	fmt.Fprintln(os.Stderr, "       treasuryctl inventory|history <guildID> <memberID>")
	os.Exit(2)
}

func memberArg() string {
	if len(os.Args) < 4 {
		usage()
	}
	return os.Args[3]
}

func newTable(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	return table
}

func printBalances(engine *economy.Engine, guildID string) {
	entries, err := engine.Leaderboard(guildID, -1)
	if err != nil {
		log.Fatal("Failed to read the balances, error:", err)
	}
	table := newTable([]string{"Member", "Balance", "Bank", "Total"})
	for _, entry := range entries {
		table.Append([]string{entry.MemberID, fmt.Sprint(entry.Money), fmt.Sprint(entry.Bank), fmt.Sprint(entry.Total)})
	}
	table.Render()
}

func printShop(shopEngine *shop.Shop, guildID string) {
	items, err := shopEngine.List(guildID)
	if err != nil {
		log.Fatal("Failed to read the catalog, error:", err)
	}
	table := newTable([]string{"ID", "Item", "Price", "Max", "Role", "Added"})
	for _, item := range items {
		max := ""
		if item.MaxAmount != nil {
			max = fmt.Sprint(*item.MaxAmount)
		}
		table.Append([]string{fmt.Sprint(item.ID), item.ItemName, fmt.Sprint(item.Price), max, item.Role, item.Date})
	}
	table.Render()
}

func printInventory(shopEngine *shop.Shop, guildID string, memberID string) {
	items, err := shopEngine.Inventory(guildID, memberID)
	if err != nil {
		log.Fatal("Failed to read the inventory, error:", err)
	}
	table := newTable([]string{"ID", "Item", "Price", "Bought"})
	for _, item := range items {
		table.Append([]string{fmt.Sprint(item.ID), item.ItemName, fmt.Sprint(item.Price), item.Date})
	}
	table.Render()
}

func printHistory(shopEngine *shop.Shop, guildID string, memberID string) {
	items, err := shopEngine.History(guildID, memberID)
	if err != nil {
		log.Fatal("Failed to read the history, error:", err)
	}
	table := newTable([]string{"ID", "Item", "Price", "Date"})
	for _, item := range items {
		table.Append([]string{fmt.Sprint(item.ID), item.ItemName, fmt.Sprint(item.Price), item.Date})
	}
	table.Render()
}
