package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sarratt/treasury/pkg/config"
	"github.com/sarratt/treasury/pkg/discord"
	"github.com/sarratt/treasury/pkg/economy"
	"github.com/sarratt/treasury/pkg/shop"
	"github.com/sarratt/treasury/pkg/store"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load the configuration, error:", err)
	}

	st, err := store.New(cfg)
	if err != nil {
		log.Fatal("Failed to create the store, error:", err)
	}

	engine := economy.New(cfg, st, discord.LogNotifier{})
	if err := engine.Start(); err != nil {
		log.Fatal("Failed to start the treasury engine, error:", err)
	}
	defer engine.Stop()

	bot := discord.NewBot(engine, shop.New(engine))
	if err := bot.Session.Open(); err != nil {
		log.Fatal(err)
	}
	defer bot.Session.Close()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	log.Info("Press Ctrl+C to exit")
	<-sc
}
