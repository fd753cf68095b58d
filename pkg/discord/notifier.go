package discord

import (
	"github.com/sarratt/treasury/pkg/notify"
	log "github.com/sirupsen/logrus"
)

// LogNotifier reports engine events to the bot's log. Hosts that want
// richer delivery supply their own notify.Notifier instead.
type LogNotifier struct{}

// Emit logs the event with its payload fields.
func (LogNotifier) Emit(event notify.Event) {
	switch payload := event.Payload.(type) {
	case notify.BalancePayload:
		log.WithFields(log.Fields{
			"guild":   payload.GuildID,
			"member":  payload.MemberID,
			"amount":  payload.Amount,
			"balance": payload.Balance,
			"reason":  payload.Reason,
		}).Info(string(event.Kind))
	case notify.ItemPayload:
		log.WithFields(log.Fields{
			"guild":  payload.GuildID,
			"member": payload.MemberID,
			"item":   payload.ItemName,
			"id":     payload.ItemID,
			"price":  payload.Price,
		}).Info(string(event.Kind))
	case notify.EditPayload:
		log.WithFields(log.Fields{
			"guild": payload.GuildID,
			"item":  payload.ItemName,
			"field": payload.Field,
			"old":   payload.OldValue,
			"new":   payload.NewValue,
		}).Info(string(event.Kind))
	case notify.ClearPayload:
		log.WithFields(log.Fields{
			"guild":   payload.GuildID,
			"cleared": payload.Cleared,
		}).Info(string(event.Kind))
	default:
		log.Info(string(event.Kind))
	}
}
