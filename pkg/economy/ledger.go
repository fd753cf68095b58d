package economy

import (
	"github.com/sarratt/treasury/pkg/notify"
	log "github.com/sirupsen/logrus"
)

// SetBalance replaces the member's balance and returns the new amount.
func (e *Engine) SetBalance(guildID string, memberID string, amount int, reason string) (int, error) {
	log.Trace("--> SetBalance")
	defer log.Trace("<-- SetBalance")

	return e.applyBalance(notify.BalanceSet, guildID, memberID, amount, reason, false, func(int) int {
		return amount
	})
}

// AddBalance credits the member's balance and returns the new amount.
func (e *Engine) AddBalance(guildID string, memberID string, amount int, reason string) (int, error) {
	log.Trace("--> AddBalance")
	defer log.Trace("<-- AddBalance")

	return e.applyBalance(notify.BalanceAdd, guildID, memberID, amount, reason, false, func(current int) int {
		return current + amount
	})
}

// SubtractBalance debits the member's balance and returns the new
// amount. Balances may go negative; callers enforce business rules.
func (e *Engine) SubtractBalance(guildID string, memberID string, amount int, reason string) (int, error) {
	log.Trace("--> SubtractBalance")
	defer log.Trace("<-- SubtractBalance")

	return e.applyBalance(notify.BalanceSubtract, guildID, memberID, amount, reason, false, func(current int) int {
		return current - amount
	})
}

// SetBank replaces the member's bank balance and returns the new amount.
func (e *Engine) SetBank(guildID string, memberID string, amount int, reason string) (int, error) {
	log.Trace("--> SetBank")
	defer log.Trace("<-- SetBank")

	return e.applyBalance(notify.BankSet, guildID, memberID, amount, reason, true, func(int) int {
		return amount
	})
}

// AddBank credits the member's bank balance and returns the new amount.
func (e *Engine) AddBank(guildID string, memberID string, amount int, reason string) (int, error) {
	log.Trace("--> AddBank")
	defer log.Trace("<-- AddBank")

	return e.applyBalance(notify.BankAdd, guildID, memberID, amount, reason, true, func(current int) int {
		return current + amount
	})
}

// SubtractBank debits the member's bank balance and returns the new
// amount.
func (e *Engine) SubtractBank(guildID string, memberID string, amount int, reason string) (int, error) {
	log.Trace("--> SubtractBank")
	defer log.Trace("<-- SubtractBank")

	return e.applyBalance(notify.BankSubtract, guildID, memberID, amount, reason, true, func(current int) int {
		return current - amount
	})
}

// Balance returns the member's balance, defaulting to zero for an
// unknown member.
func (e *Engine) Balance(guildID string, memberID string) (int, error) {
	return e.readBalance(guildID, memberID, false)
}

// Bank returns the member's bank balance, defaulting to zero for an
// unknown member.
func (e *Engine) Bank(guildID string, memberID string) (int, error) {
	return e.readBalance(guildID, memberID, true)
}

// applyBalance performs a balance mutation: one read of the full member
// record, one transform and one write, all inside the engine's critical
// section, then reports the committed change.
func (e *Engine) applyBalance(kind notify.Kind, guildID string, memberID string, amount int, reason string, bank bool, apply func(current int) int) (int, error) {
	if err := validateIDs(guildID, memberID); err != nil {
		return 0, err
	}

	var balance int
	err := e.Update(func(doc Document) (bool, error) {
		member := doc.Guild(guildID).Member(memberID)
		if bank {
			member.Bank = apply(member.Bank)
			balance = member.Bank
		} else {
			member.Money = apply(member.Money)
			balance = member.Money
		}
		return true, nil
	})
	if err != nil {
		return 0, err
	}

	e.notifier.Emit(notify.Event{
		Kind: kind,
		Payload: notify.BalancePayload{
			GuildID:  guildID,
			MemberID: memberID,
			Amount:   amount,
			Balance:  balance,
			Reason:   reason,
		},
	})
	return balance, nil
}

func (e *Engine) readBalance(guildID string, memberID string, bank bool) (int, error) {
	if err := validateIDs(guildID, memberID); err != nil {
		return 0, err
	}

	var balance int
	err := e.View(func(doc Document) error {
		member := doc.lookupMember(guildID, memberID)
		if member == nil {
			return nil
		}
		if bank {
			balance = member.Bank
		} else {
			balance = member.Money
		}
		return nil
	})
	return balance, err
}
