package economy

import (
	"fmt"
	"time"

	"github.com/sarratt/treasury/pkg/config"
	"github.com/sarratt/treasury/pkg/format"
	"github.com/sarratt/treasury/pkg/notify"
	log "github.com/sirupsen/logrus"
)

// ClaimKind identifies a timed reward.
type ClaimKind string

const (
	ClaimDaily  ClaimKind = "daily"
	ClaimWork   ClaimKind = "work"
	ClaimWeekly ClaimKind = "weekly"
)

func (k ClaimKind) valid() bool {
	switch k {
	case ClaimDaily, ClaimWork, ClaimWeekly:
		return true
	}
	return false
}

// ClaimResult is the outcome of a reward claim. Either the reward was
// granted (Claimed true) or Cooldown carries the remaining lock time.
type ClaimResult struct {
	Claimed       bool
	Reward        int
	DefaultReward config.Reward
	Cooldown      *Cooldown
}

// Cooldown describes how long a reward remains locked.
type Cooldown struct {
	Remaining time.Duration
	Time      format.TimeParts
	Pretty    string
}

// Claim grants the timed reward if its cooldown has elapsed. A member
// that never claimed the reward (nil timestamp) may always claim
// immediately. On success the member's balance is credited and the
// cooldown timestamp is stamped in the same write; a locked claim
// mutates nothing.
func (e *Engine) Claim(kind ClaimKind, guildID string, memberID string, reason string) (*ClaimResult, error) {
	log.Trace("--> Claim")
	defer log.Trace("<-- Claim")

	if !kind.valid() {
		return nil, fmt.Errorf("%w: unknown claim kind %q", ErrInvalidArgument, kind)
	}
	if err := validateIDs(guildID, memberID); err != nil {
		return nil, err
	}

	now := time.Now()
	var result *ClaimResult
	var balance int
	err := e.Update(func(doc Document) (bool, error) {
		guild := doc.Guild(guildID)
		duration := guild.cooldownFor(kind, e.cfg)
		defaultReward := guild.rewardFor(kind, e.cfg)
		member := guild.Member(memberID)

		if last := member.cooldown(kind); last != nil {
			remaining := duration - now.Sub(time.UnixMilli(*last))
			if remaining > 0 {
				result = &ClaimResult{
					DefaultReward: defaultReward,
					Cooldown: &Cooldown{
						Remaining: remaining,
						Time:      format.Decompose(remaining),
						Pretty:    format.Duration(remaining),
					},
				}
				return false, nil
			}
		}

		reward := defaultReward.Draw(e.rng)
		member.Money += reward
		member.setCooldown(kind, now.UnixMilli())
		balance = member.Money
		result = &ClaimResult{
			Claimed:       true,
			Reward:        reward,
			DefaultReward: defaultReward,
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	if result.Claimed {
		if reason == "" {
			reason = fmt.Sprintf("claimed the %s reward", kind)
		}
		e.notifier.Emit(notify.Event{
			Kind: notify.BalanceAdd,
			Payload: notify.BalancePayload{
				GuildID:  guildID,
				MemberID: memberID,
				Amount:   result.Reward,
				Balance:  balance,
				Reason:   reason,
			},
		})
	}
	return result, nil
}
