package economy

import (
	"fmt"
	"time"

	"github.com/sarratt/treasury/pkg/config"
	log "github.com/sirupsen/logrus"
)

// Settings are a guild's overrides of the global cooldown and reward
// configuration. Cooldowns are stored in milliseconds, matching the
// document schema.
type Settings struct {
	DailyCooldownMS  *int64         `json:"dailyCooldown,omitempty"`
	WorkCooldownMS   *int64         `json:"workCooldown,omitempty"`
	WeeklyCooldownMS *int64         `json:"weeklyCooldown,omitempty"`
	DailyAmount      *config.Reward `json:"dailyAmount,omitempty"`
	WorkAmount       *config.Reward `json:"workAmount,omitempty"`
	WeeklyAmount     *config.Reward `json:"weeklyAmount,omitempty"`
}

// cooldownFor resolves the effective cooldown duration for the claim
// kind: the guild's setting when present, the global default otherwise.
func (g *GuildRecord) cooldownFor(kind ClaimKind, cfg *config.Config) time.Duration {
	var override *int64
	var fallback time.Duration
	switch kind {
	case ClaimDaily:
		fallback = cfg.DailyCooldown
		if g.Settings != nil {
			override = g.Settings.DailyCooldownMS
		}
	case ClaimWork:
		fallback = cfg.WorkCooldown
		if g.Settings != nil {
			override = g.Settings.WorkCooldownMS
		}
	case ClaimWeekly:
		fallback = cfg.WeeklyCooldown
		if g.Settings != nil {
			override = g.Settings.WeeklyCooldownMS
		}
	}
	if override != nil {
		return time.Duration(*override) * time.Millisecond
	}
	return fallback
}

// rewardFor resolves the effective reward for the claim kind.
func (g *GuildRecord) rewardFor(kind ClaimKind, cfg *config.Config) config.Reward {
	var override *config.Reward
	var fallback config.Reward
	switch kind {
	case ClaimDaily:
		fallback = cfg.DailyAmount
		if g.Settings != nil {
			override = g.Settings.DailyAmount
		}
	case ClaimWork:
		fallback = cfg.WorkAmount
		if g.Settings != nil {
			override = g.Settings.WorkAmount
		}
	case ClaimWeekly:
		fallback = cfg.WeeklyAmount
		if g.Settings != nil {
			override = g.Settings.WeeklyAmount
		}
	}
	if override != nil {
		return *override
	}
	return fallback
}

// SetSettings replaces the guild's settings overrides. A nil settings
// value removes all overrides.
func (e *Engine) SetSettings(guildID string, settings *Settings) error {
	log.Trace("--> SetSettings")
	defer log.Trace("<-- SetSettings")

	if guildID == "" {
		return fmt.Errorf("%w: guild ID is empty", ErrInvalidArgument)
	}
	return e.Update(func(doc Document) (bool, error) {
		doc.Guild(guildID).Settings = settings
		return true, nil
	})
}

// GetSettings returns the guild's settings overrides, or nil when the
// guild has none.
func (e *Engine) GetSettings(guildID string) (*Settings, error) {
	var settings *Settings
	err := e.View(func(doc Document) error {
		if guild, ok := doc[guildID]; ok {
			settings = guild.Settings
		}
		return nil
	})
	return settings, err
}
