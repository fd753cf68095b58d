package economy

import (
	"sort"

	"github.com/sarratt/treasury/pkg/math"
)

// LeaderboardEntry is one member's row in a guild's wealth ranking.
type LeaderboardEntry struct {
	MemberID string
	Money    int
	Bank     int
	Total    int
}

// Leaderboard returns the top `limit` members of the guild by combined
// balance and bank balance.
func (e *Engine) Leaderboard(guildID string, limit int) ([]LeaderboardEntry, error) {
	var entries []LeaderboardEntry
	err := e.View(func(doc Document) error {
		guild, ok := doc[guildID]
		if !ok {
			return nil
		}
		entries = make([]LeaderboardEntry, 0, len(guild.Members))
		for memberID, member := range guild.Members {
			entries = append(entries, LeaderboardEntry{
				MemberID: memberID,
				Money:    member.Money,
				Bank:     member.Bank,
				Total:    member.Money + member.Bank,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Total != entries[j].Total {
			return entries[i].Total > entries[j].Total
		}
		return entries[i].MemberID < entries[j].MemberID
	})
	if limit < 0 {
		limit = len(entries)
	}
	return entries[:math.Min(limit, len(entries))], nil
}

// Ranking returns the member's position in the guild's wealth ranking,
// starting at 1.
func (e *Engine) Ranking(guildID string, memberID string) (int, error) {
	entries, err := e.Leaderboard(guildID, -1)
	if err != nil {
		return 0, err
	}
	for i := range entries {
		if entries[i].MemberID == memberID {
			return i + 1, nil
		}
	}
	return len(entries), nil
}
