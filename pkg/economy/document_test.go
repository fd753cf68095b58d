package economy_test

import (
	"encoding/json"
	"testing"

	"github.com/sarratt/treasury/pkg/config"
	"github.com/sarratt/treasury/pkg/economy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuildRecordCodec(t *testing.T) {
	amount := config.FixedReward(50)
	max := 2
	stamp := int64(1700000000000)

	doc := economy.Document{}
	guild := doc.Guild("G1")
	guild.Settings = &economy.Settings{DailyAmount: &amount}
	guild.ShopCounter = 3
	guild.Shop = []*economy.ShopItem{
		{ID: 3, ItemName: "Sword", Price: 50, MaxAmount: &max, Role: "R1", Date: "1/2/2026, 3:04:05 PM"},
	}
	member := guild.Member("M1")
	member.Money = 100
	member.Bank = -5
	member.DailyCooldown = &stamp
	member.Inventory = []*economy.InventoryItem{{ID: 1, ItemName: "Sword", Price: 50}}
	member.History = []*economy.HistoryItem{{ID: 1, MemberID: "M1", GuildID: "G1", ItemName: "Sword", Price: 50}}
	member.InventoryCounter = 1
	member.HistoryCounter = 1

	b, err := json.Marshal(doc)
	require.NoError(t, err)

	// members sit alongside the reserved keys in the guild object
	var raw map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Contains(t, raw["G1"], "M1")
	assert.Contains(t, raw["G1"], "shop")
	assert.Contains(t, raw["G1"], "settings")
	assert.Contains(t, raw["G1"], "shopCounter")

	var decoded economy.Document
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Contains(t, decoded, "G1")
	got := decoded["G1"]
	assert.Equal(t, 3, got.ShopCounter)
	require.Len(t, got.Shop, 1)
	assert.Equal(t, guild.Shop[0], got.Shop[0])
	require.NotNil(t, got.Settings)
	assert.Equal(t, amount, *got.Settings.DailyAmount)

	gotMember := got.Members["M1"]
	require.NotNil(t, gotMember)
	assert.Equal(t, member.Money, gotMember.Money)
	assert.Equal(t, member.Bank, gotMember.Bank)
	require.NotNil(t, gotMember.DailyCooldown)
	assert.Equal(t, stamp, *gotMember.DailyCooldown)
	assert.Nil(t, gotMember.WorkCooldown)
	assert.Equal(t, member.Inventory, gotMember.Inventory)
	assert.Equal(t, member.History, gotMember.History)
}

func TestGuildRecordCountersRecoveredFromLegacyData(t *testing.T) {
	// documents written before counters existed carry only the items
	raw := `{
		"G1": {
			"shop": [{"id": 4, "itemName": "Shield", "price": 10}],
			"M1": {
				"money": 5,
				"inventory": [{"id": 2, "itemName": "Shield", "price": 10}],
				"history": [{"id": 6, "itemName": "Shield", "price": 10}]
			}
		}
	}`

	var doc economy.Document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	guild := doc["G1"]
	assert.Equal(t, 4, guild.ShopCounter)
	assert.Equal(t, 2, guild.Members["M1"].InventoryCounter)
	assert.Equal(t, 6, guild.Members["M1"].HistoryCounter)
}

func TestMemberListsDefaultToEmpty(t *testing.T) {
	raw := `{"G1": {"M1": {"money": 1}}}`
	var doc economy.Document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	member := doc["G1"].Members["M1"]
	require.NotNil(t, member)
	assert.NotNil(t, member.Inventory)
	assert.Empty(t, member.Inventory)
	assert.NotNil(t, member.History)
	assert.Empty(t, member.History)
}
