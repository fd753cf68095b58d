package economy

import (
	"encoding/json"
	"fmt"
)

// Document is the entire persisted treasury state, keyed by guild ID.
type Document map[string]*GuildRecord

// Reserved keys within a guild's stored object. Everything else is a
// member ID. Discord snowflakes are numeric, so member IDs can never
// collide with these.
const (
	keyShop        = "shop"
	keySettings    = "settings"
	keyShopCounter = "shopCounter"
)

// GuildRecord holds the members, the shop catalog and the settings for
// a single guild.
type GuildRecord struct {
	Members  map[string]*MemberRecord
	Shop     []*ShopItem
	Settings *Settings

	// ShopCounter is the monotonic source of shop item IDs. It never
	// decreases, so IDs are not reused after an item is removed.
	ShopCounter int
}

// MemberRecord is the economic state of one member within a guild.
// Balances may go negative; the engine enforces no floor.
type MemberRecord struct {
	Money          int              `json:"money"`
	Bank           int              `json:"bank"`
	DailyCooldown  *int64           `json:"dailyCooldown"`
	WorkCooldown   *int64           `json:"workCooldown"`
	WeeklyCooldown *int64           `json:"weeklyCooldown"`
	Inventory      []*InventoryItem `json:"inventory"`
	History        []*HistoryItem   `json:"history"`

	// InventoryCounter and HistoryCounter are monotonic ID sources, so a
	// removed inventory item's ID is never handed to a later purchase.
	InventoryCounter int `json:"inventoryCounter,omitempty"`
	HistoryCounter   int `json:"historyCounter,omitempty"`
}

// ShopItem is an entry in a guild's catalog. IDs are unique within the
// guild and survive removals without renumbering.
type ShopItem struct {
	ID          int    `json:"id"`
	ItemName    string `json:"itemName"`
	Price       int    `json:"price"`
	Message     string `json:"message"`
	Description string `json:"description"`
	MaxAmount   *int   `json:"maxAmount"`
	Role        string `json:"role,omitempty"`
	Date        string `json:"date"`
}

// InventoryItem is a copy of the purchased shop item at purchase time,
// with its own ID unique within the member's inventory.
type InventoryItem struct {
	ID          int    `json:"id"`
	ItemName    string `json:"itemName"`
	Price       int    `json:"price"`
	Message     string `json:"message"`
	Description string `json:"description"`
	MaxAmount   *int   `json:"maxAmount"`
	Role        string `json:"role,omitempty"`
	Date        string `json:"date"`
}

// HistoryItem is an append-only purchase log entry. It is never
// mutated, only filtered out on clear.
type HistoryItem struct {
	ID        int    `json:"id"`
	MemberID  string `json:"memberID"`
	GuildID   string `json:"guildID"`
	ItemName  string `json:"itemName"`
	Price     int    `json:"price"`
	Role      string `json:"role,omitempty"`
	MaxAmount *int   `json:"maxAmount"`
	Date      string `json:"date"`
}

// Guild returns the record for the guild, creating an empty one if it
// does not exist yet. Guilds are created lazily on first write.
func (d Document) Guild(guildID string) *GuildRecord {
	guild, ok := d[guildID]
	if !ok {
		guild = &GuildRecord{
			Members: make(map[string]*MemberRecord),
		}
		d[guildID] = guild
	}
	return guild
}

// Member returns the guild's record for the member, creating a default
// one if it does not exist yet.
func (g *GuildRecord) Member(memberID string) *MemberRecord {
	if g.Members == nil {
		g.Members = make(map[string]*MemberRecord)
	}
	member, ok := g.Members[memberID]
	if !ok {
		member = &MemberRecord{
			Inventory: make([]*InventoryItem, 0),
			History:   make([]*HistoryItem, 0),
		}
		g.Members[memberID] = member
	}
	return member
}

// lookupMember returns the member record without creating one.
func (d Document) lookupMember(guildID string, memberID string) *MemberRecord {
	guild, ok := d[guildID]
	if !ok {
		return nil
	}
	return guild.Members[memberID]
}

// MarshalJSON flattens the members into the guild object alongside the
// shop, settings and counter keys, matching the stored schema.
func (g *GuildRecord) MarshalJSON() ([]byte, error) {
	raw := make(map[string]json.RawMessage, len(g.Members)+3)
	for memberID, member := range g.Members {
		b, err := json.Marshal(member)
		if err != nil {
			return nil, err
		}
		raw[memberID] = b
	}

	shop := g.Shop
	if shop == nil {
		shop = make([]*ShopItem, 0)
	}
	b, err := json.Marshal(shop)
	if err != nil {
		return nil, err
	}
	raw[keyShop] = b

	if g.Settings != nil {
		b, err := json.Marshal(g.Settings)
		if err != nil {
			return nil, err
		}
		raw[keySettings] = b
	}
	if g.ShopCounter != 0 {
		raw[keyShopCounter] = []byte(fmt.Sprintf("%d", g.ShopCounter))
	}
	return json.Marshal(raw)
}

// UnmarshalJSON splits the guild object back into members and the
// reserved shop, settings and counter keys.
func (g *GuildRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	g.Members = make(map[string]*MemberRecord, len(raw))
	for key, value := range raw {
		switch key {
		case keyShop:
			if err := json.Unmarshal(value, &g.Shop); err != nil {
				return fmt.Errorf("guild shop: %w", err)
			}
		case keySettings:
			if err := json.Unmarshal(value, &g.Settings); err != nil {
				return fmt.Errorf("guild settings: %w", err)
			}
		case keyShopCounter:
			if err := json.Unmarshal(value, &g.ShopCounter); err != nil {
				return fmt.Errorf("guild shop counter: %w", err)
			}
		default:
			var member MemberRecord
			if err := json.Unmarshal(value, &member); err != nil {
				return fmt.Errorf("member %s: %w", key, err)
			}
			if member.Inventory == nil {
				member.Inventory = make([]*InventoryItem, 0)
			}
			if member.History == nil {
				member.History = make([]*HistoryItem, 0)
			}
			g.Members[key] = &member
		}
	}

	// Counters were introduced after length-derived IDs; recover them
	// from existing data so old documents keep assigning unique IDs.
	if g.ShopCounter == 0 {
		for _, item := range g.Shop {
			if item.ID > g.ShopCounter {
				g.ShopCounter = item.ID
			}
		}
	}
	for _, member := range g.Members {
		if member.InventoryCounter == 0 {
			for _, item := range member.Inventory {
				if item.ID > member.InventoryCounter {
					member.InventoryCounter = item.ID
				}
			}
		}
		if member.HistoryCounter == 0 {
			for _, item := range member.History {
				if item.ID > member.HistoryCounter {
					member.HistoryCounter = item.ID
				}
			}
		}
	}
	return nil
}

// cooldown returns the last-claim timestamp for the given claim kind,
// in epoch milliseconds. A nil timestamp means the reward was never
// claimed.
func (m *MemberRecord) cooldown(kind ClaimKind) *int64 {
	switch kind {
	case ClaimDaily:
		return m.DailyCooldown
	case ClaimWork:
		return m.WorkCooldown
	case ClaimWeekly:
		return m.WeeklyCooldown
	}
	return nil
}

// setCooldown stamps the last-claim timestamp for the given claim kind.
func (m *MemberRecord) setCooldown(kind ClaimKind, timestamp int64) {
	switch kind {
	case ClaimDaily:
		m.DailyCooldown = &timestamp
	case ClaimWork:
		m.WorkCooldown = &timestamp
	case ClaimWeekly:
		m.WeeklyCooldown = &timestamp
	}
}
