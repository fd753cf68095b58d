// Package shop implements the per-guild catalog and the purchase flow:
// catalog CRUD, inventory-capacity-checked buying, item consumption and
// the append-only purchase history. All mutations run through the
// engine's critical section, sharing its store, locks and notifier.
package shop

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sarratt/treasury/pkg/economy"
	"github.com/sarratt/treasury/pkg/notify"
	log "github.com/sirupsen/logrus"
)

// Shop exposes the catalog and purchase operations for all guilds.
type Shop struct {
	engine   *economy.Engine
	validate *validator.Validate
}

// New creates a shop backed by the engine.
func New(engine *economy.Engine) *Shop {
	return &Shop{
		engine:   engine,
		validate: validator.New(),
	}
}

// ItemSpec describes a catalog item to add. MaxAmount caps how many
// matching items a member may hold at once; nil means unlimited. Role
// is an external role reference granted when the item is used.
type ItemSpec struct {
	Name        string `validate:"required"`
	Price       int    `validate:"gte=0"`
	Message     string
	Description string
	MaxAmount   *int `validate:"omitempty,gte=1"`
	Role        string
}

// AddItem validates the spec, assigns the next catalog ID and appends
// the item to the guild's catalog.
func (s *Shop) AddItem(guildID string, spec ItemSpec) (*economy.ShopItem, error) {
	log.Trace("--> AddItem")
	defer log.Trace("<-- AddItem")

	if guildID == "" {
		return nil, fmt.Errorf("%w: guild ID is empty", economy.ErrInvalidArgument)
	}
	if err := s.validate.Struct(spec); err != nil {
		return nil, fmt.Errorf("%w: %v", economy.ErrInvalidArgument, err)
	}

	var item *economy.ShopItem
	err := s.engine.Update(func(doc economy.Document) (bool, error) {
		guild := doc.Guild(guildID)
		guild.ShopCounter++
		item = &economy.ShopItem{
			ID:          guild.ShopCounter,
			ItemName:    spec.Name,
			Price:       spec.Price,
			Message:     spec.Message,
			Description: spec.Description,
			MaxAmount:   spec.MaxAmount,
			Role:        spec.Role,
			Date:        s.engine.FormatDate(time.Now()),
		}
		guild.Shop = append(guild.Shop, item)
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	s.engine.Notify(notify.Event{
		Kind: notify.ShopAddItem,
		Payload: notify.ItemPayload{
			GuildID:  guildID,
			ItemID:   item.ID,
			ItemName: item.ItemName,
			Price:    item.Price,
			Role:     item.Role,
		},
	})
	return item, nil
}

// RemoveItem deletes a catalog item located by ID or name. It returns
// false when no item matches. Remaining item IDs are not renumbered.
func (s *Shop) RemoveItem(guildID string, key string) (bool, error) {
	log.Trace("--> RemoveItem")
	defer log.Trace("<-- RemoveItem")

	if guildID == "" {
		return false, fmt.Errorf("%w: guild ID is empty", economy.ErrInvalidArgument)
	}

	var removed *economy.ShopItem
	err := s.engine.Update(func(doc economy.Document) (bool, error) {
		guild, ok := doc[guildID]
		if !ok {
			return false, nil
		}
		index, item := findShopItem(guild.Shop, key)
		if item == nil {
			return false, nil
		}
		removed = item
		guild.Shop = append(guild.Shop[:index], guild.Shop[index+1:]...)
		return true, nil
	})
	if err != nil || removed == nil {
		return false, err
	}

	s.engine.Notify(notify.Event{
		Kind: notify.ShopRemoveItem,
		Payload: notify.ItemPayload{
			GuildID:  guildID,
			ItemID:   removed.ID,
			ItemName: removed.ItemName,
			Price:    removed.Price,
			Role:     removed.Role,
		},
	})
	return true, nil
}

// List returns the guild's catalog in insertion order.
func (s *Shop) List(guildID string) ([]*economy.ShopItem, error) {
	items := make([]*economy.ShopItem, 0)
	err := s.engine.View(func(doc economy.Document) error {
		if guild, ok := doc[guildID]; ok {
			items = append(items, guild.Shop...)
		}
		return nil
	})
	return items, err
}

// SearchItem locates a catalog item by ID or name, or returns nil.
func (s *Shop) SearchItem(guildID string, key string) (*economy.ShopItem, error) {
	var found *economy.ShopItem
	err := s.engine.View(func(doc economy.Document) error {
		if guild, ok := doc[guildID]; ok {
			_, found = findShopItem(guild.Shop, key)
		}
		return nil
	})
	return found, err
}

// Clear empties the guild's catalog. It returns false when the catalog
// was already empty; the clear is still reported either way.
func (s *Shop) Clear(guildID string) (bool, error) {
	log.Trace("--> Clear")
	defer log.Trace("<-- Clear")

	if guildID == "" {
		return false, fmt.Errorf("%w: guild ID is empty", economy.ErrInvalidArgument)
	}

	cleared := false
	err := s.engine.Update(func(doc economy.Document) (bool, error) {
		guild := doc.Guild(guildID)
		cleared = len(guild.Shop) > 0
		guild.Shop = make([]*economy.ShopItem, 0)
		return cleared, nil
	})
	if err != nil {
		return false, err
	}

	s.engine.Notify(notify.Event{
		Kind:    notify.ShopClear,
		Payload: notify.ClearPayload{GuildID: guildID, Cleared: cleared},
	})
	return cleared, nil
}

// findShopItem locates a catalog item by ID or name. A numeric-looking
// key tries the ID first, falling back to a name match; duplicate names
// resolve to the earliest inserted item.
func findShopItem(items []*economy.ShopItem, key string) (int, *economy.ShopItem) {
	if id, err := strconv.Atoi(key); err == nil {
		for i, item := range items {
			if item.ID == id {
				return i, item
			}
		}
	}
	for i, item := range items {
		if item.ItemName == key {
			return i, item
		}
	}
	return -1, nil
}

// findInventoryItem locates an inventory item with the same precedence
// as findShopItem.
func findInventoryItem(items []*economy.InventoryItem, key string) (int, *economy.InventoryItem) {
	if id, err := strconv.Atoi(key); err == nil {
		for i, item := range items {
			if item.ID == id {
				return i, item
			}
		}
	}
	for i, item := range items {
		if item.ItemName == key {
			return i, item
		}
	}
	return -1, nil
}
