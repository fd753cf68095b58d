package shop

import (
	"fmt"
	"time"

	"github.com/sarratt/treasury/pkg/economy"
	"github.com/sarratt/treasury/pkg/notify"
	log "github.com/sirupsen/logrus"
)

// BuyStatus is the outcome of a purchase attempt.
type BuyStatus string

const (
	BuySuccess    BuyStatus = "success"
	BuyNotFound   BuyStatus = "notFound"
	BuyMaxReached BuyStatus = "maxAmountReached"
)

// BuyResult carries the purchase outcome. Item and Balance are set only
// on success.
type BuyResult struct {
	Status  BuyStatus
	Item    *economy.InventoryItem
	Balance int
}

// RoleGranter grants an external role to a member. The shop invokes it
// after an inventory mutation commits, so a grant failure never rolls
// back stored state.
type RoleGranter interface {
	GrantRole(guildID string, memberID string, roleID string) error
}

// Buy purchases a catalog item for the member: the item is copied into
// the inventory, a history entry is appended and the price is debited,
// all in a single write. The member's balance may go negative. When the
// member already holds maxAmount matching items the purchase is refused
// without mutation.
func (s *Shop) Buy(guildID string, memberID string, key string, reason string) (*BuyResult, error) {
	log.Trace("--> Buy")
	defer log.Trace("<-- Buy")

	if guildID == "" || memberID == "" {
		return nil, fmt.Errorf("%w: guild and member IDs must not be empty", economy.ErrInvalidArgument)
	}

	now := time.Now()
	result := &BuyResult{Status: BuyNotFound}
	var bought *economy.ShopItem
	err := s.engine.Update(func(doc economy.Document) (bool, error) {
		guild := doc.Guild(guildID)
		_, item := findShopItem(guild.Shop, key)
		if item == nil {
			return false, nil
		}

		member := guild.Member(memberID)
		if item.MaxAmount != nil && countByName(member.Inventory, item.ItemName) >= *item.MaxAmount {
			result.Status = BuyMaxReached
			return false, nil
		}

		member.InventoryCounter++
		held := &economy.InventoryItem{
			ID:          member.InventoryCounter,
			ItemName:    item.ItemName,
			Price:       item.Price,
			Message:     item.Message,
			Description: item.Description,
			MaxAmount:   item.MaxAmount,
			Role:        item.Role,
			Date:        s.engine.FormatDate(now),
		}
		member.Inventory = append(member.Inventory, held)

		member.HistoryCounter++
		member.History = append(member.History, &economy.HistoryItem{
			ID:        member.HistoryCounter,
			MemberID:  memberID,
			GuildID:   guildID,
			ItemName:  item.ItemName,
			Price:     item.Price,
			Role:      item.Role,
			MaxAmount: item.MaxAmount,
			Date:      s.engine.FormatDate(now),
		})

		member.Money -= item.Price
		bought = item
		result = &BuyResult{Status: BuySuccess, Item: held, Balance: member.Money}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	if result.Status != BuySuccess {
		return result, nil
	}

	if reason == "" {
		reason = fmt.Sprintf("bought the %s item", bought.ItemName)
	}
	s.engine.Notify(notify.Event{
		Kind: notify.ShopItemBuy,
		Payload: notify.ItemPayload{
			GuildID:  guildID,
			MemberID: memberID,
			ItemID:   result.Item.ID,
			ItemName: bought.ItemName,
			Price:    bought.Price,
			Role:     bought.Role,
		},
	})
	s.engine.Notify(notify.Event{
		Kind: notify.BalanceSubtract,
		Payload: notify.BalancePayload{
			GuildID:  guildID,
			MemberID: memberID,
			Amount:   bought.Price,
			Balance:  result.Balance,
			Reason:   reason,
		},
	})
	return result, nil
}

// UseItem consumes an inventory item located by ID or name, returning
// the item's stored message. The removal is persisted first; if the
// item carries a role reference the granter is invoked afterwards, and
// a grant failure is logged without undoing the removal. It returns
// false when no inventory item matches.
func (s *Shop) UseItem(guildID string, memberID string, key string, granter RoleGranter) (string, bool, error) {
	log.Trace("--> UseItem")
	defer log.Trace("<-- UseItem")

	if guildID == "" || memberID == "" {
		return "", false, fmt.Errorf("%w: guild and member IDs must not be empty", economy.ErrInvalidArgument)
	}

	var used *economy.InventoryItem
	err := s.engine.Update(func(doc economy.Document) (bool, error) {
		member := doc.Guild(guildID).Member(memberID)
		index, item := findInventoryItem(member.Inventory, key)
		if item == nil {
			return false, nil
		}
		used = item
		member.Inventory = append(member.Inventory[:index], member.Inventory[index+1:]...)
		return true, nil
	})
	if err != nil || used == nil {
		return "", false, err
	}

	if used.Role != "" && granter != nil {
		if err := granter.GrantRole(guildID, memberID, used.Role); err != nil {
			log.Errorf("Failed to grant role %s to member %s in guild %s, error=%s", used.Role, memberID, guildID, err.Error())
		}
	}

	s.engine.Notify(notify.Event{
		Kind: notify.ShopItemUse,
		Payload: notify.ItemPayload{
			GuildID:  guildID,
			MemberID: memberID,
			ItemID:   used.ID,
			ItemName: used.ItemName,
			Price:    used.Price,
			Role:     used.Role,
		},
	})
	return used.Message, true, nil
}

// Inventory returns the member's held items in purchase order.
func (s *Shop) Inventory(guildID string, memberID string) ([]*economy.InventoryItem, error) {
	items := make([]*economy.InventoryItem, 0)
	err := s.engine.View(func(doc economy.Document) error {
		if guild, ok := doc[guildID]; ok {
			if member, ok := guild.Members[memberID]; ok {
				items = append(items, member.Inventory...)
			}
		}
		return nil
	})
	return items, err
}

// History returns the member's purchase log in chronological order.
func (s *Shop) History(guildID string, memberID string) ([]*economy.HistoryItem, error) {
	items := make([]*economy.HistoryItem, 0)
	err := s.engine.View(func(doc economy.Document) error {
		if guild, ok := doc[guildID]; ok {
			if member, ok := guild.Members[memberID]; ok {
				items = append(items, member.History...)
			}
		}
		return nil
	})
	return items, err
}

// ClearInventory empties the member's inventory, preserving every other
// member field. It returns false when there was nothing to clear.
func (s *Shop) ClearInventory(guildID string, memberID string) (bool, error) {
	return s.clearMemberList(guildID, memberID, func(member *economy.MemberRecord) bool {
		if len(member.Inventory) == 0 {
			return false
		}
		member.Inventory = make([]*economy.InventoryItem, 0)
		return true
	})
}

// ClearHistory empties the member's purchase log, preserving every
// other member field. It returns false when there was nothing to clear.
func (s *Shop) ClearHistory(guildID string, memberID string) (bool, error) {
	return s.clearMemberList(guildID, memberID, func(member *economy.MemberRecord) bool {
		if len(member.History) == 0 {
			return false
		}
		member.History = make([]*economy.HistoryItem, 0)
		return true
	})
}

func (s *Shop) clearMemberList(guildID string, memberID string, clear func(*economy.MemberRecord) bool) (bool, error) {
	if guildID == "" || memberID == "" {
		return false, fmt.Errorf("%w: guild and member IDs must not be empty", economy.ErrInvalidArgument)
	}

	cleared := false
	err := s.engine.Update(func(doc economy.Document) (bool, error) {
		guild, ok := doc[guildID]
		if !ok {
			return false, nil
		}
		member, ok := guild.Members[memberID]
		if !ok {
			return false, nil
		}
		cleared = clear(member)
		return cleared, nil
	})
	if err != nil {
		return false, err
	}
	return cleared, nil
}

// countByName counts inventory items whose name matches.
func countByName(items []*economy.InventoryItem, name string) int {
	count := 0
	for _, item := range items {
		if item.ItemName == name {
			count++
		}
	}
	return count
}
