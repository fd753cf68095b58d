package shop_test

import (
	"errors"
	"testing"

	"github.com/sarratt/treasury/pkg/notify"
	"github.com/sarratt/treasury/pkg/shop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGranter struct {
	guildID  string
	memberID string
	roleID   string
	calls    int
	err      error
}

func (f *fakeGranter) GrantRole(guildID string, memberID string, roleID string) error {
	f.guildID, f.memberID, f.roleID = guildID, memberID, roleID
	f.calls++
	return f.err
}

func TestBuyScenario(t *testing.T) {
	sh, engine, _ := newTestShop(t)

	_, err := sh.AddItem("G1", shop.ItemSpec{Name: "Sword", Price: 50, MaxAmount: intPtr(2)})
	require.NoError(t, err)
	_, err = engine.SetBalance("G1", "M1", 100, "seed")
	require.NoError(t, err)

	first, err := sh.Buy("G1", "M1", "Sword", "")
	require.NoError(t, err)
	require.Equal(t, shop.BuySuccess, first.Status)
	assert.Equal(t, 50, first.Balance)

	second, err := sh.Buy("G1", "M1", "Sword", "")
	require.NoError(t, err)
	require.Equal(t, shop.BuySuccess, second.Status)
	assert.Equal(t, 0, second.Balance)

	inventory, err := sh.Inventory("G1", "M1")
	require.NoError(t, err)
	assert.Len(t, inventory, 2)

	// the third attempt hits the holding cap and mutates nothing
	third, err := sh.Buy("G1", "M1", "Sword", "")
	require.NoError(t, err)
	assert.Equal(t, shop.BuyMaxReached, third.Status)

	balance, err := engine.Balance("G1", "M1")
	require.NoError(t, err)
	assert.Equal(t, 0, balance)
	inventory, err = sh.Inventory("G1", "M1")
	require.NoError(t, err)
	assert.Len(t, inventory, 2)
}

func TestBuyNotFound(t *testing.T) {
	sh, _, _ := newTestShop(t)

	result, err := sh.Buy("G1", "M1", "missing", "")
	require.NoError(t, err)
	assert.Equal(t, shop.BuyNotFound, result.Status)
}

func TestBuyMayOverdraw(t *testing.T) {
	sh, engine, _ := newTestShop(t)

	_, err := sh.AddItem("G1", shop.ItemSpec{Name: "Sword", Price: 50})
	require.NoError(t, err)

	result, err := sh.Buy("G1", "M1", "Sword", "")
	require.NoError(t, err)
	require.Equal(t, shop.BuySuccess, result.Status)
	assert.Equal(t, -50, result.Balance)

	balance, err := engine.Balance("G1", "M1")
	require.NoError(t, err)
	assert.Equal(t, -50, balance)
}

func TestBuyAppendsHistoryAndEmitsEvents(t *testing.T) {
	sh, _, recorder := newTestShop(t)

	_, err := sh.AddItem("G1", shop.ItemSpec{Name: "Sword", Price: 50})
	require.NoError(t, err)

	_, err = sh.Buy("G1", "M1", "Sword", "")
	require.NoError(t, err)

	history, err := sh.History("G1", "M1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Sword", history[0].ItemName)
	assert.Equal(t, "G1", history[0].GuildID)
	assert.Equal(t, "M1", history[0].MemberID)

	_, ok := recorder.Last(notify.ShopItemBuy)
	assert.True(t, ok)
	event, ok := recorder.Last(notify.BalanceSubtract)
	require.True(t, ok)
	payload := event.Payload.(notify.BalancePayload)
	assert.Equal(t, 50, payload.Amount)
	assert.Equal(t, "bought the Sword item", payload.Reason)
}

func TestInventoryIDsNotReusedAfterRemoval(t *testing.T) {
	sh, _, _ := newTestShop(t)

	_, err := sh.AddItem("G1", shop.ItemSpec{Name: "Sword", Price: 10})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = sh.Buy("G1", "M1", "Sword", "")
		require.NoError(t, err)
	}

	// consume the first copy, then buy again
	_, ok, err := sh.UseItem("G1", "M1", "1", nil)
	require.NoError(t, err)
	require.True(t, ok)

	result, err := sh.Buy("G1", "M1", "Sword", "")
	require.NoError(t, err)
	require.Equal(t, shop.BuySuccess, result.Status)
	assert.Equal(t, 3, result.Item.ID)

	inventory, err := sh.Inventory("G1", "M1")
	require.NoError(t, err)
	require.Len(t, inventory, 2)
	assert.Equal(t, 2, inventory[0].ID)
	assert.Equal(t, 3, inventory[1].ID)
}

func TestUseItemReturnsMessage(t *testing.T) {
	sh, _, recorder := newTestShop(t)

	_, err := sh.AddItem("G1", shop.ItemSpec{Name: "Sword", Price: 10, Message: "You swing the sword."})
	require.NoError(t, err)
	_, err = sh.Buy("G1", "M1", "Sword", "")
	require.NoError(t, err)

	message, ok, err := sh.UseItem("G1", "M1", "Sword", nil)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "You swing the sword.", message)

	inventory, err := sh.Inventory("G1", "M1")
	require.NoError(t, err)
	assert.Empty(t, inventory)

	_, ok = recorder.Last(notify.ShopItemUse)
	assert.True(t, ok)
}

func TestUseItemMissing(t *testing.T) {
	sh, _, _ := newTestShop(t)

	message, ok, err := sh.UseItem("G1", "M1", "missing", nil)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, message)

	history, err := sh.History("G1", "M1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestUseItemGrantsRoleAfterCommit(t *testing.T) {
	sh, _, _ := newTestShop(t)

	_, err := sh.AddItem("G1", shop.ItemSpec{Name: "VIP", Price: 10, Role: "R1"})
	require.NoError(t, err)
	_, err = sh.Buy("G1", "M1", "VIP", "")
	require.NoError(t, err)

	granter := &fakeGranter{}
	_, ok, err := sh.UseItem("G1", "M1", "VIP", granter)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, granter.calls)
	assert.Equal(t, "G1", granter.guildID)
	assert.Equal(t, "M1", granter.memberID)
	assert.Equal(t, "R1", granter.roleID)
}

func TestUseItemGrantFailureKeepsRemoval(t *testing.T) {
	sh, _, _ := newTestShop(t)

	_, err := sh.AddItem("G1", shop.ItemSpec{Name: "VIP", Price: 10, Role: "R1"})
	require.NoError(t, err)
	_, err = sh.Buy("G1", "M1", "VIP", "")
	require.NoError(t, err)

	granter := &fakeGranter{err: errors.New("missing permission")}
	_, ok, err := sh.UseItem("G1", "M1", "VIP", granter)
	require.NoError(t, err)
	assert.True(t, ok)

	// the grant failed but the inventory mutation stands
	inventory, err := sh.Inventory("G1", "M1")
	require.NoError(t, err)
	assert.Empty(t, inventory)
}

func TestClearInventoryAndHistory(t *testing.T) {
	sh, engine, _ := newTestShop(t)

	_, err := sh.AddItem("G1", shop.ItemSpec{Name: "Sword", Price: 10})
	require.NoError(t, err)
	_, err = sh.Buy("G1", "M1", "Sword", "")
	require.NoError(t, err)

	cleared, err := sh.ClearInventory("G1", "M1")
	require.NoError(t, err)
	assert.True(t, cleared)
	cleared, err = sh.ClearInventory("G1", "M1")
	require.NoError(t, err)
	assert.False(t, cleared)

	// history survives an inventory clear
	history, err := sh.History("G1", "M1")
	require.NoError(t, err)
	assert.Len(t, history, 1)

	cleared, err = sh.ClearHistory("G1", "M1")
	require.NoError(t, err)
	assert.True(t, cleared)

	// the balance is untouched by either clear
	balance, err := engine.Balance("G1", "M1")
	require.NoError(t, err)
	assert.Equal(t, -10, balance)

	cleared, err = sh.ClearHistory("G1", "unknown")
	require.NoError(t, err)
	assert.False(t, cleared)
}
