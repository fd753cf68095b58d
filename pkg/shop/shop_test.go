package shop_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/sarratt/treasury/pkg/config"
	"github.com/sarratt/treasury/pkg/economy"
	"github.com/sarratt/treasury/pkg/notify"
	"github.com/sarratt/treasury/pkg/shop"
	"github.com/sarratt/treasury/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShop(t *testing.T) (*shop.Shop, *economy.Engine, *notify.Recorder) {
	t.Helper()
	cfg := &config.Config{
		StoragePath:     filepath.Join(t.TempDir(), "storage.json"),
		StoreType:       config.StoreTypeFile,
		DailyCooldown:   24 * time.Hour,
		WorkCooldown:    time.Hour,
		WeeklyCooldown:  168 * time.Hour,
		DailyAmount:     config.FixedReward(100),
		WorkAmount:      config.RangeReward(10, 50),
		WeeklyAmount:    config.FixedReward(1000),
		UpdateCountdown: time.Hour,
		DateLocale:      "en",
		RetryAttempts:   1,
		RetryDelay:      time.Millisecond,
	}
	st, err := store.New(cfg)
	require.NoError(t, err)
	recorder := &notify.Recorder{}
	engine := economy.New(cfg, st, recorder)
	require.NoError(t, engine.Start())
	t.Cleanup(engine.Stop)
	return shop.New(engine), engine, recorder
}

func intPtr(n int) *int {
	return &n
}

func TestAddItemRoundTrip(t *testing.T) {
	sh, _, _ := newTestShop(t)

	item, err := sh.AddItem("G1", shop.ItemSpec{
		Name:        "Sword",
		Price:       50,
		Message:     "You swing the sword.",
		Description: "A sharp sword.",
		MaxAmount:   intPtr(2),
		Role:        "R1",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, item.ID)
	assert.NotEmpty(t, item.Date)

	byID, err := sh.SearchItem("G1", "1")
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, item, byID)

	byName, err := sh.SearchItem("G1", "Sword")
	require.NoError(t, err)
	assert.Equal(t, byID, byName)
}

func TestAddItemValidation(t *testing.T) {
	sh, _, _ := newTestShop(t)

	_, err := sh.AddItem("G1", shop.ItemSpec{Price: 10})
	assert.ErrorIs(t, err, economy.ErrInvalidArgument)

	_, err = sh.AddItem("G1", shop.ItemSpec{Name: "Sword", Price: -1})
	assert.ErrorIs(t, err, economy.ErrInvalidArgument)

	_, err = sh.AddItem("", shop.ItemSpec{Name: "Sword"})
	assert.ErrorIs(t, err, economy.ErrInvalidArgument)
}

func TestRemoveItemKeepsIDs(t *testing.T) {
	sh, _, _ := newTestShop(t)

	for _, name := range []string{"Sword", "Shield", "Potion"} {
		_, err := sh.AddItem("G1", shop.ItemSpec{Name: name, Price: 10})
		require.NoError(t, err)
	}

	removed, err := sh.RemoveItem("G1", "2")
	require.NoError(t, err)
	assert.True(t, removed)

	items, err := sh.List("G1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].ID)
	assert.Equal(t, 3, items[1].ID)

	// IDs are never reused after a removal
	item, err := sh.AddItem("G1", shop.ItemSpec{Name: "Bow", Price: 10})
	require.NoError(t, err)
	assert.Equal(t, 4, item.ID)

	removed, err = sh.RemoveItem("G1", "missing")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestEditItem(t *testing.T) {
	sh, _, recorder := newTestShop(t)

	_, err := sh.AddItem("G1", shop.ItemSpec{Name: "Sword", Price: 50})
	require.NoError(t, err)

	edited, err := sh.EditItem("G1", "Sword", shop.FieldPrice, 75)
	require.NoError(t, err)
	assert.True(t, edited)

	item, err := sh.SearchItem("G1", "1")
	require.NoError(t, err)
	assert.Equal(t, 75, item.Price)

	event, ok := recorder.Last(notify.ShopEditItem)
	require.True(t, ok)
	payload := event.Payload.(notify.EditPayload)
	assert.Equal(t, "price", payload.Field)
	assert.Equal(t, 50, payload.OldValue)
	assert.Equal(t, 75, payload.NewValue)
}

func TestEditItemRejectsUnknownFieldAndBadTypes(t *testing.T) {
	sh, _, _ := newTestShop(t)

	_, err := sh.AddItem("G1", shop.ItemSpec{Name: "Sword", Price: 50})
	require.NoError(t, err)

	_, err = sh.EditItem("G1", "Sword", shop.Field("id"), 9)
	assert.ErrorIs(t, err, economy.ErrInvalidArgument)

	_, err = sh.EditItem("G1", "Sword", shop.FieldPrice, "free")
	assert.ErrorIs(t, err, economy.ErrInvalidArgument)

	_, err = sh.EditItem("G1", "Sword", shop.FieldDescription, nil)
	assert.ErrorIs(t, err, economy.ErrInvalidArgument)

	// an edit of a missing item is a reported no-op
	edited, err := sh.EditItem("G1", "missing", shop.FieldPrice, 10)
	require.NoError(t, err)
	assert.False(t, edited)
}

func TestDuplicateNamesResolveToEarliestInserted(t *testing.T) {
	sh, _, _ := newTestShop(t)

	first, err := sh.AddItem("G1", shop.ItemSpec{Name: "Sword", Price: 10})
	require.NoError(t, err)
	_, err = sh.AddItem("G1", shop.ItemSpec{Name: "Sword", Price: 20})
	require.NoError(t, err)

	found, err := sh.SearchItem("G1", "Sword")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)
}

func TestClear(t *testing.T) {
	sh, _, recorder := newTestShop(t)

	// clearing an empty catalog is a reported no-op, still notified
	cleared, err := sh.Clear("G1")
	require.NoError(t, err)
	assert.False(t, cleared)
	event, ok := recorder.Last(notify.ShopClear)
	require.True(t, ok)
	assert.False(t, event.Payload.(notify.ClearPayload).Cleared)

	_, err = sh.AddItem("G1", shop.ItemSpec{Name: "Sword", Price: 10})
	require.NoError(t, err)

	cleared, err = sh.Clear("G1")
	require.NoError(t, err)
	assert.True(t, cleared)

	items, err := sh.List("G1")
	require.NoError(t, err)
	assert.Empty(t, items)
}
