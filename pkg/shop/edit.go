package shop

import (
	"fmt"

	"github.com/sarratt/treasury/pkg/economy"
	"github.com/sarratt/treasury/pkg/notify"
	log "github.com/sirupsen/logrus"
)

// Field is an editable catalog item field. Edits outside this closed
// set are rejected at the boundary.
type Field string

const (
	FieldDescription Field = "description"
	FieldPrice       Field = "price"
	FieldItemName    Field = "itemName"
	FieldMessage     Field = "message"
	FieldMaxAmount   Field = "maxAmount"
	FieldRole        Field = "role"
)

// EditItem mutates a single field of a catalog item located by ID or
// name. It returns false when no item matches. The field must be one of
// the Field constants and the value must match the field's type.
func (s *Shop) EditItem(guildID string, key string, field Field, value any) (bool, error) {
	log.Trace("--> EditItem")
	defer log.Trace("<-- EditItem")

	if guildID == "" {
		return false, fmt.Errorf("%w: guild ID is empty", economy.ErrInvalidArgument)
	}
	if value == nil {
		return false, fmt.Errorf("%w: no value given for field %q", economy.ErrInvalidArgument, field)
	}

	var edited *economy.ShopItem
	var oldValue any
	err := s.engine.Update(func(doc economy.Document) (bool, error) {
		guild, ok := doc[guildID]
		if !ok {
			return false, nil
		}
		_, item := findShopItem(guild.Shop, key)
		if item == nil {
			return false, nil
		}

		old, err := applyEdit(item, field, value)
		if err != nil {
			return false, err
		}
		edited = item
		oldValue = old
		return true, nil
	})
	if err != nil || edited == nil {
		return false, err
	}

	s.engine.Notify(notify.Event{
		Kind: notify.ShopEditItem,
		Payload: notify.EditPayload{
			GuildID:  guildID,
			ItemID:   edited.ID,
			ItemName: edited.ItemName,
			Field:    string(field),
			OldValue: oldValue,
			NewValue: value,
		},
	})
	return true, nil
}

// applyEdit routes the value to the typed setter for the field and
// returns the previous value.
func applyEdit(item *economy.ShopItem, field Field, value any) (any, error) {
	switch field {
	case FieldDescription:
		s, err := stringValue(field, value)
		if err != nil {
			return nil, err
		}
		old := item.Description
		item.Description = s
		return old, nil
	case FieldItemName:
		s, err := stringValue(field, value)
		if err != nil {
			return nil, err
		}
		if s == "" {
			return nil, fmt.Errorf("%w: item name must not be empty", economy.ErrInvalidArgument)
		}
		old := item.ItemName
		item.ItemName = s
		return old, nil
	case FieldMessage:
		s, err := stringValue(field, value)
		if err != nil {
			return nil, err
		}
		old := item.Message
		item.Message = s
		return old, nil
	case FieldRole:
		s, err := stringValue(field, value)
		if err != nil {
			return nil, err
		}
		old := item.Role
		item.Role = s
		return old, nil
	case FieldPrice:
		n, err := intValue(field, value)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("%w: price must not be negative", economy.ErrInvalidArgument)
		}
		old := item.Price
		item.Price = n
		return old, nil
	case FieldMaxAmount:
		n, err := intValue(field, value)
		if err != nil {
			return nil, err
		}
		if n < 1 {
			return nil, fmt.Errorf("%w: max amount must be positive", economy.ErrInvalidArgument)
		}
		var old any
		if item.MaxAmount != nil {
			old = *item.MaxAmount
		}
		item.MaxAmount = &n
		return old, nil
	}
	return nil, fmt.Errorf("%w: field %q is not editable", economy.ErrInvalidArgument, field)
}

func stringValue(field Field, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %q takes a string, got %T", economy.ErrInvalidArgument, field, value)
	}
	return s, nil
}

func intValue(field Field, value any) (int, error) {
	switch n := value.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	}
	return 0, fmt.Errorf("%w: field %q takes an integer, got %T", economy.ErrInvalidArgument, field, value)
}
