// Package notify defines the outbound notification contract between the
// treasury engine and its host. Events are fire-and-forget; the engine
// never depends on the host acting on them.
package notify

import "sync"

// Kind names a mutation reported to the host.
type Kind string

const (
	BalanceSet      Kind = "balanceSet"
	BalanceAdd      Kind = "balanceAdd"
	BalanceSubtract Kind = "balanceSubtract"
	BankSet         Kind = "bankSet"
	BankAdd         Kind = "bankAdd"
	BankSubtract    Kind = "bankSubtract"
	ShopAddItem     Kind = "shopAddItem"
	ShopEditItem    Kind = "shopEditItem"
	ShopItemBuy     Kind = "shopItemBuy"
	ShopItemUse     Kind = "shopItemUse"
	ShopRemoveItem  Kind = "shopRemoveItem"
	ShopClear       Kind = "shopClear"
)

// Event is a single mutation notification.
type Event struct {
	Kind    Kind
	Payload any
}

// BalancePayload reports a balance or bank mutation.
type BalancePayload struct {
	GuildID  string
	MemberID string
	Amount   int
	Balance  int
	Reason   string
}

// ItemPayload reports a shop catalog or inventory mutation.
type ItemPayload struct {
	GuildID  string
	MemberID string
	ItemID   int
	ItemName string
	Price    int
	Role     string
}

// EditPayload reports a single-field catalog edit.
type EditPayload struct {
	GuildID  string
	ItemID   int
	ItemName string
	Field    string
	OldValue any
	NewValue any
}

// ClearPayload reports a catalog clear. Cleared is false when the
// catalog was already empty.
type ClearPayload struct {
	GuildID string
	Cleared bool
}

// Notifier receives mutation events from the engine after each write
// commits.
type Notifier interface {
	Emit(event Event)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(event Event)

func (f NotifierFunc) Emit(event Event) {
	f(event)
}

// Noop discards all events.
type Noop struct{}

func (Noop) Emit(Event) {}

// Recorder stores every emitted event, for tests and diagnostics.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Emit(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of the recorded events in emission order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := make([]Event, len(r.events))
	copy(events, r.events)
	return events
}

// Last returns the most recent event of the given kind, or false.
func (r *Recorder) Last(kind Kind) (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Kind == kind {
			return r.events[i], true
		}
	}
	return Event{}, false
}
