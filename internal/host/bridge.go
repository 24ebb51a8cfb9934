// Package host adapts raw game-server events and commands into backpack
// operations. The embedding server translates its native event types into
// these calls and applies the results; nothing here depends on a
// particular server implementation.
package host

import (
	"log/slog"

	"github.com/supafloof/backpacks/internal/errors"
	"github.com/supafloof/backpacks/internal/item"
	"github.com/supafloof/backpacks/internal/ops"
	"github.com/supafloof/backpacks/internal/session"
)

// Player-facing messages for the event flows.
const (
	msgOpened         = "Opened backpack!"
	msgSaved          = "Backpack saved!"
	msgInvalid        = "Error: Invalid backpack!"
	msgStackedDoubler = "The doubler only works on a single backpack!"
	msgMaxCapacity    = "This backpack is already at maximum capacity!"
	msgUpgraded       = "✦ Backpack upgraded to 54 slots! ✦"
	msgNested         = "You cannot put a backpack inside another backpack!"
)

// Bridge turns host events into backpack operations.
type Bridge struct {
	svc *ops.Service
	log *slog.Logger
}

// NewBridge returns a bridge over the given service.
func NewBridge(svc *ops.Service, log *slog.Logger) *Bridge {
	return &Bridge{svc: svc, log: log}
}

// InteractResult tells the host what to do after a right-click.
type InteractResult struct {
	Handled bool             // consume the event instead of default behavior
	Session *session.Session // non-nil when a container view should be shown
	Message string
}

// HandleInteract processes a right-click with the held item. Items without
// a container marker are left to the host's default behavior.
func (b *Bridge) HandleInteract(accountID string, held *item.Stack) InteractResult {
	if !item.IsContainer(held) {
		return InteractResult{}
	}

	out, err := b.svc.Open(ops.OpenInput{AccountID: accountID, Item: held})
	if err != nil {
		b.log.Warn("backpack open rejected", "account", accountID, "error", err)
		return InteractResult{Handled: true, Message: msgInvalid}
	}

	return InteractResult{Handled: true, Session: out.Session, Message: msgOpened}
}

// HandleOpenPersonal opens the account's personal backpack, the one with
// no item behind it. Hosts wire this to whatever trigger they like: a
// command, a keybind, a menu button.
func (b *Bridge) HandleOpenPersonal(accountID string) InteractResult {
	out, err := b.svc.OpenPersonal(ops.OpenPersonalInput{AccountID: accountID})
	if err != nil {
		b.log.Warn("personal backpack open rejected", "account", accountID, "error", err)
		return InteractResult{Handled: true, Message: msgInvalid}
	}
	return InteractResult{Handled: true, Session: out.Session, Message: msgOpened}
}

// ClickResult tells the host what to do after an inventory click. Item
// mutations (the upgraded marker, the consumed doubler) happen in place
// on the stacks the host passed in.
type ClickResult struct {
	Cancel  bool
	Message string
}

// HandleClick processes a click while an inventory is on screen. cursor is
// the stack on the player's cursor, clicked the stack in the clicked slot;
// destIsView is true when the moved item's destination is an open container
// view, whether placed there directly or shift-moved in from the player
// inventory.
func (b *Bridge) HandleClick(accountID string, cursor, clicked *item.Stack, destIsView bool) ClickResult {
	// A doubler dropped onto a backpack applies there and then, wherever
	// the backpack sits.
	if item.IsUpgradeToken(cursor) && item.IsContainer(clicked) {
		return b.applyDoubler(accountID, cursor, clicked)
	}

	// Whatever is being moved: a held stack places, an empty cursor
	// shift-moves the clicked stack.
	moving := cursor
	if moving.IsEmpty() {
		moving = clicked
	}
	if destIsView && item.IsContainer(moving) && !b.svc.NestingAllowed() {
		return ClickResult{Cancel: true, Message: msgNested}
	}

	return ClickResult{}
}

func (b *Bridge) applyDoubler(accountID string, cursor, clicked *item.Stack) ClickResult {
	_, err := b.svc.Upgrade(ops.UpgradeInput{Item: clicked})
	switch {
	case errors.Is(err, errors.ErrStackedBackpack):
		return ClickResult{Cancel: true, Message: msgStackedDoubler}
	case errors.Is(err, errors.ErrAlreadyUpgraded):
		return ClickResult{Cancel: true, Message: msgMaxCapacity}
	case errors.Is(err, errors.ErrCorruptMarker):
		return ClickResult{Cancel: true, Message: msgInvalid}
	case err != nil:
		b.log.Warn("doubler rejected", "account", accountID, "error", err)
		return ClickResult{Cancel: true}
	}

	// One doubler is spent per upgrade; the rest stay on the cursor.
	cursor.Count--
	return ClickResult{Cancel: true, Message: msgUpgraded}
}

// HandleViewClose processes the player closing a container view. The
// returned message is empty when nothing was open.
func (b *Bridge) HandleViewClose(accountID string) string {
	if out := b.svc.Close(ops.CloseInput{AccountID: accountID}); out.Saved {
		return msgSaved
	}
	return ""
}

// HandleQuit flushes the player's open session on disconnect. The view
// closes with the connection, so this mirrors HandleViewClose without
// anyone left to message.
func (b *Bridge) HandleQuit(accountID string) {
	b.svc.Close(ops.CloseInput{AccountID: accountID})
}
