package ops

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/supafloof/backpacks/internal/errors"
	"github.com/supafloof/backpacks/internal/item"
)

// TestFullWorkflow exercises the complete backpack lifecycle:
// mint → open → stash → close → restart → reopen → upgrade → purge
func TestFullWorkflow(t *testing.T) {
	svc := newTestService(t)

	// 1. Mint a backpack
	minted, err := svc.Mint(MintInput{})
	require.NoError(t, err)
	require.NotEmpty(t, minted.ID)
	require.Equal(t, item.BaseCapacity, minted.Capacity)
	id := minted.ID

	// 2. Open it and stash some loot
	opened, err := svc.Open(OpenInput{AccountID: "steve", Item: minted.Item})
	require.NoError(t, err)
	require.Equal(t, id, opened.Session.Container)
	opened.Session.View[0] = &item.Stack{Material: "diamond", Count: 5}
	opened.Session.View[26] = &item.Stack{Material: "cobblestone", Count: 64}

	// 3. Close - contents hit the registry and the disk
	closed := svc.Close(CloseInput{AccountID: "steve"})
	require.True(t, closed.Saved)
	require.Equal(t, 2, closed.Occupied)
	require.True(t, svc.store.Exists(id))

	// 4. Restart - a fresh process sees the same contents
	svc = restart(t, svc)
	ins, err := svc.Inspect(InspectInput{Query: id})
	require.NoError(t, err)
	require.Equal(t, 2, ins.Occupied)

	// 5. Hand the item to another player - same container follows it
	reopened, err := svc.Open(OpenInput{AccountID: "alex", Item: minted.Item})
	require.NoError(t, err)
	require.NotNil(t, reopened.Session.View[0])
	require.Equal(t, 5, reopened.Session.View[0].Count)
	svc.Close(CloseInput{AccountID: "alex"})

	// 6. Upgrade the item - same identifier, double the room
	up, err := svc.Upgrade(UpgradeInput{Item: minted.Item})
	require.NoError(t, err)
	require.Equal(t, item.DoubledCapacity, up.Capacity)

	bigger, err := svc.Open(OpenInput{AccountID: "steve", Item: minted.Item})
	require.NoError(t, err)
	require.Equal(t, item.DoubledCapacity, bigger.Session.Capacity)
	require.Equal(t, 5, bigger.Session.View[0].Count)
	bigger.Session.View[53] = &item.Stack{Material: "emerald", Count: 9}
	svc.Close(CloseInput{AccountID: "steve"})

	ins, err = svc.Inspect(InspectInput{Query: id})
	require.NoError(t, err)
	require.Equal(t, 3, ins.Occupied)

	// 7. A second upgrade is refused
	_, err = svc.Upgrade(UpgradeInput{Item: minted.Item})
	require.Error(t, err)
	var bErr *errors.BackpackError
	require.ErrorAs(t, err, &bErr)
	require.Equal(t, errors.ErrAlreadyUpgraded, bErr.Code)

	// 8. Empty the backpack out and purge its record
	final, err := svc.Open(OpenInput{AccountID: "steve", Item: minted.Item})
	require.NoError(t, err)
	clear(final.Session.View)
	svc.Close(CloseInput{AccountID: "steve"})

	purged, err := svc.Purge(PurgeInput{})
	require.NoError(t, err)
	require.Equal(t, 1, purged.Count)
	require.Equal(t, id, purged.Purged[0])

	// 9. Inspect - verify the record is gone
	_, err = svc.Inspect(InspectInput{Query: id})
	require.Error(t, err)
	require.ErrorAs(t, err, &bErr)
	require.Equal(t, errors.ErrNotFound, bErr.Code)
}

// TestDuplicatedItemWorkflow covers the divergence that item duplication
// creates: two physical items, one identifier, different capacities.
func TestDuplicatedItemWorkflow(t *testing.T) {
	svc := newTestService(t)

	// 1. Mint and upgrade the original
	minted, err := svc.Mint(MintInput{})
	require.NoError(t, err)
	// A duplicate made before the upgrade keeps the base capacity.
	duplicate := minted.Item.Clone()

	_, err = svc.Upgrade(UpgradeInput{Item: minted.Item})
	require.NoError(t, err)

	// 2. Fill a high slot through the upgraded item
	opened, err := svc.Open(OpenInput{AccountID: "steve", Item: minted.Item})
	require.NoError(t, err)
	opened.Session.View[40] = &item.Stack{Material: "netherite_ingot", Count: 1}
	opened.Session.View[3] = &item.Stack{Material: "bread", Count: 7}
	svc.Close(CloseInput{AccountID: "steve"})

	// 3. The base-capacity duplicate opens the same container but only
	// sees the slots its view can hold
	small, err := svc.Open(OpenInput{AccountID: "alex", Item: duplicate})
	require.NoError(t, err)
	require.Equal(t, item.BaseCapacity, small.Session.Capacity)
	require.Nil(t, small.Session.View[40])
	require.NotNil(t, small.Session.View[3])

	// 4. Closing the small view replaces the whole record; the hidden
	// slot is gone for good
	svc.Close(CloseInput{AccountID: "alex"})

	ins, err := svc.Inspect(InspectInput{Query: minted.ID})
	require.NoError(t, err)
	require.Equal(t, 1, ins.Occupied)
	require.Equal(t, 3, ins.Slots[0].Slot)
}
