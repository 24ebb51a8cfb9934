package ops

import (
	"testing"

	"github.com/supafloof/backpacks/internal/item"
)

func TestSessions_Empty(t *testing.T) {
	svc := newTestService(t)

	out := svc.Sessions()
	if out.Count != 0 || len(out.Items) != 0 {
		t.Errorf("Sessions() = %+v, want none", out)
	}
}

func TestSessions_SummarizesOpenViews(t *testing.T) {
	svc := newTestService(t)

	minted, err := svc.Mint(MintInput{})
	if err != nil {
		t.Fatalf("Mint() error = %v", err)
	}
	opened, err := svc.Open(OpenInput{AccountID: "steve", Item: minted.Item})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	opened.Session.View[0] = &item.Stack{Material: "stone", Count: 1}

	if _, err := svc.OpenPersonal(OpenPersonalInput{AccountID: "alex"}); err != nil {
		t.Fatalf("OpenPersonal() error = %v", err)
	}

	out := svc.Sessions()
	if out.Count != 2 {
		t.Fatalf("Count = %d, want 2", out.Count)
	}

	// Oldest first: steve opened before alex.
	first := out.Items[0]
	if first.AccountID != "steve" || first.Container != minted.ID {
		t.Errorf("Items[0] = %+v, want steve on the minted backpack", first)
	}
	if first.Occupied != 1 {
		t.Errorf("Items[0].Occupied = %d, want the live view's stone", first.Occupied)
	}
	if first.Capacity != item.BaseCapacity {
		t.Errorf("Items[0].Capacity = %d, want %d", first.Capacity, item.BaseCapacity)
	}
	if first.ID == "" || first.OpenedAt.IsZero() {
		t.Errorf("Items[0] missing id or timestamp: %+v", first)
	}

	if out.Items[1].AccountID != "alex" {
		t.Errorf("Items[1] = %+v, want alex second", out.Items[1])
	}

	svc.Close(CloseInput{AccountID: "steve"})
	if svc.Sessions().Count != 1 {
		t.Errorf("Count after close = %d, want 1", svc.Sessions().Count)
	}
}
