package ops

import (
	"testing"

	"github.com/supafloof/backpacks/internal/item"
)

func TestStats_FreshService(t *testing.T) {
	svc := newTestService(t)

	out, err := svc.Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if out.Containers != 0 || out.OpenSessions != 0 || out.RecordFiles != 0 {
		t.Errorf("Stats() = %+v, want all zero", out)
	}
	if out.DataDir != svc.store.Dir() {
		t.Errorf("DataDir = %q, want %q", out.DataDir, svc.store.Dir())
	}
}

func TestStats_CountsEverything(t *testing.T) {
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
	opened.Session.View[1] = &item.Stack{Material: "dirt", Count: 1}
	svc.Close(CloseInput{AccountID: "steve"})

	if _, err := svc.OpenPersonal(OpenPersonalInput{AccountID: "alex"}); err != nil {
		t.Fatalf("OpenPersonal() error = %v", err)
	}

	out, err := svc.Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if out.Containers != 2 {
		t.Errorf("Containers = %d, want 2", out.Containers)
	}
	if out.OpenSessions != 1 {
		t.Errorf("OpenSessions = %d, want 1", out.OpenSessions)
	}
	if out.OccupiedSlots != 2 {
		t.Errorf("OccupiedSlots = %d, want 2", out.OccupiedSlots)
	}
	if out.RecordFiles != 1 {
		t.Errorf("RecordFiles = %d, want 1 (personal backpack not yet closed)", out.RecordFiles)
	}
	if out.DiskBytes <= 0 {
		t.Errorf("DiskBytes = %d, want > 0", out.DiskBytes)
	}
}
