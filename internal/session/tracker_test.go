package session

import (
	"testing"

	"github.com/supafloof/backpacks/internal/item"
)

func TestTracker_OpenTruncatesToCapacity(t *testing.T) {
	tr := NewTracker()

	contents := item.SlotMap{
		0:  {Material: "stone", Count: 1},
		26: {Material: "dirt", Count: 1},
		27: {Material: "sand", Count: 1},
		53: {Material: "clay", Count: 1},
		-2: {Material: "ice", Count: 1},
	}

	sess := tr.Open("steve", "container-id", 27, contents)

	if sess.Capacity != 27 {
		t.Errorf("Capacity = %d, want 27", sess.Capacity)
	}
	if len(sess.View) != 2 {
		t.Fatalf("View len = %d, want 2", len(sess.View))
	}
	if sess.View[0] == nil || sess.View[26] == nil {
		t.Errorf("View = %v, want slots 0 and 26", sess.View)
	}
	if sess.View[27] != nil || sess.View[53] != nil {
		t.Error("indices past capacity survived Open")
	}
}

func TestTracker_OpenPopulatesSession(t *testing.T) {
	tr := NewTracker()

	sess := tr.Open("steve", "container-id", 54, nil)

	if sess.ID == "" {
		t.Error("ID is empty")
	}
	if sess.AccountID != "steve" {
		t.Errorf("AccountID = %q, want %q", sess.AccountID, "steve")
	}
	if sess.Container != "container-id" {
		t.Errorf("Container = %q, want %q", sess.Container, "container-id")
	}
	if sess.OpenedAt.IsZero() {
		t.Error("OpenedAt is zero")
	}
	if sess.View == nil {
		t.Error("View is nil, want empty map")
	}

	other := tr.Open("alex", "container-id", 27, nil)
	if other.ID == sess.ID {
		t.Error("two sessions share an ID")
	}
}

func TestTracker_GetAndRemove(t *testing.T) {
	tr := NewTracker()

	if _, ok := tr.Get("steve"); ok {
		t.Error("Get() ok = true on empty tracker")
	}

	opened := tr.Open("steve", "container-id", 27, nil)

	got, ok := tr.Get("steve")
	if !ok || got.ID != opened.ID {
		t.Fatalf("Get() = %v, %v, want the opened session", got, ok)
	}

	removed, ok := tr.Remove("steve")
	if !ok || removed.ID != opened.ID {
		t.Fatalf("Remove() = %v, %v, want the opened session", removed, ok)
	}

	// Second remove reports nothing open.
	if _, ok := tr.Remove("steve"); ok {
		t.Error("Remove() ok = true after session already removed")
	}
	if tr.Len() != 0 {
		t.Errorf("Len() = %d, want 0", tr.Len())
	}
}

func TestTracker_OpenReplacesPrior(t *testing.T) {
	tr := NewTracker()

	first := tr.Open("steve", "container-a", 27, nil)
	second := tr.Open("steve", "container-b", 27, nil)

	got, ok := tr.Get("steve")
	if !ok || got.ID != second.ID {
		t.Fatalf("Get() = %v, want the second session", got)
	}
	if got.ID == first.ID {
		t.Error("first session still tracked after replacement")
	}
	if tr.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tr.Len())
	}
}

func TestTracker_AllOldestFirst(t *testing.T) {
	tr := NewTracker()

	tr.Open("a", "container-a", 27, nil)
	tr.Open("b", "container-b", 27, nil)
	tr.Open("c", "container-c", 27, nil)

	all := tr.All()
	if len(all) != 3 {
		t.Fatalf("All() len = %d, want 3", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].OpenedAt.Before(all[i-1].OpenedAt) {
			t.Errorf("All() not ordered oldest first at index %d", i)
		}
	}
}
