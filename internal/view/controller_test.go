package view

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type entity struct {
	ID string
}

func newController(items ...entity) *Collection[entity] {
	c := NewCollection(func(e entity) string { return e.ID })
	token := c.BeginFetch()
	c.CompleteFetch(token, items, "")
	return c
}

func TestFetchLifecycle(t *testing.T) {
	c := NewCollection(func(e entity) string { return e.ID })
	if c.Phase() != PhaseIdle {
		t.Fatalf("initial phase = %v", c.Phase())
	}

	token := c.BeginFetch()
	if c.Phase() != PhaseLoading {
		t.Fatalf("phase after BeginFetch = %v", c.Phase())
	}

	if !c.CompleteFetch(token, []entity{{ID: "p1"}}, "") {
		t.Fatal("completion with current token must apply")
	}
	if c.Phase() != PhaseReady {
		t.Fatalf("phase after success = %v", c.Phase())
	}
	if len(c.Items()) != 1 {
		t.Fatalf("items = %v", c.Items())
	}
}

func TestStaleFetchDiscarded(t *testing.T) {
	c := NewCollection(func(e entity) string { return e.ID })

	first := c.BeginFetch()
	second := c.BeginFetch()

	if !c.CompleteFetch(second, []entity{{ID: "new"}}, "") {
		t.Fatal("newest fetch must apply")
	}
	if c.CompleteFetch(first, []entity{{ID: "old"}}, "") {
		t.Fatal("stale fetch must be discarded")
	}

	want := []entity{{ID: "new"}}
	if diff := cmp.Diff(want, c.Items()); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchErrorKeepsLoadedItems(t *testing.T) {
	c := newController(entity{ID: "p1"}, entity{ID: "p2"})

	token := c.BeginFetch()
	c.CompleteFetch(token, nil, "Failed to load album. Please try again later.")

	if c.Phase() != PhaseError {
		t.Fatalf("phase = %v, want error", c.Phase())
	}
	if c.Err() == "" {
		t.Fatal("expected user-visible error message")
	}
	if len(c.Items()) != 2 {
		t.Fatalf("previously loaded items must survive an error, got %v", c.Items())
	}
}

func TestSelectionDrawnFromCollectionOnly(t *testing.T) {
	c := newController(entity{ID: "p1"}, entity{ID: "p2"})

	c.Toggle("p1")
	c.Toggle("ghost")

	if !c.IsSelected("p1") {
		t.Fatal("p1 should be selected")
	}
	if c.IsSelected("ghost") {
		t.Fatal("unknown id must not be selectable")
	}
	if got := c.Selected(); len(got) != 1 || got[0] != "p1" {
		t.Fatalf("Selected() = %v", got)
	}
}

func TestSelectionDroppedWhenIdDisappears(t *testing.T) {
	c := newController(entity{ID: "p1"}, entity{ID: "p2"})
	c.Toggle("p2")

	// p2 was deleted elsewhere; re-fetch no longer includes it.
	token := c.BeginFetch()
	c.CompleteFetch(token, []entity{{ID: "p1"}}, "")

	if c.IsSelected("p2") {
		t.Fatal("id absent from the collection must read unselected")
	}
	if c.SelectionCount() != 0 {
		t.Fatalf("SelectionCount() = %d, want 0", c.SelectionCount())
	}
}

func TestBusyGatesSecondMutation(t *testing.T) {
	c := newController(entity{ID: "p1"})

	if !c.BeginMutation(BusyDeleting) {
		t.Fatal("first mutation must claim the busy flag")
	}
	if c.BeginMutation(BusyUploading) {
		t.Fatal("second mutation must be gated while one is in flight")
	}

	c.EndMutation()
	if !c.BeginMutation(BusyUploading) {
		t.Fatal("busy flag must be reusable after EndMutation")
	}
}

func TestEmptySelectionDeleteIsNoOp(t *testing.T) {
	c := newController(entity{ID: "p1"})

	// The delete flow starts with the selection; nothing selected means no
	// confirmation, no busy flag, no network call.
	if c.SelectionCount() != 0 {
		t.Fatalf("SelectionCount() = %d", c.SelectionCount())
	}
	if c.Busy() != BusyNone {
		t.Fatalf("busy = %v", c.Busy())
	}
}

func TestPartialDeleteWarningAndClearedSelection(t *testing.T) {
	c := newController(entity{ID: "p1"}, entity{ID: "p2"})
	c.Toggle("p1")
	c.Toggle("p2")

	if !c.BeginMutation(BusyDeleting) {
		t.Fatal("delete must claim the busy flag")
	}

	// Backend reported p2 as not deleted.
	c.SetWarning("Some photos were not deleted: p2")
	c.ClearSelection()
	c.EndMutation()

	token := c.BeginFetch()
	c.CompleteFetch(token, []entity{{ID: "p2"}}, "")

	if c.SelectionCount() != 0 {
		t.Fatal("selection must be cleared after bulk delete")
	}
	if c.Warning() == "" {
		t.Fatal("partial failure must surface as a warning")
	}
	if c.Phase() != PhaseReady {
		t.Fatalf("phase = %v, want ready", c.Phase())
	}
}

func TestCloseSuppressesLateCompletions(t *testing.T) {
	c := newController(entity{ID: "p1"})

	token := c.BeginFetch()
	c.Close()

	if c.CompleteFetch(token, []entity{{ID: "p2"}}, "") {
		t.Fatal("completion after Close must be discarded")
	}
	if c.BeginMutation(BusyGenerating) {
		t.Fatal("mutations must not start on a closed controller")
	}
	if got := c.Items(); len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("items changed after Close: %v", got)
	}
}
