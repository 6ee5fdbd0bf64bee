// Package view holds the state machines behind each listing screen: fetch
// phases, busy flags for mutating operations, and multi-select sets for bulk
// actions. Controllers are event-driven and single-threaded; all methods must
// be called from the same goroutine (the UI event loop), with network work
// running elsewhere and reporting back through Complete* calls.
package view

// Phase is the fetch lifecycle of a collection.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// Busy names the mutating operation currently in flight, if any. At most one
// mutation runs per controller at a time.
type Busy int

const (
	BusyNone Busy = iota
	BusyUploading
	BusyGenerating
	BusyDeleting
)

func (b Busy) String() string {
	switch b {
	case BusyUploading:
		return "uploading"
	case BusyGenerating:
		return "generating"
	case BusyDeleting:
		return "deleting"
	default:
		return ""
	}
}

// Collection tracks one listing view of entities with string ids.
type Collection[T any] struct {
	id func(T) string

	phase    Phase
	busy     Busy
	items    []T
	loaded   bool
	errMsg   string
	warnMsg  string
	selected map[string]struct{}
	fetchSeq uint64
	closed   bool
}

// NewCollection creates an idle collection; id extracts an entity's id.
func NewCollection[T any](id func(T) string) *Collection[T] {
	return &Collection[T]{
		id:       id,
		phase:    PhaseIdle,
		selected: make(map[string]struct{}),
	}
}

// Phase returns the current fetch phase.
func (c *Collection[T]) Phase() Phase { return c.phase }

// Busy returns the mutating operation in flight.
func (c *Collection[T]) Busy() Busy { return c.busy }

// Items returns the last successfully loaded collection. It stays available
// through later fetch errors so the screen never goes blank.
func (c *Collection[T]) Items() []T { return c.items }

// Err returns the user-visible error message, empty when none.
func (c *Collection[T]) Err() string { return c.errMsg }

// Warning returns a non-fatal user-visible notice (e.g. a partial delete).
func (c *Collection[T]) Warning() string { return c.warnMsg }

// SetWarning records a non-fatal notice for the next render.
func (c *Collection[T]) SetWarning(msg string) { c.warnMsg = msg }

// ClearWarning drops the notice.
func (c *Collection[T]) ClearWarning() { c.warnMsg = "" }

// BeginFetch moves to loading and returns the fence token the completion must
// present. Issuing a new fetch invalidates every earlier token, so a slow old
// response can never clobber a newer one.
func (c *Collection[T]) BeginFetch() uint64 {
	c.fetchSeq++
	if !c.closed {
		c.phase = PhaseLoading
		c.errMsg = ""
	}
	return c.fetchSeq
}

// CompleteFetch applies a fetch result. Stale tokens and completions arriving
// after Close are discarded; the return value reports whether the result was
// applied. errMsg empty means success.
func (c *Collection[T]) CompleteFetch(token uint64, items []T, errMsg string) bool {
	if c.closed || token != c.fetchSeq {
		return false
	}

	if errMsg != "" {
		c.phase = PhaseError
		c.errMsg = errMsg
		// previously loaded items stay visible
		return true
	}

	c.phase = PhaseReady
	c.errMsg = ""
	c.items = items
	c.loaded = true
	return true
}

// HasLoaded reports whether at least one fetch ever succeeded.
func (c *Collection[T]) HasLoaded() bool { return c.loaded }

// BeginMutation claims the busy flag for a mutating operation. It returns
// false when another mutation is already in flight or the view is torn down;
// the caller must not issue the operation in that case.
func (c *Collection[T]) BeginMutation(b Busy) bool {
	if c.closed || c.busy != BusyNone || b == BusyNone {
		return false
	}
	c.busy = b
	return true
}

// EndMutation releases the busy flag.
func (c *Collection[T]) EndMutation() { c.busy = BusyNone }

// Toggle flips selection for id. Ids not present in the current collection
// cannot be selected.
func (c *Collection[T]) Toggle(id string) {
	if !c.contains(id) {
		return
	}
	if _, ok := c.selected[id]; ok {
		delete(c.selected, id)
	} else {
		c.selected[id] = struct{}{}
	}
}

// IsSelected reports selection by membership test against the current
// collection, so ids that fell out on a re-fetch read as unselected.
func (c *Collection[T]) IsSelected(id string) bool {
	if _, ok := c.selected[id]; !ok {
		return false
	}
	return c.contains(id)
}

// Selected returns the selected ids still present in the collection, in
// collection order.
func (c *Collection[T]) Selected() []string {
	var ids []string
	for _, item := range c.items {
		id := c.id(item)
		if _, ok := c.selected[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// SelectionCount returns the number of effectively selected entities.
func (c *Collection[T]) SelectionCount() int { return len(c.Selected()) }

// ClearSelection drops the whole selection, typically after a successful
// bulk delete.
func (c *Collection[T]) ClearSelection() {
	c.selected = make(map[string]struct{})
}

// Close tears the controller down: late completions are discarded and no new
// fetch or mutation starts.
func (c *Collection[T]) Close() { c.closed = true }

// Closed reports whether the controller was torn down.
func (c *Collection[T]) Closed() bool { return c.closed }

func (c *Collection[T]) contains(id string) bool {
	for _, item := range c.items {
		if c.id(item) == id {
			return true
		}
	}
	return false
}
