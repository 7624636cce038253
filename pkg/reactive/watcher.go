package reactive

import (
	"sort"

	"github.com/vango-dev/reactree/internal/errors"
)

// Watcher is a derived computation plus a change callback. It records the
// Deps its getter read and re-runs whenever one of them notifies.
type Watcher struct {
	id      uint64
	tracker *Tracker
	owner   any

	getter   func() any
	onChange func(newVal, oldVal any) error

	depIDs map[uint64]struct{}
	deps   []*Dep

	value any

	// torn is set by Teardown; Update is a no-op afterwards.
	torn bool
}

// NewWatcher creates a Watcher and evaluates its getter once to collect
// dependencies and cache the initial value. onChange is not called for the
// initial evaluation and may be nil.
func NewWatcher(t *Tracker, owner any, getter func() any, onChange func(newVal, oldVal any) error) *Watcher {
	if t == nil {
		t = NewTracker()
	}
	w := &Watcher{
		id:       nextID(),
		tracker:  t,
		owner:    owner,
		getter:   getter,
		onChange: onChange,
		depIDs:   make(map[uint64]struct{}),
	}
	w.value = w.get()
	return w
}

// get evaluates the getter with w as the active Watcher.
func (w *Watcher) get() any {
	return w.tracker.Track(w, w.getter)
}

// Update re-evaluates the getter. If the result is strictly unequal to the
// cached value it replaces the cache and calls onChange(new, old).
// Implements Subscriber.
func (w *Watcher) Update() error {
	if w.torn {
		return nil
	}

	value := w.get()
	changed := !StrictEqual(w.value, value)

	if w.tracker.hooks.OnRecompute != nil {
		w.tracker.hooks.OnRecompute(w.id, changed)
	}

	if !changed {
		return nil
	}

	old := w.value
	w.value = value

	if w.onChange == nil {
		return nil
	}
	if err := w.onChange(value, old); err != nil {
		return errors.FromError(err, "R004")
	}
	return nil
}

// AddDep registers w with d unless d was already seen by w.
func (w *Watcher) AddDep(d *Dep) {
	if _, ok := w.depIDs[d.id]; ok {
		return
	}
	w.depIDs[d.id] = struct{}{}
	w.deps = append(w.deps, d)
	d.AddSub(w)
}

// Teardown unsubscribes w from every Dep it registered with. Later calls to
// Update do nothing.
func (w *Watcher) Teardown() {
	for _, d := range w.deps {
		d.removeSub(w)
	}
	w.deps = nil
	w.depIDs = make(map[uint64]struct{})
	w.torn = true
}

// ID returns the unique identifier for this Watcher. Implements Subscriber.
func (w *Watcher) ID() uint64 {
	return w.id
}

// Value returns the cached value from the last evaluation.
func (w *Watcher) Value() any {
	return w.value
}

// Owner returns the context value the Watcher was created for.
func (w *Watcher) Owner() any {
	return w.owner
}

// Active reports whether the Watcher has not been torn down.
func (w *Watcher) Active() bool {
	return !w.torn
}

// DepIDs returns the ids of the Deps w is registered with, ascending.
func (w *Watcher) DepIDs() []uint64 {
	ids := make([]uint64, 0, len(w.depIDs))
	for id := range w.depIDs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
