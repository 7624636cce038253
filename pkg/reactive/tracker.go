package reactive

// Hooks observe the reactive cascade. Any field may be nil.
type Hooks struct {
	// OnNotify is called when a Dep starts notifying its subscribers.
	OnNotify func(depID uint64, subscribers int)

	// OnRecompute is called after a Watcher re-evaluated its getter.
	// changed reports whether the callback was due to fire.
	OnRecompute func(watcherID uint64, changed bool)
}

// Tracker is the tracking context threaded through every Cell read.
// It keeps a stack of evaluating Watchers; a nil entry marks an untracked
// region.
type Tracker struct {
	stack []*Watcher
	hooks Hooks
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithHooks installs observation hooks on the Tracker.
func WithHooks(h Hooks) TrackerOption {
	return func(t *Tracker) {
		t.hooks = h
	}
}

// NewTracker creates an empty tracking context.
func NewTracker(opts ...TrackerOption) *Tracker {
	t := &Tracker{}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewDep creates a Dep whose notifications are reported to the Tracker's hooks.
func (t *Tracker) NewDep() *Dep {
	return &Dep{id: nextID(), tracker: t}
}

// Active returns the Watcher currently collecting dependencies, or nil.
func (t *Tracker) Active() *Watcher {
	if len(t.stack) == 0 {
		return nil
	}
	return t.stack[len(t.stack)-1]
}

// Depth returns the number of nested evaluations in progress.
func (t *Tracker) Depth() int {
	return len(t.stack)
}

// Track runs fn with w as the active Watcher and returns fn's result.
// The previous active Watcher is restored even if fn panics.
func (t *Tracker) Track(w *Watcher, fn func() any) any {
	t.push(w)
	defer t.pop()
	return fn()
}

// Untracked runs fn with dependency collection switched off.
func (t *Tracker) Untracked(fn func()) {
	t.push(nil)
	defer t.pop()
	fn()
}

func (t *Tracker) push(w *Watcher) {
	t.stack = append(t.stack, w)
}

func (t *Tracker) pop() {
	t.stack[len(t.stack)-1] = nil
	t.stack = t.stack[:len(t.stack)-1]
}
