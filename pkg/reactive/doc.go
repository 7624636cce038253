// Package reactive provides the dependency-tracking core of reactree.
//
// State properties are wrapped in Cells. Reading a Cell while a Watcher is
// evaluating registers the Cell's Dep with that Watcher; writing a Cell
// synchronously re-runs every registered Watcher.
//
// # Core Types
//
// Observe turns a plain record into a State whose keys are Cells:
//
//	t := reactive.NewTracker()
//	state := reactive.Observe(t, map[string]any{"count": 0})
//
// Watcher is a derived computation plus a change callback:
//
//	w := reactive.NewWatcher(t, nil,
//	    func() any { return state.Get("count") },
//	    func(newVal, oldVal any) error {
//	        fmt.Println(oldVal, "->", newVal)
//	        return nil
//	    },
//	)
//	state.Set("count", 1) // prints 0 -> 1 before Set returns
//
// # Equality
//
// Writes are suppressed when the new value is loosely equal to the current
// one (LooseEqual: 1, 1.0 and "1" are all equal). A Watcher fires its
// callback only when its recomputed value is strictly unequal to the cached
// one (StrictEqual: same type and same value, or the same reference). The
// two checks are deliberately different.
//
// # Tracking
//
// The Tracker holds a stack of evaluating Watchers. Reads register with the
// top of the stack only, so a getter may evaluate another Watcher without
// corrupting its own dependency set.
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent use. A State, its Cells and
// the Watchers reading them must be driven from one goroutine at a time.
package reactive
