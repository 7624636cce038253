// Package reactree binds the reactive state engine to the incremental tree
// renderer.
//
// An App observes its data, resolves a mount element, and keeps one render
// Watcher alive. Every write that changes a value the render function read
// re-renders and patches the live tree before the write returns:
//
//	app, err := reactree.New(reactree.Options{
//	    Data: map[string]any{"count": 0},
//	    El:   "app",
//	    Render: func(a *reactree.App) *vdom.VNode {
//	        return vdom.CreateElement("span", nil, fmt.Sprint(a.Get("count")))
//	    },
//	})
//	if err != nil {
//	    return err
//	}
//	_ = app.Set("count", 1) // the span now reads "1"
//
// Without a Host the App creates an in-memory dom.Document holding a
// <div id=El> mount point.
//
// An App is single-threaded. Callers on other goroutines go through
// Dispatch, which serializes access.
package reactree
