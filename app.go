package reactree

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/reactree/internal/errors"
	"github.com/vango-dev/reactree/pkg/dom"
	"github.com/vango-dev/reactree/pkg/reactive"
	"github.com/vango-dev/reactree/pkg/vdom"
)

// App is the host controller: observed data, one render Watcher and the
// live tree it patches.
type App struct {
	opts   Options
	ctx    context.Context
	logger *slog.Logger
	tracer trace.Tracer

	tracker  *reactive.Tracker
	state    *reactive.State
	host     vdom.Host
	renderer *vdom.Renderer
	watcher  *reactive.Watcher

	// el is the current mount reference: the raw mount element until the
	// first update, then the root of the rendered tree.
	el      vdom.Handle
	vnode   *vdom.VNode
	updates int

	mu        sync.Mutex
	destroyed bool
}

// New observes opts.Data and mounts the first render.
func New(opts Options) (*App, error) {
	opts.applyDefaults()

	a := &App{
		opts:    opts,
		ctx:     opts.Context,
		logger:  opts.Logger,
		tracer:  otel.Tracer(opts.TracerName),
		tracker: reactive.NewTracker(reactive.WithHooks(opts.ReactiveHooks)),
		host:    opts.Host,
	}

	if a.host == nil {
		doc := dom.NewDocument()
		if _, err := doc.NewMountPoint("div", opts.El); err != nil {
			return nil, err
		}
		a.host = doc
	}
	a.renderer = vdom.NewRenderer(a.host,
		vdom.WithChildOrder(opts.ChildOrder),
		vdom.WithHooks(opts.RenderHooks),
	)

	a.initData()
	if err := a.mount(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) initData() {
	a.state = reactive.Observe(a.tracker, a.opts.Data)
	a.logger.Debug("state observed", "keys", a.state.Keys())
}

// mount resolves the mount element, creates the render Watcher and performs
// the first update against the raw element.
func (a *App) mount() error {
	if a.opts.Render == nil {
		return errors.New("V001")
	}
	el, err := a.host.GetElementByID(a.opts.El)
	if err != nil {
		return err
	}
	a.el = el

	a.watcher = reactive.NewWatcher(a.tracker, a, a.render, a.onRender)
	if err := a.update(treeOf(a.watcher.Value())); err != nil {
		return err
	}

	a.logger.Info("mounted",
		"el", a.opts.El,
		"root", a.vnode.Tag,
		"deps", len(a.watcher.DepIDs()),
	)
	return nil
}

func (a *App) render() any {
	return a.opts.Render(a)
}

func (a *App) onRender(newVal, _ any) error {
	return a.update(treeOf(newVal))
}

// update patches the previous tree, or the raw mount element the first
// time, and stores the resulting element as the mount reference.
func (a *App) update(tree *vdom.VNode) error {
	if tree == nil {
		return errors.New("V005")
	}

	_, span := a.tracer.Start(a.ctx, "reactree.update",
		trace.WithAttributes(
			attribute.Int("reactree.update", a.updates+1),
			attribute.String("reactree.root", tree.Tag),
			attribute.Bool("reactree.mount", a.vnode == nil),
		),
	)
	defer span.End()

	var (
		el  vdom.Handle
		err error
	)
	if a.vnode == nil {
		el, err = a.renderer.Mount(a.el, tree)
	} else {
		el, err = a.renderer.Patch(a.vnode, tree)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		a.logger.Error("update failed", "update", a.updates+1, "error", err)
		return err
	}

	a.vnode = tree
	a.el = el
	a.updates++
	span.SetStatus(codes.Ok, "")
	a.logger.Debug("updated", "update", a.updates, "root", tree.String())
	return nil
}

func treeOf(v any) *vdom.VNode {
	tree, _ := v.(*vdom.VNode)
	return tree
}

// Get reads a top-level key. Inside Render the read is tracked.
func (a *App) Get(key string) any {
	return a.state.Get(key)
}

// Set writes a top-level key. A change the render Watcher depends on
// re-renders and patches before Set returns; the first failure in that
// cascade is returned.
func (a *App) Set(key string, v any) error {
	return a.state.Set(key, v)
}

// Lookup reads a dotted path such as "user.name". Inside Render every cell
// on the path is tracked.
func (a *App) Lookup(path string) (any, error) {
	return a.state.Lookup(path)
}

// Assign writes a dotted path.
func (a *App) Assign(path string, v any) error {
	return a.state.Assign(path, v)
}

// State returns the observed data.
func (a *App) State() *reactive.State {
	return a.state
}

// Tracker returns the tracking context shared by the state and the Watcher.
func (a *App) Tracker() *reactive.Tracker {
	return a.tracker
}

// Logger returns the App's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Host returns the live tree.
func (a *App) Host() vdom.Host {
	return a.host
}

// Document returns the in-memory host, or nil when a different Host was
// supplied.
func (a *App) Document() *dom.Document {
	doc, _ := a.host.(*dom.Document)
	return doc
}

// VNode returns the most recently patched tree.
func (a *App) VNode() *vdom.VNode {
	return a.vnode
}

// El returns the current mount reference.
func (a *App) El() vdom.Handle {
	return a.el
}

// Watcher returns the render Watcher.
func (a *App) Watcher() *reactive.Watcher {
	return a.watcher
}

// Updates returns the number of successful updates, the first mount
// included.
func (a *App) Updates() int {
	return a.updates
}

// HTML serializes the mounted tree when the host is a dom.Document.
func (a *App) HTML() string {
	n, ok := a.el.(*dom.Node)
	if !ok {
		return ""
	}
	return dom.OuterHTML(n)
}

// Dispatch runs fn with exclusive access to the App. Goroutines other than
// the one that created the App must mutate it through Dispatch.
func (a *App) Dispatch(fn func(*App) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return fn(a)
}

// Destroy tears the render Watcher down. Later writes update the state but
// no longer touch the live tree. Destroy takes the Dispatch lock, so it must
// not be called from inside Dispatch.
func (a *App) Destroy() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.destroyed {
		return
	}
	a.destroyed = true
	if a.watcher != nil {
		a.watcher.Teardown()
	}
	a.logger.Info("destroyed", "el", a.opts.El, "updates", a.updates)
}

// Destroyed reports whether Destroy was called.
func (a *App) Destroyed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.destroyed
}
