package reactree_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/reactree"
	"github.com/vango-dev/reactree/internal/errors"
	"github.com/vango-dev/reactree/internal/logging"
	"github.com/vango-dev/reactree/pkg/dom"
	"github.com/vango-dev/reactree/pkg/reactive"
	"github.com/vango-dev/reactree/pkg/vdom"
)

func counter(a *reactree.App) *vdom.VNode {
	return vdom.CreateElement("span", nil, fmt.Sprint(a.Get("count")))
}

func newCounter(t *testing.T, opts reactree.Options) *reactree.App {
	t.Helper()
	if opts.Data == nil {
		opts.Data = map[string]any{"count": 0}
	}
	if opts.Render == nil {
		opts.Render = counter
	}
	if opts.El == "" {
		opts.El = "app"
	}
	opts.Logger = logging.NewNop()
	app, err := reactree.New(opts)
	require.NoError(t, err)
	return app
}

func TestCounterPatchesInPlace(t *testing.T) {
	app := newCounter(t, reactree.Options{})
	doc := app.Document()
	require.NotNil(t, doc)

	el := app.El().(*dom.Node)
	assert.Equal(t, "0", el.TextContent())
	assert.Equal(t, `<body><span>0</span></body>`, doc.HTML())
	assert.Equal(t, 1, app.Updates())

	doc.Drain()
	require.NoError(t, app.Set("count", 1))

	assert.Same(t, el, app.El().(*dom.Node))
	assert.Equal(t, "1", el.TextContent())
	assert.Equal(t, 2, app.Updates())
	for _, m := range doc.Mutations() {
		assert.NotEqual(t, dom.OpCreateElement, m.Op)
	}
}

func TestFirstMountReplacesRawElement(t *testing.T) {
	doc := dom.NewDocument()
	mp, err := doc.NewMountPoint("span", "app")
	require.NoError(t, err)

	app := newCounter(t, reactree.Options{Host: doc})

	assert.NotSame(t, mp, app.El().(*dom.Node))
	assert.Nil(t, mp.Parent)
	assert.Equal(t, "<span>0</span>", app.HTML())
}

func TestLooseEqualWriteIsSuppressed(t *testing.T) {
	app := newCounter(t, reactree.Options{})

	require.NoError(t, app.Set("count", "0"))
	assert.Equal(t, 1, app.Updates())
	assert.Equal(t, 0, app.Get("count"))
}

func TestUnreadKeyDoesNotRender(t *testing.T) {
	app := newCounter(t, reactree.Options{
		Data: map[string]any{"count": 0, "other": "x"},
	})

	require.NoError(t, app.Set("other", "y"))
	assert.Equal(t, 1, app.Updates())
}

func TestTagChangeReplacesRoot(t *testing.T) {
	app := newCounter(t, reactree.Options{
		Data: map[string]any{"list": false},
		Render: func(a *reactree.App) *vdom.VNode {
			if a.Get("list") == true {
				return vdom.Ul(vdom.Li("one"))
			}
			return vdom.P("none")
		},
	})
	first := app.El()

	require.NoError(t, app.Set("list", true))

	assert.NotEqual(t, first, app.El())
	assert.Equal(t, "<body><ul><li>one</li></ul></body>", app.Document().HTML())
	assert.Equal(t, "ul", app.VNode().Tag)
}

func TestNestedLookup(t *testing.T) {
	app := newCounter(t, reactree.Options{
		Data: map[string]any{"user": map[string]any{"name": "ada"}},
		Render: func(a *reactree.App) *vdom.VNode {
			name, _ := a.Lookup("user.name")
			return vdom.CreateElement("h1", nil, fmt.Sprint(name))
		},
	})

	require.NoError(t, app.Assign("user.name", "grace"))
	assert.Equal(t, "<h1>grace</h1>", app.HTML())
	assert.Equal(t, 2, app.Updates())
}

func TestMissingRender(t *testing.T) {
	_, err := reactree.New(reactree.Options{El: "app", Logger: logging.NewNop()})
	assert.Equal(t, "V001", errors.CodeOf(err))
}

func TestMissingMountElement(t *testing.T) {
	doc := dom.NewDocument()
	_, err := reactree.New(reactree.Options{
		El:     "nowhere",
		Host:   doc,
		Render: counter,
		Logger: logging.NewNop(),
	})
	assert.Equal(t, "V002", errors.CodeOf(err))
}

func TestRenderReturningNil(t *testing.T) {
	_, err := reactree.New(reactree.Options{
		El:     "app",
		Render: func(*reactree.App) *vdom.VNode { return nil },
		Logger: logging.NewNop(),
	})
	assert.Equal(t, "V005", errors.CodeOf(err))
}

func TestUnknownKeyWrite(t *testing.T) {
	app := newCounter(t, reactree.Options{})
	err := app.Set("missing", 1)
	assert.Equal(t, "R001", errors.CodeOf(err))
}

func TestDestroyStopsRendering(t *testing.T) {
	app := newCounter(t, reactree.Options{})
	app.Destroy()
	app.Destroy()

	require.NoError(t, app.Set("count", 5))
	assert.True(t, app.Destroyed())
	assert.False(t, app.Watcher().Active())
	assert.Equal(t, "<span>0</span>", app.HTML())
	assert.Equal(t, 5, app.Get("count"))
}

func TestDispatchSerializesWriters(t *testing.T) {
	app := newCounter(t, reactree.Options{})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = app.Dispatch(func(a *reactree.App) error {
				return a.Set("count", a.State().Peek("count").(int)+1)
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, app.Get("count"))
	assert.Equal(t, "<span>20</span>", app.HTML())
	assert.Equal(t, 21, app.Updates())
}

func TestHooksObserveCascade(t *testing.T) {
	var notifies, recomputes, patches int
	app := newCounter(t, reactree.Options{
		ReactiveHooks: reactive.Hooks{
			OnNotify:    func(uint64, int) { notifies++ },
			OnRecompute: func(uint64, bool) { recomputes++ },
		},
		RenderHooks: vdom.Hooks{
			OnPatch: func(*vdom.VNode) { patches++ },
		},
	})

	require.NoError(t, app.Set("count", 3))
	assert.Equal(t, 1, notifies)
	assert.Equal(t, 1, recomputes)
	assert.Equal(t, 2, patches)
}

func TestDeclaredChildOrder(t *testing.T) {
	render := func(*reactree.App) *vdom.VNode {
		return vdom.Div(vdom.Span("a"), vdom.Span("b"))
	}

	rev := newCounter(t, reactree.Options{Render: render})
	assert.Equal(t, "<div><span>b</span><span>a</span></div>", rev.HTML())

	decl := newCounter(t, reactree.Options{Render: render, ChildOrder: vdom.OrderDeclared})
	assert.Equal(t, "<div><span>a</span><span>b</span></div>", decl.HTML())
}
