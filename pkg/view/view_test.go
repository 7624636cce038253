package view_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/reactree"
	"github.com/vango-dev/reactree/internal/errors"
	"github.com/vango-dev/reactree/internal/logging"
	"github.com/vango-dev/reactree/pkg/view"
)

func mount(t *testing.T, spec view.Spec, data map[string]any) (*reactree.App, *view.View) {
	t.Helper()
	v, err := view.Compile(spec)
	require.NoError(t, err)

	app, err := reactree.New(reactree.Options{
		Data:   data,
		El:     "app",
		Render: v.RenderFunc(),
		Logger: logging.NewNop(),
	})
	require.NoError(t, err)
	return app, v
}

func TestCounterView(t *testing.T) {
	app, _ := mount(t, view.Spec{Tag: "span", Text: `{{get "count"}}`}, map[string]any{"count": 0})
	assert.Equal(t, "<span>0</span>", app.HTML())

	require.NoError(t, app.Set("count", 1))
	assert.Equal(t, "<span>1</span>", app.HTML())
	assert.Equal(t, 2, app.Updates())
}

func TestAttributesAndChildren(t *testing.T) {
	spec := view.Spec{
		Tag:   "div",
		Attrs: map[string]string{"class": "card {{get \"theme\"}}", "id": "root"},
		Children: []view.Spec{
			{Tag: "h1", Text: "Title"},
		},
	}
	app, _ := mount(t, spec, map[string]any{"theme": "dark"})

	assert.Equal(t, `<div class="card dark" id="root"><h1>Title</h1></div>`, app.HTML())
}

func TestTextLeafChild(t *testing.T) {
	spec := view.Spec{
		Tag:      "p",
		Children: []view.Spec{{Text: `hello {{get "user.name"}}`}},
	}
	app, _ := mount(t, spec, map[string]any{"user": map[string]any{"name": "ada"}})
	assert.Equal(t, "<p>hello ada</p>", app.HTML())

	require.NoError(t, app.Assign("user.name", "grace"))
	assert.Equal(t, "<p>hello grace</p>", app.HTML())
}

func TestPeekIsUntracked(t *testing.T) {
	spec := view.Spec{Tag: "span", Text: `{{get "a"}}-{{peek "b"}}`}
	app, _ := mount(t, spec, map[string]any{"a": "x", "b": "y"})

	require.NoError(t, app.Set("b", "z"))
	assert.Equal(t, "<span>x-y</span>", app.HTML())
	assert.Equal(t, 1, app.Updates())

	require.NoError(t, app.Set("a", "w"))
	assert.Equal(t, "<span>w-z</span>", app.HTML())
}

func TestRenderFailureIsRecorded(t *testing.T) {
	app, v := mount(t, view.Spec{Tag: "span", Text: `{{get "missing.path"}}`}, map[string]any{})

	assert.Equal(t, "V006", errors.CodeOf(v.Err()))
	assert.Equal(t, "<span></span>", app.HTML())
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		spec view.Spec
	}{
		{"empty", view.Spec{}},
		{"text with children", view.Spec{Tag: "p", Text: "x", Children: []view.Spec{{Text: "y"}}}},
		{"text leaf with attrs", view.Spec{Text: "x", Attrs: map[string]string{"id": "a"}}},
		{"bad template", view.Spec{Tag: "p", Text: "{{get"}},
		{"unknown func", view.Spec{Tag: "p", Text: `{{set "a"}}`}},
		{"nested", view.Spec{Tag: "div", Children: []view.Spec{{Tag: "p"}, {}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := view.Compile(tt.spec)
			assert.Equal(t, "C005", errors.CodeOf(err))
			assert.Error(t, view.Validate(tt.spec))
		})
	}
}

func TestMustCompilePanics(t *testing.T) {
	assert.Panics(t, func() { view.MustCompile(view.Spec{}) })
	assert.NotPanics(t, func() { view.MustCompile(view.Spec{Tag: "br"}) })
}

func TestIsZero(t *testing.T) {
	assert.True(t, view.Spec{}.IsZero())
	assert.False(t, view.Spec{Tag: "p"}.IsZero())
}

func TestReplacedRecordStillRenders(t *testing.T) {
	app, v := mount(t, view.Spec{Tag: "span", Text: `{{get "user.name"}}`},
		map[string]any{"user": map[string]any{"name": "ada"}})

	require.NoError(t, app.Set("user", map[string]any{"name": "bob"}))
	assert.NoError(t, v.Err())
	assert.Equal(t, "<span>bob</span>", app.HTML())
}
