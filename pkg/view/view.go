// Package view compiles declarative tree descriptions into render functions.
//
// A Spec is plain data, usually decoded from the project config. Text and
// attribute values are text/template sources evaluated on every render with
// two functions:
//
//	get "user.name"   tracked read; a later write to the path re-renders
//	peek "user.name"  untracked read
//
// For example:
//
//	{"tag": "span", "text": "{{get \"count\"}}"}
package view

import (
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/vango-dev/reactree"
	"github.com/vango-dev/reactree/internal/errors"
	"github.com/vango-dev/reactree/pkg/vdom"
)

// Spec describes one node. A Spec with Text and no Tag is a text leaf. A
// tagged Spec with Text renders the text as the element's only child.
type Spec struct {
	Tag      string            `json:"tag,omitempty" yaml:"tag,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Text     string            `json:"text,omitempty" yaml:"text,omitempty"`
	Children []Spec            `json:"children,omitempty" yaml:"children,omitempty"`
}

// IsZero reports whether s describes nothing.
func (s Spec) IsZero() bool {
	return s.Tag == "" && s.Text == "" && len(s.Attrs) == 0 && len(s.Children) == 0
}

// View is a compiled Spec.
type View struct {
	root *node
	err  error
}

type node struct {
	tag      string
	attrs    []attr
	text     *value
	children []*node
}

type attr struct {
	key string
	val *value
}

// value is either a literal or a parsed template.
type value struct {
	literal string
	tmpl    *template.Template
}

// placeholders give the parser the function names and signatures; the
// per-render functions replace them before execution.
var placeholders = template.FuncMap{
	"get":  func(string) (any, error) { return nil, nil },
	"peek": func(string) (any, error) { return nil, nil },
}

// Compile parses every template in spec.
func Compile(spec Spec) (*View, error) {
	root, err := compileNode(spec, "view")
	if err != nil {
		return nil, err
	}
	return &View{root: root}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(spec Spec) *View {
	v, err := Compile(spec)
	if err != nil {
		panic(err)
	}
	return v
}

// Validate reports whether spec compiles.
func Validate(spec Spec) error {
	_, err := compileNode(spec, "view")
	return err
}

func compileNode(spec Spec, path string) (*node, error) {
	if spec.Tag == "" {
		if len(spec.Attrs) > 0 || len(spec.Children) > 0 {
			return nil, errors.New("C005").
				WithDetailf("%s: a text node cannot have attrs or children", path)
		}
		if spec.Text == "" {
			return nil, errors.New("C005").WithDetailf("%s: node needs a tag or text", path)
		}
	}
	if spec.Text != "" && len(spec.Children) > 0 {
		return nil, errors.New("C005").WithDetailf("%s: text and children are exclusive", path)
	}

	n := &node{tag: spec.Tag}
	if spec.Text != "" {
		v, err := compileValue(spec.Text, path+".text")
		if err != nil {
			return nil, err
		}
		n.text = v
	}

	keys := make([]string, 0, len(spec.Attrs))
	for k := range spec.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v, err := compileValue(spec.Attrs[k], path+".attrs."+k)
		if err != nil {
			return nil, err
		}
		n.attrs = append(n.attrs, attr{key: k, val: v})
	}

	for i, c := range spec.Children {
		child, err := compileNode(c, fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		n.children = append(n.children, child)
	}
	return n, nil
}

func compileValue(src, name string) (*value, error) {
	if !strings.Contains(src, "{{") {
		return &value{literal: src}, nil
	}
	t, err := template.New(name).Funcs(placeholders).Parse(src)
	if err != nil {
		return nil, errors.New("C005").WithDetail(name).Wrap(err)
	}
	return &value{tmpl: t}, nil
}

// Render builds the tree for a's current state. Reads made through get are
// tracked by a's render Watcher. A failed template renders as an empty
// string; the failure is logged and kept in Err until the next Render.
func (v *View) Render(a *reactree.App) *vdom.VNode {
	v.err = nil
	r := &run{app: a, funcs: funcs(a)}
	tree := r.node(v.root)
	if r.err != nil {
		v.err = r.err
		a.Logger().Error("view render failed", "error", r.err)
	}
	return tree
}

// RenderFunc adapts v for reactree.Options.
func (v *View) RenderFunc() reactree.RenderFunc {
	return v.Render
}

// Err returns the first template failure of the last Render.
func (v *View) Err() error {
	return v.err
}

func funcs(a *reactree.App) template.FuncMap {
	return template.FuncMap{
		"get": func(path string) (any, error) {
			return a.Lookup(path)
		},
		"peek": func(path string) (val any, err error) {
			a.Tracker().Untracked(func() {
				val, err = a.Lookup(path)
			})
			return val, err
		},
	}
}

// run holds the state of one Render.
type run struct {
	app   *reactree.App
	funcs template.FuncMap
	err   error
}

func (r *run) node(n *node) *vdom.VNode {
	if n.tag == "" {
		return vdom.Text(r.eval(n.text))
	}

	attrs := make(vdom.Attrs, len(n.attrs))
	for _, a := range n.attrs {
		attrs[a.key] = r.eval(a.val)
	}

	if n.text != nil {
		return vdom.CreateElement(n.tag, attrs, r.eval(n.text))
	}

	var children []*vdom.VNode
	for _, c := range n.children {
		children = append(children, r.node(c))
	}
	return vdom.CreateElement(n.tag, attrs, children)
}

func (r *run) eval(v *value) string {
	if v.tmpl == nil {
		return v.literal
	}
	var b strings.Builder
	if err := v.tmpl.Funcs(r.funcs).Execute(&b, nil); err != nil {
		if r.err == nil {
			r.err = errors.New("V006").WithDetail(v.tmpl.Name()).Wrap(err)
		}
		return ""
	}
	return b.String()
}
