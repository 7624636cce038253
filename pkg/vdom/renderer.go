package vdom

import (
	"github.com/vango-dev/reactree/internal/errors"
)

// ChildOrder controls the order in which Realize appends children.
type ChildOrder uint8

const (
	// OrderReverse walks the children from last to first, appending each to
	// the end of the parent. The live order is the reverse of the declared
	// order. This is the default.
	OrderReverse ChildOrder = iota

	// OrderDeclared appends children first to last.
	OrderDeclared
)

// String returns the config spelling of the order.
func (o ChildOrder) String() string {
	switch o {
	case OrderReverse:
		return "reverse"
	case OrderDeclared:
		return "declared"
	default:
		return "unknown"
	}
}

// ParseChildOrder parses "reverse" or "declared". Empty means reverse.
func ParseChildOrder(s string) (ChildOrder, bool) {
	switch s {
	case "", "reverse":
		return OrderReverse, true
	case "declared":
		return OrderDeclared, true
	default:
		return OrderReverse, false
	}
}

// Hooks observe renderer activity. Any field may be nil.
type Hooks struct {
	// OnRealize is called for every node given a fresh host element.
	OnRealize func(n *VNode)

	// OnPatch is called for every node patched in place.
	OnPatch func(n *VNode)

	// OnReplace is called after old's element was swapped for next's.
	OnReplace func(old, next *VNode)
}

// Renderer realizes VNodes into a Host and reconciles them.
type Renderer struct {
	host  Host
	order ChildOrder
	hooks Hooks
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithChildOrder sets the child realization order.
func WithChildOrder(o ChildOrder) RendererOption {
	return func(r *Renderer) {
		r.order = o
	}
}

// WithHooks installs observation hooks.
func WithHooks(h Hooks) RendererOption {
	return func(r *Renderer) {
		r.hooks = h
	}
}

// NewRenderer creates a Renderer mutating host.
func NewRenderer(host Host, opts ...RendererOption) *Renderer {
	r := &Renderer{host: host}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Host returns the host the Renderer mutates.
func (r *Renderer) Host() Host {
	return r.host
}

// ChildOrder returns the configured child realization order.
func (r *Renderer) ChildOrder() ChildOrder {
	return r.order
}

// Realize creates host elements for n and its subtree, storing each handle
// in the node's Elm, and returns n's handle.
func (r *Renderer) Realize(n *VNode) (Handle, error) {
	if n.IsText() {
		el, err := r.host.CreateTextNode(n.Text)
		if err != nil {
			return nil, err
		}
		n.Elm = el
		r.realized(n)
		return el, nil
	}

	el, err := r.host.CreateElement(n.Tag)
	if err != nil {
		return nil, err
	}
	for _, key := range n.Attrs.Keys() {
		if err := r.host.SetAttribute(el, key, n.Attrs[key]); err != nil {
			return nil, err
		}
	}
	n.Elm = el

	if len(n.Children) > 0 {
		if err := r.realizeChildren(n); err != nil {
			return nil, err
		}
	}

	r.realized(n)
	return el, nil
}

func (r *Renderer) realizeChildren(n *VNode) error {
	appendChild := func(child *VNode) error {
		el, err := r.Realize(child)
		if err != nil {
			return err
		}
		return r.host.AppendChild(n.Elm, el)
	}

	if r.order == OrderDeclared {
		for _, child := range n.Children {
			if err := appendChild(child); err != nil {
				return err
			}
		}
		return nil
	}

	for i := len(n.Children) - 1; i >= 0; i-- {
		if err := appendChild(n.Children[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) realized(n *VNode) {
	if r.hooks.OnRealize != nil {
		r.hooks.OnRealize(n)
	}
}

// requireElm fails when n was never realized.
func requireElm(n *VNode) error {
	if n.Elm == nil {
		return errors.New("V004").WithDetail(n.String())
	}
	return nil
}
