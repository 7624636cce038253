package vdom

import (
	"strings"

	"github.com/vango-dev/reactree/internal/errors"
)

// SameVNode reports whether two nodes are candidates for in-place patching.
// Only the tag is compared.
func SameVNode(a, b *VNode) bool {
	return a.Tag == b.Tag
}

// EmptyNode wraps a raw host element in a VNode carrying its lower-cased tag
// and no attributes or children.
func EmptyNode(host Host, el Handle) *VNode {
	return &VNode{
		Tag:      strings.ToLower(host.TagName(el)),
		Attrs:    Attrs{},
		Children: []*VNode{},
		Elm:      el,
	}
}

// Patch reconciles the live tree built for old against next and returns
// next's host element.
//
// When the tags match, next takes over old's element: a non-empty Text is
// written as the element's text content; otherwise, if both nodes have
// children, only the first child pair is reconciled. Later siblings are never
// added, removed or updated here.
//
// When the tags differ, next is realized fresh, inserted before old's element
// and old's element is removed.
func (r *Renderer) Patch(old, next *VNode) (Handle, error) {
	if SameVNode(old, next) {
		if err := r.patchVNode(old, next); err != nil {
			return nil, err
		}
		return next.Elm, nil
	}
	return r.replace(old, next)
}

// Mount replaces the raw host element el with a fresh realization of next
// and returns next's element. It is the first-render form of Patch: the
// wrapped element has no realized children to reuse, so it is always
// replaced, even when the tags match.
func (r *Renderer) Mount(el Handle, next *VNode) (Handle, error) {
	return r.replace(EmptyNode(r.host, el), next)
}

// patchVNode reuses old's element for next.
func (r *Renderer) patchVNode(old, next *VNode) error {
	if err := requireElm(old); err != nil {
		return err
	}
	next.Elm = old.Elm

	if r.hooks.OnPatch != nil {
		r.hooks.OnPatch(next)
	}

	if next.Text == "" {
		if len(old.Children) > 0 && len(next.Children) > 0 {
			return r.updateChildren(old.Children, next.Children)
		}
		return nil
	}
	return r.host.SetTextContent(next.Elm, next.Text)
}

// updateChildren reconciles the first child pair only.
func (r *Renderer) updateChildren(oldCh, ch []*VNode) error {
	if SameVNode(oldCh[0], ch[0]) {
		return r.patchVNode(oldCh[0], ch[0])
	}
	_, err := r.replace(oldCh[0], ch[0])
	return err
}

// replace realizes next at old's position and removes old's element.
func (r *Renderer) replace(old, next *VNode) (Handle, error) {
	if err := requireElm(old); err != nil {
		return nil, err
	}
	parent := r.host.ParentNode(old.Elm)
	if parent == nil {
		return nil, errors.New("V003").WithDetail(old.String())
	}

	el, err := r.Realize(next)
	if err != nil {
		return nil, err
	}
	if err := r.host.InsertBefore(parent, el, old.Elm); err != nil {
		return nil, err
	}
	if err := r.host.RemoveChild(parent, old.Elm); err != nil {
		return nil, err
	}

	if r.hooks.OnReplace != nil {
		r.hooks.OnReplace(old, next)
	}
	return el, nil
}
