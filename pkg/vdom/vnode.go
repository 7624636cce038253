package vdom

import (
	"fmt"
	"strings"
)

// VKind is the node type discriminator. It is derived from Tag: a node
// without a tag is a text leaf.
type VKind uint8

const (
	KindElement VKind = iota // <div>, <span>, etc.
	KindText                 // Text leaf
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// Handle is an opaque reference to an element in the host's live tree.
type Handle = any

// Attrs holds element attributes.
type Attrs map[string]string

// VNode describes one element or text leaf. Apart from Elm, a VNode is not
// modified once built.
type VNode struct {
	Tag      string   // Element tag name; empty for a text leaf
	Attrs    Attrs    // Element attributes; nil for a text leaf
	Children []*VNode // Child nodes; nil for a text leaf
	Text     string   // Leaf text
	Elm      Handle   // Realized host element, filled in by the Renderer
}

// Kind reports whether the node is an element or a text leaf.
func (v *VNode) Kind() VKind {
	if v.Tag == "" {
		return KindText
	}
	return KindElement
}

// IsText returns true for text leaves.
func (v *VNode) IsText() bool {
	return v.Tag == ""
}

// HasChildren returns true if the node has at least one child.
func (v *VNode) HasChildren() bool {
	return len(v.Children) > 0
}

// Realized returns true once the node has a host element.
func (v *VNode) Realized() bool {
	return v.Elm != nil
}

// String returns a compact debug form such as <div id="a">[2] or "hello".
func (v *VNode) String() string {
	if v == nil {
		return "<nil>"
	}
	if v.IsText() {
		return fmt.Sprintf("%q", v.Text)
	}
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(v.Tag)
	for _, key := range v.Attrs.Keys() {
		fmt.Fprintf(&b, " %s=%q", key, v.Attrs[key])
	}
	b.WriteString(">")
	if len(v.Children) > 0 {
		fmt.Fprintf(&b, "[%d]", len(v.Children))
	}
	return b.String()
}
