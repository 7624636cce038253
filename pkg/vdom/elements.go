package vdom

import "fmt"

// CreateElement builds an element node. children may be a string (the text
// shorthand, see NormalizeChildren), a *VNode, a []*VNode or nil.
func CreateElement(tag string, attrs Attrs, children any) *VNode {
	if attrs == nil {
		attrs = Attrs{}
	}
	return &VNode{
		Tag:      tag,
		Attrs:    attrs,
		Children: NormalizeChildren(children),
	}
}

// NormalizeChildren converts a children argument into a child slice.
// A string becomes a single text leaf; this is the only way a bare string
// enters the tree as a child. Any other type than string, *VNode, []*VNode
// or nil is a programming error and panics.
func NormalizeChildren(children any) []*VNode {
	switch v := children.(type) {
	case nil:
		return nil
	case string:
		return []*VNode{Text(v)}
	case *VNode:
		if v == nil {
			return nil
		}
		return []*VNode{v}
	case []*VNode:
		return v
	default:
		panic(fmt.Sprintf("vdom: unsupported children type %T", children))
	}
}

// Text creates a text leaf.
func Text(content string) *VNode {
	return &VNode{Text: content}
}

// Textf creates a formatted text leaf.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// H creates an element from variadic arguments.
// Arguments can be: nil, Attr, []Attr, Attrs, *VNode, []*VNode, string.
// A string argument appends a text leaf child.
func H(tag string, args ...any) *VNode {
	node := &VNode{
		Tag:   tag,
		Attrs: Attrs{},
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue
		case Attr:
			if !v.IsEmpty() {
				node.Attrs[v.Key] = v.Value
			}
		case []Attr:
			for _, a := range v {
				if !a.IsEmpty() {
					node.Attrs[a.Key] = a.Value
				}
			}
		case Attrs:
			for k, val := range v {
				node.Attrs[k] = val
			}
		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					node.Children = append(node.Children, c)
				}
			}
		case string:
			node.Children = append(node.Children, Text(v))
		}
	}

	return node
}

// Common elements.

func Div(args ...any) *VNode     { return H("div", args...) }
func Span(args ...any) *VNode    { return H("span", args...) }
func P(args ...any) *VNode       { return H("p", args...) }
func H1(args ...any) *VNode      { return H("h1", args...) }
func H2(args ...any) *VNode      { return H("h2", args...) }
func Ul(args ...any) *VNode      { return H("ul", args...) }
func Li(args ...any) *VNode      { return H("li", args...) }
func A(args ...any) *VNode       { return H("a", args...) }
func Button(args ...any) *VNode  { return H("button", args...) }
func Section(args ...any) *VNode { return H("section", args...) }
