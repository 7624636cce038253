// Package vdom provides the tree description and the incremental renderer.
//
// A VNode describes one element (Tag set) or one text leaf (Tag empty).
// The Renderer turns VNodes into elements of a live Host tree and later
// reconciles a previous tree against a new description, reusing host
// elements where the tags match.
//
// # Building Trees
//
// CreateElement takes explicit attributes and children; a string children
// argument becomes a single text leaf:
//
//	CreateElement("span", nil, "0")
//
// The variadic helpers build the same shape:
//
//	Div(ID("main"), Class("card"),
//	    H1("Title"),
//	    P("Content"),
//	)
//
// # Realization
//
// Realize creates host elements depth first. By default children are
// visited last to first and each is appended to the parent, so the live
// order is the reverse of the declared order; WithChildOrder(OrderDeclared)
// appends in declared order instead.
//
// # Reconciliation
//
// Patch compares nodes by tag only. Matching nodes keep their element and
// either take the new text or reconcile their first child pair. Different
// tags replace the old element at the same position. Keyed matching,
// reordering and multi-child diffing are not performed.
package vdom
