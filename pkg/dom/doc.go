// Package dom is an in-memory live element tree.
//
// A Document owns a <body> root and hands out *Node handles. It implements
// vdom.Host, so a vdom.Renderer can realize and patch trees into it, and
// records every mutation it performs in a log that callers can read, drain
// or subscribe to. Nodes serialize to escaped HTML with sorted attributes.
//
// A Document is not safe for concurrent mutation. The mutation log and its
// subscribers are guarded separately so a reader may drain the log from
// another goroutine.
package dom
