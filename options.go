package reactree

import (
	"context"
	"log/slog"

	"github.com/vango-dev/reactree/pkg/reactive"
	"github.com/vango-dev/reactree/pkg/vdom"
)

// DefaultTracerName is used when Options.TracerName is empty.
const DefaultTracerName = "reactree"

// RenderFunc builds the tree for the current state. Reads through the App
// (Get, Lookup) during the call become dependencies of the render Watcher.
type RenderFunc func(a *App) *vdom.VNode

// Options configures an App.
type Options struct {
	// Data is the initial state. Nested maps become nested reactive states.
	Data map[string]any

	// Render builds the tree. Required; a missing Render fails at mount.
	Render RenderFunc

	// El is the id of the mount element.
	El string

	// Host is the live tree. Defaults to a new dom.Document with a
	// <div id=El> mount point.
	Host vdom.Host

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// ReactiveHooks and RenderHooks observe the engines, typically a
	// metrics.Collector.
	ReactiveHooks reactive.Hooks
	RenderHooks   vdom.Hooks

	// ChildOrder is the child realization order.
	ChildOrder vdom.ChildOrder

	// TracerName names the otel tracer taken from the global provider.
	TracerName string

	// Context parents the update spans. Defaults to context.Background().
	Context context.Context
}

func (o *Options) applyDefaults() {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.TracerName == "" {
		o.TracerName = DefaultTracerName
	}
	if o.Context == nil {
		o.Context = context.Background()
	}
	if o.Data == nil {
		o.Data = map[string]any{}
	}
}
