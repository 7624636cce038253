package main

import (
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/reactree"
	"github.com/vango-dev/reactree/internal/config"
	"github.com/vango-dev/reactree/internal/logging"
	"github.com/vango-dev/reactree/pkg/dom"
	"github.com/vango-dev/reactree/pkg/metrics"
	"github.com/vango-dev/reactree/pkg/view"
)

// project is a loaded config with the App built from it.
type project struct {
	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.Collector
	view    *view.View
	doc     *dom.Document
	app     *reactree.App
}

// loadConfig reads --config, or the config in --dir, and validates it.
func (g *globals) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if g.config != "" {
		cfg, err = config.LoadFile(g.config)
	} else {
		cfg, err = config.Load(g.dir)
	}
	if err != nil {
		return nil, err
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// open loads the config and mounts its view. Logs go to logOut.
func (g *globals) open(logOut io.Writer) (*project, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, err
	}

	p := &project{
		cfg: cfg,
		logger: logging.New(logging.Options{
			Level:  cfg.Log.Level,
			Format: cfg.Log.Format,
			Output: logOut,
		}),
	}
	if cfg.Metrics.Enabled {
		p.metrics = metrics.New(
			metrics.WithNamespace(cfg.Metrics.Namespace),
			metrics.WithRegistry(prometheus.NewRegistry()),
		)
	}

	p.view, err = view.Compile(cfg.View)
	if err != nil {
		return nil, err
	}

	p.doc = dom.NewDocument()
	if _, err := p.doc.NewMountPoint(cfg.Mount.Tag, cfg.El); err != nil {
		return nil, err
	}

	p.app, err = reactree.New(reactree.Options{
		Data:          cfg.Data,
		Render:        p.view.RenderFunc(),
		El:            cfg.El,
		Host:          p.doc,
		Logger:        p.logger,
		ReactiveHooks: p.metrics.ReactiveHooks(),
		RenderHooks:   p.metrics.RenderHooks(),
		ChildOrder:    cfg.ChildOrder(),
	})
	if err != nil {
		return nil, err
	}
	if err := p.view.Err(); err != nil {
		return nil, err
	}
	return p, nil
}
