// Package preview serves a live view of a reactree App over HTTP.
//
// Browsers load the mount element's HTML from / and connect to /ws. Writes
// arrive as websocket "set" messages or PUT /state/{key} requests; each is
// applied through App.Dispatch and the resulting host mutations and HTML
// are broadcast to every connected client.
package preview

import (
	"context"
	"encoding/json"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vango-dev/reactree"
	"github.com/vango-dev/reactree/internal/errors"
	"github.com/vango-dev/reactree/pkg/metrics"
)

// shutdownTimeout bounds graceful shutdown in Run.
const shutdownTimeout = 5 * time.Second

// Server is the preview HTTP server for one App.
type Server struct {
	app     *reactree.App
	title   string
	logger  *slog.Logger
	metrics *metrics.Collector
	hub     *hub
	router  chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithMetrics records dispatches and clients and serves /metrics.
func WithMetrics(c *metrics.Collector) Option {
	return func(s *Server) {
		s.metrics = c
	}
}

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return func(s *Server) {
		s.title = title
	}
}

// New creates a Server for app. Mutations logged before New are discarded.
func New(app *reactree.App, opts ...Option) *Server {
	s := &Server{
		app:    app,
		title:  "reactree",
		logger: slog.Default(),
		hub:    newHub(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.hub.onJoin = s.metrics.ClientConnected
	s.hub.onLeave = s.metrics.ClientDisconnected

	_ = app.Dispatch(func(a *reactree.App) error {
		if doc := a.Document(); doc != nil {
			doc.Drain()
		}
		return nil
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handlePage)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/state", s.handleGetState)
	r.Put("/state/{key}", s.handlePutState)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ClientCount returns the number of connected websocket clients.
func (s *Server) ClientCount() int {
	return s.hub.count()
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()
	s.logger.Info("preview server running", "addr", addr)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		s.hub.close()
		return err
	}

	s.hub.close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("preview server stopped")
	return nil
}

// Apply writes value at path through App.Dispatch, broadcasts the result
// and returns the change message.
func (s *Server) Apply(path string, value any) (Message, error) {
	var msg Message
	start := time.Now()
	err := s.app.Dispatch(func(a *reactree.App) error {
		if err := a.Assign(path, value); err != nil {
			// Drop what a failed cascade already applied so the next
			// broadcast carries only its own mutations.
			if doc := a.Document(); doc != nil {
				doc.Drain()
			}
			return err
		}
		msg = Message{
			Type:    TypePatch,
			HTML:    a.HTML(),
			Updates: a.Updates(),
		}
		if doc := a.Document(); doc != nil {
			msg.Mutations = doc.Drain()
		}
		return nil
	})
	s.metrics.RecordDispatch(time.Since(start), err)
	if err != nil {
		s.logger.Warn("dispatch failed", "key", path, "error", err)
		return Message{}, err
	}

	s.logger.Debug("dispatched", "key", path, "mutations", len(msg.Mutations))
	s.hub.broadcast(msg)
	return msg, nil
}

func (s *Server) snapshot() (html string, state map[string]any, updates int) {
	_ = s.app.Dispatch(func(a *reactree.App) error {
		html = a.HTML()
		state = a.State().Snapshot()
		updates = a.Updates()
		return nil
	})
	return html, state, updates
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<div id="reactree-root">{{.HTML}}</div>
{{.Script}}
</body>
</html>
`))

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	html, _, _ := s.snapshot()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := pageTemplate.Execute(w, struct {
		Title  string
		HTML   template.HTML
		Script template.HTML
	}{
		Title:  s.title,
		HTML:   template.HTML(html),
		Script: template.HTML(ClientScript),
	})
	if err != nil {
		s.logger.Error("page render failed", "error", err)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	c, err := s.hub.upgrade(w, r)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", errors.New("P003").Wrap(err))
		return
	}
	defer s.hub.remove(c)

	html, _, updates := s.snapshot()
	if err := c.send(Message{Type: TypeHello, ID: c.id}); err != nil {
		return
	}
	if err := c.send(Message{Type: TypeHTML, HTML: html, Updates: updates}); err != nil {
		return
	}
	s.logger.Debug("client connected", "client", c.id)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			s.logger.Debug("client disconnected", "client", c.id)
			return
		}
		if err := s.handleMessage(data); err != nil {
			if sendErr := c.send(errorMessage(err)); sendErr != nil {
				return
			}
		}
	}
}

func (s *Server) handleMessage(data []byte) error {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return errors.New("P001").Wrap(err)
	}

	switch msg.Type {
	case TypeSet:
		if msg.Key == "" {
			return errors.New("P001").WithDetail("set requires a key")
		}
		value, err := decodeValue(msg.Value)
		if err != nil {
			return err
		}
		_, err = s.Apply(msg.Key, value)
		return err
	default:
		return errors.New("P002").WithDetailf("%q", msg.Type)
	}
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	_, state, updates := s.snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"state":   state,
		"updates": updates,
	})
}

func (s *Server) handlePutState(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("P001").Wrap(err))
		return
	}
	value, err := decodeValue(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	msg, err := s.Apply(key, value)
	if err != nil {
		status := http.StatusUnprocessableEntity
		switch errors.CodeOf(err) {
		case "R001", "R002":
			status = http.StatusNotFound
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

// logRequests logs each request at debug level.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func decodeValue(raw []byte) (any, error) {
	if len(raw) == 0 {
		return nil, errors.New("P001").WithDetail("missing value")
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, errors.New("P001").Wrap(err)
	}
	return v, nil
}

func errorMessage(err error) Message {
	return Message{
		Type:  TypeError,
		Code:  errors.CodeOf(err),
		Error: err.Error(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorMessage(err))
}

// ClientScript connects the page to /ws and swaps the root's HTML on every
// change. window.reactree.set(key, value) sends a write.
const ClientScript = `
<script>
(function() {
    'use strict';

    var root = document.getElementById('reactree-root');
    var ws = null;
    var reconnectDelay = 1000;

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        ws = new WebSocket(protocol + '//' + location.host + '/ws');

        ws.onmessage = function(e) {
            var msg;
            try {
                msg = JSON.parse(e.data);
            } catch (err) {
                return;
            }
            switch (msg.type) {
                case 'html':
                case 'patch':
                    root.innerHTML = msg.html || '';
                    break;
                case 'error':
                    console.error('[reactree]', msg.error);
                    break;
            }
        };

        ws.onopen = function() {
            reconnectDelay = 1000;
        };

        ws.onclose = function() {
            setTimeout(function() {
                reconnectDelay = Math.min(reconnectDelay * 2, 30000);
                connect();
            }, reconnectDelay);
        };
    }

    window.reactree = {
        set: function(key, value) {
            ws.send(JSON.stringify({type: 'set', key: key, value: value}));
        }
    };

    connect();
})();
</script>
`
