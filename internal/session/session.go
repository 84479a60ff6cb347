// Package session runs one viewer connection: it reads commands off a websocket,
// feeds them to that viewer's selection controller and writes back frames and
// search results.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/psidex/knowmap/internal/graph"
	"github.com/psidex/knowmap/internal/lib"
	"github.com/psidex/knowmap/internal/metrics"
	"github.com/psidex/knowmap/internal/search"
	"github.com/psidex/knowmap/internal/selection"
)

type Session struct {
	id     uuid.UUID
	logger *slog.Logger
	ws     lib.ThreadSafeWebSocket
	ctrl   *selection.Controller
	index  *search.Index
}

func New(ws lib.ThreadSafeWebSocket, g *graph.Graph, index *search.Index, logger *slog.Logger) *Session {
	id := uuid.New()
	logger = lib.OrDiscard(logger).With("session", id.String())

	ctrl := selection.NewController(logger, g)
	ctrl.OnTransition = func(t selection.Transition) {
		metrics.TransitionsTotal.WithLabelValues(t.From.Mode.String(), t.To.Mode.String()).Inc()
	}

	return &Session{
		id:     id,
		logger: logger,
		ws:     ws,
		ctrl:   ctrl,
		index:  index,
	}
}

func (s *Session) ID() string { return s.id.String() }

// Greeting is sent once when the connection opens.
func (s *Session) Greeting() []Message {
	return []Message{
		{Type: TypeHello, Data: hello{Session: s.ID(), Version: lib.Version}},
		{Type: TypeFrame, Data: s.ctrl.Frame()},
	}
}

// Run blocks until the client goes away or ctx is cancelled. The caller owns the
// underlying conn and must close it afterwards, which also stops the reader.
func (s *Session) Run(ctx context.Context) error {
	metrics.ActiveSessions.Inc()
	defer metrics.ActiveSessions.Dec()

	s.logger.Info("session started")
	defer s.logger.Info("session ended")

	if err := s.write(s.Greeting()); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		for {
			_, msg, err := s.ws.ReadMessage()
			if err != nil {
				done <- err
				return
			}
			if err := s.write(s.Handle(msg)); err != nil {
				done <- err
				return
			}
		}
	}()

	select {
	case <-ctx.Done():
		_ = s.ws.CloseWithReason(websocket.CloseGoingAway, "server shutting down")
		return ctx.Err()
	case err := <-done:
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return nil
		}
		return err
	}
}

func (s *Session) write(msgs []Message) error {
	for _, m := range msgs {
		if err := s.ws.WriteJSON(m); err != nil {
			return fmt.Errorf("write %s: %w", m.Type, err)
		}
	}
	return nil
}

// Handle processes one raw client message and returns the replies. It must only be
// called from one goroutine at a time.
func (s *Session) Handle(raw []byte) []Message {
	var in inbound
	if err := json.Unmarshal(raw, &in); err != nil {
		s.logger.Warn("malformed command", "err", err)
		metrics.CommandsTotal.WithLabelValues("malformed", "error").Inc()
		return []Message{errorMessage(fmt.Errorf("malformed command: %w", err))}
	}

	label := commandLabel(in.Type)

	switch in.Type {
	case typeSearch:
		return []Message{s.results(in.Query)}
	case typeSearchDismiss:
		metrics.CommandsTotal.WithLabelValues(label, "ok").Inc()
		return []Message{{Type: TypeResults, Data: []Result{}}}
	}

	cmd, err := toCommand(in)
	if err != nil {
		s.logger.Warn("rejected command", "type", in.Type, "err", err)
		metrics.CommandsTotal.WithLabelValues(label, "error").Inc()
		return []Message{errorMessage(err)}
	}

	frame, err := s.ctrl.Apply(cmd)
	switch {
	case errors.Is(err, selection.ErrSearchLookupMiss):
		// Nothing visible changes; the result list just closes.
		metrics.SearchMisses.Inc()
		metrics.CommandsTotal.WithLabelValues(label, "error").Inc()
		return []Message{{Type: TypeResults, Data: []Result{}}}
	case err != nil:
		s.logger.Warn("command failed", "type", in.Type, "err", err)
		metrics.CommandsTotal.WithLabelValues(label, "error").Inc()
		return []Message{errorMessage(err)}
	}

	outcome := "ok"
	if !frame.Changed {
		outcome = "noop"
	}
	metrics.CommandsTotal.WithLabelValues(label, outcome).Inc()

	replies := []Message{{Type: TypeFrame, Data: frame}}
	if cmd.Kind == selection.KindSearchSelect {
		replies = append(replies, Message{Type: TypeResults, Data: []Result{}})
	}
	return replies
}

func (s *Session) results(query string) Message {
	matches := s.index.Query(query)
	metrics.SearchResults.Observe(float64(len(matches)))
	metrics.CommandsTotal.WithLabelValues(typeSearch, "ok").Inc()

	results := make([]Result, 0, len(matches))
	for _, m := range matches {
		h, err := search.HighlightHTML(m)
		if err != nil {
			s.logger.Error("highlight search result", "name", m.Name, "err", err)
			continue
		}
		results = append(results, Result{Match: m, HTML: h})
	}
	return Message{Type: TypeResults, Data: results}
}

// commandLabel bounds the metric label to the known command types. The type comes
// from the client.
func commandLabel(t string) string {
	switch t {
	case typeNodeClick, typeCategory, typeSearch, typeSearchSelect, typeSearchDismiss, typeEdges, typeLabels:
		return t
	}
	return "unknown"
}

func toCommand(in inbound) (selection.Command, error) {
	switch in.Type {
	case typeNodeClick:
		return selection.NodeClick(in.Node), nil
	case typeCategory:
		return selection.CategoryCommand(in.Value)
	case typeSearchSelect:
		return selection.SearchSelect(in.Node), nil
	case typeEdges:
		return selection.SetEdgesVisible(in.On), nil
	case typeLabels:
		return selection.SetLabelsVisible(in.On), nil
	}
	return selection.Command{}, fmt.Errorf("%w: %q", selection.ErrUnknownCommand, in.Type)
}

func errorMessage(err error) Message {
	return Message{Type: TypeError, Data: errorData{Message: err.Error()}}
}
