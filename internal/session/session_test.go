package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psidex/knowmap/internal/graph"
	"github.com/psidex/knowmap/internal/lib"
	"github.com/psidex/knowmap/internal/metrics"
	"github.com/psidex/knowmap/internal/search"
	"github.com/psidex/knowmap/internal/selection"
)

func testGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.Load(graph.RawGraph{
		Nodes: []graph.RawNode{
			{Name: "Gate", Group: graph.Operational},
			{Name: "Plate", Group: graph.Tactical},
			{Name: "Door", Group: graph.Tactical},
		},
		Links: []graph.RawLink{
			{Source: "Gate", Target: "Plate", Property: "supports"},
		},
	})
	require.NoError(t, err)
	return g
}

func newSession(t *testing.T) *Session {
	g := testGraph(t)
	return New(lib.ThreadSafeWebSocket{}, g, search.NewIndex(g.Nodes), nil)
}

func frameOf(t *testing.T, m Message) selection.Frame {
	t.Helper()
	require.Equal(t, TypeFrame, m.Type)
	f, ok := m.Data.(selection.Frame)
	require.True(t, ok)
	return f
}

func TestGreeting(t *testing.T) {
	s := newSession(t)
	msgs := s.Greeting()
	require.Len(t, msgs, 2)
	assert.Equal(t, TypeHello, msgs[0].Type)
	assert.Equal(t, hello{Session: s.ID(), Version: lib.Version}, msgs[0].Data)

	f := frameOf(t, msgs[1])
	assert.Equal(t, selection.ModeNeutral, f.State.Mode)
	assert.Equal(t, selection.EffectNone, f.Effect)
}

func TestHandleNodeClick(t *testing.T) {
	s := newSession(t)

	msgs := s.Handle([]byte(`{"type":"node_click","node":"Gate"}`))
	require.Len(t, msgs, 1)
	f := frameOf(t, msgs[0])
	assert.Equal(t, selection.ModeNodeSelected, f.State.Mode)
	assert.Equal(t, selection.EffectHighlight, f.Effect)
	assert.Equal(t, selection.DimOpacity, f.Nodes[2].Opacity)

	f = frameOf(t, s.Handle([]byte(`{"type":"node_click","node":"Door"}`))[0])
	assert.Equal(t, selection.ModeNeutral, f.State.Mode)
}

func TestHandleCategory(t *testing.T) {
	s := newSession(t)

	f := frameOf(t, s.Handle([]byte(`{"type":"category","value":"Tactical"}`))[0])
	assert.Equal(t, selection.ModeCategoryFiltered, f.State.Mode)
	assert.Equal(t, graph.Tactical, f.State.Group)
	assert.False(t, f.Controls.EdgesEnabled)

	f = frameOf(t, s.Handle([]byte(`{"type":"category","value":"All"}`))[0])
	assert.Equal(t, selection.ModeNeutral, f.State.Mode)
	assert.True(t, f.Controls.EdgesEnabled)

	msgs := s.Handle([]byte(`{"type":"category","value":"Nope"}`))
	require.Len(t, msgs, 1)
	assert.Equal(t, TypeError, msgs[0].Type)
}

func TestHandleSearch(t *testing.T) {
	s := newSession(t)

	msgs := s.Handle([]byte(`{"type":"search","query":"ATE"}`))
	require.Len(t, msgs, 1)
	require.Equal(t, TypeResults, msgs[0].Type)
	results := msgs[0].Data.([]Result)
	require.Len(t, results, 2)
	assert.Equal(t, "Gate", results[0].Name)
	assert.Equal(t, `<span class="search-result-name">G<mark>ate</mark></span>`, results[0].HTML)
	assert.Equal(t, "Plate", results[1].Name)

	msgs = s.Handle([]byte(`{"type":"search","query":"   "}`))
	assert.Empty(t, msgs[0].Data.([]Result))

	msgs = s.Handle([]byte(`{"type":"search_dismiss"}`))
	assert.Equal(t, TypeResults, msgs[0].Type)
	assert.Empty(t, msgs[0].Data.([]Result))
}

func TestHandleSearchSelect(t *testing.T) {
	s := newSession(t)
	s.Handle([]byte(`{"type":"category","value":"Strategic"}`))

	msgs := s.Handle([]byte(`{"type":"search_select","node":"Plate"}`))
	require.Len(t, msgs, 2)
	f := frameOf(t, msgs[0])
	assert.Equal(t, selection.ModeNodeSelected, f.State.Mode)
	require.NotNil(t, f.Pulse)
	assert.Equal(t, 1, f.Pulse.Node)
	require.NotNil(t, f.CenterOn)
	assert.Equal(t, 1, *f.CenterOn)
	assert.Equal(t, TypeResults, msgs[1].Type)
}

func TestHandleSearchSelectMiss(t *testing.T) {
	s := newSession(t)
	msgs := s.Handle([]byte(`{"type":"search_select","node":"Window"}`))
	require.Len(t, msgs, 1)
	assert.Equal(t, TypeResults, msgs[0].Type, "a miss is not reported to the user")
	assert.Equal(t, selection.ModeNeutral, s.ctrl.State().Mode)
}

func TestHandleToggles(t *testing.T) {
	s := newSession(t)
	f := frameOf(t, s.Handle([]byte(`{"type":"edges","on":true}`))[0])
	assert.True(t, f.Toggles.EdgesVisible)
	assert.True(t, f.Controls.LabelsEnabled)

	f = frameOf(t, s.Handle([]byte(`{"type":"labels","on":true}`))[0])
	assert.True(t, f.Toggles.LabelsVisible)

	f = frameOf(t, s.Handle([]byte(`{"type":"edges","on":false}`))[0])
	assert.False(t, f.Toggles.LabelsVisible)
}

func TestHandleBadInput(t *testing.T) {
	s := newSession(t)

	msgs := s.Handle([]byte(`{"type":`))
	require.Len(t, msgs, 1)
	assert.Equal(t, TypeError, msgs[0].Type)

	msgs = s.Handle([]byte(`{"type":"explode"}`))
	require.Len(t, msgs, 1)
	assert.Equal(t, TypeError, msgs[0].Type)
	assert.Contains(t, msgs[0].Data.(errorData).Message, "explode")

	msgs = s.Handle([]byte(`{"type":"node_click","node":"Window"}`))
	assert.Equal(t, TypeError, msgs[0].Type)
}

type wireMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func TestRunOverWebsocket(t *testing.T) {
	g := testGraph(t)
	idx := search.NewIndex(g.Nodes)
	upgrader := websocket.Upgrader{}
	ended := make(chan error, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer c.Close()
		s := New(lib.NewThreadSafeWebSocket(c), g, idx, nil)
		ended <- s.Run(context.Background())
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer c.Close()

	read := func() wireMessage {
		var m wireMessage
		require.NoError(t, c.SetReadDeadline(time.Now().Add(5*time.Second)))
		require.NoError(t, c.ReadJSON(&m))
		return m
	}

	assert.Equal(t, TypeHello, read().Type)
	assert.Equal(t, TypeFrame, read().Type)

	require.NoError(t, c.WriteJSON(map[string]any{"type": "node_click", "node": "Gate"}))
	m := read()
	require.Equal(t, TypeFrame, m.Type)
	var f struct {
		State struct {
			Mode   string `json:"mode"`
			Anchor string `json:"anchor"`
		} `json:"state"`
	}
	require.NoError(t, json.Unmarshal(m.Data, &f))
	assert.Equal(t, "node_selected", f.State.Mode)
	assert.Equal(t, "Gate", f.State.Anchor)

	require.NoError(t, c.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))

	select {
	case err := <-ended:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("session did not end")
	}
}

func TestUnknownCommandTypesShareOneSeries(t *testing.T) {
	s := newSession(t)
	unknown := metrics.CommandsTotal.WithLabelValues("unknown", "error")
	seriesBefore := testutil.CollectAndCount(metrics.CommandsTotal, "knowmap_commands_total")
	countBefore := testutil.ToFloat64(unknown)

	for i := 0; i < 200; i++ {
		msgs := s.Handle([]byte(fmt.Sprintf(`{"type":"junk-%d"}`, i)))
		require.Len(t, msgs, 1)
		assert.Equal(t, TypeError, msgs[0].Type)
	}

	assert.Equal(t, seriesBefore, testutil.CollectAndCount(metrics.CommandsTotal, "knowmap_commands_total"))
	assert.Equal(t, countBefore+200, testutil.ToFloat64(unknown))
}

func TestCommandLabel(t *testing.T) {
	for _, known := range []string{typeNodeClick, typeCategory, typeSearch, typeSearchSelect, typeSearchDismiss, typeEdges, typeLabels} {
		assert.Equal(t, known, commandLabel(known))
	}
	assert.Equal(t, "unknown", commandLabel("explode"))
	assert.Equal(t, "unknown", commandLabel(""))
}
