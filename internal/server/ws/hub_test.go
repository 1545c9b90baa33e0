package ws

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/energyinsights/backend/internal/synth"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T, interval time.Duration) *Hub {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := synth.New(synth.PCGFactory(), func() time.Time {
		return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	})
	hub := NewHub(s, interval, logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	return hub
}

func dial(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(hub.HandleWS))
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubSendsInitialSnapshotFrame(t *testing.T) {
	hub := newTestHub(t, time.Hour) // no ticker churn during the test
	conn := dial(t, hub)

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var f frame
	require.NoError(t, json.Unmarshal(data, &f))

	assert.Equal(t, "snapshots", f.Type)
	require.Len(t, f.Snapshots, 5)
	assert.Equal(t, "brent", f.Snapshots[0].ID)
	assert.Equal(t, "BRENT", f.Snapshots[0].Snapshot.Symbol)
	for _, s := range f.Snapshots {
		base := synth.BasePrice(s.ID)
		assert.InDelta(t, base, s.Snapshot.Price, 1.2+0.005)
		assert.True(t, strings.HasSuffix(s.Snapshot.UpdatedAt, "Z"))
	}
}

func TestHubBroadcastsOnInterval(t *testing.T) {
	hub := newTestHub(t, 50*time.Millisecond)
	conn := dial(t, hub)

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	// Initial frame plus at least one ticker frame.
	for i := 0; i < 2; i++ {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var f frame
		require.NoError(t, json.Unmarshal(data, &f))
		assert.Equal(t, "snapshots", f.Type)
		assert.Len(t, f.Snapshots, 5)
	}
}
