package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

func TestHubProtocol(t *testing.T) {
	s := NewServer(":0")
	ts := httptest.NewServer(http.HandlerFunc(s.serveWs))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	assert.NoError(t, err)
	defer conn.Close()
	assert.NoError(t, conn.SetReadDeadline(time.Now().Add(30*time.Second)))

	var reply Msg
	{ // Set a coarse case so the run is quick
		params := "Title: Small Case\nCellSize: 0.25\n"
		assert.NoError(t, conn.WriteJSON(&Msg{Type: "params", Content: params}))
		assert.NoError(t, conn.ReadJSON(&reply))
		assert.Equal(t, "paramsSet", reply.Type)
		assert.Equal(t, "Small Case", reply.Content)
	}
	{ // Start a run and collect frames until the field arrives
		assert.NoError(t, conn.WriteJSON(&Msg{Type: "start"}))
		assert.NoError(t, conn.ReadJSON(&reply))
		assert.Equal(t, "started", reply.Type)
		for {
			assert.NoError(t, conn.ReadJSON(&reply))
			if reply.Type != "progress" {
				break
			}
			var pf ProgressFrame
			assert.NoError(t, json.Unmarshal([]byte(reply.Content), &pf))
			assert.True(t, pf.Iteration > 0)
			assert.True(t, pf.Residual >= 0)
		}
		assert.Equal(t, "field", reply.Type)
		var ff FieldFrame
		assert.NoError(t, json.Unmarshal([]byte(reply.Content), &ff))
		assert.Equal(t, len(ff.X), len(ff.Y))
		assert.Equal(t, len(ff.X), len(ff.Values))
		assert.True(t, len(ff.Cells) > 0)
		// Coarse mesh, so only sanity bounds on the error metrics
		assert.True(t, ff.MaxErr < 0.5)
		assert.True(t, ff.RMSErr <= ff.MaxErr)
	}
	{ // Bad parameters produce an error reply, not a dropped connection
		assert.NoError(t, conn.WriteJSON(&Msg{Type: "params", Content: "K: notanumber"}))
		assert.NoError(t, conn.ReadJSON(&reply))
		assert.Equal(t, "error", reply.Type)
	}
	{ // Stop is acknowledged
		assert.NoError(t, conn.WriteJSON(&Msg{Type: "stop"}))
		assert.NoError(t, conn.ReadJSON(&reply))
		assert.Equal(t, "stopped", reply.Type)
	}
}
