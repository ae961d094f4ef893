package channel

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktb-chat/chatclient/internal/logging"
)

// echoServer upgrades the connection, records the handshake auth header,
// forwards one inbound frame to received, then pushes the given raw frames to
// the client and waits for done.
func echoServer(t *testing.T, received chan Frame, push []string, done chan struct{}) (*httptest.Server, *string) {
	t.Helper()

	var auth string
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		conn, err := upgrader.Upgrade(w, r, nil)
		if !assert.NoError(t, err) {
			return
		}
		defer conn.Close()

		if received != nil {
			_, raw, err := conn.ReadMessage()
			if !assert.NoError(t, err) {
				return
			}
			var f Frame
			if assert.NoError(t, json.Unmarshal(raw, &f)) {
				received <- f
			}
		}

		for _, frame := range push {
			if !assert.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(frame))) {
				return
			}
		}
		<-done
	}))

	return srv, &auth
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func waitRaw(t *testing.T, ch chan json.RawMessage) json.RawMessage {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestWS_EmitAndDispatch(t *testing.T) {
	received := make(chan Frame, 1)
	done := make(chan struct{})
	defer close(done)

	srv, auth := echoServer(t, received, []string{
		`{"event":"message","data":{"content":"hi"}}`,
		`{"event":"unknownEvent","data":{}}`,
		`{"event":"session_ended","data":null}`,
	}, done)
	defer srv.Close()

	w, err := Dial(context.Background(), wsURL(srv), "tok-123", logging.NewDiscard())
	require.NoError(t, err)
	defer w.Close()

	msgCh := make(chan json.RawMessage, 1)
	sessionCh := make(chan json.RawMessage, 1)
	w.On(EventMessage, func(data json.RawMessage) { msgCh <- data })
	w.OnSessionEnd(func() { sessionCh <- nil })

	go w.Listen(context.Background())

	require.True(t, w.Connected())
	require.NoError(t, w.Emit(EventChatMessage, map[string]string{"content": "hello"}))

	select {
	case f := <-received:
		assert.Equal(t, EventChatMessage, f.Event)
		assert.JSONEq(t, `{"content":"hello"}`, string(f.Data))
	case <-time.After(2 * time.Second):
		t.Fatal("server never saw the emitted frame")
	}

	assert.JSONEq(t, `{"content":"hi"}`, string(waitRaw(t, msgCh)))
	waitRaw(t, sessionCh)

	assert.Equal(t, "Bearer tok-123", *auth)
}

func TestWS_EmitAfterCloseReturnsErrClosed(t *testing.T) {
	done := make(chan struct{})
	defer close(done)

	srv, _ := echoServer(t, nil, nil, done)
	defer srv.Close()

	w, err := Dial(context.Background(), wsURL(srv), "", logging.NewDiscard())
	require.NoError(t, err)

	require.NoError(t, w.Close())
	assert.False(t, w.Connected())
	assert.ErrorIs(t, w.Emit(EventChatMessage, nil), ErrClosed)
}

func TestWS_DialFailure(t *testing.T) {
	_, err := Dial(context.Background(), "ws://127.0.0.1:1/nope", "", logging.NewDiscard())
	assert.Error(t, err)
}
