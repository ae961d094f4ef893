package channel

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ktb-chat/chatclient/internal/logging"
)

const handshakeTimeout = 10 * time.Second

// WS is a websocket-backed realtime channel. One goroutine runs the read
// pump (Listen); writes from other goroutines are serialized by a mutex since
// the underlying connection allows a single concurrent writer.
type WS struct {
	conn      *websocket.Conn
	connected atomic.Bool
	log       logging.Logger

	writeMu sync.Mutex

	handlerMu    sync.RWMutex
	handlers     map[string]Handler
	onSessionEnd func()
}

// Dial connects to the realtime endpoint. A non-empty token is presented as
// a bearer Authorization header during the handshake.
func Dial(ctx context.Context, url, token string, log logging.Logger) (*WS, error) {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}

	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, resp, err := dialer.DialContext(ctx, url, header)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}

	w := &WS{
		conn:     conn,
		log:      log,
		handlers: make(map[string]Handler),
	}
	w.connected.Store(true)
	return w, nil
}

// On registers the handler for an inbound event, replacing any previous one.
// Register handlers before starting Listen.
func (w *WS) On(event string, h Handler) {
	w.handlerMu.Lock()
	defer w.handlerMu.Unlock()
	w.handlers[event] = h
}

// OnSessionEnd registers the callback invoked when the server ends the
// session. Session handling itself is the caller's business.
func (w *WS) OnSessionEnd(fn func()) {
	w.handlerMu.Lock()
	defer w.handlerMu.Unlock()
	w.onSessionEnd = fn
}

// Connected reports whether the channel can still emit.
func (w *WS) Connected() bool {
	return w.connected.Load()
}

// Emit sends one event frame. A write failure marks the channel disconnected;
// there is no automatic reconnect.
func (w *WS) Emit(event string, payload any) error {
	if !w.connected.Load() {
		return ErrClosed
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(Frame{Event: event, Data: data})
	if err != nil {
		return err
	}

	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	if err := w.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
		w.connected.Store(false)
		return err
	}
	return nil
}

// Listen runs the read pump until the connection drops. Run it on its own
// goroutine; it returns after marking the channel disconnected.
func (w *WS) Listen(ctx context.Context) {
	defer w.connected.Store(false)

	for {
		_, raw, err := w.conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				w.log.Warn(ctx, "channel read failed", "error", err)
			}
			return
		}

		var f Frame
		if err := json.Unmarshal(raw, &f); err != nil {
			w.log.Warn(ctx, "dropping malformed frame", "error", err)
			continue
		}

		if f.Event == EventSessionEnded {
			w.handlerMu.RLock()
			fn := w.onSessionEnd
			w.handlerMu.RUnlock()
			if fn != nil {
				fn()
			}
			continue
		}

		w.handlerMu.RLock()
		h := w.handlers[f.Event]
		w.handlerMu.RUnlock()
		if h == nil {
			w.log.Debug(ctx, "no handler for event", "event", f.Event)
			continue
		}
		h(f.Data)
	}
}

// Close tears the connection down.
func (w *WS) Close() error {
	w.connected.Store(false)
	return w.conn.Close()
}
