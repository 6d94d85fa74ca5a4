package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"daynight/internal/app/ports"
	"daynight/internal/domain/cycle"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait   = 5 * time.Second
	readWait    = 60 * time.Second
	clientQueue = 4
)

// Message is the envelope for everything the hub writes.
type Message struct {
	Type  string       `json:"type"`
	Frame *cycle.Frame `json:"frame,omitempty"`
	Error string       `json:"error,omitempty"`
}

// ControlMessage lets a connected client move the sliders.
type ControlMessage struct {
	Type  string   `json:"type"`
	Value *float64 `json:"value"`
}

// Hub fans frames out to websocket clients. Slow clients only ever see the
// newest frames; older ones are dropped from their queue.
type Hub struct {
	log      *zap.Logger
	controls ports.CycleControls
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[uint64]chan []byte
	nextID  atomic.Uint64
	latest  atomic.Pointer[[]byte]
}

func NewHub(controls ports.CycleControls, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		log:      logger.With(zap.String("component", "ws")),
		controls: controls,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: map[uint64]chan []byte{},
	}
}

func (h *Hub) Observe(frame cycle.Frame) {
	b, err := json.Marshal(Message{Type: "frame", Frame: &frame})
	if err != nil {
		h.log.Error("encode frame", zap.Error(err))
		return
	}
	h.latest.Store(&b)

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.clients {
		sendLatest(ch, b)
	}
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		id, out := h.join()
		defer h.leave(id)

		if b := h.latest.Load(); b != nil {
			sendLatest(out, *b)
		}

		done := make(chan struct{})
		writerDone := make(chan struct{})
		go func() {
			defer close(writerDone)
			for {
				select {
				case <-done:
					return
				case b := <-out:
					_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						return
					}
				}
			}
		}()

		for {
			_ = conn.SetReadDeadline(time.Now().Add(readWait))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				break
			}
			if reply := h.handleControl(msg); reply != nil {
				sendLatest(out, reply)
			}
		}

		close(done)
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"), time.Now().Add(time.Second))
		select {
		case <-writerDone:
		case <-time.After(500 * time.Millisecond):
		}
	}
}

func (h *Hub) join() (uint64, chan []byte) {
	id := h.nextID.Add(1)
	ch := make(chan []byte, clientQueue)
	h.mu.Lock()
	h.clients[id] = ch
	n := len(h.clients)
	h.mu.Unlock()
	h.log.Debug("client joined", zap.Uint64("client", id), zap.Int("clients", n))
	return id, ch
}

func (h *Hub) leave(id uint64) {
	h.mu.Lock()
	delete(h.clients, id)
	n := len(h.clients)
	h.mu.Unlock()
	h.log.Debug("client left", zap.Uint64("client", id), zap.Int("clients", n))
}

func (h *Hub) handleControl(msg []byte) []byte {
	var cm ControlMessage
	if err := json.Unmarshal(msg, &cm); err != nil {
		return encodeError("invalid json")
	}
	if h.controls == nil {
		return encodeError("controls disabled")
	}
	if cm.Value == nil {
		return encodeError("missing value")
	}
	var err error
	switch cm.Type {
	case "multiplier":
		err = h.controls.SetMultiplier(*cm.Value)
	case "hour":
		err = h.controls.SetHour(*cm.Value)
	default:
		return encodeError("unknown control " + cm.Type)
	}
	if err != nil {
		return encodeError(err.Error())
	}
	return nil
}

func encodeError(msg string) []byte {
	b, _ := json.Marshal(Message{Type: "error", Error: msg})
	return b
}

// sendLatest enqueues b, evicting the oldest queued message when full.
func sendLatest(ch chan []byte, b []byte) {
	select {
	case ch <- b:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- b:
	default:
	}
}
