package netview

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/milk9111/slash/pkg/logger"
	"github.com/sirupsen/logrus"
)

const writeWait = 2 * time.Second

// Hub fans simulation frames out to websocket spectators. The simulation
// loop publishes; connection goroutines only read to notice disconnects.
type Hub struct {
	mu          sync.Mutex
	subscribers map[uint64]*subscriber
	latest      []byte
	schema      []byte
	nextID      atomic.Uint64
	upgrader    websocket.Upgrader
	log         *logrus.Entry
}

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[uint64]*subscriber),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		log: logger.For("netview"),
	}
}

// Handler serves /ws for spectators, /state for the latest frame and
// /schema for the frame schema when one was set.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.serveWS)
	mux.HandleFunc("/state", h.serveState)
	mux.HandleFunc("/schema", h.serveSchema)
	return mux
}

// SetSchema sets the JSON schema document served at /schema.
func (h *Hub) SetSchema(schema []byte) {
	h.mu.Lock()
	h.schema = schema
	h.mu.Unlock()
}

// Count is the number of connected spectators.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Publish stores frame as the latest state and sends it to every spectator.
func (h *Hub) Publish(frame []byte) {
	h.mu.Lock()
	h.latest = frame
	subs := make(map[uint64]*subscriber, len(h.subscribers))
	for id, sub := range h.subscribers {
		subs[id] = sub
	}
	h.mu.Unlock()

	for id, sub := range subs {
		if err := sub.write(websocket.TextMessage, frame); err != nil {
			h.log.WithField("subscriber", id).WithError(err).Warn("send frame")
			h.disconnect(id)
		}
	}
}

// Close drops every spectator.
func (h *Hub) Close() {
	h.mu.Lock()
	subs := h.subscribers
	h.subscribers = make(map[uint64]*subscriber)
	h.mu.Unlock()
	for _, sub := range subs {
		message := websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down")
		_ = sub.write(websocket.CloseMessage, message)
		sub.conn.Close()
	}
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("upgrade failed")
		return
	}
	id, sub, latest := h.subscribe(conn)
	h.log.WithFields(logrus.Fields{"subscriber": id, "remote": r.RemoteAddr}).Info("spectator joined")

	if latest != nil {
		if err := sub.write(websocket.TextMessage, latest); err != nil {
			h.disconnect(id)
			return
		}
	}
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.disconnect(id)
			return
		}
	}
}

func (h *Hub) serveState(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	latest := h.latest
	h.mu.Unlock()
	if latest == nil {
		http.Error(w, "no state yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(latest)
}

func (h *Hub) serveSchema(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	schema := h.schema
	h.mu.Unlock()
	if schema == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/schema+json")
	w.Write(schema)
}

func (h *Hub) subscribe(conn *websocket.Conn) (uint64, *subscriber, []byte) {
	id := h.nextID.Add(1)
	sub := &subscriber{conn: conn}
	h.mu.Lock()
	h.subscribers[id] = sub
	latest := h.latest
	h.mu.Unlock()
	return id, sub, latest
}

func (h *Hub) disconnect(id uint64) {
	h.mu.Lock()
	sub, ok := h.subscribers[id]
	delete(h.subscribers, id)
	h.mu.Unlock()
	if ok {
		sub.conn.Close()
		h.log.WithField("subscriber", id).Info("spectator left")
	}
}

func (s *subscriber) write(kind int, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(kind, data)
}
