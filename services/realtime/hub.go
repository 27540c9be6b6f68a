package realtime

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 5 * time.Second
	sendBufferSize = 64
)

// Hub is an in-process alternative to Pusher used when no Pusher
// credentials are configured. Clients connect over an authenticated
// websocket and receive the same event frames their private channel would
// carry.
type Hub struct {
	secret string

	mu    sync.RWMutex
	conns map[uuid.UUID]map[*hubClient]bool
}

// hubClient wraps a websocket connection with a buffered send queue. All
// writes to the connection go through the queue and a single writer
// goroutine, which gorilla/websocket requires.
type hubClient struct {
	conn *websocket.Conn
	send chan []byte
}

func NewHub(secret string) *Hub {
	return &Hub{
		secret: secret,
		conns:  make(map[uuid.UUID]map[*hubClient]bool),
	}
}

// Register attaches a websocket connection to its owner's channel and
// keeps it drained until the peer goes away.
func (h *Hub) Register(userID uuid.UUID, conn *websocket.Conn) {
	client := &hubClient{
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
	h.mu.Lock()
	if h.conns[userID] == nil {
		h.conns[userID] = make(map[*hubClient]bool)
	}
	h.conns[userID][client] = true
	h.mu.Unlock()

	go h.writePump(userID, client)
	go h.readPump(userID, client)
}

func (h *Hub) writePump(userID uuid.UUID, client *hubClient) {
	for frame := range client.send {
		client.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			log.Printf("realtime: dropping dead connection for %s: %v", userID, err)
			h.unregister(userID, client)
			return
		}
	}
}

func (h *Hub) readPump(userID uuid.UUID, client *hubClient) {
	defer h.unregister(userID, client)
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// unregister removes the client and closes its send queue exactly once;
// the presence check makes concurrent calls from both pumps safe.
func (h *Hub) unregister(userID uuid.UUID, client *hubClient) {
	h.mu.Lock()
	if set, ok := h.conns[userID]; ok {
		if set[client] {
			delete(set, client)
			close(client.send)
		}
		if len(set) == 0 {
			delete(h.conns, userID)
		}
	}
	h.mu.Unlock()
	client.conn.Close()
}

type eventFrame struct {
	Channel string      `json:"channel"`
	Event   string      `json:"event"`
	Data    interface{} `json:"data"`
}

// Publish queues the event frame on every connection the target owns. The
// queue sends happen under the read lock so they cannot race the close in
// unregister; clients whose queue is full are dropped after the lock is
// released.
func (h *Hub) Publish(targetID uuid.UUID, event Event, payload interface{}) error {
	frame, err := json.Marshal(eventFrame{
		Channel: ChannelFor(targetID),
		Event:   string(event),
		Data:    payload,
	})
	if err != nil {
		return err
	}

	var slow []*hubClient
	h.mu.RLock()
	for client := range h.conns[targetID] {
		select {
		case client.send <- frame:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		log.Printf("realtime: dropping slow connection for %s", targetID)
		h.unregister(targetID, client)
	}
	return nil
}

// AuthorizeChannel signs a grant the same way Pusher does so clients can
// use one auth flow in both modes.
func (h *Hub) AuthorizeChannel(socketID, channelName string) ([]byte, error) {
	mac := hmac.New(sha256.New, []byte(h.secret))
	fmt.Fprintf(mac, "%s:%s", socketID, channelName)
	sig := hex.EncodeToString(mac.Sum(nil))
	return json.Marshal(map[string]string{"auth": "local:" + sig})
}
