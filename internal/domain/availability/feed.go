package availability

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// EventType for feed messages
type EventType string

const EventAvailabilityChanged EventType = "availability_changed"

const feedChannelPrefix = "availability:feed:"

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
	sendBuffer     = 16
)

// Event is pushed to every client watching a room
type Event struct {
	Type   EventType `json:"type"`
	RoomID string    `json:"room_id"`
	Dates  []string  `json:"dates"`
}

// Client is one websocket watching one room
type Client struct {
	RoomID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// Feed fans availability changes out to websocket clients. With Redis every
// API instance receives every event; without it events stay local.
type Feed struct {
	rooms map[string]map[*Client]bool
	mu    sync.RWMutex

	redis  *redis.Client
	pubsub *redis.PubSub

	register   chan *Client
	unregister chan *Client

	ctx    context.Context
	cancel context.CancelFunc
}

func NewFeed(redisClient *redis.Client) *Feed {
	ctx, cancel := context.WithCancel(context.Background())
	f := &Feed{
		rooms:      make(map[string]map[*Client]bool),
		redis:      redisClient,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		ctx:        ctx,
		cancel:     cancel,
	}
	if redisClient != nil {
		f.pubsub = redisClient.PSubscribe(ctx, feedChannelPrefix+"*")
	}
	return f
}

// Run starts the feed (call in goroutine)
func (f *Feed) Run() {
	if f.pubsub != nil {
		go f.runRedisSubscriber()
	}

	for {
		select {
		case <-f.ctx.Done():
			return

		case c := <-f.register:
			f.mu.Lock()
			if f.rooms[c.RoomID] == nil {
				f.rooms[c.RoomID] = make(map[*Client]bool)
			}
			f.rooms[c.RoomID][c] = true
			f.mu.Unlock()
			log.Debug().Str("room_id", c.RoomID).Msg("availability watcher connected")

		case c := <-f.unregister:
			f.mu.Lock()
			if clients, ok := f.rooms[c.RoomID]; ok {
				if _, exists := clients[c]; exists {
					delete(clients, c)
					close(c.Send)
				}
				if len(clients) == 0 {
					delete(f.rooms, c.RoomID)
				}
			}
			f.mu.Unlock()
		}
	}
}

// Close stops the feed and its Redis subscription
func (f *Feed) Close() {
	f.cancel()
	if f.pubsub != nil {
		_ = f.pubsub.Close()
	}
}

func (f *Feed) runRedisSubscriber() {
	ch := f.pubsub.Channel()
	for {
		select {
		case <-f.ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			roomID := strings.TrimPrefix(msg.Channel, feedChannelPrefix)
			if roomID == msg.Channel || roomID == "" {
				continue
			}
			f.broadcastLocal(roomID, []byte(msg.Payload))
		}
	}
}

func (f *Feed) broadcastLocal(roomID string, data []byte) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for c := range f.rooms[roomID] {
		select {
		case c.Send <- data:
		default:
			log.Warn().Str("room_id", roomID).Msg("availability watcher buffer full")
		}
	}
}

// Publish announces that nights of a room changed
func (f *Feed) Publish(ctx context.Context, roomID string, dates []string) error {
	data, err := json.Marshal(Event{Type: EventAvailabilityChanged, RoomID: roomID, Dates: dates})
	if err != nil {
		return err
	}

	if f.redis != nil {
		err := f.redis.Publish(ctx, feedChannelPrefix+roomID, data).Err()
		if err == nil {
			return nil
		}
		log.Error().Err(err).Str("room_id", roomID).Msg("redis publish failed, broadcasting locally")
	}
	f.broadcastLocal(roomID, data)
	return nil
}

// Watchers returns the number of local clients watching a room
func (f *Feed) Watchers(roomID string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.rooms[roomID])
}

// Serve registers conn as a watcher of roomID and pumps events until the
// client goes away.
func (f *Feed) Serve(roomID string, conn *websocket.Conn) {
	c := &Client{RoomID: roomID, Conn: conn, Send: make(chan []byte, sendBuffer)}

	select {
	case f.register <- c:
	case <-f.ctx.Done():
		conn.Close()
		return
	}

	go f.writePump(c)
	f.readPump(c)
}

// readPump drains client frames so pongs and close frames are processed
func (f *Feed) readPump(c *Client) {
	defer func() {
		select {
		case f.unregister <- c:
		case <-f.ctx.Done():
		}
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (f *Feed) writePump(c *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
