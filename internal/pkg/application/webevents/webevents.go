package webevents

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/gorilla/websocket"

	"github.com/curbsense/parking-space-mgmt/pkg/types"
)

// Envelope is the frame pushed to connected clients.
type Envelope struct {
	Event     string          `json:"event"`
	Tenant    string          `json:"tenant"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// WebEvents pushes state change notifications to websocket clients.
// Each client subscribes with the set of tenants it may see and only
// receives events for those tenants.
type WebEvents interface {
	Start(ctx context.Context) error
	ServeWebsocket(w http.ResponseWriter, r *http.Request, allowedTenants []string)
	Publish(event, tenant string, data any)
	Shutdown(ctx context.Context)
}

type client struct {
	conn    *websocket.Conn
	tenants map[string]struct{}
	send    chan []byte
}

func (c *client) allows(tenant string) bool {
	if len(c.tenants) == 0 {
		return true
	}
	_, ok := c.tenants[tenant]
	return ok
}

type webEvents struct {
	messenger messaging.MsgContext
	upgrader  websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}

	done      chan struct{}
	closeOnce sync.Once
}

func New(messenger messaging.MsgContext) WebEvents {
	return &webEvents{
		messenger: messenger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clients: map[*client]struct{}{},
		done:    make(chan struct{}),
	}
}

// Start subscribes to the internal topics that are forwarded to
// websocket clients.
func (we *webEvents) Start(ctx context.Context) error {
	err := we.messenger.RegisterTopicMessageHandler("space.stateChanged", newForwarder[types.SpaceStateChanged](we, "space.stateChanged"))
	if err != nil {
		return err
	}

	err = we.messenger.RegisterTopicMessageHandler("reservation.created", newForwarder[types.ReservationCreated](we, "reservation.created"))
	if err != nil {
		return err
	}

	return we.messenger.RegisterTopicMessageHandler("reservation.cancelled", newForwarder[types.ReservationCancelled](we, "reservation.cancelled"))
}

type tenanted interface {
	types.SpaceStateChanged | types.ReservationCreated | types.ReservationCancelled
}

func newForwarder[T tenanted](we *webEvents, event string) messaging.TopicMessageHandler {
	return func(ctx context.Context, itm messaging.IncomingTopicMessage, l *slog.Logger) {
		var msg T
		err := json.Unmarshal(itm.Body(), &msg)
		if err != nil {
			l.Error("failed to unmarshal message", "event", event, "err", err.Error())
			return
		}

		tenant := tenantOf(msg)
		we.Publish(event, tenant, msg)
	}
}

func tenantOf(msg any) string {
	switch m := msg.(type) {
	case types.SpaceStateChanged:
		return m.Tenant
	case types.ReservationCreated:
		return m.Tenant
	case types.ReservationCancelled:
		return m.Tenant
	}
	return ""
}

// ServeWebsocket upgrades the request and keeps the connection until
// the client goes away or the server shuts down.
func (we *webEvents) ServeWebsocket(w http.ResponseWriter, r *http.Request, allowedTenants []string) {
	log := logging.GetFromContext(r.Context())

	conn, err := we.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade to websocket", "err", err.Error())
		return
	}

	c := &client{
		conn:    conn,
		tenants: map[string]struct{}{},
		send:    make(chan []byte, 32),
	}
	for _, t := range allowedTenants {
		c.tenants[t] = struct{}{}
	}

	we.mu.Lock()
	we.clients[c] = struct{}{}
	we.mu.Unlock()

	go we.writeLoop(c)
	we.readLoop(r.Context(), c)
}

// Publish fans the event out to every client allowed to see the tenant.
// Slow clients are disconnected rather than allowed to block the rest.
func (we *webEvents) Publish(event, tenant string, data any) {
	b, err := json.Marshal(data)
	if err != nil {
		return
	}

	frame, err := json.Marshal(Envelope{
		Event:     event,
		Tenant:    tenant,
		Data:      b,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return
	}

	we.mu.Lock()
	defer we.mu.Unlock()

	for c := range we.clients {
		if !c.allows(tenant) {
			continue
		}

		select {
		case c.send <- frame:
		default:
			delete(we.clients, c)
			close(c.send)
		}
	}
}

func (we *webEvents) Shutdown(ctx context.Context) {
	we.closeOnce.Do(func() {
		close(we.done)
	})

	we.mu.Lock()
	defer we.mu.Unlock()

	for c := range we.clients {
		delete(we.clients, c)
		close(c.send)
	}
}

func (we *webEvents) writeLoop(c *client) {
	defer c.conn.Close()

	for {
		select {
		case frame, ok := <-c.send:
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}

			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			err := c.conn.WriteMessage(websocket.TextMessage, frame)
			if err != nil {
				we.remove(c)
				return
			}
		case <-we.done:
			return
		}
	}
}

// readLoop exists to detect client disconnects, inbound frames are
// otherwise ignored.
func (we *webEvents) readLoop(ctx context.Context, c *client) {
	for {
		_, _, err := c.conn.ReadMessage()
		if err != nil {
			we.remove(c)
			return
		}
	}
}

func (we *webEvents) remove(c *client) {
	we.mu.Lock()
	defer we.mu.Unlock()

	if _, ok := we.clients[c]; ok {
		delete(we.clients, c)
		close(c.send)
	}
}
