package webevents

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/gorilla/websocket"
	"github.com/matryer/is"

	"github.com/curbsense/parking-space-mgmt/pkg/types"
)

func TestStartSubscribesToStateTopics(t *testing.T) {
	is := is.New(t)

	topics := []string{}
	m := &messaging.MsgContextMock{
		RegisterTopicMessageHandlerFunc: func(routingKey string, handler messaging.TopicMessageHandler) error {
			topics = append(topics, routingKey)
			return nil
		},
	}

	we := New(m)
	is.NoErr(we.Start(context.Background()))
	is.Equal(topics, []string{"space.stateChanged", "reservation.created", "reservation.cancelled"})
}

func TestPublishReachesSubscribedTenant(t *testing.T) {
	is := is.New(t)
	we := New(&messaging.MsgContextMock{})
	defer we.Shutdown(context.Background())

	conn := dial(t, we, []string{"acme"})
	defer conn.Close()

	we.Publish("space.stateChanged", "acme", types.SpaceStateChanged{
		SpaceID:  "space-1",
		Tenant:   "acme",
		NewState: types.SpaceStateOccupied,
	})

	env := readEnvelope(t, conn)
	is.Equal(env.Event, "space.stateChanged")
	is.Equal(env.Tenant, "acme")

	var msg types.SpaceStateChanged
	is.NoErr(json.Unmarshal(env.Data, &msg))
	is.Equal(msg.SpaceID, "space-1")
	is.Equal(msg.NewState, types.SpaceStateOccupied)
}

func TestPublishDoesNotLeakAcrossTenants(t *testing.T) {
	is := is.New(t)
	we := New(&messaging.MsgContextMock{})
	defer we.Shutdown(context.Background())

	other := dial(t, we, []string{"other"})
	defer other.Close()
	acme := dial(t, we, []string{"acme"})
	defer acme.Close()

	we.Publish("space.stateChanged", "acme", types.SpaceStateChanged{SpaceID: "space-1", Tenant: "acme"})

	env := readEnvelope(t, acme)
	is.Equal(env.Tenant, "acme")

	other.SetReadDeadline(time.Now().Add(50 * time.Millisecond))
	_, _, err := other.ReadMessage()
	is.True(err != nil) // nothing delivered to the other tenant
}

func TestForwarderPublishesIncomingMessages(t *testing.T) {
	is := is.New(t)

	handlers := map[string]messaging.TopicMessageHandler{}
	m := &messaging.MsgContextMock{
		RegisterTopicMessageHandlerFunc: func(routingKey string, handler messaging.TopicMessageHandler) error {
			handlers[routingKey] = handler
			return nil
		},
	}

	we := New(m)
	defer we.Shutdown(context.Background())
	is.NoErr(we.Start(context.Background()))

	conn := dial(t, we, nil)
	defer conn.Close()

	evt := types.ReservationCreated{ReservationID: "res-1", SpaceID: "space-1", Tenant: "acme"}
	handlers["reservation.created"](context.Background(), &messaging.IncomingTopicMessageMock{
		BodyFunc: func() []byte {
			b, _ := json.Marshal(evt)
			return b
		},
	}, slog.Default())

	env := readEnvelope(t, conn)
	is.Equal(env.Event, "reservation.created")
	is.Equal(env.Tenant, "acme")
}

func dial(t *testing.T, we WebEvents, tenants []string) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		we.ServeWebsocket(w, r, tenants)
	}))
	t.Cleanup(srv.Close)

	before := clientCount(we)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}

	// wait for the server side to register the connection
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if clientCount(we) > before {
			return conn
		}
		time.Sleep(time.Millisecond)
	}

	return conn
}

func clientCount(we WebEvents) int {
	impl := we.(*webEvents)
	impl.mu.Lock()
	defer impl.mu.Unlock()
	return len(impl.clients)
}

func readEnvelope(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, frame, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}

	var env Envelope
	err = json.Unmarshal(frame, &env)
	if err != nil {
		t.Fatal(err)
	}

	return env
}
