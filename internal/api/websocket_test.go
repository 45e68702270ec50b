package api

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/blaaiz/blaaiz-go/pkg/blaaiz"
)

func (e *testEnv) dial(t *testing.T, query string, header http.Header) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(e.server.URL, "http") + "/ws/events" + query
	return websocket.DefaultDialer.Dial(url, header)
}

func readStreamMessage(t *testing.T, conn *websocket.Conn) StreamMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg StreamMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("Failed to read stream message: %v", err)
	}
	return msg
}

func TestEventStream_ReceivesWebhooks(t *testing.T) {
	env := newTestEnv(t, http.StatusOK)
	token, subscriber, err := env.auth.IssueToken("dashboard")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	conn, _, err := env.dial(t, "?token="+token, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()

	welcome := readStreamMessage(t, conn)
	if welcome.Type != "connected" {
		t.Fatalf("Expected connected message, got %s", welcome.Type)
	}
	payload, _ := welcome.Payload.(map[string]interface{})
	if payload["subscriber_id"] != subscriber.ID {
		t.Errorf("Expected subscriber_id %s, got %v", subscriber.ID, payload["subscriber_id"])
	}

	body := `{"transaction_id":"tx-stream","status":"SUCCESSFUL"}`
	_, decoded := env.postWebhook(t, body, blaaiz.Sign([]byte(body), testWebhookSecret))
	data, _ := decoded.Data.(map[string]interface{})

	msg := readStreamMessage(t, conn)
	if msg.Type != "webhook" {
		t.Fatalf("Expected webhook message, got %s", msg.Type)
	}
	if msg.DeliveryID != data["delivery_id"] {
		t.Errorf("Expected delivery_id %v, got %s", data["delivery_id"], msg.DeliveryID)
	}
	if msg.Event["transaction_id"] != "tx-stream" {
		t.Errorf("Expected transaction_id tx-stream, got %v", msg.Event["transaction_id"])
	}
	if msg.Event["verified"] != true {
		t.Errorf("Expected verified event, got %v", msg.Event["verified"])
	}
}

func TestEventStream_Ping(t *testing.T) {
	env := newTestEnv(t, http.StatusOK)
	token, _, _ := env.auth.IssueToken("dashboard")

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	conn, _, err := env.dial(t, "", header)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()
	readStreamMessage(t, conn)

	if err := conn.WriteJSON(map[string]string{"type": "ping"}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if msg := readStreamMessage(t, conn); msg.Type != "pong" {
		t.Errorf("Expected pong, got %s", msg.Type)
	}

	if err := conn.WriteJSON(map[string]string{"type": "subscribe"}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if msg := readStreamMessage(t, conn); msg.Type != "error" {
		t.Errorf("Expected error, got %s", msg.Type)
	}
}

func TestEventStream_RequiresToken(t *testing.T) {
	env := newTestEnv(t, http.StatusOK)

	tests := []struct {
		name   string
		query  string
		header http.Header
	}{
		{"no token", "", nil},
		{"bad token", "?token=garbage", nil},
		{"bad scheme", "", http.Header{"Authorization": []string{"Basic abc"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, resp, err := env.dial(t, tt.query, tt.header)
			if err == nil {
				conn.Close()
				t.Fatal("Expected dial to fail")
			}
			if resp == nil || resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("Expected status 401, got %v", resp)
			}
		})
	}
}

func TestHub_BroadcastWithoutClients(t *testing.T) {
	hub := NewHub()
	if got := hub.Broadcast(&StreamMessage{Type: "webhook"}); got != 0 {
		t.Errorf("Expected 0 deliveries, got %d", got)
	}
	if hub.Count() != 0 {
		t.Errorf("Expected 0 clients, got %d", hub.Count())
	}
}

func TestHub_FullBufferDrops(t *testing.T) {
	hub := NewHub()
	client := &WSClient{send: make(chan []byte, 1)}
	hub.clients[client] = struct{}{}

	if got := hub.Broadcast(&StreamMessage{Type: "webhook"}); got != 1 {
		t.Errorf("Expected 1 delivery, got %d", got)
	}
	if got := hub.Broadcast(&StreamMessage{Type: "webhook"}); got != 0 {
		t.Errorf("Expected full buffer to drop, got %d", got)
	}

	hub.remove(client)
	hub.remove(client)
	if hub.Count() != 0 {
		t.Errorf("Expected 0 clients, got %d", hub.Count())
	}
}
