package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/grindhub/grindhub/pkg/middleware"
)

const testSecret = "test-secret"

// newTestServer starts a hub plus its websocket handler on an httptest server
func newTestServer(t *testing.T, responder Responder) (*Hub, *httptest.Server) {
	t.Helper()

	hub := NewHub(responder)
	go hub.Run()
	t.Cleanup(func() {
		if err := hub.Shutdown(2 * time.Second); err != nil {
			t.Logf("Hub shutdown: %v", err)
		}
	})

	handler := NewHandler(hub, testSecret, []string{"*"})
	server := httptest.NewServer(http.HandlerFunc(handler.ServeWS))
	t.Cleanup(server.Close)

	return hub, server
}

// dial connects as the given user with a freshly issued token
func dial(t *testing.T, server *httptest.Server, userID string) *websocket.Conn {
	t.Helper()

	token, err := middleware.IssueToken(testSecret, userID, userID+"@example.com")
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to dial as %s: %v", userID, err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

// waitForConnections polls until the hub tracks want connections for userID
func waitForConnections(t *testing.T, hub *Hub, userID string, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(hub.connectionsFor([]string{userID})) == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("Timed out waiting for %d connections for user %s", want, userID)
}

func readEvent(t *testing.T, conn *websocket.Conn, timeout time.Duration) map[string]interface{} {
	t.Helper()

	if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		t.Fatalf("Failed to set read deadline: %v", err)
	}
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read event: %v", err)
	}
	var event map[string]interface{}
	if err := json.Unmarshal(raw, &event); err != nil {
		t.Fatalf("Event is not valid JSON: %v", err)
	}
	return event
}

func TestRejectsRequestWithoutToken(t *testing.T) {
	_, server := newTestServer(t, nil)

	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", resp.StatusCode)
	}
}

func TestRejectsTokenSignedWithWrongSecret(t *testing.T) {
	_, server := newTestServer(t, nil)

	token, err := middleware.IssueToken("other-secret", "u1", "u1@example.com")
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	resp, err := http.Get(server.URL + "?token=" + token)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", resp.StatusCode)
	}
}

func TestRejectsNonGetRequest(t *testing.T) {
	_, server := newTestServer(t, nil)

	resp, err := http.Post(server.URL, "application/json", nil)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", resp.StatusCode)
	}
}

func TestPublishChatReachesOnlyTargetUsers(t *testing.T) {
	hub, server := newTestServer(t, nil)

	alice := dial(t, server, "u-alice")
	bob := dial(t, server, "u-bob")
	waitForConnections(t, hub, "u-alice", 1)
	waitForConnections(t, hub, "u-bob", 1)

	hub.PublishChat("g1", "m1", "alice", "hello group", []string{"u-alice"})

	event := readEvent(t, alice, 2*time.Second)
	if event["type"] != EventChatMessage {
		t.Errorf("Expected %s event, got %v", EventChatMessage, event["type"])
	}
	if event["message"] != "hello group" || event["groupid"] != "g1" {
		t.Errorf("Unexpected event payload: %v", event)
	}

	// bob is not in the target set and must receive nothing
	if err := bob.SetReadDeadline(time.Now().Add(200 * time.Millisecond)); err != nil {
		t.Fatalf("Failed to set read deadline: %v", err)
	}
	if _, _, err := bob.ReadMessage(); err == nil {
		t.Error("Expected no delivery to a non-member connection")
	}
}

func TestPublishChatReachesAllConnectionsOfAUser(t *testing.T) {
	hub, server := newTestServer(t, nil)

	first := dial(t, server, "u-alice")
	second := dial(t, server, "u-alice")
	waitForConnections(t, hub, "u-alice", 2)

	hub.PublishChat("g1", "m1", "alice", "hello", []string{"u-alice"})

	for i, conn := range []*websocket.Conn{first, second} {
		event := readEvent(t, conn, 2*time.Second)
		if event["messageid"] != "m1" {
			t.Errorf("Connection %d: expected message m1, got %v", i, event["messageid"])
		}
	}
}

func TestOfflineTargetIsSkipped(t *testing.T) {
	hub, server := newTestServer(t, nil)

	alice := dial(t, server, "u-alice")
	waitForConnections(t, hub, "u-alice", 1)

	hub.PublishChat("g1", "m1", "alice", "first", []string{"u-offline"})
	hub.PublishChat("g1", "m2", "alice", "second", []string{"u-alice"})

	// the publish to the offline user is dropped; alice still gets hers
	event := readEvent(t, alice, 2*time.Second)
	if event["messageid"] != "m2" {
		t.Errorf("Expected message m2, got %v", event["messageid"])
	}
}

func TestUserMessageGetsAssistantReply(t *testing.T) {
	hub, server := newTestServer(t, staticResponder{})

	alice := dial(t, server, "u-alice")
	waitForConnections(t, hub, "u-alice", 1)

	prompt := UserMessageEvent{
		Type:    EventUserMessage,
		Message: "when is the exam?",
		Context: []ContextEntry{{Sender: "alice", Message: "hi"}},
	}
	if err := alice.WriteJSON(prompt); err != nil {
		t.Fatalf("Failed to send prompt: %v", err)
	}

	event := readEvent(t, alice, 2*time.Second)
	if event["type"] != EventAssistantReply {
		t.Fatalf("Expected %s event, got %v", EventAssistantReply, event["type"])
	}
	if event["sender"] != assistantTag {
		t.Errorf("Expected sender %q, got %v", assistantTag, event["sender"])
	}
	if event["message"] == "" {
		t.Error("Expected a non-empty assistant reply")
	}
}

func TestAssistantReplyStaysOnPromptingConnection(t *testing.T) {
	hub, server := newTestServer(t, staticResponder{})

	alice := dial(t, server, "u-alice")
	bob := dial(t, server, "u-bob")
	waitForConnections(t, hub, "u-alice", 1)
	waitForConnections(t, hub, "u-bob", 1)

	prompt := UserMessageEvent{Type: EventUserMessage, Message: "help me revise"}
	if err := alice.WriteJSON(prompt); err != nil {
		t.Fatalf("Failed to send prompt: %v", err)
	}

	event := readEvent(t, alice, 2*time.Second)
	if event["type"] != EventAssistantReply {
		t.Fatalf("Expected %s event, got %v", EventAssistantReply, event["type"])
	}

	if err := bob.SetReadDeadline(time.Now().Add(200 * time.Millisecond)); err != nil {
		t.Fatalf("Failed to set read deadline: %v", err)
	}
	if _, _, err := bob.ReadMessage(); err == nil {
		t.Error("Expected the assistant reply to stay on the prompting connection")
	}
}

func TestBlankAssistantPromptIsIgnored(t *testing.T) {
	hub, server := newTestServer(t, staticResponder{})

	alice := dial(t, server, "u-alice")
	waitForConnections(t, hub, "u-alice", 1)

	prompt := UserMessageEvent{Type: EventUserMessage, Message: "   "}
	if err := alice.WriteJSON(prompt); err != nil {
		t.Fatalf("Failed to send prompt: %v", err)
	}

	if err := alice.SetReadDeadline(time.Now().Add(200 * time.Millisecond)); err != nil {
		t.Fatalf("Failed to set read deadline: %v", err)
	}
	if _, _, err := alice.ReadMessage(); err == nil {
		t.Error("Expected no reply to a blank prompt")
	}
}

func TestDisconnectRemovesClient(t *testing.T) {
	hub, server := newTestServer(t, nil)

	alice := dial(t, server, "u-alice")
	waitForConnections(t, hub, "u-alice", 1)

	alice.Close()
	waitForConnections(t, hub, "u-alice", 0)
}

func TestShutdownClosesConnections(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	handler := NewHandler(hub, testSecret, []string{"*"})
	server := httptest.NewServer(http.HandlerFunc(handler.ServeWS))
	defer server.Close()

	alice := dial(t, server, "u-alice")
	waitForConnections(t, hub, "u-alice", 1)

	if err := hub.Shutdown(2 * time.Second); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}

	if err := alice.SetReadDeadline(time.Now().Add(time.Second)); err != nil {
		t.Fatalf("Failed to set read deadline: %v", err)
	}
	if _, _, err := alice.ReadMessage(); err == nil {
		t.Error("Expected the connection to be closed after shutdown")
	}
}

func TestShutdownFinishesPromptlyWithConnectedClients(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	handler := NewHandler(hub, testSecret, []string{"*"})
	server := httptest.NewServer(http.HandlerFunc(handler.ServeWS))
	defer server.Close()

	dial(t, server, "u-alice")
	dial(t, server, "u-alice")
	dial(t, server, "u-bob")
	waitForConnections(t, hub, "u-alice", 2)
	waitForConnections(t, hub, "u-bob", 1)

	start := time.Now()
	if err := hub.Shutdown(3 * time.Second); err != nil {
		t.Fatalf("Shutdown failed with connected clients: %v", err)
	}
	// the pumps must exit on their own, not ride out the timeout
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Shutdown took %v, expected the pumps to exit promptly", elapsed)
	}
}

func TestPublishAfterShutdownIsNoOp(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	if err := hub.Shutdown(2 * time.Second); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}

	// must not block or panic
	hub.PublishChat("g1", "m1", "alice", "hello", []string{"u-alice"})
}
