package tavus

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateConversationSuccess(t *testing.T) {
	var gotKey string
	var gotBody ConversationParams

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/conversations" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotKey = r.Header.Get("x-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"conversation_url": "https://call.example/room/abc",
			"conversation_id":  "abc",
		})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	conv, err := client.CreateConversation(context.Background(), "key-1", ConversationParams{
		PersonaID:             "persona-1",
		ConversationalContext: "Start the conversation by greeting the user and introducing yourself.",
		CustomGreeting:        "Hello!",
		ReplicaID:             "replica-1",
	})
	if err != nil {
		t.Fatalf("create conversation: %v", err)
	}

	if gotKey != "key-1" {
		t.Fatalf("api key header not sent, got %q", gotKey)
	}
	if gotBody.PersonaID != "persona-1" || gotBody.ReplicaID != "replica-1" {
		t.Fatalf("unexpected payload: %+v", gotBody)
	}
	if conv.ConversationURL != "https://call.example/room/abc" {
		t.Fatalf("unexpected url: %s", conv.ConversationURL)
	}
	if conv.ConversationID != "abc" {
		t.Fatalf("unexpected id: %s", conv.ConversationID)
	}
}

func TestCreateConversationNestedDataShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"url": "https://call.example/room/nested",
				"id":  "nested",
			},
		})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	conv, err := client.CreateConversation(context.Background(), "key", ConversationParams{PersonaID: "p"})
	if err != nil {
		t.Fatalf("create conversation: %v", err)
	}
	if conv.ConversationURL != "https://call.example/room/nested" {
		t.Fatalf("unexpected url: %s", conv.ConversationURL)
	}
}

func TestCreateConversationHTTP500(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	_, err := client.CreateConversation(context.Background(), "key", ConversationParams{PersonaID: "p"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "Failed to create conversation (HTTP 500)" {
		t.Fatalf("unexpected message: %s", apiErr.Message)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", apiErr.StatusCode)
	}
}

func TestCreateConversationUsesRemoteMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"message":"Out of conversational credits"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	_, err := client.CreateConversation(context.Background(), "key", ConversationParams{PersonaID: "p"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "Out of conversational credits" {
		t.Fatalf("unexpected message: %s", apiErr.Message)
	}
}

func TestCreateConversationMissingURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"conversation_id":"abc"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	_, err := client.CreateConversation(context.Background(), "key", ConversationParams{PersonaID: "p"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "Conversation created but no conversation URL returned." {
		t.Fatalf("unexpected message: %s", apiErr.Message)
	}
}

func TestCreateConversationNotJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway error</html>"))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	_, err := client.CreateConversation(context.Background(), "key", ConversationParams{PersonaID: "p"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "Invalid API response (not JSON)." {
		t.Fatalf("unexpected message: %s", apiErr.Message)
	}
}

func TestCreateConversationTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := NewClient(Config{BaseURL: server.URL})
	_, err := client.CreateConversation(context.Background(), "key", ConversationParams{PersonaID: "p"})

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}

func TestReplicaPreviewDirectField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/replicas/replica-1" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"preview_video_url": "https://cdn.example/a.mp4",
			},
		})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	url, err := client.ReplicaPreviewVideoURL(context.Background(), "key", "replica-1")
	if err != nil {
		t.Fatalf("replica preview: %v", err)
	}
	if url != "https://cdn.example/a.mp4" {
		t.Fatalf("unexpected url: %s", url)
	}
}

func TestReplicaPreviewRecursiveScan(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"replica": map[string]interface{}{
				"assets": []interface{}{
					map[string]interface{}{"kind": "thumb", "href": "https://cdn.example/t.png"},
					map[string]interface{}{"kind": "loop", "href": "https://cdn.example/loop.mp4?sig=1"},
				},
			},
		})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	url, err := client.ReplicaPreviewVideoURL(context.Background(), "key", "replica-1")
	if err != nil {
		t.Fatalf("replica preview: %v", err)
	}
	if url != "https://cdn.example/loop.mp4?sig=1" {
		t.Fatalf("unexpected url: %s", url)
	}
}

func TestReplicaPreviewNoMP4(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"name": "Gigi"})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	_, err := client.ReplicaPreviewVideoURL(context.Background(), "key", "replica-1")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
}

func TestEndConversationIgnoresStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/conversations/abc/end" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	if err := client.EndConversation(context.Background(), "key", "abc"); err != nil {
		t.Fatalf("end conversation should ignore HTTP status, got %v", err)
	}
}

func TestEndConversationTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(Config{BaseURL: server.URL})
	err := client.EndConversation(context.Background(), "key", "abc")

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}
