package tavus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://tavusapi.com/v2"
	DefaultTimeout = 45 * time.Second
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to a Tavus-compatible avatar API. Credentials are passed per
// call because they live in the per-site settings store, not in the process.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// NewClientWithHTTP keeps the transport injectable for tests.
func NewClientWithHTTP(cfg Config, httpClient *http.Client) *Client {
	c := NewClient(cfg)
	if httpClient != nil {
		c.http = httpClient
	}
	return c
}

type ConversationParams struct {
	PersonaID             string `json:"persona_id"`
	ConversationalContext string `json:"conversational_context"`
	CustomGreeting        string `json:"custom_greeting"`
	ReplicaID             string `json:"replica_id,omitempty"`
}

type Conversation struct {
	ConversationURL string
	ConversationID  string
	Raw             map[string]interface{}
}

func (c *Client) CreateConversation(ctx context.Context, apiKey string, params ConversationParams) (Conversation, error) {
	reqURL := c.cfg.BaseURL + "/conversations"

	body, err := json.Marshal(params)
	if err != nil {
		return Conversation{}, fmt.Errorf("marshal conversation payload: %w", err)
	}

	log.Printf("[tavus] Creating conversation -> POST %s", reqURL)
	log.Printf("[tavus] Payload: %s", body)

	status, raw, err := c.do(ctx, http.MethodPost, reqURL, apiKey, bytes.NewReader(body))
	if err != nil {
		log.Printf("[tavus] conversation request error: %v", err)
		return Conversation{}, &TransportError{Op: "create conversation", URL: reqURL, Err: err}
	}

	log.Printf("[tavus] status_code: %d", status)
	log.Printf("[tavus] raw body: %s", raw)

	data := decodeObject(raw)

	if status < 200 || status >= 300 {
		msg := fmt.Sprintf("Failed to create conversation (HTTP %d)", status)
		if data != nil {
			if m, ok := data["message"].(string); ok && m != "" {
				msg = m
			}
		}
		return Conversation{}, &APIError{
			Message:    msg,
			StatusCode: status,
			RawBody:    string(raw),
			RawJSON:    data,
			RequestURL: reqURL,
			Request:    params,
		}
	}

	if data == nil {
		return Conversation{}, &APIError{
			Message:    "Invalid API response (not JSON).",
			StatusCode: status,
			RawBody:    string(raw),
			RequestURL: reqURL,
			Request:    params,
		}
	}

	conversationURL := FirstString(data,
		"conversation_url",
		"data.conversation_url",
		"url",
		"data.url",
	)
	conversationID := FirstString(data,
		"conversation_id",
		"data.conversation_id",
		"id",
	)

	if conversationURL == "" {
		return Conversation{}, &APIError{
			Message:    "Conversation created but no conversation URL returned.",
			StatusCode: status,
			RawJSON:    data,
			RequestURL: reqURL,
		}
	}

	return Conversation{
		ConversationURL: conversationURL,
		ConversationID:  conversationID,
		Raw:             data,
	}, nil
}

// ReplicaPreviewVideoURL fetches the replica record and digs out a playable
// idle-loop mp4, trying the documented fields first and falling back to a
// whole-payload scan.
func (c *Client) ReplicaPreviewVideoURL(ctx context.Context, apiKey, replicaID string) (string, error) {
	reqURL := c.cfg.BaseURL + "/replicas/" + url.PathEscape(replicaID)

	log.Printf("[tavus] Fetching replica (idle avatar) -> GET %s", reqURL)

	status, raw, err := c.do(ctx, http.MethodGet, reqURL, apiKey, nil)
	if err != nil {
		return "", &TransportError{Op: "fetch replica", URL: reqURL, Err: err}
	}

	log.Printf("[tavus] replica status_code: %d", status)
	log.Printf("[tavus] replica raw body: %s", raw)

	data := decodeObject(raw)

	if status < 200 || status >= 300 || data == nil {
		return "", &APIError{
			Message:    "Failed to fetch replica avatar from Tavus.",
			StatusCode: status,
			RawBody:    string(raw),
			RawJSON:    data,
			RequestURL: reqURL,
		}
	}

	candidate := FirstString(data,
		"preview_video_url",
		"data.preview_video_url",
		"idle_video_url",
		"data.idle_video_url",
		"video_url",
		"data.video_url",
		"avatar_video_url",
		"data.avatar_video_url",
	)

	if candidate == "" {
		candidate = FindFirstMP4URL(data)
	}

	if candidate == "" {
		return "", &APIError{
			Message:    "Replica fetched but no preview mp4 URL was found. Check Tavus response fields in debug log.",
			StatusCode: status,
			RawJSON:    data,
			RequestURL: reqURL,
		}
	}

	return candidate, nil
}

// EndConversation notifies the remote API that a conversation is over. Only
// transport failures are reported; any HTTP response, success or not, is
// treated as done. Fire-and-forget, matching the upstream contract.
func (c *Client) EndConversation(ctx context.Context, apiKey, conversationID string) error {
	reqURL := c.cfg.BaseURL + "/conversations/" + url.PathEscape(conversationID) + "/end"

	log.Printf("[tavus] Ending conversation -> POST %s", reqURL)

	status, _, err := c.do(ctx, http.MethodPost, reqURL, apiKey, nil)
	if err != nil {
		return &TransportError{Op: "end conversation", URL: reqURL, Err: err}
	}

	log.Printf("[tavus] end status_code: %d", status)
	return nil
}

func (c *Client) do(ctx context.Context, method, reqURL, apiKey string, body io.Reader) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return 0, nil, err
	}

	return res.StatusCode, raw, nil
}

func decodeObject(raw []byte) map[string]interface{} {
	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil
	}
	return data
}
