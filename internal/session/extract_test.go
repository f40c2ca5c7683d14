package session

import (
	"testing"

	"avatar-widget-backend/internal/service/conversation"
)

func TestJoinURLPrefersConversationURL(t *testing.T) {
	result := conversation.CreateResult{
		Raw: map[string]interface{}{
			"url":              "https://example.com/generic",
			"iframe_url":       "https://example.com/iframe",
			"embed_url":        "https://example.com/embed",
			"conversation_url": "https://example.com/conversation",
		},
	}

	if got := JoinURL(result); got != "https://example.com/conversation" {
		t.Fatalf("unexpected URL: %q", got)
	}
}

func TestJoinURLFieldOutranksLocation(t *testing.T) {
	result := conversation.CreateResult{
		Raw: map[string]interface{}{
			"embed_url": "https://example.com/top-embed",
			"data": map[string]interface{}{
				"conversation_url": "https://example.com/nested-conversation",
			},
		},
	}

	if got := JoinURL(result); got != "https://example.com/nested-conversation" {
		t.Fatalf("unexpected URL: %q", got)
	}
}

func TestJoinURLFallsBackToNestedData(t *testing.T) {
	result := conversation.CreateResult{
		Raw: map[string]interface{}{
			"data": map[string]interface{}{
				"url": "https://example.com/nested",
			},
		},
	}

	if got := JoinURL(result); got != "https://example.com/nested" {
		t.Fatalf("unexpected URL: %q", got)
	}
}

func TestJoinURLUsesExtractedURLLast(t *testing.T) {
	result := conversation.CreateResult{
		ConversationURL: "https://example.com/extracted",
		Raw:             map[string]interface{}{"status": "active"},
	}

	if got := JoinURL(result); got != "https://example.com/extracted" {
		t.Fatalf("unexpected URL: %q", got)
	}

	if got := JoinURL(conversation.CreateResult{}); got != "" {
		t.Fatalf("expected empty URL, got %q", got)
	}
}

func TestJoinURLSkipsNonStrings(t *testing.T) {
	result := conversation.CreateResult{
		Raw: map[string]interface{}{
			"conversation_url": 42,
			"embed_url":        "https://example.com/embed",
		},
	}

	if got := JoinURL(result); got != "https://example.com/embed" {
		t.Fatalf("unexpected URL: %q", got)
	}
}
