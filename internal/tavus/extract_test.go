package tavus

import "testing"

func TestFirstStringPriorityOrder(t *testing.T) {
	data := map[string]interface{}{
		"url": "https://call.example/generic",
		"data": map[string]interface{}{
			"conversation_url": "https://call.example/nested",
		},
		"conversation_url": "https://call.example/direct",
	}

	got := FirstString(data, "conversation_url", "data.conversation_url", "url", "data.url")
	if got != "https://call.example/direct" {
		t.Fatalf("direct field should win, got %s", got)
	}

	delete(data, "conversation_url")
	got = FirstString(data, "conversation_url", "data.conversation_url", "url", "data.url")
	if got != "https://call.example/nested" {
		t.Fatalf("nested field should win over generic url, got %s", got)
	}
}

func TestFirstStringSkipsNonStrings(t *testing.T) {
	data := map[string]interface{}{
		"conversation_url": 42,
		"url":              "https://call.example/fallback",
	}
	got := FirstString(data, "conversation_url", "url")
	if got != "https://call.example/fallback" {
		t.Fatalf("non-string field should be skipped, got %s", got)
	}
}

func TestFindFirstMP4URL(t *testing.T) {
	cases := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"plain", "https://cdn.example/a.mp4", "https://cdn.example/a.mp4"},
		{"query string", "https://cdn.example/a.mp4?sig=x", "https://cdn.example/a.mp4?sig=x"},
		{"case insensitive", "HTTPS://CDN.EXAMPLE/A.MP4", "HTTPS://CDN.EXAMPLE/A.MP4"},
		{"not a url", "a.mp4", ""},
		{"wrong extension", "https://cdn.example/a.webm", ""},
		{"mp4 mid-path", "https://cdn.example/a.mp4.png", ""},
		{"nested", map[string]interface{}{
			"a": []interface{}{"nope", map[string]interface{}{"b": "https://cdn.example/deep.mp4"}},
		}, "https://cdn.example/deep.mp4"},
		{"nothing", map[string]interface{}{"a": 1.0, "b": true}, ""},
	}

	for _, tc := range cases {
		if got := FindFirstMP4URL(tc.value); got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}
