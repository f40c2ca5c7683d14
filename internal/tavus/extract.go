package tavus

import (
	"regexp"
	"sort"
	"strings"
)

var mp4Pattern = regexp.MustCompile(`(?i)\.mp4(\?|$)`)

// FirstString walks an ordered list of extraction paths ("field" or
// "data.field") and returns the first non-empty string hit. The order is
// part of the observable contract: responses carrying several of the known
// fields must always resolve the same way.
func FirstString(data map[string]interface{}, paths ...string) string {
	for _, path := range paths {
		current := data
		parts := strings.Split(path, ".")
		for i, part := range parts {
			if i == len(parts)-1 {
				if val, ok := current[part].(string); ok && val != "" {
					return val
				}
				break
			}
			next, ok := current[part].(map[string]interface{})
			if !ok {
				break
			}
			current = next
		}
	}
	return ""
}

// FindFirstMP4URL scans an entire decoded payload for the first http(s)
// string pointing at an mp4, optionally with a query string. Map keys are
// visited in sorted order so the result is deterministic.
func FindFirstMP4URL(value interface{}) string {
	switch v := value.(type) {
	case string:
		lower := strings.ToLower(v)
		if (strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")) && mp4Pattern.MatchString(v) {
			return v
		}
		return ""
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if found := FindFirstMP4URL(v[k]); found != "" {
				return found
			}
		}
		return ""
	case []interface{}:
		for _, item := range v {
			if found := FindFirstMP4URL(item); found != "" {
				return found
			}
		}
		return ""
	default:
		return ""
	}
}
