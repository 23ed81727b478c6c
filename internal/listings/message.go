package listings

import (
	"encoding/json"
	"strings"
)

// upstreamMessage pulls a human-readable message out of an error body.
// Providers use "message", "error" (string or object) or "exception".
func upstreamMessage(body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		if len(body) > 200 || strings.HasPrefix(body, "<") {
			return ""
		}
		return body
	}

	for _, key := range []string{"message", "error", "exception", "display"} {
		switch v := doc[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case map[string]any:
			if msg, ok := v["message"].(string); ok && msg != "" {
				return msg
			}
		}
	}
	return ""
}
