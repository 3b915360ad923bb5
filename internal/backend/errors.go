package backend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx backend response. Error() produces the best-effort
// human-readable message the storefront renders as a banner.
type APIError struct {
	Status int
	Body   []byte
}

func (e *APIError) Error() string {
	if msg := messageFromBody(e.Body); msg != "" {
		return msg
	}
	if text := http.StatusText(e.Status); text != "" {
		return fmt.Sprintf("request failed: %s", strings.ToLower(text))
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// messageFromBody probes the error envelopes the backend is known to emit.
func messageFromBody(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	var envelope map[string]interface{}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return ""
	}
	for _, key := range []string{"detail", "error", "message"} {
		if v, ok := envelope[key].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
