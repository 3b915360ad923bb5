package domain

// Tone classifies a user-facing notification.
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneError   Tone = "error"
	ToneInfo    Tone = "info"
)

// Notification is a typed user-facing message raised by services and drained
// by the storefront.
type Notification struct {
	Text string `json:"text"`
	Tone Tone   `json:"tone"`
}
