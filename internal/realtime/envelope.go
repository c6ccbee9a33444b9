package realtime

import "encoding/json"

// Inbound event kinds accepted from clients.
const (
	EventRegister = "register"
	EventMessage  = "message"
	EventStatus   = "status"
	EventTyping   = "typing"
)

// Outbound event kinds pushed to clients.
const (
	EventConnected    = "connected"
	EventNewMessage   = "newMessage"
	EventNewStatus    = "newStatus"
	EventUserTyping   = "userTyping"
	EventNotification = "notification"
)

// Envelope is the raw inbound frame. Data stays opaque until the event
// kind is known.
type Envelope struct {
	Type   string          `json:"type"`
	UserID uint            `json:"userId,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// Event is an outbound frame serialized as-is onto client channels.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// MessagePayload carries a direct message between two users.
type MessagePayload struct {
	From uint   `json:"from"`
	To   uint   `json:"to"`
	Text string `json:"text"`
}

// StatusPayload publishes an ephemeral status update.
type StatusPayload struct {
	UserID uint   `json:"userId"`
	Text   string `json:"text"`
}

// TypingPayload signals a typing indicator toward a single counterpart.
type TypingPayload struct {
	From     uint `json:"from"`
	To       uint `json:"to"`
	IsTyping bool `json:"isTyping"`
}

// UserTypingPayload is the outbound typing indicator forwarded to the
// counterpart; the target is implicit in the channel it rides on.
type UserTypingPayload struct {
	From     uint `json:"from"`
	IsTyping bool `json:"isTyping"`
}

// ConnectedPayload acknowledges a successful registration.
type ConnectedPayload struct {
	UserID uint `json:"userId"`
}
