package realtime

import "encoding/json"

// SessionState is the lifecycle phase of one connection.
type SessionState int

const (
	// StateUnregistered is the initial state right after the transport
	// is accepted, before a register event arrives.
	StateUnregistered SessionState = iota
	// StateRegistered means the connection is bound to a user.
	StateRegistered
	// StateClosed is terminal.
	StateClosed
)

// Session is the per-connection protocol state. It carries no transport
// handle so transitions stay a pure function of (state, event).
type Session struct {
	State  SessionState
	UserID uint
}

// ActionKind identifies a side effect requested by a transition.
type ActionKind int

const (
	// ActionRegister binds the connection's channel to UserID in the registry.
	ActionRegister ActionKind = iota
	// ActionAckConnected sends the connected acknowledgement to this connection.
	ActionAckConnected
	// ActionStoreMessage persists a direct message, then delivers it to both endpoints.
	ActionStoreMessage
	// ActionStoreStatus persists a status, then broadcasts it.
	ActionStoreStatus
	// ActionForwardTyping forwards a typing indicator to the target user only.
	ActionForwardTyping
	// ActionUnregister releases this connection's registry slot.
	ActionUnregister
)

// Action is a side effect the caller must execute after a transition.
type Action struct {
	Kind    ActionKind
	UserID  uint
	Message MessagePayload
	Status  StatusPayload
	Typing  TypingPayload
}

// Step advances the session with one raw inbound frame and returns the
// side effects to execute. Malformed frames and events arriving in the
// wrong state produce no transition and no effects; tolerance here is
// deliberate, the connection stays open.
func Step(sess Session, raw []byte) (Session, []Action) {
	if sess.State == StateClosed {
		return sess, nil
	}

	var envelope Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return sess, nil
	}

	switch envelope.Type {
	case EventRegister:
		if envelope.UserID == 0 {
			return sess, nil
		}
		// A register on an already-registered connection re-binds it,
		// the same way a reconnecting client re-enters the registered
		// state with a fresh channel.
		sess.State = StateRegistered
		sess.UserID = envelope.UserID
		return sess, []Action{
			{Kind: ActionRegister, UserID: envelope.UserID},
			{Kind: ActionAckConnected, UserID: envelope.UserID},
		}

	case EventMessage:
		if sess.State != StateRegistered {
			return sess, nil
		}
		var payload MessagePayload
		if err := json.Unmarshal(envelope.Data, &payload); err != nil {
			return sess, nil
		}
		if payload.From == 0 || payload.To == 0 || payload.Text == "" {
			return sess, nil
		}
		return sess, []Action{{Kind: ActionStoreMessage, Message: payload}}

	case EventStatus:
		if sess.State != StateRegistered {
			return sess, nil
		}
		var payload StatusPayload
		if err := json.Unmarshal(envelope.Data, &payload); err != nil {
			return sess, nil
		}
		if payload.UserID == 0 || payload.Text == "" {
			return sess, nil
		}
		return sess, []Action{{Kind: ActionStoreStatus, Status: payload}}

	case EventTyping:
		if sess.State != StateRegistered {
			return sess, nil
		}
		var payload TypingPayload
		if err := json.Unmarshal(envelope.Data, &payload); err != nil {
			return sess, nil
		}
		if payload.From == 0 || payload.To == 0 {
			return sess, nil
		}
		return sess, []Action{{Kind: ActionForwardTyping, Typing: payload}}
	}

	return sess, nil
}

// Close terminates the session. Only a registered session has a
// registry slot to release.
func Close(sess Session) (Session, []Action) {
	prev := sess
	sess.State = StateClosed

	if prev.State == StateRegistered {
		return sess, []Action{{Kind: ActionUnregister, UserID: prev.UserID}}
	}
	return sess, nil
}
