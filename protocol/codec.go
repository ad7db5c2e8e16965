package protocol

import (
	"bytes"
	"chat-live/errors"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type envelope struct {
	Type string `json:"type"`
}

var actions = map[string]func() Action{
	TypeSendMessage: func() Action { return &SendMessage{} },
	TypeTypingStart: func() Action { return &TypingStart{} },
	TypeTypingStop:  func() Action { return &TypingStop{} },
	TypeMarkAsRead:  func() Action { return &MarkAsRead{} },
	TypeJoinChat:    func() Action { return &JoinChat{} },
	TypeLeaveChat:   func() Action { return &LeaveChat{} },
	TypePing:        func() Action { return &Ping{} },
}

var events = map[string]func() Event{
	TypeNewMessage:        func() Event { return &NewMessage{} },
	TypeMessageRead:       func() Event { return &MessageRead{} },
	TypeUserTyping:        func() Event { return &UserTyping{} },
	TypeUserStoppedTyping: func() Event { return &UserStoppedTyping{} },
	TypeUserOnline:        func() Event { return &UserOnline{} },
	TypeUserOffline:       func() Event { return &UserOffline{} },
	TypeError:             func() Event { return &ErrorEvent{} },
	TypePong:              func() Event { return &Pong{} },
}

// Decoder turns raw client frames into validated actions.
type Decoder struct {
	maxContentLength int
}

// NewDecoder returns a Decoder rejecting message bodies longer than
// maxContentLength runes. Zero disables the limit.
func NewDecoder(maxContentLength int) Decoder {
	return Decoder{maxContentLength: maxContentLength}
}

// Decode returns a pointer to one of the Action types of this package.
// Every failure wraps errors.ErrMalformedFrame.
func (d Decoder) Decode(raw []byte) (Action, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrMalformedFrame, err)
	}
	factory, ok := actions[env.Type]
	if !ok {
		return nil, fmt.Errorf("%w %q", errors.ErrUnknownFrameType, env.Type)
	}
	action := factory()
	if err := json.Unmarshal(raw, action); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrMalformedFrame, err)
	}
	if err := validate.Struct(action); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrMalformedFrame, err)
	}
	if send, ok := action.(*SendMessage); ok && d.maxContentLength > 0 &&
		utf8.RuneCountInString(send.Body) > d.maxContentLength {
		return nil, fmt.Errorf("%w: message exceeds %d characters", errors.ErrMalformedFrame, d.maxContentLength)
	}
	return action, nil
}

// UnknownType reports the discriminator of a frame rejected as unknown,
// or an empty string when the frame is not valid JSON.
func UnknownType(raw []byte) string {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return ""
	}
	return env.Type
}

// Encode serializes an event with its "type" discriminator as the
// first field of the object.
func Encode(evt Event) ([]byte, error) {
	body, err := json.Marshal(evt)
	if err != nil {
		return nil, err
	}
	head, err := json.Marshal(envelope{Type: evt.EventType()})
	if err != nil {
		return nil, err
	}
	body = bytes.TrimSpace(body)
	if len(body) < 2 || body[0] != '{' {
		return nil, fmt.Errorf("event %s is not a JSON object", evt.EventType())
	}
	if string(body) == "{}" {
		return head, nil
	}
	out := make([]byte, 0, len(head)+len(body))
	out = append(out, head[:len(head)-1]...)
	out = append(out, ',')
	out = append(out, body[1:]...)
	return out, nil
}

// EncodeAction is the client side counterpart of Encode.
func EncodeAction(action Action) ([]byte, error) {
	return Encode(actionEvent{action})
}

type actionEvent struct{ Action }

func (a actionEvent) EventType() string { return a.ActionType() }

func (a actionEvent) MarshalJSON() ([]byte, error) { return json.Marshal(a.Action) }

// DecodeEvent is used by clients to read server frames.
func DecodeEvent(raw []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrMalformedFrame, err)
	}
	factory, ok := events[env.Type]
	if !ok {
		return nil, fmt.Errorf("%w %q", errors.ErrUnknownFrameType, env.Type)
	}
	evt := factory()
	if err := json.Unmarshal(raw, evt); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrMalformedFrame, err)
	}
	return evt, nil
}
