package errors

import "fmt"

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	ErrMissingCredential = fmt.Errorf("missing credential")
	ErrInvalidToken      = fmt.Errorf("invalid token")
	ErrUnknownRole       = fmt.Errorf("unknown role")

	ErrUnauthorized     = fmt.Errorf("unauthorized")
	ErrNotParticipant   = fmt.Errorf("%w: not a participant of this chat", ErrUnauthorized)
	ErrNotFound         = fmt.Errorf("not found")
	ErrMessageNotFound  = fmt.Errorf("message %w", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)
	ErrMalformedFrame   = fmt.Errorf("malformed frame")
	ErrUnknownFrameType = fmt.Errorf("%w: unknown type", ErrMalformedFrame)
	ErrStoreFailure     = fmt.Errorf("store failure")
	ErrDeliveryGap      = fmt.Errorf("message persisted but not delivered")

	ErrEmptyWords = fmt.Errorf("no censored words")

	ErrSessionClosed       = fmt.Errorf("session closed")
	ErrSessionBackpressure = fmt.Errorf("session send queue full")
)
