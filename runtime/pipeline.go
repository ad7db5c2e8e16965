package runtime

import (
	"chat-live/contract"
	"chat-live/domain"
	"chat-live/errors"
	"chat-live/observability"
	"chat-live/protocol"
	"chat-live/services"
	"context"
	errs "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/samber/lo"
)

// Replies sent to the origin connection when a frame cannot be served.
const (
	ReplyInvalidFormat    = "Invalid message format"
	ReplyUnknownType      = "Unknown message type: %s"
	ReplyAccessCheck      = "Failed to verify chat access"
	ReplyNotParticipant   = "You are not a participant of this chat"
	ReplySendFailed       = "Failed to send message"
	ReplyMessageNotFound  = "Message not found"
	ReplyMarkReadFailed   = "Failed to mark message as read"
	ReplyTypingFailed     = "Failed to update typing status"
	attachmentDefaultName = "file"
)

type Stage int

const (
	StageReceived Stage = iota
	StageAuthorizing
	StagePersisting
	StageRehydrating
	StageBroadcasting
	StageDone
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageReceived:
		return "Received"
	case StageAuthorizing:
		return "Authorizing"
	case StagePersisting:
		return "Persisting"
	case StageRehydrating:
		return "Rehydrating"
	case StageBroadcasting:
		return "Broadcasting"
	case StageDone:
		return "Done"
	case StageFailed:
		return "Failed"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// PipelineError tells at which stage a frame stopped. Reply is what the
// origin connection was told, empty when nothing was surfaced.
type PipelineError struct {
	Stage Stage
	Reply string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error { return e.Err }

// FileUpload is an attachment already written to disk by the upload
// endpoint. Head holds the first bytes of the file for type detection.
type FileUpload struct {
	Name    string
	Path    string
	Size    int64
	Head    []byte
	Caption string
	ReplyTo *domain.MessageID
}

// ContentFilter masks forbidden words, keeping the text length.
type ContentFilter interface {
	Censor(text string) (string, []string)
}

// Pipeline serves the frames of one connection at a time: the caller
// invokes Dispatch sequentially for a given connection, so events it
// produces are queued in the order the frames arrived.
type Pipeline struct {
	log         *slog.Logger
	decoder     protocol.Decoder
	gate        contract.IAuthorizer
	messages    contract.MessageRepository
	broadcaster contract.IBroadcaster
	typing      *services.TypingManager
	receipts    *services.ReceiptManager
	monitor     *observability.MonitoringManager
	filter      ContentFilter
	now         func() time.Time
}

func NewPipeline(
	log *slog.Logger,
	decoder protocol.Decoder,
	gate contract.IAuthorizer,
	messages contract.MessageRepository,
	broadcaster contract.IBroadcaster,
	typing *services.TypingManager,
	receipts *services.ReceiptManager,
	monitor *observability.MonitoringManager,
) *Pipeline {
	return &Pipeline{
		log:         log,
		decoder:     decoder,
		gate:        gate,
		messages:    messages,
		broadcaster: broadcaster,
		typing:      typing,
		receipts:    receipts,
		monitor:     monitor,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// WithFilter censors text bodies and captions before they are persisted.
func (p *Pipeline) WithFilter(filter ContentFilter) *Pipeline {
	p.filter = filter
	return p
}

// Dispatch decodes one raw frame and handles it.
func (p *Pipeline) Dispatch(ctx context.Context, sink contract.EventSink, raw []byte) error {
	action, err := p.decoder.Decode(raw)
	if err != nil {
		reply := ReplyInvalidFormat
		if name := protocol.UnknownType(raw); name != "" && errs.Is(err, errors.ErrUnknownFrameType) {
			reply = fmt.Sprintf(ReplyUnknownType, name)
		}
		return p.reply(ctx, sink, p.fail(sink.Identity(), StageReceived, reply, err))
	}
	return p.Handle(ctx, sink, action)
}

// Handle runs an already decoded action. A failure is answered with an
// Error frame on sink, and only on sink.
func (p *Pipeline) Handle(ctx context.Context, sink contract.EventSink, action protocol.Action) error {
	p.monitor.IncrFrameReceived(action.ActionType())
	identity := sink.Identity()
	p.log.Debug("Frame received", "user_id", identity.UserID, "type", action.ActionType(), "stage", StageReceived)

	var err error
	switch a := action.(type) {
	case *protocol.SendMessage:
		err = p.sendMessage(ctx, identity, a)
	case *protocol.TypingStart:
		err = p.typingStart(ctx, identity, a.ChatID)
	case *protocol.TypingStop:
		err = p.typingStop(ctx, identity, a.ChatID)
	case *protocol.MarkAsRead:
		err = p.markAsRead(ctx, identity, a.MessageID)
	case *protocol.JoinChat:
		p.log.Debug("Join chat", "user_id", identity.UserID, "chat_id", a.ChatID)
	case *protocol.LeaveChat:
		p.log.Debug("Leave chat", "user_id", identity.UserID, "chat_id", a.ChatID)
	case *protocol.Ping:
		if err := sink.Consume(ctx, protocol.Pong{}); err != nil {
			p.log.Debug("Pong not queued", "user_id", identity.UserID, "error", err)
		}
	default:
		err = p.fail(identity, StageReceived, ReplyInvalidFormat,
			fmt.Errorf("%w: unsupported action %T", errors.ErrMalformedFrame, action))
	}
	return p.reply(ctx, sink, err)
}

// PublishAttachment persists and broadcasts a file message for an upload
// that happened outside of the live connection.
func (p *Pipeline) PublishAttachment(ctx context.Context, identity domain.Identity, chatID domain.ChatID, upload FileUpload) (domain.MessageID, error) {
	if err := p.authorize(ctx, identity, chatID); err != nil {
		return 0, err
	}
	kind := domain.KindFile
	if strings.HasPrefix(mimetype.Detect(upload.Head).String(), "image/") {
		kind = domain.KindImage
	}
	name := lo.Ternary(upload.Name != "", upload.Name, attachmentDefaultName)
	body := lo.Ternary(upload.Caption != "", p.censor(identity, chatID, upload.Caption), name)
	return p.publish(ctx, identity, domain.NewMessage{
		ChatID:    chatID,
		SenderID:  identity.UserID,
		Kind:      kind,
		Body:      body,
		File:      &domain.FileMeta{Path: upload.Path, Name: name, Size: upload.Size},
		ReplyToID: upload.ReplyTo,
		CreatedAt: p.now(),
	})
}

func (p *Pipeline) sendMessage(ctx context.Context, identity domain.Identity, a *protocol.SendMessage) error {
	if err := p.authorize(ctx, identity, a.ChatID); err != nil {
		return err
	}
	_, err := p.publish(ctx, identity, domain.NewMessage{
		ChatID:    a.ChatID,
		SenderID:  identity.UserID,
		Kind:      domain.KindText,
		Body:      p.censor(identity, a.ChatID, a.Body),
		ReplyToID: a.ReplyToID,
		CreatedAt: p.now(),
	})
	return err
}

// publish runs Persisting, Rehydrating and Broadcasting. Once the insert
// committed, later failures are delivery gaps: the message exists but
// nobody was told, the sender included.
func (p *Pipeline) publish(ctx context.Context, identity domain.Identity, draft domain.NewMessage) (domain.MessageID, error) {
	p.trace(identity, StagePersisting, "chat_id", draft.ChatID)
	id, err := p.messages.InsertMessage(ctx, draft)
	if err != nil {
		return 0, p.fail(identity, StagePersisting, ReplySendFailed, err)
	}
	p.monitor.IncrMessagePersisted()

	p.trace(identity, StageRehydrating, "message_id", id)
	msg, sender, err := p.messages.MessageWithSender(ctx, id)
	if err != nil {
		return id, p.gap(identity, StageRehydrating, id, err)
	}

	p.trace(identity, StageBroadcasting, "message_id", id)
	evt := protocol.NewMessage{ChatID: draft.ChatID, Message: msg, Sender: sender}
	delivered, err := p.broadcaster.DeliverToChat(ctx, draft.ChatID, evt, nil)
	if err != nil {
		return id, p.gap(identity, StageBroadcasting, id, err)
	}
	p.trace(identity, StageDone, "message_id", id, "delivered", delivered)
	return id, nil
}

func (p *Pipeline) censor(identity domain.Identity, chatID domain.ChatID, text string) string {
	if p.filter == nil {
		return text
	}
	censored, words := p.filter.Censor(text)
	if len(words) > 0 {
		p.log.Info("Message censored", "user_id", identity.UserID, "chat_id", chatID, "matches", len(words))
	}
	return censored
}

func (p *Pipeline) typingStart(ctx context.Context, identity domain.Identity, chatID domain.ChatID) error {
	if err := p.authorize(ctx, identity, chatID); err != nil {
		return err
	}
	p.trace(identity, StagePersisting, "chat_id", chatID)
	if _, err := p.typing.Start(ctx, identity, chatID); err != nil {
		return p.fail(identity, StagePersisting, ReplyTypingFailed, err)
	}
	evt := protocol.UserTyping{ChatID: chatID, UserID: identity.UserID, UserName: p.typing.DisplayName(ctx, identity.UserID)}
	p.broadcastExcept(ctx, identity, chatID, evt)
	return nil
}

func (p *Pipeline) typingStop(ctx context.Context, identity domain.Identity, chatID domain.ChatID) error {
	if err := p.authorize(ctx, identity, chatID); err != nil {
		return err
	}
	p.trace(identity, StagePersisting, "chat_id", chatID)
	if err := p.typing.Stop(ctx, identity, chatID); err != nil {
		return p.fail(identity, StagePersisting, ReplyTypingFailed, err)
	}
	p.broadcastExcept(ctx, identity, chatID, protocol.UserStoppedTyping{ChatID: chatID, UserID: identity.UserID})
	return nil
}

func (p *Pipeline) markAsRead(ctx context.Context, identity domain.Identity, messageID domain.MessageID) error {
	p.trace(identity, StageAuthorizing, "message_id", messageID)
	chatID, err := p.messages.ChatIDOf(ctx, messageID)
	switch {
	case errs.Is(err, errors.ErrNotFound):
		return p.fail(identity, StageAuthorizing, ReplyMessageNotFound, err)
	case err != nil:
		return p.fail(identity, StageAuthorizing, ReplyAccessCheck, fmt.Errorf("%w: %v", errors.ErrStoreFailure, err))
	}
	if err := p.authorize(ctx, identity, chatID); err != nil {
		return err
	}
	p.trace(identity, StagePersisting, "message_id", messageID)
	receipt, err := p.receipts.Record(ctx, messageID, identity.UserID)
	if err != nil {
		return p.fail(identity, StagePersisting, ReplyMarkReadFailed, err)
	}
	p.broadcastExcept(ctx, identity, chatID, protocol.MessageRead{
		MessageID: receipt.MessageID,
		ReaderID:  receipt.ReaderID,
		ReadAt:    receipt.ReadAt,
	})
	return nil
}

func (p *Pipeline) authorize(ctx context.Context, identity domain.Identity, chatID domain.ChatID) error {
	p.trace(identity, StageAuthorizing, "chat_id", chatID)
	err := p.gate.Authorize(ctx, identity, chatID)
	switch {
	case err == nil:
		return nil
	case errs.Is(err, errors.ErrStoreFailure):
		return p.fail(identity, StageAuthorizing, ReplyAccessCheck, err)
	default:
		return p.fail(identity, StageAuthorizing, ReplyNotParticipant, err)
	}
}

// broadcastExcept delivers an ephemeral event to everyone in the chat but
// the actor. The state change already happened, so a failure is only logged.
func (p *Pipeline) broadcastExcept(ctx context.Context, identity domain.Identity, chatID domain.ChatID, evt protocol.Event) {
	p.trace(identity, StageBroadcasting, "chat_id", chatID, "type", evt.EventType())
	delivered, err := p.broadcaster.DeliverToChat(ctx, chatID, evt, lo.ToPtr(identity.UserID))
	if err != nil {
		p.log.Warn("Event not broadcast", "user_id", identity.UserID, "chat_id", chatID,
			"type", evt.EventType(), "error", err)
		return
	}
	p.trace(identity, StageDone, "chat_id", chatID, "delivered", delivered)
}

func (p *Pipeline) trace(identity domain.Identity, stage Stage, args ...any) {
	p.log.Debug("Pipeline stage", append([]any{"user_id", identity.UserID, "stage", stage.String()}, args...)...)
}

func (p *Pipeline) fail(identity domain.Identity, stage Stage, reply string, err error) *PipelineError {
	p.monitor.IncrPipelineError(stage.String())
	p.log.Warn("Frame rejected", "user_id", identity.UserID, "stage", stage.String(), "reply", reply, "error", err)
	return &PipelineError{Stage: stage, Reply: reply, Err: err}
}

func (p *Pipeline) gap(identity domain.Identity, stage Stage, id domain.MessageID, err error) *PipelineError {
	p.monitor.IncrDeliveryGap()
	p.log.Error("Message persisted but not delivered", "user_id", identity.UserID,
		"message_id", id, "stage", stage.String(), "error", err)
	return &PipelineError{Stage: stage, Err: fmt.Errorf("%w: message %d: %v", errors.ErrDeliveryGap, id, err)}
}

// reply sends the Error frame of a failed action to its origin.
func (p *Pipeline) reply(ctx context.Context, sink contract.EventSink, err error) error {
	var failure *PipelineError
	if errs.As(err, &failure) && failure.Reply != "" {
		if consumeErr := sink.Consume(ctx, protocol.Error(failure.Reply)); consumeErr != nil {
			p.log.Debug("Error reply not queued", "session_id", sink.ID(), "error", consumeErr)
		}
	}
	return err
}
