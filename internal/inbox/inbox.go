// Package inbox holds the messaging state of one dashboard session: the
// active conversation and its message list with optimistic sends.
package inbox

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"itgirls-web/internal/backend"
	"itgirls-web/internal/events"
	"itgirls-web/internal/model"
	"itgirls-web/internal/notify"
	"itgirls-web/internal/pending"
)

var (
	ErrEmptyDraft           = errors.New("message draft is empty")
	ErrNoActiveConversation = errors.New("no active conversation")
)

type Backend interface {
	ListMessages(ctx context.Context, conversationID model.ID) ([]model.Message, error)
	SendMessage(ctx context.Context, conversationID model.ID, req backend.SendMessageRequest) (model.Message, error)
}

type Sender struct {
	ID   model.ID
	Name string
}

// SendError carries the rollback notice of a failed send.
type SendError struct {
	Notice notify.Notice
	Err    error
}

func (e *SendError) Error() string { return e.Err.Error() }
func (e *SendError) Unwrap() error { return e.Err }

type Inbox struct {
	backend   Backend
	publisher events.EventPublisher
	now       func() time.Time

	mu       sync.Mutex
	active   model.ID
	messages pending.List[model.Message]
}

func New(b Backend, publisher events.EventPublisher) *Inbox {
	return &Inbox{backend: b, publisher: publisher, now: time.Now}
}

func (in *Inbox) Active() model.ID {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.active
}

func (in *Inbox) Messages() []model.Message {
	return in.messages.Items()
}

// Select makes conversationID the only active conversation and loads its
// messages. A failed load leaves an empty list. An empty id clears the
// selection. Re-selecting the active conversation keeps in-flight sends.
func (in *Inbox) Select(ctx context.Context, conversationID model.ID) []model.Message {
	in.mu.Lock()
	reload := in.active == conversationID
	in.active = conversationID
	in.mu.Unlock()

	if conversationID == "" {
		in.messages.Reset(nil)
		return []model.Message{}
	}

	list, err := in.backend.ListMessages(ctx, conversationID)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load conversation messages",
			slog.String("conversation_id", conversationID.String()),
			slog.String("error", err.Error()),
		)
		list = nil
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	if in.active != conversationID {
		// a newer selection owns the list now
		return in.messages.Items()
	}
	if reload {
		in.messages.Refresh(list)
	} else {
		in.messages.Reset(list)
	}
	return in.messages.Items()
}

// Send appends an optimistic copy of draft to the active conversation, then
// posts it. On success the placeholder is replaced in place by the stored
// message; on failure it is removed and a *SendError is returned.
func (in *Inbox) Send(ctx context.Context, draft string, sender Sender) (model.Message, error) {
	content := strings.TrimSpace(draft)
	if content == "" {
		return model.Message{}, ErrEmptyDraft
	}

	in.mu.Lock()
	conversationID := in.active
	if conversationID == "" {
		in.mu.Unlock()
		return model.Message{}, ErrNoActiveConversation
	}

	now := in.now()
	tempID := in.tempID(now)
	placeholder := model.Message{
		ID:             model.ID(tempID),
		ConversationID: conversationID,
		SenderID:       sender.ID,
		SenderName:     sender.Name,
		Content:        content,
		CreatedAt:      now.UTC(),
		Optimistic:     true,
	}
	if err := in.messages.Enqueue(tempID, placeholder); err != nil {
		in.mu.Unlock()
		return model.Message{}, err
	}
	in.mu.Unlock()

	saved, err := in.backend.SendMessage(ctx, conversationID, backend.SendMessageRequest{
		Content:    content,
		SenderID:   sender.ID,
		SenderName: sender.Name,
	})
	if err != nil {
		_ = in.messages.Reject(tempID)
		slog.ErrorContext(ctx, "Failed to send message",
			slog.String("conversation_id", conversationID.String()),
			slog.String("error", err.Error()),
		)
		return model.Message{}, &SendError{Notice: notify.ErrorNotice(notify.MsgMessageSendFailed), Err: err}
	}

	if err := in.messages.Resolve(tempID, saved); err != nil {
		// another conversation was selected meanwhile
		slog.DebugContext(ctx, "Sent message no longer listed",
			slog.String("conversation_id", conversationID.String()),
		)
	}
	if err := in.publisher.PublishMessageSent(saved); err != nil {
		slog.WarnContext(ctx, "Failed to publish message event", slog.String("error", err.Error()))
	}
	return saved, nil
}

// tempID is "temp-<unix ms>", suffixed when that id is already queued.
// Callers hold in.mu.
func (in *Inbox) tempID(now time.Time) string {
	base := "temp-" + strconv.FormatInt(now.UnixMilli(), 10)
	id := base
	for n := 1; in.messages.Has(id); n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	return id
}
