package inbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"itgirls-web/internal/backend"
	"itgirls-web/internal/events"
	"itgirls-web/internal/model"
	"itgirls-web/internal/notify"

	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	mu       sync.Mutex
	lists    map[model.ID][]model.Message
	listErr  error
	sendErr  error
	sent     []backend.SendMessageRequest
	gate     chan struct{}
	observed chan []model.Message
	inbox    *Inbox
}

func (f *fakeBackend) ListMessages(_ context.Context, id model.ID) ([]model.Message, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.lists[id], nil
}

func (f *fakeBackend) SendMessage(_ context.Context, id model.ID, req backend.SendMessageRequest) (model.Message, error) {
	if f.observed != nil {
		f.observed <- f.inbox.Messages()
	}
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	f.sent = append(f.sent, req)
	f.mu.Unlock()
	if f.sendErr != nil {
		return model.Message{}, f.sendErr
	}
	return model.Message{ID: "99", ConversationID: id, SenderID: req.SenderID, Content: req.Content}, nil
}

type recordingPublisher struct {
	events.NoopPublisher
	sent []model.Message
}

func (p *recordingPublisher) PublishMessageSent(msg model.Message) error {
	p.sent = append(p.sent, msg)
	return nil
}

func newInbox(b *fakeBackend) (*Inbox, *recordingPublisher) {
	pub := &recordingPublisher{}
	in := New(b, pub)
	in.now = func() time.Time { return time.UnixMilli(1700000000000) }
	b.inbox = in
	return in, pub
}

func seeded() *fakeBackend {
	return &fakeBackend{lists: map[model.ID][]model.Message{
		"c1": {{ID: "1", Content: "salut"}, {ID: "2", Content: "ça va ?"}},
		"c2": {{ID: "3", Content: "autre"}},
	}}
}

func TestSelectLoadsMessages(t *testing.T) {
	in, _ := newInbox(seeded())

	got := in.Select(context.Background(), "c1")
	require.Len(t, got, 2)
	require.Equal(t, model.ID("c1"), in.Active())

	got = in.Select(context.Background(), "c2")
	require.Len(t, got, 1)
	require.Equal(t, model.ID("c2"), in.Active())
}

func TestSelectFailureLeavesEmptyList(t *testing.T) {
	b := seeded()
	in, _ := newInbox(b)
	in.Select(context.Background(), "c1")

	b.listErr = errors.New("boom")
	got := in.Select(context.Background(), "c2")
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestSendShowsExactlyOneOptimisticEntry(t *testing.T) {
	b := seeded()
	b.gate = make(chan struct{})
	b.observed = make(chan []model.Message, 1)
	in, _ := newInbox(b)
	in.Select(context.Background(), "c1")

	done := make(chan error, 1)
	go func() {
		_, err := in.Send(context.Background(), "  hello  ", Sender{ID: "7", Name: "Ada"})
		done <- err
	}()

	during := <-b.observed
	require.Len(t, during, 3)
	last := during[2]
	require.True(t, last.Optimistic)
	require.Equal(t, model.ID("temp-1700000000000"), last.ID)
	require.Equal(t, "hello", last.Content)

	close(b.gate)
	require.NoError(t, <-done)
}

func TestReselectKeepsInFlightSend(t *testing.T) {
	b := seeded()
	b.gate = make(chan struct{})
	b.observed = make(chan []model.Message, 1)
	in, pub := newInbox(b)
	in.Select(context.Background(), "c1")

	done := make(chan error, 1)
	go func() {
		_, err := in.Send(context.Background(), "hello", Sender{ID: "7"})
		done <- err
	}()
	<-b.observed

	msgs := in.Select(context.Background(), "c1")
	require.Len(t, msgs, 3)
	require.True(t, msgs[2].Optimistic)

	close(b.gate)
	require.NoError(t, <-done)

	msgs = in.Messages()
	require.Len(t, msgs, 3)
	require.Equal(t, model.ID("99"), msgs[2].ID)
	require.False(t, msgs[2].Optimistic)
	require.Len(t, pub.sent, 1)
}

func TestSwitchingConversationDropsPlaceholder(t *testing.T) {
	b := seeded()
	b.gate = make(chan struct{})
	b.observed = make(chan []model.Message, 1)
	in, _ := newInbox(b)
	in.Select(context.Background(), "c1")

	done := make(chan error, 1)
	go func() {
		_, err := in.Send(context.Background(), "hello", Sender{ID: "7"})
		done <- err
	}()
	<-b.observed

	require.Len(t, in.Select(context.Background(), "c2"), 1)
	close(b.gate)
	require.NoError(t, <-done)
	require.Len(t, in.Messages(), 1)
}

func TestSendSuccessReplacesPlaceholderInPlace(t *testing.T) {
	b := seeded()
	in, pub := newInbox(b)
	in.Select(context.Background(), "c1")

	saved, err := in.Send(context.Background(), "hello", Sender{ID: "7", Name: "Ada"})
	require.NoError(t, err)
	require.Equal(t, model.ID("99"), saved.ID)

	msgs := in.Messages()
	require.Len(t, msgs, 3)
	require.Equal(t, model.ID("99"), msgs[2].ID)
	require.False(t, msgs[2].Optimistic)
	require.Len(t, pub.sent, 1)
	require.Equal(t, "hello", b.sent[0].Content)
	require.Equal(t, model.ID("7"), b.sent[0].SenderID)
}

func TestSendFailureRemovesOnlyPlaceholder(t *testing.T) {
	b := seeded()
	b.sendErr = errors.New("down")
	in, pub := newInbox(b)
	in.Select(context.Background(), "c1")

	_, err := in.Send(context.Background(), "hello", Sender{ID: "7"})
	var sendErr *SendError
	require.ErrorAs(t, err, &sendErr)
	require.Equal(t, notify.ErrorNotice(notify.MsgMessageSendFailed), sendErr.Notice)

	msgs := in.Messages()
	require.Len(t, msgs, 2)
	require.Equal(t, model.ID("1"), msgs[0].ID)
	require.Equal(t, model.ID("2"), msgs[1].ID)
	require.Empty(t, pub.sent)
}

func TestSendIgnoresBlankDraft(t *testing.T) {
	b := seeded()
	in, _ := newInbox(b)
	in.Select(context.Background(), "c1")

	_, err := in.Send(context.Background(), "   ", Sender{ID: "7"})
	require.ErrorIs(t, err, ErrEmptyDraft)
	require.Empty(t, b.sent)
	require.Len(t, in.Messages(), 2)
}

func TestSendWithoutConversation(t *testing.T) {
	in, _ := newInbox(seeded())

	_, err := in.Send(context.Background(), "hello", Sender{ID: "7"})
	require.ErrorIs(t, err, ErrNoActiveConversation)
}

func TestTempIDSuffixedWhenTaken(t *testing.T) {
	in, _ := newInbox(seeded())
	in.Select(context.Background(), "c1")
	require.NoError(t, in.messages.Enqueue("temp-1700000000000", model.Message{}))

	require.Equal(t, "temp-1700000000000-1", in.tempID(in.now()))
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(seeded(), events.NoopPublisher{})

	a := r.For("k1")
	require.Same(t, a, r.For("k1"))
	require.NotSame(t, a, r.For("k2"))
	require.Equal(t, 2, r.Len())

	r.Drop("k1")
	require.Equal(t, 1, r.Len())
	require.NotSame(t, a, r.For("k1"))
}

func TestRegistryEvictsIdleInboxes(t *testing.T) {
	r := NewRegistry(seeded(), events.NoopPublisher{})
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	stale := r.For("visitor:a")
	now = now.Add(2 * time.Hour)
	fresh := r.For("visitor:b")
	now = now.Add(30 * time.Minute)

	require.Equal(t, 1, r.Evict(time.Hour))
	require.Equal(t, 1, r.Len())
	require.Same(t, fresh, r.For("visitor:b"))
	require.NotSame(t, stale, r.For("visitor:a"))
	require.Equal(t, 0, r.Evict(time.Hour))
}
