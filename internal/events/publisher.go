package events

import (
	"encoding/json"
	"log"
	"time"

	"itgirls-web/internal/model"

	"github.com/nats-io/nats.go"
)

const (
	SubjectUserLoggedIn      = "web.user.logged_in"
	SubjectUserRegistered    = "web.user.registered"
	SubjectMessageSent       = "web.message.sent"
	SubjectFeedbackSubmitted = "web.feedback.submitted"
	SubjectDonationSubmitted = "web.donation.submitted"
)

type EventPublisher interface {
	PublishUserLoggedIn(userID model.ID, role string, remember bool) error
	PublishUserRegistered(userID model.ID, role string, isMentor bool) error
	PublishMessageSent(msg model.Message) error
	PublishFeedbackSubmitted(kind string, userID model.ID, rating int) error
	PublishDonationSubmitted(email, amount string) error
}

type publisherConn interface {
	Publish(subject string, data []byte) error
}

type NatsPublisher struct {
	conn publisherConn
	now  func() time.Time
}

func NewNatsPublisher(natsURL string) (*NatsPublisher, *nats.Conn, error) {
	nc, err := nats.Connect(natsURL, nats.Name("itgirls-web"))

	if err != nil {
		return nil, nil, err
	}

	return &NatsPublisher{conn: nc, now: time.Now}, nc, nil
}

type UserLoggedInEvent struct {
	EventType  string    `json:"event_type"`
	UserID     model.ID  `json:"user_id"`
	Role       string    `json:"role"`
	Remember   bool      `json:"remember"`
	OccurredAt time.Time `json:"occurred_at"`
}

type UserRegisteredEvent struct {
	EventType  string    `json:"event_type"`
	UserID     model.ID  `json:"user_id"`
	Role       string    `json:"role"`
	IsMentor   bool      `json:"is_mentor"`
	OccurredAt time.Time `json:"occurred_at"`
}

type MessageSentEvent struct {
	EventType      string    `json:"event_type"`
	MessageID      model.ID  `json:"message_id"`
	ConversationID model.ID  `json:"conversation_id"`
	SenderID       model.ID  `json:"sender_id"`
	SentAt         time.Time `json:"sent_at"`
}

type FeedbackSubmittedEvent struct {
	EventType  string    `json:"event_type"`
	Kind       string    `json:"kind"`
	UserID     model.ID  `json:"user_id"`
	Rating     int       `json:"rating"`
	OccurredAt time.Time `json:"occurred_at"`
}

type DonationSubmittedEvent struct {
	EventType  string    `json:"event_type"`
	Email      string    `json:"email"`
	Amount     string    `json:"amount"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (p *NatsPublisher) PublishUserLoggedIn(userID model.ID, role string, remember bool) error {
	return p.publish(SubjectUserLoggedIn, UserLoggedInEvent{
		EventType:  SubjectUserLoggedIn,
		UserID:     userID,
		Role:       role,
		Remember:   remember,
		OccurredAt: p.now(),
	})
}

func (p *NatsPublisher) PublishUserRegistered(userID model.ID, role string, isMentor bool) error {
	return p.publish(SubjectUserRegistered, UserRegisteredEvent{
		EventType:  SubjectUserRegistered,
		UserID:     userID,
		Role:       role,
		IsMentor:   isMentor,
		OccurredAt: p.now(),
	})
}

func (p *NatsPublisher) PublishMessageSent(msg model.Message) error {
	sentAt := msg.CreatedAt
	if sentAt.IsZero() {
		sentAt = p.now()
	}
	return p.publish(SubjectMessageSent, MessageSentEvent{
		EventType:      SubjectMessageSent,
		MessageID:      msg.ID,
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		SentAt:         sentAt,
	})
}

func (p *NatsPublisher) PublishFeedbackSubmitted(kind string, userID model.ID, rating int) error {
	return p.publish(SubjectFeedbackSubmitted, FeedbackSubmittedEvent{
		EventType:  SubjectFeedbackSubmitted,
		Kind:       kind,
		UserID:     userID,
		Rating:     rating,
		OccurredAt: p.now(),
	})
}

func (p *NatsPublisher) PublishDonationSubmitted(email, amount string) error {
	return p.publish(SubjectDonationSubmitted, DonationSubmittedEvent{
		EventType:  SubjectDonationSubmitted,
		Email:      email,
		Amount:     amount,
		OccurredAt: p.now(),
	})
}

func (p *NatsPublisher) publish(subject string, event any) error {
	eventJSON, err := json.Marshal(event)

	if err != nil {
		log.Printf("Error marshalling event JSON: %v", err)
		return err
	}

	err = p.conn.Publish(subject, eventJSON)

	if err != nil {
		log.Printf("Error publishing to NATS: %v", err)
		return err
	}

	log.Printf("Published event to NATS on subject '%s'", subject)

	return nil
}

// NoopPublisher is used when NATS_URL is not set.
type NoopPublisher struct{}

func (NoopPublisher) PublishUserLoggedIn(model.ID, string, bool) error { return nil }
func (NoopPublisher) PublishUserRegistered(model.ID, string, bool) error { return nil }
func (NoopPublisher) PublishMessageSent(model.Message) error { return nil }
func (NoopPublisher) PublishFeedbackSubmitted(string, model.ID, int) error { return nil }
func (NoopPublisher) PublishDonationSubmitted(string, string) error { return nil }
