package backend

import (
	"bytes"
	"encoding/json"

	"itgirls-web/internal/model"
)

// Raw backend records. Optional fields are pointers so the normalizers can
// tell "absent" from "zero".

type FormationRecord struct {
	ID            model.ID `json:"id"`
	ThemeKey      string   `json:"themeKey"`
	ThemeLabel    string   `json:"themeLabel"`
	Title         string   `json:"title"`
	Level         string   `json:"level"`
	Rating        *float64 `json:"rating"`
	ReviewsCount  *int     `json:"reviewsCount"`
	EnrolledCount *int     `json:"enrolledCount"`
	Prerequisites *string  `json:"prerequisites"`
	DurationWeeks *int     `json:"durationWeeks"`
	HoursPerWeek  *int     `json:"hoursPerWeek"`
	SelfPaced     *bool    `json:"selfPaced"`
	LessonsCount  *int     `json:"lessonsCount"`
	Badge         *string  `json:"badge"`
	Thumbnail     *string  `json:"thumbnail"`
	IsPopular     *bool    `json:"isPopular"`
}

type FeedbackRecord struct {
	AuthorName  string `json:"authorName"`
	AuthorTitle string `json:"authorTitle"`
	Text        string `json:"text"`
	Message     string `json:"message"`
	Rating      *int   `json:"rating"`
}

type BlogPostRecord struct {
	ID          model.ID `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Excerpt     string   `json:"excerpt"`
	Content     string   `json:"content"`
	PublishDate string   `json:"publishDate"`
	ReadMinutes *int     `json:"readMinutes"`
	AuthorName  string   `json:"authorName"`
	ImageURL    string   `json:"imageUrl"`
}

type CommunityPostRecord struct {
	ID         model.ID `json:"id"`
	Title      string   `json:"title"`
	ImageURL   string   `json:"imageUrl"`
	AuthorName string   `json:"authorName"`
}

type EventRecord struct {
	ID                model.ID `json:"id"`
	TypeKey           string   `json:"typeKey"`
	TypeLabel         string   `json:"typeLabel"`
	Type              string   `json:"type"`
	Title             string   `json:"title"`
	StartsAt          string   `json:"startsAt"`
	DurationMins      *int     `json:"durationMins"`
	ParticipantsCount *int     `json:"participantsCount"`
	Badge             string   `json:"badge"`
	Cover             string   `json:"cover"`
}

type EnrollmentRecord struct {
	ID              model.ID `json:"id"`
	Title           string   `json:"title"`
	ThemeLabel      string   `json:"themeLabel"`
	Level           string   `json:"level"`
	ProgressPercent *float64 `json:"progressPercent"`
}

type DashboardRecord struct {
	Profile *struct {
		Name  string `json:"name"`
		Level string `json:"level"`
		Badge string `json:"badge"`
	} `json:"profile"`
	Stats *struct {
		Formations *int `json:"formations"`
		Events     *int `json:"events"`
		Messages   *int `json:"messages"`
	} `json:"stats"`
	Enrollments   []EnrollmentRecord   `json:"enrollments"`
	Events        []EventRecord        `json:"events"`
	Conversations []model.Conversation `json:"conversations"`
}

type MessageRecord struct {
	ID             model.ID `json:"id"`
	ConversationID model.ID `json:"conversationId"`
	SenderID       model.ID `json:"senderId"`
	SenderName     string   `json:"senderName"`
	Content        string   `json:"content"`
	CreatedAt      string   `json:"createdAt"`
}

func (m MessageRecord) Message() model.Message {
	msg := model.Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		SenderName:     m.SenderName,
		Content:        m.Content,
	}
	if t, ok := model.ParseTime(m.CreatedAt); ok {
		msg.CreatedAt = t
	}
	return msg
}

// Request bodies.

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	Role       string  `json:"role"`
	Level      *string `json:"level"`
	Profession *string `json:"profession"`
	IsMentor   bool    `json:"isMentor"`
	CVFile     *string `json:"cvFile"`
}

type DonationRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Amount    string `json:"amount"`
	Message   string `json:"message"`
}

type FeedbackRequest struct {
	UserID      model.ID `json:"userId"`
	AuthorName  string   `json:"authorName"`
	AuthorTitle string   `json:"authorTitle"`
	Rating      int      `json:"rating"`
	Message     string   `json:"message"`
}

// MentoratFeedbackRequest always carries mentorId, null when no mentor is picked.
type MentoratFeedbackRequest struct {
	FeedbackRequest
	MentorID *model.ID `json:"mentorId"`
}

type SendMessageRequest struct {
	Content    string   `json:"content"`
	SenderID   model.ID `json:"senderId"`
	SenderName string   `json:"senderName"`
}

// decodeList accepts a JSON array and treats any other shape as an empty list.
func decodeList[T any](raw json.RawMessage) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
