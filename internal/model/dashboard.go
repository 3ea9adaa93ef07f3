package model

import "time"

type Conversation struct {
	ID    ID     `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type,omitempty"`
}

type Message struct {
	ID             ID        `json:"id"`
	ConversationID ID        `json:"conversationId"`
	SenderID       ID        `json:"senderId"`
	SenderName     string    `json:"senderName,omitempty"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
	Optimistic     bool      `json:"optimistic,omitempty"`
}

type Enrollment struct {
	ID              ID     `json:"id"`
	Title           string `json:"title"`
	ThemeLabel      string `json:"themeLabel,omitempty"`
	Level           string `json:"level,omitempty"`
	ProgressPercent int    `json:"progressPercent"`
}

type GirlProfile struct {
	Name  string `json:"name"`
	Level string `json:"level"`
	Badge string `json:"badge"`
}

type GirlStats struct {
	Formations int `json:"formations"`
	Events     int `json:"events"`
	Messages   int `json:"messages"`
}

type Reminder struct {
	EventID   ID        `json:"eventId"`
	Title     string    `json:"title"`
	StartsAt  time.Time `json:"startsAt"`
	DaysUntil int       `json:"daysUntil"`
	Label     string    `json:"label"`
}

type GirlDashboard struct {
	Profile       GirlProfile    `json:"profile"`
	Stats         GirlStats      `json:"stats"`
	Enrollments   []Enrollment   `json:"enrollments"`
	Events        []EventCard    `json:"events"`
	Conversations []Conversation `json:"conversations"`
	Reminders     []Reminder     `json:"reminders"`
}

type ExpertProfile struct {
	Name       string `json:"name"`
	Initials   string `json:"initials"`
	Profession string `json:"profession"`
	IsMentor   bool   `json:"isMentor"`
	RoleLabel  string `json:"roleLabel"`
	AvatarURL  string `json:"avatarUrl"`
	Badge      string `json:"badge"`
}

type Training struct {
	ID     ID     `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
	Tone   string `json:"tone"`
}

type ExpertEvent struct {
	ID    ID     `json:"id"`
	Type  string `json:"type"`
	Title string `json:"title"`
	Date  string `json:"date"`
}

type Reservation struct {
	ID     ID     `json:"id"`
	Girl   string `json:"girl"`
	Topic  string `json:"topic"`
	When   string `json:"when"`
	Status string `json:"status"`
	Tone   string `json:"tone"`
}

type ExpertNotification struct {
	ID         ID     `json:"id"`
	Type       string `json:"type"`
	Title      string `json:"title"`
	Text       string `json:"text"`
	TargetPath string `json:"targetPath"`
	Time       string `json:"time"`
}

type StatTile struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value int    `json:"value"`
	Tone  string `json:"tone"`
	Path  string `json:"path,omitempty"`
}

type NavItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Path  string `json:"path"`
}

type ExpertDashboard struct {
	Profile       ExpertProfile        `json:"profile"`
	Nav           []NavItem            `json:"nav"`
	Stats         []StatTile           `json:"stats"`
	Trainings     []Training           `json:"trainings"`
	Events        []ExpertEvent        `json:"events"`
	Reservations  []Reservation        `json:"reservations"`
	Notifications []ExpertNotification `json:"notifications"`
}
