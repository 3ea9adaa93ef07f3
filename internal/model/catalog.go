package model

import "time"

type Formation struct {
	ID            ID      `json:"id"`
	ThemeKey      string  `json:"themeKey"`
	ThemeLabel    string  `json:"themeLabel"`
	Title         string  `json:"title"`
	Level         string  `json:"level"`
	Rating        float64 `json:"rating"`
	ReviewsCount  int     `json:"reviewsCount"`
	EnrolledCount int     `json:"enrolledCount"`
	Prerequisites string  `json:"prerequisites"`
	DurationWeeks int     `json:"durationWeeks"`
	HoursPerWeek  int     `json:"hoursPerWeek"`
	SelfPaced     bool    `json:"selfPaced"`
	LessonsCount  int     `json:"lessonsCount"`
	Badge         string  `json:"badge"`
	Thumbnail     string  `json:"thumbnail"`
	IsPopular     bool    `json:"isPopular"`
}

type Event struct {
	ID                ID        `json:"id"`
	TypeKey           string    `json:"typeKey"`
	TypeLabel         string    `json:"typeLabel"`
	Title             string    `json:"title"`
	StartsAt          time.Time `json:"startsAt"`
	DurationMins      int       `json:"durationMins"`
	ParticipantsCount int       `json:"participantsCount"`
	Badge             string    `json:"badge,omitempty"`
	Cover             string    `json:"cover,omitempty"`
}

// EventCard is an Event with the values derived from the current time.
type EventCard struct {
	Event
	Past      bool   `json:"past"`
	Soon      bool   `json:"soon"`
	DaysUntil *int   `json:"daysUntil,omitempty"`
	When      string `json:"when"`
}

type Testimonial struct {
	Name string `json:"name"`
	Role string `json:"role"`
	Text string `json:"text"`
}

type BlogPost struct {
	ID           ID     `json:"id"`
	Title        string `json:"title"`
	Category     string `json:"category"`
	CategoryIcon string `json:"categoryIcon"`
	Excerpt      string `json:"excerpt"`
	ExcerptHTML  string `json:"excerptHtml"`
	ContentHTML  string `json:"contentHtml,omitempty"`
	PublishDate  string `json:"publishDate"`
	DateLabel    string `json:"dateLabel"`
	ReadMinutes  int    `json:"readMinutes,omitempty"`
	AuthorName   string `json:"authorName,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty"`
}

type FeaturedPost struct {
	Badge       string `json:"badge"`
	Title       string `json:"title"`
	Meta        string `json:"meta"`
	Excerpt     string `json:"excerpt"`
	ExcerptHTML string `json:"excerptHtml"`
}

type CommunityPost struct {
	ID         ID     `json:"id"`
	Title      string `json:"title"`
	ImageURL   string `json:"imageUrl"`
	AuthorName string `json:"authorName,omitempty"`
}

type Mentor struct {
	ID       ID       `json:"id"`
	Verified bool     `json:"verified"`
	Name     string   `json:"name"`
	Title    string   `json:"title"`
	Tags     []string `json:"tags"`
	Bio      string   `json:"bio"`
}

type Program struct {
	Title string `json:"title"`
	Desc  string `json:"desc"`
}

type MentoratTestimonial struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Text  string `json:"text"`
	Stars int    `json:"stars"`
}
