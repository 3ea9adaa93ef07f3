package normalize

import (
	"bytes"
	"html/template"
	"regexp"
	"strconv"
	"strings"

	"itgirls-web/internal/backend"
	"itgirls-web/internal/model"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

// Raw HTML in posts is dropped: WithUnsafe is not set.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

var categoryIcons = map[string]string{
	"Programmation":  "💻",
	"Cybersécurité":  "🛡️",
	"Carrière Tech":  "🚀",
	"Data":           "📊",
	"Data Science":   "📈",
	"Cloud & DevOps": "☁️",
}

const defaultCategoryIcon = "✨"

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

var absoluteURL = regexp.MustCompile(`(?i)^https?://`)

func CategoryIcon(category string) string {
	if icon, ok := categoryIcons[category]; ok {
		return icon
	}
	return defaultCategoryIcon
}

// FrenchLongDate renders an ISO date as "15 mars 2025". Values that do not
// parse are returned unchanged.
func FrenchLongDate(iso string) string {
	if iso == "" {
		return ""
	}
	t, ok := model.ParseTime(iso)
	if !ok {
		return iso
	}
	return strconv.Itoa(t.Day()) + " " + frenchMonths[t.Month()-1] + " " + strconv.Itoa(t.Year())
}

// ResolveImageURL keeps absolute URLs and roots relative ones under publicURL.
func ResolveImageURL(publicURL, url string) string {
	if url == "" {
		return ""
	}
	if absoluteURL.MatchString(url) {
		return url
	}
	if strings.HasPrefix(url, "/") {
		return publicURL + url
	}
	return publicURL + "/" + url
}

// Markdown renders md to HTML, falling back to escaped text.
func Markdown(md string) string {
	if md == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTMLEscapeString(md)
	}
	return buf.String()
}

type Blog struct {
	PublicURL string
}

func (b Blog) Post(r backend.BlogPostRecord) model.BlogPost {
	return model.BlogPost{
		ID:           r.ID,
		Title:        r.Title,
		Category:     r.Category,
		CategoryIcon: CategoryIcon(r.Category),
		Excerpt:      r.Excerpt,
		ExcerptHTML:  Markdown(r.Excerpt),
		ContentHTML:  Markdown(r.Content),
		PublishDate:  r.PublishDate,
		DateLabel:    FrenchLongDate(r.PublishDate),
		ReadMinutes:  orDefault(r.ReadMinutes, 0),
		AuthorName:   r.AuthorName,
		ImageURL:     ResolveImageURL(b.PublicURL, r.ImageURL),
	}
}

func (b Blog) Posts(records []backend.BlogPostRecord) []model.BlogPost {
	out := make([]model.BlogPost, 0, len(records))
	for _, r := range records {
		out = append(out, b.Post(r))
	}
	return out
}

// Featured builds the "À la une" card, or nil without a featured post.
func (b Blog) Featured(r *backend.BlogPostRecord) *model.FeaturedPost {
	if r == nil {
		return nil
	}
	meta := "Posté le " + FrenchLongDate(r.PublishDate)
	if r.AuthorName != "" {
		meta += " • par " + r.AuthorName
	}
	return &model.FeaturedPost{
		Badge:       "À la une",
		Title:       r.Title,
		Meta:        meta,
		Excerpt:     r.Excerpt,
		ExcerptHTML: Markdown(r.Excerpt),
	}
}

func (b Blog) CommunityPosts(records []backend.CommunityPostRecord) []model.CommunityPost {
	out := make([]model.CommunityPost, 0, len(records))
	for _, r := range records {
		if r == (backend.CommunityPostRecord{}) {
			continue
		}
		out = append(out, model.CommunityPost{
			ID:         r.ID,
			Title:      r.Title,
			ImageURL:   ResolveImageURL(b.PublicURL, r.ImageURL),
			AuthorName: r.AuthorName,
		})
	}
	return out
}
