package normalize_test

import (
	"strings"
	"testing"
	"time"

	"itgirls-web/internal/backend"
	"itgirls-web/internal/model"
	"itgirls-web/internal/normalize"

	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestFormation_Defaults(t *testing.T) {
	f := normalize.Formation(backend.FormationRecord{ID: "3", Title: "Go", ThemeKey: "dev"})

	require.Equal(t, 4.7, f.Rating)
	require.Equal(t, 0, f.ReviewsCount)
	require.Equal(t, 0, f.EnrolledCount)
	require.Equal(t, "—", f.Prerequisites)
	require.True(t, f.SelfPaced)
	require.Equal(t, "/images/themes/dev.png", f.Thumbnail)
	require.Equal(t, "", f.Badge)
	require.False(t, f.IsPopular)
}

func TestFormation_KeepsExplicitZeroValues(t *testing.T) {
	f := normalize.Formation(backend.FormationRecord{
		Rating:    ptr(0.0),
		SelfPaced: ptr(false),
		IsPopular: ptr(true),
		Thumbnail: ptr(""),
	})

	require.Equal(t, 0.0, f.Rating)
	require.False(t, f.SelfPaced)
	require.True(t, f.IsPopular)
	require.Equal(t, "", f.Thumbnail)
}

func TestTestimonials_TextFallsBackToMessage(t *testing.T) {
	out := normalize.Testimonials([]backend.FeedbackRecord{
		{AuthorName: "Nora", AuthorTitle: "Dev", Text: "Top"},
		{AuthorName: "Imane", Message: "Merci"},
	})

	require.Equal(t, []model.Testimonial{
		{Name: "Nora", Role: "Dev", Text: "Top"},
		{Name: "Imane", Role: "", Text: "Merci"},
	}, out)
}

func TestFrenchLongDate(t *testing.T) {
	require.Equal(t, "15 mars 2025", normalize.FrenchLongDate("2025-03-15"))
	require.Equal(t, "1 août 2024", normalize.FrenchLongDate("2024-08-01T10:00:00"))
	require.Equal(t, "bientôt", normalize.FrenchLongDate("bientôt"))
	require.Equal(t, "", normalize.FrenchLongDate(""))
}

func TestResolveImageURL(t *testing.T) {
	require.Equal(t, "https://cdn.x/a.png", normalize.ResolveImageURL("/app", "https://cdn.x/a.png"))
	require.Equal(t, "/app/images/a.png", normalize.ResolveImageURL("/app", "/images/a.png"))
	require.Equal(t, "/images/a.png", normalize.ResolveImageURL("", "images/a.png"))
	require.Equal(t, "", normalize.ResolveImageURL("/app", ""))
}

func TestBlog_PostAndFeatured(t *testing.T) {
	b := normalize.Blog{}

	post := b.Post(backend.BlogPostRecord{
		ID:          "1",
		Title:       "Débuter en cybersécurité",
		Category:    "Cybersécurité",
		Excerpt:     "Les **bases**",
		Content:     "Intro<script>alert(1)</script>",
		PublishDate: "2025-01-05",
	})
	require.Equal(t, "🛡️", post.CategoryIcon)
	require.Equal(t, "5 janvier 2025", post.DateLabel)
	require.Contains(t, post.ExcerptHTML, "<strong>bases</strong>")
	require.False(t, strings.Contains(post.ContentHTML, "<script>"))

	require.Equal(t, "✨", normalize.CategoryIcon("Robotique"))

	featured := b.Featured(&backend.BlogPostRecord{Title: "T", Excerpt: "Les *outils* <b>clés</b>", PublishDate: "2025-01-05", AuthorName: "Sara"})
	require.Equal(t, "À la une", featured.Badge)
	require.Equal(t, "Posté le 5 janvier 2025 • par Sara", featured.Meta)
	require.Contains(t, featured.ExcerptHTML, "<em>outils</em>")
	require.NotContains(t, featured.ExcerptHTML, "<b>")

	featured = b.Featured(&backend.BlogPostRecord{Title: "T", PublishDate: "2025-01-05"})
	require.Equal(t, "Posté le 5 janvier 2025", featured.Meta)
	require.Empty(t, featured.ExcerptHTML)

	require.Nil(t, b.Featured(nil))
}

func TestBlog_CommunityPostsSkipsEmptyEntries(t *testing.T) {
	out := normalize.Blog{PublicURL: "/p"}.CommunityPosts([]backend.CommunityPostRecord{
		{ID: "1", Title: "Hackathon", ImageURL: "/img/h.jpg"},
		{},
	})
	require.Len(t, out, 1)
	require.Equal(t, "/p/img/h.jpg", out[0].ImageURL)
}

func TestEvent_TypeFallbackAndLocalTime(t *testing.T) {
	ev := normalize.Event(backend.EventRecord{ID: "2", Type: "ATELIER", Title: "Hooks", StartsAt: "2025-02-15T15:00:00"})

	require.Equal(t, "atelier", ev.TypeKey)
	require.Equal(t, "ATELIER", ev.TypeLabel)
	require.Equal(t, time.Date(2025, 2, 15, 15, 0, 0, 0, time.Local), ev.StartsAt)
}
