package normalize

import (
	"itgirls-web/internal/backend"
	"itgirls-web/internal/model"
)

// Testimonials maps general feedback to carousel entries. The body comes
// from "text", or "message" when text is empty.
func Testimonials(records []backend.FeedbackRecord) []model.Testimonial {
	out := make([]model.Testimonial, 0, len(records))
	for _, r := range records {
		text := r.Text
		if text == "" {
			text = r.Message
		}
		out = append(out, model.Testimonial{
			Name: r.AuthorName,
			Role: r.AuthorTitle,
			Text: text,
		})
	}
	return out
}
