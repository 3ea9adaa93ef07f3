package normalize

import (
	"itgirls-web/internal/backend"
	"itgirls-web/internal/model"
)

const (
	DefaultRating        = 4.7
	DefaultPrerequisites = "—"
	DefaultThumbnail     = "/images/themes/dev.png"
)

// Formation fills the catalog defaults for fields the backend left out.
func Formation(r backend.FormationRecord) model.Formation {
	return model.Formation{
		ID:            r.ID,
		ThemeKey:      r.ThemeKey,
		ThemeLabel:    r.ThemeLabel,
		Title:         r.Title,
		Level:         r.Level,
		Rating:        orDefault(r.Rating, DefaultRating),
		ReviewsCount:  orDefault(r.ReviewsCount, 0),
		EnrolledCount: orDefault(r.EnrolledCount, 0),
		Prerequisites: orDefault(r.Prerequisites, DefaultPrerequisites),
		DurationWeeks: orDefault(r.DurationWeeks, 0),
		HoursPerWeek:  orDefault(r.HoursPerWeek, 0),
		SelfPaced:     orDefault(r.SelfPaced, true),
		LessonsCount:  orDefault(r.LessonsCount, 0),
		Badge:         orDefault(r.Badge, ""),
		Thumbnail:     orDefault(r.Thumbnail, DefaultThumbnail),
		IsPopular:     orDefault(r.IsPopular, false),
	}
}

func Formations(records []backend.FormationRecord) []model.Formation {
	out := make([]model.Formation, 0, len(records))
	for _, r := range records {
		out = append(out, Formation(r))
	}
	return out
}

func orDefault[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}
