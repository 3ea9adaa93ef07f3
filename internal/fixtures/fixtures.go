// Package fixtures holds the static catalogs the backend has no endpoint for
// yet: the public events list, the mentorat page and the expert panels.
package fixtures

import (
	"embed"
	"encoding/json"
	"fmt"

	"itgirls-web/internal/backend"
	"itgirls-web/internal/model"
)

//go:embed data/*.json
var files embed.FS

type Mentorat struct {
	Mentors      []model.Mentor              `json:"mentors"`
	Programs     []model.Program             `json:"programs"`
	Testimonials []model.MentoratTestimonial `json:"testimonials"`
}

type ExpertPanels struct {
	Nav           []model.NavItem            `json:"nav"`
	Trainings     []model.Training           `json:"trainings"`
	Events        []model.ExpertEvent        `json:"events"`
	Reservations  []model.Reservation        `json:"reservations"`
	Notifications []model.ExpertNotification `json:"notifications"`
}

type Set struct {
	Events   []backend.EventRecord
	Mentorat Mentorat
	Expert   ExpertPanels
}

func Load() (*Set, error) {
	set := &Set{}
	if err := decode("data/events.json", &set.Events); err != nil {
		return nil, err
	}
	if err := decode("data/mentorat.json", &set.Mentorat); err != nil {
		return nil, err
	}
	if err := decode("data/expert.json", &set.Expert); err != nil {
		return nil, err
	}
	return set, nil
}

func MustLoad() *Set {
	set, err := Load()
	if err != nil {
		panic(err)
	}
	return set
}

func decode(name string, v any) error {
	raw, err := files.ReadFile(name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
