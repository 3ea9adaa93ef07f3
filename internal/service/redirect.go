package service

import (
	"encoding/json"
	"strings"
)

const (
	ExpertDashboardPath = "/expert-dashboard"
	GirlDashboardPath   = "/girl-dashboard"
)

// RedirectFor picks the dashboard for a login or register response. The role
// is read at the top level or one level down under "user".
func RedirectFor(raw []byte) string {
	var body struct {
		Role any `json:"role"`
		User *struct {
			Role any `json:"role"`
		} `json:"user"`
	}
	_ = json.Unmarshal(raw, &body)

	role := roleString(body.Role)
	if role == "" && body.User != nil {
		role = roleString(body.User.Role)
	}

	if strings.ToUpper(role) == "EXPERT" {
		return ExpertDashboardPath
	}
	return GirlDashboardPath
}

func roleString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// MapEducationToLevel turns a registration education level into the
// dashboard level label.
func MapEducationToLevel(educationLevel string) string {
	switch educationLevel {
	case "lyceenne":
		return "Débutant"
	case "bac2", "bac3":
		return "Intermédiaire"
	case "master":
		return "Avancé"
	default:
		return "Débutant"
	}
}
