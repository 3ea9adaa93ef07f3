package session

import (
	"bytes"
	"encoding/json"

	"itgirls-web/internal/model"
)

// Record is the signed-in user as stored after login or registration.
type Record struct {
	ID         model.ID `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Role       string   `json:"role"`
	Token      string   `json:"token"`
	Profession string   `json:"profession,omitempty"`
	IsMentor   bool     `json:"isMentor"`
	Level      string   `json:"level,omitempty"`
	AvatarURL  string   `json:"avatarUrl,omitempty"`
}

// ParseRecord decodes a stored auth response. The backend sometimes nests the
// user under "user" with the token at the top level; both shapes flatten to
// the same Record. Anything that is not a JSON object yields nil.
func ParseRecord(raw []byte) *Record {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil
	}

	var envelope struct {
		Record
		AccessToken string  `json:"accessToken"`
		User        *Record `json:"user"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil
	}

	rec := envelope.Record
	if envelope.User != nil {
		rec = *envelope.User
		if rec.Token == "" {
			rec.Token = envelope.Token
		}
	}
	if rec.Token == "" {
		rec.Token = envelope.AccessToken
	}
	return &rec
}
