package models

import (
	"strings"
	"time"
)

// Trainer represents a catalog record for a person who can teach sessions.
type Trainer struct {
	ID        string    `db:"id" json:"id"`
	UserID    *string   `db:"user_id" json:"user_id,omitempty"`
	Email     string    `db:"email" json:"email"`
	FullName  string    `db:"full_name" json:"full_name"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	Expertise *string   `db:"expertise" json:"expertise,omitempty"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// SubjectID resolves the identifier availability rows are keyed by: the linked
// account when present, the catalog record otherwise.
func (t Trainer) SubjectID() string {
	if t.UserID != nil {
		if id := strings.TrimSpace(*t.UserID); id != "" {
			return id
		}
	}
	return strings.TrimSpace(t.ID)
}

// TrainerFilter captures filtering options for listing trainers.
type TrainerFilter struct {
	Search string
	Active *bool
}

// ActiveTrainers keeps active trainers, preserving order.
func ActiveTrainers(trainers []Trainer) []Trainer {
	out := make([]Trainer, 0, len(trainers))
	for _, t := range trainers {
		if t.Active {
			out = append(out, t)
		}
	}
	return out
}
