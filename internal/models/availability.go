package models

import (
	"time"

	"github.com/noah-isme/trainer-planning-api/pkg/calendar"
)

// AvailabilityStatus describes whether a trainer can be booked on a day.
type AvailabilityStatus string

const (
	StatusAvailable   AvailabilityStatus = "available"
	StatusPartial     AvailabilityStatus = "partial"
	StatusUnavailable AvailabilityStatus = "unavailable"
)

// Valid reports whether the status belongs to the taxonomy.
func (s AvailabilityStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusPartial, StatusUnavailable:
		return true
	}
	return false
}

// Label is the display name of the status.
func (s AvailabilityStatus) Label() string {
	switch s {
	case StatusAvailable:
		return "Available"
	case StatusPartial:
		return "Partially available"
	case StatusUnavailable:
		return "Unavailable"
	}
	return string(s)
}

// AvailabilityPeriod is the sub-day granularity of an entry.
type AvailabilityPeriod string

const (
	PeriodFullDay   AvailabilityPeriod = "full_day"
	PeriodMorning   AvailabilityPeriod = "morning"
	PeriodAfternoon AvailabilityPeriod = "afternoon"
)

// Valid reports whether the period belongs to the taxonomy.
func (p AvailabilityPeriod) Valid() bool {
	switch p {
	case PeriodFullDay, PeriodMorning, PeriodAfternoon:
		return true
	}
	return false
}

// Label is the display name of the period.
func (p AvailabilityPeriod) Label() string {
	switch p {
	case PeriodFullDay:
		return "Full day"
	case PeriodMorning:
		return "Morning"
	case PeriodAfternoon:
		return "Afternoon"
	}
	return string(p)
}

// AvailabilityStatuses lists the statuses in display order.
var AvailabilityStatuses = []AvailabilityStatus{StatusAvailable, StatusPartial, StatusUnavailable}

// AvailabilityEntry records a trainer's status for a single calendar day.
type AvailabilityEntry struct {
	ID        string             `db:"id" json:"id"`
	SubjectID string             `db:"subject_id" json:"subject_id"`
	Date      time.Time          `db:"date" json:"date"`
	Status    AvailabilityStatus `db:"status" json:"status"`
	Period    AvailabilityPeriod `db:"period" json:"period"`
	Notes     *string            `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt time.Time          `db:"updated_at" json:"updated_at"`
}

// DateKey returns the ISO day key of the entry.
func (e AvailabilityEntry) DateKey() string {
	return calendar.Key(e.Date)
}

// AvailabilityUpdate holds the fields the single-entry editor may change.
type AvailabilityUpdate struct {
	Status AvailabilityStatus
	Period AvailabilityPeriod
	Notes  *string
}

// AvailabilityFilter narrows availability reads to a window and optional subjects.
type AvailabilityFilter struct {
	DateFrom   time.Time
	DateTo     time.Time
	SubjectIDs []string
}

// BulkRejection reports a row the store refused during a bulk create.
type BulkRejection struct {
	Date   time.Time `json:"date"`
	Reason string    `json:"reason"`
}

// BulkCreateResult separates inserted rows from rejected ones.
type BulkCreateResult struct {
	Created  []AvailabilityEntry `json:"created"`
	Rejected []BulkRejection     `json:"rejected"`
}

// Partial reports whether some rows were refused.
func (r *BulkCreateResult) Partial() bool {
	return r != nil && len(r.Rejected) > 0
}
