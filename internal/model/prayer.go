package model

import (
	"strings"
	"time"

	"github.com/shulsoft/gabbai/internal/hebdate"
)

// PrayerCard groups one primary congregant with zero or more dependent
// children. Children have no identity outside the card.
type PrayerCard struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Prayer    Prayer    `json:"prayer"`
	Children  []Prayer  `json:"children"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Prayer is a single congregant record. HebrewBirthDate is the zero Date
// when no birth date was recorded.
type Prayer struct {
	ID              string        `json:"id"`
	CardID          string        `json:"card_id"`
	FirstName       string        `json:"first_name"`
	LastName        string        `json:"last_name"`
	HebrewBirthDate hebdate.Date  `json:"hebrew_birth_date"`
	PhoneNumber     string        `json:"phone_number,omitempty"`
	Email           string        `json:"email,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	Events          []PrayerEvent `json:"events"`
	Donations       []Donation    `json:"donations"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// FullName returns "First Last" with surrounding whitespace trimmed.
func (p *Prayer) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// EligibleForAliya reports whether the congregant may be called for an
// aliya: anyone with no recorded birth date, or whose Hebrew age is 13+.
func (p *Prayer) EligibleForAliya() bool {
	if p.HebrewBirthDate.IsZero() {
		return true
	}
	return p.HebrewBirthDate.IsOlderThan(13)
}

// PrayerEvent is a life event attached to a congregant. Whether it recurs
// yearly is a property of its type, not of the event itself.
type PrayerEvent struct {
	ID         string       `json:"id"`
	PrayerID   string       `json:"prayer_id"`
	TypeID     string       `json:"type_id"`
	HebrewDate hebdate.Date `json:"hebrew_date"`
	Notes      string       `json:"notes,omitempty"`
}

// PrayerEventType is a catalog entry for life-event kinds.
type PrayerEventType struct {
	ID             string `json:"id"`
	DisplayName    string `json:"display_name"`
	RecurrenceType string `json:"recurrence_type"` // "none" or "yearly"
	Enabled        bool   `json:"enabled"`
	Description    string `json:"description,omitempty"`
	DisplayOrder   *int   `json:"display_order,omitempty"`
}

// IsRecurring reports whether events of this type recur yearly on the same
// Hebrew month/day.
func (t *PrayerEventType) IsRecurring() bool {
	return t.RecurrenceType == "yearly"
}
