package model

import (
	"time"

	"github.com/shulsoft/gabbai/internal/hebdate"
)

// Donation is a pledge attached to a congregant. Amount is conceptually
// positive; the type does not enforce it.
type Donation struct {
	ID         string       `json:"id"`
	PrayerID   string       `json:"prayer_id"`
	Amount     float64      `json:"amount"`
	HebrewDate hebdate.Date `json:"hebrew_date"`
	Paid       bool         `json:"paid"`
	Notes      string       `json:"notes,omitempty"`
	CreatedBy  string       `json:"created_by"`
	CreatedAt  time.Time    `json:"created_at"`
}

// Overdue reports whether the donation is unpaid and dated more than 30
// days before today.
func (d *Donation) Overdue() bool {
	if d.Paid {
		return false
	}
	cutoff := hebdate.Now().SubtractDays(30)
	return d.HebrewDate.Gregorian().Before(cutoff.Gregorian())
}
