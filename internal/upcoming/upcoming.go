// Package upcoming computes the birthday and life-event occurrences falling
// inside a forward-looking day window. Hebrew birthdays recur yearly and are
// projected to their next Gregorian occurrence; life events enter the window
// on their stored date as-is.
package upcoming

import (
	"sort"
	"time"

	"github.com/shulsoft/gabbai/internal/hebdate"
	"github.com/shulsoft/gabbai/internal/model"
)

// Item kinds.
const (
	TypeBirthday = "birthday"
	TypeEvent    = "event"
)

// Item is one upcoming occurrence.
type Item struct {
	Type       string             `json:"type"`
	Date       time.Time          `json:"date"`
	HebrewDate hebdate.Date       `json:"hebrew_date"`
	Prayer     *model.Prayer      `json:"prayer"`
	Card       *model.PrayerCard  `json:"card"`
	IsChild    bool               `json:"is_child"`
	Event      *model.PrayerEvent `json:"event,omitempty"`
	Age        int                `json:"age,omitempty"` // age being turned; birthdays only
}

// NextBirthdayOccurrence projects a Hebrew birth date onto its occurrence
// in the current Hebrew year, or the following year when that instant has
// already passed today.
func NextBirthdayOccurrence(birth hebdate.Date, today time.Time) time.Time {
	currentYear := hebdate.FromGregorian(today).Year()

	next := hebdate.New(currentYear, birth.Month(), birth.Day())
	g := next.Gregorian()
	if g.Before(today) {
		next = hebdate.New(currentYear+1, birth.Month(), birth.Day())
		g = next.Gregorian()
	}
	return g
}

// Compute returns every birthday and life event for aliya-eligible
// congregants falling inside [today, today+daysAhead], inclusive on both
// ends at day grain, sorted ascending by Gregorian date.
func Compute(cards []model.PrayerCard, daysAhead int, clock Clock) []Item {
	today := startOfDay(clock.Now())
	future := today.AddDate(0, 0, daysAhead)
	todayHebrew := hebdate.FromGregorian(today)

	var items []Item
	collect := func(prayer *model.Prayer, card *model.PrayerCard, isChild bool) {
		if !eligibleAt(prayer, todayHebrew) {
			return
		}

		if !prayer.HebrewBirthDate.IsZero() {
			next := NextBirthdayOccurrence(prayer.HebrewBirthDate, today)
			if inWindow(next, today, future) {
				items = append(items, Item{
					Type:       TypeBirthday,
					Date:       next,
					HebrewDate: hebdate.FromGregorian(next),
					Prayer:     prayer,
					Card:       card,
					IsChild:    isChild,
					Age:        prayer.HebrewBirthDate.AgeAt(todayHebrew) + 1,
				})
			}
		}

		for i := range prayer.Events {
			event := &prayer.Events[i]
			date := event.HebrewDate.Gregorian()
			if inWindow(date, today, future) {
				items = append(items, Item{
					Type:       TypeEvent,
					Date:       date,
					HebrewDate: event.HebrewDate,
					Prayer:     prayer,
					Card:       card,
					IsChild:    isChild,
					Event:      event,
				})
			}
		}
	}

	for i := range cards {
		card := &cards[i]
		collect(&card.Prayer, card, false)
		for j := range card.Children {
			collect(&card.Children[j], card, true)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.Before(items[j].Date)
	})
	return items
}

// eligibleAt mirrors model.Prayer.EligibleForAliya against an explicit
// "today" so the window is a pure function of the injected clock.
func eligibleAt(p *model.Prayer, today hebdate.Date) bool {
	if p.HebrewBirthDate.IsZero() {
		return true
	}
	return p.HebrewBirthDate.AgeAt(today) >= 13
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
