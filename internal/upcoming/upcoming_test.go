package upcoming

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shulsoft/gabbai/internal/hebdate"
	"github.com/shulsoft/gabbai/internal/model"
)

// fixedClock pins Now for deterministic windows.
type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// now is 1 Tishrei 5786 (September 23, 2025).
var now = time.Date(2025, time.September, 23, 15, 30, 0, 0, time.UTC)

func adultCard(id, first string, birth hebdate.Date) model.PrayerCard {
	return model.PrayerCard{
		ID: id,
		Prayer: model.Prayer{
			ID:              id + "-p",
			CardID:          id,
			FirstName:       first,
			LastName:        "Levi",
			HebrewBirthDate: birth,
		},
	}
}

func TestNextBirthdayOccurrence(t *testing.T) {
	today := time.Date(2025, time.September, 23, 0, 0, 0, 0, time.UTC)

	// 10 Tishrei is a week ahead of today (1 Tishrei 5786).
	next := NextBirthdayOccurrence(hebdate.New(5740, 7, 10), today)
	assert.Equal(t, hebdate.New(5786, 7, 10).Gregorian(), next)

	// 29 Elul already passed this Hebrew year, so it projects into 5787.
	next = NextBirthdayOccurrence(hebdate.New(5740, 6, 29), today)
	assert.Equal(t, hebdate.New(5787, 6, 29).Gregorian(), next)

	// A birthday landing on today itself is not pushed to next year.
	next = NextBirthdayOccurrence(hebdate.New(5740, 7, 1), today)
	assert.Equal(t, hebdate.New(5786, 7, 1).Gregorian(), next)
}

func TestComputeWindowBounds(t *testing.T) {
	cards := []model.PrayerCard{
		adultCard("c1", "Inside", hebdate.New(5740, 7, 10)),  // 9 days out
		adultCard("c2", "Today", hebdate.New(5740, 7, 1)),    // today
		adultCard("c3", "Outside", hebdate.New(5740, 9, 10)), // well past 30 days
	}

	items := Compute(cards, 30, fixedClock{now})
	require.Len(t, items, 2)

	assert.Equal(t, "Today", items[0].Prayer.FirstName)
	assert.Equal(t, "Inside", items[1].Prayer.FirstName)
	for _, it := range items {
		assert.Equal(t, TypeBirthday, it.Type)
		assert.False(t, it.IsChild)
	}
}

func TestComputeWindowEndInclusive(t *testing.T) {
	// 8 Tishrei is exactly 7 days after 1 Tishrei 5786.
	cards := []model.PrayerCard{adultCard("c1", "Edge", hebdate.New(5740, 7, 8))}

	items := Compute(cards, 7, fixedClock{now})
	require.Len(t, items, 1)

	items = Compute(cards, 6, fixedClock{now})
	assert.Empty(t, items)
}

func TestComputeAgeTurning(t *testing.T) {
	// Born 10 Tishrei 5740; on 1 Tishrei 5786 they are 45, turning 46.
	cards := []model.PrayerCard{adultCard("c1", "Miriam", hebdate.New(5740, 7, 10))}

	items := Compute(cards, 30, fixedClock{now})
	require.Len(t, items, 1)
	assert.Equal(t, 46, items[0].Age)
	assert.True(t, items[0].HebrewDate.Equal(hebdate.New(5786, 7, 10)))
}

func TestComputeSkipsIneligibleChildren(t *testing.T) {
	card := adultCard("c1", "Aharon", hebdate.New(5740, 7, 10))
	card.Children = []model.Prayer{
		{
			ID:              "child-young",
			CardID:          "c1",
			FirstName:       "Yosef",
			HebrewBirthDate: hebdate.New(5780, 7, 10), // turning 6
		},
		{
			ID:              "child-of-age",
			CardID:          "c1",
			FirstName:       "Dov",
			HebrewBirthDate: hebdate.New(5772, 7, 10), // already 13
		},
		{
			ID:              "child-twelve",
			CardID:          "c1",
			FirstName:       "Gershon",
			HebrewBirthDate: hebdate.New(5774, 7, 1), // exactly 12 today
		},
		{
			ID:              "child-thirteen",
			CardID:          "c1",
			FirstName:       "Baruch",
			HebrewBirthDate: hebdate.New(5773, 7, 1), // exactly 13 today
		},
	}

	items := Compute([]model.PrayerCard{card}, 30, fixedClock{now})
	require.Len(t, items, 3)

	var names []string
	for _, it := range items {
		names = append(names, it.Prayer.FirstName)
		if it.Prayer.FirstName != "Aharon" {
			assert.True(t, it.IsChild)
		}
	}
	assert.ElementsMatch(t, []string{"Aharon", "Dov", "Baruch"}, names)
}

func TestComputeNoBirthDateStillEligibleForEvents(t *testing.T) {
	card := adultCard("c1", "Shimon", hebdate.Date{})
	card.Prayer.Events = []model.PrayerEvent{
		{
			ID:         "e1",
			PrayerID:   "c1-p",
			TypeID:     "yahrzeit",
			HebrewDate: hebdate.New(5786, 7, 5),
		},
	}

	items := Compute([]model.PrayerCard{card}, 30, fixedClock{now})
	require.Len(t, items, 1)
	assert.Equal(t, TypeEvent, items[0].Type)
	require.NotNil(t, items[0].Event)
	assert.Equal(t, "e1", items[0].Event.ID)
}

func TestComputeEventOutsideWindow(t *testing.T) {
	card := adultCard("c1", "Shimon", hebdate.Date{})
	card.Prayer.Events = []model.PrayerEvent{
		{ID: "past", PrayerID: "c1-p", HebrewDate: hebdate.New(5785, 7, 5)},
		{ID: "far", PrayerID: "c1-p", HebrewDate: hebdate.New(5786, 11, 5)},
	}

	items := Compute([]model.PrayerCard{card}, 30, fixedClock{now})
	assert.Empty(t, items)
}

func TestComputeSortedByDate(t *testing.T) {
	cards := []model.PrayerCard{
		adultCard("c1", "Later", hebdate.New(5740, 7, 20)),
		adultCard("c2", "Sooner", hebdate.New(5740, 7, 3)),
		adultCard("c3", "Middle", hebdate.New(5740, 7, 11)),
	}

	items := Compute(cards, 30, fixedClock{now})
	require.Len(t, items, 3)
	assert.Equal(t, "Sooner", items[0].Prayer.FirstName)
	assert.Equal(t, "Middle", items[1].Prayer.FirstName)
	assert.Equal(t, "Later", items[2].Prayer.FirstName)
}
