// Package export shapes aliya-history data into the fixed tabular form
// consumed verbatim by the PDF/XLSX renderers: ordered columns, per-person
// rows with pre-formatted display strings, and the upcoming-events block.
// The shaper never fails; missing data degrades to sentinel values.
package export

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/shulsoft/gabbai/internal/aliya"
	"github.com/shulsoft/gabbai/internal/hebdate"
	"github.com/shulsoft/gabbai/internal/model"
	"github.com/shulsoft/gabbai/internal/upcoming"
)

// Column is one ordered report column: a category or an uncategorized
// aliya type.
type Column struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsCategory bool   `json:"is_category"`

	sortOrder float64
}

// ColumnSource describes a column candidate before ordering.
type ColumnSource struct {
	Name       string
	IsCategory bool
}

// Cell is one congregant's standing in one column. WeeksSinceLastAliya is
// expressed as an offset from the dataset's earliest aliya date: congregants
// with no aliya in the column carry the full weeks-since-earliest span,
// others carry that span minus the weeks since their own last aliya. -1
// means no earliest date exists at all.
type Cell struct {
	Count               int `json:"count"`
	WeeksSinceLastAliya int `json:"weeks_since_last_aliya"`
}

// PrayerRow is one display row. PrayerName is formatted exactly once here
// ("{child} בן של {parent}" for dependents) and treated as opaque text
// downstream.
type PrayerRow struct {
	PrayerName string          `json:"prayer_name"`
	IsChild    bool            `json:"is_child"`
	Cells      map[string]Cell `json:"cells"` // key: column id
}

// UpcomingEventRow is one pre-formatted upcoming-occurrence row.
type UpcomingEventRow struct {
	PrayerName string `json:"prayer_name"`
	Parasha    string `json:"parasha"`
	EventType  string `json:"event_type"`
	Age        string `json:"age"`
	Notes      string `json:"notes"`
}

// Data is the complete export payload.
type Data struct {
	Columns        []Column           `json:"columns"`
	PrayerRows     []PrayerRow        `json:"prayer_rows"`
	UpcomingEvents []UpcomingEventRow `json:"upcoming_events"`
	GeneratedDate  string             `json:"generated_date"`
}

// Input carries everything Prepare needs. Now is the reference date for the
// weeks metric and the generated stamp.
type Input struct {
	Histories      []aliya.PrayerHistory
	Columns        map[string]ColumnSource
	UpcomingItems  []upcoming.Item
	EventTypeNames map[string]string // event type id -> display name
	Categories     []model.AliyaTypeCategory
	EarliestDate   hebdate.Date
	HasEarliest    bool
	Now            hebdate.Date
}

const (
	birthdayLabel     = "יום הולדת"
	fallbackEventName = "אירוע"
	childOfSeparator  = " בן של "
)

// Prepare builds the export payload. It is the single place display names
// and weeks metrics are computed; downstream renderers must not re-derive
// them.
func Prepare(in Input) Data {
	columns := orderColumns(in.Columns, in.Categories)

	nowGregorian := in.Now.Gregorian()
	weeksSinceEarliest := -1
	if in.HasEarliest {
		weeksSinceEarliest = weeksBetween(in.EarliestDate.Gregorian(), nowGregorian)
	}

	rows := make([]PrayerRow, 0, len(in.Histories))
	for i := range in.Histories {
		h := &in.Histories[i]

		cells := make(map[string]Cell, len(h.Columns))
		for columnID, col := range h.Columns {
			weeks := -1
			if in.HasEarliest {
				if col.HasLast {
					weeks = weeksSinceEarliest - weeksBetween(col.LastDate.Gregorian(), nowGregorian)
				} else {
					weeks = weeksSinceEarliest
				}
			}
			cells[columnID] = Cell{Count: col.Count, WeeksSinceLastAliya: weeks}
		}

		rows = append(rows, PrayerRow{
			PrayerName: displayName(h.Prayer, h.Card, h.IsChild),
			IsChild:    h.IsChild,
			Cells:      cells,
		})
	}

	if len(columns) > 0 {
		firstID := columns[0].ID
		sort.SliceStable(rows, func(i, j int) bool {
			return cellWeeks(rows[i], firstID) > cellWeeks(rows[j], firstID)
		})
	}

	events := make([]UpcomingEventRow, 0, len(in.UpcomingItems))
	for i := range in.UpcomingItems {
		events = append(events, upcomingRow(&in.UpcomingItems[i], in.EventTypeNames))
	}

	return Data{
		Columns:        columns,
		PrayerRows:     rows,
		UpcomingEvents: events,
		GeneratedDate:  in.Now.String(),
	}
}

// orderColumns sorts category columns first by their catalog displayOrder
// (missing orders sink last), then uncategorized type columns in stable
// input-derived order.
func orderColumns(sources map[string]ColumnSource, categories []model.AliyaTypeCategory) []Column {
	orderByCategory := make(map[string]float64, len(categories))
	for i := range categories {
		order := math.Inf(1)
		if categories[i].DisplayOrder != nil {
			order = float64(*categories[i].DisplayOrder)
		}
		orderByCategory[categories[i].ID] = order
	}

	columns := make([]Column, 0, len(sources))
	for id, src := range sources {
		order := math.Inf(1)
		if src.IsCategory {
			if o, ok := orderByCategory[id]; ok {
				order = o
			}
		}
		columns = append(columns, Column{ID: id, Name: src.Name, IsCategory: src.IsCategory, sortOrder: order})
	}

	// Map iteration order is random; pin it before the semantic sort so
	// ties resolve the same way on every call.
	sort.Slice(columns, func(i, j int) bool { return columns[i].ID < columns[j].ID })
	sort.SliceStable(columns, func(i, j int) bool {
		a, b := &columns[i], &columns[j]
		if a.IsCategory != b.IsCategory {
			return a.IsCategory
		}
		return a.sortOrder < b.sortOrder
	})
	return columns
}

func cellWeeks(row PrayerRow, columnID string) int {
	cell, ok := row.Cells[columnID]
	if !ok {
		return -1
	}
	return cell.WeeksSinceLastAliya
}

func displayName(prayer *model.Prayer, card *model.PrayerCard, isChild bool) string {
	if isChild {
		return prayer.FullName() + childOfSeparator + card.Prayer.FullName()
	}
	return prayer.FullName()
}

func upcomingRow(item *upcoming.Item, eventTypeNames map[string]string) UpcomingEventRow {
	row := UpcomingEventRow{
		PrayerName: displayName(item.Prayer, item.Card, item.IsChild),
		Parasha:    item.HebrewDate.Parasha(),
		Age:        "-",
		Notes:      "-",
	}

	if item.Type == upcoming.TypeBirthday {
		row.EventType = birthdayLabel
		if item.Age > 0 {
			row.Age = strconv.Itoa(item.Age)
		}
		return row
	}

	row.EventType = fallbackEventName
	if item.Event != nil {
		if name, ok := eventTypeNames[item.Event.TypeID]; ok && name != "" {
			row.EventType = name
		} else if item.Event.TypeID != "" {
			row.EventType = item.Event.TypeID
		}
		if item.Event.Notes != "" {
			row.Notes = item.Event.Notes
		}
	}
	return row
}

// weeksBetween floors the distance between two instants into whole weeks.
func weeksBetween(from, to time.Time) int {
	const week = 7 * 24 * time.Hour
	return int(math.Floor(float64(to.Sub(from)) / float64(week)))
}
