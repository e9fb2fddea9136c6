package aliya

import (
	"sort"

	"github.com/shulsoft/gabbai/internal/hebdate"
	"github.com/shulsoft/gabbai/internal/model"
)

// ColumnData accumulates one congregant's aliyot for one report column
// (a category, or an uncategorized aliya type standing for itself).
type ColumnData struct {
	Count       int
	LastDate    hebdate.Date
	HasLast     bool
	LastParasha string
}

// PrayerHistory is one eligible congregant's aliya record, bucketed into
// report columns.
type PrayerHistory struct {
	Prayer         *model.Prayer
	Card           *model.PrayerCard
	IsChild        bool
	Columns        map[string]*ColumnData
	OverallLast    hebdate.Date
	HasOverallLast bool
	TotalAliyot    int
}

// ColumnIDs returns the full column id set for the history report: every
// category id plus every aliya type that belongs to no category.
func ColumnIDs(types []model.AliyaType, categories []model.AliyaTypeCategory) []string {
	categorized := make(map[string]bool)
	var ids []string
	for i := range categories {
		ids = append(ids, categories[i].ID)
		for _, typeID := range categories[i].AliyaTypeIDs {
			categorized[typeID] = true
		}
	}
	for i := range types {
		if !categorized[types[i].ID] {
			ids = append(ids, types[i].ID)
		}
	}
	return ids
}

// EarliestDate returns the earliest occasion date across all groups, and
// false when there are no groups.
func EarliestDate(groups []model.AliyaGroup) (hebdate.Date, bool) {
	var earliest hebdate.Date
	found := false
	for i := range groups {
		if !found || earliest.After(groups[i].HebrewDate) {
			earliest = groups[i].HebrewDate
			found = true
		}
	}
	return earliest, found
}

// BuildHistory collects every aliya-eligible congregant with their aliyot
// bucketed per column. Each aliya counts into every category containing its
// type; a type in no category counts under its own id. Results are ordered
// by overall last aliya date, oldest first; congregants with no aliyot sort
// last.
func BuildHistory(cards []model.PrayerCard, groups []model.AliyaGroup, types []model.AliyaType, categories []model.AliyaTypeCategory) []PrayerHistory {
	columnIDs := ColumnIDs(types, categories)

	groupByID := make(map[string]*model.AliyaGroup, len(groups))
	for i := range groups {
		groupByID[groups[i].ID] = &groups[i]
	}

	// typeID -> ids of categories containing it
	containing := make(map[string][]string)
	for i := range categories {
		for _, typeID := range categories[i].AliyaTypeIDs {
			containing[typeID] = append(containing[typeID], categories[i].ID)
		}
	}

	var histories []PrayerHistory
	collect := func(prayer *model.Prayer, card *model.PrayerCard, isChild bool) {
		if !prayer.EligibleForAliya() {
			return
		}

		columns := make(map[string]*ColumnData, len(columnIDs))
		for _, id := range columnIDs {
			columns[id] = &ColumnData{}
		}

		h := PrayerHistory{Prayer: prayer, Card: card, IsChild: isChild, Columns: columns}

		for _, a := range ForPrayer(prayer.ID, groups) {
			group, ok := groupByID[a.AliyaGroupID]
			if !ok {
				continue
			}
			h.TotalAliyot++

			targets := containing[a.AliyaTypeID]
			if len(targets) == 0 {
				targets = []string{a.AliyaTypeID}
			}
			for _, columnID := range targets {
				col, ok := columns[columnID]
				if !ok {
					// Uncategorized type absent from the catalog; tolerate.
					col = &ColumnData{}
					columns[columnID] = col
				}
				col.Count++
				if !col.HasLast || group.HebrewDate.After(col.LastDate) {
					col.LastDate = group.HebrewDate
					col.HasLast = true
					col.LastParasha = group.HebrewDate.Parasha()
				}
			}

			if !h.HasOverallLast || group.HebrewDate.After(h.OverallLast) {
				h.OverallLast = group.HebrewDate
				h.HasOverallLast = true
			}
		}

		histories = append(histories, h)
	}

	for i := range cards {
		card := &cards[i]
		collect(&card.Prayer, card, false)
		for j := range card.Children {
			collect(&card.Children[j], card, true)
		}
	}

	sort.SliceStable(histories, func(i, j int) bool {
		a, b := &histories[i], &histories[j]
		if !a.HasOverallLast || !b.HasOverallLast {
			// No-aliyot rows sink to the end.
			return a.HasOverallLast && !b.HasOverallLast
		}
		return b.OverallLast.After(a.OverallLast)
	})
	return histories
}
