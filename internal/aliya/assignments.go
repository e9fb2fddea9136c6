// Package aliya synthesizes aliya views out of group assignment maps and the
// congregant roster. No aliya entity is persisted anywhere; everything here
// is an in-memory join recomputed from its inputs on every call.
package aliya

import (
	"github.com/shulsoft/gabbai/internal/model"
)

// Assignment names one aliya: a group occasion plus the type read there.
type Assignment struct {
	AliyaGroupID string `json:"aliya_group_id"`
	AliyaTypeID  string `json:"aliya_type_id"`
}

// FlatAssignment is an assignment joined with the congregant it references.
type FlatAssignment struct {
	Assignment
	Prayer  *model.Prayer     `json:"prayer"`
	Card    *model.PrayerCard `json:"card"`
	IsChild bool              `json:"is_child"`
}

type rosterEntry struct {
	prayer  *model.Prayer
	card    *model.PrayerCard
	isChild bool
}

// buildRoster indexes every congregant (primaries and children) by id.
func buildRoster(cards []model.PrayerCard) map[string]rosterEntry {
	roster := make(map[string]rosterEntry)
	for i := range cards {
		card := &cards[i]
		roster[card.Prayer.ID] = rosterEntry{prayer: &card.Prayer, card: card, isChild: false}
		for j := range card.Children {
			child := &card.Children[j]
			roster[child.ID] = rosterEntry{prayer: child, card: card, isChild: true}
		}
	}
	return roster
}

// Flatten joins every group assignment against the roster. Assignments
// referencing a congregant that no longer exists are silently omitted.
// The result carries no ordering guarantee; callers sort as needed.
func Flatten(groups []model.AliyaGroup, cards []model.PrayerCard) []FlatAssignment {
	roster := buildRoster(cards)

	var result []FlatAssignment
	for i := range groups {
		group := &groups[i]
		for typeID, prayerID := range group.Assignments {
			entry, ok := roster[prayerID]
			if !ok {
				continue
			}
			result = append(result, FlatAssignment{
				Assignment: Assignment{AliyaGroupID: group.ID, AliyaTypeID: typeID},
				Prayer:     entry.prayer,
				Card:       entry.card,
				IsChild:    entry.isChild,
			})
		}
	}
	return result
}

// ForPrayer scans all groups and returns the assignments bound to one
// congregant.
func ForPrayer(prayerID string, groups []model.AliyaGroup) []Assignment {
	var result []Assignment
	for i := range groups {
		group := &groups[i]
		for typeID, assignedID := range group.Assignments {
			if assignedID == prayerID {
				result = append(result, Assignment{AliyaGroupID: group.ID, AliyaTypeID: typeID})
			}
		}
	}
	return result
}
