package model

import (
	"time"

	"github.com/shulsoft/gabbai/internal/hebdate"
)

// AliyaGroup is one prayer-service occasion. Assignments is the only place
// an aliya type is bound to a congregant; there is no persisted aliya
// entity, joined views are synthesized on read.
type AliyaGroup struct {
	ID          string            `json:"id"`
	Label       string            `json:"label"`
	HebrewDate  hebdate.Date      `json:"hebrew_date"`
	Assignments map[string]string `json:"assignments"` // aliya type id -> prayer id
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func cloneAssignments(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (g AliyaGroup) withAssignments(assignments map[string]string) AliyaGroup {
	g.Assignments = assignments
	g.UpdatedAt = time.Now().UTC()
	return g
}

// SetAssignment returns a copy of the group with aliyaTypeID bound to
// prayerID. The receiver is unchanged.
func (g AliyaGroup) SetAssignment(aliyaTypeID, prayerID string) AliyaGroup {
	next := cloneAssignments(g.Assignments)
	next[aliyaTypeID] = prayerID
	return g.withAssignments(next)
}

// RemoveAssignment returns a copy of the group with aliyaTypeID unbound.
// Removing a key that is not present is a no-op, not an error.
func (g AliyaGroup) RemoveAssignment(aliyaTypeID string) AliyaGroup {
	next := cloneAssignments(g.Assignments)
	delete(next, aliyaTypeID)
	return g.withAssignments(next)
}

// ClearAssignments returns a copy of the group with no assignments.
func (g AliyaGroup) ClearAssignments() AliyaGroup {
	return g.withAssignments(map[string]string{})
}

// UpdateAssignments returns a copy of the group with the batch applied:
// all deletions first, then all upserts. A key present in both sets ends
// up upserted, making the batch order-independent.
func (g AliyaGroup) UpdateAssignments(deletions []string, upserts map[string]string) AliyaGroup {
	next := cloneAssignments(g.Assignments)
	for _, typeID := range deletions {
		delete(next, typeID)
	}
	for typeID, prayerID := range upserts {
		next[typeID] = prayerID
	}
	return g.withAssignments(next)
}

// AliyaType is a catalog entry naming a Torah-reading role. DisplayOrder is
// nil when unset; consumers sort missing values last.
type AliyaType struct {
	ID           string  `json:"id"`
	DisplayName  string  `json:"display_name"`
	Weight       float64 `json:"weight"`
	Enabled      bool    `json:"enabled"`
	Description  string  `json:"description,omitempty"`
	DisplayOrder *int    `json:"display_order,omitempty"`
}

// AliyaTypeCategory groups aliya type ids for reporting and columnar display.
type AliyaTypeCategory struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	DisplayOrder *int      `json:"display_order,omitempty"`
	AliyaTypeIDs []string  `json:"aliya_type_ids"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
