package model

import "testing"

func TestAliyaGroupSetAssignmentCopyOnWrite(t *testing.T) {
	g := AliyaGroup{
		ID:          "g1",
		Assignments: map[string]string{"kohen": "p1"},
	}

	next := g.SetAssignment("levi", "p2")
	if next.Assignments["levi"] != "p2" || next.Assignments["kohen"] != "p1" {
		t.Errorf("assignments = %v", next.Assignments)
	}
	if _, ok := g.Assignments["levi"]; ok {
		t.Error("receiver was mutated")
	}

	replaced := next.SetAssignment("kohen", "p3")
	if replaced.Assignments["kohen"] != "p3" {
		t.Errorf("kohen = %q, want p3", replaced.Assignments["kohen"])
	}
	if next.Assignments["kohen"] != "p1" {
		t.Error("receiver was mutated on replace")
	}
}

func TestAliyaGroupRemoveAssignmentIdempotent(t *testing.T) {
	g := AliyaGroup{
		Assignments: map[string]string{"kohen": "p1", "levi": "p2"},
	}

	once := g.RemoveAssignment("levi")
	if _, ok := once.Assignments["levi"]; ok {
		t.Error("levi still assigned after remove")
	}
	if g.Assignments["levi"] != "p2" {
		t.Error("receiver was mutated")
	}

	twice := once.RemoveAssignment("levi")
	if len(twice.Assignments) != len(once.Assignments) {
		t.Errorf("second remove changed assignments: %v", twice.Assignments)
	}
}

func TestAliyaGroupClearAssignments(t *testing.T) {
	g := AliyaGroup{
		Assignments: map[string]string{"kohen": "p1", "levi": "p2"},
	}

	cleared := g.ClearAssignments()
	if len(cleared.Assignments) != 0 {
		t.Errorf("assignments = %v, want empty", cleared.Assignments)
	}
	if len(g.Assignments) != 2 {
		t.Error("receiver was mutated")
	}
}

func TestAliyaGroupUpdateAssignmentsOrderIndependent(t *testing.T) {
	g := AliyaGroup{
		Assignments: map[string]string{"kohen": "p1", "levi": "p2", "shlishi": "p3"},
	}

	// shlishi appears in both sets: the upsert must win.
	next := g.UpdateAssignments(
		[]string{"levi", "shlishi"},
		map[string]string{"shlishi": "p4", "maftir": "p5"},
	)

	want := map[string]string{"kohen": "p1", "shlishi": "p4", "maftir": "p5"}
	if len(next.Assignments) != len(want) {
		t.Fatalf("assignments = %v, want %v", next.Assignments, want)
	}
	for typeID, prayerID := range want {
		if next.Assignments[typeID] != prayerID {
			t.Errorf("%s = %q, want %q", typeID, next.Assignments[typeID], prayerID)
		}
	}
	if g.Assignments["shlishi"] != "p3" {
		t.Error("receiver was mutated")
	}
}
