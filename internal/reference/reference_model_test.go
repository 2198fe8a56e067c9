package reference

import "testing"

func TestValidRelationshipType(t *testing.T) {
	for _, rt := range RelationshipTypes() {
		if !ValidRelationshipType(rt) {
			t.Errorf("ValidRelationshipType(%q) = false, want true", rt)
		}
	}

	invalid := []string{"", "teammate", "Teammate ", "Sponsor", "head coach"}
	for _, rt := range invalid {
		if ValidRelationshipType(rt) {
			t.Errorf("ValidRelationshipType(%q) = true, want false", rt)
		}
	}
}

func TestStatusClassification(t *testing.T) {
	tests := []struct {
		status   string
		active   bool
		terminal bool
	}{
		{StatusPending, true, false},
		{StatusAccepted, true, false},
		{StatusDeclined, false, true},
		{StatusWithdrawn, false, true},
		{StatusRemoved, false, true},
		{"unknown", false, false},
	}

	for _, tt := range tests {
		if got := IsActiveStatus(tt.status); got != tt.active {
			t.Errorf("IsActiveStatus(%q) = %v, want %v", tt.status, got, tt.active)
		}
		if got := IsTerminalStatus(tt.status); got != tt.terminal {
			t.Errorf("IsTerminalStatus(%q) = %v, want %v", tt.status, got, tt.terminal)
		}
	}
}

func TestRelationshipTypesReturnsCopy(t *testing.T) {
	types := RelationshipTypes()
	if len(types) == 0 {
		t.Fatal("RelationshipTypes() returned an empty set")
	}
	types[0] = "Mutated"
	if !ValidRelationshipType(RelationshipTypes()[0]) {
		t.Error("mutating the returned slice must not affect the allow-list")
	}
}
