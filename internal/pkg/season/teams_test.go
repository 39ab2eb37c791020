package season

import "testing"

func TestParticipantID(t *testing.T) {
	tests := []struct {
		label string
		want  int
		ok    bool
	}{
		{"Pittsburgh", 1519, true},
		{"PITTSBURGH", 1519, true},
		{"  Tampa Bay ", 1544, true},
		{"N.Y. Jets", 1523, true},
		{"L.A. Chargers", 75380, true},
		// relocated franchise: both labels resolve to the same id
		{"Oakland", 1533, true},
		{"Las Vegas", 1533, true},
		{"London", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParticipantID(tt.label)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParticipantID(%q) = %d, %v, want %d, %v", tt.label, got, ok, tt.want, tt.ok)
		}
	}
}

func TestTeamName(t *testing.T) {
	name, ok := TeamName(1533)
	if !ok || name != "Las Vegas" {
		t.Errorf("TeamName(1533) = %q, %v, want Las Vegas", name, ok)
	}
	if _, ok := TeamName(42); ok {
		t.Error("TeamName(42) should not resolve")
	}
}

func TestShortCodeForLabel(t *testing.T) {
	tests := []struct {
		label string
		want  string
		ok    bool
	}{
		{"Green Bay", "GB", true},
		{"N.Y. Giants", "NYG", true},
		{"Las Vegas", "LV", true},
		// historical labels keep historical codes
		{"Oakland", "OAK", true},
		{"St. Louis", "STL", true},
		{"London", "", false},
	}
	for _, tt := range tests {
		got, ok := ShortCodeForLabel(tt.label)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ShortCodeForLabel(%q) = %q, %v, want %q, %v", tt.label, got, ok, tt.want, tt.ok)
		}
	}
}

func TestBuildTeamMapsRejectsConflicts(t *testing.T) {
	bad := []participant{
		{partid: 1, name: "Springfield"},
		{partid: 2, name: "Shelbyville", aliases: []string{"Springfield"}},
	}
	if _, _, err := buildTeamMaps(bad); err == nil {
		t.Error("conflicting alias should be rejected at load time")
	}

	dup := []participant{
		{partid: 1, name: "Springfield"},
		{partid: 1, name: "Shelbyville"},
	}
	if _, _, err := buildTeamMaps(dup); err == nil {
		t.Error("duplicate partid should be rejected at load time")
	}
}
