package game

import (
	"strings"
	"testing"
)

func TestValidatePlayerName(t *testing.T) {
	roster := []Player{{Name: "Alice"}, {Name: "Bob"}}
	cases := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"fresh name", "Carol", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"duplicate", "Alice", true},
		{"duplicate different case", "aLiCe", true},
		{"max length", strings.Repeat("x", MaxNameLength), false},
		{"too long", strings.Repeat("x", MaxNameLength+1), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePlayerName(tc.input, roster)
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidatePlayerName(%q) err = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
		})
	}
}

func TestValidateTeamName(t *testing.T) {
	teams := []Team{{Name: "Red"}}
	if err := ValidateTeamName("red", teams); err == nil {
		t.Error("case-insensitive duplicate team name accepted")
	}
	if err := ValidateTeamName("Blue", teams); err != nil {
		t.Errorf("fresh team name rejected: %v", err)
	}
}

func TestValidateScore(t *testing.T) {
	cases := []struct {
		value     int
		singlePin bool
		wantErr   bool
	}{
		{0, true, false},  // single-pin miss
		{1, true, false},
		{12, true, false},
		{13, true, true},
		{-1, true, true},
		{2, false, false},
		{12, false, false},
		{0, false, true}, // multi-pin cannot be 0
		{1, false, true}, // or 1
		{13, false, true},
	}
	for _, tc := range cases {
		err := ValidateScore(tc.value, tc.singlePin)
		if (err != nil) != tc.wantErr {
			t.Errorf("ValidateScore(%d, singlePin=%v) err = %v, wantErr %v",
				tc.value, tc.singlePin, err, tc.wantErr)
		}
	}
}
