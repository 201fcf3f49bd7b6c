// internal/game/validate.go
//
// Input validation for roster names and throw values. Failures come back
// as plain errors; nothing here is ever clamped or silently corrected.

package game

import (
	"errors"
	"fmt"
	"strings"
)

// ValidatePlayerName checks a proposed player name against the roster.
// Rules: nonempty after trimming, at most 50 chars, case-insensitively
// unique among current players.
func ValidatePlayerName(name string, roster []Player) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("player name must not be empty")
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("player name must be at most %d chars", MaxNameLength)
	}
	for i := range roster {
		if strings.EqualFold(roster[i].Name, name) {
			return errors.New("player name already taken")
		}
	}
	return nil
}

// ValidateTeamName checks a proposed team name against existing teams.
// Same rules as player names.
func ValidateTeamName(name string, teams []Team) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("team name must not be empty")
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("team name must be at most %d chars", MaxNameLength)
	}
	for i := range teams {
		if strings.EqualFold(teams[i].Name, name) {
			return errors.New("team name already taken")
		}
	}
	return nil
}

// ValidateScore checks a throw value against the declared scoring mode.
// Single-pin throws score the felled pin's number, 0–12 (0 is a miss).
// Multi-pin throws score the felled pin count, 2–12; a multi-pin result
// of 0 or 1 is impossible and must be entered as a single-pin value.
func ValidateScore(value int, singlePin bool) error {
	if singlePin {
		if value < SinglePinMin || value > SinglePinMax {
			return fmt.Errorf("single-pin score must be %d–%d", SinglePinMin, SinglePinMax)
		}
		return nil
	}
	if value < MultiPinMin || value > MultiPinMax {
		return fmt.Errorf("multi-pin score must be %d–%d", MultiPinMin, MultiPinMax)
	}
	return nil
}
