package model

import (
	"errors"
	"fmt"
)

// Validate checks one player record. Out-of-range ratings, unknown roles and
// unknown injury statuses are input errors.
func Validate(p Player) error {
	if p.ID == "" {
		return &InputError{Field: "id", Reason: "must not be empty"}
	}
	if !p.PrimaryRole.Valid() {
		return &InputError{PlayerID: p.ID, Field: "primary_role", Reason: fmt.Sprintf("unknown role %q", p.PrimaryRole)}
	}
	if !p.Injury.Valid() {
		return &InputError{PlayerID: p.ID, Field: "injury", Reason: fmt.Sprintf("unknown status %q", p.Injury)}
	}
	ratings := []struct {
		field string
		value int
	}{
		{"skills.batting", p.Skills.Batting},
		{"skills.bowling", p.Skills.Bowling},
		{"skills.fielding", p.Skills.Fielding},
		{"skills.power_hitting", p.Skills.PowerHitting},
		{"skills.running", p.Skills.Running},
		{"skills.pressure_handling", p.Skills.PressureHandling},
		{"experience", p.Experience},
		{"fitness", p.Fitness},
	}
	for _, r := range ratings {
		if r.value < MinRating || r.value > MaxRating {
			return &InputError{PlayerID: p.ID, Field: r.field, Reason: fmt.Sprintf("%d outside [%d,%d]", r.value, MinRating, MaxRating)}
		}
	}
	return nil
}

// ValidatePool checks every candidate and rejects duplicate ids. All problems
// are reported together.
func ValidatePool(pool []Candidate) error {
	var errs []error
	seen := make(map[string]struct{}, len(pool))
	for _, c := range pool {
		if err := Validate(c.Player); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := seen[c.Player.ID]; dup {
			errs = append(errs, &InputError{PlayerID: c.Player.ID, Field: "id", Reason: "duplicate in pool"})
			continue
		}
		seen[c.Player.ID] = struct{}{}
		if c.CaptainChoiceRank < 0 || c.CaptainChoiceRank > 3 {
			errs = append(errs, &InputError{PlayerID: c.Player.ID, Field: "captain_choice_rank", Reason: "must be 0..3"})
		}
		if c.Snapshot.MatchesAvailable < 0 || c.Snapshot.MatchesPlayed < 0 {
			errs = append(errs, &InputError{PlayerID: c.Player.ID, Field: "snapshot", Reason: "negative match counts"})
		}
	}
	return errors.Join(errs...)
}
