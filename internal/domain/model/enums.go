package model

import "strings"

// Role is a player's primary role in the squad.
type Role string

// Recognized roles.
const (
	RoleBatsman           Role = "batsman"
	RoleBowler            Role = "bowler"
	RoleAllRounder        Role = "all-rounder"
	RoleBattingAllRounder Role = "batting-all-rounder"
	RoleBowlingAllRounder Role = "bowling-all-rounder"
	RoleWicketkeeper      Role = "wicketkeeper"
	RoleOther             Role = "other"
)

// Valid reports whether r is one of the recognized roles.
func (r Role) Valid() bool {
	switch r {
	case RoleBatsman, RoleBowler, RoleAllRounder, RoleBattingAllRounder,
		RoleBowlingAllRounder, RoleWicketkeeper, RoleOther:
		return true
	}
	return false
}

// IsAllRounder covers the balanced and both leaning all-rounder variants.
func (r Role) IsAllRounder() bool {
	return r == RoleAllRounder || r == RoleBattingAllRounder || r == RoleBowlingAllRounder
}

// InjuryStatus is a player's current availability.
type InjuryStatus string

const (
	InjuryFit         InjuryStatus = "fit"
	InjuryMinorNiggle InjuryStatus = "minor-niggle"
	InjuryRecovering  InjuryStatus = "recovering"
	InjuryInjured     InjuryStatus = "injured"
)

// Valid reports whether s is a known status. Empty means fit.
func (s InjuryStatus) Valid() bool {
	switch s {
	case "", InjuryFit, InjuryMinorNiggle, InjuryRecovering, InjuryInjured:
		return true
	}
	return false
}

// Form is the categorical summary of recent performances.
type Form string

const (
	FormExcellent Form = "EXCELLENT"
	FormGood      Form = "GOOD"
	FormAverage   Form = "AVERAGE"
	FormPoor      Form = "POOR"
	FormUnknown   Form = ""
)

// ParseForm normalizes a form label; unrecognized labels map to FormUnknown.
func ParseForm(s string) Form {
	switch f := Form(strings.ToUpper(strings.TrimSpace(s))); f {
	case FormExcellent, FormGood, FormAverage, FormPoor:
		return f
	}
	return FormUnknown
}

// ImportanceTier ranks how much a fixture matters.
type ImportanceTier string

const (
	ImportanceMustWin   ImportanceTier = "must-win"
	ImportanceImportant ImportanceTier = "important"
	ImportanceRegular   ImportanceTier = "regular"
	ImportanceLowStakes ImportanceTier = "low-stakes"
)

// Multiplier returns the performance-score multiplier for the tier.
// Unknown and empty tiers count as regular.
func (t ImportanceTier) Multiplier() float64 {
	switch t {
	case ImportanceMustWin:
		return 1.5
	case ImportanceImportant:
		return 1.25
	case ImportanceLowStakes:
		return 0.75
	default:
		return 1.0
	}
}

// HighStakes is true for must-win and important fixtures.
func (t ImportanceTier) HighStakes() bool {
	return t == ImportanceMustWin || t == ImportanceImportant
}

// PitchType describes what the surface is expected to favour.
type PitchType string

const (
	PitchSpinFriendly    PitchType = "spin-friendly"
	PitchPaceFriendly    PitchType = "pace-friendly"
	PitchBattingFriendly PitchType = "batting-friendly"
	PitchBalanced        PitchType = "balanced"
)

// BowlingStyle is the bowler's delivery type. Empty means the player does not bowl.
type BowlingStyle string

const (
	BowlingFast        BowlingStyle = "fast"
	BowlingMedium      BowlingStyle = "medium"
	BowlingOffSpin     BowlingStyle = "off-spin"
	BowlingLegSpin     BowlingStyle = "leg-spin"
	BowlingLeftArmSpin BowlingStyle = "left-arm-spin"
)

// IsPace reports a seam or pace style.
func (b BowlingStyle) IsPace() bool { return b == BowlingFast || b == BowlingMedium }

// IsSpin reports a spin style.
func (b BowlingStyle) IsSpin() bool {
	return b == BowlingOffSpin || b == BowlingLegSpin || b == BowlingLeftArmSpin
}

// BattingHand is the batting side.
type BattingHand string

const (
	BattingRight BattingHand = "right"
	BattingLeft  BattingHand = "left"
)

// BattingPosition is the batting-order category, ordered top to bottom.
type BattingPosition string

const (
	PositionOpener   BattingPosition = "opener"
	PositionTopOrder BattingPosition = "top-order"
	PositionMiddle   BattingPosition = "middle-order"
	PositionLower    BattingPosition = "lower-order"
	PositionFinisher BattingPosition = "finisher"
)

// Rank orders categories for the batting lineup. Unknown categories sort with middle order.
func (p BattingPosition) Rank() int {
	switch p {
	case PositionOpener:
		return 0
	case PositionTopOrder:
		return 1
	case PositionLower:
		return 3
	case PositionFinisher:
		return 4
	default:
		return 2
	}
}

// Mode is the selection objective.
type Mode string

const (
	ModeWinFocused         Mode = "WIN_FOCUSED"
	ModeOpportunityFocused Mode = "OPPORTUNITY_FOCUSED"
	ModeBalanced           Mode = "BALANCED"
)

// ParseMode normalizes a mode name. Empty selects BALANCED.
func ParseMode(s string) (Mode, bool) {
	switch m := Mode(strings.ToUpper(strings.TrimSpace(s))); m {
	case ModeWinFocused, ModeOpportunityFocused, ModeBalanced:
		return m, true
	case "":
		return ModeBalanced, true
	}
	return "", false
}

// Discipline is a rated skill area.
type Discipline string

const (
	DisciplineBatting  Discipline = "batting"
	DisciplineBowling  Discipline = "bowling"
	DisciplineFielding Discipline = "fielding"
)

// Disciplines lists the rated disciplines in reporting order.
var Disciplines = []Discipline{DisciplineBatting, DisciplineBowling, DisciplineFielding}
