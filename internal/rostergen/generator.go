package rostergen

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/okian/squadcraft/internal/adapters/repository"
	"github.com/okian/squadcraft/internal/domain/model"
)

// Appearance and injury odds.
const (
	appearanceChance = 0.7
	injuredChance    = 0.04
	recoveringChance = 0.04
	niggleChance     = 0.06
	daysBetween      = 7
)

// roleCycle repeats every eight players so that any roster of eight or more
// has a keeper, specialist bowlers and all-rounders.
var roleCycle = []model.Role{
	model.RoleWicketkeeper,
	model.RoleBatsman,
	model.RoleBowler,
	model.RoleBatsman,
	model.RoleAllRounder,
	model.RoleBowler,
	model.RoleBattingAllRounder,
	model.RoleBowlingAllRounder,
}

var (
	paceStyles = []model.BowlingStyle{model.BowlingFast, model.BowlingMedium}
	spinStyles = []model.BowlingStyle{model.BowlingOffSpin, model.BowlingLegSpin, model.BowlingLeftArmSpin}
)

// Generator produces a reproducible roster.
type Generator struct {
	cfg Config
	rng *rand.Rand
}

// NewGenerator creates a generator. Players and matches default to 16 and 10.
func NewGenerator(cfg Config) *Generator {
	if cfg.Players <= 0 {
		cfg.Players = 16
	}
	if cfg.Matches < 0 {
		cfg.Matches = 0
	}
	if cfg.Season == "" {
		cfg.Season = "2026"
	}
	if cfg.Start.IsZero() {
		cfg.Start = time.Date(2026, 4, 4, 13, 0, 0, 0, time.UTC)
	}
	return &Generator{cfg: cfg, rng: rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x5eed))}
}

// Roster builds players, their snapshots and the season's match records.
func (g *Generator) Roster() repository.RosterDocument {
	doc := repository.RosterDocument{Season: g.cfg.Season}
	for i := range g.cfg.Players {
		doc.Players = append(doc.Players, g.player(i))
	}

	played := make(map[string]int, len(doc.Players))
	doc.Performances = g.Matches(doc.Players, 0, g.cfg.Matches)
	for _, r := range doc.Performances {
		played[r.PlayerID]++
	}
	for _, p := range doc.Players {
		doc.Snapshots = append(doc.Snapshots, model.SeasonSnapshot{
			PlayerID:         p.ID,
			Season:           g.cfg.Season,
			MatchesAvailable: g.cfg.Matches,
			MatchesPlayed:    played[p.ID],
		})
	}
	return doc
}

// Matches generates records for count matches starting at match index from.
// Injured players do not appear.
func (g *Generator) Matches(players []model.Player, from, count int) []model.PerformanceRecord {
	var out []model.PerformanceRecord
	for m := from; m < from+count; m++ {
		matchID := fmt.Sprintf("%s-m%03d", g.cfg.Season, m+1)
		date := g.cfg.Start.AddDate(0, 0, m*daysBetween)
		importance := g.importance()
		for _, p := range players {
			if p.Injury == model.InjuryInjured || g.rng.Float64() >= appearanceChance {
				continue
			}
			out = append(out, g.performance(p, matchID, date, importance))
		}
	}
	return out
}

func (g *Generator) player(i int) model.Player {
	role := roleCycle[i%len(roleCycle)]
	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("squadcraft/%s/%d", g.cfg.Season, i))).String()
	p := model.Player{
		ID:          id,
		Name:        fmt.Sprintf("Player %02d", i+1),
		PrimaryRole: role,
		Experience:  g.between(1, 10),
		Fitness:     g.between(5, 10),
		Injury:      g.injury(),
		Reliability: 0.5 + g.rng.Float64()*0.5,
		BattingHand: model.BattingRight,
		Skills: model.Skills{
			Fielding:         g.between(3, 9),
			PowerHitting:     g.between(2, 9),
			Running:          g.between(3, 9),
			PressureHandling: g.between(3, 9),
		},
	}
	if g.rng.IntN(4) == 0 {
		p.BattingHand = model.BattingLeft
	}
	p.IsRookie = p.Experience <= 2
	p.IsCaptain = i == 1
	p.IsViceCaptain = i == 4

	switch role {
	case model.RoleWicketkeeper:
		p.Skills.Batting, p.Skills.Bowling = g.between(5, 8), g.between(1, 3)
		p.IsWicketkeeper = true
	case model.RoleBatsman:
		p.Skills.Batting, p.Skills.Bowling = g.between(6, 9), g.between(1, 4)
		if i%16 == 1 {
			p.BattingPosition = model.PositionOpener
		}
	case model.RoleBowler:
		p.Skills.Batting, p.Skills.Bowling = g.between(1, 4), g.between(6, 9)
	case model.RoleBattingAllRounder:
		p.Skills.Batting, p.Skills.Bowling = g.between(6, 8), g.between(4, 7)
	case model.RoleBowlingAllRounder:
		p.Skills.Batting, p.Skills.Bowling = g.between(4, 7), g.between(6, 8)
	default:
		p.Skills.Batting, p.Skills.Bowling = g.between(5, 8), g.between(5, 8)
	}
	if p.Skills.Bowling >= 5 {
		if g.rng.IntN(2) == 0 {
			p.BowlingStyle = paceStyles[g.rng.IntN(len(paceStyles))]
		} else {
			p.BowlingStyle = spinStyles[g.rng.IntN(len(spinStyles))]
		}
	}
	return p
}

// performance draws counters scaled by the player's skills.
func (g *Generator) performance(p model.Player, matchID string, date time.Time, importance model.ImportanceTier) model.PerformanceRecord {
	r := model.PerformanceRecord{
		PlayerID:   p.ID,
		MatchID:    matchID,
		MatchDate:  date,
		Importance: importance,
		Batted:     true,
	}

	balls := g.between(1, 6+p.Skills.Batting*5)
	r.BallsFaced = balls
	r.Runs = int(float64(balls) * (0.6 + 0.08*float64(p.Skills.Batting) + g.rng.Float64()*0.4))
	r.Fours = r.Runs / g.between(8, 14)
	r.Sixes = r.Runs / g.between(20, 40)
	r.NotOut = g.rng.IntN(5) == 0

	if p.Skills.Bowling >= 5 {
		r.Bowled = true
		overs := g.between(1, 4)
		extraBalls := g.between(0, 5)
		r.Overs = float64(overs) + float64(extraBalls)/10
		legal := overs*6 + extraBalls
		r.RunsConceded = int(float64(legal) * (1.9 - 0.1*float64(p.Skills.Bowling) + g.rng.Float64()*0.6))
		r.Wickets = g.between(0, 1+p.Skills.Bowling/3)
		r.Wides = g.between(0, 3)
		r.NoBalls = g.between(0, 1)
		if r.RunsConceded < 8 && overs >= 1 {
			r.Maidens = 1
		}
	}

	r.Catches = g.between(0, 1+p.Skills.Fielding/4)
	if g.rng.IntN(10) == 0 {
		r.RunOuts = 1
	}
	if p.IsKeeper() {
		r.Stumpings = g.between(0, 1)
	}
	if g.rng.IntN(12) == 0 {
		r.DroppedCatches = 1
	}
	r.PlayerOfMatch = g.rng.IntN(15) == 0
	return r
}

func (g *Generator) importance() model.ImportanceTier {
	switch n := g.rng.IntN(10); {
	case n == 0:
		return model.ImportanceMustWin
	case n < 3:
		return model.ImportanceImportant
	case n < 9:
		return model.ImportanceRegular
	default:
		return model.ImportanceLowStakes
	}
}

func (g *Generator) injury() model.InjuryStatus {
	switch x := g.rng.Float64(); {
	case x < injuredChance:
		return model.InjuryInjured
	case x < injuredChance+recoveringChance:
		return model.InjuryRecovering
	case x < injuredChance+recoveringChance+niggleChance:
		return model.InjuryMinorNiggle
	default:
		return model.InjuryFit
	}
}

// between returns a uniform integer in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.IntN(hi-lo+1)
}
