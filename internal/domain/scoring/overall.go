package scoring

import (
	"math"

	"github.com/okian/squadcraft/internal/domain/model"
)

// weights over {batting, bowling, fielding, experience}.
type weights [4]float64

var roleWeights = map[model.Role]weights{
	model.RoleBatsman:           {0.50, 0.15, 0.20, 0.15},
	model.RoleBowler:            {0.15, 0.50, 0.20, 0.15},
	model.RoleAllRounder:        {0.35, 0.35, 0.15, 0.15},
	model.RoleBattingAllRounder: {0.45, 0.25, 0.15, 0.15},
	model.RoleBowlingAllRounder: {0.25, 0.45, 0.15, 0.15},
	model.RoleWicketkeeper:      {0.40, 0.10, 0.35, 0.15},
}

// OverallRating is the role-weighted blend of batting, bowling, fielding and
// experience, rounded to one decimal. Roles without a weight vector use the
// unweighted mean.
func OverallRating(p model.Player) float64 {
	core := [4]float64{
		float64(p.Skills.Batting),
		float64(p.Skills.Bowling),
		float64(p.Skills.Fielding),
		float64(p.Experience),
	}
	w, ok := roleWeights[p.PrimaryRole]
	if !ok {
		w = weights{0.25, 0.25, 0.25, 0.25}
	}
	var total float64
	for i := range core {
		total += core[i] * w[i]
	}
	total = math.Max(model.MinRating, math.Min(model.MaxRating, total))
	return round1(total)
}

// roundEpsilon keeps sums of two-decimal weights like 5.45 from rounding down
// because of binary representation.
const roundEpsilon = 1e-9

func round1(v float64) float64 {
	return math.Round(v*10+roundEpsilon) / 10
}
