package rating

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/okian/squadcraft/internal/domain/model"
	"github.com/okian/squadcraft/internal/domain/performance"
)

// Form thresholds on the averaged match score.
const (
	excellentFrom = 8.0
	goodFrom      = 6.0
	averageFrom   = 4.0
)

// ClassifyForm labels recent form from the lookback most recent records.
// Each match contributes the better of its batting and bowling scores; a
// match with neither is skipped. It returns FormUnknown and false when no
// match in the window counts.
func ClassifyForm(records []model.PerformanceRecord, lookback int) (model.Form, float64, bool) {
	var scores []float64
	for _, r := range window(records, lookback) {
		bat, bowl := performance.Batting(r), performance.Bowling(r)
		switch {
		case performance.Valid(bat) && performance.Valid(bowl):
			scores = append(scores, math.Max(bat, bowl))
		case performance.Valid(bat):
			scores = append(scores, bat)
		case performance.Valid(bowl):
			scores = append(scores, bowl)
		}
	}
	if len(scores) == 0 {
		return model.FormUnknown, 0, false
	}
	avg := stat.Mean(scores, nil)
	return FormFor(avg), avg, true
}

// FormFor maps an averaged score to a form label.
func FormFor(avg float64) model.Form {
	switch {
	case avg >= excellentFrom:
		return model.FormExcellent
	case avg >= goodFrom:
		return model.FormGood
	case avg >= averageFrom:
		return model.FormAverage
	default:
		return model.FormPoor
	}
}
