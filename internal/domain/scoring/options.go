package scoring

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithOpportunityWeight sets W, the weight of the (1 - ratio) term.
func WithOpportunityWeight(w float64) Option {
	return func(s *Scorer) {
		if w > 0 {
			s.opportunityWeight = w
		}
	}
}

// WithPitchBonus sets the bonus for a bowling style that suits the pitch.
func WithPitchBonus(bonus float64) Option {
	return func(s *Scorer) {
		if bonus >= 0 {
			s.pitchBonus = bonus
		}
	}
}

// WithInjuryPenalties overrides the injured / recovering / minor-niggle penalties.
// Penalties are given as positive amounts and subtracted from the score.
func WithInjuryPenalties(injured, recovering, niggle float64) Option {
	return func(s *Scorer) {
		if injured >= 0 && recovering >= 0 && niggle >= 0 {
			s.injuredPenalty = injured
			s.recoveringPenalty = recovering
			s.nigglePenalty = niggle
		}
	}
}

// WithCaptainChoiceBonus sets the bonus awarded to the captain's first choice;
// later ranks receive bonus/rank.
func WithCaptainChoiceBonus(bonus float64) Option {
	return func(s *Scorer) {
		if bonus >= 0 {
			s.captainBonus = bonus
		}
	}
}
