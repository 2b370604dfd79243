package bridge

import "github.com/flowsim/evobridge/internal/model"

// signedObjectives reads each objective's aggregated value and applies the
// canonical-minimisation sign convention: minimise readings pass through,
// maximise readings are negated. Interpreting results back in the original
// direction is the caller's responsibility.
func signedObjectives(objectives []model.Objective) []float64 {
	out := make([]float64, len(objectives))
	for i, o := range objectives {
		sign := 1.0
		if o.Direction() == model.Maximise {
			sign = -1.0
		}
		out[i] = sign * o.AggregatedValue()
	}
	return out
}
