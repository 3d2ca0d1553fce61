package match

import "github.com/resumi/job-discovery/internal/taxonomy"

const (
	stepUpBonus      = 0.2
	downgradePenalty = -0.3
)

// seniorityAdjustment rewards a one-band step up, penalizes any downgrade,
// and treats lateral moves and multi-band jumps as neutral. The final score
// clamp keeps the result inside [0,1].
func seniorityAdjustment(have, target taxonomy.Seniority) float64 {
	diff := int(target) - int(have)
	switch {
	case diff == 1:
		return stepUpBonus
	case diff < 0:
		return downgradePenalty
	default: // lateral, or a jump of two bands or more
		return 0
	}
}
