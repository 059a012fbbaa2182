package achievements

import (
	"errors"
	"fmt"

	"github.com/2beens/liftlog/internal/workouts"
)

// EvaluateProgress computes the completion percentage of a over the entries snapshot.
// It is pure: the same snapshot always gives the same result.
//
// Weight progress for the <= and < comparators is not clamped and goes negative once
// the total exceeds twice the threshold. A zero threshold never divides: the comparison
// alone decides between 100 and 0.
func EvaluateProgress(entries []workouts.Entry, a Achievement) (float64, error) {
	switch a.ConditionType {
	case ConditionStreak:
		targetDays, err := a.streakDays()
		if err != nil {
			return 0, err
		}
		progress, err := workouts.LongestStreak(entries, a.TargetUser, targetDays)
		if errors.Is(err, workouts.ErrInvalidTarget) {
			return 0, fmt.Errorf("%w: %w", ErrInvalidAchievement, err)
		}
		return progress, err
	case ConditionWeight:
		if err := workouts.ValidateEntries(entries); err != nil {
			return 0, err
		}
		return weightProgress(totalFor(entries, a.TargetUser, a.TargetExercise), a.Threshold, a.Comparator)
	default:
		return 0, invalid("unknown condition type %q", a.ConditionType)
	}
}

func totalFor(entries []workouts.Entry, user, exercise string) float64 {
	var total float64
	for _, e := range entries {
		if e.User == user && e.Exercise == exercise {
			total += e.Value
		}
	}
	return total
}

func weightProgress(total, threshold float64, comparator Comparator) (float64, error) {
	var satisfied bool
	switch comparator {
	case GreaterOrEqual:
		satisfied = total >= threshold
	case Greater:
		satisfied = total > threshold
	case Equal:
		if total == threshold {
			return 100, nil
		}
		return 0, nil
	case LessOrEqual:
		satisfied = total <= threshold
	case Less:
		satisfied = total < threshold
	default:
		return 0, invalid("unknown comparator %q", comparator)
	}

	if satisfied {
		return 100, nil
	}
	if threshold == 0 {
		return 0, nil
	}

	if comparator == GreaterOrEqual || comparator == Greater {
		return total / threshold * 100, nil
	}
	return (1 - (total-threshold)/threshold) * 100, nil
}

func StatusOf(a Achievement, progress float64) Status {
	switch {
	case a.Claimed:
		return StatusClaimed
	case progress >= 100:
		return StatusComplete
	default:
		return StatusInProgress
	}
}

// Evaluate sets the derived Progress and Status of a.
func Evaluate(entries []workouts.Entry, a *Achievement) error {
	progress, err := EvaluateProgress(entries, *a)
	if err != nil {
		return err
	}
	a.Progress = progress
	a.Status = StatusOf(*a, progress)
	return nil
}

// Claim moves a complete, unclaimed achievement to claimed. It never un-claims.
func Claim(a *Achievement, progress float64) error {
	if a.Claimed {
		return fmt.Errorf("%w: already claimed", ErrClaimNotAllowed)
	}
	if progress < 100 {
		return fmt.Errorf("%w: progress %.2f is below 100", ErrClaimNotAllowed, progress)
	}
	a.Claimed = true
	a.Progress = progress
	a.Status = StatusClaimed
	return nil
}
