package achievements

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var (
	ErrAchievementNotFound = errors.New("achievement not found")
	ErrInvalidAchievement  = errors.New("invalid achievement")
	ErrClaimNotAllowed     = errors.New("claim not allowed")
)

// maxStreakDays bounds streak thresholds so the day count always fits an int.
const maxStreakDays = math.MaxInt32

type ConditionType string

const (
	ConditionStreak ConditionType = "streak"
	ConditionWeight ConditionType = "weight"
)

type Comparator string

const (
	GreaterOrEqual Comparator = ">="
	Greater        Comparator = ">"
	Equal          Comparator = "="
	LessOrEqual    Comparator = "<="
	Less           Comparator = "<"
)

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusComplete   Status = "complete"
	StatusClaimed    Status = "claimed"
)

// Achievement is a declarative progress rule plus its display metadata.
// Progress and Status are derived on every read; the stored progress is only a cache.
type Achievement struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	RewardLabel string `json:"rewardLabel"`
	BadgeRef    string `json:"badgeRef"`
	Claimed     bool   `json:"claimed"`

	ConditionType ConditionType `json:"conditionType"`
	// Comparator is only used by weight conditions.
	Comparator Comparator `json:"comparator"`
	Threshold  float64    `json:"threshold"`
	// TargetExercise is ignored by streak conditions.
	TargetExercise string `json:"targetExercise"`
	TargetUser     string `json:"targetUser"`

	Progress  float64   `json:"progress"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c Comparator) valid() bool {
	switch c {
	case GreaterOrEqual, Greater, Equal, LessOrEqual, Less:
		return true
	}
	return false
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidAchievement, fmt.Sprintf(format, args...))
}

// Validate checks a definition before it is stored.
func (a *Achievement) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return invalid("title is empty")
	}
	if a.TargetUser == "" {
		return invalid("target user is empty")
	}
	if math.IsNaN(a.Threshold) || math.IsInf(a.Threshold, 0) {
		return invalid("threshold is not a finite number")
	}

	switch a.ConditionType {
	case ConditionStreak:
		if a.Threshold < 1 {
			return invalid("streak threshold must be at least 1 day")
		}
		if _, err := a.streakDays(); err != nil {
			return err
		}
	case ConditionWeight:
		if a.TargetExercise == "" {
			return invalid("target exercise is empty")
		}
		if !a.Comparator.valid() {
			return invalid("unknown comparator %q", a.Comparator)
		}
		if a.Threshold < 0 {
			return invalid("weight threshold must not be negative")
		}
	default:
		return invalid("unknown condition type %q", a.ConditionType)
	}

	return nil
}

// streakDays converts the threshold to a whole number of days. Fractional or oversized
// thresholds are rejected rather than truncated.
func (a *Achievement) streakDays() (int, error) {
	if a.Threshold != math.Trunc(a.Threshold) {
		return 0, invalid("streak threshold must be a whole number of days")
	}
	if a.Threshold > maxStreakDays {
		return 0, invalid("streak threshold must not exceed %d days", maxStreakDays)
	}
	return int(a.Threshold), nil
}

// applyDefaults fills the fields a client may leave out.
func (a *Achievement) applyDefaults() {
	if a.Comparator == "" {
		a.Comparator = GreaterOrEqual
	}
}
