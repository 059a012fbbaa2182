package achievements

import "fmt"

// DefaultSeed returns the starter achievements of a participant.
func DefaultSeed(user string) []Achievement {
	return []Achievement{
		{
			Title:         "First Lift",
			Description:   fmt.Sprintf("%s completed a first lift!", user),
			RewardLabel:   "Massage",
			BadgeRef:      "/badges/heart.png",
			ConditionType: ConditionStreak,
			Comparator:    GreaterOrEqual,
			// any logged day is a run of 1
			Threshold:  1,
			TargetUser: user,
		},
		{
			Title:          "Leg Press 3x10 150lb Milestone",
			Description:    "Lifted a total of 50 lbs on the leg press!",
			BadgeRef:       "/badges/milestone-50.png",
			ConditionType:  ConditionWeight,
			Comparator:     GreaterOrEqual,
			Threshold:      50,
			TargetExercise: "Leg Press",
			TargetUser:     user,
		},
		{
			Title:          "Leg Press 3x10 175lb Milestone",
			Description:    "Lifted a total of 100 lbs on the leg press!",
			BadgeRef:       "/badges/milestone-100.png",
			ConditionType:  ConditionWeight,
			Comparator:     GreaterOrEqual,
			Threshold:      100,
			TargetExercise: "Leg Press",
			TargetUser:     user,
		},
		{
			Title:         "Streak Milestone",
			Description:   "5 days in a row!",
			BadgeRef:      "/badges/streak-milestone.png",
			ConditionType: ConditionStreak,
			Comparator:    GreaterOrEqual,
			Threshold:     5,
			TargetUser:    user,
		},
	}
}
