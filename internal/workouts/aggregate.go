package workouts

import (
	"math"
	"sort"
	"time"
)

// all calendar-day bucketing is done on UTC dates
const dayLayout = "2006-01-02"

type UserView struct {
	// Current is nil when the user has no entry for the exercise (it is never reported as 0).
	Current        *float64   `json:"current"`
	LastRecordedAt *time.Time `json:"lastRecordedAt"`
	// History is ordered newest-first.
	History []Entry `json:"history"`
}

type ExerciseView struct {
	Exercise string              `json:"exercise"`
	Unit     string              `json:"unit"`
	Users    map[string]UserView `json:"users"`
}

// LatestByExercise builds the editable grid view: for every exercise (in order of first
// appearance) and every participant, the value of the newest entry and the full history.
// With no participants given, the distinct users present in the entries are used.
func LatestByExercise(entries []Entry, participants []string) ([]ExerciseView, error) {
	if err := ValidateEntries(entries); err != nil {
		return nil, err
	}
	if len(participants) == 0 {
		participants = DistinctUsers(entries)
	}

	var exercises []string
	exercise2user2entries := make(map[string]map[string][]Entry)
	for _, e := range entries {
		user2entries, ok := exercise2user2entries[e.Exercise]
		if !ok {
			user2entries = make(map[string][]Entry)
			exercise2user2entries[e.Exercise] = user2entries
			exercises = append(exercises, e.Exercise)
		}
		user2entries[e.User] = append(user2entries[e.User], e)
	}

	views := make([]ExerciseView, 0, len(exercises))
	for _, exercise := range exercises {
		view := ExerciseView{
			Exercise: exercise,
			Unit:     UnitFor(exercise),
			Users:    make(map[string]UserView, len(participants)),
		}
		for _, user := range participants {
			history := newestFirst(exercise2user2entries[exercise][user])
			userView := UserView{History: history}
			if len(history) > 0 {
				current := history[0].Value
				recordedAt := history[0].RecordedAt
				userView.Current = &current
				userView.LastRecordedAt = &recordedAt
			}
			view.Users[user] = userView
		}
		views = append(views, view)
	}

	return views, nil
}

// PairHistory returns the entries of one (exercise, user) pair, newest-first.
func PairHistory(entries []Entry, exercise, user string) []Entry {
	var pair []Entry
	for _, e := range entries {
		if e.Exercise == exercise && e.User == user {
			pair = append(pair, e)
		}
	}
	return newestFirst(pair)
}

// DistinctUsers returns the sorted set of users present in entries.
func DistinctUsers(entries []Entry) []string {
	seen := make(map[string]bool)
	users := make([]string, 0)
	for _, e := range entries {
		if !seen[e.User] {
			seen[e.User] = true
			users = append(users, e.User)
		}
	}
	sort.Strings(users)
	return users
}

// NewestFirst returns a sorted copy; ties on RecordedAt go to the higher ID.
func NewestFirst(entries []Entry) []Entry {
	return newestFirst(entries)
}

func newestFirst(entries []Entry) []Entry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].RecordedAt.Equal(sorted[j].RecordedAt) {
			return sorted[i].RecordedAt.After(sorted[j].RecordedAt)
		}
		return sorted[i].ID > sorted[j].ID
	})
	return sorted
}

type DayPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// DailySeries keeps one point per calendar day (the day's max value), ascending by date.
func DailySeries(history []Entry) ([]DayPoint, error) {
	if err := ValidateEntries(history); err != nil {
		return nil, err
	}

	day2max := make(map[string]float64)
	for _, e := range history {
		day := e.RecordedAt.UTC().Format(dayLayout)
		if current, ok := day2max[day]; !ok || e.Value > current {
			day2max[day] = e.Value
		}
	}

	points := make([]DayPoint, 0, len(day2max))
	for day, value := range day2max {
		points = append(points, DayPoint{Date: day, Value: value})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})

	return points, nil
}

// AlignedSeries puts several daily series on a shared, gapless date axis.
// A nil value means "no data" for that day, which is different from 0.
type AlignedSeries struct {
	Dates  []string              `json:"dates"`
	Series map[string][]*float64 `json:"series"`
}

// AlignSeries spans the axis from the min to the max date across all series.
func AlignSeries(series map[string][]DayPoint) (AlignedSeries, error) {
	aligned := AlignedSeries{
		Dates:  make([]string, 0),
		Series: make(map[string][]*float64, len(series)),
	}

	var first, last time.Time
	name2day2value := make(map[string]map[string]float64, len(series))
	for name, points := range series {
		day2value := make(map[string]float64, len(points))
		for _, p := range points {
			day, err := time.Parse(dayLayout, p.Date)
			if err != nil {
				return AlignedSeries{}, &ValidationError{Index: -1, Field: "date", Reason: err.Error()}
			}
			if first.IsZero() || day.Before(first) {
				first = day
			}
			if last.IsZero() || day.After(last) {
				last = day
			}
			day2value[p.Date] = p.Value
		}
		name2day2value[name] = day2value
	}

	if !first.IsZero() {
		for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
			aligned.Dates = append(aligned.Dates, day.Format(dayLayout))
		}
	}

	for name, day2value := range name2day2value {
		values := make([]*float64, len(aligned.Dates))
		for i, date := range aligned.Dates {
			if v, ok := day2value[date]; ok {
				values[i] = &v
			}
		}
		aligned.Series[name] = values
	}

	return aligned, nil
}

type Stats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	// StdDev is the population standard deviation.
	StdDev float64 `json:"stdDev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Range  float64 `json:"range"`
}

// DescriptiveStats returns zero Stats for an empty input.
func DescriptiveStats(values []float64) (Stats, error) {
	if len(values) == 0 {
		return Stats{}, nil
	}

	var sum float64
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Stats{}, &ValidationError{Index: i, Field: "value", Reason: "not a finite number"}
		}
		sum += v
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	mean := sum / float64(n)

	var median float64
	if n%2 == 0 {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	} else {
		median = sorted[n/2]
	}

	var squaredDiffs float64
	for _, v := range sorted {
		squaredDiffs += (v - mean) * (v - mean)
	}

	return Stats{
		Count:  n,
		Mean:   mean,
		Median: median,
		StdDev: math.Sqrt(squaredDiffs / float64(n)),
		Min:    sorted[0],
		Max:    sorted[n-1],
		Range:  sorted[n-1] - sorted[0],
	}, nil
}

// Values extracts the measured values of entries.
func Values(entries []Entry) []float64 {
	values := make([]float64, 0, len(entries))
	for _, e := range entries {
		values = append(values, e.Value)
	}
	return values
}

// LongestRun returns the longest number of consecutive calendar days on which the user
// logged at least one entry. Several entries on the same day count as that one day.
func LongestRun(entries []Entry, user string) (int, error) {
	if err := ValidateEntries(entries); err != nil {
		return 0, err
	}

	seen := make(map[time.Time]bool)
	var days []time.Time
	for _, e := range entries {
		if e.User != user {
			continue
		}
		y, m, d := e.RecordedAt.UTC().Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})

	longest, run := 0, 0
	for i, day := range days {
		if i > 0 && days[i-1].AddDate(0, 0, 1).Equal(day) {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}

	return longest, nil
}

// LongestStreak normalizes LongestRun against targetDays into 0-100.
func LongestStreak(entries []Entry, user string, targetDays int) (float64, error) {
	if targetDays < 1 {
		return 0, ErrInvalidTarget
	}
	longest, err := LongestRun(entries, user)
	if err != nil {
		return 0, err
	}
	return math.Min(float64(longest)/float64(targetDays), 1) * 100, nil
}
