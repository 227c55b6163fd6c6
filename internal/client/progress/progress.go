// Package progress computes habit statistics from check-ins: streaks,
// completion rates and the position in the optimization cycle.
package progress

import (
	"math"
	"sort"
	"time"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/models"
	"github.com/dmitrijs2005/vitalkeeper/internal/common"
)

// Cycle lengths in days. Sperm regenerate in about 74 days, eggs mature over
// about 90.
const (
	MaleCycleLength   = 74
	FemaleCycleLength = 90
)

// StreakMilestones are the streak lengths that earn a milestone.
var StreakMilestones = []int{7, 14, 30, 60, 90}

// Phase is a named stretch of the cycle, inclusive on both ends. End is
// math.MaxInt for the open-ended last phase.
type Phase struct {
	Name        string
	Start       int
	End         int
	Description string
}

var malePhases = []Phase{
	{"Foundation Phase", 1, 14, "Building healthy habits"},
	{"Building Phase", 15, 44, "Developing optimal conditions"},
	{"Maturation Phase", 45, 74, "Final optimization"},
	{"Optimized Window", 75, math.MaxInt, "Peak fertility window"},
}

var femalePhases = []Phase{
	{"Egg Development Start", 1, 30, "Early development phase"},
	{"Maturation Window", 31, 60, "Active maturation"},
	{"Final Maturation", 61, 90, "Completing optimization"},
	{"Optimized Window", 91, math.MaxInt, "Peak fertility window"},
}

// CycleLength returns the cycle length for sex.
func CycleLength(sex models.Sex) int {
	if sex == models.SexMale {
		return MaleCycleLength
	}
	return FemaleCycleLength
}

// Phases returns the phases for sex.
func Phases(sex models.Sex) []Phase {
	if sex == models.SexMale {
		return append([]Phase(nil), malePhases...)
	}
	return append([]Phase(nil), femalePhases...)
}

// DayInProgram is the number of started days between start and now, rounded
// up.
func DayInProgram(start, now time.Time) int {
	d := now.Sub(start)
	if d < 0 {
		d = -d
	}
	return int(math.Ceil(d.Hours() / 24))
}

// CurrentPhase returns the phase containing day. Days before the first phase
// map to the first one; days past the cycle map to the last.
func CurrentPhase(sex models.Sex, day int) Phase {
	phases := Phases(sex)
	for _, p := range phases {
		if day >= p.Start && day <= p.End {
			return p
		}
	}
	if day > CycleLength(sex) {
		return phases[len(phases)-1]
	}
	return phases[0]
}

// ProgressPercentage is the share of the cycle completed, capped at 100.
func ProgressPercentage(sex models.Sex, day int) float64 {
	return math.Min(float64(day)/float64(CycleLength(sex))*100, 100)
}

// DaysRemaining is the number of days left until the optimized window.
func DaysRemaining(sex models.Sex, day int) int {
	return max(CycleLength(sex)-day, 0)
}

// CompletionRate is the rounded percentage of habit fields set across
// checkIns. An empty slice yields 0.
func CompletionRate(checkIns []models.CheckIn) int {
	if len(checkIns) == 0 {
		return 0
	}
	total := 0
	for _, c := range checkIns {
		total += c.CompletedFields()
	}
	maxFields := len(checkIns) * models.CheckInFieldCount
	return int(math.Round(float64(total) / float64(maxFields) * 100))
}

// CurrentStreak counts consecutive days with a check-in ending today.
// checkIns may be in any order; dates are compared as calendar days.
func CurrentStreak(checkIns []models.CheckIn, today time.Time) int {
	days := dateSet(checkIns)
	streak := 0
	for d := today.UTC(); ; d = d.AddDate(0, 0, -1) {
		if _, ok := days[common.DateOf(d)]; !ok {
			return streak
		}
		streak++
	}
}

// LongestStreak is the longest run of consecutive calendar days in checkIns.
func LongestStreak(checkIns []models.CheckIn) int {
	dates := sortedDates(checkIns)
	longest, current := 0, 0
	var prev time.Time
	for i, d := range dates {
		if i > 0 && d.Sub(prev) == 24*time.Hour {
			current++
		} else {
			current = 1
		}
		longest = max(longest, current)
		prev = d
	}
	return longest
}

// ReachedMilestone returns the milestone length equal to streak, if any.
func ReachedMilestone(streak int) (int, bool) {
	for _, m := range StreakMilestones {
		if streak == m {
			return m, true
		}
	}
	return 0, false
}

// Summary aggregates the dashboard numbers.
type Summary struct {
	DayInProgram           int
	CycleLength            int
	ProgressPercentage     float64
	DaysRemaining          int
	Phase                  Phase
	CurrentStreak          int
	LongestStreak          int
	WeeklyCompletionRate   int
	LastWeekCompletionRate int
	TotalCheckIns          int
}

// Summarize builds a Summary. recent must be ordered newest first, as
// returned by the check-in history.
func Summarize(user *models.User, recent []models.CheckIn, now time.Time) Summary {
	day := DayInProgram(user.StartDate, now)
	return Summary{
		DayInProgram:           day,
		CycleLength:            CycleLength(user.Sex),
		ProgressPercentage:     ProgressPercentage(user.Sex, day),
		DaysRemaining:          DaysRemaining(user.Sex, day),
		Phase:                  CurrentPhase(user.Sex, day),
		CurrentStreak:          CurrentStreak(recent, now),
		LongestStreak:          LongestStreak(recent),
		WeeklyCompletionRate:   CompletionRate(window(recent, 0, 7)),
		LastWeekCompletionRate: CompletionRate(window(recent, 7, 14)),
		TotalCheckIns:          len(recent),
	}
}

func window(c []models.CheckIn, from, to int) []models.CheckIn {
	if from >= len(c) {
		return nil
	}
	return c[from:min(to, len(c))]
}

func dateSet(checkIns []models.CheckIn) map[string]struct{} {
	days := make(map[string]struct{}, len(checkIns))
	for _, c := range checkIns {
		days[c.Date] = struct{}{}
	}
	return days
}

func sortedDates(checkIns []models.CheckIn) []time.Time {
	dates := make([]time.Time, 0, len(checkIns))
	for d := range dateSet(checkIns) {
		t, err := time.Parse(common.DateLayout, d)
		if err != nil {
			continue
		}
		dates = append(dates, t)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
