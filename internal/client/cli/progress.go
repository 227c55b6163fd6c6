package cli

import (
	"context"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/progress"
)

// Progress prints the dashboard numbers.
func (a *App) Progress(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	sum, err := a.checkIns.Summary(ctx, a.session)
	if err != nil {
		return a.fail(err)
	}

	a.printf("Day %d of %d (%.0f%%), %s to the optimized window\n",
		sum.DayInProgram, sum.CycleLength, sum.ProgressPercentage, plural(sum.DaysRemaining, "day"))
	a.printf("Phase:           %s\n", sum.Phase.Name)
	a.printf("Current streak:  %s\n", plural(sum.CurrentStreak, "day"))
	a.printf("Longest streak:  %s\n", plural(sum.LongestStreak, "day"))
	a.printf("This week:       %d%%\n", sum.WeeklyCompletionRate)
	a.printf("Last week:       %d%%\n", sum.LastWeekCompletionRate)
	a.printf("Total check-ins: %d\n", sum.TotalCheckIns)
	return nil
}

// Timeline lists the phases of the cycle and marks the current one.
func (a *App) Timeline(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	user, err := a.auth.CurrentUser(ctx, a.session)
	if err != nil {
		return a.fail(err)
	}
	sum, err := a.checkIns.Summary(ctx, a.session)
	if err != nil {
		return a.fail(err)
	}

	for _, p := range progress.Phases(user.Sex) {
		marker := " "
		if p.Name == sum.Phase.Name {
			marker = "*"
		}
		if p.End > sum.CycleLength {
			a.printf("%s day %d+     %-22s %s\n", marker, p.Start, p.Name, p.Description)
			continue
		}
		a.printf("%s days %d-%d  %-22s %s\n", marker, p.Start, p.End, p.Name, p.Description)
	}
	a.printf("You are on day %d.\n", sum.DayInProgram)
	return nil
}

// Milestones lists achieved streak milestones, oldest first.
func (a *App) Milestones(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	list, err := a.checkIns.Milestones(ctx, a.session)
	if err != nil {
		return a.fail(err)
	}
	if len(list) == 0 {
		a.printf("No milestones yet. Next one at a %d-day streak.\n", progress.StreakMilestones[0])
		return nil
	}
	for _, m := range list {
		a.printf("%s  %d-day streak\n", m.AchievedAt.Local().Format("2006-01-02"), m.Streak)
	}
	return nil
}
