package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/models"
	"github.com/dmitrijs2005/vitalkeeper/internal/common"
)

// CheckIn records today's habits. Saving again on the same day replaces the
// earlier answers.
func (a *App) CheckIn(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}

	var in models.CheckIn
	questions := []struct {
		prompt string
		dst    *bool
	}{
		{"Took your supplements?", &in.Supplements},
		{"Slept 7+ hours?", &in.Sleep},
		{"Kept the temperature down (no hot baths, laptop off the lap)?", &in.Temperature},
		{"Avoided alcohol?", &in.Alcohol},
		{"Managed stress?", &in.Stress},
	}
	for _, q := range questions {
		ok, err := GetYesNo(a.reader, q.prompt, a.out)
		if err != nil {
			return err
		}
		*q.dst = ok
	}
	exercise, err := getSimpleText(a.reader, "Exercise today (empty for none)", a.out)
	if err != nil {
		return err
	}
	in.Exercise = exercise

	res, err := a.checkIns.Save(ctx, a.session, in)
	if err != nil {
		return a.fail(err)
	}

	a.printf("Check-in saved for %s: %d/%d habits, streak %s\n",
		res.CheckIn.Date, res.CheckIn.CompletedFields(), models.CheckInFieldCount, plural(res.Streak, "day"))
	if res.Milestone != nil {
		a.printf("Milestone reached: %d-day streak!\n", res.Milestone.Streak)
	}
	return nil
}

// Today shows today's check-in.
func (a *App) Today(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	ci, err := a.checkIns.Today(ctx, a.session)
	if errors.Is(err, common.ErrorNotFound) {
		a.println("No check-in yet today")
		return nil
	}
	if err != nil {
		return a.fail(err)
	}

	a.printf("%s: %d/%d habits\n", ci.Date, ci.CompletedFields(), models.CheckInFieldCount)
	a.printf("  supplements  %s\n", mark(ci.Supplements))
	a.printf("  sleep        %s\n", mark(ci.Sleep))
	a.printf("  exercise     %s\n", orDash(ci.Exercise))
	a.printf("  temperature  %s\n", mark(ci.Temperature))
	a.printf("  no alcohol   %s\n", mark(ci.Alcohol))
	a.printf("  stress       %s\n", mark(ci.Stress))
	return nil
}

// History lists recent check-ins, newest first.
func (a *App) History(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	list, err := a.checkIns.History(ctx, a.session)
	if err != nil {
		return a.fail(err)
	}
	if len(list) == 0 {
		a.println("No check-ins yet")
		return nil
	}
	for _, ci := range list {
		a.printf("%s  %d/%d  %s\n", ci.Date, ci.CompletedFields(), models.CheckInFieldCount, orDash(ci.Exercise))
	}
	return nil
}

func mark(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
