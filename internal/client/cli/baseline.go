package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/models"
)

// askBaseline runs the health questionnaire.
func (a *App) askBaseline() (models.HealthBaseline, error) {
	exercise, err := GetChoice(a.reader, "How often do you exercise per week?", models.ExerciseFrequencies(), false, a.out)
	if err != nil {
		return models.HealthBaseline{}, err
	}
	sleep, err := GetInt(a.reader, "Average hours of sleep", 0, 24, a.out)
	if err != nil {
		return models.HealthBaseline{}, err
	}

	b := models.NewHealthBaseline(exercise, sleep)
	if b.Caffeine, err = GetChoice(a.reader, "Caffeine intake", models.CaffeineLevels(), true, a.out); err != nil {
		return models.HealthBaseline{}, err
	}
	if b.Alcohol, err = GetChoice(a.reader, "Alcohol consumption", models.AlcoholLevels(), true, a.out); err != nil {
		return models.HealthBaseline{}, err
	}
	if b.Smoking, err = GetChoice(a.reader, "Do you smoke?", []string{"yes", "no"}, true, a.out); err != nil {
		return models.HealthBaseline{}, err
	}
	if b.CurrentSupplements, err = GetList(a.reader, "Current supplements", a.out); err != nil {
		return models.HealthBaseline{}, err
	}
	return b, nil
}

// Baseline decrypts and prints the latest health baseline.
func (a *App) Baseline(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	b, err := a.health.Baseline(ctx, a.session)
	if err != nil {
		return a.fail(err)
	}

	a.printf("Exercise:    %s per week\n", b.ExerciseFrequency)
	a.printf("Sleep:       %d hours\n", b.SleepHours)
	a.printf("Caffeine:    %s\n", orDash(b.Caffeine))
	a.printf("Alcohol:     %s\n", orDash(b.Alcohol))
	a.printf("Smoking:     %s\n", orDash(b.Smoking))
	a.printf("Supplements: %s\n", orDash(strings.Join(b.CurrentSupplements, ", ")))
	return nil
}

// UpdateBaseline asks the questionnaire again and stores the answers as the
// new baseline.
func (a *App) UpdateBaseline(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	b, err := a.askBaseline()
	if err != nil {
		return err
	}
	if err := a.health.UpdateBaseline(ctx, a.session, b); err != nil {
		return a.fail(err)
	}
	a.println("Baseline updated")
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
