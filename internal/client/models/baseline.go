// Package models defines the client-side data models of vitalkeeper.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// BaselineVersion is the current schema version of HealthBaseline.
const BaselineVersion = 1

var ErrInvalidBaseline = errors.New("invalid health baseline")

var (
	exerciseFrequencies = []string{"none", "1-2", "3-4", "5+"}
	caffeineLevels      = []string{"", "none", "low", "moderate", "high"}
	alcoholLevels       = []string{"", "none", "occasional", "moderate", "frequent"}
	smokingAnswers      = []string{"", "yes", "no"}
)

// HealthBaseline is the sensitive onboarding questionnaire. It is only ever
// persisted sealed in a vault.Envelope.
type HealthBaseline struct {
	Version            int      `json:"version"`
	ExerciseFrequency  string   `json:"exerciseFrequency"`
	SleepHours         int      `json:"sleepHours"`
	Caffeine           string   `json:"caffeine,omitempty"`
	Alcohol            string   `json:"alcohol,omitempty"`
	Smoking            string   `json:"smoking,omitempty"`
	CurrentSupplements []string `json:"currentSupplements"`
}

// NewHealthBaseline returns a baseline stamped with the current version.
func NewHealthBaseline(exerciseFrequency string, sleepHours int) HealthBaseline {
	return HealthBaseline{
		Version:           BaselineVersion,
		ExerciseFrequency: exerciseFrequency,
		SleepHours:        sleepHours,
	}
}

// Validate implements vault.Record.
func (b HealthBaseline) Validate() error {
	if b.Version != BaselineVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidBaseline, b.Version)
	}
	if !oneOf(b.ExerciseFrequency, exerciseFrequencies) {
		return fmt.Errorf("%w: exercise frequency %q", ErrInvalidBaseline, b.ExerciseFrequency)
	}
	if b.SleepHours < 0 || b.SleepHours > 24 {
		return fmt.Errorf("%w: sleep hours %d", ErrInvalidBaseline, b.SleepHours)
	}
	if !oneOf(b.Caffeine, caffeineLevels) {
		return fmt.Errorf("%w: caffeine %q", ErrInvalidBaseline, b.Caffeine)
	}
	if !oneOf(b.Alcohol, alcoholLevels) {
		return fmt.Errorf("%w: alcohol %q", ErrInvalidBaseline, b.Alcohol)
	}
	if !oneOf(b.Smoking, smokingAnswers) {
		return fmt.Errorf("%w: smoking %q", ErrInvalidBaseline, b.Smoking)
	}
	for _, s := range b.CurrentSupplements {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%w: empty supplement name", ErrInvalidBaseline)
		}
	}
	return nil
}

// ExerciseFrequencies lists accepted ExerciseFrequency values.
func ExerciseFrequencies() []string { return append([]string(nil), exerciseFrequencies...) }

// CaffeineLevels lists accepted non-empty Caffeine values.
func CaffeineLevels() []string { return append([]string(nil), caffeineLevels[1:]...) }

// AlcoholLevels lists accepted non-empty Alcohol values.
func AlcoholLevels() []string { return append([]string(nil), alcoholLevels[1:]...) }

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
