package models

import (
	"fmt"
	"time"
)

// Milestone records an achieved streak.
type Milestone struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"userId"`
	Type       string    `json:"type"`
	Streak     int       `json:"streak"`
	AchievedAt time.Time `json:"achievedAt"`
}

// StreakMilestoneType returns the milestone type name for a streak length.
func StreakMilestoneType(days int) string {
	return fmt.Sprintf("streak_%d", days)
}
