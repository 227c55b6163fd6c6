package models

import (
	"encoding/json"
	"time"
)

// Analytics event names.
const (
	EventSignupCompleted   = "signup_completed"
	EventLogin             = "login"
	EventCheckInSaved      = "checkin_saved"
	EventMilestoneAchieved = "milestone_achieved"
	EventPartnerPaired     = "partner_paired"
	EventBaselineUpdated   = "baseline_updated"
	EventDataExported      = "data_exported"
)

// AnalyticsEvent is a local usage event.
type AnalyticsEvent struct {
	ID        int64           `json:"id"`
	UserID    string          `json:"userId"`
	Event     string          `json:"event"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}
