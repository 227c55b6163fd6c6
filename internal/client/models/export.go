package models

import "time"

// Export is the portable dump of everything stored for one user. Health data
// stays sealed.
type Export struct {
	User        *User        `json:"user"`
	HealthData  []HealthData `json:"healthData"`
	CheckIns    []CheckIn    `json:"checkIns"`
	Milestones  []Milestone  `json:"milestones"`
	Partnership *Partnership `json:"partnership"`
	ExportedAt  time.Time    `json:"exportedAt"`
}
