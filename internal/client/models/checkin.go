package models

import "time"

// CheckInFieldCount is the number of habit fields scored per check-in.
const CheckInFieldCount = 6

// CheckIn is one day of habit tracking. There is at most one per user and
// date.
type CheckIn struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"userId"`
	Date        string    `json:"date"`
	Supplements bool      `json:"supplements"`
	Sleep       bool      `json:"sleep"`
	Exercise    string    `json:"exercise"`
	Temperature bool      `json:"temperature"`
	Alcohol     bool      `json:"alcohol"`
	Stress      bool      `json:"stress"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CompletedFields counts the habit fields that are set. Exercise counts when
// it is non-empty.
func (c CheckIn) CompletedFields() int {
	n := 0
	for _, ok := range []bool{c.Supplements, c.Sleep, c.Exercise != "", c.Temperature, c.Alcohol, c.Stress} {
		if ok {
			n++
		}
	}
	return n
}
