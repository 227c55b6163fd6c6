package models

import "time"

// SharedData lists what a user shares with the paired partner.
type SharedData struct {
	ShareCheckIns bool `json:"shareCheckIns"`
	ShareTimeline bool `json:"shareTimeline"`
	ShareNotes    bool `json:"shareNotes"`
}

// DefaultSharedData is applied to every new partnership.
var DefaultSharedData = SharedData{ShareCheckIns: true, ShareTimeline: true}

// Partnership links a user to a partner. PartnerID is empty while the pairing
// code is still open.
type Partnership struct {
	UserID      string     `json:"userId"`
	PartnerID   string     `json:"partnerId,omitempty"`
	PairingCode string     `json:"pairingCode"`
	SharedData  SharedData `json:"sharedData"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Paired reports whether the partnership has a partner.
func (p Partnership) Paired() bool { return p.PartnerID != "" }
