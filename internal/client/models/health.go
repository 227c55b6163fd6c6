package models

import (
	"time"

	"github.com/dmitrijs2005/vitalkeeper/internal/vault"
)

// HealthData is one sealed baseline row. Rows are append-only; the most
// recent one per user is current.
type HealthData struct {
	ID        int64          `json:"id"`
	UserID    string         `json:"userId"`
	Envelope  vault.Envelope `json:"encryptedData"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
