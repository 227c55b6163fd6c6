package models

import (
	"time"

	"github.com/dmitrijs2005/vitalkeeper/internal/credential"
)

// Sex drives the length of the optimization cycle.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// User is a locally enrolled account.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Sex       Sex       `json:"sex"`
	StartDate time.Time `json:"startDate"`
	CreatedAt time.Time `json:"createdAt"`

	credential.Credential
}

// Profile carries the onboarding answers collected alongside the password.
type Profile struct {
	Name     string
	Age      int
	Sex      Sex
	Baseline HealthBaseline
}
