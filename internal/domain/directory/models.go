package directory

import "time"

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Role         string    `json:"role"`
	CareerBandID *string   `json:"careerBandId,omitempty"`
	TeamID       *string   `json:"teamId,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Team struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	LeaderUserID *string   `json:"leaderUserId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Profile is the slim reference record other domains consume.
type Profile struct {
	UserID       string  `json:"userId"`
	CareerBandID *string `json:"careerBandId,omitempty"`
	TeamID       *string `json:"teamId,omitempty"`
	LeaderUserID *string `json:"leaderUserId,omitempty"`
}
