package model

import "time"

// User represents a registered donor.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Standing
	CreatedAt time.Time
}

// Standing is the ledger view of a user: cumulative donations and the derived tier.
type Standing struct {
	Amount         int64
	Level          string
	LastDonationAt *time.Time
}

// ProfileUpdate carries optional profile changes. Nil fields are left untouched.
type ProfileUpdate struct {
	Username     *string
	Email        *string
	PasswordHash *string
}

// Empty reports whether the update changes nothing.
func (u ProfileUpdate) Empty() bool {
	return u.Username == nil && u.Email == nil && u.PasswordHash == nil
}

// ProfileChange is a raw profile edit as submitted by the user.
type ProfileChange struct {
	Username *string
	Email    *string
	Password *string
}

// LeaderboardEntry is a single row of the top donors table.
type LeaderboardEntry struct {
	Rank           int        `json:"rank"`
	UserID         int64      `json:"user_id"`
	Username       string     `json:"username"`
	Amount         int64      `json:"amount"`
	Level          string     `json:"level"`
	LastDonationAt *time.Time `json:"last_donation_time,omitempty"`
}

// Clone returns a deep copy of the user.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.LastDonationAt != nil {
		t := *u.LastDonationAt
		c.LastDonationAt = &t
	}
	return &c
}
