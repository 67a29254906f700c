package dto

import "time"

// ProfileResponse exposes the user and their standing.
type ProfileResponse struct {
	ID             int64      `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	Amount         int64      `json:"amount"`
	Level          string     `json:"philanthrop_level"`
	LastDonationAt *time.Time `json:"last_donation_time"`
}

// UpdateProfileRequest carries optional profile changes.
type UpdateProfileRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}
