package dto

// RegisterRequest describes the registration payload.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest describes username/password payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// MessageResponse carries a human readable result.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is returned with every 4xx/5xx that has a body.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// CheckAuthUser is the user part of CheckAuthResponse.
type CheckAuthUser struct {
	Username string `json:"username"`
}

// CheckAuthResponse confirms an authenticated session.
type CheckAuthResponse struct {
	Status string        `json:"status"`
	User   CheckAuthUser `json:"user"`
}
