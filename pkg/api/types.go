// Package api defines the JSON request and response types shared by the
// server handlers and the CLI client.
package api

// RegisterRequest is the payload for POST /api/v1/auth/register.
type RegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"user_type"` // borrower, lender or admin
}

// RegisterResponse describes the created account. No tokens are issued at
// registration time.
type RegisterResponse struct {
	UserID    string `json:"user_id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	UserType  string `json:"user_type"`
	Activated bool   `json:"activated"`
	Message   string `json:"message"`
}

// LoginRequest is the payload for POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token pair together with the
// authenticated principal.
type LoginResponse struct {
	Activated    bool   `json:"activated"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Username     string `json:"username"`
	Email        string `json:"email"`
}

// ConfirmResponse is returned by GET /api/v1/auth/confirm.
type ConfirmResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned by GET /api/v1/health.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
