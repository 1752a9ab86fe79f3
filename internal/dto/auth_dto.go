package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,max=254"`
	Password string `json:"password" validate:"required,min=1"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"` // seconds
	User         ProfileResponse `json:"user"`
}

// SessionEvent is pushed on the /v1/auth/events stream.
type SessionEvent struct {
	UserID string `json:"user_id"`
	Type   string `json:"type"` // signed_in | signed_out
	At     string `json:"at"`   // RFC 3339
}
