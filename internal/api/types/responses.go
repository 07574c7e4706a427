package types

import (
	"time"

	"github.com/contactbook/engine/internal/models"
)

// APIResponse is the envelope of every error response.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type Meta struct {
	RequestID string `json:"request_id,omitempty"`
}

type TokenResponse struct {
	AccessToken string             `json:"access_token"`
	TokenType   string             `json:"token_type" example:"bearer"`
	User        models.UserSummary `json:"user"`
}

type HealthResponse struct {
	Status    string    `json:"status" example:"healthy"`
	Timestamp time.Time `json:"timestamp"`
}

type ImportResponse struct {
	Message       string `json:"message" example:"Imported 3 contacts"`
	ImportedCount int    `json:"imported_count" example:"3"`
}

type UploadResponse struct {
	URL string `json:"url"`
}
