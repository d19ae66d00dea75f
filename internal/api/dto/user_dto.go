package dto

import "github.com/spec-kit/kclean/internal/domain"

// SubjectResponse wraps a single account record.
type SubjectResponse struct {
	Data domain.Subject `json:"data"`
}

// SubjectListResponse wraps an account listing.
type SubjectListResponse struct {
	Data []domain.Subject `json:"data"`
}

// PointsResponse reports a resident's current balance.
type PointsResponse struct {
	Points int `json:"points"`
}

// CreateUserRequest is the admin payload for provisioning petugas and UMKM
// accounts.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest carries partial account edits; nil fields are untouched.
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// NotificationListResponse wraps dashboard notifications.
type NotificationListResponse struct {
	Data []domain.Notification `json:"data"`
}
