package domain

import "time"

// Subject is the authenticated account as the backend reports it. PublicCode
// is the identifier embedded in the subject's QR code; Points only carries a
// meaningful value for residents.
type Subject struct {
	ID         string    `json:"id"`
	PublicCode string    `json:"public_code"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	Points     int       `json:"points"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}
