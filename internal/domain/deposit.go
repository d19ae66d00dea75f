package domain

import (
	"fmt"
	"math"
	"time"
)

// TrashCategory is the sorting bucket recorded at the depot scale.
type TrashCategory string

const (
	TrashOrganik   TrashCategory = "Organik"
	TrashAnorganik TrashCategory = "Anorganik"
)

// ParseTrashCategory validates operator input for the weighing form.
func ParseTrashCategory(s string) (TrashCategory, error) {
	switch TrashCategory(s) {
	case TrashOrganik:
		return TrashOrganik, nil
	case TrashAnorganik:
		return TrashAnorganik, nil
	}
	return "", fmt.Errorf("unknown trash category %q", s)
}

// Valid reports whether the category is one of the known buckets.
func (c TrashCategory) Valid() bool {
	return c == TrashOrganik || c == TrashAnorganik
}

// PointsPerKg is the fixed conversion in force: 0.1 kg of sorted waste earns
// one eco point.
const PointsPerKg = 10

// PointsForWeight converts a weighed amount in kilograms to eco points.
func PointsForWeight(kg float64) int {
	return int(math.Round(kg * PointsPerKg))
}

// Deposit is one weighed drop-off credited to a resident.
type Deposit struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	StaffID   string        `json:"staff_id"`
	Category  TrashCategory `json:"trash_type"`
	WeightKg  float64       `json:"trash_weight"`
	Points    int           `json:"points"`
	CreatedAt time.Time     `json:"created_at,omitempty"`
}
