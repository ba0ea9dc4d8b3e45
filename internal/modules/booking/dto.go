package booking

import "time"

type CreateBookingRequest struct {
	PetID         string    `json:"pet_id" binding:"required"`
	SitterID      *string   `json:"sitter_id"`
	StartTime     time.Time `json:"start_time" binding:"required"`
	DurationHours int       `json:"duration_hours" binding:"required"`
	// OfferedRate is only read for open postings (no sitter named);
	// otherwise the sitter's current rate is captured instead.
	OfferedRate float64 `json:"offered_rate"`
	Notes       string  `json:"notes"`
}

type BeginWalkRequest struct {
	Code string `json:"code" binding:"required"`
}
