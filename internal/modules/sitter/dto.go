package sitter

type UpsertProfileRequest struct {
	Bio             string  `json:"bio"`
	HourlyRate      float64 `json:"hourly_rate" binding:"required,gt=0"`
	ExperienceYears int     `json:"experience_years"`
	Services        string  `json:"services"`
	Available       *bool   `json:"available"`
}
