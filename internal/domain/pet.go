package domain

import "time"

type Pet struct {
	ID                      string     `json:"id" gorm:"primaryKey;type:uuid"`
	OwnerID                 string     `json:"owner_id" gorm:"not null;index"`
	Name                    string     `json:"name" validate:"required"`
	Type                    string     `json:"type" validate:"required"`
	Breed                   string     `json:"breed,omitempty"`
	Age                     *int       `json:"age,omitempty"`
	ImageURL                string     `json:"image_url,omitempty"`
	LastVaccinationDate     *time.Time `json:"last_vaccination_date,omitempty"`
	VaccinationIntervalDays *int       `json:"vaccination_interval_days,omitempty"`
	VaccinationDueDate      *time.Time `json:"vaccination_due_date,omitempty" gorm:"index"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

func (Pet) TableName() string { return "pets" }
