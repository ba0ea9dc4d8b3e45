package pet

type UpsertPetRequest struct {
	Name  string `json:"name" binding:"required"`
	Type  string `json:"type" binding:"required"`
	Breed string `json:"breed"`
	Age   *int   `json:"age"`
	// LastVaccinationDate is "2006-01-02"; together with the interval it
	// sets the next due date used by the reminder job.
	LastVaccinationDate     string `json:"last_vaccination_date"`
	VaccinationIntervalDays *int   `json:"vaccination_interval_days"`
}
