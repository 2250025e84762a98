package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	PlantStatusHealthy        = "healthy"
	PlantStatusNeedsAttention = "needs_attention"
	PlantStatusDiseased       = "diseased"
	PlantStatusDead           = "dead"
	PlantStatusHarvested      = "harvested"
)

type Plant struct {
	ID                  string     `json:"id" db:"id"`
	PlantBedID          string     `json:"plant_bed_id" db:"plant_bed_id"`
	Name                string     `json:"name" db:"name"`
	ScientificName      string     `json:"scientific_name,omitempty" db:"scientific_name"`
	Variety             string     `json:"variety,omitempty" db:"variety"`
	Color               string     `json:"color,omitempty" db:"color"`
	Height              *float64   `json:"height,omitempty" db:"height"`
	PlantingDate        *time.Time `json:"planting_date,omitempty" db:"planting_date"`
	ExpectedHarvestDate *time.Time `json:"expected_harvest_date,omitempty" db:"expected_harvest_date"`
	Status              string     `json:"status" db:"status"`
	Notes               string     `json:"notes,omitempty" db:"notes"`
	CareInstructions    string     `json:"care_instructions,omitempty" db:"care_instructions"`
	WateringFrequency   *int       `json:"watering_frequency,omitempty" db:"watering_frequency"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" db:"updated_at"`
}

type PlantInput struct {
	PlantBedID          string
	Name                string
	ScientificName      string
	Variety             string
	Color               string
	Height              *float64
	PlantingDate        *time.Time
	ExpectedHarvestDate *time.Time
	Status              string
	Notes               string
	CareInstructions    string
	WateringFrequency   *int
}

type PlantPatch struct {
	Name                *string
	ScientificName      *string
	Variety             *string
	Color               *string
	Height              *float64
	PlantingDate        *time.Time
	ExpectedHarvestDate *time.Time
	Status              *string
	Notes               *string
	CareInstructions    *string
	WateringFrequency   *int
}

// IsValidPlantStatus reports whether s is one of the known plant states.
func IsValidPlantStatus(s string) bool {
	switch s {
	case PlantStatusHealthy, PlantStatusNeedsAttention, PlantStatusDiseased, PlantStatusDead, PlantStatusHarvested:
		return true
	}
	return false
}

func NewPlant(in PlantInput) *Plant {
	now := time.Now().UTC()
	status := in.Status
	if status == "" {
		status = PlantStatusHealthy
	}
	return &Plant{
		ID:                  uuid.NewString(),
		PlantBedID:          in.PlantBedID,
		Name:                in.Name,
		ScientificName:      in.ScientificName,
		Variety:             in.Variety,
		Color:               in.Color,
		Height:              in.Height,
		PlantingDate:        in.PlantingDate,
		ExpectedHarvestDate: in.ExpectedHarvestDate,
		Status:              status,
		Notes:               in.Notes,
		CareInstructions:    in.CareInstructions,
		WateringFrequency:   in.WateringFrequency,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

func (p *Plant) Row() Row {
	return Row{
		"id":                    p.ID,
		"plant_bed_id":          p.PlantBedID,
		"name":                  p.Name,
		"scientific_name":       p.ScientificName,
		"variety":               p.Variety,
		"color":                 p.Color,
		"height":                p.Height,
		"planting_date":         p.PlantingDate,
		"expected_harvest_date": p.ExpectedHarvestDate,
		"status":                p.Status,
		"notes":                 p.Notes,
		"care_instructions":     p.CareInstructions,
		"watering_frequency":    p.WateringFrequency,
		"created_at":            p.CreatedAt,
		"updated_at":            p.UpdatedAt,
	}
}

func (p PlantPatch) Row() Row {
	row := Row{}
	setString(row, "name", p.Name)
	setString(row, "scientific_name", p.ScientificName)
	setString(row, "variety", p.Variety)
	setString(row, "color", p.Color)
	setFloat(row, "height", p.Height)
	setTime(row, "planting_date", p.PlantingDate)
	setTime(row, "expected_harvest_date", p.ExpectedHarvestDate)
	setString(row, "status", p.Status)
	setString(row, "notes", p.Notes)
	setString(row, "care_instructions", p.CareInstructions)
	setInt(row, "watering_frequency", p.WateringFrequency)
	return row
}
