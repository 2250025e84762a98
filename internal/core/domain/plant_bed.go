package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	SunFull    = "full-sun"
	SunPartial = "partial-sun"
	SunShade   = "shade"
)

func IsValidSunExposure(s string) bool {
	return s == SunFull || s == SunPartial || s == SunShade
}

type PlantBed struct {
	ID          string    `json:"id" db:"id"`
	GardenID    string    `json:"garden_id" db:"garden_id"`
	Name        string    `json:"name" db:"name"`
	Location    string    `json:"location,omitempty" db:"location"`
	Size        string    `json:"size,omitempty" db:"size"`
	SoilType    string    `json:"soil_type,omitempty" db:"soil_type"`
	SunExposure string    `json:"sun_exposure" db:"sun_exposure"`
	Description string    `json:"description,omitempty" db:"description"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type PlantBedInput struct {
	GardenID    string
	Name        string
	Location    string
	Size        string
	SoilType    string
	SunExposure string
	Description string
}

type PlantBedPatch struct {
	Name        *string
	Location    *string
	Size        *string
	SoilType    *string
	SunExposure *string
	Description *string
}

func NewPlantBed(in PlantBedInput) *PlantBed {
	now := time.Now().UTC()
	sun := in.SunExposure
	if sun == "" {
		sun = SunFull
	}
	return &PlantBed{
		ID:          uuid.NewString(),
		GardenID:    in.GardenID,
		Name:        in.Name,
		Location:    in.Location,
		Size:        in.Size,
		SoilType:    in.SoilType,
		SunExposure: sun,
		Description: in.Description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (b *PlantBed) Row() Row {
	return Row{
		"id":           b.ID,
		"garden_id":    b.GardenID,
		"name":         b.Name,
		"location":     b.Location,
		"size":         b.Size,
		"soil_type":    b.SoilType,
		"sun_exposure": b.SunExposure,
		"description":  b.Description,
		"is_active":    b.IsActive,
		"created_at":   b.CreatedAt,
		"updated_at":   b.UpdatedAt,
	}
}

func (p PlantBedPatch) Row() Row {
	row := Row{}
	setString(row, "name", p.Name)
	setString(row, "location", p.Location)
	setString(row, "size", p.Size)
	setString(row, "soil_type", p.SoilType)
	setString(row, "sun_exposure", p.SunExposure)
	setString(row, "description", p.Description)
	return row
}
