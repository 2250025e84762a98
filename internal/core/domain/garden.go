package domain

import (
	"time"

	"github.com/google/uuid"
)

type Garden struct {
	ID              string     `json:"id" db:"id"`
	Name            string     `json:"name" db:"name"`
	Description     string     `json:"description,omitempty" db:"description"`
	Location        string     `json:"location" db:"location"`
	TotalArea       *float64   `json:"total_area,omitempty" db:"total_area"`
	Length          *float64   `json:"length,omitempty" db:"length"`
	Width           *float64   `json:"width,omitempty" db:"width"`
	GardenType      string     `json:"garden_type,omitempty" db:"garden_type"`
	EstablishedDate *time.Time `json:"established_date,omitempty" db:"established_date"`
	Notes           string     `json:"notes,omitempty" db:"notes"`
	IsActive        bool       `json:"is_active" db:"is_active"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// GardenInput carries the caller-supplied fields of a new garden.
type GardenInput struct {
	Name            string
	Description     string
	Location        string
	TotalArea       *float64
	Length          *float64
	Width           *float64
	GardenType      string
	EstablishedDate *time.Time
	Notes           string
}

// GardenPatch is a partial update; nil fields are left untouched.
type GardenPatch struct {
	Name            *string
	Description     *string
	Location        *string
	TotalArea       *float64
	Length          *float64
	Width           *float64
	GardenType      *string
	EstablishedDate *time.Time
	Notes           *string
}

func NewGarden(in GardenInput) *Garden {
	now := time.Now().UTC()
	return &Garden{
		ID:              uuid.NewString(),
		Name:            in.Name,
		Description:     in.Description,
		Location:        in.Location,
		TotalArea:       in.TotalArea,
		Length:          in.Length,
		Width:           in.Width,
		GardenType:      in.GardenType,
		EstablishedDate: in.EstablishedDate,
		Notes:           in.Notes,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (g *Garden) Row() Row {
	return Row{
		"id":               g.ID,
		"name":             g.Name,
		"description":      g.Description,
		"location":         g.Location,
		"total_area":       g.TotalArea,
		"length":           g.Length,
		"width":            g.Width,
		"garden_type":      g.GardenType,
		"established_date": g.EstablishedDate,
		"notes":            g.Notes,
		"is_active":        g.IsActive,
		"created_at":       g.CreatedAt,
		"updated_at":       g.UpdatedAt,
	}
}

func (p GardenPatch) Row() Row {
	row := Row{}
	setString(row, "name", p.Name)
	setString(row, "description", p.Description)
	setString(row, "location", p.Location)
	setFloat(row, "total_area", p.TotalArea)
	setFloat(row, "length", p.Length)
	setFloat(row, "width", p.Width)
	setString(row, "garden_type", p.GardenType)
	setTime(row, "established_date", p.EstablishedDate)
	setString(row, "notes", p.Notes)
	return row
}
