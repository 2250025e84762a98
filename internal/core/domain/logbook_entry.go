package domain

import (
	"time"

	"github.com/google/uuid"
)

type LogbookEntry struct {
	ID         string    `json:"id" db:"id"`
	GardenID   string    `json:"garden_id" db:"garden_id"`
	PlantBedID *string   `json:"plant_bed_id,omitempty" db:"plant_bed_id"`
	PlantID    *string   `json:"plant_id,omitempty" db:"plant_id"`
	EntryDate  time.Time `json:"entry_date" db:"entry_date"`
	Notes      string    `json:"notes" db:"notes"`
	PhotoURL   string    `json:"photo_url,omitempty" db:"photo_url"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

type LogbookEntryInput struct {
	GardenID   string
	PlantBedID *string
	PlantID    *string
	EntryDate  *time.Time
	Notes      string
	PhotoURL   string
}

type LogbookEntryPatch struct {
	EntryDate *time.Time
	Notes     *string
	PhotoURL  *string
}

func NewLogbookEntry(in LogbookEntryInput) *LogbookEntry {
	now := time.Now().UTC()
	e := &LogbookEntry{
		ID:         uuid.NewString(),
		GardenID:   in.GardenID,
		PlantBedID: in.PlantBedID,
		PlantID:    in.PlantID,
		Notes:      in.Notes,
		PhotoURL:   in.PhotoURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if in.EntryDate != nil {
		e.EntryDate = in.EntryDate.UTC()
	}
	return e
}

func (e *LogbookEntry) Row() Row {
	return Row{
		"id":           e.ID,
		"garden_id":    e.GardenID,
		"plant_bed_id": e.PlantBedID,
		"plant_id":     e.PlantID,
		"entry_date":   e.EntryDate,
		"notes":        e.Notes,
		"photo_url":    e.PhotoURL,
		"created_at":   e.CreatedAt,
		"updated_at":   e.UpdatedAt,
	}
}

func (p LogbookEntryPatch) Row() Row {
	row := Row{}
	setTime(row, "entry_date", p.EntryDate)
	setString(row, "notes", p.Notes)
	setString(row, "photo_url", p.PhotoURL)
	return row
}
