package services

import (
	"context"
	"time"

	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/domain"
	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/validate"
)

type LogbookFilter struct {
	GardenID   string
	PlantBedID string
	PlantID    string
}

type LogbookService struct {
	store *store[domain.LogbookEntry]
}

func NewLogbookService(deps Deps) *LogbookService {
	return &LogbookService{
		store: newStore[domain.LogbookEntry](deps, domain.TableLogbookEntries, "logbook_entry", "logbook_entries", "Logbook entry"),
	}
}

func (s *LogbookService) GetAll(ctx context.Context, f LogbookFilter) domain.Result[[]domain.LogbookEntry] {
	filter := domain.Filter{}
	if f.GardenID != "" {
		filter["garden_id"] = f.GardenID
	}
	if f.PlantBedID != "" {
		filter["plant_bed_id"] = f.PlantBedID
	}
	if f.PlantID != "" {
		filter["plant_id"] = f.PlantID
	}
	return s.store.list(ctx, filter)
}

func (s *LogbookService) GetByID(ctx context.Context, id string) domain.Result[domain.LogbookEntry] {
	return s.store.get(ctx, id)
}

// Create stores a new entry. A missing entry date means today.
func (s *LogbookService) Create(ctx context.Context, in domain.LogbookEntryInput) domain.Result[domain.LogbookEntry] {
	err := validate.Required(
		validate.F("garden_id", in.GardenID),
		validate.F("notes", in.Notes),
	)
	if err != nil {
		return domain.Fail[domain.LogbookEntry](domain.FailureValidation, err.Error())
	}
	if in.EntryDate == nil {
		today := time.Now().UTC().Truncate(24 * time.Hour)
		in.EntryDate = &today
	}
	return s.store.create(ctx, domain.NewLogbookEntry(in).Row())
}

func (s *LogbookService) Update(ctx context.Context, id string, patch domain.LogbookEntryPatch) domain.Result[domain.LogbookEntry] {
	if patch.Notes != nil && *patch.Notes == "" {
		return domain.Fail[domain.LogbookEntry](domain.FailureValidation, (&domain.ValidationError{Field: "notes"}).Error())
	}
	return s.store.update(ctx, id, patch.Row())
}

func (s *LogbookService) Delete(ctx context.Context, id string) domain.Result[bool] {
	return s.store.remove(ctx, id)
}
