package services

import (
	"context"

	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/domain"
	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/validate"
)

// PlantService is the repository for plants. Delete removes the row.
type PlantService struct {
	store *store[domain.Plant]
}

func NewPlantService(deps Deps) *PlantService {
	return &PlantService{
		store: newStore[domain.Plant](deps, domain.TablePlants, "plant", "plants", "Plant"),
	}
}

func (s *PlantService) GetAll(ctx context.Context, plantBedID string) domain.Result[[]domain.Plant] {
	filter := domain.Filter{}
	if plantBedID != "" {
		filter["plant_bed_id"] = plantBedID
	}
	return s.store.list(ctx, filter)
}

func (s *PlantService) GetByID(ctx context.Context, id string) domain.Result[domain.Plant] {
	return s.store.get(ctx, id)
}

func (s *PlantService) Create(ctx context.Context, in domain.PlantInput) domain.Result[domain.Plant] {
	err := validate.Required(
		validate.F("plant_bed_id", in.PlantBedID),
		validate.F("name", in.Name),
	)
	if err != nil {
		return domain.Fail[domain.Plant](domain.FailureValidation, err.Error())
	}
	if in.Status != "" && !domain.IsValidPlantStatus(in.Status) {
		return domain.Fail[domain.Plant](domain.FailureValidation, domain.ErrInvalidPlantStatus.Error())
	}
	return s.store.create(ctx, domain.NewPlant(in).Row())
}

func (s *PlantService) Update(ctx context.Context, id string, patch domain.PlantPatch) domain.Result[domain.Plant] {
	if patch.Name != nil && *patch.Name == "" {
		return domain.Fail[domain.Plant](domain.FailureValidation, (&domain.ValidationError{Field: "name"}).Error())
	}
	if patch.Status != nil && !domain.IsValidPlantStatus(*patch.Status) {
		return domain.Fail[domain.Plant](domain.FailureValidation, domain.ErrInvalidPlantStatus.Error())
	}
	return s.store.update(ctx, id, patch.Row())
}

func (s *PlantService) Delete(ctx context.Context, id string) domain.Result[bool] {
	return s.store.remove(ctx, id)
}
