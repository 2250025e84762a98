package services

import (
	"context"

	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/domain"
	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/validate"
)

// PlantBedService is the repository for plant beds. Like gardens they are
// soft deleted.
type PlantBedService struct {
	store *store[domain.PlantBed]
}

func NewPlantBedService(deps Deps) *PlantBedService {
	return &PlantBedService{
		store: newStore[domain.PlantBed](deps, domain.TablePlantBeds, "plant_bed", "plant_beds", "Plant bed").softDelete(),
	}
}

// GetAll lists active beds, restricted to one garden when gardenID is set.
func (s *PlantBedService) GetAll(ctx context.Context, gardenID string) domain.Result[[]domain.PlantBed] {
	filter := domain.Filter{}
	if gardenID != "" {
		filter["garden_id"] = gardenID
	}
	return s.store.list(ctx, filter)
}

func (s *PlantBedService) GetByID(ctx context.Context, id string) domain.Result[domain.PlantBed] {
	return s.store.get(ctx, id)
}

func (s *PlantBedService) Create(ctx context.Context, in domain.PlantBedInput) domain.Result[domain.PlantBed] {
	err := validate.Required(
		validate.F("garden_id", in.GardenID),
		validate.F("name", in.Name),
	)
	if err != nil {
		return domain.Fail[domain.PlantBed](domain.FailureValidation, err.Error())
	}
	if in.SunExposure != "" && !domain.IsValidSunExposure(in.SunExposure) {
		return domain.Fail[domain.PlantBed](domain.FailureValidation, domain.ErrInvalidSunExposure.Error())
	}
	return s.store.create(ctx, domain.NewPlantBed(in).Row())
}

func (s *PlantBedService) Update(ctx context.Context, id string, patch domain.PlantBedPatch) domain.Result[domain.PlantBed] {
	if patch.Name != nil && *patch.Name == "" {
		return domain.Fail[domain.PlantBed](domain.FailureValidation, (&domain.ValidationError{Field: "name"}).Error())
	}
	if patch.SunExposure != nil && !domain.IsValidSunExposure(*patch.SunExposure) {
		return domain.Fail[domain.PlantBed](domain.FailureValidation, domain.ErrInvalidSunExposure.Error())
	}
	return s.store.update(ctx, id, patch.Row())
}

func (s *PlantBedService) Delete(ctx context.Context, id string) domain.Result[bool] {
	return s.store.remove(ctx, id)
}
