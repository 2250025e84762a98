package services

import (
	"context"

	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/domain"
	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/validate"
)

const msgGardenRequired = "Name and location are required"

// GardenService is the repository for gardens. Deleted gardens stay in the
// table with is_active=false and are invisible to every method here.
type GardenService struct {
	store *store[domain.Garden]
}

func NewGardenService(deps Deps) *GardenService {
	return &GardenService{
		store: newStore[domain.Garden](deps, domain.TableGardens, "garden", "gardens", "Garden").softDelete(),
	}
}

func (s *GardenService) GetAll(ctx context.Context) domain.Result[[]domain.Garden] {
	return s.store.list(ctx, nil)
}

func (s *GardenService) GetByID(ctx context.Context, id string) domain.Result[domain.Garden] {
	return s.store.get(ctx, id)
}

func (s *GardenService) Create(ctx context.Context, in domain.GardenInput) domain.Result[domain.Garden] {
	if err := validate.Required(validate.F("name", in.Name), validate.F("location", in.Location)); err != nil {
		return domain.Fail[domain.Garden](domain.FailureValidation, msgGardenRequired)
	}
	return s.store.create(ctx, domain.NewGarden(in).Row())
}

func (s *GardenService) Update(ctx context.Context, id string, patch domain.GardenPatch) domain.Result[domain.Garden] {
	if patch.Name != nil && *patch.Name == "" || patch.Location != nil && *patch.Location == "" {
		return domain.Fail[domain.Garden](domain.FailureValidation, msgGardenRequired)
	}
	return s.store.update(ctx, id, patch.Row())
}

// Delete marks the garden inactive.
func (s *GardenService) Delete(ctx context.Context, id string) domain.Result[bool] {
	return s.store.remove(ctx, id)
}
