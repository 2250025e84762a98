package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/domain"
	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/errclass"
	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/retry"
)

var _ domain.UserRepository = (*UserRepository)(nil)

// UserRepository stores accounts in the users table through the retry wrapper.
type UserRepository struct {
	gw      domain.Gateway
	retrier *retry.Retrier
	log     *slog.Logger
}

func NewUserRepository(deps Deps) *UserRepository {
	deps = resolveDeps(deps)
	return &UserRepository{gw: deps.Gateway, retrier: deps.Retrier, log: deps.Logger}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := retry.Do(ctx, r.retrier, "create_user", func(ctx context.Context) (domain.Row, error) {
		return r.gw.Insert(ctx, domain.TableUsers, user.Row())
	})
	if err != nil {
		if errclass.Extract(err).Code == domain.CodeUniqueViolation {
			// The id is fresh, so finding it means an earlier attempt landed.
			if stored, getErr := r.GetByID(ctx, user.ID); getErr == nil && stored.Email == user.Email {
				r.log.Warn("user insert already stored by an earlier attempt", "id", user.ID)
				return nil
			}
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("user repository: create: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "get_user_by_email", domain.Filter{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, "get_user_by_id", domain.Filter{"id": id})
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	partial := domain.Row{"password_hash": passwordHash, "updated_at": time.Now().UTC()}
	out, err := retry.Do(ctx, r.retrier, "update_user_password", func(ctx context.Context) (domain.Row, error) {
		return r.gw.Update(ctx, domain.TableUsers, domain.Filter{"id": id}, partial)
	})
	if err != nil {
		return fmt.Errorf("user repository: update password: %w", err)
	}
	if out == nil {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, op string, filter domain.Filter) (*domain.User, error) {
	rows, err := retry.Do(ctx, r.retrier, op, func(ctx context.Context) ([]domain.Row, error) {
		return absentAsEmpty(r.gw.Query(ctx, domain.TableUsers, filter))
	})
	if err != nil {
		return nil, fmt.Errorf("user repository: %s: %w", op, err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrUserNotFound
	}

	user, err := decodeRow[domain.User](rows[0])
	if err != nil {
		return nil, fmt.Errorf("user repository: %s: %w", op, err)
	}
	return &user, nil
}
