package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/deppfellow/starwars-api/internal/errs"
	"github.com/deppfellow/starwars-api/internal/lib/events"
	"github.com/deppfellow/starwars-api/internal/model"
)

type UserRepository interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, params model.CreateUserParams) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	UpdateUser(ctx context.Context, id int64, params model.UpdateUserParams) (*model.User, error)
	DeleteUser(ctx context.Context, id int64) (*model.User, error)
}

type UserService struct {
	repo      UserRepository
	mailer    WelcomeMailer
	publisher EventPublisher
}

// NewUserService builds the service. mailer may be nil when background jobs
// are disabled.
func NewUserService(repo UserRepository, mailer WelcomeMailer, publisher EventPublisher) *UserService {
	return &UserService{
		repo:      repo,
		mailer:    mailer,
		publisher: publisher,
	}
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.ListUsers(ctx)
}

// CreateUser stores a new active user with a bcrypt-hashed password and
// schedules a welcome email when the user has an address.
func (s *UserService) CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	params := model.CreateUserParams{
		Email:    req.Email.Ptr(),
		IsActive: true,
	}

	if req.Password.Valid {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password.Value), bcrypt.DefaultCost)
		if err != nil {
			if errors.Is(err, bcrypt.ErrPasswordTooLong) {
				code := "PASSWORD_TOO_LONG"
				return nil, errs.NewBadRequestError("Password must not exceed 72 bytes", true, &code, nil, nil)
			}
			return nil, err
		}
		hashed := string(hash)
		params.PasswordHash = &hashed
	}

	user, err := s.repo.CreateUser(ctx, params)
	if err != nil {
		return nil, err
	}

	if s.mailer != nil && user.Email != nil && *user.Email != "" {
		if err := s.mailer.EnqueueWelcomeEmail(ctx, *user.Email); err != nil {
			zerolog.Ctx(ctx).Error().
				Err(err).
				Int64("user_id", user.ID).
				Msg("failed to enqueue welcome email")
		}
	}

	publish(ctx, s.publisher, userResource, events.ActionCreated, user.ID, user.Serialize())

	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, userResource.notFound(err)
	}
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.repo.UpdateUser(ctx, req.ID, model.UpdateUserParams{Email: req.Email})
	if err != nil {
		return nil, userResource.notFound(err)
	}

	publish(ctx, s.publisher, userResource, events.ActionUpdated, user.ID, user.Serialize())

	return user, nil
}

// DeleteUser returns the user as it was before deletion.
func (s *UserService) DeleteUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.repo.DeleteUser(ctx, id)
	if err != nil {
		return nil, userResource.notFound(err)
	}

	publish(ctx, s.publisher, userResource, events.ActionDeleted, user.ID, user.Serialize())

	return user, nil
}
