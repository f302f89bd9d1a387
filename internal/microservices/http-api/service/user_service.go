package service

import (
	"context"
	"log/slog"

	"titlehub/internal/microservices/http-api/dto"
	"titlehub/internal/microservices/http-api/models"
	"titlehub/internal/microservices/http-api/permission"
	"titlehub/internal/microservices/http-api/repository"
	"titlehub/internal/middleware/auth"
	"titlehub/internal/shared/apperr"
)

// UserService is admin-only user management plus the caller's own profile.
type UserService interface {
	List(ctx context.Context, actor permission.Identity, search string, page, pageSize int) ([]models.User, int64, error)
	Get(ctx context.Context, actor permission.Identity, username string) (*models.User, error)
	Create(ctx context.Context, actor permission.Identity, req dto.CreateUserRequest) (*models.User, error)
	Update(ctx context.Context, actor permission.Identity, username string, req dto.UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, actor permission.Identity, username string) error

	Me(ctx context.Context, actor permission.Identity) (*models.User, error)
	UpdateMe(ctx context.Context, actor permission.Identity, req dto.UpdateMeRequest) (*models.User, error)
}

type userService struct {
	repo   repository.UserRepository
	logger *slog.Logger
}

func NewUserService(repo repository.UserRepository, logger *slog.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) List(ctx context.Context, actor permission.Identity, search string, page, pageSize int) ([]models.User, int64, error) {
	if err := authorize(actor, permission.AdminOnly(actor)); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, search, page, pageSize)
}

func (s *userService) Get(ctx context.Context, actor permission.Identity, username string) (*models.User, error) {
	if err := authorize(actor, permission.AdminOnly(actor)); err != nil {
		return nil, err
	}
	return s.repo.FindByUsername(ctx, username)
}

func (s *userService) Create(ctx context.Context, actor permission.Identity, req dto.CreateUserRequest) (*models.User, error) {
	if err := authorize(actor, permission.AdminOnly(actor)); err != nil {
		return nil, err
	}

	user := models.NewUser(req.Username, req.Email)
	if req.Role != nil {
		if err := s.assignRole(actor, user, *req.Role); err != nil {
			return nil, err
		}
	}
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Bio = req.Bio

	// admin-created accounts sign in through the confirmation code flow as well
	password, err := auth.RandomPassword()
	if err != nil {
		return nil, err
	}
	if user.Password, err = auth.HashPassword(password); err != nil {
		return nil, err
	}
	if user.ConfirmationCode, err = auth.GenerateCode(confirmationCodeBytes); err != nil {
		return nil, err
	}

	if err := s.repo.Register(ctx, user); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "user created", "user_id", user.ID, "by", actor.UserID, "role", user.Role.String())
	return user, nil
}

func (s *userService) Update(ctx context.Context, actor permission.Identity, username string, req dto.UpdateUserRequest) (*models.User, error) {
	if err := authorize(actor, permission.AdminOnly(actor)); err != nil {
		return nil, err
	}
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if req.Role != nil {
		if err := s.assignRole(actor, user, *req.Role); err != nil {
			return nil, err
		}
	}
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	applyProfile(user, req.FirstName, req.LastName, req.Bio)

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, actor permission.Identity, username string) error {
	if err := authorize(actor, permission.AdminOnly(actor)); err != nil {
		return err
	}
	if err := s.repo.DeleteByUsername(ctx, username); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "user deleted", "username", username, "by", actor.UserID)
	return nil
}

func (s *userService) Me(ctx context.Context, actor permission.Identity) (*models.User, error) {
	if !actor.Authenticated() {
		return nil, apperr.Unauthenticated("authentication credentials were not provided")
	}
	return s.repo.FindByID(ctx, actor.UserID)
}

// UpdateMe edits the caller's own profile; username, email and role stay as they are.
func (s *userService) UpdateMe(ctx context.Context, actor permission.Identity, req dto.UpdateMeRequest) (*models.User, error) {
	user, err := s.Me(ctx, actor)
	if err != nil {
		return nil, err
	}
	applyProfile(user, req.FirstName, req.LastName, req.Bio)
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) assignRole(actor permission.Identity, user *models.User, name string) error {
	role, err := models.ParseRole(name)
	if err != nil {
		return apperr.Validation("role", "%q is not a valid role", name)
	}
	if role == user.Role {
		return nil
	}
	if !permission.CanAssignRole(actor) {
		return apperr.PermissionDenied("only admins may change roles")
	}
	user.Role = role
	return nil
}

func applyProfile(user *models.User, firstName, lastName, bio *string) {
	if firstName != nil {
		user.FirstName = *firstName
	}
	if lastName != nil {
		user.LastName = *lastName
	}
	if bio != nil {
		user.Bio = *bio
	}
}
