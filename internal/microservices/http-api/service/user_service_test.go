package service

import (
	"context"
	"testing"

	"titlehub/internal/microservices/http-api/dto"
	"titlehub/internal/microservices/http-api/models"
	"titlehub/internal/microservices/http-api/permission"
	"titlehub/internal/shared/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestUserService_AdminOnly(t *testing.T) {
	ctx := context.Background()
	staffOnly := permission.Identity{UserID: "staff", IsStaff: true}

	tests := []struct {
		name    string
		actor   permission.Identity
		wantErr error
	}{
		{"anonymous", anonymous, apperr.ErrUnauthenticated},
		{"plain user", plainUser, apperr.ErrPermissionDenied},
		{"moderator", moderator, apperr.ErrPermissionDenied},
		{"staff without superuser", staffOnly, apperr.ErrPermissionDenied},
		{"admin", admin, nil},
		{"staff superuser", permission.Identity{UserID: "root", IsStaff: true, IsSuperuser: true}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			repo.On("List", ctx, "", 1, 10).Return([]models.User{}, int64(0), nil)
			svc := NewUserService(repo, discardLogger)

			// reads are admin-only too
			_, _, err := svc.List(ctx, tt.actor, "", 1, 10)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestUserService_CreateWithRole(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	repo.On("Register", ctx, mock.AnythingOfType("*models.User")).Return(nil)
	svc := NewUserService(repo, discardLogger)

	user, err := svc.Create(ctx, admin, dto.CreateUserRequest{
		Username: "newmod",
		Email:    "newmod@example.com",
		Role:     strPtr("moderator"),
		Bio:      "hi",
	})

	require.NoError(t, err)
	assert.Equal(t, models.RoleModerator, user.Role)
	assert.Equal(t, "hi", user.Bio)
	assert.NotEmpty(t, user.Password)
}

func TestUserService_CreateDefaultsToUserRole(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	repo.On("Register", ctx, mock.Anything).Return(nil)
	svc := NewUserService(repo, discardLogger)

	user, err := svc.Create(ctx, admin, dto.CreateUserRequest{Username: "plain", Email: "plain@example.com"})

	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
}

func TestUserService_UpdateRejectsUnknownRole(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	repo.On("FindByUsername", ctx, "bob").Return(models.NewUser("bob", "bob@example.com"), nil)
	svc := NewUserService(repo, discardLogger)

	_, err := svc.Update(ctx, admin, "bob", dto.UpdateUserRequest{Role: strPtr("owner")})

	assert.ErrorIs(t, err, apperr.ErrValidation)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUserService_UpdatePromotes(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	repo.On("FindByUsername", ctx, "bob").Return(models.NewUser("bob", "bob@example.com"), nil)
	repo.On("Update", ctx, mock.AnythingOfType("*models.User")).Return(nil)
	svc := NewUserService(repo, discardLogger)

	user, err := svc.Update(ctx, admin, "bob", dto.UpdateUserRequest{Role: strPtr("admin"), LastName: strPtr("Builder")})

	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Equal(t, "Builder", user.LastName)
}

func TestUserService_UpdateMeKeepsReadOnlyFields(t *testing.T) {
	ctx := context.Background()
	me := models.NewUser("me", "me@example.com")
	repo := new(MockUserRepository)
	repo.On("FindByID", ctx, me.ID).Return(me, nil)
	repo.On("Update", ctx, me).Return(nil)
	svc := NewUserService(repo, discardLogger)

	actor := permission.FromUser(me)
	user, err := svc.UpdateMe(ctx, actor, dto.UpdateMeRequest{Bio: strPtr("about me")})

	require.NoError(t, err)
	assert.Equal(t, "about me", user.Bio)
	assert.Equal(t, "me", user.Username)
	assert.Equal(t, models.RoleUser, user.Role)
}

func TestUserService_MeRequiresAuthentication(t *testing.T) {
	svc := NewUserService(new(MockUserRepository), discardLogger)

	_, err := svc.Me(context.Background(), anonymous)

	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	repo.On("DeleteByUsername", ctx, "bob").Return(nil)
	svc := NewUserService(repo, discardLogger)

	assert.ErrorIs(t, svc.Delete(ctx, plainUser, "bob"), apperr.ErrPermissionDenied)
	require.NoError(t, svc.Delete(ctx, admin, "bob"))
	repo.AssertNumberOfCalls(t, "DeleteByUsername", 1)
}
