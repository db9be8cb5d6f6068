package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maninivas13/farmasthi/internal/auth"
	"github.com/maninivas13/farmasthi/internal/models"
	"github.com/maninivas13/farmasthi/internal/repositories/memory"
	"github.com/maninivas13/farmasthi/internal/services/dto"
	"github.com/maninivas13/farmasthi/pkg/apperrors"
)

func registerRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Name:     "Ravi Kumar",
		Phone:    "9876543210",
		Password: "secret123",
		Role:     models.UserRoleFarmer,
		Location: "Warangal",
	}
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	t.Parallel()

	service := NewAuthService(memory.NewUserRepository())

	registered, err := service.Register(registerRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, registered.AccessToken)
	assert.Equal(t, "bearer", registered.TokenType)
	assert.Equal(t, models.UserRoleFarmer, registered.User.Role)
	assert.NotEmpty(t, registered.User.ID)

	// The token round-trips through the parser with the same identity.
	claims, err := auth.ParseToken(registered.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)
	assert.Equal(t, models.UserRoleFarmer, claims.Role)

	loggedIn, err := service.Login(&dto.LoginRequest{
		Phone:    "9876543210",
		Password: "secret123",
		Role:     models.UserRoleFarmer,
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)
}

func TestAuthService_RegisterDuplicatePhone(t *testing.T) {
	t.Parallel()

	service := NewAuthService(memory.NewUserRepository())

	_, err := service.Register(registerRequest())
	require.NoError(t, err)

	again := registerRequest()
	again.Name = "Someone Else"
	_, err = service.Register(again)
	assert.ErrorIs(t, err, apperrors.ErrPhoneAlreadyExists)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	t.Parallel()

	service := NewAuthService(memory.NewUserRepository())
	_, err := service.Register(registerRequest())
	require.NoError(t, err)

	_, err = service.Login(&dto.LoginRequest{
		Phone:    "9876543210",
		Password: "wrong-password",
		Role:     models.UserRoleFarmer,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_LoginUnknownPhone(t *testing.T) {
	t.Parallel()

	service := NewAuthService(memory.NewUserRepository())

	_, err := service.Login(&dto.LoginRequest{
		Phone:    "0000000000",
		Password: "whatever",
		Role:     models.UserRoleFarmer,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_LoginWrongRole(t *testing.T) {
	t.Parallel()

	service := NewAuthService(memory.NewUserRepository())
	_, err := service.Register(registerRequest())
	require.NoError(t, err)

	_, err = service.Login(&dto.LoginRequest{
		Phone:    "9876543210",
		Password: "secret123",
		Role:     models.UserRoleOfficer,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidRoleForAccount)
}

func TestAuthService_Me(t *testing.T) {
	t.Parallel()

	service := NewAuthService(memory.NewUserRepository())
	registered, err := service.Register(registerRequest())
	require.NoError(t, err)

	me, err := service.Me(registered.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", me.Name)
	assert.Equal(t, "9876543210", me.Phone)

	_, err = service.Me("missing-user")
	assert.Error(t, err)
}
