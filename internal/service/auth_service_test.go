package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/security"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users)

	registered, err := svc.Register(context.Background(), &dto.RegisterDTO{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, consts.RoleUser, registered.User.Role)
	assert.True(t, registered.User.IsActive)

	// 密码以 bcrypt 哈希落库
	stored, err := users.FindByEmail(context.Background(), "bob@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.Password)
	assert.NoError(t, security.CheckPasswordHash("secret123", stored.Password))

	logged, err := svc.Login(context.Background(), &dto.CredentialDTO{
		Email:    "bob@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, logged.Token)

	claims, err := security.ValidateToken(logged.Token)
	require.NoError(t, err)
	assert.Equal(t, stored.ID.Hex(), claims.UserID)
	assert.Equal(t, consts.RoleUser, claims.Role)
}

func TestRegisterDuplicate(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users)

	_, err := svc.Register(context.Background(), &dto.RegisterDTO{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &dto.RegisterDTO{
		Username: "bob",
		Email:    "other@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrUserExist)
}

func TestLoginFailures(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users)

	_, err := svc.Register(context.Background(), &dto.RegisterDTO{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.CredentialDTO{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrCredentialsInvalid)

	_, err = svc.Login(context.Background(), &dto.CredentialDTO{Email: "carol@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrCredentialsInvalid)

	stored, err := users.FindByEmail(context.Background(), "carol@example.com")
	require.NoError(t, err)
	stored.IsActive = false

	_, err = svc.Login(context.Background(), &dto.CredentialDTO{Email: "carol@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUserDeactivated)
}

func TestProfile(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users)

	registered, err := svc.Register(context.Background(), &dto.RegisterDTO{
		Username: "dave",
		Email:    "dave@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	profile, err := svc.Profile(context.Background(), registered.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "dave", profile.Username)

	_, err = svc.Profile(context.Background(), "deadbeefdeadbeefdeadbeef")
	assert.ErrorIs(t, err, ErrUserNotExist)
}
