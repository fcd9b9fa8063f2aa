package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/pkg/security"
	"context"
	"errors"
	"time"

	"Inkstone/internal/repository"
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterDTO) (*dto.AuthResultDTO, error)
	Login(ctx context.Context, req *dto.CredentialDTO) (*dto.AuthResultDTO, error)
	Logout(ctx context.Context, token string) error
	Profile(ctx context.Context, userID string) (*dto.UserDTO, error)
}

type AuthServiceImpl struct {
	users repository.UserRepo
}

func NewAuthService(users repository.UserRepo) AuthService {
	return &AuthServiceImpl{users: users}
}

func (s *AuthServiceImpl) Register(ctx context.Context, req *dto.RegisterDTO) (*dto.AuthResultDTO, error) {
	hashed, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &model.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      consts.RoleUser,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrUserExist
		}
		return nil, err
	}

	token, err := security.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResultDTO{Token: token, User: toUserDTO(user)}, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.CredentialDTO) (*dto.AuthResultDTO, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCredentialsInvalid
		}
		return nil, err
	}

	if err := security.CheckPasswordHash(req.Password, user.Password); err != nil {
		return nil, ErrCredentialsInvalid
	}

	if !user.IsActive {
		return nil, ErrUserDeactivated
	}

	token, err := security.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResultDTO{Token: token, User: toUserDTO(user)}, nil
}

// Logout 把当前 Token 的签名段拉黑，黑名单过期时间与 Token 有效期对齐
func (s *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return ErrTokenInvalid
	}
	return redis.SetWithExpiration(ctx, consts.TokenBlacklistKey+signature, "1", security.JWTExpirationTime)
}

func (s *AuthServiceImpl) Profile(ctx context.Context, userID string) (*dto.UserDTO, error) {
	oid, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotExist
		}
		return nil, err
	}

	return toUserDTO(user), nil
}

func toUserDTO(user *model.User) *dto.UserDTO {
	return &dto.UserDTO{
		ID:        user.ID.Hex(),
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Avatar:    user.Avatar,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}
