package service

import (
	"Inkstone/internal/api/dto"
	"context"
	"errors"

	"Inkstone/internal/repository"
)

type UserService interface {
	List(ctx context.Context, query *dto.UserQueryDTO) (*dto.UserListDTO, error)
	GetByID(ctx context.Context, id string) (*dto.UserDTO, error)
}

type UserServiceImpl struct {
	users repository.UserRepo
}

func NewUserService(users repository.UserRepo) UserService {
	return &UserServiceImpl{users: users}
}

func (s *UserServiceImpl) List(ctx context.Context, query *dto.UserQueryDTO) (*dto.UserListDTO, error) {
	page, limit := normalizePage(query.Page, query.Limit)

	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.users.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.UserDTO, 0, len(users))
	for _, user := range users {
		items = append(items, toUserDTO(user))
	}

	return &dto.UserListDTO{
		Users:      items,
		Pagination: buildPagination(total, page, limit),
	}, nil
}

func (s *UserServiceImpl) GetByID(ctx context.Context, id string) (*dto.UserDTO, error) {
	oid, err := parseObjectID(id)
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
