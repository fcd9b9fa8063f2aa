package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"context"
	"errors"
	"time"

	"Inkstone/internal/repository"
)

type BugService interface {
	Create(ctx context.Context, req *dto.CreateBugDTO) (*model.Bug, error)
	List(ctx context.Context) ([]*model.Bug, error)
	UpdateStatus(ctx context.Context, id string, req *dto.UpdateBugStatusDTO) (*model.Bug, error)
	Delete(ctx context.Context, id string) error
}

type BugServiceImpl struct {
	bugs repository.BugRepo
}

func NewBugService(bugs repository.BugRepo) BugService {
	return &BugServiceImpl{bugs: bugs}
}

func (s *BugServiceImpl) Create(ctx context.Context, req *dto.CreateBugDTO) (*model.Bug, error) {
	now := time.Now()
	bug := &model.Bug{
		Title:       req.Title,
		Description: req.Description,
		Status:      consts.BugStatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.bugs.Insert(ctx, bug); err != nil {
		return nil, err
	}
	return bug, nil
}

func (s *BugServiceImpl) List(ctx context.Context) ([]*model.Bug, error) {
	bugs, err := s.bugs.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if bugs == nil {
		bugs = []*model.Bug{}
	}
	return bugs, nil
}

func (s *BugServiceImpl) UpdateStatus(ctx context.Context, id string, req *dto.UpdateBugStatusDTO) (*model.Bug, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	bug, err := s.bugs.UpdateStatus(ctx, oid, req.Status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBugNotFound
		}
		return nil, err
	}
	return bug, nil
}

func (s *BugServiceImpl) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	if err := s.bugs.Delete(ctx, oid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBugNotFound
		}
		return err
	}
	return nil
}
