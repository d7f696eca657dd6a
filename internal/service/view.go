package service

import (
	"context"
	"time"

	"github.com/rs/xid"

	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/model"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/repo"
)

type View struct {
	ViewRepo *repo.View
	FileRepo *repo.File
}

func NewView(viewRepo *repo.View, fileRepo *repo.File) *View {
	return &View{
		ViewRepo: viewRepo,
		FileRepo: fileRepo,
	}
}

func (s *View) List(ctx context.Context, fileID string) ([]*model.View, error) {
	if fileID != "" {
		return s.ViewRepo.GetViewsByFileID(ctx, fileID)
	}
	return s.ViewRepo.GetViews(ctx)
}

func (s *View) GetByID(ctx context.Context, viewID string) (*model.View, error) {
	return s.ViewRepo.GetViewByID(ctx, viewID)
}

func (s *View) Create(ctx context.Context, req *model.ViewCreateRequest) (*model.View, error) {
	// reject views over upload identities that do not exist
	if _, err := s.FileRepo.GetFileByID(ctx, req.FileID); err != nil {
		return nil, err
	}

	now := time.Now()
	view := &model.View{
		ViewID:      xid.New().String(),
		FileID:      req.FileID,
		Name:        req.Name,
		Filters:     req.Filters,
		Description: req.Description,
		CreatedAt:   &now,
		UpdatedAt:   &now,
	}
	if err := s.ViewRepo.CreateView(ctx, view); err != nil {
		return nil, err
	}
	return view, nil
}

func (s *View) Update(ctx context.Context, viewID string, req *model.ViewUpdateRequest) (*model.View, error) {
	view, err := s.ViewRepo.GetViewByID(ctx, viewID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	view.Name = req.Name
	view.Filters = req.Filters
	view.Description = req.Description
	view.UpdatedAt = &now

	if err := s.ViewRepo.UpdateView(ctx, view); err != nil {
		return nil, err
	}
	return view, nil
}

func (s *View) Delete(ctx context.Context, viewID string) error {
	if _, err := s.ViewRepo.GetViewByID(ctx, viewID); err != nil {
		return err
	}
	return s.ViewRepo.DeleteViewByID(ctx, viewID)
}
