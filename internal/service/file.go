package service

import (
	"context"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog/log"

	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/model"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/model/cache"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/pkg/lberr"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/repo"
)

// File is the storage collaborator of the analysis services: it owns upload
// identities and their rows. Format parsing (CSV, XLSX, encodings) happens
// before this service is reached; it only accepts well-typed JSON rows.
type File struct {
	FileRepo      *repo.File
	LabResultRepo *repo.LabResult
}

func NewFile(fileRepo *repo.File, labResultRepo *repo.LabResult) *File {
	return &File{
		FileRepo:      fileRepo,
		LabResultRepo: labResultRepo,
	}
}

// Cache: files, 5 min
func (s *File) List(ctx context.Context) ([]*model.File, error) {
	var files []*model.File
	err := cache.Files.MutexGetSet(&files, func() ([]*model.File, error) {
		return s.FileRepo.GetFiles(ctx)
	}, time.Minute*5)
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (s *File) GetByID(ctx context.Context, fileID string) (*model.File, error) {
	return s.FileRepo.GetFileByID(ctx, fileID)
}

func (s *File) GetData(ctx context.Context, fileID string) ([]*model.LabResult, error) {
	rows, err := s.LabResultRepo.GetResultsByFileID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, lberr.ErrNotFound
	}
	return rows, nil
}

func (s *File) Ingest(ctx context.Context, req *model.FileIngestRequest) (*model.File, error) {
	now := time.Now()
	file := &model.File{
		FileID:           xid.New().String(),
		OriginalFilename: req.OriginalFilename,
		RowCount:         len(req.Rows),
		Status:           model.FileStatusReady,
		CreatedAt:        &now,
	}

	rows := make([]*model.LabResult, 0, len(req.Rows))
	for i, r := range req.Rows {
		date, err := time.Parse("2006-01-02", r.Date)
		if err != nil {
			return nil, lberr.ErrInvalidReq.Msg("row %d: invalid date %q: expecting YYYY-MM-DD", i, r.Date)
		}
		sex := r.Sex
		if sex == "" {
			sex = "unknown"
		}
		rows = append(rows, &model.LabResult{
			FileID:     file.FileID,
			PatientID:  r.PatientID,
			Sex:        sex,
			Age:        r.Age,
			TestName:   r.TestName,
			ResultText: r.ResultText,
			Service:    r.Service,
			Date:       date,
			CreatedAt:  &now,
		})
	}

	if err := s.FileRepo.CreateFile(ctx, file); err != nil {
		return nil, err
	}
	if err := s.LabResultRepo.InsertResults(ctx, rows); err != nil {
		return nil, err
	}

	if err := cache.Files.Delete(); err != nil {
		log.Warn().Err(err).Str("fileId", file.FileID).Msg("failed to invalidate file list cache after ingest")
	}

	return file, nil
}

// Delete drops the file, its rows and every derived analysis of it. Rows and
// file record go in one transaction.
func (s *File) Delete(ctx context.Context, fileID string) error {
	if _, err := s.FileRepo.GetFileByID(ctx, fileID); err != nil {
		return err
	}
	if err := s.FileRepo.DeleteFileWithResults(ctx, fileID); err != nil {
		return err
	}
	if err := cache.FlushFileCaches(fileID); err != nil {
		log.Warn().Err(err).Str("fileId", fileID).Msg("failed to flush analysis caches after file deletion")
	}
	return nil
}
