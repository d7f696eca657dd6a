package repo

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/model"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/repo/selector"
)

type LabResult struct {
	db  *bun.DB
	sel selector.S[model.LabResult]
}

func NewLabResult(db *bun.DB) *LabResult {
	return &LabResult{
		db:  db,
		sel: selector.New[model.LabResult](db),
	}
}

// GetResultsByFileID loads the full dataset of one upload identity. Order is
// fixed so repeated loads of an unchanged file are byte-identical inputs to
// the analysis services.
func (r *LabResult) GetResultsByFileID(ctx context.Context, fileID string) ([]*model.LabResult, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("file_id = ?", fileID).
			Order("patient_id ASC", "test_name ASC", "date ASC", "result_id ASC")
	})
}

func (r *LabResult) GetResultsByFileIDAndPatient(ctx context.Context, fileID, patientID string) ([]*model.LabResult, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("file_id = ?", fileID).
			Where("patient_id = ?", patientID).
			Order("date ASC", "test_name ASC", "result_id ASC")
	})
}

func (r *LabResult) GetResultsByFileIDAndTest(ctx context.Context, fileID, testName string) ([]*model.LabResult, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("file_id = ?", fileID).
			Where("test_name = ?", testName).
			Order("patient_id ASC", "date ASC", "result_id ASC")
	})
}

func (r *LabResult) GetResultsByFileIDAndService(ctx context.Context, fileID, service string) ([]*model.LabResult, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("file_id = ?", fileID).
			Where("service = ?", service).
			Order("patient_id ASC", "test_name ASC", "date ASC", "result_id ASC")
	})
}

func (r *LabResult) InsertResults(ctx context.Context, results []*model.LabResult) error {
	if len(results) == 0 {
		return nil
	}
	_, err := r.db.NewInsert().Model(&results).Exec(ctx)
	return err
}
