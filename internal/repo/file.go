package repo

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"

	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/model"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/repo/selector"
)

type File struct {
	db  *bun.DB
	sel selector.S[model.File]
}

func NewFile(db *bun.DB) *File {
	return &File{
		db:  db,
		sel: selector.New[model.File](db),
	}
}

func (r *File) GetFiles(ctx context.Context) ([]*model.File, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("created_at DESC")
	})
}

func (r *File) GetRecentFiles(ctx context.Context, limit int) ([]*model.File, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("created_at DESC").Limit(limit)
	})
}

func (r *File) GetFileByID(ctx context.Context, fileID string) (*model.File, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("file_id = ?", fileID)
	})
}

func (r *File) CreateFile(ctx context.Context, file *model.File) error {
	_, err := r.db.NewInsert().Model(file).Exec(ctx)
	return err
}

// DeleteFileWithResults drops a file record and its rows in one transaction,
// so a mid-way failure never leaves a file entry whose dataset is gone.
func (r *File) DeleteFileWithResults(ctx context.Context, fileID string) error {
	return r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*model.LabResult)(nil)).Where("file_id = ?", fileID).Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewDelete().Model((*model.File)(nil)).Where("file_id = ?", fileID).Exec(ctx)
		return err
	})
}
