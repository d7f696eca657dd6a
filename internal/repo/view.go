package repo

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/model"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/repo/selector"
)

type View struct {
	db  *bun.DB
	sel selector.S[model.View]
}

func NewView(db *bun.DB) *View {
	return &View{
		db:  db,
		sel: selector.New[model.View](db),
	}
}

func (r *View) GetViews(ctx context.Context) ([]*model.View, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("created_at DESC")
	})
}

func (r *View) GetViewsByFileID(ctx context.Context, fileID string) ([]*model.View, error) {
	return r.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("file_id = ?", fileID).Order("created_at DESC")
	})
}

func (r *View) GetViewByID(ctx context.Context, viewID string) (*model.View, error) {
	return r.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("view_id = ?", viewID)
	})
}

func (r *View) CreateView(ctx context.Context, view *model.View) error {
	_, err := r.db.NewInsert().Model(view).Exec(ctx)
	return err
}

func (r *View) UpdateView(ctx context.Context, view *model.View) error {
	_, err := r.db.NewUpdate().
		Model(view).
		Column("name", "filters", "description", "updated_at").
		WherePK().
		Exec(ctx)
	return err
}

func (r *View) DeleteViewByID(ctx context.Context, viewID string) error {
	_, err := r.db.NewDelete().Model((*model.View)(nil)).Where("view_id = ?", viewID).Exec(ctx)
	return err
}
