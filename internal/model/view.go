package model

import (
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

// View is a saved cohort definition: a named set of filters over one file's
// rows. The analysis services do not interpret filters; views only exist so
// the frontend can restore an exploration session.
type View struct {
	bun.BaseModel `bun:"views,alias:v"`

	ViewID      string      `bun:",pk" json:"viewId"`
	FileID      string      `json:"fileId"`
	Name        string      `json:"name"`
	Filters     string      `json:"filters"`
	Description null.String `json:"description"`
	CreatedAt   *time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time  `json:"updatedAt"`
}
