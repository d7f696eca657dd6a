package model

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	FileStatusReady = "ready"
)

type File struct {
	bun.BaseModel `bun:"files,alias:f"`

	FileID           string     `bun:",pk" json:"fileId"`
	OriginalFilename string     `json:"originalFilename"`
	RowCount         int        `json:"rowCount"`
	Status           string     `json:"status"`
	CreatedAt        *time.Time `json:"createdAt"`
}
