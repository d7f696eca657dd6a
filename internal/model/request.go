package model

import (
	"gopkg.in/guregu/null.v3"
)

// IngestRow is one lab-test record as submitted by the ingestion client.
// Date is a plain calendar day in YYYY-MM-DD form.
type IngestRow struct {
	PatientID  string   `json:"patientId" validate:"required"`
	Sex        string   `json:"sex" validate:"omitempty,oneof=M F unknown"`
	Age        null.Int `json:"age"`
	TestName   string   `json:"testName" validate:"required"`
	ResultText string   `json:"resultText"`
	Service    string   `json:"service"`
	Date       string   `json:"date" validate:"required"`
}

type FileIngestRequest struct {
	OriginalFilename string      `json:"originalFilename" validate:"required,max=256"`
	Rows             []IngestRow `json:"rows" validate:"required,min=1,dive"`
}

type StatsSummaryRequest struct {
	FileID string `json:"fileId" validate:"required"`
	// Columns narrows the summary to a subset of dataset columns. Empty means
	// every non-system column.
	Columns []string `json:"columns"`
}

type PurgeCacheRequest struct {
	Name string      `json:"name" validate:"required"`
	Key  null.String `json:"key"`
}

type ViewCreateRequest struct {
	FileID      string      `json:"fileId" validate:"required"`
	Name        string      `json:"name" validate:"required,max=128"`
	Filters     string      `json:"filters" validate:"required"`
	Description null.String `json:"description"`
}

type ViewUpdateRequest struct {
	Name        string      `json:"name" validate:"required,max=128"`
	Filters     string      `json:"filters" validate:"required"`
	Description null.String `json:"description"`
}
