package model

import (
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

// LabResult is a single lab-test order outcome: one test ordered for one
// patient on one calendar day, within one uploaded file. A dataset, as
// consumed by the analysis services, is the full slice of LabResults
// sharing a FileID; rows are never mutated after ingestion.
type LabResult struct {
	bun.BaseModel `bun:"lab_results,alias:lr"`

	ResultID   int        `bun:",pk,autoincrement" json:"id"`
	FileID     string     `json:"fileId"`
	PatientID  string     `json:"patientId"`
	Sex        string     `json:"sex"`
	Age        null.Int   `json:"age"`
	TestName   string     `json:"testName"`
	ResultText string     `json:"resultText"`
	Service    string     `json:"service"`
	Date       time.Time  `bun:"type:date" json:"date"`
	CreatedAt  *time.Time `json:"createdAt"`
}

// Day returns the calendar-day key of the row, discarding any time-of-day
// component the driver may have scanned.
func (r *LabResult) Day() time.Time {
	return time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(), 0, 0, 0, 0, time.UTC)
}
