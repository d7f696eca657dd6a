package service

import (
	"time"

	"gopkg.in/guregu/null.v3"

	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/model"
)

// row builds one lab result for engine fixtures. Only the columns every
// engine requires are positional; the rest are options.
func row(patient, test, date string, opts ...func(*model.LabResult)) *model.LabResult {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	r := &model.LabResult{
		PatientID: patient,
		Sex:       "unknown",
		TestName:  test,
		Date:      d,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func withResult(text string) func(*model.LabResult) {
	return func(r *model.LabResult) { r.ResultText = text }
}

func withService(service string) func(*model.LabResult) {
	return func(r *model.LabResult) { r.Service = service }
}

func withAge(age int64) func(*model.LabResult) {
	return func(r *model.LabResult) { r.Age = null.IntFrom(age) }
}

func withSex(sex string) func(*model.LabResult) {
	return func(r *model.LabResult) { r.Sex = sex }
}
