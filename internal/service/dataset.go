package service

import (
	"context"
	"sort"

	"github.com/samber/lo"

	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/model"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/pkg/lberr"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/repo"
)

// combinationSep joins test names into combination keys. It never occurs in
// real test names.
const combinationSep = "\x1f"

// loadDataset materializes the full dataset of one upload identity. The
// analysis services are pure transforms over the returned slice and never
// filter by file id themselves. Zero rows for a requested identity is a
// caller-facing not-found, not an analyzable dataset.
func loadDataset(ctx context.Context, r *repo.LabResult, fileID string) ([]*model.LabResult, error) {
	rows, err := r.GetResultsByFileID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, lberr.ErrNotFound
	}
	return rows, nil
}

// patientDayGroup is one panel: every row of one patient on one calendar day.
type patientDayGroup struct {
	PatientID string
	Date      string
	Rows      []*model.LabResult

	distinctTests []string
}

// DistinctTests is the sorted, deduplicated test-name tuple of the group,
// the canonical combination key of the panel.
func (g *patientDayGroup) DistinctTests() []string {
	if g.distinctTests == nil {
		tests := lo.Uniq(lo.Map(g.Rows, func(r *model.LabResult, _ int) string { return r.TestName }))
		sort.Strings(tests)
		g.distinctTests = tests
	}
	return g.distinctTests
}

// groupByPatientDay partitions a dataset into panels, ordered by patient then
// date so that downstream enumeration is deterministic regardless of the
// input row order.
func groupByPatientDay(rows []*model.LabResult) []patientDayGroup {
	byKey := make(map[string]*patientDayGroup)
	keys := make([]string, 0)
	for _, r := range rows {
		day := r.Day().Format("2006-01-02")
		key := r.PatientID + combinationSep + day
		g, ok := byKey[key]
		if !ok {
			g = &patientDayGroup{PatientID: r.PatientID, Date: day}
			byKey[key] = g
			keys = append(keys, key)
		}
		g.Rows = append(g.Rows, r)
	}
	sort.Strings(keys)

	groups := make([]patientDayGroup, len(keys))
	for i, key := range keys {
		groups[i] = *byKey[key]
	}
	return groups
}
