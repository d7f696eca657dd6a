package service

import (
	"context"
	"sort"
	"strings"
	"time"

	linq "github.com/ahmetb/go-linq/v3"
	"github.com/samber/lo"

	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/app/appconfig"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/constant"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/model"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/model/cache"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/pkg/lberr"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/repo"
)

type CoOrder struct {
	Config        *appconfig.Config
	LabResultRepo *repo.LabResult
}

func NewCoOrder(conf *appconfig.Config, labResultRepo *repo.LabResult) *CoOrder {
	return &CoOrder{
		Config:        conf,
		LabResultRepo: labResultRepo,
	}
}

// Cache: coOrderAnalysis#fileId:{fileId}, 24 hrs; only the default topN is
// cached.
func (s *CoOrder) GetAnalysis(ctx context.Context, fileID string, topN int) (*model.CoOrderAnalysis, error) {
	if topN <= 0 {
		topN = s.Config.CoOrderTopPairs
	}
	if topN != s.Config.CoOrderTopPairs {
		rows, err := loadDataset(ctx, s.LabResultRepo, fileID)
		if err != nil {
			return nil, err
		}
		return CalcCoOrderAnalysis(rows, topN), nil
	}

	var analysis model.CoOrderAnalysis
	calculated, err := cache.CoOrderAnalysisByFileID.MutexGetSet(fileID, &analysis, func() (interface{}, error) {
		rows, err := loadDataset(ctx, s.LabResultRepo, fileID)
		if err != nil {
			return nil, err
		}
		return *CalcCoOrderAnalysis(rows, topN), nil
	}, 24*time.Hour)
	if err != nil {
		return nil, err
	}
	if calculated {
		go cache.LastModifiedTime.Set(fileID+constant.CacheSep+"coOrderAnalysis", time.Now(), 0)
	}
	return &analysis, nil
}

// GetMatrix builds the co-occurrence matrix over the full test universe of
// the dataset, or over a caller-supplied subset. Only the full matrix is
// cached.
func (s *CoOrder) GetMatrix(ctx context.Context, fileID string, tests []string) (*model.CoOccurrenceMatrix, error) {
	if len(tests) > 0 {
		rows, err := loadDataset(ctx, s.LabResultRepo, fileID)
		if err != nil {
			return nil, err
		}
		return CalcCoOccurrenceMatrix(rows, tests), nil
	}

	var matrix model.CoOccurrenceMatrix
	_, err := cache.CoOrderMatrixByFileID.MutexGetSet(fileID, &matrix, func() (interface{}, error) {
		rows, err := loadDataset(ctx, s.LabResultRepo, fileID)
		if err != nil {
			return nil, err
		}
		return *CalcCoOccurrenceMatrix(rows, nil), nil
	}, 24*time.Hour)
	if err != nil {
		return nil, err
	}
	return &matrix, nil
}

// GetServiceCoOrder is the single-service drill-down.
func (s *CoOrder) GetServiceCoOrder(ctx context.Context, fileID, serviceName string) (*model.ServiceCoOrder, error) {
	rows, err := s.LabResultRepo.GetResultsByFileIDAndService(ctx, fileID, serviceName)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, lberr.ErrNotFound
	}
	return &model.ServiceCoOrder{
		Service:    serviceName,
		TotalTests: len(rows),
		TopPairs:   CalcTestPairs(rows, constant.TopOrderedTests),
	}, nil
}

// CalcCoOrderAnalysis summarizes pairwise co-ordering across a dataset.
func CalcCoOrderAnalysis(rows []*model.LabResult, topN int) *model.CoOrderAnalysis {
	return &model.CoOrderAnalysis{
		TotalTests: len(rows),
		TopPairs:   CalcTestPairs(rows, topN),
		ByService:  calcCoOrderByService(rows),
	}
}

// CalcTestPairs enumerates, for every (patient, date) group with at least two
// distinct tests, all unordered pairs among the group's sorted distinct test
// names, and returns the topN highest-count pairs. Pairs are canonicalized
// with Test1 < Test2; a single-test group never contributes.
func CalcTestPairs(rows []*model.LabResult, topN int) []model.TestPair {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, g := range groupByPatientDay(rows) {
		tests := g.DistinctTests()
		if len(tests) < 2 {
			continue
		}
		for i := 0; i < len(tests); i++ {
			for j := i + 1; j < len(tests); j++ {
				key := tests[i] + combinationSep + tests[j]
				if _, ok := counts[key]; !ok {
					order = append(order, key)
				}
				counts[key]++
			}
		}
	}

	// stable order: count descending, ties by first canonical enumeration
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	pairs := make([]model.TestPair, 0, len(order))
	for _, key := range lo.Slice(order, 0, topN) {
		t1, t2, _ := strings.Cut(key, combinationSep)
		pairs = append(pairs, model.TestPair{Test1: t1, Test2: t2, Count: counts[key]})
	}
	return pairs
}

// CalcCoOccurrenceMatrix builds a symmetric matrix over tests (the dataset's
// full sorted test universe when nil) counting the (patient, date) groups
// containing both tests of each cell. The diagonal stays zero.
func CalcCoOccurrenceMatrix(rows []*model.LabResult, tests []string) *model.CoOccurrenceMatrix {
	if len(tests) == 0 {
		tests = lo.Uniq(lo.Map(rows, func(r *model.LabResult, _ int) string { return r.TestName }))
		sort.Strings(tests)
	}
	index := make(map[string]int, len(tests))
	for i, t := range tests {
		index[t] = i
	}

	matrix := make([][]int, len(tests))
	for i := range matrix {
		matrix[i] = make([]int, len(tests))
	}

	for _, g := range groupByPatientDay(rows) {
		inScope := lo.Filter(g.DistinctTests(), func(t string, _ int) bool {
			_, ok := index[t]
			return ok
		})
		for i := 0; i < len(inScope); i++ {
			for j := i + 1; j < len(inScope); j++ {
				a, b := index[inScope[i]], index[inScope[j]]
				matrix[a][b]++
				matrix[b][a]++
			}
		}
	}

	return &model.CoOccurrenceMatrix{
		Tests:  tests,
		Matrix: matrix,
	}
}

// calcCoOrderByService partitions rows by service and reports the top pairs
// and panel multiplicity within each partition, descending by row count.
// Rows without a service are not partitioned.
func calcCoOrderByService(rows []*model.LabResult) []model.ServiceCoOrderStats {
	byService := lo.GroupBy(
		lo.Filter(rows, func(r *model.LabResult, _ int) bool { return r.Service != "" }),
		func(r *model.LabResult) string { return r.Service },
	)

	stats := lo.MapToSlice(byService, func(service string, serviceRows []*model.LabResult) model.ServiceCoOrderStats {
		multiTestDays := lo.CountBy(groupByPatientDay(serviceRows), func(g patientDayGroup) bool {
			return len(g.Rows) > 1
		})
		return model.ServiceCoOrderStats{
			Service:               service,
			TotalTests:            len(serviceRows),
			DaysWithMultipleTests: multiTestDays,
			TopPairs:              CalcTestPairs(serviceRows, constant.TopServicePairs),
		}
	})

	var ordered []model.ServiceCoOrderStats
	linq.From(stats).
		OrderByDescendingT(func(s model.ServiceCoOrderStats) int { return s.TotalTests }).
		ThenByT(func(s model.ServiceCoOrderStats) string { return s.Service }).
		ToSlice(&ordered)
	return ordered
}
