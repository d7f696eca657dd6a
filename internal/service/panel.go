package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	linq "github.com/ahmetb/go-linq/v3"
	"github.com/samber/lo"
	"github.com/zeebo/xxh3"

	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/app/appconfig"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/constant"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/model"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/model/cache"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/pkg/lberr"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/repo"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/util"
)

type Panel struct {
	Config        *appconfig.Config
	LabResultRepo *repo.LabResult
}

func NewPanel(conf *appconfig.Config, labResultRepo *repo.LabResult) *Panel {
	return &Panel{
		Config:        conf,
		LabResultRepo: labResultRepo,
	}
}

// Cache: panelAnalysis#fileId:{fileId}, 24 hrs
func (s *Panel) GetAnalysis(ctx context.Context, fileID string) (*model.PanelAnalysis, error) {
	var analysis model.PanelAnalysis
	calculated, err := cache.PanelAnalysisByFileID.MutexGetSet(fileID, &analysis, func() (interface{}, error) {
		rows, err := loadDataset(ctx, s.LabResultRepo, fileID)
		if err != nil {
			return nil, err
		}
		return *CalcPanelAnalysis(rows), nil
	}, 24*time.Hour)
	if err != nil {
		return nil, err
	}
	if calculated {
		go cache.LastModifiedTime.Set(fileID+constant.CacheSep+"panelAnalysis", time.Now(), 0)
	}
	return &analysis, nil
}

// GetPatientPanels is the per-patient order history drill-down.
func (s *Panel) GetPatientPanels(ctx context.Context, fileID, patientID string) ([]model.PatientPanel, error) {
	rows, err := s.LabResultRepo.GetResultsByFileIDAndPatient(ctx, fileID, patientID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, lberr.ErrNotFound
	}
	return CalcPatientPanels(rows), nil
}

func (s *Panel) GetTopCombinations(ctx context.Context, fileID string, limit int) ([]model.PanelCombination, error) {
	if limit <= 0 {
		limit = constant.TopPanelCombos
	}
	rows, err := loadDataset(ctx, s.LabResultRepo, fileID)
	if err != nil {
		return nil, err
	}
	return CalcPanelCombinations(rows, limit), nil
}

// Cache: panelTemplates#fileId:{fileId}#{minFrequency}, 24 hrs
func (s *Panel) GetTemplates(ctx context.Context, fileID string, minFrequency int) ([]model.PanelTemplate, error) {
	if minFrequency <= 0 {
		minFrequency = s.Config.PanelTemplateMinFrequency
	}

	var templates []model.PanelTemplate
	key := fileID + constant.CacheSep + strconv.Itoa(minFrequency)
	_, err := cache.PanelTemplatesByFileID.MutexGetSet(key, &templates, func() (interface{}, error) {
		rows, err := loadDataset(ctx, s.LabResultRepo, fileID)
		if err != nil {
			return nil, err
		}
		return CalcPanelTemplates(rows, minFrequency), nil
	}, 24*time.Hour)
	if err != nil {
		return nil, err
	}
	return templates, nil
}

// CalcPanelAnalysis characterizes the test bundles of a dataset: panel sizes,
// the most ordered tests, recurring combinations, unique-tests-per-day at the
// global and the patient-day granularity, and a per-service breakdown when
// the dataset carries services.
func CalcPanelAnalysis(rows []*model.LabResult) *model.PanelAnalysis {
	groups := groupByPatientDay(rows)

	sizes := make([]int, len(groups))
	sizeDistribution := make(map[int]int)
	for i, g := range groups {
		sizes[i] = len(g.Rows)
		sizeDistribution[len(g.Rows)]++
	}
	sizesF := util.FloatsFromInts(sizes)

	analysis := &model.PanelAnalysis{
		TotalPanels:         len(groups),
		AvgTestsPerPanel:    util.Mean(sizesF),
		MedianTestsPerPanel: util.Median(sizesF),
		MinTestsPerPanel:    util.IntMin(sizes),
		MaxTestsPerPanel:    util.IntMax(sizes),
		StdTestsPerPanel:    util.SampleStdDev(sizesF),
		SizeDistribution:    sizeDistribution,
		MostOrderedTests:    calcMostOrderedTests(rows),
		MostCommonPanels:    CalcPanelCombinations(rows, constant.TopPanelCombos),
		UniqueTestsPerDay:   calcUniqueTestsPerDay(rows, groups),
		ByService:           calcPanelsByService(rows),
	}

	return analysis
}

// CalcPanelCombinations returns the most frequent panel combinations. Two
// panels are the same combination iff their sorted, deduplicated test-name
// tuples are equal.
func CalcPanelCombinations(rows []*model.LabResult, limit int) []model.PanelCombination {
	counts := make(map[string]int)
	for _, g := range groupByPatientDay(rows) {
		counts[strings.Join(g.DistinctTests(), combinationSep)]++
	}

	combinations := lo.MapToSlice(counts, func(key string, count int) model.PanelCombination {
		tests := strings.Split(key, combinationSep)
		return model.PanelCombination{
			Tests:     tests,
			Count:     count,
			TestCount: len(tests),
		}
	})
	sort.Slice(combinations, func(i, j int) bool {
		if combinations[i].Count != combinations[j].Count {
			return combinations[i].Count > combinations[j].Count
		}
		return strings.Join(combinations[i].Tests, combinationSep) < strings.Join(combinations[j].Tests, combinationSep)
	})

	return lo.Slice(combinations, 0, limit)
}

// CalcPanelTemplates reports combinations recurring at least minFrequency
// times, each under an identifier derived from the combination's content so
// that reruns over unchanged data produce identical ids.
func CalcPanelTemplates(rows []*model.LabResult, minFrequency int) []model.PanelTemplate {
	counts := make(map[string]int)
	for _, g := range groupByPatientDay(rows) {
		counts[strings.Join(g.DistinctTests(), combinationSep)]++
	}

	templates := make([]model.PanelTemplate, 0)
	for key, count := range counts {
		if count < minFrequency {
			continue
		}
		tests := strings.Split(key, combinationSep)
		templates = append(templates, model.PanelTemplate{
			TemplateID: fmt.Sprintf("%016x", xxh3.HashString(key)),
			Tests:      tests,
			TestCount:  len(tests),
			Frequency:  count,
		})
	}
	sort.Slice(templates, func(i, j int) bool {
		if templates[i].Frequency != templates[j].Frequency {
			return templates[i].Frequency > templates[j].Frequency
		}
		return strings.Join(templates[i].Tests, combinationSep) < strings.Join(templates[j].Tests, combinationSep)
	})

	return templates
}

// CalcPatientPanels folds one patient's rows into their per-day order
// history, ascending by date.
func CalcPatientPanels(rows []*model.LabResult) []model.PatientPanel {
	byDay := make(map[string][]*model.LabResult)
	for _, r := range rows {
		day := r.Day().Format("2006-01-02")
		byDay[day] = append(byDay[day], r)
	}

	panels := make([]model.PatientPanel, 0, len(byDay))
	for day, dayRows := range byDay {
		sort.SliceStable(dayRows, func(i, j int) bool {
			return dayRows[i].TestName < dayRows[j].TestName
		})
		tests := lo.Map(dayRows, func(r *model.LabResult, _ int) model.PatientPanelTest {
			return model.PatientPanelTest{
				TestName:   r.TestName,
				ResultText: r.ResultText,
			}
		})
		panels = append(panels, model.PatientPanel{
			Date:      day,
			Tests:     tests,
			TestCount: len(tests),
		})
	}
	sort.Slice(panels, func(i, j int) bool {
		return panels[i].Date < panels[j].Date
	})

	return panels
}

func calcMostOrderedTests(rows []*model.LabResult) []model.TestCount {
	counts := make(map[string]int)
	for _, r := range rows {
		counts[r.TestName]++
	}
	testCounts := lo.MapToSlice(counts, func(test string, count int) model.TestCount {
		return model.TestCount{Test: test, Count: count}
	})

	var mostOrdered []model.TestCount
	linq.From(testCounts).
		OrderByDescendingT(func(tc model.TestCount) int { return tc.Count }).
		ThenByT(func(tc model.TestCount) string { return tc.Test }).
		Take(constant.TopOrderedTests).
		ToSlice(&mostOrdered)
	return mostOrdered
}

func calcUniqueTestsPerDay(rows []*model.LabResult, groups []patientDayGroup) model.UniqueTestsPerDay {
	testsByDate := make(map[string]map[string]struct{})
	for _, r := range rows {
		day := r.Day().Format("2006-01-02")
		if testsByDate[day] == nil {
			testsByDate[day] = make(map[string]struct{})
		}
		testsByDate[day][r.TestName] = struct{}{}
	}

	dayCounts := lo.MapToSlice(testsByDate, func(day string, tests map[string]struct{}) model.DayUniqueTests {
		return model.DayUniqueTests{Date: day, UniqueTestsCount: len(tests)}
	})
	globalCounts := lo.Map(dayCounts, func(d model.DayUniqueTests, _ int) int { return d.UniqueTestsCount })
	globalCountsF := util.FloatsFromInts(globalCounts)

	var topDays []model.DayUniqueTests
	linq.From(dayCounts).
		OrderByDescendingT(func(d model.DayUniqueTests) int { return d.UniqueTestsCount }).
		ThenByT(func(d model.DayUniqueTests) string { return d.Date }).
		Take(constant.TopUniqueTestDays).
		ToSlice(&topDays)

	perGroupCounts := lo.Map(groups, func(g patientDayGroup, _ int) int { return len(g.DistinctTests()) })
	perGroupCountsF := util.FloatsFromInts(perGroupCounts)

	return model.UniqueTestsPerDay{
		GlobalByDate: model.GlobalUniqueTestStats{
			AvgUniqueTestsPerDay:    util.Mean(globalCountsF),
			MedianUniqueTestsPerDay: util.Median(globalCountsF),
			MinUniqueTestsPerDay:    util.IntMin(globalCounts),
			MaxUniqueTestsPerDay:    util.IntMax(globalCounts),
			TotalUniqueDays:         len(dayCounts),
		},
		PerPatientDay: model.PatientDayUniqueTestStats{
			AvgUniqueTests:    util.Mean(perGroupCountsF),
			MedianUniqueTests: util.Median(perGroupCountsF),
			MinUniqueTests:    util.IntMin(perGroupCounts),
			MaxUniqueTests:    util.IntMax(perGroupCounts),
		},
		TopDays: topDays,
	}
}

// calcPanelsByService degrades gracefully on datasets without services: rows
// with an empty service are not partitioned, and a dataset holding only such
// rows yields no breakdown at all.
func calcPanelsByService(rows []*model.LabResult) []model.ServicePanelStats {
	byService := make(map[string][]*model.LabResult)
	for _, r := range rows {
		if r.Service == "" {
			continue
		}
		byService[r.Service] = append(byService[r.Service], r)
	}
	if len(byService) == 0 {
		return nil
	}

	stats := make([]model.ServicePanelStats, 0, len(byService))
	for service, serviceRows := range byService {
		groups := groupByPatientDay(serviceRows)
		sizes := lo.Map(groups, func(g patientDayGroup, _ int) int { return len(g.Rows) })
		uniqueTests := lo.Uniq(lo.Map(serviceRows, func(r *model.LabResult, _ int) string { return r.TestName }))

		stats = append(stats, model.ServicePanelStats{
			Service:          service,
			TotalTests:       len(serviceRows),
			TotalPanels:      len(groups),
			AvgTestsPerPanel: util.Mean(util.FloatsFromInts(sizes)),
			UniqueTests:      len(uniqueTests),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].TotalTests != stats[j].TotalTests {
			return stats[i].TotalTests > stats[j].TotalTests
		}
		return stats[i].Service < stats[j].Service
	})

	return stats
}
