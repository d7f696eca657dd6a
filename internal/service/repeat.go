package service

import (
	"context"
	"sort"
	"strconv"
	"time"

	linq "github.com/ahmetb/go-linq/v3"
	"github.com/samber/lo"
	"gopkg.in/guregu/null.v3"

	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/app/appconfig"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/constant"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/model"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/model/cache"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/pkg/lberr"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/repo"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/util"
)

// regularityCVThreshold: a repeat group whose interval coefficient of
// variation stays below it is considered periodic.
const regularityCVThreshold = 0.3

type Repeat struct {
	Config        *appconfig.Config
	LabResultRepo *repo.LabResult
}

func NewRepeat(conf *appconfig.Config, labResultRepo *repo.LabResult) *Repeat {
	return &Repeat{
		Config:        conf,
		LabResultRepo: labResultRepo,
	}
}

// Cache: repeatAnalysis#fileId:{fileId}, 24 hrs
func (s *Repeat) GetAnalysis(ctx context.Context, fileID string) (*model.RepeatAnalysis, error) {
	var analysis model.RepeatAnalysis
	calculated, err := cache.RepeatAnalysisByFileID.MutexGetSet(fileID, &analysis, func() (interface{}, error) {
		rows, err := loadDataset(ctx, s.LabResultRepo, fileID)
		if err != nil {
			return nil, err
		}
		return *CalcRepeatAnalysis(rows, s.Config.DedupRepeatRows), nil
	}, 24*time.Hour)
	if err != nil {
		return nil, err
	}
	if calculated {
		go cache.LastModifiedTime.Set(fileID+constant.CacheSep+"repeatAnalysis", time.Now(), 0)
	}
	return &analysis, nil
}

// Cache: repeatPatterns#fileId:{fileId}#{minRepeats}, 24 hrs
func (s *Repeat) GetPatterns(ctx context.Context, fileID string, minRepeats int) ([]model.RepeatPattern, error) {
	if minRepeats <= 0 {
		minRepeats = s.Config.RepeatPatternMinRepeats
	}

	var patterns []model.RepeatPattern
	key := fileID + constant.CacheSep + strconv.Itoa(minRepeats)
	_, err := cache.RepeatPatternsByFileID.MutexGetSet(key, &patterns, func() (interface{}, error) {
		rows, err := loadDataset(ctx, s.LabResultRepo, fileID)
		if err != nil {
			return nil, err
		}
		return CalcRepeatPatterns(rows, minRepeats, s.Config.DedupRepeatRows), nil
	}, 24*time.Hour)
	if err != nil {
		return nil, err
	}
	return patterns, nil
}

// GetTestHistory is the per-patient repeat trail of one test.
func (s *Repeat) GetTestHistory(ctx context.Context, fileID, testName string) ([]model.TestRepeatHistory, error) {
	rows, err := s.LabResultRepo.GetResultsByFileIDAndTest(ctx, fileID, testName)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, lberr.ErrNotFound
	}
	return CalcTestRepeatHistory(rows), nil
}

// GetPatientRepeats lists every repeated test of one patient.
func (s *Repeat) GetPatientRepeats(ctx context.Context, fileID, patientID string) ([]model.PatientRepeatedTest, error) {
	rows, err := s.LabResultRepo.GetResultsByFileIDAndPatient(ctx, fileID, patientID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, lberr.ErrNotFound
	}
	return CalcPatientRepeats(rows), nil
}

// repeatGroup is every row sharing (patient, test), chronologically ordered.
type repeatGroup struct {
	PatientID string
	Test      string
	Dates     []time.Time
	Rows      []*model.LabResult
}

func (g *repeatGroup) Occurrences() int {
	return len(g.Dates)
}

// Intervals are the day-deltas between chronologically adjacent dates of the
// group. Adjacent only, never all pairs.
func (g *repeatGroup) Intervals() []int {
	if len(g.Dates) < 2 {
		return nil
	}
	intervals := make([]int, 0, len(g.Dates)-1)
	for i := 1; i < len(g.Dates); i++ {
		intervals = append(intervals, int(g.Dates[i].Sub(g.Dates[i-1]).Hours()/24))
	}
	return intervals
}

// groupByPatientTest partitions a dataset into repeat groups, ordered by
// patient then test. dedup collapses identical (patient, test, date) rows
// into a single occurrence.
func groupByPatientTest(rows []*model.LabResult, dedup bool) []*repeatGroup {
	byKey := make(map[string]*repeatGroup)
	keys := make([]string, 0)
	for _, r := range rows {
		key := r.PatientID + combinationSep + r.TestName
		g, ok := byKey[key]
		if !ok {
			g = &repeatGroup{PatientID: r.PatientID, Test: r.TestName}
			byKey[key] = g
			keys = append(keys, key)
		}
		g.Rows = append(g.Rows, r)
		g.Dates = append(g.Dates, r.Day())
	}
	sort.Strings(keys)

	groups := make([]*repeatGroup, len(keys))
	for i, key := range keys {
		g := byKey[key]
		sort.Slice(g.Dates, func(a, b int) bool { return g.Dates[a].Before(g.Dates[b]) })
		sort.SliceStable(g.Rows, func(a, b int) bool { return g.Rows[a].Day().Before(g.Rows[b].Day()) })
		if dedup {
			g.Dates = lo.UniqBy(g.Dates, func(d time.Time) string { return d.Format("2006-01-02") })
		}
		groups[i] = g
	}
	return groups
}

// CalcRepeatAnalysis summarizes repeated orders across a dataset. dedup
// controls whether duplicate (patient, test, date) rows count as separate
// occurrences; the ingestion pipeline may or may not collapse them upstream.
func CalcRepeatAnalysis(rows []*model.LabResult, dedup bool) *model.RepeatAnalysis {
	groups := groupByPatientTest(rows, dedup)

	totalPatients := len(lo.UniqBy(rows, func(r *model.LabResult) string { return r.PatientID }))

	repeated := lo.Filter(groups, func(g *repeatGroup, _ int) bool { return g.Occurrences() > 1 })
	patientsWithRepeats := len(lo.UniqBy(repeated, func(g *repeatGroup) string { return g.PatientID }))

	repeatDistribution := make(map[int]int)
	for _, g := range groups {
		repeatDistribution[g.Occurrences()]++
	}

	analysis := &model.RepeatAnalysis{
		TotalPatients:          totalPatients,
		PatientsWithRepeats:    patientsWithRepeats,
		PatientsWithRepeatsPct: pct(patientsWithRepeats, totalPatients),
		TotalRepeatInstances:   len(repeated),
		AvgRepeatsPerPatient:   avgRepeatsPerPatient(repeated),
		MostRepeatedTests:      calcMostRepeatedTests(repeated),
		IntervalAnalysis:       calcIntervalStats(repeated),
		RepeatDistribution:     repeatDistribution,
	}

	return analysis
}

// CalcRepeatPatterns detects periodic repeat groups: at least minRepeats
// occurrences and an interval coefficient of variation below the regularity
// threshold. Sorted descending by regularity score.
func CalcRepeatPatterns(rows []*model.LabResult, minRepeats int, dedup bool) []model.RepeatPattern {
	patterns := make([]model.RepeatPattern, 0)

	for _, g := range groupByPatientTest(rows, dedup) {
		if g.Occurrences() < minRepeats {
			continue
		}
		intervals := g.Intervals()
		if len(intervals) == 0 {
			continue
		}

		intervalsF := util.FloatsFromInts(intervals)
		avg := util.Mean(intervalsF).Float64
		if avg <= 0 {
			// zero mean interval means every order fell on one day; treated
			// as infinitely irregular
			continue
		}
		std, _ := util.PopStdDev(intervalsF)
		cv := std / avg
		if cv >= regularityCVThreshold {
			continue
		}

		patterns = append(patterns, model.RepeatPattern{
			PatientID:       g.PatientID,
			Test:            g.Test,
			RepeatCount:     g.Occurrences(),
			AvgIntervalDays: avg,
			PatternType:     classifyInterval(avg),
			RegularityScore: 1 - cv,
		})
	}

	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].RegularityScore > patterns[j].RegularityScore
	})

	return patterns
}

// CalcTestRepeatHistory folds rows of one test into per-patient repeat
// trails, descending by repeat count, capped to the busiest patients.
func CalcTestRepeatHistory(rows []*model.LabResult) []model.TestRepeatHistory {
	history := make([]model.TestRepeatHistory, 0)
	for _, g := range groupByPatientTest(rows, false) {
		if g.Occurrences() < 2 {
			continue
		}
		intervals := g.Intervals()
		history = append(history, model.TestRepeatHistory{
			PatientID:       g.PatientID,
			RepeatCount:     g.Occurrences(),
			Dates:           formatDates(g.Dates),
			IntervalsDays:   intervals,
			AvgIntervalDays: util.Mean(util.FloatsFromInts(intervals)),
			Results:         repeatResults(g.Rows),
		})
	}

	sort.SliceStable(history, func(i, j int) bool {
		if history[i].RepeatCount != history[j].RepeatCount {
			return history[i].RepeatCount > history[j].RepeatCount
		}
		return history[i].PatientID < history[j].PatientID
	})

	return lo.Slice(history, 0, constant.TopRepeatHistoryPatients)
}

// CalcPatientRepeats lists the repeated tests of one patient, descending by
// repeat count.
func CalcPatientRepeats(rows []*model.LabResult) []model.PatientRepeatedTest {
	repeats := make([]model.PatientRepeatedTest, 0)
	for _, g := range groupByPatientTest(rows, false) {
		if g.Occurrences() < 2 {
			continue
		}
		intervals := g.Intervals()
		repeats = append(repeats, model.PatientRepeatedTest{
			TestName:        g.Test,
			RepeatCount:     g.Occurrences(),
			Dates:           formatDates(g.Dates),
			IntervalsDays:   intervals,
			AvgIntervalDays: util.Mean(util.FloatsFromInts(intervals)),
			Results:         repeatResults(g.Rows),
		})
	}

	sort.SliceStable(repeats, func(i, j int) bool {
		if repeats[i].RepeatCount != repeats[j].RepeatCount {
			return repeats[i].RepeatCount > repeats[j].RepeatCount
		}
		return repeats[i].TestName < repeats[j].TestName
	})

	return repeats
}

func avgRepeatsPerPatient(repeated []*repeatGroup) null.Float {
	if len(repeated) == 0 {
		return null.Float{}
	}
	perPatient := lo.CountValuesBy(repeated, func(g *repeatGroup) string { return g.PatientID })
	return util.Mean(util.FloatsFromInts(lo.Values(perPatient)))
}

func calcMostRepeatedTests(repeated []*repeatGroup) []model.RepeatedTest {
	byTest := lo.GroupBy(repeated, func(g *repeatGroup) string { return g.Test })

	tests := lo.MapToSlice(byTest, func(test string, groups []*repeatGroup) model.RepeatedTest {
		occurrences := lo.Map(groups, func(g *repeatGroup, _ int) int { return g.Occurrences() })
		return model.RepeatedTest{
			Test:                 test,
			PatientsWithRepeats:  len(groups),
			AvgRepeatsPerPatient: util.Mean(util.FloatsFromInts(occurrences)).Float64,
			MaxRepeats:           int(util.IntMax(occurrences).Int64),
		}
	})

	var mostRepeated []model.RepeatedTest
	linq.From(tests).
		OrderByDescendingT(func(t model.RepeatedTest) int { return t.PatientsWithRepeats }).
		ThenByT(func(t model.RepeatedTest) string { return t.Test }).
		Take(constant.TopRepeatedTests).
		ToSlice(&mostRepeated)
	return mostRepeated
}

// calcIntervalStats aggregates adjacent-date intervals across every repeat
// group. With no repeat group every statistic is null, never zero.
func calcIntervalStats(repeated []*repeatGroup) model.IntervalStats {
	allIntervals := make([]int, 0)
	for _, g := range repeated {
		allIntervals = append(allIntervals, g.Intervals()...)
	}

	intervalsF := util.FloatsFromInts(allIntervals)
	return model.IntervalStats{
		TotalIntervals:     len(allIntervals),
		AvgIntervalDays:    util.Mean(intervalsF),
		MedianIntervalDays: util.Median(intervalsF),
		MinIntervalDays:    util.IntMin(allIntervals),
		MaxIntervalDays:    util.IntMax(allIntervals),
		StdIntervalDays:    util.SampleStdDev(intervalsF),
		Q25IntervalDays:    util.Quantile(intervalsF, 0.25),
		Q75IntervalDays:    util.Quantile(intervalsF, 0.75),
	}
}

// classifyInterval maps an average repeat interval in days onto a coarse
// period label. Boundaries are half-open, lower bound inclusive.
func classifyInterval(days float64) string {
	switch {
	case days < 10:
		return "weekly"
	case days < 20:
		return "biweekly"
	case days < 40:
		return "monthly"
	case days < 70:
		return "bimonthly"
	case days < 100:
		return "quarterly"
	case days < 200:
		return "semiannual"
	default:
		return "annual"
	}
}

func formatDates(dates []time.Time) []string {
	return lo.Map(dates, func(d time.Time, _ int) string { return d.Format("2006-01-02") })
}

func repeatResults(rows []*model.LabResult) []model.RepeatResult {
	return lo.Map(rows, func(r *model.LabResult, _ int) model.RepeatResult {
		return model.RepeatResult{
			Date:       r.Day().Format("2006-01-02"),
			ResultText: r.ResultText,
		}
	})
}
