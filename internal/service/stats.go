package service

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"gopkg.in/guregu/null.v3"

	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/constant"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/model"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/model/cache"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/pkg/lberr"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/repo"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/util"
)

// numericResultPattern matches a plain decimal number with an optional sign:
// no exponents, no thousands separators. Free-text result values matching it
// are classified as numeric-looking.
var numericResultPattern = regexp.MustCompile(`^[+-]?\d+\.?\d*$`)

type columnKind int

const (
	columnKindNumeric columnKind = iota
	columnKindCategorical
)

// columnAccessor is the typed extractor of one dataset column. The boolean
// reports presence: a false means the value is missing in that row.
type columnAccessor struct {
	kind    columnKind
	numeric func(r *model.LabResult) (float64, bool)
	text    func(r *model.LabResult) (string, bool)
}

// DatasetColumns fixes the column iteration order of every summary.
var DatasetColumns = []string{
	constant.ColumnPatientID,
	constant.ColumnSex,
	constant.ColumnAge,
	constant.ColumnTestName,
	constant.ColumnResultText,
	constant.ColumnService,
	constant.ColumnDate,
}

// columnAccessors enumerates the dataset contract: column access happens
// through this table only, and unknown names are rejected instead of being
// silently treated as all-null.
var columnAccessors = map[string]columnAccessor{
	constant.ColumnPatientID: {
		kind: columnKindCategorical,
		text: func(r *model.LabResult) (string, bool) {
			return r.PatientID, r.PatientID != ""
		},
	},
	constant.ColumnSex: {
		kind: columnKindCategorical,
		text: func(r *model.LabResult) (string, bool) {
			return r.Sex, r.Sex != ""
		},
	},
	constant.ColumnAge: {
		kind: columnKindNumeric,
		numeric: func(r *model.LabResult) (float64, bool) {
			if !r.Age.Valid {
				return 0, false
			}
			return float64(r.Age.Int64), true
		},
	},
	constant.ColumnTestName: {
		kind: columnKindCategorical,
		text: func(r *model.LabResult) (string, bool) {
			return r.TestName, r.TestName != ""
		},
	},
	constant.ColumnResultText: {
		kind: columnKindCategorical,
		text: func(r *model.LabResult) (string, bool) {
			return r.ResultText, r.ResultText != ""
		},
	},
	constant.ColumnService: {
		kind: columnKindCategorical,
		text: func(r *model.LabResult) (string, bool) {
			return r.Service, r.Service != ""
		},
	},
	constant.ColumnDate: {
		kind: columnKindCategorical,
		text: func(r *model.LabResult) (string, bool) {
			if r.Date.IsZero() {
				return "", false
			}
			return r.Day().Format("2006-01-02"), true
		},
	},
}

type Stats struct {
	LabResultRepo *repo.LabResult
}

func NewStats(labResultRepo *repo.LabResult) *Stats {
	return &Stats{
		LabResultRepo: labResultRepo,
	}
}

// Cache: statsSummary#fileId:{fileId}, 24 hrs; column-narrowed summaries are
// computed fresh.
func (s *Stats) GetSummary(ctx context.Context, req *model.StatsSummaryRequest) (*model.StatsSummary, error) {
	if len(req.Columns) > 0 {
		rows, err := loadDataset(ctx, s.LabResultRepo, req.FileID)
		if err != nil {
			return nil, err
		}
		return CalcStatsSummary(rows, req.Columns)
	}

	var summary model.StatsSummary
	calculated, err := cache.StatsSummaryByFileID.MutexGetSet(req.FileID, &summary, func() (interface{}, error) {
		rows, err := loadDataset(ctx, s.LabResultRepo, req.FileID)
		if err != nil {
			return nil, err
		}
		result, err := CalcStatsSummary(rows, nil)
		if err != nil {
			return nil, err
		}
		return *result, nil
	}, 24*time.Hour)
	if err != nil {
		return nil, err
	}
	if calculated {
		go cache.LastModifiedTime.Set(req.FileID+constant.CacheSep+"statsSummary", time.Now(), 0)
	}
	return &summary, nil
}

// Cache: columnStats#fileId|column:{fileId}#{column}, 24 hrs
func (s *Stats) GetColumnStats(ctx context.Context, fileID, column string) (*model.ColumnStats, error) {
	if _, ok := columnAccessors[column]; !ok {
		return nil, lberr.ErrColumnUnknown.Msg("unknown column %q", column)
	}

	var stats model.ColumnStats
	key := fileID + constant.CacheSep + column
	_, err := cache.ColumnStatsByFileIDAndName.MutexGetSet(key, &stats, func() (interface{}, error) {
		rows, err := loadDataset(ctx, s.LabResultRepo, fileID)
		if err != nil {
			return nil, err
		}
		result, err := CalcColumnStats(rows, column)
		if err != nil {
			return nil, err
		}
		return *result, nil
	}, 24*time.Hour)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Cache: missingSummary#fileId:{fileId}, 24 hrs
func (s *Stats) GetMissingSummary(ctx context.Context, fileID string) ([]model.MissingColumn, error) {
	var missing []model.MissingColumn
	_, err := cache.MissingSummaryByFileID.MutexGetSet(fileID, &missing, func() (interface{}, error) {
		rows, err := loadDataset(ctx, s.LabResultRepo, fileID)
		if err != nil {
			return nil, err
		}
		return CalcMissingSummary(rows), nil
	}, 24*time.Hour)
	if err != nil {
		return nil, err
	}
	return missing, nil
}

// CalcStatsSummary computes the full descriptive summary over a dataset.
// columns narrows the summary; a requested column outside the dataset
// contract is an input-contract violation and yields an error.
func CalcStatsSummary(rows []*model.LabResult, columns []string) (*model.StatsSummary, error) {
	if len(columns) == 0 {
		columns = DatasetColumns
	}

	summary := &model.StatsSummary{
		Overview: model.DatasetOverview{
			TotalRows:    len(rows),
			TotalColumns: len(DatasetColumns),
		},
		NumericStats:     map[string]*model.NumericColumnStats{},
		CategoricalStats: map[string]*model.CategoricalColumnStats{},
		MissingSummary:   CalcMissingSummary(rows),
	}

	for _, column := range columns {
		accessor, ok := columnAccessors[column]
		if !ok {
			return nil, lberr.ErrColumnUnknown.Msg("unknown column %q", column)
		}

		switch accessor.kind {
		case columnKindNumeric:
			summary.NumericStats[column] = calcNumericColumnStats(rows, accessor)
		case columnKindCategorical:
			stats := calcCategoricalColumnStats(rows, accessor)
			if column == constant.ColumnResultText {
				stats.QualitativeRates = calcResultTextBreakdown(rows, accessor)
			}
			summary.CategoricalStats[column] = stats
		}
	}

	return summary, nil
}

// CalcColumnStats computes the detailed single-column view.
func CalcColumnStats(rows []*model.LabResult, column string) (*model.ColumnStats, error) {
	accessor, ok := columnAccessors[column]
	if !ok {
		return nil, lberr.ErrColumnUnknown.Msg("unknown column %q", column)
	}

	if accessor.kind == columnKindNumeric {
		return &model.ColumnStats{
			Type:    "numeric",
			Numeric: calcNumericColumnStats(rows, accessor),
		}, nil
	}

	stats := calcCategoricalColumnStats(rows, accessor)
	if column == constant.ColumnResultText {
		stats.QualitativeRates = calcResultTextBreakdown(rows, accessor)
	}
	return &model.ColumnStats{
		Type:        "categorical",
		Categorical: stats,
	}, nil
}

// CalcMissingSummary reports, for every column with at least one missing
// value, the missing count and percentage, sorted descending by percentage.
func CalcMissingSummary(rows []*model.LabResult) []model.MissingColumn {
	missing := make([]model.MissingColumn, 0)

	for _, column := range DatasetColumns {
		accessor := columnAccessors[column]
		missingCount := 0
		for _, r := range rows {
			if !columnPresent(r, accessor) {
				missingCount++
			}
		}
		if missingCount == 0 {
			continue
		}
		missing = append(missing, model.MissingColumn{
			Column:       column,
			MissingCount: missingCount,
			MissingPct:   pct(missingCount, len(rows)),
			PresentCount: len(rows) - missingCount,
		})
	}

	sort.SliceStable(missing, func(i, j int) bool {
		if missing[i].MissingPct.Float64 != missing[j].MissingPct.Float64 {
			return missing[i].MissingPct.Float64 > missing[j].MissingPct.Float64
		}
		return missing[i].Column < missing[j].Column
	})

	return missing
}

func columnPresent(r *model.LabResult, accessor columnAccessor) bool {
	if accessor.kind == columnKindNumeric {
		_, ok := accessor.numeric(r)
		return ok
	}
	_, ok := accessor.text(r)
	return ok
}

func calcNumericColumnStats(rows []*model.LabResult, accessor columnAccessor) *model.NumericColumnStats {
	values := make([]float64, 0, len(rows))
	for _, r := range rows {
		if v, ok := accessor.numeric(r); ok {
			values = append(values, v)
		}
	}
	missing := len(rows) - len(values)

	return &model.NumericColumnStats{
		Count:      len(values),
		Missing:    missing,
		MissingPct: pct(missing, len(rows)),
		Mean:       util.Mean(values),
		Std:        util.SampleStdDev(values),
		Min:        util.Min(values),
		Max:        util.Max(values),
		Median:     util.Median(values),
		Q25:        util.Quantile(values, 0.25),
		Q75:        util.Quantile(values, 0.75),
		Skew:       util.Skewness(values),
		Kurtosis:   util.Kurtosis(values),
	}
}

func calcCategoricalColumnStats(rows []*model.LabResult, accessor columnAccessor) *model.CategoricalColumnStats {
	values := make([]string, 0, len(rows))
	for _, r := range rows {
		if v, ok := accessor.text(r); ok {
			values = append(values, v)
		}
	}
	missing := len(rows) - len(values)
	distribution := valueDistribution(values)

	stats := &model.CategoricalColumnStats{
		Count:        len(values),
		Missing:      missing,
		MissingPct:   pct(missing, len(rows)),
		Unique:       len(lo.Uniq(values)),
		Distribution: lo.Slice(distribution, 0, constant.TopValueDistrib),
	}
	if len(distribution) > 0 {
		stats.TopValue = null.StringFrom(distribution[0].Value)
		stats.TopFreq = distribution[0].Count
		stats.TopFreqPct = pct(distribution[0].Count, len(values))
	}
	return stats
}

func calcResultTextBreakdown(rows []*model.LabResult, accessor columnAccessor) *model.ResultTextBreakdown {
	numericValues := make([]float64, 0)
	textValues := make([]string, 0)
	for _, r := range rows {
		v, ok := accessor.text(r)
		if !ok {
			continue
		}
		if numericResultPattern.MatchString(strings.TrimSpace(v)) {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				textValues = append(textValues, v)
				continue
			}
			numericValues = append(numericValues, f)
		} else {
			textValues = append(textValues, v)
		}
	}

	totalValid := len(numericValues) + len(textValues)
	breakdown := &model.ResultTextBreakdown{
		NumericCount: len(numericValues),
		TextCount:    len(textValues),
		MixedType:    len(numericValues) > 0 && len(textValues) > 0,
	}
	if totalValid > 0 {
		breakdown.NumericRate = float64(len(numericValues)) / float64(totalValid) * 100
		breakdown.TextRate = float64(len(textValues)) / float64(totalValid) * 100
	}

	if len(numericValues) > 0 {
		breakdown.NumericStats = &model.ResultTextNumericStats{
			Mean:   util.Mean(numericValues),
			Std:    util.SampleStdDev(numericValues),
			Min:    util.Min(numericValues),
			Max:    util.Max(numericValues),
			Median: util.Median(numericValues),
		}
	}
	if len(textValues) > 0 {
		distribution := valueDistribution(textValues)
		breakdown.TextStats = &model.ResultTextTextStats{
			UniqueTextValues: len(lo.Uniq(textValues)),
			TopTextValues:    lo.Slice(distribution, 0, constant.TopValueDistrib),
		}
	}

	return breakdown
}

// valueDistribution counts values and orders them descending by count, ties
// broken by value, so the top entry is stable across runs.
func valueDistribution(values []string) []model.ValueCount {
	counts := lo.CountValues(values)
	distribution := lo.MapToSlice(counts, func(value string, count int) model.ValueCount {
		return model.ValueCount{Value: value, Count: count}
	})
	sort.Slice(distribution, func(i, j int) bool {
		if distribution[i].Count != distribution[j].Count {
			return distribution[i].Count > distribution[j].Count
		}
		return distribution[i].Value < distribution[j].Value
	})
	return distribution
}

// pct is a percentage with an explicit null at the 0/0 boundary.
func pct(part, total int) null.Float {
	if total == 0 {
		return null.Float{}
	}
	return null.FloatFrom(float64(part) / float64(total) * 100)
}
