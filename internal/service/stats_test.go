package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/constant"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/model"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/pkg/lberr"
)

func TestCalcStatsSummaryMixedResultText(t *testing.T) {
	rows := []*model.LabResult{
		row("p1", "Glucose", "2024-01-01", withResult("3.4")),
		row("p1", "Covid", "2024-01-01", withResult("positive")),
		row("p2", "Glucose", "2024-01-02", withResult("7")),
		row("p2", "Covid", "2024-01-02", withResult("negative")),
	}

	stats, err := CalcColumnStats(rows, constant.ColumnResultText)
	require.NoError(t, err)
	require.Equal(t, "categorical", stats.Type)
	require.NotNil(t, stats.Categorical.QualitativeRates)

	rates := stats.Categorical.QualitativeRates
	assert.Equal(t, 2, rates.NumericCount)
	assert.Equal(t, 2, rates.TextCount)
	assert.True(t, rates.MixedType)
	assert.InDelta(t, 50, rates.NumericRate, 1e-9)
	assert.InDelta(t, 50, rates.TextRate, 1e-9)

	require.NotNil(t, rates.NumericStats)
	assert.InDelta(t, 5.2, rates.NumericStats.Mean.Float64, 1e-9)
	assert.InDelta(t, 3.4, rates.NumericStats.Min.Float64, 1e-9)
	assert.InDelta(t, 7, rates.NumericStats.Max.Float64, 1e-9)

	require.NotNil(t, rates.TextStats)
	assert.Equal(t, 2, rates.TextStats.UniqueTextValues)
}

func TestCalcStatsSummaryEmptyDataset(t *testing.T) {
	summary, err := CalcStatsSummary(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Overview.TotalRows)
	assert.Empty(t, summary.MissingSummary)

	age := summary.NumericStats[constant.ColumnAge]
	require.NotNil(t, age)
	assert.Equal(t, 0, age.Count)
	assert.False(t, age.MissingPct.Valid, "0/0 missing pct must be null, not a division error")
	assert.False(t, age.Mean.Valid)
	assert.False(t, age.Std.Valid)

	sex := summary.CategoricalStats[constant.ColumnSex]
	require.NotNil(t, sex)
	assert.False(t, sex.TopValue.Valid)
	assert.Empty(t, sex.Distribution)
}

func TestCalcStatsSummaryMissingnessComplement(t *testing.T) {
	rows := []*model.LabResult{
		row("p1", "CBC", "2024-01-01", withAge(41), withService("hematology")),
		row("p2", "CBC", "2024-01-02"),
		row("p3", "TSH", "2024-01-03", withAge(57)),
	}

	summary, err := CalcStatsSummary(rows, nil)
	require.NoError(t, err)

	total := summary.Overview.TotalRows
	for column, stats := range summary.NumericStats {
		assert.Equal(t, total, stats.Count+stats.Missing, "column %s", column)
	}
	for column, stats := range summary.CategoricalStats {
		assert.Equal(t, total, stats.Count+stats.Missing, "column %s", column)
	}

	// age is missing once, service twice, result_text thrice
	byColumn := map[string]model.MissingColumn{}
	for _, mc := range summary.MissingSummary {
		byColumn[mc.Column] = mc
	}
	require.Len(t, byColumn, 3)
	assert.Equal(t, 1, byColumn[constant.ColumnAge].MissingCount)
	assert.Equal(t, 2, byColumn[constant.ColumnService].MissingCount)
	assert.Equal(t, 3, byColumn[constant.ColumnResultText].MissingCount)

	// sorted descending by missing percentage
	assert.Equal(t, constant.ColumnResultText, summary.MissingSummary[0].Column)
	assert.Equal(t, constant.ColumnService, summary.MissingSummary[1].Column)
	assert.Equal(t, constant.ColumnAge, summary.MissingSummary[2].Column)
}

func TestCalcStatsSummaryNumericAge(t *testing.T) {
	rows := []*model.LabResult{
		row("p1", "CBC", "2024-01-01", withAge(10)),
		row("p2", "CBC", "2024-01-02", withAge(20)),
		row("p3", "CBC", "2024-01-03", withAge(30)),
		row("p4", "CBC", "2024-01-04", withAge(40)),
	}

	summary, err := CalcStatsSummary(rows, []string{constant.ColumnAge})
	require.NoError(t, err)

	age := summary.NumericStats[constant.ColumnAge]
	require.NotNil(t, age)
	assert.Equal(t, 4, age.Count)
	assert.InDelta(t, 25, age.Mean.Float64, 1e-9)
	assert.InDelta(t, 25, age.Median.Float64, 1e-9)
	assert.InDelta(t, 17.5, age.Q25.Float64, 1e-9)
	assert.InDelta(t, 32.5, age.Q75.Float64, 1e-9)
	assert.InDelta(t, 12.909944487358056, age.Std.Float64, 1e-9)
	assert.True(t, age.Skew.Valid)
	assert.True(t, age.Kurtosis.Valid)
}

func TestCalcStatsSummaryUnknownColumn(t *testing.T) {
	rows := []*model.LabResult{
		row("p1", "CBC", "2024-01-01"),
	}

	_, err := CalcStatsSummary(rows, []string{"bogus"})
	require.Error(t, err)
	e, ok := err.(*lberr.LabError)
	require.True(t, ok)
	assert.Equal(t, lberr.CodeColumnUnknown, e.ErrorCode)

	_, err = CalcColumnStats(rows, "bogus")
	require.Error(t, err)
}

func TestCalcStatsSummaryTopValueTieBreak(t *testing.T) {
	rows := []*model.LabResult{
		row("p1", "CBC", "2024-01-01", withSex("M")),
		row("p2", "CBC", "2024-01-02", withSex("F")),
	}

	summary, err := CalcStatsSummary(rows, []string{constant.ColumnSex})
	require.NoError(t, err)

	sex := summary.CategoricalStats[constant.ColumnSex]
	require.NotNil(t, sex)
	assert.Equal(t, "F", sex.TopValue.String)
	assert.Equal(t, 1, sex.TopFreq)
	assert.Equal(t, 2, sex.Unique)
}

func TestCalcStatsSummaryResultTextNumericPattern(t *testing.T) {
	// plain decimals with an optional sign are numeric-looking; exponents,
	// thousands separators and malformed decimals are text
	rows := []*model.LabResult{
		row("p1", "A", "2024-01-01", withResult("-2.5")),
		row("p1", "B", "2024-01-01", withResult("+7")),
		row("p1", "C", "2024-01-01", withResult("3.4")),
		row("p2", "A", "2024-01-02", withResult("1e5")),
		row("p2", "B", "2024-01-02", withResult("1,000")),
		row("p2", "C", "2024-01-02", withResult("3.4.5")),
	}

	stats, err := CalcColumnStats(rows, constant.ColumnResultText)
	require.NoError(t, err)
	require.NotNil(t, stats.Categorical.QualitativeRates)

	rates := stats.Categorical.QualitativeRates
	assert.Equal(t, 3, rates.NumericCount)
	assert.Equal(t, 3, rates.TextCount)
	assert.True(t, rates.MixedType)

	require.NotNil(t, rates.NumericStats)
	assert.InDelta(t, -2.5, rates.NumericStats.Min.Float64, 1e-9)
	assert.InDelta(t, 7, rates.NumericStats.Max.Float64, 1e-9)
}

func TestCalcStatsSummaryIdempotent(t *testing.T) {
	rows := []*model.LabResult{
		row("p1", "CBC", "2024-01-01", withAge(33), withResult("5.1")),
		row("p1", "TSH", "2024-01-01", withResult("normal")),
		row("p2", "CBC", "2024-01-05", withAge(61)),
	}

	first, err := CalcStatsSummary(rows, nil)
	require.NoError(t, err)
	second, err := CalcStatsSummary(rows, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
