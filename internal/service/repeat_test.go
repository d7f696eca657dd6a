package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/model"
)

func TestCalcRepeatAnalysisMonthlyRepeat(t *testing.T) {
	rows := []*model.LabResult{
		row("p1", "TSH", "2024-01-01"),
		row("p1", "TSH", "2024-02-01"),
		row("p1", "TSH", "2024-03-03"),
	}

	analysis := CalcRepeatAnalysis(rows, false)

	assert.Equal(t, 1, analysis.TotalPatients)
	assert.Equal(t, 1, analysis.PatientsWithRepeats)
	assert.InDelta(t, 100, analysis.PatientsWithRepeatsPct.Float64, 1e-9)
	assert.Equal(t, 1, analysis.TotalRepeatInstances)
	assert.InDelta(t, 1, analysis.AvgRepeatsPerPatient.Float64, 1e-9)

	require.Len(t, analysis.MostRepeatedTests, 1)
	most := analysis.MostRepeatedTests[0]
	assert.Equal(t, "TSH", most.Test)
	assert.Equal(t, 1, most.PatientsWithRepeats)
	assert.InDelta(t, 3, most.AvgRepeatsPerPatient, 1e-9)
	assert.Equal(t, 3, most.MaxRepeats)

	// 2024-01-01 → 2024-02-01 → 2024-03-03 are exactly 31 days apart twice
	intervals := analysis.IntervalAnalysis
	assert.Equal(t, 2, intervals.TotalIntervals)
	assert.InDelta(t, 31, intervals.AvgIntervalDays.Float64, 1e-9)
	assert.EqualValues(t, 31, intervals.MinIntervalDays.Int64)
	assert.EqualValues(t, 31, intervals.MaxIntervalDays.Int64)

	assert.Equal(t, map[int]int{3: 1}, analysis.RepeatDistribution)
}

func TestCalcRepeatAnalysisNoRepeats(t *testing.T) {
	rows := []*model.LabResult{
		row("p1", "CBC", "2024-01-01"),
		row("p2", "TSH", "2024-01-02"),
	}

	analysis := CalcRepeatAnalysis(rows, false)

	assert.Equal(t, 2, analysis.TotalPatients)
	assert.Equal(t, 0, analysis.PatientsWithRepeats)
	assert.Equal(t, 0, analysis.TotalRepeatInstances)
	assert.False(t, analysis.AvgRepeatsPerPatient.Valid)
	assert.Empty(t, analysis.MostRepeatedTests)

	// interval stats are null, not zero, when nothing repeats
	intervals := analysis.IntervalAnalysis
	assert.Equal(t, 0, intervals.TotalIntervals)
	assert.False(t, intervals.AvgIntervalDays.Valid)
	assert.False(t, intervals.MedianIntervalDays.Valid)
	assert.False(t, intervals.MinIntervalDays.Valid)
	assert.False(t, intervals.MaxIntervalDays.Valid)

	assert.Equal(t, map[int]int{1: 2}, analysis.RepeatDistribution)
}

func TestCalcRepeatAnalysisDedupRows(t *testing.T) {
	rows := []*model.LabResult{
		row("p1", "CBC", "2024-01-01"),
		row("p1", "CBC", "2024-01-01"),
		row("p1", "CBC", "2024-01-08"),
	}

	kept := CalcRepeatAnalysis(rows, false)
	assert.Equal(t, map[int]int{3: 1}, kept.RepeatDistribution)
	// the duplicated same-day pair contributes one zero-day interval
	assert.Equal(t, 2, kept.IntervalAnalysis.TotalIntervals)
	assert.EqualValues(t, 0, kept.IntervalAnalysis.MinIntervalDays.Int64)

	deduped := CalcRepeatAnalysis(rows, true)
	assert.Equal(t, map[int]int{2: 1}, deduped.RepeatDistribution)
	assert.Equal(t, 1, deduped.IntervalAnalysis.TotalIntervals)
	assert.EqualValues(t, 7, deduped.IntervalAnalysis.MinIntervalDays.Int64)
}

func TestCalcRepeatPatternsRegularMonthly(t *testing.T) {
	rows := []*model.LabResult{
		row("p1", "TSH", "2024-01-01"),
		row("p1", "TSH", "2024-02-01"),
		row("p1", "TSH", "2024-03-03"),
		// irregular: 1 then 90 day gaps
		row("p2", "Glucose", "2024-01-01"),
		row("p2", "Glucose", "2024-01-02"),
		row("p2", "Glucose", "2024-04-01"),
	}

	patterns := CalcRepeatPatterns(rows, 3, false)

	require.Len(t, patterns, 1)
	p := patterns[0]
	assert.Equal(t, "p1", p.PatientID)
	assert.Equal(t, "TSH", p.Test)
	assert.Equal(t, 3, p.RepeatCount)
	assert.InDelta(t, 31, p.AvgIntervalDays, 1e-9)
	assert.Equal(t, "monthly", p.PatternType)
	assert.InDelta(t, 1, p.RegularityScore, 1e-9)
}

func TestCalcRepeatPatternsMinRepeatsFilter(t *testing.T) {
	rows := []*model.LabResult{
		row("p1", "TSH", "2024-01-01"),
		row("p1", "TSH", "2024-02-01"),
	}

	assert.Empty(t, CalcRepeatPatterns(rows, 3, false))
	assert.Len(t, CalcRepeatPatterns(rows, 2, false), 1)
}

func TestCalcRepeatPatternsSameDayOnly(t *testing.T) {
	// every occurrence on one day: zero mean interval, no pattern
	rows := []*model.LabResult{
		row("p1", "CBC", "2024-01-01"),
		row("p1", "CBC", "2024-01-01"),
		row("p1", "CBC", "2024-01-01"),
	}

	assert.Empty(t, CalcRepeatPatterns(rows, 3, false))
}

func TestClassifyInterval(t *testing.T) {
	cases := map[float64]string{
		5:   "weekly",
		14:  "biweekly",
		31:  "monthly",
		60:  "bimonthly",
		91:  "quarterly",
		182: "semiannual",
		365: "annual",
	}
	for days, want := range cases {
		assert.Equal(t, want, classifyInterval(days), "days=%v", days)
	}
}

func TestCalcTestRepeatHistory(t *testing.T) {
	rows := []*model.LabResult{
		row("p2", "TSH", "2024-01-01", withResult("2.0")),
		row("p2", "TSH", "2024-01-15", withResult("2.4")),
		row("p1", "TSH", "2024-01-01"),
		row("p1", "TSH", "2024-02-01"),
		row("p1", "TSH", "2024-03-01"),
		row("p3", "TSH", "2024-01-01"), // single order, excluded
	}

	history := CalcTestRepeatHistory(rows)

	require.Len(t, history, 2)
	assert.Equal(t, "p1", history[0].PatientID)
	assert.Equal(t, 3, history[0].RepeatCount)
	assert.Equal(t, []string{"2024-01-01", "2024-02-01", "2024-03-01"}, history[0].Dates)
	assert.Equal(t, []int{31, 29}, history[0].IntervalsDays)

	assert.Equal(t, "p2", history[1].PatientID)
	assert.Equal(t, []int{14}, history[1].IntervalsDays)
	assert.InDelta(t, 14, history[1].AvgIntervalDays.Float64, 1e-9)
	require.Len(t, history[1].Results, 2)
	assert.Equal(t, "2.0", history[1].Results[0].ResultText)
}

func TestCalcPatientRepeats(t *testing.T) {
	rows := []*model.LabResult{
		row("p1", "Glucose", "2024-01-01"),
		row("p1", "Glucose", "2024-01-10"),
		row("p1", "TSH", "2024-01-01"),
		row("p1", "TSH", "2024-02-01"),
		row("p1", "TSH", "2024-03-01"),
		row("p1", "Iron", "2024-01-01"), // single order, excluded
	}

	repeats := CalcPatientRepeats(rows)

	require.Len(t, repeats, 2)
	assert.Equal(t, "TSH", repeats[0].TestName)
	assert.Equal(t, 3, repeats[0].RepeatCount)
	assert.Equal(t, "Glucose", repeats[1].TestName)
	assert.Equal(t, []int{9}, repeats[1].IntervalsDays)
}
