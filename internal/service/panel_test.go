package service

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/model"
)

func TestCalcPanelAnalysisSingleTestPanels(t *testing.T) {
	rows := []*model.LabResult{
		row("p1", "CBC", "2024-01-01"),
		row("p2", "TSH", "2024-02-01"),
		row("p3", "Glucose", "2024-03-01"),
	}

	analysis := CalcPanelAnalysis(rows)

	assert.Equal(t, 3, analysis.TotalPanels)
	assert.Equal(t, map[int]int{1: 3}, analysis.SizeDistribution)
	for _, combo := range analysis.MostCommonPanels {
		assert.Equal(t, 1, combo.TestCount, spew.Sdump(combo))
	}
	assert.InDelta(t, 1, analysis.AvgTestsPerPanel.Float64, 1e-9)
	assert.EqualValues(t, 1, analysis.MinTestsPerPanel.Int64)
	assert.EqualValues(t, 1, analysis.MaxTestsPerPanel.Int64)
}

func TestCalcPanelAnalysisSizeHistogramInvariant(t *testing.T) {
	rows := []*model.LabResult{
		row("p1", "CBC", "2024-01-01"),
		row("p1", "TSH", "2024-01-01"),
		row("p1", "CBC", "2024-01-02"),
		row("p2", "CBC", "2024-01-01"),
		row("p2", "TSH", "2024-01-01"),
		row("p2", "Glucose", "2024-01-01"),
		row("p3", "Iron", "2024-01-05"),
	}

	analysis := CalcPanelAnalysis(rows)

	total := 0
	for _, freq := range analysis.SizeDistribution {
		total += freq
	}
	assert.Equal(t, analysis.TotalPanels, total)
	assert.Equal(t, 4, analysis.TotalPanels)
}

func TestCalcPanelCombinationsDeduplicated(t *testing.T) {
	// duplicate CBC within one panel must not change its combination key
	rows := []*model.LabResult{
		row("p1", "CBC", "2024-01-01"),
		row("p1", "CBC", "2024-01-01"),
		row("p1", "TSH", "2024-01-01"),
		row("p2", "TSH", "2024-02-01"),
		row("p2", "CBC", "2024-02-01"),
	}

	combinations := CalcPanelCombinations(rows, 10)

	require.Len(t, combinations, 1)
	assert.Equal(t, []string{"CBC", "TSH"}, combinations[0].Tests)
	assert.Equal(t, 2, combinations[0].Count)
	assert.Equal(t, 2, combinations[0].TestCount)
}

func TestCalcPanelTemplatesDeterministic(t *testing.T) {
	rows := []*model.LabResult{
		row("p1", "CBC", "2024-01-01"),
		row("p1", "TSH", "2024-01-01"),
		row("p2", "CBC", "2024-01-02"),
		row("p2", "TSH", "2024-01-02"),
		row("p3", "TSH", "2024-01-03"),
		row("p3", "CBC", "2024-01-03"),
		row("p4", "Iron", "2024-01-04"),
	}

	templates := CalcPanelTemplates(rows, 3)
	require.Len(t, templates, 1)
	assert.Equal(t, []string{"CBC", "TSH"}, templates[0].Tests)
	assert.Equal(t, 3, templates[0].Frequency)
	assert.Len(t, templates[0].TemplateID, 16)

	again := CalcPanelTemplates(rows, 3)
	assert.Equal(t, templates, again, "template ids must be stable across runs")
}

func TestCalcPanelAnalysisUniqueTestsPerDay(t *testing.T) {
	rows := []*model.LabResult{
		row("p1", "CBC", "2024-01-01"),
		row("p2", "TSH", "2024-01-01"),
		row("p1", "CBC", "2024-01-02"),
		row("p1", "CBC", "2024-01-02"), // duplicate within one patient-day
	}

	analysis := CalcPanelAnalysis(rows)
	u := analysis.UniqueTestsPerDay

	assert.Equal(t, 2, u.GlobalByDate.TotalUniqueDays)
	// 2024-01-01 has two distinct tests across patients, 2024-01-02 one
	assert.EqualValues(t, 2, u.GlobalByDate.MaxUniqueTestsPerDay.Int64)
	assert.EqualValues(t, 1, u.GlobalByDate.MinUniqueTestsPerDay.Int64)

	// the duplicated panel counts 2 rows but 1 distinct test
	assert.EqualValues(t, 1, u.PerPatientDay.MinUniqueTests.Int64)
	assert.EqualValues(t, 1, u.PerPatientDay.MaxUniqueTests.Int64)

	require.NotEmpty(t, u.TopDays)
	assert.Equal(t, "2024-01-01", u.TopDays[0].Date)
}

func TestCalcPanelAnalysisByService(t *testing.T) {
	rows := []*model.LabResult{
		row("p1", "CBC", "2024-01-01", withService("hematology")),
		row("p1", "WBC", "2024-01-01", withService("hematology")),
		row("p2", "TSH", "2024-01-01", withService("endocrinology")),
	}

	analysis := CalcPanelAnalysis(rows)

	require.Len(t, analysis.ByService, 2)
	assert.Equal(t, "hematology", analysis.ByService[0].Service)
	assert.Equal(t, 2, analysis.ByService[0].TotalTests)
	assert.Equal(t, 1, analysis.ByService[0].TotalPanels)
	assert.Equal(t, 2, analysis.ByService[0].UniqueTests)
	assert.InDelta(t, 2, analysis.ByService[0].AvgTestsPerPanel.Float64, 1e-9)
}

func TestCalcPanelAnalysisNoServiceColumn(t *testing.T) {
	rows := []*model.LabResult{
		row("p1", "CBC", "2024-01-01"),
	}

	analysis := CalcPanelAnalysis(rows)
	assert.Empty(t, analysis.ByService)
}

func TestCalcPanelAnalysisIdempotent(t *testing.T) {
	rows := []*model.LabResult{
		row("p1", "CBC", "2024-01-01", withService("hematology")),
		row("p1", "TSH", "2024-01-01"),
		row("p2", "CBC", "2024-01-02", withService("hematology")),
		row("p2", "Glucose", "2024-01-02"),
		row("p3", "CBC", "2024-01-01"),
	}

	first := CalcPanelAnalysis(rows)
	second := CalcPanelAnalysis(rows)
	assert.Equal(t, first, second)
}

func TestCalcPatientPanels(t *testing.T) {
	rows := []*model.LabResult{
		row("p1", "TSH", "2024-02-01", withResult("2.1")),
		row("p1", "CBC", "2024-01-01", withResult("ok")),
		row("p1", "Glucose", "2024-01-01", withResult("5.4")),
	}

	panels := CalcPatientPanels(rows)

	require.Len(t, panels, 2)
	assert.Equal(t, "2024-01-01", panels[0].Date)
	assert.Equal(t, 2, panels[0].TestCount)
	assert.Equal(t, "CBC", panels[0].Tests[0].TestName)
	assert.Equal(t, "Glucose", panels[0].Tests[1].TestName)
	assert.Equal(t, "2024-02-01", panels[1].Date)
}
