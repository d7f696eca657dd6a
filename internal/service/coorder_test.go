package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/model"
)

func TestCalcCoOrderAnalysisSinglePair(t *testing.T) {
	rows := []*model.LabResult{
		row("p1", "CBC", "2024-01-01"),
		row("p1", "Glucose", "2024-01-01"),
	}

	analysis := CalcCoOrderAnalysis(rows, 50)

	assert.Equal(t, 2, analysis.TotalTests)
	require.Len(t, analysis.TopPairs, 1)
	assert.Equal(t, model.TestPair{Test1: "CBC", Test2: "Glucose", Count: 1}, analysis.TopPairs[0])
}

func TestCalcTestPairsSingleTestGroups(t *testing.T) {
	// one test per patient-day never forms a pair
	rows := []*model.LabResult{
		row("p1", "CBC", "2024-01-01"),
		row("p1", "TSH", "2024-01-02"),
		row("p2", "CBC", "2024-01-01"),
	}

	assert.Empty(t, CalcTestPairs(rows, 50))
}

func TestCalcTestPairsDuplicateTests(t *testing.T) {
	// duplicate CBC rows on one day count the pair once, and CBC never pairs
	// with itself
	rows := []*model.LabResult{
		row("p1", "CBC", "2024-01-01"),
		row("p1", "CBC", "2024-01-01"),
		row("p1", "TSH", "2024-01-01"),
	}

	pairs := CalcTestPairs(rows, 50)
	require.Len(t, pairs, 1)
	assert.Equal(t, model.TestPair{Test1: "CBC", Test2: "TSH", Count: 1}, pairs[0])
}

func TestCalcTestPairsBinomialConsistency(t *testing.T) {
	// a group of k distinct tests yields k*(k-1)/2 pairs
	rows := []*model.LabResult{
		row("p1", "A", "2024-01-01"),
		row("p1", "B", "2024-01-01"),
		row("p1", "C", "2024-01-01"),
		row("p1", "D", "2024-01-01"),
		row("p2", "A", "2024-01-01"),
		row("p2", "B", "2024-01-01"),
	}

	pairs := CalcTestPairs(rows, 0x7fffffff)

	total := 0
	for _, p := range pairs {
		assert.Less(t, p.Test1, p.Test2, "pairs must be canonically ordered")
		total += p.Count
	}
	// C(4,2) + C(2,2) = 6 + 1
	assert.Equal(t, 7, total)
}

func TestCalcTestPairsTopNOrdering(t *testing.T) {
	rows := []*model.LabResult{
		row("p1", "A", "2024-01-01"),
		row("p1", "B", "2024-01-01"),
		row("p2", "A", "2024-01-01"),
		row("p2", "B", "2024-01-01"),
		row("p3", "A", "2024-01-01"),
		row("p3", "C", "2024-01-01"),
	}

	pairs := CalcTestPairs(rows, 1)
	require.Len(t, pairs, 1)
	assert.Equal(t, model.TestPair{Test1: "A", Test2: "B", Count: 2}, pairs[0])
}

func TestCalcCoOccurrenceMatrixFullUniverse(t *testing.T) {
	rows := []*model.LabResult{
		row("p1", "CBC", "2024-01-01"),
		row("p1", "Glucose", "2024-01-01"),
	}

	m := CalcCoOccurrenceMatrix(rows, nil)

	assert.Equal(t, []string{"CBC", "Glucose"}, m.Tests)
	assert.Equal(t, [][]int{{0, 1}, {1, 0}}, m.Matrix)
}

func TestCalcCoOccurrenceMatrixSymmetry(t *testing.T) {
	rows := []*model.LabResult{
		row("p1", "A", "2024-01-01"),
		row("p1", "B", "2024-01-01"),
		row("p1", "C", "2024-01-01"),
		row("p2", "B", "2024-01-02"),
		row("p2", "C", "2024-01-02"),
	}

	m := CalcCoOccurrenceMatrix(rows, nil)

	for i := range m.Matrix {
		assert.Zero(t, m.Matrix[i][i], "diagonal must stay zero")
		for j := range m.Matrix[i] {
			assert.Equal(t, m.Matrix[i][j], m.Matrix[j][i])
		}
	}
	// B and C co-occur twice
	assert.Equal(t, 2, m.Matrix[1][2])
}

func TestCalcCoOccurrenceMatrixSubset(t *testing.T) {
	rows := []*model.LabResult{
		row("p1", "A", "2024-01-01"),
		row("p1", "B", "2024-01-01"),
		row("p1", "C", "2024-01-01"),
	}

	m := CalcCoOccurrenceMatrix(rows, []string{"A", "C"})

	assert.Equal(t, []string{"A", "C"}, m.Tests)
	assert.Equal(t, [][]int{{0, 1}, {1, 0}}, m.Matrix)
}

func TestCalcCoOrderAnalysisByService(t *testing.T) {
	rows := []*model.LabResult{
		row("p1", "CBC", "2024-01-01", withService("hematology")),
		row("p1", "WBC", "2024-01-01", withService("hematology")),
		row("p2", "CBC", "2024-01-02", withService("hematology")),
		row("p3", "TSH", "2024-01-01", withService("endocrinology")),
		row("p4", "Iron", "2024-01-01"), // no service, not partitioned
	}

	analysis := CalcCoOrderAnalysis(rows, 50)

	require.Len(t, analysis.ByService, 2)
	hema := analysis.ByService[0]
	assert.Equal(t, "hematology", hema.Service)
	assert.Equal(t, 3, hema.TotalTests)
	assert.Equal(t, 1, hema.DaysWithMultipleTests)
	require.Len(t, hema.TopPairs, 1)
	assert.Equal(t, model.TestPair{Test1: "CBC", Test2: "WBC", Count: 1}, hema.TopPairs[0])

	endo := analysis.ByService[1]
	assert.Equal(t, "endocrinology", endo.Service)
	assert.Equal(t, 0, endo.DaysWithMultipleTests)
	assert.Empty(t, endo.TopPairs)
}
