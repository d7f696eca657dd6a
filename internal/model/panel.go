package model

import (
	"gopkg.in/guregu/null.v3"
)

// PanelAnalysis characterizes the test bundles of one dataset. A panel is
// the group of rows sharing (patient, date); its combination key is the
// sorted, deduplicated set of test names in the group.
type PanelAnalysis struct {
	TotalPanels         int        `json:"totalPanels"`
	AvgTestsPerPanel    null.Float `json:"avgTestsPerPanel"`
	MedianTestsPerPanel null.Float `json:"medianTestsPerPanel"`
	MinTestsPerPanel    null.Int   `json:"minTestsPerPanel"`
	MaxTestsPerPanel    null.Int   `json:"maxTestsPerPanel"`
	StdTestsPerPanel    null.Float `json:"stdTestsPerPanel"`

	// SizeDistribution maps panel size (group row count) to its frequency.
	// Summing its values always equals TotalPanels.
	SizeDistribution map[int]int `json:"sizeDistribution"`

	MostOrderedTests []TestCount        `json:"mostOrderedTests"`
	MostCommonPanels []PanelCombination `json:"mostCommonPanels"`

	UniqueTestsPerDay UniqueTestsPerDay `json:"uniqueTestsPerDay"`

	// ByService is only populated when the dataset carries a service column.
	ByService []ServicePanelStats `json:"byService,omitempty"`
}

type TestCount struct {
	Test  string `json:"test"`
	Count int    `json:"count"`
}

type PanelCombination struct {
	Tests     []string `json:"tests"`
	Count     int      `json:"count"`
	TestCount int      `json:"testCount"`
}

// PanelTemplate is a recurring combination with a deterministic identifier
// derived from the combination's content, stable across runs and processes.
type PanelTemplate struct {
	TemplateID string   `json:"templateId"`
	Tests      []string `json:"tests"`
	TestCount  int      `json:"testCount"`
	Frequency  int      `json:"frequency"`
}

type UniqueTestsPerDay struct {
	GlobalByDate  GlobalUniqueTestStats     `json:"globalByDate"`
	PerPatientDay PatientDayUniqueTestStats `json:"perPatientDay"`
	TopDays       []DayUniqueTests          `json:"topDays"`
}

type GlobalUniqueTestStats struct {
	AvgUniqueTestsPerDay    null.Float `json:"avgUniqueTestsPerDay"`
	MedianUniqueTestsPerDay null.Float `json:"medianUniqueTestsPerDay"`
	MinUniqueTestsPerDay    null.Int   `json:"minUniqueTestsPerDay"`
	MaxUniqueTestsPerDay    null.Int   `json:"maxUniqueTestsPerDay"`
	TotalUniqueDays         int        `json:"totalUniqueDays"`
}

type PatientDayUniqueTestStats struct {
	AvgUniqueTests    null.Float `json:"avgUniqueTests"`
	MedianUniqueTests null.Float `json:"medianUniqueTests"`
	MinUniqueTests    null.Int   `json:"minUniqueTests"`
	MaxUniqueTests    null.Int   `json:"maxUniqueTests"`
}

type DayUniqueTests struct {
	Date             string `json:"date"`
	UniqueTestsCount int    `json:"uniqueTestsCount"`
}

type ServicePanelStats struct {
	Service          string     `json:"service"`
	TotalTests       int        `json:"totalTests"`
	TotalPanels      int        `json:"totalPanels"`
	AvgTestsPerPanel null.Float `json:"avgTestsPerPanel"`
	UniqueTests      int        `json:"uniqueTests"`
}

// PatientPanel is one day of one patient's order history.
type PatientPanel struct {
	Date      string             `json:"date"`
	Tests     []PatientPanelTest `json:"tests"`
	TestCount int                `json:"testCount"`
}

type PatientPanelTest struct {
	TestName   string `json:"testName"`
	ResultText string `json:"resultText"`
}
