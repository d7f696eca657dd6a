package model

import (
	"gopkg.in/guregu/null.v3"
)

// RepeatAnalysis summarizes repeated orders: the same test ordered more than
// once for the same patient, at any dates.
type RepeatAnalysis struct {
	TotalPatients          int        `json:"totalPatients"`
	PatientsWithRepeats    int        `json:"patientsWithRepeats"`
	PatientsWithRepeatsPct null.Float `json:"patientsWithRepeatsPct"`

	// TotalRepeatInstances counts (patient, test) groups with more than one
	// occurrence, not the total number of repeated rows.
	TotalRepeatInstances int        `json:"totalRepeatInstances"`
	AvgRepeatsPerPatient null.Float `json:"avgRepeatsPerPatient"`

	MostRepeatedTests []RepeatedTest `json:"mostRepeatedTests"`
	IntervalAnalysis  IntervalStats  `json:"intervalAnalysis"`

	// RepeatDistribution maps occurrences-per-(patient,test)-group to the
	// number of groups with that many occurrences, including singletons.
	RepeatDistribution map[int]int `json:"repeatDistribution"`
}

type RepeatedTest struct {
	Test                 string  `json:"test"`
	PatientsWithRepeats  int     `json:"patientsWithRepeats"`
	AvgRepeatsPerPatient float64 `json:"avgRepeatsPerPatient"`
	MaxRepeats           int     `json:"maxRepeats"`
}

// IntervalStats aggregates the day-deltas between chronologically adjacent
// orders inside every repeat group. With no repeat group in the dataset all
// statistics are null, never zero.
type IntervalStats struct {
	TotalIntervals     int        `json:"totalIntervals"`
	AvgIntervalDays    null.Float `json:"avgIntervalDays"`
	MedianIntervalDays null.Float `json:"medianIntervalDays"`
	MinIntervalDays    null.Int   `json:"minIntervalDays"`
	MaxIntervalDays    null.Int   `json:"maxIntervalDays"`
	StdIntervalDays    null.Float `json:"stdIntervalDays"`
	Q25IntervalDays    null.Float `json:"q25IntervalDays"`
	Q75IntervalDays    null.Float `json:"q75IntervalDays"`
}

// RepeatPattern is a (patient, test) group whose adjacent intervals are
// regular enough (coefficient of variation below the threshold) to carry a
// coarse period label.
type RepeatPattern struct {
	PatientID       string  `json:"patientId"`
	Test            string  `json:"test"`
	RepeatCount     int     `json:"repeatCount"`
	AvgIntervalDays float64 `json:"avgIntervalDays"`
	PatternType     string  `json:"patternType"`
	RegularityScore float64 `json:"regularityScore"`
}

// TestRepeatHistory is the per-patient repeat trail for one test.
type TestRepeatHistory struct {
	PatientID       string         `json:"patientId"`
	RepeatCount     int            `json:"repeatCount"`
	Dates           []string       `json:"dates"`
	IntervalsDays   []int          `json:"intervalsDays"`
	AvgIntervalDays null.Float     `json:"avgIntervalDays"`
	Results         []RepeatResult `json:"results"`
}

// PatientRepeatedTest is one repeated test within one patient's history.
type PatientRepeatedTest struct {
	TestName        string         `json:"testName"`
	RepeatCount     int            `json:"repeatCount"`
	Dates           []string       `json:"dates"`
	IntervalsDays   []int          `json:"intervalsDays"`
	AvgIntervalDays null.Float     `json:"avgIntervalDays"`
	Results         []RepeatResult `json:"results"`
}

type RepeatResult struct {
	Date       string `json:"date"`
	ResultText string `json:"resultText"`
}
