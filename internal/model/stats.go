package model

import (
	"gopkg.in/guregu/null.v3"
)

// StatsSummary is the full descriptive summary of one dataset, keyed by
// column name. A column lands either in NumericStats or in CategoricalStats,
// never both. Statistics undefined at the sample size at hand are invalid
// null.Floats and marshal to JSON null; NaN never crosses the API boundary.
type StatsSummary struct {
	Overview         DatasetOverview                    `json:"overview"`
	NumericStats     map[string]*NumericColumnStats     `json:"numericStats"`
	CategoricalStats map[string]*CategoricalColumnStats `json:"categoricalStats"`
	MissingSummary   []MissingColumn                    `json:"missingSummary"`
}

type DatasetOverview struct {
	TotalRows    int `json:"totalRows"`
	TotalColumns int `json:"totalColumns"`
}

type NumericColumnStats struct {
	Count      int        `json:"count"`
	Missing    int        `json:"missing"`
	MissingPct null.Float `json:"missingPct"`
	Mean       null.Float `json:"mean"`
	Std        null.Float `json:"std"`
	Min        null.Float `json:"min"`
	Max        null.Float `json:"max"`
	Median     null.Float `json:"median"`
	Q25        null.Float `json:"q25"`
	Q75        null.Float `json:"q75"`
	Skew       null.Float `json:"skew"`
	Kurtosis   null.Float `json:"kurtosis"`
}

type CategoricalColumnStats struct {
	Count      int         `json:"count"`
	Missing    int         `json:"missing"`
	MissingPct null.Float  `json:"missingPct"`
	Unique     int         `json:"unique"`
	TopValue   null.String `json:"topValue"`
	TopFreq    int         `json:"topFreq"`
	TopFreqPct null.Float  `json:"topFreqPct"`
	// Distribution holds the top value counts in descending count order,
	// ties broken by value.
	Distribution []ValueCount `json:"distribution"`

	// QualitativeRates is only populated for the free-text result column,
	// which mixes numeric-looking and textual values.
	QualitativeRates *ResultTextBreakdown `json:"qualitativeRates,omitempty"`
}

type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// ResultTextBreakdown classifies the free-text result column into
// numeric-looking values and everything else, with a numeric summary
// restricted to the numeric subset.
type ResultTextBreakdown struct {
	NumericCount int     `json:"numericCount"`
	TextCount    int     `json:"textCount"`
	NumericRate  float64 `json:"numericRate"`
	TextRate     float64 `json:"textRate"`
	MixedType    bool    `json:"mixedType"`

	NumericStats *ResultTextNumericStats `json:"numericStats,omitempty"`
	TextStats    *ResultTextTextStats    `json:"textStats,omitempty"`
}

type ResultTextNumericStats struct {
	Mean   null.Float `json:"mean"`
	Std    null.Float `json:"std"`
	Min    null.Float `json:"min"`
	Max    null.Float `json:"max"`
	Median null.Float `json:"median"`
}

type ResultTextTextStats struct {
	UniqueTextValues int          `json:"uniqueTextValues"`
	TopTextValues    []ValueCount `json:"topTextValues"`
}

type MissingColumn struct {
	Column       string     `json:"column"`
	MissingCount int        `json:"missingCount"`
	MissingPct   null.Float `json:"missingPct"`
	PresentCount int        `json:"presentCount"`
}

// ColumnStats is the detailed single-column view, either numeric or
// categorical depending on the column's declared kind.
type ColumnStats struct {
	Type        string                  `json:"type"`
	Numeric     *NumericColumnStats     `json:"numeric,omitempty"`
	Categorical *CategoricalColumnStats `json:"categorical,omitempty"`
}
