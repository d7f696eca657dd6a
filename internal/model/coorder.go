package model

// CoOrderAnalysis summarizes pairwise co-ordering: two distinct tests
// appearing in the same (patient, date) group.
type CoOrderAnalysis struct {
	TotalTests int                   `json:"totalTests"`
	TopPairs   []TestPair            `json:"topPairs"`
	ByService  []ServiceCoOrderStats `json:"byService"`
}

// TestPair is an unordered pair of distinct test names, canonicalized so
// that Test1 < Test2 lexicographically.
type TestPair struct {
	Test1 string `json:"test1"`
	Test2 string `json:"test2"`
	Count int    `json:"count"`
}

// CoOccurrenceMatrix is a symmetric square matrix over Tests, where
// Matrix[i][j] counts the (patient, date) groups containing both tests.
// The diagonal is always zero.
type CoOccurrenceMatrix struct {
	Tests  []string `json:"tests"`
	Matrix [][]int  `json:"matrix"`
}

type ServiceCoOrderStats struct {
	Service               string     `json:"service"`
	TotalTests            int        `json:"totalTests"`
	DaysWithMultipleTests int        `json:"daysWithMultipleTests"`
	TopPairs              []TestPair `json:"topPairs"`
}

// ServiceCoOrder is the single-service drill-down.
type ServiceCoOrder struct {
	Service    string     `json:"service"`
	TotalTests int        `json:"totalTests"`
	TopPairs   []TestPair `json:"topPairs"`
}
