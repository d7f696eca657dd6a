package constant

const (
	ContextKeyRequestID = "requestid"

	CacheSep = "#"
)

// Dataset column names exposed by the stats engine. Columns outside this set
// (row id, file id, created_at) are system columns and never summarized.
const (
	ColumnPatientID  = "patient_id"
	ColumnSex        = "sex"
	ColumnAge        = "age"
	ColumnTestName   = "test_name"
	ColumnResultText = "result_text"
	ColumnService    = "service"
	ColumnDate       = "date"
)

const (
	TopOrderedTests   = 20
	TopRepeatedTests  = 20
	TopPanelCombos    = 10
	TopValueDistrib   = 10
	TopUniqueTestDays = 10
	TopServicePairs   = 5

	// TopRepeatHistoryPatients caps the per-test repeat history drill-down.
	TopRepeatHistoryPatients = 50
)
