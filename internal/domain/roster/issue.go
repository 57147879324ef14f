package roster

// Severity classifies a parse issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue codes. File-level codes carry row 0 and reject the whole batch.
// Warning codes leave the row's record intact.
const (
	CodeEmptyFile              = "EMPTY_FILE"
	CodeMissingRequiredColumns = "MISSING_REQUIRED_COLUMNS"
	CodeMissingRequiredField   = "MISSING_REQUIRED_FIELD"
	CodeInvalidEmail           = "INVALID_EMAIL"
	CodeInvalidDate            = "INVALID_DATE"
	CodeInvalidTime            = "INVALID_TIME"
	CodeRowParseError          = "ROW_PARSE_ERROR"

	CodeMealBreakDurationMissing  = "MEAL_BREAK_DURATION_MISSING"
	CodeRestBreaksDurationMissing = "REST_BREAKS_DURATION_MISSING"
)

// Issue is one diagnostic produced while parsing a batch. Issues are
// returned as data alongside the result; they are never raised as errors
// across the package boundary.
type Issue struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Row      int      `json:"row"`
	Column   string   `json:"column,omitempty"`
	Value    string   `json:"value,omitempty"`
}
