package roster

import (
	"strings"
	"testing"
	"time"
)

func row(position int, pairs ...any) RawRow {
	r := RawRow{Position: position}
	for i := 0; i < len(pairs); i += 2 {
		header := pairs[i].(string)
		var cell Cell
		switch v := pairs[i+1].(type) {
		case string:
			cell = TextCell(v)
		case float64:
			cell = NumberCell(v)
		case Cell:
			cell = v
		default:
			panic("unsupported cell value in test")
		}
		r.Cells = append(r.Cells, RawCell{Header: header, Value: cell})
	}
	return r
}

func validRosterRow(position int) RawRow {
	return row(position,
		"Employee Email", "jo@example.com",
		"Date", "2024-01-15",
		"Start Time", "09:00",
		"End Time", "17:00",
	)
}

func TestParseRosterHappyPath(t *testing.T) {
	parser := NewParser()
	result, issues := parser.ParseRoster([]RawRow{validRosterRow(2)})
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %+v", issues)
	}
	if len(result.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(result.Entries))
	}
	entry := result.Entries[0]
	if entry.EmployeeEmail != "jo@example.com" {
		t.Errorf("email = %q", entry.EmployeeEmail)
	}
	if !entry.Date.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date = %v", entry.Date)
	}
	if entry.IsOvernight {
		t.Error("9-17 shift should not be overnight")
	}
	if entry.DurationHours() != 8 {
		t.Errorf("duration = %v", entry.DurationHours())
	}
}

func TestParseRosterHeaderVariants(t *testing.T) {
	parser := NewParser()
	result, issues := parser.ParseRoster([]RawRow{row(2,
		"EMPLOYEE_EMAIL", "jo@example.com",
		"Shift  Date", "2024-01-15",
		"开始时间", "09:00",
		"Finish Time", "17:00",
	)})
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %+v", issues)
	}
	if len(result.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(result.Entries))
	}
}

func TestParseRosterEmptyBatch(t *testing.T) {
	parser := NewParser()
	result, issues := parser.ParseRoster(nil)
	if len(result.Entries) != 0 {
		t.Fatalf("expected no entries")
	}
	if len(issues) != 1 || issues[0].Code != CodeEmptyFile || issues[0].Row != 0 {
		t.Fatalf("expected one EMPTY_FILE issue at row 0, got %+v", issues)
	}
}

func TestParseRosterMissingColumns(t *testing.T) {
	parser := NewParser()
	rows := []RawRow{row(2, "Employee Email", "jo@example.com", "Date", "2024-01-15")}
	result, issues := parser.ParseRoster(rows)
	if len(result.Entries) != 0 {
		t.Fatal("expected no entries")
	}
	if len(issues) != 1 || issues[0].Code != CodeMissingRequiredColumns {
		t.Fatalf("expected one MISSING_REQUIRED_COLUMNS issue, got %+v", issues)
	}
	if !strings.Contains(issues[0].Message, "start_time, end_time") {
		t.Fatalf("missing columns should list every absent field in order: %q", issues[0].Message)
	}
}

func TestParseRosterRowIsolation(t *testing.T) {
	parser := NewParser()
	bad := validRosterRow(3)
	bad.Cells[1].Value = TextCell("not a date")
	rows := []RawRow{validRosterRow(2), bad, validRosterRow(4)}

	result, issues := parser.ParseRoster(rows)
	if len(result.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result.Entries))
	}
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %+v", issues)
	}
	issue := issues[0]
	if issue.Code != CodeInvalidDate || issue.Row != 3 || issue.Severity != SeverityError {
		t.Fatalf("unexpected issue: %+v", issue)
	}
	if result.Entries[0].SourceRow != 2 || result.Entries[1].SourceRow != 4 {
		t.Fatalf("subsequent rows must be unaffected: %+v", result.Entries)
	}
}

func TestParseRosterFirstFatalErrorWins(t *testing.T) {
	parser := NewParser()
	bad := row(2,
		"Employee Email", "not-an-email",
		"Date", "also not a date",
		"Start Time", "nope",
		"End Time", "nope",
	)
	_, issues := parser.ParseRoster([]RawRow{bad})
	if len(issues) != 1 {
		t.Fatalf("expected exactly one issue, got %+v", issues)
	}
	if issues[0].Code != CodeInvalidEmail {
		t.Fatalf("email check runs first, got %s", issues[0].Code)
	}
}

func TestParseRosterMissingRequiredField(t *testing.T) {
	parser := NewParser()
	bad := validRosterRow(2)
	bad.Cells[0].Value = EmptyCell()
	_, issues := parser.ParseRoster([]RawRow{bad})
	if len(issues) != 1 || issues[0].Code != CodeMissingRequiredField {
		t.Fatalf("expected MISSING_REQUIRED_FIELD, got %+v", issues)
	}
	if issues[0].Column != FieldEmployeeEmail {
		t.Fatalf("issue should name the column, got %q", issues[0].Column)
	}
}

func TestParseRosterTimeRangeInOneCell(t *testing.T) {
	parser := NewParser()
	bad := validRosterRow(2)
	bad.Cells[2].Value = TextCell("9:00-17:00")
	_, issues := parser.ParseRoster([]RawRow{bad})
	if len(issues) != 1 || issues[0].Code != CodeInvalidTime {
		t.Fatalf("expected INVALID_TIME, got %+v", issues)
	}
	if !strings.Contains(issues[0].Message, "separate start time and end time") {
		t.Fatalf("range message should be actionable: %q", issues[0].Message)
	}
}

func TestParseRosterOvernightShift(t *testing.T) {
	parser := NewParser()
	r := row(2,
		"Employee Email", "jo@example.com",
		"Date", "2024-01-15",
		"Start Time", "22:00",
		"End Time", "06:00",
	)
	result, issues := parser.ParseRoster([]RawRow{r})
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %+v", issues)
	}
	entry := result.Entries[0]
	if !entry.IsOvernight {
		t.Fatal("end before start should flag overnight")
	}
	if entry.DurationHours() != 8 {
		t.Fatalf("overnight duration = %v, want 8", entry.DurationHours())
	}
}

func TestParseRosterBreakWarnings(t *testing.T) {
	parser := NewParser()
	r := validRosterRow(2)
	r.Cells = append(r.Cells, RawCell{Header: "Has Meal Break", Value: TextCell("yes")})

	result, issues := parser.ParseRoster([]RawRow{r})
	if len(result.Entries) != 1 {
		t.Fatal("warning must not reject the row")
	}
	if len(issues) != 1 {
		t.Fatalf("expected 1 warning, got %+v", issues)
	}
	issue := issues[0]
	if issue.Severity != SeverityWarning || issue.Code != CodeMealBreakDurationMissing {
		t.Fatalf("unexpected issue: %+v", issue)
	}
	if issue.Column != FieldMealBreakDuration {
		t.Fatalf("warning should name the duration column, got %q", issue.Column)
	}
}

func TestParseRosterBreakFlagFalseNoWarning(t *testing.T) {
	parser := NewParser()
	r := validRosterRow(2)
	r.Cells = append(r.Cells, RawCell{Header: "Has Meal Break", Value: TextCell("no")})
	_, issues := parser.ParseRoster([]RawRow{r})
	if len(issues) != 0 {
		t.Fatalf("flag false with absent duration should produce no issues: %+v", issues)
	}
}

func TestParseRosterBreakDurations(t *testing.T) {
	parser := NewParser()
	r := validRosterRow(2)
	r.Cells = append(r.Cells,
		RawCell{Header: "Has Meal Break", Value: TextCell("yes")},
		RawCell{Header: "Meal Break Duration", Value: NumberCell(30)},
		RawCell{Header: "Has Rest Breaks", Value: TextCell("yes")},
		RawCell{Header: "Rest Breaks Duration", Value: NumberCell(15)},
	)
	result, issues := parser.ParseRoster([]RawRow{r})
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %+v", issues)
	}
	entry := result.Entries[0]
	if entry.MealBreakDuration == nil || *entry.MealBreakDuration != 30 {
		t.Fatalf("meal break duration = %v", entry.MealBreakDuration)
	}
	if entry.NetHours() != 7.25 {
		t.Fatalf("net hours = %v, want 7.25", entry.NetHours())
	}
}

func TestParseRosterDuplicateHeaderLastWins(t *testing.T) {
	parser := NewParser()
	r := validRosterRow(2)
	// "start" and "start time" both alias to start_time; the later column
	// takes effect.
	r.Cells = append(r.Cells, RawCell{Header: "Start", Value: TextCell("10:00")})
	result, issues := parser.ParseRoster([]RawRow{r})
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %+v", issues)
	}
	if got := result.Entries[0].StartTime; !got.Equal(clockTime(10, 0, 0)) {
		t.Fatalf("expected later duplicate column to win, got %v", got)
	}
}

func TestParseRosterOptionalFields(t *testing.T) {
	parser := NewParser()
	r := validRosterRow(2)
	r.Cells = append(r.Cells,
		RawCell{Header: "Employee Name", Value: TextCell("Jo Smith")},
		RawCell{Header: "Is Public Holiday", Value: TextCell("yes")},
		RawCell{Header: "Holiday Name", Value: TextCell("New Year")},
		RawCell{Header: "On Call", Value: TextCell("true")},
		RawCell{Header: "Location", Value: TextCell("Sydney")},
		RawCell{Header: "Notes", Value: TextCell("covering for Max")},
	)
	result, issues := parser.ParseRoster([]RawRow{r})
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %+v", issues)
	}
	entry := result.Entries[0]
	if entry.EmployeeName != "Jo Smith" || !entry.IsPublicHoliday || entry.PublicHolidayName != "New Year" ||
		!entry.IsOnCall || entry.Location != "Sydney" || entry.Notes != "covering for Max" {
		t.Fatalf("optional fields not carried: %+v", entry)
	}
}

func validEmployeeRow(position int) RawRow {
	return row(position,
		"Name", "Jo Smith",
		"Email", "jo@example.com",
		"Role", "Nurse",
	)
}

func TestParseEmployeesHappyPath(t *testing.T) {
	parser := NewParser()
	r := validEmployeeRow(2)
	r.Cells = append(r.Cells,
		RawCell{Header: "Department", Value: TextCell("ICU")},
		RawCell{Header: "Hire Date", Value: TextCell("2023-06-01")},
	)
	entries, issues := parser.ParseEmployees([]RawRow{r})
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %+v", issues)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Department != "ICU" {
		t.Errorf("department = %q", entry.Department)
	}
	if entry.StartDate == nil || !entry.StartDate.Equal(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start date = %v", entry.StartDate)
	}
}

func TestParseEmployeesDirectoryEmailNotValidated(t *testing.T) {
	parser := NewParser()
	r := validEmployeeRow(2)
	r.Cells[1].Value = TextCell("front-desk (shared)")
	entries, issues := parser.ParseEmployees([]RawRow{r})
	if len(issues) != 0 || len(entries) != 1 {
		t.Fatalf("directory email is free text: issues=%+v", issues)
	}
}

func TestParseEmployeesMissingRequired(t *testing.T) {
	parser := NewParser()
	r := validEmployeeRow(2)
	r.Cells[2].Value = EmptyCell()
	entries, issues := parser.ParseEmployees([]RawRow{r})
	if len(entries) != 0 {
		t.Fatal("expected row rejected")
	}
	if len(issues) != 1 || issues[0].Code != CodeMissingRequiredField || issues[0].Column != FieldRole {
		t.Fatalf("unexpected issues: %+v", issues)
	}
}

func TestParseEmployeesMissingColumns(t *testing.T) {
	parser := NewParser()
	rows := []RawRow{row(2, "Name", "Jo Smith")}
	entries, issues := parser.ParseEmployees(rows)
	if len(entries) != 0 {
		t.Fatal("expected no entries")
	}
	if len(issues) != 1 || issues[0].Code != CodeMissingRequiredColumns {
		t.Fatalf("unexpected issues: %+v", issues)
	}
	if !strings.Contains(issues[0].Message, "email, role") {
		t.Fatalf("message should list missing fields in order: %q", issues[0].Message)
	}
}

func TestParseEmployeesBadStartDate(t *testing.T) {
	parser := NewParser()
	r := validEmployeeRow(3)
	r.Cells = append(r.Cells, RawCell{Header: "Start Date", Value: TextCell("sometime")})
	entries, issues := parser.ParseEmployees([]RawRow{r})
	if len(entries) != 0 {
		t.Fatal("expected row rejected")
	}
	if len(issues) != 1 || issues[0].Code != CodeRowParseError || issues[0].Row != 3 {
		t.Fatalf("unexpected issues: %+v", issues)
	}
}
