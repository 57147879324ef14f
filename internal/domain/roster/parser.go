package roster

import (
	"fmt"
	"net/mail"
	"strings"
)

// Parser converts raw spreadsheet rows into typed roster or employee
// records. The alias index is immutable after construction, so a single
// Parser may be shared across goroutines.
type Parser struct {
	aliases map[string]string
}

func NewParser() *Parser {
	return &Parser{aliases: buildAliasIndex()}
}

// ParseRoster validates required headers then parses every row
// independently. One malformed row produces exactly one error issue and
// no record; the rest of the batch is unaffected. Issues come back in
// row order, errors and warnings interleaved.
func (p *Parser) ParseRoster(rows []RawRow) (RosterParseResult, []Issue) {
	result := RosterParseResult{Entries: []RosterEntry{}}

	if len(rows) == 0 {
		return result, []Issue{emptyFileIssue()}
	}
	if missing := p.missingRequired(rows[0], rosterRequiredFields); len(missing) > 0 {
		return result, []Issue{missingColumnsIssue(missing)}
	}

	issues := make([]Issue, 0)
	for _, row := range rows {
		entry, rowIssues := p.parseRosterRowSafe(row)
		issues = append(issues, rowIssues...)
		if entry != nil {
			result.Entries = append(result.Entries, *entry)
		}
	}
	return result, issues
}

// ParseEmployees is the directory counterpart of ParseRoster.
func (p *Parser) ParseEmployees(rows []RawRow) ([]EmployeeEntry, []Issue) {
	entries := make([]EmployeeEntry, 0)

	if len(rows) == 0 {
		return entries, []Issue{emptyFileIssue()}
	}
	if missing := p.missingRequired(rows[0], employeeRequiredFields); len(missing) > 0 {
		return entries, []Issue{missingColumnsIssue(missing)}
	}

	issues := make([]Issue, 0)
	for _, row := range rows {
		entry, rowIssues := p.parseEmployeeRowSafe(row)
		issues = append(issues, rowIssues...)
		if entry != nil {
			entries = append(entries, *entry)
		}
	}
	return entries, issues
}

// resolveRow maps each literal header to its canonical key. Unknown
// headers keep their normalized spelling. Duplicate resolutions follow
// column order: the later column wins.
func (p *Parser) resolveRow(row RawRow) map[string]Cell {
	resolved := make(map[string]Cell, len(row.Cells))
	for _, cell := range row.Cells {
		key := NormalizeHeader(cell.Header)
		if canonical, ok := p.aliases[key]; ok {
			key = canonical
		}
		resolved[key] = cell.Value
	}
	return resolved
}

// missingRequired reports required keys absent from the first row's
// resolved headers, in declaration order.
func (p *Parser) missingRequired(first RawRow, required []string) []string {
	resolved := p.resolveRow(first)
	var missing []string
	for _, key := range required {
		if _, ok := resolved[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

// parseRosterRowSafe shields the batch from anything unanticipated in a
// single row: a panic becomes a ROW_PARSE_ERROR issue for that row only.
func (p *Parser) parseRosterRowSafe(row RawRow) (entry *RosterEntry, issues []Issue) {
	defer func() {
		if r := recover(); r != nil {
			entry = nil
			issues = []Issue{{
				Severity: SeverityError,
				Code:     CodeRowParseError,
				Message:  fmt.Sprint(r),
				Row:      row.Position,
			}}
		}
	}()
	return p.parseRosterRow(row)
}

func (p *Parser) parseEmployeeRowSafe(row RawRow) (entry *EmployeeEntry, issues []Issue) {
	defer func() {
		if r := recover(); r != nil {
			entry = nil
			issues = []Issue{{
				Severity: SeverityError,
				Code:     CodeRowParseError,
				Message:  fmt.Sprint(r),
				Row:      row.Position,
			}}
		}
	}()
	return p.parseEmployeeRow(row)
}

// parseRosterRow checks required fields in a fixed order. The first
// fatal problem wins: the row is rejected with that single error issue
// and the remaining checks are skipped. Warnings never reject a row.
func (p *Parser) parseRosterRow(row RawRow) (*RosterEntry, []Issue) {
	resolved := p.resolveRow(row)

	email, ok := coerceString(resolved[FieldEmployeeEmail])
	if !ok {
		return nil, []Issue{fatal(row, CodeMissingRequiredField, "employee email is required", FieldEmployeeEmail, "")}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, []Issue{fatal(row, CodeInvalidEmail, fmt.Sprintf("invalid email format: %s", email), FieldEmployeeEmail, email)}
	}

	dateCell := resolved[FieldDate]
	date, present, err := coerceDate(dateCell)
	if err != nil {
		return nil, []Issue{fatal(row, CodeInvalidDate, err.Error(), FieldDate, dateCell.DisplayString())}
	}
	if !present {
		return nil, []Issue{fatal(row, CodeMissingRequiredField, "date is required", FieldDate, "")}
	}

	startCell := resolved[FieldStartTime]
	start, present, err := coerceTime(startCell)
	if err != nil {
		return nil, []Issue{fatal(row, CodeInvalidTime, err.Error(), FieldStartTime, startCell.DisplayString())}
	}
	if !present {
		return nil, []Issue{fatal(row, CodeMissingRequiredField, "start time is required", FieldStartTime, "")}
	}

	endCell := resolved[FieldEndTime]
	end, present, err := coerceTime(endCell)
	if err != nil {
		return nil, []Issue{fatal(row, CodeInvalidTime, err.Error(), FieldEndTime, endCell.DisplayString())}
	}
	if !present {
		return nil, []Issue{fatal(row, CodeMissingRequiredField, "end time is required", FieldEndTime, "")}
	}

	// Clock-time comparison only; an earlier end means the shift crosses
	// midnight.
	isOvernight := end.Before(start)

	var warnings []Issue

	hasMealBreak := coerceBool(resolved[FieldHasMealBreak])
	mealDuration, mealOK := coerceInt(resolved[FieldMealBreakDuration])
	if hasMealBreak && !mealOK {
		warnings = append(warnings, Issue{
			Severity: SeverityWarning,
			Code:     CodeMealBreakDurationMissing,
			Message:  "has_meal_break is set but meal_break_duration is missing",
			Row:      row.Position,
			Column:   FieldMealBreakDuration,
		})
	}

	hasRestBreaks := coerceBool(resolved[FieldHasRestBreaks])
	restDuration, restOK := coerceInt(resolved[FieldRestBreaksDuration])
	if hasRestBreaks && !restOK {
		warnings = append(warnings, Issue{
			Severity: SeverityWarning,
			Code:     CodeRestBreaksDurationMissing,
			Message:  "has_rest_breaks is set but rest_breaks_duration is missing",
			Row:      row.Position,
			Column:   FieldRestBreaksDuration,
		})
	}

	entry := &RosterEntry{
		SourceRow:         row.Position,
		EmployeeEmail:     email,
		EmployeeNumber:    optionalString(resolved, FieldEmployeeNumber),
		EmployeeName:      optionalString(resolved, FieldEmployeeName),
		Date:              date,
		StartTime:         start,
		EndTime:           end,
		IsOvernight:       isOvernight,
		HasMealBreak:      hasMealBreak,
		HasRestBreaks:     hasRestBreaks,
		IsPublicHoliday:   coerceBool(resolved[FieldIsPublicHoliday]),
		PublicHolidayName: optionalString(resolved, FieldPublicHolidayName),
		IsOnCall:          coerceBool(resolved[FieldIsOnCall]),
		Location:          optionalString(resolved, FieldLocation),
		Notes:             optionalString(resolved, FieldNotes),
	}
	if mealOK {
		entry.MealBreakDuration = &mealDuration
	}
	if restOK {
		entry.RestBreaksDuration = &restDuration
	}
	return entry, warnings
}

func (p *Parser) parseEmployeeRow(row RawRow) (*EmployeeEntry, []Issue) {
	resolved := p.resolveRow(row)

	name, ok := coerceString(resolved[FieldName])
	if !ok {
		return nil, []Issue{fatal(row, CodeMissingRequiredField, "name is required", FieldName, "")}
	}
	email, ok := coerceString(resolved[FieldEmail])
	if !ok {
		return nil, []Issue{fatal(row, CodeMissingRequiredField, "email is required", FieldEmail, "")}
	}
	role, ok := coerceString(resolved[FieldRole])
	if !ok {
		return nil, []Issue{fatal(row, CodeMissingRequiredField, "role is required", FieldRole, "")}
	}

	// The optional start date has no field-specific recovery path, so a
	// malformed value surfaces as a generic row error.
	start, present, err := coerceDate(resolved[FieldStartDate])
	if err != nil {
		return nil, []Issue{{
			Severity: SeverityError,
			Code:     CodeRowParseError,
			Message:  err.Error(),
			Row:      row.Position,
		}}
	}

	entry := &EmployeeEntry{
		SourceRow:  row.Position,
		Name:       name,
		Email:      email,
		Role:       role,
		Department: optionalString(resolved, FieldDepartment),
	}
	if present {
		entry.StartDate = &start
	}
	return entry, nil
}

func optionalString(resolved map[string]Cell, key string) string {
	s, _ := coerceString(resolved[key])
	return s
}

func fatal(row RawRow, code, message, column, value string) Issue {
	return Issue{
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Row:      row.Position,
		Column:   column,
		Value:    value,
	}
}

func emptyFileIssue() Issue {
	return Issue{
		Severity: SeverityError,
		Code:     CodeEmptyFile,
		Message:  "spreadsheet is empty or contains no data rows",
		Row:      0,
	}
}

func missingColumnsIssue(missing []string) Issue {
	return Issue{
		Severity: SeverityError,
		Code:     CodeMissingRequiredColumns,
		Message:  "missing required columns: " + strings.Join(missing, ", "),
		Row:      0,
	}
}
