package roster

// Canonical column keys. Roster columns carry an "employee" prefix while
// employee-directory columns use short names, so the two alias sets stay
// disjoint after normalization.
const (
	FieldEmployeeEmail      = "employee_email"
	FieldEmployeeNumber     = "employee_number"
	FieldEmployeeName       = "employee_name"
	FieldDate               = "date"
	FieldStartTime          = "start_time"
	FieldEndTime            = "end_time"
	FieldHasMealBreak       = "has_meal_break"
	FieldMealBreakDuration  = "meal_break_duration"
	FieldHasRestBreaks      = "has_rest_breaks"
	FieldRestBreaksDuration = "rest_breaks_duration"
	FieldIsPublicHoliday    = "is_public_holiday"
	FieldPublicHolidayName  = "public_holiday_name"
	FieldIsOnCall           = "is_on_call"
	FieldLocation           = "location"
	FieldNotes              = "notes"
	FieldName               = "name"
	FieldEmail              = "email"
	FieldRole               = "role"
	FieldDepartment         = "department"
	FieldStartDate          = "start_date"
)

// headerAliases maps each canonical key to the literal header spellings
// accepted for it, including non-Latin variants seen in customer files.
var headerAliases = map[string][]string{
	FieldEmployeeEmail:      {"employee email", "employee_email", "员工邮箱", "staff email", "worker email"},
	FieldEmployeeNumber:     {"employee number", "employee_number", "emp number", "emp_number", "employee id", "employee_id", "员工编号", "staff number"},
	FieldEmployeeName:       {"employee name", "employee_name", "员工姓名", "staff name", "worker name"},
	FieldDate:               {"date", "shift date", "shift_date", "日期"},
	FieldStartTime:          {"start time", "start_time", "start", "开始时间"},
	FieldEndTime:            {"end time", "end_time", "end", "finish time", "finish_time", "结束时间"},
	FieldHasMealBreak:       {"has meal break", "has_meal_break", "meal break", "meal_break"},
	FieldMealBreakDuration:  {"meal break duration", "meal_break_duration", "meal break mins", "meal_break_mins"},
	FieldHasRestBreaks:      {"has rest breaks", "has_rest_breaks", "rest breaks", "rest_breaks"},
	FieldRestBreaksDuration: {"rest breaks duration", "rest_breaks_duration", "rest break mins", "rest_break_mins"},
	FieldIsPublicHoliday:    {"is public holiday", "is_public_holiday", "public holiday", "public_holiday"},
	FieldPublicHolidayName:  {"public holiday name", "public_holiday_name", "holiday name", "holiday_name"},
	FieldIsOnCall:           {"is on call", "is_on_call", "on call", "on_call"},
	FieldLocation:           {"location", "work location", "work_location", "地点"},
	FieldNotes:              {"notes", "note", "comments", "comment", "备注"},
	FieldName:               {"name", "姓名", "full name"},
	FieldEmail:              {"email", "e-mail", "邮箱", "mail"},
	FieldRole:               {"role", "position", "title", "职位", "job title"},
	FieldDepartment:         {"department", "dept", "部门"},
	FieldStartDate:          {"start date", "start_date", "hire date", "hire_date", "入职日期"},
}

// Required keys per file kind, in table-declaration order. The order is
// user-visible in MISSING_REQUIRED_COLUMNS messages.
var (
	rosterRequiredFields   = []string{FieldEmployeeEmail, FieldDate, FieldStartTime, FieldEndTime}
	employeeRequiredFields = []string{FieldName, FieldEmail, FieldRole}
)

// buildAliasIndex inverts headerAliases into an exact-match lookup keyed
// by the normalized spelling of every alias.
func buildAliasIndex() map[string]string {
	index := make(map[string]string)
	for canonical, aliases := range headerAliases {
		for _, alias := range aliases {
			index[NormalizeHeader(alias)] = canonical
		}
	}
	return index
}
