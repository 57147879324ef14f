package roster

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

// RosterEntry is one parsed shift. Date is a calendar date at midnight
// UTC; StartTime and EndTime are clock times on the zero date.
type RosterEntry struct {
	SourceRow          int
	EmployeeEmail      string
	EmployeeNumber     string
	EmployeeName       string
	Date               time.Time
	StartTime          time.Time
	EndTime            time.Time
	IsOvernight        bool
	HasMealBreak       bool
	MealBreakDuration  *int
	HasRestBreaks      bool
	RestBreaksDuration *int
	IsPublicHoliday    bool
	PublicHolidayName  string
	IsOnCall           bool
	Location           string
	Notes              string
}

// DurationHours is the gross elapsed shift time in hours, rounded to two
// decimal places. An overnight shift rolls into the next calendar day.
func (e RosterEntry) DurationHours() float64 {
	start := e.onDate(e.StartTime)
	end := e.onDate(e.EndTime)
	if e.IsOvernight {
		end = end.Add(24 * time.Hour)
	}
	return round2(end.Sub(start).Seconds() / 3600)
}

// NetHours is DurationHours minus meal and rest breaks, rounded to two
// decimal places.
func (e RosterEntry) NetHours() float64 {
	breakMinutes := 0
	if e.MealBreakDuration != nil {
		breakMinutes += *e.MealBreakDuration
	}
	if e.RestBreaksDuration != nil {
		breakMinutes += *e.RestBreaksDuration
	}
	return round2(e.DurationHours() - float64(breakMinutes)/60)
}

func (e RosterEntry) onDate(clock time.Time) time.Time {
	return time.Date(e.Date.Year(), e.Date.Month(), e.Date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC)
}

func (e RosterEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		SourceRow          int     `json:"sourceRow"`
		EmployeeEmail      string  `json:"employeeEmail"`
		EmployeeNumber     string  `json:"employeeNumber,omitempty"`
		EmployeeName       string  `json:"employeeName,omitempty"`
		Date               string  `json:"date"`
		StartTime          string  `json:"startTime"`
		EndTime            string  `json:"endTime"`
		IsOvernight        bool    `json:"isOvernight"`
		HasMealBreak       bool    `json:"hasMealBreak"`
		MealBreakDuration  *int    `json:"mealBreakDuration,omitempty"`
		HasRestBreaks      bool    `json:"hasRestBreaks"`
		RestBreaksDuration *int    `json:"restBreaksDuration,omitempty"`
		IsPublicHoliday    bool    `json:"isPublicHoliday"`
		PublicHolidayName  string  `json:"publicHolidayName,omitempty"`
		IsOnCall           bool    `json:"isOnCall"`
		Location           string  `json:"location,omitempty"`
		Notes              string  `json:"notes,omitempty"`
		DurationHours      float64 `json:"durationHours"`
		NetHours           float64 `json:"netHours"`
	}{
		SourceRow:          e.SourceRow,
		EmployeeEmail:      e.EmployeeEmail,
		EmployeeNumber:     e.EmployeeNumber,
		EmployeeName:       e.EmployeeName,
		Date:               e.Date.Format("2006-01-02"),
		StartTime:          e.StartTime.Format("15:04:05"),
		EndTime:            e.EndTime.Format("15:04:05"),
		IsOvernight:        e.IsOvernight,
		HasMealBreak:       e.HasMealBreak,
		MealBreakDuration:  e.MealBreakDuration,
		HasRestBreaks:      e.HasRestBreaks,
		RestBreaksDuration: e.RestBreaksDuration,
		IsPublicHoliday:    e.IsPublicHoliday,
		PublicHolidayName:  e.PublicHolidayName,
		IsOnCall:           e.IsOnCall,
		Location:           e.Location,
		Notes:              e.Notes,
		DurationHours:      e.DurationHours(),
		NetHours:           e.NetHours(),
	})
}

// EmployeeEntry is one parsed directory record. Email here is free text
// and deliberately not syntax-checked, unlike the roster's employee email.
type EmployeeEntry struct {
	SourceRow  int
	Name       string
	Email      string
	Role       string
	Department string
	StartDate  *time.Time
}

func (e EmployeeEntry) MarshalJSON() ([]byte, error) {
	var startDate string
	if e.StartDate != nil {
		startDate = e.StartDate.Format("2006-01-02")
	}
	return json.Marshal(struct {
		SourceRow  int    `json:"sourceRow"`
		Name       string `json:"name"`
		Email      string `json:"email"`
		Role       string `json:"role"`
		Department string `json:"department,omitempty"`
		StartDate  string `json:"startDate,omitempty"`
	}{e.SourceRow, e.Name, e.Email, e.Role, e.Department, startDate})
}

// RosterParseResult holds the accepted entries. All aggregates are
// computed on demand from the entry slice, never cached.
type RosterParseResult struct {
	Entries []RosterEntry
}

// WeekStartDate is the earliest shift date; the bool is false when the
// result is empty.
func (r RosterParseResult) WeekStartDate() (time.Time, bool) {
	if len(r.Entries) == 0 {
		return time.Time{}, false
	}
	earliest := r.Entries[0].Date
	for _, e := range r.Entries[1:] {
		if e.Date.Before(earliest) {
			earliest = e.Date
		}
	}
	return earliest, true
}

// WeekEndDate is the latest shift date.
func (r RosterParseResult) WeekEndDate() (time.Time, bool) {
	if len(r.Entries) == 0 {
		return time.Time{}, false
	}
	latest := r.Entries[0].Date
	for _, e := range r.Entries[1:] {
		if e.Date.After(latest) {
			latest = e.Date
		}
	}
	return latest, true
}

func (r RosterParseResult) TotalShifts() int { return len(r.Entries) }

// TotalHours is the sum of gross shift hours, rounded to two decimal
// places.
func (r RosterParseResult) TotalHours() float64 {
	total := 0.0
	for _, e := range r.Entries {
		total += e.DurationHours()
	}
	return round2(total)
}

// UniqueEmployees counts distinct employee emails case-insensitively.
func (r RosterParseResult) UniqueEmployees() int {
	seen := make(map[string]struct{}, len(r.Entries))
	for _, e := range r.Entries {
		seen[strings.ToLower(e.EmployeeEmail)] = struct{}{}
	}
	return len(seen)
}

func (r RosterParseResult) MarshalJSON() ([]byte, error) {
	entries := r.Entries
	if entries == nil {
		entries = []RosterEntry{}
	}
	var weekStart, weekEnd *string
	if d, ok := r.WeekStartDate(); ok {
		s := d.Format("2006-01-02")
		weekStart = &s
	}
	if d, ok := r.WeekEndDate(); ok {
		s := d.Format("2006-01-02")
		weekEnd = &s
	}
	return json.Marshal(struct {
		Entries         []RosterEntry `json:"entries"`
		WeekStartDate   *string       `json:"weekStartDate"`
		WeekEndDate     *string       `json:"weekEndDate"`
		TotalShifts     int           `json:"totalShifts"`
		TotalHours      float64       `json:"totalHours"`
		UniqueEmployees int           `json:"uniqueEmployees"`
	}{entries, weekStart, weekEnd, r.TotalShifts(), r.TotalHours(), r.UniqueEmployees()})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
