package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Division is a UK bank holiday jurisdiction
type Division string

const (
	EnglandAndWales Division = "england-and-wales"
	Scotland        Division = "scotland"
	NorthernIreland Division = "northern-ireland"
)

// DefaultDivision is used when no division is given
const DefaultDivision = EnglandAndWales

var divisionAliases = map[string]Division{
	"england":           EnglandAndWales,
	"wales":             EnglandAndWales,
	"england-and-wales": EnglandAndWales,
	"scotland":          Scotland,
	"northern-ireland":  NorthernIreland,
}

// Divisions returns the three canonical divisions
func Divisions() []Division {
	return []Division{EnglandAndWales, Scotland, NorthernIreland}
}

// ParseDivision normalizes a division name or alias.
// Matching is case-insensitive; an empty name selects DefaultDivision.
func ParseDivision(name string) (Division, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return DefaultDivision, nil
	}

	division, ok := divisionAliases[key]
	if !ok {
		valid := make([]string, 0, len(divisionAliases))
		for alias := range divisionAliases {
			valid = append(valid, alias)
		}
		sort.Strings(valid)
		return "", fmt.Errorf("%w '%s', valid: %s", ErrUnknownDivision, name, strings.Join(valid, ", "))
	}

	return division, nil
}

// Holiday represents a single bank holiday
type Holiday struct {
	Name  string
	Date  time.Time // UTC midnight
	Notes string
}

// DayType represents the type of day
type DayType int

const (
	DayTypeWorkday DayType = iota + 1
	DayTypeWeekend
	DayTypeHoliday
)

func (t DayType) String() string {
	switch t {
	case DayTypeWorkday:
		return "working day"
	case DayTypeWeekend:
		return "weekend"
	case DayTypeHoliday:
		return "bank holiday"
	default:
		return "unknown"
	}
}

// DayInfo represents information about a specific day.
// A bank holiday that falls on a weekend is reported as DayTypeHoliday.
type DayInfo struct {
	Date      time.Time
	Type      DayType
	IsWorkday bool
	Holiday   *Holiday
}

// MonthSummary represents working day statistics for a calendar month
type MonthSummary struct {
	Year                int
	Month               time.Month
	TotalDays           int
	WorkingDays         int
	Weekends            int
	PublicHolidays      int // includes holidays falling on a weekend
	HolidayWeekdayCount int // holidays on Mon-Fri only
	Holidays            []Holiday
}
