package calendar

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/username/invoicegen/pkg/dateutil"
	"go.uber.org/zap"
)

// WorkingDayCalendar answers working day questions for one UK division.
// Holiday data is fetched on first use and kept for the calendar's lifetime.
type WorkingDayCalendar struct {
	division Division
	source   HolidaySource
	logger   *zap.Logger

	mu    sync.Mutex
	index *holidayIndex // nil until loaded
}

// holidayIndex is immutable once built
type holidayIndex struct {
	holidays []Holiday          // source order
	dates    map[string]struct{} // dateutil.Key of every holiday
}

// NewWorkingDayCalendar creates a calendar bound to division. No I/O happens here.
func NewWorkingDayCalendar(division string, source HolidaySource, logger *zap.Logger) (*WorkingDayCalendar, error) {
	d, err := ParseDivision(division)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, fmt.Errorf("holiday source is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &WorkingDayCalendar{
		division: d,
		source:   source,
		logger:   logger.With(zap.String("division", string(d))),
	}, nil
}

// Division returns the division the calendar is bound to
func (c *WorkingDayCalendar) Division() Division {
	return c.division
}

// load fetches and indexes holidays once. A failed fetch leaves the
// calendar unloaded so a later call can try again.
func (c *WorkingDayCalendar) load() (*holidayIndex, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.index != nil {
		return c.index, nil
	}

	dataset, err := c.source.Fetch()
	if err != nil {
		return nil, fmt.Errorf("failed to load holidays for %s: %w", c.division, err)
	}

	events := dataset[string(c.division)].Events
	index := &holidayIndex{
		holidays: make([]Holiday, 0, len(events)),
		dates:    make(map[string]struct{}, len(events)),
	}

	for i, event := range events {
		holiday, err := parseEvent(event)
		if err != nil {
			return nil, fmt.Errorf("%s event %d: %w", c.division, i, err)
		}
		index.holidays = append(index.holidays, holiday)
		index.dates[dateutil.Key(holiday.Date)] = struct{}{}
	}

	c.index = index
	c.logger.Info("Holidays loaded", zap.Int("holidays", len(index.holidays)))

	return index, nil
}

func parseEvent(event Event) (Holiday, error) {
	date, err := dateutil.ParseDate(event.Date)
	if err != nil {
		return Holiday{}, fmt.Errorf("%w: %q: %w", ErrParse, event.Title, err)
	}

	return Holiday{
		Name:  event.Title,
		Date:  date,
		Notes: event.Notes,
	}, nil
}

func (idx *holidayIndex) has(date time.Time) bool {
	_, ok := idx.dates[dateutil.Key(date)]
	return ok
}

func (idx *holidayIndex) lookup(date time.Time) *Holiday {
	if !idx.has(date) {
		return nil
	}
	for i := range idx.holidays {
		if idx.holidays[i].Date.Equal(date) {
			h := idx.holidays[i]
			return &h
		}
	}
	return nil
}

func (idx *holidayIndex) isWorkingDay(date time.Time) bool {
	return !dateutil.IsWeekend(date) && !idx.has(date)
}

// IsWeekend checks if the date falls on Saturday or Sunday
func (c *WorkingDayCalendar) IsWeekend(date time.Time) bool {
	return dateutil.IsWeekend(dateutil.DateOf(date))
}

// IsPublicHoliday returns the holiday on date, or nil
func (c *WorkingDayCalendar) IsPublicHoliday(date time.Time) (*Holiday, error) {
	idx, err := c.load()
	if err != nil {
		return nil, err
	}
	return idx.lookup(dateutil.DateOf(date)), nil
}

// IsWorkingDay checks the date is neither a weekend nor a bank holiday
func (c *WorkingDayCalendar) IsWorkingDay(date time.Time) (bool, error) {
	idx, err := c.load()
	if err != nil {
		return false, err
	}
	return idx.isWorkingDay(dateutil.DateOf(date)), nil
}

// DayInfo returns detailed info for a specific day
func (c *WorkingDayCalendar) DayInfo(date time.Time) (*DayInfo, error) {
	idx, err := c.load()
	if err != nil {
		return nil, err
	}

	d := dateutil.DateOf(date)
	info := &DayInfo{
		Date:    d,
		Holiday: idx.lookup(d),
	}

	switch {
	case info.Holiday != nil:
		info.Type = DayTypeHoliday
	case dateutil.IsWeekend(d):
		info.Type = DayTypeWeekend
	default:
		info.Type = DayTypeWorkday
		info.IsWorkday = true
	}

	return info, nil
}

// Holidays returns the holidays of a year in source order
func (c *WorkingDayCalendar) Holidays(year int) ([]Holiday, error) {
	idx, err := c.load()
	if err != nil {
		return nil, err
	}

	result := []Holiday{}
	for _, h := range idx.holidays {
		if h.Date.Year() == year {
			result = append(result, h)
		}
	}
	return result, nil
}

// HolidaysInRange returns holidays between start and end inclusive, sorted by date.
// start after end is not an error and yields no holidays.
func (c *WorkingDayCalendar) HolidaysInRange(start, end time.Time) ([]Holiday, error) {
	idx, err := c.load()
	if err != nil {
		return nil, err
	}

	start, end = dateutil.DateOf(start), dateutil.DateOf(end)
	result := []Holiday{}
	for _, h := range idx.holidays {
		if !h.Date.Before(start) && !h.Date.After(end) {
			result = append(result, h)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

// WorkingDaysInRange counts working days between start and end inclusive
func (c *WorkingDayCalendar) WorkingDaysInRange(start, end time.Time) (int, error) {
	days, err := c.WorkingDaysList(start, end)
	if err != nil {
		return 0, err
	}
	return len(days), nil
}

// WorkingDaysList lists working days between start and end inclusive, ascending
func (c *WorkingDayCalendar) WorkingDaysList(start, end time.Time) ([]time.Time, error) {
	start, end = dateutil.DateOf(start), dateutil.DateOf(end)
	if start.After(end) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange,
			start.Format(dateutil.ISODate), end.Format(dateutil.ISODate))
	}

	idx, err := c.load()
	if err != nil {
		return nil, err
	}

	days := []time.Time{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if idx.isWorkingDay(d) {
			days = append(days, d)
		}
	}
	return days, nil
}

// NextWorkingDay returns the first working day strictly after date
func (c *WorkingDayCalendar) NextWorkingDay(date time.Time) (time.Time, error) {
	return c.step(date, 1)
}

// PreviousWorkingDay returns the last working day strictly before date
func (c *WorkingDayCalendar) PreviousWorkingDay(date time.Time) (time.Time, error) {
	return c.step(date, -1)
}

func (c *WorkingDayCalendar) step(date time.Time, direction int) (time.Time, error) {
	idx, err := c.load()
	if err != nil {
		return time.Time{}, err
	}

	d := dateutil.DateOf(date).AddDate(0, 0, direction)
	for !idx.isWorkingDay(d) {
		d = d.AddDate(0, 0, direction)
	}
	return d, nil
}

// AddWorkingDays moves n working days from start; negative n moves backwards.
// start itself is never counted. n == 0 returns start without loading data.
func (c *WorkingDayCalendar) AddWorkingDays(start time.Time, n int) (time.Time, error) {
	d := dateutil.DateOf(start)
	if n == 0 {
		return d, nil
	}

	idx, err := c.load()
	if err != nil {
		return time.Time{}, err
	}

	direction := 1
	remaining := n
	if n < 0 {
		direction = -1
		remaining = -n
	}

	for remaining > 0 {
		d = d.AddDate(0, 0, direction)
		if idx.isWorkingDay(d) {
			remaining--
		}
	}
	return d, nil
}

// MonthSummary returns working day statistics for a month
func (c *WorkingDayCalendar) MonthSummary(year int, month time.Month) (*MonthSummary, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMonth, int(month))
	}

	idx, err := c.load()
	if err != nil {
		return nil, err
	}

	first, last := dateutil.MonthBounds(year, month)
	summary := &MonthSummary{
		Year:     year,
		Month:    month,
		Holidays: []Holiday{},
	}

	for _, h := range idx.holidays {
		if h.Date.Before(first) || h.Date.After(last) {
			continue
		}
		summary.Holidays = append(summary.Holidays, h)
	}
	summary.PublicHolidays = len(summary.Holidays)

	// weekend holidays are already counted in Weekends
	holidayWeekdays := make(map[string]struct{})
	for _, h := range summary.Holidays {
		if dateutil.IsWeekday(h.Date) {
			holidayWeekdays[dateutil.Key(h.Date)] = struct{}{}
		}
	}
	summary.HolidayWeekdayCount = len(holidayWeekdays)

	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		summary.TotalDays++
		if dateutil.IsWeekend(d) {
			summary.Weekends++
		}
	}

	summary.WorkingDays = summary.TotalDays - summary.Weekends - summary.HolidayWeekdayCount

	c.logger.Debug("Month summary computed",
		zap.Int("year", year),
		zap.Int("month", int(month)),
		zap.Int("working_days", summary.WorkingDays))

	return summary, nil
}
