package calendar

import "errors"

var (
	// ErrUnknownDivision is returned when a calendar is created for a division name
	// that is not one of the UK divisions or their aliases.
	ErrUnknownDivision = errors.New("unknown division")

	// ErrSourceUnavailable is returned when holiday data cannot be retrieved at all.
	ErrSourceUnavailable = errors.New("holiday source unavailable")

	// ErrSourceStatus is returned when the holiday source answers with a non-success status.
	ErrSourceStatus = errors.New("holiday source returned error status")

	// ErrParse is returned for a malformed holiday document or record.
	ErrParse = errors.New("malformed holiday data")

	// ErrInvalidRange is returned when start is after end on a strict range query.
	ErrInvalidRange = errors.New("start date must be before or equal to end date")

	// ErrInvalidMonth is returned for a month outside 1..12.
	ErrInvalidMonth = errors.New("month must be between 1 and 12")
)
