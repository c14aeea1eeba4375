package calendar

// HolidaySource provides the raw bank holiday dataset for all divisions
type HolidaySource interface {
	// Fetch returns the complete dataset keyed by division name
	Fetch() (Dataset, error)
}

// Dataset mirrors the GOV.UK bank-holidays.json document.
// Keys are division names such as "england-and-wales".
type Dataset map[string]DivisionEvents

// DivisionEvents holds the published events of one division
type DivisionEvents struct {
	Division string  `json:"division"`
	Events   []Event `json:"events"`
}

// Event is a raw holiday record; fields other than these are ignored
type Event struct {
	Title string `json:"title"`
	Date  string `json:"date"` // YYYY-MM-DD
	Notes string `json:"notes"`
}

// SourceFunc adapts a plain function to HolidaySource
type SourceFunc func() (Dataset, error)

// Fetch calls f()
func (f SourceFunc) Fetch() (Dataset, error) {
	return f()
}
