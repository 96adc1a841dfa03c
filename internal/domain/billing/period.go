package billing

import (
	"fmt"
	"time"

	"github.com/ledger/backend/internal/domain/shared"
)

// Period identifies a calendar billing month. All period boundaries are
// computed in UTC so the same inputs always select the same tickets.
type Period struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// NewPeriod creates a validated billing period
func NewPeriod(year int, month int) (Period, error) {
	p := Period{Year: year, Month: time.Month(month)}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

// Validate checks the period is a plausible calendar month
func (p Period) Validate() error {
	if p.Month < time.January || p.Month > time.December {
		return shared.NewValidationError(fmt.Sprintf("invalid billing month: %d", p.Month))
	}
	if p.Year < 2000 || p.Year > 2200 {
		return shared.NewValidationError(fmt.Sprintf("invalid billing year: %d", p.Year))
	}
	return nil
}

// Start returns the first instant of the period in UTC
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the first instant of the following period in UTC
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, 0)
}

// Contains reports whether t falls inside the period
func (p Period) Contains(t time.Time) bool {
	u := t.UTC()
	return !u.Before(p.Start()) && u.Before(p.End())
}

// Next returns the following calendar month
func (p Period) Next() Period {
	if p.Month == time.December {
		return Period{Year: p.Year + 1, Month: time.January}
	}
	return Period{Year: p.Year, Month: p.Month + 1}
}

// Before reports whether p precedes other
func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}

// After reports whether p follows other
func (p Period) After(other Period) bool {
	return other.Before(p)
}

// Equal reports whether both periods name the same month
func (p Period) Equal(other Period) bool {
	return p.Year == other.Year && p.Month == other.Month
}

// String returns the period formatted as YYYY-MM
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}
