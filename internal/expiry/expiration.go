// Package expiry provides expiration-date time mechanics for derivatives.
package expiry

import (
	"fmt"
	"sync"
	"time"
)

// Layout is the textual expiration date format (two-digit year, month, day).
const Layout = "060102"

// DaysPerYear is the simple year convention used for year fractions.
const DaysPerYear = 365.0

// now is swapped out in tests.
var now = time.Now

// ExpirationDate represents the expiration date of a financial instrument.
// Time to expiration is recomputed from the wall clock on every read unless
// it has been pinned with FixTime.
type ExpirationDate struct {
	raw string
	at  time.Time

	mu         sync.RWMutex
	fixed      bool
	fixedYears float64
}

// Parse validates and parses an expiration date in YYMMDD form.
func Parse(date string) (*ExpirationDate, error) {
	at, err := time.Parse(Layout, date)
	if err != nil {
		return nil, fmt.Errorf("invalid expiration date %q: expected YYMMDD: %w", date, err)
	}
	return &ExpirationDate{raw: date, at: at}, nil
}

// MustParse is like Parse but panics on error. For use in tests and fixtures.
func MustParse(date string) *ExpirationDate {
	e, err := Parse(date)
	if err != nil {
		panic(err)
	}
	return e
}

// T returns the time to expiration as a year fraction. One extra day is added
// so the expiration day itself still counts as alive.
func (e *ExpirationDate) T() float64 {
	e.mu.RLock()
	if e.fixed {
		defer e.mu.RUnlock()
		return e.fixedYears
	}
	e.mu.RUnlock()

	days := e.at.Sub(now()).Hours()/24 + 1
	return days / DaysPerYear
}

// FixTime pins the time to expiration to a fixed year fraction, ignoring the
// wall clock until UnfixTime is called.
func (e *ExpirationDate) FixTime(years float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fixed = true
	e.fixedYears = years
}

// UnfixTime reverts to dynamic wall-clock computation.
func (e *ExpirationDate) UnfixTime() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fixed = false
	e.fixedYears = 0
}

// IsTimeFixed reports whether the time to expiration is currently pinned.
func (e *ExpirationDate) IsTimeFixed() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.fixed
}

// IsExpired reports whether the expiration date has passed.
func (e *ExpirationDate) IsExpired() bool {
	return e.T() <= 0
}

// DaysToExpiration returns the time to expiration in days.
func (e *ExpirationDate) DaysToExpiration() float64 {
	return e.T() * DaysPerYear
}

// Time returns the parsed expiration date (midnight, UTC).
func (e *ExpirationDate) Time() time.Time {
	return e.at
}

// String returns the raw YYMMDD form.
func (e *ExpirationDate) String() string {
	return e.raw
}
