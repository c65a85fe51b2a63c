// Package age derives the human-readable age shown next to a patient.
//
// Every form that displays an age goes through this package so the average
// day counts below stay the same everywhere.
package age

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	// DaysPerYear is the average year length used for age derivation.
	DaysPerYear = 365.25
	// DaysPerMonth is the average month length used for age derivation.
	DaysPerMonth = 30.44
)

const (
	msPerDay   = 24 * 3600 * 1000
	msPerYear  = DaysPerYear * msPerDay
	msPerMonth = DaysPerMonth * msPerDay
)

// ErrUnparsable is returned by Parse when no supported layout matches.
var ErrUnparsable = errors.New("unparsable date")

var layouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// Deriver computes ages against a reference date, falling back to Now.
type Deriver struct {
	Now func() time.Time
}

var defaultDeriver = Deriver{Now: time.Now}

// Derive returns "<N> months" or "<N> years" for the elapsed time between
// birth and reference. An empty reference means now. It returns "" when
// either date cannot be parsed or when birth is after reference.
func Derive(birth, reference string) string {
	return defaultDeriver.Derive(birth, reference)
}

// Derive is the clock-aware variant of the package-level Derive.
func (d Deriver) Derive(birth, reference string) string {
	born, err := Parse(birth)
	if err != nil {
		return ""
	}
	var ref time.Time
	if strings.TrimSpace(reference) == "" {
		ref = d.now()
	} else {
		ref, err = Parse(reference)
		if err != nil {
			return ""
		}
	}
	return Between(born, ref)
}

// Between formats the elapsed time from birth to reference.
func Between(birth, reference time.Time) string {
	elapsed := float64(reference.Sub(birth).Milliseconds())
	if elapsed < 0 {
		return ""
	}
	years := math.Floor(elapsed / msPerYear)
	if years < 1 {
		// rounding may reach 12 just under a year
		months := math.Min(math.Round(elapsed/msPerMonth), 11)
		return fmt.Sprintf("%d months", int64(months))
	}
	return fmt.Sprintf("%d years", int64(years))
}

// Parse accepts the date layouts the office systems emit. Date-only values
// are interpreted as UTC midnight.
func Parse(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrUnparsable
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparsable, value)
}

func (d Deriver) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}
