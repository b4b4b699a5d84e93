package cards

import (
	"errors"
	"time"

	"farecard.opentransit.org/internal/fares"
)

// ErrInvalidPassDuration reports a pass purchase with a duration the system
// does not sell.
var ErrInvalidPassDuration = errors.New("invalid transit pass duration")

// PassType names the two pass products.
type PassType string

const (
	PassWeekly  PassType = "weekly"
	PassMonthly PassType = "monthly"
)

// TransitPass is a time-bounded all-you-can-ride entitlement on a card.
// Validity is inclusive of the start date and exclusive of the end date.
type TransitPass struct {
	Type  PassType  `json:"type"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Price float64   `json:"price"`
}

// NewTransitPass prices a pass starting on the given date. Only 7-day and
// 30-day passes exist.
func NewTransitPass(start time.Time, days int, schedule *fares.Schedule) (*TransitPass, error) {
	start = dateOf(start)
	switch days {
	case 7:
		return &TransitPass{
			Type:  PassWeekly,
			Start: start,
			End:   start.AddDate(0, 0, 7),
			Price: schedule.Get(fares.RateWeeklyPass),
		}, nil
	case 30:
		return &TransitPass{
			Type:  PassMonthly,
			Start: start,
			End:   start.AddDate(0, 0, 30),
			Price: schedule.Get(fares.RateMonthlyPass),
		}, nil
	default:
		return nil, ErrInvalidPassDuration
	}
}

// Valid reports whether the pass covers the given moment.
func (p *TransitPass) Valid(at time.Time) bool {
	d := dateOf(at)
	return !d.Before(p.Start) && d.Before(p.End)
}

// Expired reports whether the pass window has closed. A future-dated pass is
// not yet valid but also not expired.
func (p *TransitPass) Expired(at time.Time) bool {
	return !dateOf(at).Before(p.End)
}

// dateOf truncates a timestamp to its calendar date.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
