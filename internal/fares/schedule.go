// Package fares holds the named rate table every fare computation reads.
package fares

import (
	"fmt"
	"sync"
)

// Rate names a configurable amount in the schedule.
type Rate string

const (
	RateFine          Rate = "fine"
	RateMaxFare       Rate = "maxFare"
	RateBusFare       Rate = "busFare"
	RateSubwayFare    Rate = "subwayFare"
	RateWeeklyPass    Rate = "weeklyPass"
	RateMonthlyPass   Rate = "monthlyPass"
	RateNewCard       Rate = "newCard"
	RateCardInitValue Rate = "cardInitValue"
)

// Schedule is a mutable, process-wide rate table. It is owned by the
// application and injected into everything that charges money.
type Schedule struct {
	mu    sync.RWMutex
	rates map[Rate]float64
}

// NewSchedule returns a Schedule preloaded with the standard tariff.
func NewSchedule() *Schedule {
	return &Schedule{
		rates: map[Rate]float64{
			RateFine:          6,
			RateMaxFare:       6,
			RateBusFare:       2.0,
			RateSubwayFare:    0.5,
			RateWeeklyPass:    40,
			RateMonthlyPass:   100,
			RateNewCard:       9.99,
			RateCardInitValue: 19,
		},
	}
}

// Get returns the current amount for the named rate. Unknown rates are 0.
func (s *Schedule) Get(rate Rate) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rates[rate]
}

// Set updates the named rate. All rates must be non-negative.
func (s *Schedule) Set(rate Rate, amount float64) error {
	if amount < 0 {
		return fmt.Errorf("rate %q must be non-negative, got %v", rate, amount)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rates[rate]; !ok {
		return fmt.Errorf("unknown rate %q", rate)
	}
	s.rates[rate] = amount
	return nil
}

// Snapshot returns a copy of the whole table, for the schedule endpoint.
func (s *Schedule) Snapshot() map[Rate]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[Rate]float64, len(s.rates))
	for k, v := range s.rates {
		out[k] = v
	}
	return out
}
