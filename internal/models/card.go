package models

import (
	"time"

	"farecard.opentransit.org/internal/cards"
	"farecard.opentransit.org/internal/trips"
)

// CardSummary is the card detail returned by the card endpoints.
type CardSummary struct {
	Number       string  `json:"number"`
	AccountID    string  `json:"accountId"`
	Balance      float64 `json:"balance"`
	Activated    bool    `json:"activated"`
	HasValidPass bool    `json:"hasValidPass"`
}

// NewCardSummary builds a CardSummary from a card.
func NewCardSummary(c *cards.Card) CardSummary {
	return CardSummary{
		Number:       c.Number(),
		AccountID:    c.AccountID(),
		Balance:      c.Balance(),
		Activated:    c.Activated(),
		HasValidPass: c.HasValidPass(time.Now()),
	}
}

// LegModel is one leg of a trip as returned by the trip endpoints.
type LegModel struct {
	Kind      string     `json:"kind"`
	Route     string     `json:"route"`
	Start     string     `json:"start"`
	End       string     `json:"end,omitempty"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Stops     int        `json:"stops"`
	Fare      float64    `json:"fare"`
	Finished  bool       `json:"finished"`
}

// TripModel is a trip with its legs.
type TripModel struct {
	StartTime time.Time  `json:"startTime"`
	TotalFare float64    `json:"totalFare"`
	Legs      []LegModel `json:"legs"`
}

// NewTripModel builds a TripModel from a trip.
func NewTripModel(t *trips.Trip) TripModel {
	legs := t.Legs()
	m := TripModel{
		StartTime: t.StartTime(),
		TotalFare: t.TotalFare(),
		Legs:      make([]LegModel, 0, len(legs)),
	}
	for _, leg := range legs {
		lm := LegModel{
			Kind:      string(leg.Kind),
			Route:     leg.Route,
			Start:     leg.StartStation,
			StartTime: leg.StartTime,
			Stops:     leg.Stops,
			Fare:      leg.Fare,
			Finished:  leg.Finished,
		}
		if leg.Finished {
			lm.End = leg.EndStation
			endTime := leg.EndTime
			lm.EndTime = &endTime
		}
		m.Legs = append(m.Legs, lm)
	}
	return m
}

// NewTripModels builds TripModels for a list of trips.
func NewTripModels(ts []*trips.Trip) []TripModel {
	out := make([]TripModel, 0, len(ts))
	for _, t := range ts {
		out = append(out, NewTripModel(t))
	}
	return out
}

// TransactionModel is one ledger entry on a card.
type TransactionModel struct {
	Time   time.Time `json:"time"`
	Amount float64   `json:"amount"`
}

// NewTransactionModels builds TransactionModels from card ledger entries.
func NewTransactionModels(txs []cards.Transaction) []TransactionModel {
	out := make([]TransactionModel, 0, len(txs))
	for _, tx := range txs {
		out = append(out, TransactionModel{Time: tx.Time, Amount: tx.Amount})
	}
	return out
}

// PassModel is a transit pass held by a card.
type PassModel struct {
	Type  string    `json:"type"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Price float64   `json:"price"`
}

// NewPassModels builds PassModels from a card's passes.
func NewPassModels(passes []*cards.TransitPass) []PassModel {
	out := make([]PassModel, 0, len(passes))
	for _, p := range passes {
		out = append(out, PassModel{
			Type:  string(p.Type),
			Start: p.Start,
			End:   p.End,
			Price: p.Price,
		})
	}
	return out
}

// AccountModel is an account with the cards attached to it.
type AccountModel struct {
	ID          string   `json:"id"`
	CardNumbers []string `json:"cardNumbers"`
}
