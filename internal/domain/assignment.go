package domain

import (
	"fmt"
	"time"
)

// Occupant is the externally visible summary of who holds a seat. The JSON
// shape matches the persisted assigns.json format.
type Occupant struct {
	Number             StudentID `json:"student_number"`
	LastName           string    `json:"last_name"`
	FirstName          string    `json:"first_name"`
	RequiresAdjustable bool      `json:"requiresAdjust"`
}

func OccupantOf(s Student) Occupant {
	return Occupant{
		Number:             s.Number,
		LastName:           s.LastName,
		FirstName:          s.FirstName,
		RequiresAdjustable: s.RequiresAdjustable,
	}
}

// Placement pairs a student with the seat they were granted.
type Placement struct {
	Student Student
	Seat    SeatID
}

// Ledger is the final seat-to-occupant mapping for a run. Each seat id may
// be recorded at most once; a second write is a scheduler defect, not a data
// condition, and fails loudly.
type Ledger struct {
	occupants map[SeatID]Occupant
	order     []SeatID
}

func NewLedger() *Ledger {
	return &Ledger{occupants: make(map[SeatID]Occupant)}
}

func (l *Ledger) Record(seat SeatID, occupant Occupant) error {
	if existing, ok := l.occupants[seat]; ok {
		return fmt.Errorf("%w: seat %s already held by student %d", ErrSeatOccupied, seat, existing.Number)
	}
	l.occupants[seat] = occupant
	l.order = append(l.order, seat)
	return nil
}

func (l *Ledger) Len() int { return len(l.order) }

// Seats returns the recorded seat ids in insertion order.
func (l *Ledger) Seats() []SeatID {
	seats := make([]SeatID, len(l.order))
	copy(seats, l.order)
	return seats
}

func (l *Ledger) Occupant(seat SeatID) (Occupant, bool) {
	occupant, ok := l.occupants[seat]
	return occupant, ok
}

// Export returns the mapping as a plain map for serialization.
func (l *Ledger) Export() map[SeatID]Occupant {
	out := make(map[SeatID]Occupant, len(l.occupants))
	for seat, occupant := range l.occupants {
		out[seat] = occupant
	}
	return out
}

// RunRecord summarizes one completed assignment run for the history store.
type RunRecord struct {
	ID         int64
	RosterPath string
	Seed       int64
	Placed     int
	Unplaced   int
	Prevented  int
	RanAt      time.Time
	Cohorts    []CohortCount
}

type CohortCount struct {
	Name     string
	Placed   int
	Unplaced int
}
