package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

// Catalogue is the static registry of seats. It is constructed once at
// process start and only ever queried afterwards.
type Catalogue struct {
	byID  map[SeatID]Seat
	order []SeatID
}

func NewCatalogue(seats []Seat) (Catalogue, error) {
	byID := make(map[SeatID]Seat, len(seats))
	order := make([]SeatID, 0, len(seats))

	for _, seat := range seats {
		if seat.ID == "" {
			return Catalogue{}, fmt.Errorf("seat id is required")
		}
		if !seat.Category.Valid() {
			return Catalogue{}, fmt.Errorf("seat %s: unknown category %q", seat.ID, seat.Category)
		}
		if _, ok := byID[seat.ID]; ok {
			return Catalogue{}, fmt.Errorf("duplicate seat id %s", seat.ID)
		}
		byID[seat.ID] = seat
		order = append(order, seat.ID)
	}

	return Catalogue{byID: byID, order: order}, nil
}

func (c Catalogue) Len() int { return len(c.order) }

// Lookup returns the seat for id or ErrSeatNotFound. An unknown id is a
// data condition, not a fault: callers degrade to id-text parsing.
func (c Catalogue) Lookup(id SeatID) (Seat, error) {
	seat, ok := c.byID[id]
	if !ok {
		return Seat{}, ErrSeatNotFound
	}
	return seat, nil
}

// Seats returns every seat in catalogue order.
func (c Catalogue) Seats() []Seat {
	seats := make([]Seat, 0, len(c.order))
	for _, id := range c.order {
		seats = append(seats, c.byID[id])
	}
	return seats
}

// PoolByCategory returns the ids of every seat in the category, in catalogue
// order. With enabledOnly set, disabled seats are skipped.
func (c Catalogue) PoolByCategory(category Category, enabledOnly bool) []SeatID {
	pool := make([]SeatID, 0, len(c.order))
	for _, id := range c.order {
		seat := c.byID[id]
		if seat.Category != category {
			continue
		}
		if enabledOnly && !seat.Enabled {
			continue
		}
		pool = append(pool, id)
	}
	return pool
}

// AdjustablePool filters candidates down to seats whose adjustable flag is
// set. Ids missing from the catalogue are dropped.
func (c Catalogue) AdjustablePool(candidates []SeatID) []SeatID {
	pool := make([]SeatID, 0, len(candidates))
	for _, id := range candidates {
		if seat, ok := c.byID[id]; ok && seat.Adjustable {
			pool = append(pool, id)
		}
	}
	return pool
}

var seatNumberPattern = regexp.MustCompile(`(\d+)\s*$`)

// SeatNumber returns the numeric index for a seat id. When the id is not
// catalogued there is no seat-number metadata, so the trailing digits of the
// id text are used instead; zero means no number could be determined.
func (c Catalogue) SeatNumber(id SeatID) int {
	if seat, ok := c.byID[id]; ok {
		return seat.Number
	}
	if match := seatNumberPattern.FindStringSubmatch(string(id)); match != nil {
		if n, err := strconv.Atoi(match[1]); err == nil {
			return n
		}
	}
	return 0
}

// DefaultCatalogue builds the standard testing-centre layout: ten
// workstations (WS 6 adjustable), thirty open seats (13, 15 and 30
// adjustable), private rooms 345-354 (six adjustable), twelve quiet offices
// (office 5 adjustable) and four classroom groups.
func DefaultCatalogue() Catalogue {
	seats := make([]Seat, 0, 150)

	for n := 1; n <= 10; n++ {
		seats = append(seats, Seat{
			ID:         SeatID(fmt.Sprintf("WS %d", n)),
			Category:   CategoryWorkstation,
			Number:     n,
			Adjustable: n == 6,
			Enabled:    true,
		})
	}

	for n := 1; n <= 30; n++ {
		seats = append(seats, Seat{
			ID:         SeatID(fmt.Sprintf("Seat %d", n)),
			Category:   CategoryOpen,
			Number:     n,
			Adjustable: n == 13 || n == 15 || n == 30,
			Enabled:    true,
		})
	}

	adjustableRooms := map[int]bool{345: true, 347: true, 348: true, 349: true, 351: true, 354: true}
	for n := 345; n <= 354; n++ {
		seats = append(seats, Seat{
			ID:         SeatID(fmt.Sprintf("Room %d", n)),
			Category:   CategoryPrivateRoom,
			Number:     n,
			Adjustable: adjustableRooms[n],
			Enabled:    true,
		})
	}

	for n := 1; n <= 12; n++ {
		seats = append(seats, Seat{
			ID:         SeatID(fmt.Sprintf("Office %d", n)),
			Category:   CategoryQuietOffice,
			Number:     n,
			Adjustable: n == 5,
			Enabled:    true,
		})
	}

	classrooms := []struct {
		room       int
		seats      int
		adjustable int
	}{
		{room: 356, seats: 17, adjustable: 1},
		{room: 357, seats: 19, adjustable: 1},
		{room: 358, seats: 31, adjustable: 3},
		{room: 359, seats: 18, adjustable: 1},
	}
	for _, group := range classrooms {
		for n := 1; n <= group.seats; n++ {
			seats = append(seats, Seat{
				ID:         SeatID(fmt.Sprintf("Class %d Seat %d", group.room, n)),
				Category:   CategoryClassroom,
				Number:     n,
				Adjustable: n <= group.adjustable,
				Enabled:    true,
				Classroom:  group.room,
			})
		}
	}

	catalogue, err := NewCatalogue(seats)
	if err != nil {
		// The default layout is static and verified by tests.
		panic(err)
	}
	return catalogue
}
