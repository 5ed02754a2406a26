package application

import (
	"math/rand"
	"sort"
	"time"

	"github.com/seatwise/seatplan/internal/domain"
)

// ScheduleResult is the outcome of one scheduling pass over a single
// (cohort, pool) pair. An unplaced student is a normal capacity outcome.
type ScheduleResult struct {
	Placed   []domain.Placement
	Unplaced []domain.Student
}

// Scheduler places students into free, compatible seats without overlapping
// times. The algorithm is greedy first-fit: it trades optimal packing for an
// explainable policy plus run-to-run fairness through candidate shuffling.
type Scheduler struct {
	catalogue domain.Catalogue
	rng       *rand.Rand
}

// NewScheduler builds a scheduler over the catalogue. The rand source drives
// candidate shuffling; pass a seeded source for deterministic runs. A nil
// source falls back to a clock seed.
func NewScheduler(catalogue domain.Catalogue, rng *rand.Rand) *Scheduler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Scheduler{catalogue: catalogue, rng: rng}
}

// Schedule seats each student in a free seat from pool, or reports them
// unplaced. Students requiring adjustable furniture are processed first so
// the scarcer adjustable seats are not starved by the rest of the cohort;
// within each sub-group students run in begin-time order. Ties on equal
// begin times keep input order; no secondary key is applied.
func (s *Scheduler) Schedule(students []domain.Student, pool []domain.SeatID) ScheduleResult {
	availability := make(map[domain.SeatID]domain.Minute, len(pool))
	for _, id := range pool {
		availability[id] = domain.MinuteMin
	}

	adjustablePool := s.catalogue.AdjustablePool(pool)

	result := ScheduleResult{}
	for _, needsAdjustable := range []bool{true, false} {
		group := make([]domain.Student, 0, len(students))
		for _, student := range students {
			if student.RequiresAdjustable == needsAdjustable {
				group = append(group, student)
			}
		}
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Begin < group[j].Begin
		})

		candidates := pool
		if needsAdjustable {
			candidates = adjustablePool
		}

		for _, student := range group {
			seat, ok := s.pick(student, candidates, availability)
			if !ok {
				result.Unplaced = append(result.Unplaced, student)
				continue
			}

			// A degenerate interval (end before begin) occupies the seat
			// for zero time rather than rewinding its availability.
			until := student.End
			if until < student.Begin {
				until = student.Begin
			}
			availability[seat] = until

			result.Placed = append(result.Placed, domain.Placement{Student: student, Seat: seat})
		}
	}

	return result
}

// pick scans a shuffled copy of the candidates and takes the first seat
// free at the student's begin time. The boundary is inclusive: a seat freed
// exactly at begin is admitted, so back-to-back windows share a seat.
func (s *Scheduler) pick(student domain.Student, candidates []domain.SeatID, availability map[domain.SeatID]domain.Minute) (domain.SeatID, bool) {
	shuffled := make([]domain.SeatID, len(candidates))
	copy(shuffled, candidates)
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	for _, seat := range shuffled {
		if student.Begin >= availability[seat] {
			return seat, true
		}
	}
	return "", false
}
