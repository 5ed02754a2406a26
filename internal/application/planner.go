package application

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/seatwise/seatplan/internal/domain"
)

// CohortOutcome reports one cohort's pass: who was seated, who was not, and
// how many placements the cross-cohort guard discarded because the student
// already held a seat from an earlier cohort.
type CohortOutcome struct {
	Name            string
	Pool            domain.PoolSelector
	PoolSize        int
	Placed          []domain.Placement
	Unplaced        []domain.Student
	PreventedDouble int
}

// RunResult is the full outcome of an assignment run.
type RunResult struct {
	Cohorts         []CohortOutcome
	Ledger          *domain.Ledger
	TotalPlaced     int
	TotalUnplaced   int
	PreventedDouble int
}

// SuccessRate returns placed / (placed + unplaced), or zero for an empty run.
func (r RunResult) SuccessRate() float64 {
	total := r.TotalPlaced + r.TotalUnplaced
	if total == 0 {
		return 0
	}
	return float64(r.TotalPlaced) / float64(total)
}

// CategoryBreakdown counts ledger seats per category.
func (r RunResult) CategoryBreakdown(catalogue domain.Catalogue) map[domain.Category]int {
	breakdown := make(map[domain.Category]int)
	for _, id := range r.Ledger.Seats() {
		seat, err := catalogue.Lookup(id)
		if err != nil {
			continue
		}
		breakdown[seat.Category]++
	}
	return breakdown
}

// RunParams configures one assignment run. Enabled restricts which seat
// categories contribute pools; a nil map enables every category. Seed drives
// candidate shuffling; zero means non-deterministic.
type RunParams struct {
	Rules    []domain.Rule
	CatchAll domain.Rule
	Enabled  map[domain.Category]bool
	Seed     int64
}

// Planner sequences the scheduler across cohorts. Cohorts run strictly in
// priority order: each pass owns its own availability state, and the only
// cross-cohort coupling is the seen-set accumulator that prevents a student
// from holding two seats.
type Planner struct {
	catalogue domain.Catalogue
}

func NewPlanner(catalogue domain.Catalogue) *Planner {
	return &Planner{catalogue: catalogue}
}

func (p *Planner) Run(ctx context.Context, students []domain.Student, params RunParams) (RunResult, error) {
	if err := ctx.Err(); err != nil {
		return RunResult{}, err
	}

	rules := params.Rules
	if rules == nil {
		rules = domain.DefaultRules()
	}
	catchAll := params.CatchAll
	if catchAll.Name == "" {
		catchAll = domain.DefaultCatchAll()
	}

	cohorts, err := domain.Classify(students, rules, catchAll)
	if err != nil {
		return RunResult{}, fmt.Errorf("classify roster: %w", err)
	}

	var rng *rand.Rand
	if params.Seed != 0 {
		rng = rand.New(rand.NewSource(params.Seed))
	}
	scheduler := NewScheduler(p.catalogue, rng)

	result := RunResult{Ledger: domain.NewLedger()}
	seen := make(map[domain.StudentID]struct{})

	for _, cohort := range cohorts {
		if err := ctx.Err(); err != nil {
			return RunResult{}, err
		}

		pool := p.resolvePool(cohort.Pool, params.Enabled)
		scheduled := scheduler.Schedule(cohort.Students, pool)

		outcome := CohortOutcome{
			Name:     cohort.Name,
			Pool:     cohort.Pool,
			PoolSize: len(pool),
			Unplaced: scheduled.Unplaced,
		}

		for _, placement := range scheduled.Placed {
			// A zero number means the roster row carried no usable student
			// id; such rows cannot be identified across cohorts and are
			// never deduplicated.
			if number := placement.Student.Number; number != 0 {
				if _, dup := seen[number]; dup {
					// The earlier placement stands; this one is demoted.
					outcome.Unplaced = append(outcome.Unplaced, placement.Student)
					outcome.PreventedDouble++
					continue
				}
				seen[number] = struct{}{}
			}

			if err := result.Ledger.Record(placement.Seat, domain.OccupantOf(placement.Student)); err != nil {
				return RunResult{}, fmt.Errorf("cohort %s: %w", cohort.Name, err)
			}
			outcome.Placed = append(outcome.Placed, placement)
		}

		result.TotalPlaced += len(outcome.Placed)
		result.TotalUnplaced += len(outcome.Unplaced)
		result.PreventedDouble += outcome.PreventedDouble
		result.Cohorts = append(result.Cohorts, outcome)
	}

	return result, nil
}

// resolvePool builds the seat-id pool for a selector, honouring both the
// per-seat enabled flag and the run-level category toggles.
func (p *Planner) resolvePool(selector domain.PoolSelector, enabled map[domain.Category]bool) []domain.SeatID {
	categoryEnabled := func(category domain.Category) bool {
		if enabled == nil {
			return true
		}
		return enabled[category]
	}

	if selector.AllAdjustable {
		pool := make([]domain.SeatID, 0)
		for _, category := range domain.Categories() {
			if !categoryEnabled(category) {
				continue
			}
			pool = append(pool, p.catalogue.AdjustablePool(p.catalogue.PoolByCategory(category, true))...)
		}
		return pool
	}

	if !categoryEnabled(selector.Category) {
		return nil
	}
	return p.catalogue.PoolByCategory(selector.Category, true)
}
