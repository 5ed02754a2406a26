package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// RuleKind selects what a cohort rule inspects.
type RuleKind string

const (
	// RuleAccommodation matches the free-text accommodation descriptor
	// against a case-insensitive pattern.
	RuleAccommodation RuleKind = "accommodation"
	// RuleAdjustable matches students whose derived adjustable flag is set.
	RuleAdjustable RuleKind = "adjustable"
	// RuleEvening matches students writing until the late-hour boundary who
	// start before their reference class time.
	RuleEvening RuleKind = "evening"
)

// PoolSelector names the seat pool a cohort draws from: a single category,
// or the union of adjustable seats across every enabled category.
type PoolSelector struct {
	Category      Category
	AllAdjustable bool
}

func (s PoolSelector) Valid() bool {
	if s.AllAdjustable {
		return s.Category == ""
	}
	return s.Category.Valid()
}

func (s PoolSelector) String() string {
	if s.AllAdjustable {
		return "all adjustable seats"
	}
	return s.Category.Label()
}

// Rule is one cohort-classification rule. Rule order in the list is the
// priority order: earlier rules claim students before later ones see them.
type Rule struct {
	Name    string
	Kind    RuleKind
	Pattern string
	Pool    PoolSelector
}

func (r Rule) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("rule name is required")
	}
	switch r.Kind {
	case RuleAccommodation:
		if strings.TrimSpace(r.Pattern) == "" {
			return fmt.Errorf("rule %s: pattern is required", r.Name)
		}
	case RuleAdjustable, RuleEvening:
	default:
		return fmt.Errorf("rule %s: unknown kind %q", r.Name, r.Kind)
	}
	if !r.Pool.Valid() {
		return fmt.Errorf("rule %s: invalid pool selector", r.Name)
	}
	return nil
}

func (r Rule) matcher() (func(Student) bool, error) {
	switch r.Kind {
	case RuleAccommodation:
		pattern, err := regexp.Compile("(?i)" + r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %s: compile pattern: %w", r.Name, err)
		}
		return func(s Student) bool {
			return pattern.MatchString(s.Accommodation)
		}, nil
	case RuleAdjustable:
		return func(s Student) bool {
			return s.RequiresAdjustable
		}, nil
	case RuleEvening:
		return func(s Student) bool {
			return s.End == EveningEnd && s.Begin < s.Class
		}, nil
	default:
		return nil, fmt.Errorf("rule %s: unknown kind %q", r.Name, r.Kind)
	}
}

// Cohort is a named, ordered subset of the roster plus the pool selector its
// students are seated from.
type Cohort struct {
	Name     string
	Pool     PoolSelector
	Students []Student
}

// Classify partitions students into cohorts by evaluating rules in order.
// Each rule claims only still-unclassified students, so the partition is
// total and disjoint by construction; whatever no rule claims lands in the
// catch-all cohort. The catch-all's pattern is ignored.
func Classify(students []Student, rules []Rule, catchAll Rule) ([]Cohort, error) {
	if strings.TrimSpace(catchAll.Name) == "" {
		return nil, fmt.Errorf("catch-all rule name is required")
	}
	if !catchAll.Pool.Valid() {
		return nil, fmt.Errorf("catch-all rule %s: invalid pool selector", catchAll.Name)
	}

	cohorts := make([]Cohort, 0, len(rules)+1)
	remaining := make([]Student, len(students))
	copy(remaining, students)

	for _, rule := range rules {
		if err := rule.Validate(); err != nil {
			return nil, err
		}
		match, err := rule.matcher()
		if err != nil {
			return nil, err
		}

		claimed := make([]Student, 0)
		rest := remaining[:0]
		for _, student := range remaining {
			if match(student) {
				claimed = append(claimed, student)
			} else {
				rest = append(rest, student)
			}
		}
		remaining = rest

		cohorts = append(cohorts, Cohort{Name: rule.Name, Pool: rule.Pool, Students: claimed})
	}

	cohorts = append(cohorts, Cohort{Name: catchAll.Name, Pool: catchAll.Pool, Students: remaining})

	return cohorts, nil
}

// DefaultRules is the standard priority order: explicit private-room
// requests first, then workstation software needs, then quiet-office
// accommodations. The catch-all main cohort seats everyone else in the open
// area.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:    "private-room",
			Kind:    RuleAccommodation,
			Pattern: "private room",
			Pool:    PoolSelector{Category: CategoryPrivateRoom},
		},
		{
			Name:    "workstation",
			Kind:    RuleAccommodation,
			Pattern: "read and write|ms word|kurzweil",
			Pool:    PoolSelector{Category: CategoryWorkstation},
		},
		{
			Name:    "quiet-office",
			Kind:    RuleAccommodation,
			Pattern: "sas|special|separate|individual|extra time|alternative|modified",
			Pool:    PoolSelector{Category: CategoryQuietOffice},
		},
	}
}

// DefaultCatchAll is the main cohort fed from open-area seating.
func DefaultCatchAll() Rule {
	return Rule{
		Name: "main",
		Kind: RuleAccommodation,
		Pool: PoolSelector{Category: CategoryOpen},
	}
}
