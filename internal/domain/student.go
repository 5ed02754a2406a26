package domain

import "strings"

type StudentID int64

// Student is one roster row. Records are read-only through scheduling; the
// assigned seat is reported separately through placements and the ledger.
// Begin <= End is not guaranteed by upstream data and is tolerated.
type Student struct {
	Number    StudentID
	LastName  string
	FirstName string

	Begin Minute
	End   Minute
	// Class is the reference class time used by the evening cohort rule.
	Class Minute

	// Accommodation is the free-text accommodation descriptor; the derived
	// RequiresAdjustable flag is computed from it exactly once, at ingest.
	Accommodation      string
	RequiresAdjustable bool

	Course  string
	Code    string
	Faculty string
}

const adjustableMarker = "height adjustable"

// NeedsAdjustable reports whether the accommodation text requests
// height-adjustable furniture, matched case-insensitively.
func NeedsAdjustable(accommodation string) bool {
	return strings.Contains(strings.ToLower(accommodation), adjustableMarker)
}
