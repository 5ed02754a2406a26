package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func student(number StudentID, accommodation string) Student {
	return Student{
		Number:             number,
		Accommodation:      accommodation,
		RequiresAdjustable: NeedsAdjustable(accommodation),
	}
}

func TestClassifyPartitionIsTotalAndDisjoint(t *testing.T) {
	t.Parallel()

	roster := []Student{
		student(1, "Private Room; Height Adjustable Desk"),
		student(2, "MS Word"),
		student(3, "Extra Time 50%"),
		student(4, ""),
		student(5, "Kurzweil reader"),
		student(6, "private room"),
		student(7, "SAS accommodations apply"),
	}

	cohorts, err := Classify(roster, DefaultRules(), DefaultCatchAll())
	require.NoError(t, err)
	require.Len(t, cohorts, 4)

	seen := map[StudentID]string{}
	total := 0
	for _, cohort := range cohorts {
		for _, s := range cohort.Students {
			prev, dup := seen[s.Number]
			require.False(t, dup, "student %d in both %s and %s", s.Number, prev, cohort.Name)
			seen[s.Number] = cohort.Name
			total++
		}
	}
	assert.Equal(t, len(roster), total)
}

func TestClassifyRuleOrderEncodesPriority(t *testing.T) {
	t.Parallel()

	// Matches both the private-room and workstation rules; the earlier rule
	// must claim it.
	roster := []Student{student(1, "Private Room with MS Word")}

	cohorts, err := Classify(roster, DefaultRules(), DefaultCatchAll())
	require.NoError(t, err)

	assert.Len(t, cohorts[0].Students, 1)
	assert.Equal(t, "private-room", cohorts[0].Name)
	assert.Len(t, cohorts[1].Students, 0)
}

func TestClassifyQuietOfficeKeywords(t *testing.T) {
	t.Parallel()

	accommodations := []string{
		"SAS accommodations apply",
		"Special arrangements",
		"Separate location",
		"Individual setting",
		"Extra Time 50%",
		"Alternative format",
		"Modified schedule",
	}

	for _, accommodation := range accommodations {
		accommodation := accommodation
		t.Run(accommodation, func(t *testing.T) {
			t.Parallel()

			cohorts, err := Classify([]Student{student(1, accommodation)}, DefaultRules(), DefaultCatchAll())
			require.NoError(t, err)

			require.Len(t, cohorts[2].Students, 1, "expected quiet-office to claim %q", accommodation)
			assert.Equal(t, "quiet-office", cohorts[2].Name)
		})
	}
}

func TestClassifyCatchAllClaimsTheRest(t *testing.T) {
	t.Parallel()

	roster := []Student{student(1, "nothing special"), student(2, "")}

	cohorts, err := Classify(roster, DefaultRules(), DefaultCatchAll())
	require.NoError(t, err)

	last := cohorts[len(cohorts)-1]
	assert.Equal(t, "main", last.Name)
	assert.Equal(t, CategoryOpen, last.Pool.Category)
	assert.Len(t, last.Students, 2)
}

func TestClassifyEveningRule(t *testing.T) {
	t.Parallel()

	evening := Rule{
		Name: "evening",
		Kind: RuleEvening,
		Pool: PoolSelector{Category: CategoryClassroom},
	}

	roster := []Student{
		{Number: 1, Begin: 18 * 60, End: EveningEnd, Class: 19 * 60},
		{Number: 2, Begin: 18 * 60, End: EveningEnd, Class: 17 * 60}, // begins after class
		{Number: 3, Begin: 18 * 60, End: 21 * 60, Class: 19 * 60},   // ends early
	}

	cohorts, err := Classify(roster, []Rule{evening}, DefaultCatchAll())
	require.NoError(t, err)

	require.Len(t, cohorts[0].Students, 1)
	assert.Equal(t, StudentID(1), cohorts[0].Students[0].Number)
	assert.Len(t, cohorts[1].Students, 2)
}

func TestClassifyAdjustableRule(t *testing.T) {
	t.Parallel()

	adjustable := Rule{
		Name: "adjustable",
		Kind: RuleAdjustable,
		Pool: PoolSelector{AllAdjustable: true},
	}

	roster := []Student{
		student(1, "Height Adjustable desk"),
		student(2, "regular"),
	}

	cohorts, err := Classify(roster, []Rule{adjustable}, DefaultCatchAll())
	require.NoError(t, err)

	require.Len(t, cohorts[0].Students, 1)
	assert.Equal(t, StudentID(1), cohorts[0].Students[0].Number)
}

func TestClassifyInvalidPattern(t *testing.T) {
	t.Parallel()

	bad := Rule{
		Name:    "broken",
		Kind:    RuleAccommodation,
		Pattern: "(unclosed",
		Pool:    PoolSelector{Category: CategoryOpen},
	}

	_, err := Classify(nil, []Rule{bad}, DefaultCatchAll())
	assert.ErrorContains(t, err, "compile pattern")
}

func TestRuleValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rule    Rule
		wantErr string
	}{
		{
			name: "valid accommodation rule",
			rule: Rule{Name: "ws", Kind: RuleAccommodation, Pattern: "kurzweil", Pool: PoolSelector{Category: CategoryWorkstation}},
		},
		{
			name:    "missing name",
			rule:    Rule{Kind: RuleAccommodation, Pattern: "x", Pool: PoolSelector{Category: CategoryOpen}},
			wantErr: "name is required",
		},
		{
			name:    "missing pattern",
			rule:    Rule{Name: "ws", Kind: RuleAccommodation, Pool: PoolSelector{Category: CategoryWorkstation}},
			wantErr: "pattern is required",
		},
		{
			name:    "unknown kind",
			rule:    Rule{Name: "ws", Kind: "vibes", Pool: PoolSelector{Category: CategoryWorkstation}},
			wantErr: "unknown kind",
		},
		{
			name:    "selector with category and all-adjustable",
			rule:    Rule{Name: "x", Kind: RuleAdjustable, Pool: PoolSelector{Category: CategoryOpen, AllAdjustable: true}},
			wantErr: "invalid pool selector",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.rule.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestNeedsAdjustableIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	assert.True(t, NeedsAdjustable("HEIGHT ADJUSTABLE desk"))
	assert.True(t, NeedsAdjustable("needs height adjustable furniture"))
	assert.False(t, NeedsAdjustable("adjustable schedule"))
	assert.False(t, NeedsAdjustable(""))
}

func TestClassifyLargeRosterPartition(t *testing.T) {
	t.Parallel()

	accommodations := []string{
		"Private Room", "MS Word", "Kurzweil", "Extra Time", "", "Height Adjustable",
	}
	roster := make([]Student, 0, 120)
	for i := 0; i < 120; i++ {
		roster = append(roster, student(StudentID(i+1), accommodations[i%len(accommodations)]))
	}

	cohorts, err := Classify(roster, DefaultRules(), DefaultCatchAll())
	require.NoError(t, err)

	total := 0
	for _, cohort := range cohorts {
		total += len(cohort.Students)
	}
	require.Equal(t, len(roster), total, fmt.Sprintf("partition must cover all %d students", len(roster)))
}
