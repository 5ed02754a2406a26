package csv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seatwise/seatplan/internal/domain"
)

func writeRoster(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.csv")
	require.NoError(t, os.WriteFile(path, []byte(lines), 0o644))
	return path
}

const rosterHeader = "Student Number,Student Last Name,Student First Name,Begin Time,End Time,Class Time,Test Accommodation,Course,Code,Faculty Name\n"

func TestReadParsesBookingExport(t *testing.T) {
	t.Parallel()

	path := writeRoster(t, "Exam sittings for 2026-04-14\n"+
		rosterHeader+
		"20481234,Okafor,Ada,9:00 AM,11:00 AM,10:00 AM,Private Room; Height Adjustable Desk,Calculus,MATH 101,Science\n"+
		"20487777.0,Tremblay,Luc,13:30,15:30,,,Statics,CIVE 204,Engineering\n")

	students, err := New().Read(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, students, 2)

	first := students[0]
	assert.Equal(t, domain.StudentID(20481234), first.Number)
	assert.Equal(t, "Okafor", first.LastName)
	assert.Equal(t, "Ada", first.FirstName)
	assert.Equal(t, domain.Minute(9*60), first.Begin)
	assert.Equal(t, domain.Minute(11*60), first.End)
	assert.Equal(t, domain.Minute(10*60), first.Class)
	assert.True(t, first.RequiresAdjustable)
	assert.Equal(t, "MATH 101", first.Code)

	second := students[1]
	assert.Equal(t, domain.StudentID(20487777), second.Number)
	assert.Equal(t, domain.Minute(13*60+30), second.Begin)
	assert.Equal(t, domain.MinuteMin, second.Class)
	assert.False(t, second.RequiresAdjustable)
}

func TestReadSkipsBlankRowsAndToleratesBadTimes(t *testing.T) {
	t.Parallel()

	path := writeRoster(t, "banner\n"+
		rosterHeader+
		",,,,,,,,,\n"+
		"1,Singh,Priya,TBD,later,,Extra Time,,,\n"+
		"pending,Doe,Jean,9:00,10:00,,,,,\n")

	students, err := New().Read(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, students, 2)

	assert.Equal(t, domain.MinuteMin, students[0].Begin)
	assert.Equal(t, domain.MinuteMin, students[0].End)
	assert.Equal(t, "Extra Time", students[0].Accommodation)

	// An unparseable student number degrades to the zero id.
	assert.Equal(t, domain.StudentID(0), students[1].Number)
	assert.Equal(t, "Doe", students[1].LastName)
}

func TestReadRequiresStudentNumberColumn(t *testing.T) {
	t.Parallel()

	path := writeRoster(t, "banner\nName,Begin Time\nAda,9:00\n")

	_, err := New().Read(context.Background(), path)
	assert.ErrorContains(t, err, "Student Number")
}

func TestReadRejectsFileWithoutHeaderRow(t *testing.T) {
	t.Parallel()

	path := writeRoster(t, "banner only\n")

	_, err := New().Read(context.Background(), path)
	assert.ErrorContains(t, err, "header row not found")
}

func TestReadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := New().Read(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorContains(t, err, "open roster")
}

func TestReadHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Read(ctx, "roster.csv")
	assert.ErrorIs(t, err, context.Canceled)
}
