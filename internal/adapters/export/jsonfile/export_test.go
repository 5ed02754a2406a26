package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seatwise/seatplan/internal/domain"
)

func TestWriteSeats(t *testing.T) {
	t.Parallel()

	catalogue, err := domain.NewCatalogue([]domain.Seat{
		{ID: "WS 6", Category: domain.CategoryWorkstation, Number: 6, Adjustable: true, Enabled: true},
		{ID: "Class 358 Seat 2", Category: domain.CategoryClassroom, Number: 2, Adjustable: true, Enabled: true, Classroom: 358},
		{ID: "Seat 14", Category: domain.CategoryOpen, Number: 14, Enabled: false},
	})
	require.NoError(t, err)

	outDir := t.TempDir()
	require.NoError(t, WriteSeats(outDir, catalogue))

	data, err := os.ReadFile(filepath.Join(outDir, SeatsFileName))
	require.NoError(t, err)

	var entries map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 3)

	ws := entries["WS 6"]
	assert.Equal(t, "ws", ws["type"])
	assert.Equal(t, true, ws["adjustable"])
	assert.Equal(t, float64(6), ws["seat_number"])
	assert.NotContains(t, ws, "classroom")

	classSeat := entries["Class 358 Seat 2"]
	assert.Equal(t, float64(358), classSeat["classroom"])

	assert.Equal(t, false, entries["Seat 14"]["enabled"])
}

func TestWriteAssigns(t *testing.T) {
	t.Parallel()

	ledger := domain.NewLedger()
	require.NoError(t, ledger.Record("WS 6", domain.Occupant{
		Number:             20481234,
		LastName:           "Okafor",
		FirstName:          "Ada",
		RequiresAdjustable: true,
	}))

	outDir := t.TempDir()
	require.NoError(t, WriteAssigns(outDir, ledger))

	data, err := os.ReadFile(filepath.Join(outDir, AssignsFileName))
	require.NoError(t, err)

	var entries map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 1)

	occupant := entries["WS 6"]
	assert.Equal(t, float64(20481234), occupant["student_number"])
	assert.Equal(t, "Okafor", occupant["last_name"])
	assert.Equal(t, "Ada", occupant["first_name"])
	assert.Equal(t, true, occupant["requiresAdjust"])
}

func TestWriteAssignsEmptyLedger(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	require.NoError(t, WriteAssigns(outDir, domain.NewLedger()))

	data, err := os.ReadFile(filepath.Join(outDir, AssignsFileName))
	require.NoError(t, err)
	assert.JSONEq(t, "{}", string(data))
}

func TestWriteSeatsLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	require.NoError(t, WriteSeats(outDir, domain.DefaultCatalogue()))

	dirEntries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, dirEntries, 1)
	assert.Equal(t, SeatsFileName, dirEntries[0].Name())
}
