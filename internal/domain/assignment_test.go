package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerRecordRejectsSecondOccupant(t *testing.T) {
	t.Parallel()

	ledger := NewLedger()
	require.NoError(t, ledger.Record("WS 1", Occupant{Number: 1}))

	err := ledger.Record("WS 1", Occupant{Number: 2})
	assert.ErrorIs(t, err, ErrSeatOccupied)

	occupant, ok := ledger.Occupant("WS 1")
	require.True(t, ok)
	assert.Equal(t, StudentID(1), occupant.Number)
}

func TestLedgerSeatsKeepInsertionOrder(t *testing.T) {
	t.Parallel()

	ledger := NewLedger()
	require.NoError(t, ledger.Record("Room 351", Occupant{Number: 1}))
	require.NoError(t, ledger.Record("WS 6", Occupant{Number: 2}))
	require.NoError(t, ledger.Record("Seat 13", Occupant{Number: 3}))

	assert.Equal(t, []SeatID{"Room 351", "WS 6", "Seat 13"}, ledger.Seats())
	assert.Equal(t, 3, ledger.Len())
}

func TestLedgerExportIsACopy(t *testing.T) {
	t.Parallel()

	ledger := NewLedger()
	require.NoError(t, ledger.Record("WS 1", Occupant{Number: 1}))

	exported := ledger.Export()
	exported["WS 1"] = Occupant{Number: 99}

	occupant, ok := ledger.Occupant("WS 1")
	require.True(t, ok)
	assert.Equal(t, StudentID(1), occupant.Number)
}

func TestOccupantOfCarriesAdjustableFlag(t *testing.T) {
	t.Parallel()

	s := Student{
		Number:             42,
		LastName:           "Okafor",
		FirstName:          "Ada",
		RequiresAdjustable: true,
	}

	occupant := OccupantOf(s)
	assert.Equal(t, StudentID(42), occupant.Number)
	assert.Equal(t, "Okafor", occupant.LastName)
	assert.Equal(t, "Ada", occupant.FirstName)
	assert.True(t, occupant.RequiresAdjustable)
}
