// Package jsonfile persists the catalogue and the assignment ledger as the
// seats.json / assigns.json pair consumed by the seating web app.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/seatwise/seatplan/internal/domain"
)

const (
	SeatsFileName   = "seats.json"
	AssignsFileName = "assigns.json"

	fileMode = 0o644
)

type seatEntry struct {
	Type       string `json:"type"`
	Adjustable bool   `json:"adjustable"`
	SeatNumber int    `json:"seat_number"`
	Classroom  int    `json:"classroom,omitempty"`
	Enabled    bool   `json:"enabled"`
}

// WriteSeats writes the full catalogue to <outDir>/seats.json.
func WriteSeats(outDir string, catalogue domain.Catalogue) error {
	entries := make(map[string]seatEntry, catalogue.Len())
	for _, seat := range catalogue.Seats() {
		entries[string(seat.ID)] = seatEntry{
			Type:       string(seat.Category),
			Adjustable: seat.Adjustable,
			SeatNumber: seat.Number,
			Classroom:  seat.Classroom,
			Enabled:    seat.Enabled,
		}
	}

	return writeJSON(filepath.Join(outDir, SeatsFileName), entries)
}

// WriteAssigns writes the ledger to <outDir>/assigns.json.
func WriteAssigns(outDir string, ledger *domain.Ledger) error {
	entries := make(map[string]domain.Occupant, ledger.Len())
	for seat, occupant := range ledger.Export() {
		entries[string(seat)] = occupant
	}

	return writeJSON(filepath.Join(outDir, AssignsFileName), entries)
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), ".export-*.json.tmp")
	if err != nil {
		return fmt.Errorf("create temp export file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp export file: %w", err)
	}
	if err := tempFile.Chmod(fileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp export file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp export file: %w", err)
	}

	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	cleanup = false

	return nil
}
