// Package csv reads exam rosters exported from the booking system. The
// export carries a banner on the first row and the real header on the
// second, in both CSV and XLSX flavours.
package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/seatwise/seatplan/internal/domain"
	"github.com/seatwise/seatplan/internal/ports"
)

const (
	headerBeginTime     = "Begin Time"
	headerEndTime       = "End Time"
	headerClassTime     = "Class Time"
	headerStudentNumber = "Student Number"
	headerLastName      = "Student Last Name"
	headerFirstName     = "Student First Name"
	headerAccommodation = "Test Accommodation"
	headerCourse        = "Course"
	headerCode          = "Code"
	headerFaculty       = "Faculty Name"
)

type Source struct{}

var _ ports.RosterSource = (*Source)(nil)

func New() *Source { return &Source{} }

// Read loads the roster at path. Missing or unparseable times become the
// sentinel minimum and never fail the load; only a structurally unusable
// file (no recognizable header row) is an error.
func (s *Source) Read(ctx context.Context, path string) ([]domain.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = readWorkbookRows(path)
	default:
		rows, err = readCSVRows(path)
	}
	if err != nil {
		return nil, err
	}

	// Row 1 is a banner; the header lives on row 2.
	if len(rows) < 2 {
		return nil, fmt.Errorf("roster %s: header row not found", path)
	}
	columns := indexHeader(rows[1])
	if _, ok := columns[headerStudentNumber]; !ok {
		return nil, fmt.Errorf("roster %s: column %q not found", path, headerStudentNumber)
	}

	students := make([]domain.Student, 0, len(rows)-2)
	for _, row := range rows[2:] {
		if emptyRow(row) {
			continue
		}
		students = append(students, studentFromRow(row, columns))
	}

	return students, nil
}

func readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read roster: %w", err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func readWorkbookRows(path string) ([][]string, error) {
	workbook, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open roster workbook: %w", err)
	}
	defer workbook.Close()

	sheet := workbook.GetSheetName(workbook.GetActiveSheetIndex())
	rows, err := workbook.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read roster sheet %s: %w", sheet, err)
	}

	return rows, nil
}

func indexHeader(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		if _, ok := columns[trimmed]; !ok {
			columns[trimmed] = i
		}
	}
	return columns
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func studentFromRow(row []string, columns map[string]int) domain.Student {
	cell := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	accommodation := cell(headerAccommodation)

	begin, _ := domain.ParseMinute(cell(headerBeginTime))
	end, _ := domain.ParseMinute(cell(headerEndTime))
	class, _ := domain.ParseMinute(cell(headerClassTime))

	return domain.Student{
		Number:             parseStudentNumber(cell(headerStudentNumber)),
		LastName:           cell(headerLastName),
		FirstName:          cell(headerFirstName),
		Begin:              begin,
		End:                end,
		Class:              class,
		Accommodation:      accommodation,
		RequiresAdjustable: domain.NeedsAdjustable(accommodation),
		Course:             cell(headerCourse),
		Code:               cell(headerCode),
		Faculty:            cell(headerFaculty),
	}
}

// parseStudentNumber tolerates spreadsheet exports that render integers as
// floats ("20481234.0"). A missing or unparseable value yields zero, which
// downstream treats as "no usable id": such rows are seated individually and
// never deduplicated against each other.
func parseStudentNumber(raw string) domain.StudentID {
	if raw == "" {
		return 0
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return domain.StudentID(n)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return domain.StudentID(int64(f))
	}
	return 0
}
