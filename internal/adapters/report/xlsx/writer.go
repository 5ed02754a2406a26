// Package xlsx renders per-cohort assignment workbooks in the layout the
// invigilation desk expects: a banner row, headers on row 2, seat cells
// shaded by category.
package xlsx

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/seatwise/seatplan/internal/domain"
)

const (
	sheetName     = "Master"
	headerRow     = 2
	minColWidth   = 10.0
	maxColWidth   = 50.0
	timeNumFmt    = "h:mm AM/PM"
	assignedSfx   = "_ASSIGNED"
	unassignedSfx = "_NOT_ASSIGNED"
)

var headers = []string{
	"Begin Time", "End Time", "Student Number", "Student Last Name",
	"Student First Name", "Check-IN Time", "Check-OUT Time", "Course",
	"Code", "Test Room", "Seat Number", "Faculty Name", "Class Time",
	"Test Accommodation", "Invigilator Comment", "Test Comment",
}

const (
	colBeginTime = iota + 1
	colEndTime
	colStudentNumber
	colLastName
	colFirstName
	colCheckIn
	colCheckOut
	colCourse
	colCode
	colTestRoom
	colSeatNumber
	colFaculty
	colClassTime
	colAccommodation
)

// fillByCategory mirrors the report colour scheme: classroom yellow, quiet
// office blue, private room green, workstation orange, open seating plain.
var fillByCategory = map[domain.Category]string{
	domain.CategoryClassroom:   "FFF2CC",
	domain.CategoryQuietOffice: "DDEBF7",
	domain.CategoryPrivateRoom: "E2F0D9",
	domain.CategoryWorkstation: "FCE4D6",
}

type Writer struct {
	outDir    string
	catalogue domain.Catalogue
}

func NewWriter(outDir string, catalogue domain.Catalogue) *Writer {
	return &Writer{outDir: outDir, catalogue: catalogue}
}

// WriteCohort writes <name>_ASSIGNED.xlsx and <name>_NOT_ASSIGNED.xlsx.
func (w *Writer) WriteCohort(name string, placed []domain.Placement, unplaced []domain.Student) error {
	assignedRows := make([]row, 0, len(placed))
	for _, placement := range placed {
		assignedRows = append(assignedRows, row{student: placement.Student, seat: placement.Seat})
	}
	if err := w.writeWorkbook(name+assignedSfx, assignedRows); err != nil {
		return err
	}

	unplacedRows := make([]row, 0, len(unplaced))
	for _, student := range unplaced {
		unplacedRows = append(unplacedRows, row{student: student})
	}
	return w.writeWorkbook(name+unassignedSfx, unplacedRows)
}

type row struct {
	student domain.Student
	seat    domain.SeatID
}

func (w *Writer) writeWorkbook(name string, rows []row) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName(file.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	timeStyle, err := newTimeStyle(file)
	if err != nil {
		return fmt.Errorf("build time style: %w", err)
	}

	for i, header := range headers {
		if err := setCell(file, i+1, headerRow, header); err != nil {
			return err
		}
	}

	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = len(header)
	}

	for i, entry := range rows {
		rowIdx := headerRow + 1 + i
		if err := w.writeRow(file, rowIdx, entry, timeStyle, widths); err != nil {
			return err
		}
	}

	if err := applyColumnWidths(file, widths); err != nil {
		return err
	}

	path := filepath.Join(w.outDir, name+".xlsx")
	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}

	return nil
}

func (w *Writer) writeRow(file *excelize.File, rowIdx int, entry row, timeStyle int, widths []int) error {
	student := entry.student

	if err := setTimeCell(file, colBeginTime, rowIdx, student.Begin, timeStyle); err != nil {
		return err
	}
	if err := setTimeCell(file, colEndTime, rowIdx, student.End, timeStyle); err != nil {
		return err
	}
	if err := setTimeCell(file, colClassTime, rowIdx, student.Class, timeStyle); err != nil {
		return err
	}

	textCells := map[int]string{
		colLastName:      student.LastName,
		colFirstName:     student.FirstName,
		colCourse:        student.Course,
		colCode:          student.Code,
		colFaculty:       student.Faculty,
		colAccommodation: student.Accommodation,
	}
	for col, value := range textCells {
		if err := setCell(file, col, rowIdx, value); err != nil {
			return err
		}
		growWidth(widths, col, len(value))
	}

	if err := setCell(file, colStudentNumber, rowIdx, int64(student.Number)); err != nil {
		return err
	}
	growWidth(widths, colStudentNumber, len(fmt.Sprint(student.Number)))

	if entry.seat == "" {
		return nil
	}

	if err := setCell(file, colTestRoom, rowIdx, string(entry.seat)); err != nil {
		return err
	}
	growWidth(widths, colTestRoom, len(entry.seat))

	if seat, err := w.catalogue.Lookup(entry.seat); err == nil {
		if fill, ok := fillByCategory[seat.Category]; ok {
			if err := fillCell(file, colTestRoom, rowIdx, fill); err != nil {
				return err
			}
		}
	}

	if number := w.catalogue.SeatNumber(entry.seat); number > 0 {
		if err := setCell(file, colSeatNumber, rowIdx, number); err != nil {
			return err
		}
	}

	return nil
}

func newTimeStyle(file *excelize.File) (int, error) {
	numFmt := timeNumFmt
	return file.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
}

func setCell(file *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name (%d,%d): %w", col, row, err)
	}
	if err := file.SetCellValue(sheetName, cell, value); err != nil {
		return fmt.Errorf("set cell %s: %w", cell, err)
	}
	return nil
}

// setTimeCell writes the value as a day fraction so the number format
// renders it as a clock time.
func setTimeCell(file *excelize.File, col, row int, value domain.Minute, style int) error {
	if err := setCell(file, col, row, value.DayFraction()); err != nil {
		return err
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name (%d,%d): %w", col, row, err)
	}
	if err := file.SetCellStyle(sheetName, cell, cell, style); err != nil {
		return fmt.Errorf("style cell %s: %w", cell, err)
	}
	return nil
}

func fillCell(file *excelize.File, col, row int, color string) error {
	style, err := file.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
	})
	if err != nil {
		return fmt.Errorf("build fill style: %w", err)
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name (%d,%d): %w", col, row, err)
	}
	if err := file.SetCellStyle(sheetName, cell, cell, style); err != nil {
		return fmt.Errorf("fill cell %s: %w", cell, err)
	}
	return nil
}

func growWidth(widths []int, col, length int) {
	if col-1 < len(widths) && length > widths[col-1] {
		widths[col-1] = length
	}
}

func applyColumnWidths(file *excelize.File, widths []int) error {
	for i, width := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("column name %d: %w", i+1, err)
		}

		w := float64(width) + 2
		if w < minColWidth {
			w = minColWidth
		}
		if w > maxColWidth {
			w = maxColWidth
		}
		if err := file.SetColWidth(sheetName, name, name, w); err != nil {
			return fmt.Errorf("set column width %s: %w", name, err)
		}
	}
	return nil
}
