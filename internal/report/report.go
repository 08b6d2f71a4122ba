package report

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/UnknownOlympus/shiftbook/internal/calendar"
	"github.com/UnknownOlympus/shiftbook/internal/models"
	"github.com/xuri/excelize/v2"
)

var ErrNoShifts = errors.New("failed to generate report, 0 shifts were provided")

const (
	summarySheet = "Summary"
	headerIndex  = 2
	hoursPerDay  = 24
)

// Generator holds the state for the Excel report generation process.
type Generator struct {
	file *excelize.File
}

// NewGenerator creates a new report generator.
func NewGenerator() *Generator {
	return &Generator{
		file: excelize.NewFile(),
	}
}

// employeeTotal accumulates the summary row of one employee.
type employeeTotal struct {
	ID       string
	Nickname string
	Shifts   int
	Worked   time.Duration
}

// GenerateMonthlyReport builds a workbook for one month. The first sheet,
// named after the month, lists every shift ordered by day, start time and
// employee; the Summary sheet totals shifts and worked hours per employee.
//
// Returns ErrNoShifts when entries is empty.
func GenerateMonthlyReport(month calendar.Month, entries []models.ShiftEntry) (*bytes.Buffer, error) {
	var err error

	if len(entries) == 0 {
		return nil, ErrNoShifts
	}

	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b models.ShiftEntry) int {
		return cmp.Or(
			a.Day.Compare(b.Day),
			cmp.Compare(a.Start.SinceMidnight(), b.Start.SinceMidnight()),
			cmp.Compare(a.EmployeeID, b.EmployeeID),
		)
	})

	gen := NewGenerator()
	defer gen.file.Close()

	shiftSheet := month.String()
	if err = gen.addShiftSheet(shiftSheet, sorted); err != nil {
		return nil, fmt.Errorf("failed to add shift sheet: %w", err)
	}
	if err = gen.addSummarySheet(summarize(sorted)); err != nil {
		return nil, fmt.Errorf("failed to add summary sheet: %w", err)
	}

	// setup first sheet as active
	gen.file.SetActiveSheet(0)

	// delete default sheet
	if sheetIndex, _ := gen.file.GetSheetIndex("Sheet1"); sheetIndex != -1 {
		if err = gen.file.DeleteSheet("Sheet1"); err != nil {
			return nil, fmt.Errorf("failed to delete default sheet 'Sheet1': %w", err)
		}
	}

	buffer, err := gen.file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write data from saved file: %w", err)
	}

	return buffer, nil
}

// Worked returns the length of a shift. A shift ending before it starts is
// read as running past midnight.
func Worked(start, end models.ClockTime) time.Duration {
	worked := end.SinceMidnight() - start.SinceMidnight()
	if worked < 0 {
		worked += hoursPerDay * time.Hour
	}
	return worked
}

func summarize(entries []models.ShiftEntry) []employeeTotal {
	byID := make(map[string]*employeeTotal)
	for _, entry := range entries {
		total, ok := byID[entry.EmployeeID]
		if !ok {
			total = &employeeTotal{ID: entry.EmployeeID, Nickname: entry.Nickname}
			byID[entry.EmployeeID] = total
		}
		total.Shifts++
		total.Worked += Worked(entry.Start, entry.End)
	}

	totals := make([]employeeTotal, 0, len(byID))
	for _, total := range byID {
		totals = append(totals, *total)
	}
	slices.SortFunc(totals, func(a, b employeeTotal) int { return cmp.Compare(a.ID, b.ID) })

	return totals
}

func (g *Generator) addShiftSheet(sheetName string, entries []models.ShiftEntry) error {
	var err error

	if _, err = g.file.NewSheet(sheetName); err != nil {
		return fmt.Errorf("failed to generate new sheet '%s': %w", sheetName, err)
	}

	headers := []string{"Day", "Weekday", "Employee ID", "Nickname", "Start", "End", "Hours"}
	widths := map[string]float64{"A": 14, "B": 10, "C": 14, "D": 24, "E": 10, "F": 10, "G": 10} //nolint:mnd // column widths
	if err = g.setupSheet(sheetName, "table_shifts", headers, widths, len(entries)); err != nil {
		return fmt.Errorf("failed to setup sheet '%s': %w", sheetName, err)
	}

	for i, entry := range entries {
		row := []interface{}{
			entry.Day.Format(time.DateOnly),
			entry.Day.Weekday().String()[:3],
			entry.EmployeeID,
			entry.Nickname,
			entry.Start.String(),
			entry.End.String(),
			Worked(entry.Start, entry.End).Hours(),
		}
		if err = g.addRow(sheetName, i+headerIndex, row); err != nil { // i+2, because the first row is the header
			return fmt.Errorf("failed to add row '%d': %w", i+headerIndex, err)
		}
	}

	return nil
}

func (g *Generator) addSummarySheet(totals []employeeTotal) error {
	var err error

	if _, err = g.file.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to generate new sheet '%s': %w", summarySheet, err)
	}

	headers := []string{"Employee ID", "Nickname", "Shifts", "Hours"}
	widths := map[string]float64{"A": 14, "B": 24, "C": 10, "D": 10} //nolint:mnd // column widths
	if err = g.setupSheet(summarySheet, "table_summary", headers, widths, len(totals)); err != nil {
		return fmt.Errorf("failed to setup sheet '%s': %w", summarySheet, err)
	}

	for i, total := range totals {
		row := []interface{}{total.ID, total.Nickname, total.Shifts, total.Worked.Hours()}
		if err = g.addRow(summarySheet, i+headerIndex, row); err != nil {
			return fmt.Errorf("failed to add row '%d': %w", i+headerIndex, err)
		}
	}

	return nil
}

// setupSheet initializes the specified sheet with headers, styles, and column widths.
// It creates a header style, sets the row height for the headers, and populates the headers
// in the first row. It also configures the width for each column and adds a table to the sheet.
func (g *Generator) setupSheet(
	sheetName, tableName string,
	headers []string,
	widths map[string]float64,
	rowCount int,
) error {
	var err error

	headerStyle, err := g.file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "center", Horizontal: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create new style: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return fmt.Errorf("failed to resolve last column: %w", err)
	}

	rowHeight := 20
	if err = g.file.SetRowHeight(sheetName, 1, float64(rowHeight)); err != nil {
		return fmt.Errorf("failed to set row height for headers: %w", err)
	}
	if err = g.file.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return fmt.Errorf("failed to set sheet row for headers: %w", err)
	}
	if err = g.file.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("failed to set cell style for headers: %w", err)
	}

	for col, width := range widths {
		if err = g.file.SetColWidth(sheetName, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	if err = g.file.AddTable(sheetName, &excelize.Table{
		Range:     fmt.Sprintf("A1:%s%d", lastCol, rowCount+1),
		Name:      tableName,
		StyleName: "TableStyleMedium9",
	}); err != nil {
		return fmt.Errorf("failed to add table: %w", err)
	}

	return nil
}

// addRow writes one row of values starting at column A of rowNum.
func (g *Generator) addRow(sheetName string, rowNum int, row []interface{}) error {
	cell, _ := excelize.CoordinatesToCellName(1, rowNum)

	if err := g.file.SetSheetRow(sheetName, cell, &row); err != nil {
		return fmt.Errorf("failed to set sheet row: %w", err)
	}

	return nil
}
