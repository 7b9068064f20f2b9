// Package spreadsheet renders schedules to files and decodes uploaded patterns.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/shift-scheduler/internal/calendar"
	"github.com/spec-kit/shift-scheduler/internal/domain"
)

const (
	titleRow  = 1
	headerRow = 3
	colWidth  = 20
	rowHeight = 25
	maxSheet  = 31
)

// Format is an export file type.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// ParseFormat defaults to xlsx for an empty value.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(FormatXLSX):
		return FormatXLSX, nil
	case string(FormatCSV):
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", raw)
	}
}

// FileName returns the download name of a workplace export.
func FileName(workplace string, period domain.Period, format Format) string {
	return fmt.Sprintf("%s_%d_%d.%s", strings.ReplaceAll(workplace, " ", "_"), period.Year, period.Month, format)
}

// Header returns the column captions of an exported schedule.
func Header() []string {
	out := []string{"Day"}
	for _, s := range domain.Shifts {
		out = append(out, s.Label())
	}
	return out
}

// Title returns the caption of an exported schedule.
func Title(workplace string, period domain.Period) string {
	return fmt.Sprintf("%s - %s %d", workplace, calendar.MonthName(period.Month), period.Year)
}

// Render produces the export in the requested format.
func Render(format Format, workplace string, period domain.Period, schedule domain.WorkplaceSchedule) ([]byte, error) {
	switch format {
	case FormatCSV:
		return RenderCSV(workplace, period, schedule)
	default:
		return Workbook(workplace, period, schedule)
	}
}

// Workbook renders one workplace schedule as an xlsx document.
func Workbook(workplace string, period domain.Period, schedule domain.WorkplaceSchedule) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	sheet := sheetName(workplace)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.MergeCell(sheet, "A1", "D1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	if err := f.SetCellValue(sheet, "A1", Title(workplace, period)); err != nil {
		return nil, err
	}
	if err := setRow(f, sheet, headerRow, Header()); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "A", "D", colWidth); err != nil {
		return nil, err
	}

	days := calendar.DaysInMonth(period.Year, period.Month)
	for day := 1; day <= days; day++ {
		if err := setRow(f, sheet, headerRow+day, dayRow(period, schedule, day)); err != nil {
			return nil, err
		}
	}
	for row := titleRow; row <= days+headerRow+1; row++ {
		if err := f.SetRowHeight(sheet, row, rowHeight); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderCSV renders one workplace schedule as CSV with the workbook layout.
func RenderCSV(workplace string, period domain.Period, schedule domain.WorkplaceSchedule) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	records := [][]string{
		{Title(workplace, period)},
		Header(),
	}
	for day := 1; day <= calendar.DaysInMonth(period.Year, period.Month); day++ {
		records = append(records, dayRow(period, schedule, day))
	}
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func dayRow(period domain.Period, schedule domain.WorkplaceSchedule, day int) []string {
	row := []string{calendar.DayLabel(period.Year, period.Month, day)}
	for _, s := range domain.Shifts {
		row = append(row, schedule[day][s])
	}
	return row
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	for i, v := range values {
		if v == "" {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

// sheetName keeps the first maxSheet runes and drops characters excel
// forbids in sheet names.
func sheetName(workplace string) string {
	name := []rune(strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return ' '
		}
		return r
	}, workplace+" Schedule"))
	if len(name) > maxSheet {
		name = name[:maxSheet]
	}
	return strings.TrimSpace(string(name))
}
