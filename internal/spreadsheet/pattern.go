package spreadsheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/spec-kit/shift-scheduler/internal/domain"
)

// ErrPatternDecode wraps every pattern decoding failure.
var ErrPatternDecode = errors.New("pattern decode failed")

// DecodePattern reads a pattern from an uploaded file. The format is chosen by
// extension: .xlsx and .csv use the export layout, .yaml/.yml map days to
// shifts to names.
func DecodePattern(filename string, r io.Reader) (domain.Pattern, error) {
	var (
		p   domain.Pattern
		err error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		p, err = decodeXLSX(r)
	case ".csv":
		p, err = decodeCSV(r)
	case ".yaml", ".yml":
		p, err = decodeYAML(r)
	default:
		err = fmt.Errorf("unsupported file type %q", filepath.Ext(filename))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPatternDecode, err)
	}
	return p, nil
}

func decodeXLSX(r io.Reader) (domain.Pattern, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return patternFromRows(rows)
}

func decodeCSV(r io.Reader) (domain.Pattern, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return patternFromRows(rows)
}

func decodeYAML(r io.Reader) (domain.Pattern, error) {
	var raw map[int]map[string]string
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Pattern{}, nil
		}
		return nil, err
	}
	p := make(domain.Pattern, len(raw))
	for day, shifts := range raw {
		for key, name := range shifts {
			shift, ok := domain.ParseShift(key)
			if !ok {
				return nil, fmt.Errorf("day %d: unknown shift %q", day, key)
			}
			setPattern(p, day, shift, name)
		}
	}
	return p, nil
}

// patternFromRows reads the rows below the "Day" header. The day number is
// the leading integer of the first column, so both "3" and "3 - Wednesday"
// are accepted.
func patternFromRows(rows [][]string) (domain.Pattern, error) {
	header := -1
	for i, row := range rows {
		if len(row) > 0 && strings.EqualFold(strings.TrimSpace(firstWord(row[0])), "day") {
			header = i
			break
		}
	}
	if header < 0 {
		return nil, errors.New("header row with a Day column not found")
	}

	p := domain.Pattern{}
	for _, row := range rows[header+1:] {
		if len(row) == 0 {
			continue
		}
		day, ok := leadingInt(row[0])
		if !ok {
			continue
		}
		for i, shift := range domain.Shifts {
			col := i + 1
			if col < len(row) {
				setPattern(p, day, shift, row[col])
			}
		}
	}
	return p, nil
}

func setPattern(p domain.Pattern, day int, shift domain.Shift, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if p[day] == nil {
		p[day] = domain.DaySchedule{}
	}
	p[day][shift] = name
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == 0 {
		return 0, false
	}
	if end > 0 {
		s = s[:end]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
