package spreadsheet

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/shift-scheduler/internal/domain"
)

func febSchedule() domain.WorkplaceSchedule {
	return domain.WorkplaceSchedule{
		1:  {domain.Shift1: "Ana", domain.Shift3: "Ben"},
		14: {domain.Shift2: "Cy"},
		29: {domain.Shift1: "Ana", domain.Shift2: "Ben", domain.Shift3: "Cy"},
	}
}

func TestRenderCSVGolden(t *testing.T) {
	out, err := RenderCSV("Nodal", domain.Period{Year: 2024, Month: 2}, febSchedule())
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "nodal_2024_2", out)
}

func TestWorkbookDecodesBackIntoPattern(t *testing.T) {
	period := domain.Period{Year: 2024, Month: 2}
	data, err := Workbook("Engineer Room", period, febSchedule())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	p, err := DecodePattern(FileName("Engineer Room", period, FormatXLSX), bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, domain.Pattern(febSchedule()), p)
}

func TestDecodePatternCSV(t *testing.T) {
	in := strings.Join([]string{
		"Studio Press - March 2024",
		"",
		"Day,Shift 1,Shift 2,Shift 3",
		"1 - Friday, Ana ,,Ben",
		"2,,Cy",
		"notes,,,",
	}, "\n")
	p, err := DecodePattern("pattern.CSV", strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, domain.Pattern{
		1: {domain.Shift1: "Ana", domain.Shift3: "Ben"},
		2: {domain.Shift2: "Cy"},
	}, p)
}

func TestDecodePatternYAML(t *testing.T) {
	in := `
5:
  shift2: C
7:
  Shift 1: D
  shift3: ""
`
	p, err := DecodePattern("pattern.yaml", strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, domain.Pattern{
		5: {domain.Shift2: "C"},
		7: {domain.Shift1: "D"},
	}, p)
}

func TestDecodePatternFailures(t *testing.T) {
	cases := map[string]struct {
		name string
		body string
	}{
		"unsupported extension": {"pattern.txt", "1,A"},
		"missing header":        {"pattern.csv", "1,A,B,C"},
		"broken workbook":       {"pattern.xlsx", "not a zip"},
		"bad yaml shift":        {"pattern.yml", "1:\n  night: A\n"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodePattern(tc.name, strings.NewReader(tc.body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrPatternDecode))
		})
	}
}

func TestSheetNameIsTruncatedByRunes(t *testing.T) {
	long := "Estúdio de Gravação Ñandú Número Três"
	name := sheetName(long)
	assert.True(t, utf8.ValidString(name))
	assert.Equal(t, 31, utf8.RuneCountInString(name))
	assert.Equal(t, "Estúdio de Gravação Ñandú Númer", name)
	assert.Equal(t, "Nodal Schedule", sheetName("Nodal"))
	assert.Equal(t, "A B Schedule", sheetName("A/B"))

	data, err := Workbook(long, domain.Period{Year: 2024, Month: 2}, febSchedule())
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck
	assert.Equal(t, name, f.GetSheetName(0))
}

func TestFileNameAndFormat(t *testing.T) {
	assert.Equal(t, "Studio_Hispan_2024_3.xlsx", FileName("Studio Hispan", domain.Period{Year: 2024, Month: 3}, FormatXLSX))

	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)
	f, err = ParseFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)
	_, err = ParseFormat("pdf")
	assert.Error(t, err)
}
