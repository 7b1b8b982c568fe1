package ngolaw

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/coolbeans/civitas/pkg/countries"
)

// Loader streams one workbook sheet into Records, resolving country
// names as it goes.
type Loader struct {
	path     string
	sheet    string
	resolver *countries.Resolver
	logger   *zap.Logger
}

// NewLoader creates a Loader for the given workbook path. An empty sheet
// name selects the first sheet. A nil resolver falls back to the
// built-in country table; a nil logger is replaced with a no-op logger.
func NewLoader(path, sheet string, resolver *countries.Resolver, logger *zap.Logger) *Loader {
	if resolver == nil {
		resolver = countries.NewResolver()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{path: path, sheet: sheet, resolver: resolver, logger: logger}
}

// Load reads the sheet row by row. The first row must be a header naming
// a country column, a year column, and at least one known law-question
// column. Rows whose country name does not resolve are dropped and
// tallied; rows without a name or parseable year are skipped.
func (loader *Loader) Load() (*Dataset, error) {
	book, err := excelize.OpenFile(loader.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open law workbook: %w", err)
	}
	defer book.Close()

	sheet := loader.sheet
	if sheet == "" {
		sheet = book.GetSheetName(0)
	}

	rows, err := book.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	defer rows.Close()

	dataset := &Dataset{
		Sheet: sheet,
		Path:  loader.path,
		Resolution: Resolution{
			Resolved:  make(map[string]string),
			Unmatched: make(map[string]int),
		},
	}

	var layout *sheetLayout
	for rows.Next() {
		row, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q row: %w", sheet, err)
		}
		if layout == nil {
			layout, err = mapHeader(row)
			if err != nil {
				return nil, fmt.Errorf("sheet %q: %w", sheet, err)
			}
			continue
		}
		loader.projectRow(row, layout, dataset)
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("failed to stream sheet %q: %w", sheet, err)
	}
	if layout == nil {
		return nil, fmt.Errorf("sheet %q has no header row", sheet)
	}

	loader.logger.Debug("law workbook loaded",
		zap.String("path", loader.path),
		zap.String("sheet", sheet),
		zap.Int("records", len(dataset.Records)),
		zap.Int("resolved_names", dataset.Resolution.ResolvedCount()),
		zap.Int("unmatched_names", dataset.Resolution.UnmatchedCount()),
		zap.Int("skipped", dataset.SkippedRows),
	)

	return dataset, nil
}

// questionColumn pins one known law question to its sheet column.
type questionColumn struct {
	index    int
	question Question
}

// sheetLayout is the projection of the header row: where the country and
// year columns live, and which remaining columns carry known questions.
// Question columns keep header order so record order is deterministic.
type sheetLayout struct {
	country   int
	year      int
	questions []questionColumn
}

func mapHeader(header []string) (*sheetLayout, error) {
	layout := &sheetLayout{country: -1, year: -1}
	for i, name := range header {
		switch normalized := normalizeHeader(name); normalized {
		case "country", "country name":
			if layout.country == -1 {
				layout.country = i
			}
		case "year":
			if layout.year == -1 {
				layout.year = i
			}
		default:
			if question, ok := questionHeaders[normalized]; ok {
				layout.questions = append(layout.questions, questionColumn{index: i, question: question})
			}
		}
	}
	if layout.country == -1 || layout.year == -1 {
		return nil, errors.New("header lacks country and year columns")
	}
	if len(layout.questions) == 0 {
		return nil, errors.New("header carries no known law-question columns")
	}
	return layout, nil
}

// projectRow turns one data row into zero or more Records, one per
// answered question column.
func (loader *Loader) projectRow(row []string, layout *sheetLayout, dataset *Dataset) {
	name := cellAt(row, layout.country)
	year, ok := parseYear(cellAt(row, layout.year))
	if name == "" || !ok {
		dataset.SkippedRows++
		return
	}

	code, ok := loader.resolver.Resolve(name)
	if !ok {
		dataset.Resolution.Unmatched[name]++
		return
	}
	dataset.Resolution.Resolved[name] = code

	for _, column := range layout.questions {
		flag, observed := parseFlag(cellAt(row, column.index))
		if !observed {
			continue
		}
		dataset.Records = append(dataset.Records, Record{
			CountryName: name,
			CountryCode: code,
			Year:        year,
			Question:    column.question,
			Flag:        flag,
		})
	}
}

// cellAt returns the trimmed value at index, or "" past the row's end.
// Trailing empty cells are elided by the xlsx format, so short rows are
// normal.
func cellAt(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

func parseYear(value string) (int, bool) {
	if value == "" {
		return 0, false
	}
	if year, err := strconv.Atoi(value); err == nil {
		return year, true
	}
	// year cells sometimes render as floats
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return int(parsed), true
}

// parseFlag interprets one answer cell. Empty and NA cells are not
// observations; everything else maps onto present/absent.
func parseFlag(value string) (flag, observed bool) {
	if value == "" || strings.EqualFold(value, "NA") {
		return false, false
	}
	switch strings.ToLower(value) {
	case "yes", "y", "true":
		return true, true
	case "no", "n", "false":
		return false, true
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return false, false
	}
	return parsed != 0, true
}
