package vdem

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Column names the pipeline projects out of the panel CSV. Downstream
// code assumes these exact identities; the column gate enforces them.
const (
	ColCountryName   = "country_name"
	ColCountryCode   = "country_text_id"
	ColYear          = "year"
	ColRegime        = "v2x_regime"
	ColMultiparty    = "v2elmulpar_ord"
	ColCSORepression = "v2csreprss_ord"
	ColCivilSociety  = "v2xcs_ccsi"
)

// RequiredColumns lists every column the pipeline reads, in a stable order.
func RequiredColumns() []string {
	return []string{
		ColCountryName,
		ColCountryCode,
		ColYear,
		ColRegime,
		ColMultiparty,
		ColCSORepression,
		ColCivilSociety,
	}
}

// Shape is the observed size of the panel file: data rows (header
// excluded) by columns.
type Shape struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// CanonicalShape is the exact size of the panel export the analysis is
// pinned to. The shape gate halts the run on any other size.
var CanonicalShape = Shape{Rows: 26537, Columns: 4641}

// Header describes the panel's header row.
type Header struct {
	Columns []string

	counts map[string]int
}

// NewHeader builds a Header from a raw header row.
func NewHeader(columns []string) Header {
	header := Header{
		Columns: append([]string(nil), columns...),
		counts:  make(map[string]int, len(columns)),
	}
	for _, name := range header.Columns {
		header.counts[name]++
	}
	return header
}

// Occurrences returns how many times a column name appears in the header.
func (header *Header) Occurrences(name string) int {
	return header.counts[name]
}

// Panel is the loaded country-year panel.
type Panel struct {
	Records []Record
	Shape   Shape
	Header  Header

	// SkippedRows counts data rows that could not be projected into a
	// Record (unparseable year or empty country code). They still count
	// toward Shape.Rows, which describes the raw file.
	SkippedRows int

	// Path is the source file the panel was loaded from.
	Path string
}

// Loader reads the panel CSV, projecting each row onto the required
// columns without materializing the full width of the file.
type Loader struct {
	path   string
	logger *zap.Logger
}

// NewLoader creates a Loader for the given file path. A nil logger is
// replaced with a no-op logger.
func NewLoader(path string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{path: path, logger: logger}
}

// Load reads the whole file. Missing required columns do not fail the
// load: the affected fields stay invalid and the column gate reports the
// defect. Ragged rows and I/O failures are fatal.
func (loader *Loader) Load() (*Panel, error) {
	file, err := os.Open(loader.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open panel file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReaderSize(file, 1<<20))
	reader.ReuseRecord = true

	headerRow, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read panel header: %w", err)
	}

	header := NewHeader(headerRow)

	indexOf := make(map[string]int, len(RequiredColumns()))
	for _, name := range RequiredColumns() {
		indexOf[name] = -1
	}
	for i, name := range header.Columns {
		if at, tracked := indexOf[name]; tracked && at == -1 {
			indexOf[name] = i
		}
	}

	panel := &Panel{
		Header: header,
		Shape:  Shape{Columns: len(header.Columns)},
		Path:   loader.path,
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read panel row %d: %w", panel.Shape.Rows+2, err)
		}
		panel.Shape.Rows++

		record, ok := projectRecord(row, indexOf)
		if !ok {
			panel.SkippedRows++
			continue
		}
		panel.Records = append(panel.Records, record)
	}

	loader.logger.Debug("panel loaded",
		zap.String("path", loader.path),
		zap.Int("rows", panel.Shape.Rows),
		zap.Int("columns", panel.Shape.Columns),
		zap.Int("records", len(panel.Records)),
		zap.Int("skipped", panel.SkippedRows),
	)

	return panel, nil
}

// projectRecord maps one raw row onto a Record. Rows without a parseable
// year or a country code cannot key the panel and are skipped.
func projectRecord(row []string, indexOf map[string]int) (Record, bool) {
	record := Record{
		CountryName: cell(row, indexOf[ColCountryName]),
		CountryCode: cell(row, indexOf[ColCountryCode]),
	}

	year, ok := parseYear(cell(row, indexOf[ColYear]))
	if !ok || record.CountryCode == "" {
		return Record{}, false
	}
	record.Year = year

	record.RegimeOrdinal = parseOrdinal(cell(row, indexOf[ColRegime]))
	record.MultipartyOrdinal = parseOrdinal(cell(row, indexOf[ColMultiparty]))
	record.CSORepressionOrdinal = parseOrdinal(cell(row, indexOf[ColCSORepression]))
	record.CivilSocietyIndex = parseIndex(cell(row, indexOf[ColCivilSociety]))

	return record, true
}

// cell returns the trimmed value at index, or "" when the column is absent.
func cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

// isMissing reports whether a cell encodes a missing value. The panel
// export writes missing cells as empty strings or the literal "NA".
func isMissing(value string) bool {
	return value == "" || strings.EqualFold(value, "NA")
}

func parseYear(value string) (int, bool) {
	if isMissing(value) {
		return 0, false
	}
	year, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return year, true
}

// parseOrdinal accepts both integer and float renderings ("2", "2.0") of
// ordinal codes.
func parseOrdinal(value string) Ordinal {
	if isMissing(value) {
		return Ordinal{}
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return Ordinal{}
	}
	return Ordinal{Value: int(parsed), Valid: true}
}

func parseIndex(value string) Index {
	if isMissing(value) {
		return Index{}
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return Index{}
	}
	return Index{Value: parsed, Valid: true}
}
