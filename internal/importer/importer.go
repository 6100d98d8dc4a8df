// Package importer provides CSV and Excel import of cargo manifests.
// It supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/adamsulik/PACKIT4.0/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Pallets  []*model.Pallet
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
// -1 marks a column the data does not carry.
type ColumnMapping struct {
	ID       int
	Type     int
	Length   int
	Width    int
	Height   int
	Tare     int
	Cargo    int
	Stack    int
	Fragile  int
	MaxStack int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"id":       {"id", "pallet id", "unit id", "ref", "reference", "label"},
	"type":     {"type", "pallet type", "format", "kind"},
	"length":   {"length", "len", "l"},
	"width":    {"width", "wid", "w"},
	"height":   {"height", "hgt", "h"},
	"tare":     {"tare", "tare weight", "pallet weight", "empty weight"},
	"cargo":    {"cargo", "cargo weight", "weight", "net weight", "load", "kg"},
	"stack":    {"stackable", "stacking", "can stack", "stack ok"},
	"fragile":  {"fragile", "breakable"},
	"maxstack": {"max stack weight", "max stack", "stack limit", "top load"},
}

// DetectCSVDelimiter determines the most likely delimiter of the given CSV
// content. It tries comma, semicolon, tab, and pipe; the delimiter splitting
// the most lines into the same multi-column shape wins.
func DetectCSVDelimiter(data []byte) rune {
	best := ','
	bestScore := 0

	for _, delim := range []rune{',', ';', '\t', '|'} {
		score := delimiterScore(data, delim)
		if score > bestScore {
			bestScore = score
			best = delim
		}
	}
	return best
}

// delimiterScore rates how plausibly delim splits the content: consistency
// with the first row's column count weighs ten times the column count itself.
func delimiterScore(data []byte, delim rune) int {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delim
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil || len(records) == 0 {
		return 0
	}
	cols := len(records[0])
	if cols < 2 {
		return 0
	}

	consistent := 0
	for _, row := range records {
		if len(row) == cols {
			consistent++
		}
	}
	return consistent*10 + cols
}

// DetectColumns examines a header row and returns a ColumnMapping. Matching
// is case-insensitive over the known aliases per role. Returns the mapping
// and true if a header was detected, or the positional default mapping
// (id, type, length, width, height, tare, cargo, stackable, fragile, max
// stack weight) and false if not.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		ID: -1, Type: -1, Length: -1, Width: -1, Height: -1,
		Tare: -1, Cargo: -1, Stack: -1, Fragile: -1, MaxStack: -1,
	}

	assign := map[string]*int{
		"id":       &mapping.ID,
		"type":     &mapping.Type,
		"length":   &mapping.Length,
		"width":    &mapping.Width,
		"height":   &mapping.Height,
		"tare":     &mapping.Tare,
		"cargo":    &mapping.Cargo,
		"stack":    &mapping.Stack,
		"fragile":  &mapping.Fragile,
		"maxstack": &mapping.MaxStack,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					if idx := assign[role]; *idx == -1 {
						*idx = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{
			ID: 0, Type: 1, Length: 2, Width: 3, Height: 4,
			Tare: 5, Cargo: 6, Stack: 7, Fragile: 8, MaxStack: 9,
		}, false
	}
	return mapping, true
}

// parseBool converts a yes/no style cell to a bool. The second return value
// reports whether the string was recognized.
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1":
		return true, true
	case "no", "n", "false", "0":
		return false, true
	default:
		return false, false
	}
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// intCell parses a required or optional integer cell. Empty cells return
// fallback; anything non-numeric is an error.
func intCell(row []string, idx int, name, rowLabel string, fallback int) (int, string) {
	s := getCell(row, idx)
	if s == "" {
		return fallback, ""
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, name, s)
	}
	return v, ""
}

// parseRow extracts a pallet from a row using the given column mapping.
// Returns the pallet, an error message, and any warning messages.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (*model.Pallet, string, []string) {
	for _, dim := range []struct {
		name string
		idx  int
	}{{"length", mapping.Length}, {"width", mapping.Width}, {"height", mapping.Height}} {
		if getCell(row, dim.idx) == "" {
			return nil, fmt.Sprintf("%s: Missing %s value", rowLabel, dim.name), nil
		}
	}

	length, errMsg := intCell(row, mapping.Length, "length", rowLabel, 0)
	if errMsg != "" {
		return nil, errMsg, nil
	}
	width, errMsg := intCell(row, mapping.Width, "width", rowLabel, 0)
	if errMsg != "" {
		return nil, errMsg, nil
	}
	height, errMsg := intCell(row, mapping.Height, "height", rowLabel, 0)
	if errMsg != "" {
		return nil, errMsg, nil
	}

	var warnings []string
	typeName := getCell(row, mapping.Type)
	typeSpec, knownType := model.GetPalletType(typeName)
	if typeName != "" && !knownType {
		warnings = append(warnings, fmt.Sprintf("%s: Unknown pallet type '%s'", rowLabel, typeName))
	}

	tareFallback := 0
	if knownType {
		tareFallback = typeSpec.TareWeight
	}
	tare, errMsg := intCell(row, mapping.Tare, "tare weight", rowLabel, tareFallback)
	if errMsg != "" {
		return nil, errMsg, nil
	}
	cargo, errMsg := intCell(row, mapping.Cargo, "cargo weight", rowLabel, 0)
	if errMsg != "" {
		return nil, errMsg, nil
	}
	maxStack, errMsg := intCell(row, mapping.MaxStack, "max stack weight", rowLabel, 0)
	if errMsg != "" {
		return nil, errMsg, nil
	}

	p := model.NewPallet(typeName, length, width, height, tare)
	p.CargoWeight = cargo
	p.MaxStackWeight = maxStack
	if id := getCell(row, mapping.ID); id != "" {
		p.ID = id
	}
	if knownType {
		p.Color = typeSpec.Color
	}

	if s := getCell(row, mapping.Stack); s != "" {
		if v, ok := parseBool(s); ok {
			p.Stackable = v
		} else {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown stackable value '%s', defaulting to yes", rowLabel, s))
		}
	}
	if s := getCell(row, mapping.Fragile); s != "" {
		if v, ok := parseBool(s); ok {
			p.Fragile = v
		} else {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown fragile value '%s', defaulting to no", rowLabel, s))
		}
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Sprintf("%s: %v", rowLabel, err), nil
	}
	return p, "", warnings
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports pallets from a CSV manifest. It automatically detects
// the delimiter and maps columns by header names. Supports comma, semicolon,
// tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}
	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}
	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", warnings)
}

// ImportCSVFromReader imports pallets from a CSV reader with a known
// delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}
	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports pallets from an Excel (.xlsx) manifest. Reads the
// first sheet and auto-detects the column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for CSV and Excel data. It
// detects headers, maps columns, and parses each row into a pallet.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		var missing []string
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		// Positional data carries the length in the third column. A
		// non-numeric value there means an unrecognized header row.
		if _, err := strconv.Atoi(strings.TrimSpace(rows[0][2])); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		p, errMsg, warnings := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.Pallets = append(result.Pallets, p)
	}

	return result
}
