package template

import (
	"strconv"
	"strings"

	"github.com/siati/actas-go/pkg/actas/models"
	"github.com/xuri/excelize/v2"
)

// ExtractPrintAreas extracts print areas from a workbook.
// Returns a map of sheet name to list of print areas.
func ExtractPrintAreas(f *excelize.File) map[string][]models.PrintArea {
	result := make(map[string][]models.PrintArea)

	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, "_xlnm.Print_Area") {
			continue
		}
		sheetName, areas := parsePrintAreaReference(dn.RefersTo)
		if sheetName == "" && dn.Scope != "" && dn.Scope != "Workbook" {
			sheetName = dn.Scope
		}
		if sheetName != "" && len(areas) > 0 {
			result[sheetName] = append(result[sheetName], areas...)
		}
	}

	return result
}

// parsePrintAreaReference parses a print area reference string.
// Format: 'SheetName'!$A$1:$D$10 or SheetName!$A$1:$D$10
func parsePrintAreaReference(ref string) (string, []models.PrintArea) {
	var areas []models.PrintArea
	var sheetName string

	for _, part := range strings.Split(ref, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		rangeStr := part
		if idx := strings.LastIndex(part, "!"); idx >= 0 {
			sheet := strings.Trim(part[:idx], "'")
			rangeStr = part[idx+1:]
			if sheetName == "" {
				sheetName = sheet
			}
		}

		if area := parseRangeToArea(rangeStr); area != nil {
			areas = append(areas, *area)
		}
	}

	return sheetName, areas
}

// parseRangeToArea turns one print area range into a PrintArea. Besides
// A1:R60 it accepts a single cell, whole rows (1:60) and whole columns (A:R).
func parseRangeToArea(rangeStr string) *models.PrintArea {
	from, to, found := strings.Cut(strings.ReplaceAll(rangeStr, "$", ""), ":")
	if !found {
		to = from
	}

	c1, r1, ok := parseBound(from)
	if !ok {
		return nil
	}
	c2, r2, ok := parseBound(to)
	if !ok {
		return nil
	}
	// a bound without a row spans every row, one without a column every column
	if r1 == 0 || r2 == 0 {
		r1, r2 = 1, excelize.TotalRows
	}
	if c1 == 0 || c2 == 0 {
		c1, c2 = 1, excelize.MaxColumns
	}
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	if c1 > c2 {
		c1, c2 = c2, c1
	}
	return &models.PrintArea{R1: r1, C1: c1, R2: r2, C2: c2}
}

// parseBound reads a cell (A1), a column (A) or a row (1). The missing part
// is returned as zero.
func parseBound(s string) (col, row int, ok bool) {
	if s == "" {
		return 0, 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return 0, n, n > 0
	}
	if n, err := excelize.ColumnNameToNumber(s); err == nil {
		return n, 0, true
	}
	col, row, err := excelize.CellNameToCoordinates(s)
	return col, row, err == nil
}
