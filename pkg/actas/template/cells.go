// Package template reads receipt templates so their cell layout can be
// configured and checked.
package template

import (
	"strings"

	"github.com/siati/actas-go/pkg/actas/models"
	"github.com/xuri/excelize/v2"
)

// ExtractCells extracts the non-empty cells of a sheet.
// Merged ranges are reported against their top-left cell.
func ExtractCells(f *excelize.File, sheetName string) ([]models.CellRow, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	merged, err := mergedAnchors(f, sheetName)
	if err != nil {
		return nil, err
	}

	var result []models.CellRow
	for rowIdx, row := range rows {
		rowNum := rowIdx + 1
		cellMap := make(map[string]string)
		mergedMap := make(map[string]string)

		for colIdx, cellValue := range row {
			cellValue = strings.TrimSpace(cellValue)
			if cellValue == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			if err != nil {
				return nil, err
			}
			cellMap[cellName] = cellValue
			if ref, ok := merged[cellName]; ok {
				mergedMap[cellName] = ref
			}
		}

		if len(cellMap) > 0 {
			cellRow := models.CellRow{
				R:     rowNum,
				Cells: cellMap,
			}
			if len(mergedMap) > 0 {
				cellRow.Merged = mergedMap
			}
			result = append(result, cellRow)
		}
	}

	return result, nil
}

// mergedAnchors maps the top-left cell of every merged range to the range.
func mergedAnchors(f *excelize.File, sheetName string) (map[string]string, error) {
	cells, err := f.GetMergeCells(sheetName)
	if err != nil {
		return nil, err
	}
	result := make(map[string]string, len(cells))
	for _, mc := range cells {
		result[mc.GetStartAxis()] = mc.GetStartAxis() + ":" + mc.GetEndAxis()
	}
	return result, nil
}
