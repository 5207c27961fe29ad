package template

import (
	"fmt"
	"path/filepath"

	"github.com/siati/actas-go/pkg/actas/models"
	"github.com/xuri/excelize/v2"
)

// Inspect opens a template and describes every sheet's non-empty cells and
// print areas.
func Inspect(path string) (*models.TemplateReport, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	printAreas := ExtractPrintAreas(f)
	sheets := make(map[string]models.TemplateSheet)

	for _, sheetName := range f.GetSheetList() {
		rows, err := ExtractCells(f, sheetName)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheetName, err)
		}
		sheets[sheetName] = models.TemplateSheet{
			Rows:       rows,
			PrintAreas: printAreas[sheetName],
		}
	}

	return &models.TemplateReport{
		BookName:    filepath.Base(path),
		Sheets:      sheets,
		ActiveSheet: f.GetSheetName(f.GetActiveSheetIndex()),
	}, nil
}

// CheckTableFits reports whether rows first..last of sheetName fall inside
// the sheet's print area. Sheets without a print area always fit.
func CheckTableFits(f *excelize.File, sheetName string, first, last int) (bool, *models.PrintArea) {
	areas := ExtractPrintAreas(f)[sheetName]
	if len(areas) == 0 {
		return true, nil
	}
	for i := range areas {
		if areas[i].ContainsRows(first, last) {
			return true, &areas[i]
		}
	}
	return false, &areas[0]
}
