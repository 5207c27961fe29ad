package models

// TemplateReport describes a receipt template for layout configuration.
type TemplateReport struct {
	// BookName is the template file name (no path).
	BookName string `json:"book_name"`
	// Sheets maps sheet name to its layout description.
	Sheets map[string]TemplateSheet `json:"sheets"`
	// ActiveSheet is the sheet receipts are written to.
	ActiveSheet string `json:"active_sheet"`
}

// TemplateSheet describes a single template sheet.
type TemplateSheet struct {
	// Rows contains the non-empty rows with their cell values.
	Rows []CellRow `json:"rows,omitempty"`
	// PrintAreas contains user-defined print areas.
	PrintAreas []PrintArea `json:"print_areas,omitempty"`
}
