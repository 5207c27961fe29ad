package models

// CellRow holds the non-empty cells of one template row.
type CellRow struct {
	// R is the row index (1-based).
	R int `json:"r"`
	// Cells maps the cell reference (e.g. "D11") to its displayed value.
	Cells map[string]string `json:"cells"`
	// Merged maps a cell reference to the merged range it anchors, if any.
	Merged map[string]string `json:"merged,omitempty"`
}
