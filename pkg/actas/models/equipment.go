package models

// EquipmentRow is one line of the receipt's equipment table.
type EquipmentRow struct {
	// Index is the printed sequence number (1-based).
	Index int `json:"index"`
	// Category is the equipment label ("CPU", "Monitor", "Teclado", ...).
	Category string `json:"category"`
	// Status is the condition label.
	Status string `json:"status"`
	Brand  string `json:"brand"`
	Model  string `json:"model"`
	Serial string `json:"serial"`
	// Observation is the optional free-text note.
	Observation string `json:"observation,omitempty"`
}
