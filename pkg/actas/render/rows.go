package render

import (
	"fmt"

	"github.com/siati/actas-go/pkg/actas/config"
	"github.com/siati/actas-go/pkg/actas/models"
)

// MissingSerial is printed for peripherals without a serial number.
const MissingSerial = "N/A"

// RowOptions controls how equipment rows are built.
type RowOptions struct {
	Status          string
	StatusOverrides map[string]string
	// Numbering is config.NumberingContinuous or config.NumberingPerCategory.
	Numbering string
	// MaxExtraRows caps the peripheral rows after the primary row.
	MaxExtraRows int
	// Observations fills EquipmentRow.Observation.
	Observations bool
}

// RowOptionsFromConfig derives row options from the receipt configuration.
func RowOptionsFromConfig(receipt config.ReceiptConfig, layout config.Layout) RowOptions {
	return RowOptions{
		Status:          receipt.Status,
		StatusOverrides: receipt.StatusOverrides,
		Numbering:       receipt.Numbering,
		MaxExtraRows:    layout.MaxExtraRows,
		Observations:    receipt.Observations && layout.Columns.Observation != "",
	}
}

func (o RowOptions) status(category string) string {
	if s, ok := o.StatusOverrides[category]; ok {
		return s
	}
	return o.Status
}

var classCategories = map[models.PeripheralClass]string{
	models.ClassMonitor:  CategoryMonitor,
	models.ClassKeyboard: CategoryKeyboard,
	models.ClassPointing: CategoryPointing,
}

// BuildRows projects a device onto equipment rows: the primary device, then
// monitors, keyboards and pointing devices. Peripherals beyond MaxExtraRows
// are dropped and counted.
func BuildRows(record models.DeviceRecord, opts RowOptions) (rows []models.EquipmentRow, dropped int) {
	primaryCategory := ClassifyEquipment(record.OSLabel, record.ChassisType)
	primary := models.EquipmentRow{
		Index:    1,
		Category: primaryCategory,
		Status:   opts.status(primaryCategory),
		Brand:    record.Manufacturer,
		Model:    record.Model,
		Serial:   record.SerialNumber,
	}
	if opts.Observations {
		primary.Observation = "Usuario: " + record.Username
	}
	rows = append(rows, primary)

	extra := 0
	for _, class := range models.PeripheralClasses {
		category := classCategories[class]
		for i, p := range record.Peripherals(class) {
			if extra >= opts.MaxExtraRows {
				dropped++
				continue
			}

			index := len(rows) + 1
			if opts.Numbering == config.NumberingPerCategory {
				index = i + 1
			}
			serial := p.SerialNumber
			if serial == "" {
				serial = MissingSerial
			}

			row := models.EquipmentRow{
				Index:    index,
				Category: category,
				Status:   opts.status(category),
				Brand:    p.Brand,
				Model:    p.Identifier,
				Serial:   serial,
			}
			if opts.Observations {
				row.Observation = fmt.Sprintf("%s %d", category, i+1)
			}
			rows = append(rows, row)
			extra++
		}
	}

	return rows, dropped
}
