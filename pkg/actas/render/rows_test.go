package render

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/siati/actas-go/pkg/actas/config"
	"github.com/siati/actas-go/pkg/actas/models"
)

func defaultRowOptions() RowOptions {
	cfg := config.DefaultConfig()
	return RowOptionsFromConfig(cfg.Receipt, cfg.Layout)
}

func peripherals(prefix string, n int, withSerial bool) []models.PeripheralRecord {
	var out []models.PeripheralRecord
	for i := 0; i < n; i++ {
		p := models.PeripheralRecord{
			Brand:      fmt.Sprintf("%s-brand-%d", prefix, i+1),
			Identifier: fmt.Sprintf("%s-model-%d", prefix, i+1),
		}
		if withSerial {
			p.SerialNumber = fmt.Sprintf("%s-SN-%d", prefix, i+1)
		}
		out = append(out, p)
	}
	return out
}

func TestBuildRows(t *testing.T) {
	record := models.DeviceRecord{
		Username:     "PC-VENTAS-02",
		OSLabel:      "Microsoft Windows 10 Pro",
		ChassisType:  "Desktop",
		Manufacturer: "Dell Inc.",
		Model:        "OptiPlex 7040",
		SerialNumber: "JX4K2H2",
		Monitors: []models.PeripheralRecord{
			{Brand: "Dell", Identifier: "P2419H", SerialNumber: "CN-0ABC"},
		},
		Keyboards: []models.PeripheralRecord{
			{Brand: "Keyboard", Identifier: "Teclado HID estándar"},
		},
		PointingDevices: []models.PeripheralRecord{
			{Brand: "Pointing", Identifier: "Mouse compatible HID"},
		},
	}

	rows, dropped := BuildRows(record, defaultRowOptions())

	expected := []models.EquipmentRow{
		{Index: 1, Category: CategoryCPU, Status: "En funcionamiento / Regular", Brand: "Dell Inc.", Model: "OptiPlex 7040", Serial: "JX4K2H2"},
		{Index: 2, Category: CategoryMonitor, Status: "En funcionamiento / Regular", Brand: "Dell", Model: "P2419H", Serial: "CN-0ABC"},
		{Index: 3, Category: CategoryKeyboard, Status: "En funcionamiento / Regular", Brand: "Keyboard", Model: "Teclado HID estándar", Serial: MissingSerial},
		{Index: 4, Category: CategoryPointing, Status: "En funcionamiento", Brand: "Pointing", Model: "Mouse compatible HID", Serial: MissingSerial},
	}
	if diff := cmp.Diff(expected, rows); diff != "" {
		t.Errorf("BuildRows mismatch (-want +got):\n%s", diff)
	}
	if dropped != 0 {
		t.Errorf("Expected nothing dropped, got %d", dropped)
	}
}

func TestBuildRowsPrimaryWithoutSerial(t *testing.T) {
	rows, _ := BuildRows(models.DeviceRecord{Username: "LAB-LINUX"}, defaultRowOptions())

	if len(rows) != 1 {
		t.Fatalf("Expected only the primary row, got %d", len(rows))
	}
	if rows[0].Serial != "" {
		t.Errorf("Primary serial should stay empty, got %q", rows[0].Serial)
	}
	if rows[0].Category != CategoryGeneric {
		t.Errorf("Expected %q, got %q", CategoryGeneric, rows[0].Category)
	}
}

func TestBuildRowsOverflow(t *testing.T) {
	record := models.DeviceRecord{
		Username:        "SALA-REUNIONES",
		Monitors:        peripherals("mon", 4, true),
		Keyboards:       peripherals("kbd", 5, false),
		PointingDevices: peripherals("mouse", 5, false),
	}

	rows, dropped := BuildRows(record, defaultRowOptions())

	if len(rows) != 11 {
		t.Fatalf("Expected 1 primary + 10 peripheral rows, got %d", len(rows))
	}
	if dropped != 4 {
		t.Errorf("Expected 4 dropped, got %d", dropped)
	}

	categories := map[string]int{}
	for _, row := range rows[1:] {
		categories[row.Category]++
	}
	if categories[CategoryMonitor] != 4 || categories[CategoryKeyboard] != 5 || categories[CategoryPointing] != 1 {
		t.Errorf("Unexpected category mix: %v", categories)
	}
	if last := rows[len(rows)-1]; last.Index != 11 || last.Brand != "mouse-brand-1" {
		t.Errorf("Unexpected last row: %+v", last)
	}
}

func TestBuildRowsOverflowCapIsConfigurable(t *testing.T) {
	opts := defaultRowOptions()
	opts.MaxExtraRows = 2

	rows, dropped := BuildRows(models.DeviceRecord{Monitors: peripherals("mon", 3, true)}, opts)
	if len(rows) != 3 || dropped != 1 {
		t.Errorf("Expected 3 rows and 1 dropped, got %d rows and %d dropped", len(rows), dropped)
	}

	opts.MaxExtraRows = 0
	rows, dropped = BuildRows(models.DeviceRecord{Monitors: peripherals("mon", 3, true)}, opts)
	if len(rows) != 1 || dropped != 3 {
		t.Errorf("Expected primary only and 3 dropped, got %d rows and %d dropped", len(rows), dropped)
	}
}

func TestBuildRowsNumbering(t *testing.T) {
	record := models.DeviceRecord{
		Monitors:        peripherals("mon", 2, true),
		Keyboards:       peripherals("kbd", 2, false),
		PointingDevices: peripherals("mouse", 1, false),
	}

	tests := []struct {
		numbering string
		expected  []int
	}{
		{config.NumberingContinuous, []int{1, 2, 3, 4, 5, 6}},
		{config.NumberingPerCategory, []int{1, 1, 2, 1, 2, 1}},
	}

	for _, tt := range tests {
		opts := defaultRowOptions()
		opts.Numbering = tt.numbering
		rows, _ := BuildRows(record, opts)

		var got []int
		for _, row := range rows {
			got = append(got, row.Index)
		}
		if diff := cmp.Diff(tt.expected, got); diff != "" {
			t.Errorf("numbering %s mismatch (-want +got):\n%s", tt.numbering, diff)
		}
	}
}

func TestBuildRowsObservations(t *testing.T) {
	opts := defaultRowOptions()
	opts.Observations = true

	record := models.DeviceRecord{
		Username:  "PC-01",
		Monitors:  peripherals("mon", 2, true),
		Keyboards: peripherals("kbd", 1, false),
	}
	rows, _ := BuildRows(record, opts)

	var got []string
	for _, row := range rows {
		got = append(got, row.Observation)
	}
	expected := []string{"Usuario: PC-01", "Monitor 1", "Monitor 2", "Teclado 1"}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("observations mismatch (-want +got):\n%s", diff)
	}
}

func TestRowOptionsFromConfigNeedsObservationColumn(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Receipt.Observations = true

	if RowOptionsFromConfig(cfg.Receipt, cfg.Layout).Observations {
		t.Error("Observations should stay off without a layout column")
	}

	cfg.Layout.Columns.Observation = "Q"
	if !RowOptionsFromConfig(cfg.Receipt, cfg.Layout).Observations {
		t.Error("Observations should be on with a layout column")
	}
}
