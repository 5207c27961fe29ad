// Package models defines the records moved between the inventory database,
// the receipt renderer and the template inspector.
package models

// DeviceRecord is one primary hardware asset with its attached peripherals.
type DeviceRecord struct {
	// Username is the hardware display name. It identifies the recipient and
	// seeds the output filename.
	Username string `json:"username"`
	// OSLabel is the raw operating system name reported by the agent.
	OSLabel string `json:"os_label,omitempty"`
	// ChassisType is the raw BIOS chassis type (e.g. "Desktop", "Notebook").
	ChassisType string `json:"chassis_type,omitempty"`
	// Manufacturer is the BIOS system manufacturer.
	Manufacturer string `json:"manufacturer,omitempty"`
	// Model is the BIOS system model.
	Model string `json:"model,omitempty"`
	// SerialNumber is the BIOS system serial.
	SerialNumber string `json:"serial_number,omitempty"`
	// HardwareID is the inventory key. It is never rendered.
	HardwareID int64 `json:"hardware_id"`

	// Monitors contains the monitors attached to the device.
	Monitors []PeripheralRecord `json:"monitors,omitempty"`
	// Keyboards contains the keyboards attached to the device.
	Keyboards []PeripheralRecord `json:"keyboards,omitempty"`
	// PointingDevices contains mice and other pointing devices.
	PointingDevices []PeripheralRecord `json:"pointing_devices,omitempty"`

	// Lookups records the outcome of each peripheral lookup.
	Lookups []PeripheralLookup `json:"-"`
}

// PeripheralRecord is a monitor, keyboard or pointing device.
type PeripheralRecord struct {
	Brand        string `json:"brand"`
	Identifier   string `json:"identifier"`
	SerialNumber string `json:"serial_number,omitempty"`
}

// Peripherals returns the peripheral list for class.
func (d *DeviceRecord) Peripherals(class PeripheralClass) []PeripheralRecord {
	switch class {
	case ClassMonitor:
		return d.Monitors
	case ClassKeyboard:
		return d.Keyboards
	case ClassPointing:
		return d.PointingDevices
	}
	return nil
}

// SetPeripherals stores the records of a finished lookup and keeps the
// lookup outcome.
func (d *DeviceRecord) SetPeripherals(lookup PeripheralLookup) {
	switch lookup.Class {
	case ClassMonitor:
		d.Monitors = lookup.Records
	case ClassKeyboard:
		d.Keyboards = lookup.Records
	case ClassPointing:
		d.PointingDevices = lookup.Records
	}
	d.Lookups = append(d.Lookups, lookup)
}

// PeripheralCount returns the number of peripherals across all classes.
func (d *DeviceRecord) PeripheralCount() int {
	return len(d.Monitors) + len(d.Keyboards) + len(d.PointingDevices)
}

// FailedLookups returns the lookups that ended in an error.
func (d *DeviceRecord) FailedLookups() []PeripheralLookup {
	var failed []PeripheralLookup
	for _, l := range d.Lookups {
		if l.Failed() {
			failed = append(failed, l)
		}
	}
	return failed
}
