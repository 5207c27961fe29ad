package models

// PeripheralClass identifies one of the peripheral tables.
type PeripheralClass string

const (
	// ClassMonitor selects rows from the monitors table.
	ClassMonitor PeripheralClass = "monitor"
	// ClassKeyboard selects keyboard rows from the inputs table.
	ClassKeyboard PeripheralClass = "keyboard"
	// ClassPointing selects mouse and pointing rows from the inputs table.
	ClassPointing PeripheralClass = "pointing"
)

// PeripheralClasses lists the classes in receipt order.
var PeripheralClasses = []PeripheralClass{ClassMonitor, ClassKeyboard, ClassPointing}

// PeripheralLookup is the outcome of fetching one peripheral class for one
// device. A nil Err with no Records means the device has none of that class.
type PeripheralLookup struct {
	Class   PeripheralClass
	Records []PeripheralRecord
	Err     error
}

// Failed reports whether the lookup ended in an error.
func (l PeripheralLookup) Failed() bool {
	return l.Err != nil
}
