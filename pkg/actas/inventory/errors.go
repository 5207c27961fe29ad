package inventory

import (
	"fmt"

	"github.com/siati/actas-go/pkg/actas/models"
)

// LookupError represents a failed peripheral lookup for one device.
type LookupError struct {
	HardwareID int64
	Class      models.PeripheralClass
	Err        error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s lookup failed for hardware %d: %v", e.Class, e.HardwareID, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}
