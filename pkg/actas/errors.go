package actas

import "errors"

// ErrNoDevices indicates the inventory returned no device to render.
var ErrNoDevices = errors.New("no devices found")
