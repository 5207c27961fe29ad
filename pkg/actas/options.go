// Package actas generates equipment hand-over receipts from an OCS Inventory
// database.
package actas

import "time"

// Options configures a single Generate run.
type Options struct {
	// Now returns the timestamp printed on receipts. Defaults to time.Now.
	Now func() time.Time
	// Only restricts the run to these usernames when non-empty.
	Only []string
	// DryRun aggregates and builds rows without writing any file.
	DryRun bool
	// Debug enables SQL statement logging.
	Debug bool
}

// DefaultOptions returns default run options.
func DefaultOptions() Options {
	return Options{
		Now: time.Now,
	}
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// selects reports whether username is part of the run.
func (o Options) selects(username string) bool {
	if len(o.Only) == 0 {
		return true
	}
	for _, name := range o.Only {
		if name == username {
			return true
		}
	}
	return false
}
