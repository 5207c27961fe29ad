package actas

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/siati/actas-go/pkg/actas/config"
	"github.com/siati/actas-go/pkg/actas/inventory"
	"github.com/siati/actas-go/pkg/actas/models"
	"github.com/siati/actas-go/pkg/actas/render"
)

// Summary reports the outcome of a run.
type Summary struct {
	RunID string
	// Devices is the number of devices selected for rendering.
	Devices int
	// Written lists the receipt files saved.
	Written []string
	// Failed lists the usernames whose receipt could not be produced.
	Failed []string
	// DroppedRows counts peripherals left out by the row cap.
	DroppedRows int
	// DegradedLookups counts peripheral lookups that failed.
	DegradedLookups int
	// Planned holds the rows of every device in a dry run.
	Planned map[string][]models.EquipmentRow
}

// Generate runs one batch: it reads every device from the inventory database
// and writes one receipt per device. Connection and primary query failures
// abort the run before the output directory is created; a failed receipt is
// logged and the batch moves on.
func Generate(ctx context.Context, cfg *config.Config, log *zap.Logger, opts Options) (*Summary, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	summary := &Summary{RunID: uuid.NewString()}
	log = log.With(zap.String("run_id", summary.RunID))

	renderer := render.New(cfg, log)
	if !opts.DryRun {
		if err := renderer.CheckTemplate(); err != nil {
			log.Error("template check failed, receipts will fail to load",
				zap.String("template", cfg.Template),
				zap.Error(err),
			)
		}
	}

	store, err := inventory.Open(ctx, cfg.Database, cfg.Inventory, log, opts.Debug)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("failed to close database", zap.Error(err))
		}
	}()
	log.Info("connected to inventory database",
		zap.String("driver", cfg.Database.Driver),
		zap.String("database", cfg.Database.Name),
	)

	devices, err := store.Aggregate(ctx)
	if err != nil {
		return nil, fmt.Errorf("device query failed: %w", err)
	}

	selected := devices[:0]
	for _, d := range devices {
		if opts.selects(d.Username) {
			selected = append(selected, d)
		}
	}
	if len(selected) == 0 {
		return nil, ErrNoDevices
	}
	summary.Devices = len(selected)

	if opts.DryRun {
		summary.Planned = make(map[string][]models.EquipmentRow, len(selected))
		rowOpts := render.RowOptionsFromConfig(cfg.Receipt, cfg.Layout)
		for _, d := range selected {
			rows, dropped := render.BuildRows(d, rowOpts)
			summary.Planned[d.Username] = rows
			summary.DroppedRows += dropped
			summary.DegradedLookups += len(d.FailedLookups())
		}
		return summary, nil
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}
	log.Info("generating receipts", zap.Int("devices", len(selected)))
	now := opts.now()
	for _, d := range selected {
		summary.DegradedLookups += len(d.FailedLookups())

		res, err := renderer.Render(d, now)
		if err != nil {
			log.Error("failed to create receipt",
				zap.String("username", d.Username),
				zap.Error(err),
			)
			summary.Failed = append(summary.Failed, d.Username)
			continue
		}

		summary.Written = append(summary.Written, res.Path)
		summary.DroppedRows += res.Dropped
		log.Info("receipt created",
			zap.String("username", d.Username),
			zap.String("file", res.Path),
			zap.Int("rows", res.Rows),
		)
	}

	log.Info("run completed",
		zap.String("output_dir", cfg.Output.Dir),
		zap.Int("written", len(summary.Written)),
		zap.Int("failed", len(summary.Failed)),
	)
	return summary, nil
}
