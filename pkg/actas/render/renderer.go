// Package render fills the hand-over receipt template for one device.
package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/siati/actas-go/pkg/actas/config"
	"github.com/siati/actas-go/pkg/actas/models"
	"github.com/siati/actas-go/pkg/actas/template"
)

// Result describes a written receipt.
type Result struct {
	// Path is the saved file.
	Path string
	// Rows is the number of equipment rows written.
	Rows int
	// Dropped counts peripherals left out by the row cap.
	Dropped int
}

// Renderer writes one receipt per device from a template. It remembers the
// filenames it produced so two devices never share one file in a run.
type Renderer struct {
	templatePath string
	outputDir    string
	output       config.OutputConfig
	issuer       config.IssuerConfig
	receipt      config.ReceiptConfig
	layout       config.Layout
	rowOpts      RowOptions
	log          *zap.Logger

	written map[string]int64
}

// New creates a Renderer from cfg.
func New(cfg *config.Config, log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{
		templatePath: cfg.Template,
		outputDir:    cfg.Output.Dir,
		output:       cfg.Output,
		issuer:       cfg.Issuer,
		receipt:      cfg.Receipt,
		layout:       cfg.Layout,
		rowOpts:      RowOptionsFromConfig(cfg.Receipt, cfg.Layout),
		log:          log,
		written:      make(map[string]int64),
	}
}

// CheckTemplate opens the template once and warns when the equipment table
// runs past the template's print area.
func (r *Renderer) CheckTemplate() error {
	if _, err := os.Stat(r.templatePath); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, r.templatePath)
	}

	f, err := excelize.OpenFile(r.templatePath)
	if err != nil {
		return err
	}
	defer f.Close()

	sheet := r.sheetName(f)
	last := r.layout.FirstRow + r.layout.MaxExtraRows
	if ok, area := template.CheckTableFits(f, sheet, r.layout.FirstRow, last); !ok {
		r.log.Warn("equipment table exceeds the template print area",
			zap.String("sheet", sheet),
			zap.Int("first_row", r.layout.FirstRow),
			zap.Int("last_row", last),
			zap.Int("print_area_last_row", area.R2),
		)
	}
	return nil
}

// Render fills a fresh copy of the template with record and saves it in the
// output directory. The template file itself is never modified.
func (r *Renderer) Render(record models.DeviceRecord, now time.Time) (*Result, error) {
	f, err := excelize.OpenFile(r.templatePath)
	if err != nil {
		return nil, &RenderError{Username: record.Username, Stage: "load", Err: err}
	}
	defer f.Close()

	sheet := r.sheetName(f)
	w := &cellWriter{f: f, sheet: sheet}

	r.writeHeader(w, record, now)
	rows, dropped := BuildRows(record, r.rowOpts)
	r.writeRows(w, rows)
	r.writeAcknowledgment(w, record)

	if w.err != nil {
		return nil, &RenderError{Username: record.Username, Stage: "write", Err: w.err}
	}

	filename := r.fileName(record, now)
	path := filepath.Join(r.outputDir, filename)
	if err := f.SaveAs(path); err != nil {
		return nil, &RenderError{Username: record.Username, Stage: "save", Err: err}
	}
	r.written[filename] = record.HardwareID

	if dropped > 0 {
		r.log.Warn("peripherals left out of receipt",
			zap.String("username", record.Username),
			zap.Int("dropped", dropped),
		)
	}

	return &Result{Path: path, Rows: len(rows), Dropped: dropped}, nil
}

func (r *Renderer) sheetName(f *excelize.File) string {
	if r.layout.Sheet != "" {
		return r.layout.Sheet
	}
	return f.GetSheetName(f.GetActiveSheetIndex())
}

// fileName returns the receipt filename, suffixed with the hardware id (and
// then a counter) until no other device in this run owns the name.
func (r *Renderer) fileName(record models.DeviceRecord, now time.Time) string {
	base := FileName(r.output.Prefix, record.Username, now, r.output.DateInFilename)
	name := base
	for attempt := 0; ; attempt++ {
		owner, ok := r.written[name]
		if !ok || owner == record.HardwareID {
			return name
		}
		name = disambiguate(base, record.HardwareID, attempt)
	}
}

func (r *Renderer) writeHeader(w *cellWriter, record models.DeviceRecord, now time.Time) {
	w.set(r.layout.RecipientName, record.Username)
	w.set(r.layout.IssuerName, r.issuer.Name)
	w.set(r.layout.Date, now.Format(r.receipt.DateFormat))
	w.set(r.layout.Time, now.Format(r.receipt.TimeFormat))
	if r.receipt.Reason != "" {
		w.set(r.layout.ReasonMark, r.receipt.ReasonMark)
		w.set(r.layout.ReasonLabel, r.receipt.Reason)
	}
}

func (r *Renderer) writeRows(w *cellWriter, rows []models.EquipmentRow) {
	cols := r.layout.Columns
	for i, row := range rows {
		n := r.layout.FirstRow + i
		w.setAt(cols.Index, n, row.Index)
		w.setAt(cols.Category, n, row.Category)
		w.setAt(cols.Status, n, row.Status)
		w.setAt(cols.Brand, n, row.Brand)
		w.setAt(cols.Model, n, row.Model)
		w.setAt(cols.Serial, n, row.Serial)
		if row.Observation != "" {
			w.setAt(cols.Observation, n, row.Observation)
		}
	}
}

func (r *Renderer) writeAcknowledgment(w *cellWriter, record models.DeviceRecord) {
	w.set(r.layout.DeliveredBy, r.issuer.Name)
	w.set(r.layout.DeliveredByArea, r.issuer.Area)
	w.set(r.layout.ReceivedBy, record.Username)
}

// cellWriter keeps the first write error so rendering reads top to bottom.
type cellWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func (w *cellWriter) set(cell string, value interface{}) {
	if w.err != nil || cell == "" {
		return
	}
	w.err = w.f.SetCellValue(w.sheet, cell, value)
}

func (w *cellWriter) setAt(col string, row int, value interface{}) {
	if w.err != nil || col == "" {
		return
	}
	cell, err := excelize.JoinCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	w.set(cell, value)
}
