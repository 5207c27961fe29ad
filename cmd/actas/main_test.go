package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/siati/actas-go/pkg/actas/config"
	"github.com/siati/actas-go/pkg/actas/inventory"
	"github.com/siati/actas-go/pkg/actas/models"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configPath, verbose, outputPath, pretty = "", false, "", false
	templatePath, outputDir, only, dryRun, dateStamp = "", "", nil, false, false

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInitWritesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actas.yaml")

	out, err := execute(t, "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().Layout, cfg.Layout)

	_, err = execute(t, "init", "--config", path)
	assert.Error(t, err)
}

func TestInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plantilla.xlsx")
	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "D9", "Entregado por:")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	out, err := execute(t, "inspect", path)
	require.NoError(t, err)

	var report models.TemplateReport
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &report))
	assert.Equal(t, "plantilla.xlsx", report.BookName)
	assert.Equal(t, "Entregado por:", report.Sheets["Sheet1"].Rows[0].Cells["D9"])
}

func TestInspectToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plantilla.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	target := filepath.Join(dir, "layout.json")
	_, err := execute(t, "inspect", path, "--output", target, "--pretty")
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"book_name\": \"plantilla.xlsx\"")
}

func TestInspectMissingFile(t *testing.T) {
	_, err := execute(t, "inspect", filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}

// newGenerateFixture seeds an OCS database, a template and a config file
// whose template and output paths are deliberately wrong.
func newGenerateFixture(t *testing.T) (dir, cfgPath, tplPath string) {
	t.Helper()
	dir = t.TempDir()

	cfg := config.DefaultConfig()
	cfg.Database = config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(dir, "ocs.db")}
	cfg.Template = filepath.Join(dir, "missing.xlsx")
	cfg.Output.Dir = filepath.Join(dir, "from-config")
	cfgPath = filepath.Join(dir, "actas.yaml")
	require.NoError(t, cfg.Save(cfgPath))

	db, err := inventory.Connect(context.Background(), cfg.Database, false)
	require.NoError(t, err)
	for _, stmt := range []string{
		`CREATE TABLE hardware (ID INTEGER PRIMARY KEY, NAME VARCHAR(255), OSNAME VARCHAR(255))`,
		`CREATE TABLE bios (ID INTEGER PRIMARY KEY, HARDWARE_ID INTEGER, SMANUFACTURER VARCHAR(255), SMODEL VARCHAR(255), SSN VARCHAR(255), TYPE VARCHAR(255))`,
		`CREATE TABLE monitors (ID INTEGER PRIMARY KEY, HARDWARE_ID INTEGER, MANUFACTURER VARCHAR(255), CAPTION VARCHAR(255), SERIAL VARCHAR(255))`,
		`CREATE TABLE inputs (ID INTEGER PRIMARY KEY, HARDWARE_ID INTEGER, TYPE VARCHAR(255), NAME VARCHAR(255), DESCRIPTION VARCHAR(255))`,
		`INSERT INTO hardware (ID, NAME, OSNAME) VALUES (1, 'PC-01', 'Microsoft Windows 10 Pro')`,
		`INSERT INTO bios (HARDWARE_ID, SMANUFACTURER, SMODEL, SSN, TYPE) VALUES (1, 'Dell Inc.', 'OptiPlex 7040', 'JX4K2H2', 'Desktop')`,
		`INSERT INTO monitors (HARDWARE_ID, MANUFACTURER, CAPTION, SERIAL) VALUES (1, 'Dell', 'P2419H', 'CN-0ABC')`,
	} {
		require.NoError(t, db.Exec(stmt).Error, stmt)
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	tplPath = filepath.Join(dir, "plantilla.xlsx")
	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "A1", "ACTA DE ENTREGA DE EQUIPOS")
	require.NoError(t, f.SaveAs(tplPath))
	require.NoError(t, f.Close())
	return dir, cfgPath, tplPath
}

func TestGenerateFlagsOverrideConfig(t *testing.T) {
	dir, cfgPath, tplPath := newGenerateFixture(t)
	out := filepath.Join(dir, "actas")

	stdout, err := execute(t, "generate", "--config", cfgPath,
		"--template", tplPath, "--output-dir", out, "--date-stamp")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 receipts written to "+out)

	written, err := filepath.Glob(filepath.Join(out, "Entrega_PC-01_*.xlsx"))
	require.NoError(t, err)
	require.Len(t, written, 1)
	assert.Regexp(t, `Entrega_PC-01_\d{8}\.xlsx$`, written[0])

	_, err = os.Stat(filepath.Join(dir, "from-config"))
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateDryRunPrintsRows(t *testing.T) {
	dir, cfgPath, _ := newGenerateFixture(t)

	stdout, err := execute(t, "generate", "--config", cfgPath, "--dry-run")
	require.NoError(t, err)

	var planned map[string][]models.EquipmentRow
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(stdout)), &planned))
	require.Len(t, planned["PC-01"], 2)
	assert.Equal(t, "CPU", planned["PC-01"][0].Category)
	assert.Equal(t, "CN-0ABC", planned["PC-01"][1].Serial)

	_, err = os.Stat(filepath.Join(dir, "from-config"))
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateOnlyUnknownUser(t *testing.T) {
	_, cfgPath, tplPath := newGenerateFixture(t)

	_, err := execute(t, "generate", "--config", cfgPath, "--template", tplPath, "--only", "nadie")
	assert.Error(t, err)
}
