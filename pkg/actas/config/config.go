// Package config loads the receipt generator configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedDriver indicates a database driver other than mysql,
// postgres or sqlite.
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Config holds the whole receipt generator configuration.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Inventory InventoryConfig `yaml:"inventory"`
	Template  string          `yaml:"template"`
	Output    OutputConfig    `yaml:"output"`
	Issuer    IssuerConfig    `yaml:"issuer"`
	Receipt   ReceiptConfig   `yaml:"receipt"`
	Layout    Layout          `yaml:"layout"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// DatabaseConfig configures the inventory database connection.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // mysql, postgres, sqlite
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	// Path is the database file for the sqlite driver.
	Path string `yaml:"path"`
	// Params is appended to the DSN verbatim.
	Params string `yaml:"params"`
}

// InventoryConfig selects the peripheral query policy.
type InventoryConfig struct {
	// RequireMonitorSerial drops monitors without a serial number.
	RequireMonitorSerial bool `yaml:"require_monitor_serial"`
	// SingleInputDevice keeps at most one keyboard and one pointing device.
	SingleInputDevice bool `yaml:"single_input_device"`
	// InputBrandColumn is the inputs column shown as brand: "name" or "type".
	InputBrandColumn string `yaml:"input_brand_column"`
	// KeyboardTypes are the inputs.TYPE values counted as keyboards.
	KeyboardTypes []string `yaml:"keyboard_types"`
	// PointingTypes are the inputs.TYPE values counted as pointing devices.
	PointingTypes []string `yaml:"pointing_types"`
}

// OutputConfig controls where receipts are written and how they are named.
type OutputConfig struct {
	Dir string `yaml:"dir"`
	// Prefix is prepended to the sanitized username.
	Prefix string `yaml:"prefix"`
	// DateInFilename appends _YYYYMMDD so reruns on other days keep
	// earlier receipts.
	DateInFilename bool `yaml:"date_in_filename"`
}

// IssuerConfig names the person handing over the equipment.
type IssuerConfig struct {
	Name string `yaml:"name"`
	Area string `yaml:"area"`
}

// ReceiptConfig holds the fixed texts printed on every receipt.
type ReceiptConfig struct {
	Reason     string `yaml:"reason"`
	ReasonMark string `yaml:"reason_mark"`
	// Status is the condition label printed on every row.
	Status string `yaml:"status"`
	// StatusOverrides replaces Status for a category label.
	StatusOverrides map[string]string `yaml:"status_overrides"`
	// Numbering is "continuous" or "per_category".
	Numbering  string `yaml:"numbering"`
	DateFormat string `yaml:"date_format"`
	TimeFormat string `yaml:"time_format"`
	// Observations fills the observations column when the layout has one.
	Observations bool `yaml:"observations"`
}

// Layout maps receipt fields to template coordinates. Empty coordinates are
// not written.
type Layout struct {
	// Sheet is the sheet to write; empty means the active sheet.
	Sheet string `yaml:"sheet"`

	RecipientName string `yaml:"recipient_name"`
	IssuerName    string `yaml:"issuer_name"`
	Date          string `yaml:"date"`
	Time          string `yaml:"time"`
	ReasonMark    string `yaml:"reason_mark"`
	ReasonLabel   string `yaml:"reason_label"`

	// FirstRow is the template row of the primary device.
	FirstRow int `yaml:"first_row"`
	// MaxExtraRows caps the peripheral rows written after FirstRow.
	MaxExtraRows int           `yaml:"max_extra_rows"`
	Columns      LayoutColumns `yaml:"columns"`

	DeliveredBy     string `yaml:"delivered_by"`
	DeliveredByArea string `yaml:"delivered_by_area"`
	ReceivedBy      string `yaml:"received_by"`
}

// LayoutColumns are the equipment table column letters.
type LayoutColumns struct {
	Index       string `yaml:"index"`
	Category    string `yaml:"category"`
	Status      string `yaml:"status"`
	Brand       string `yaml:"brand"`
	Model       string `yaml:"model"`
	Serial      string `yaml:"serial"`
	Observation string `yaml:"observation"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// Numbering modes.
const (
	NumberingContinuous  = "continuous"
	NumberingPerCategory = "per_category"
)

// DefaultConfig returns the configuration of the production template.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver: "mysql",
			Host:   "localhost",
			Port:   3306,
			User:   "ocsuser",
			Name:   "ocsweb",
		},
		Inventory: InventoryConfig{
			RequireMonitorSerial: true,
			SingleInputDevice:    true,
			InputBrandColumn:     "type",
			KeyboardTypes:        []string{"Keyboard"},
			PointingTypes:        []string{"Pointing", "Mouse"},
		},
		Template: "plantilla_inventario.xlsx",
		Output: OutputConfig{
			Dir:    "inventarios_generados",
			Prefix: "Entrega_",
		},
		Issuer: IssuerConfig{
			Name: "Alexander Coral",
			Area: "SOPORTE TI",
		},
		Receipt: ReceiptConfig{
			Reason:     "Actualizacion de Equipos del Colaborador",
			ReasonMark: "X",
			Status:     "En funcionamiento / Regular",
			StatusOverrides: map[string]string{
				"Mouse": "En funcionamiento",
			},
			Numbering:  NumberingContinuous,
			DateFormat: "02-01-2006",
			TimeFormat: "15:04",
		},
		Layout: DefaultLayout(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultLayout returns the coordinates of the production template.
func DefaultLayout() Layout {
	return Layout{
		RecipientName: "D11",
		IssuerName:    "D9",
		Date:          "R7",
		Time:          "R9",
		ReasonMark:    "H15",
		ReasonLabel:   "L15",
		FirstRow:      21,
		MaxExtraRows:  10,
		Columns: LayoutColumns{
			Index:    "A",
			Category: "B",
			Status:   "H",
			Brand:    "K",
			Model:    "M",
			Serial:   "O",
		},
		DeliveredBy:     "G56",
		DeliveredByArea: "G57",
		ReceivedBy:      "L56",
	}
}

// Load loads configuration from a YAML file, then applies .env and
// environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err == nil {
			// yaml merges mappings into an existing map, so the defaults are
			// restored only when the file leaves status_overrides out.
			overrides := cfg.Receipt.StatusOverrides
			cfg.Receipt.StatusOverrides = nil
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
			if cfg.Receipt.StatusOverrides == nil {
				cfg.Receipt.StatusOverrides = overrides
			}
		}
	}

	_ = godotenv.Load()
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("ACTAS_DB_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("ACTAS_DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("ACTAS_DB_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid ACTAS_DB_PORT %q: %w", v, err)
		}
		c.Database.Port = port
	}
	if v := os.Getenv("ACTAS_DB_USER"); v != "" {
		c.Database.User = v
	}
	if v := os.Getenv("ACTAS_DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("ACTAS_DB_NAME"); v != "" {
		c.Database.Name = v
	}
	if v := os.Getenv("ACTAS_DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("ACTAS_TEMPLATE"); v != "" {
		c.Template = v
	}
	if v := os.Getenv("ACTAS_OUTPUT_DIR"); v != "" {
		c.Output.Dir = v
	}
	if v := os.Getenv("ACTAS_ISSUER"); v != "" {
		c.Issuer.Name = v
	}
	return nil
}

// Validate checks the configuration before a run.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "postgres":
		if c.Database.Host == "" || c.Database.Name == "" {
			return fmt.Errorf("database host and name are required for %s", c.Database.Driver)
		}
	case "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("database path is required for sqlite")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedDriver, c.Database.Driver)
	}

	switch c.Inventory.InputBrandColumn {
	case "name", "type":
	default:
		return fmt.Errorf("invalid input_brand_column: %q (must be name or type)", c.Inventory.InputBrandColumn)
	}

	if c.Template == "" {
		return fmt.Errorf("template path is required")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output dir is required")
	}

	switch c.Receipt.Numbering {
	case NumberingContinuous, NumberingPerCategory:
	default:
		return fmt.Errorf("invalid numbering: %q (must be %s or %s)", c.Receipt.Numbering, NumberingContinuous, NumberingPerCategory)
	}

	if c.Layout.FirstRow < 1 {
		return fmt.Errorf("layout first_row must be positive, got %d", c.Layout.FirstRow)
	}
	if c.Layout.MaxExtraRows < 0 {
		return fmt.Errorf("layout max_extra_rows must not be negative, got %d", c.Layout.MaxExtraRows)
	}

	return nil
}
