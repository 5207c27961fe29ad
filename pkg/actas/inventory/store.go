package inventory

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/siati/actas-go/pkg/actas/config"
	"github.com/siati/actas-go/pkg/actas/models"
)

const primaryDevicesQuery = `
SELECT DISTINCT
	h.NAME AS username,
	COALESCE(h.OSNAME, '') AS os_label,
	COALESCE(b.TYPE, '') AS chassis_type,
	COALESCE(b.SMANUFACTURER, '') AS manufacturer,
	COALESCE(b.SMODEL, '') AS model,
	COALESCE(b.SSN, '') AS serial_number,
	h.ID AS hardware_id
FROM hardware h
LEFT JOIN bios b ON h.ID = b.HARDWARE_ID
WHERE h.NAME IS NOT NULL AND h.NAME <> ''
ORDER BY username, hardware_id`

// hardwareRow is one row of the primary devices query.
type hardwareRow struct {
	Username     string `gorm:"column:username"`
	OSLabel      string `gorm:"column:os_label"`
	ChassisType  string `gorm:"column:chassis_type"`
	Manufacturer string `gorm:"column:manufacturer"`
	Model        string `gorm:"column:model"`
	SerialNumber string `gorm:"column:serial_number"`
	HardwareID   int64  `gorm:"column:hardware_id"`
}

// peripheralRow is one row of a peripheral query.
type peripheralRow struct {
	Brand        string `gorm:"column:brand"`
	Identifier   string `gorm:"column:identifier"`
	SerialNumber string `gorm:"column:serial_number"`
}

// Store runs the inventory queries over a single database handle.
type Store struct {
	db     *gorm.DB
	policy config.InventoryConfig
	log    *zap.Logger
}

// NewStore wraps an open connection.
func NewStore(db *gorm.DB, policy config.InventoryConfig, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{db: db, policy: policy, log: log}
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// FetchPrimaryDevices returns every named hardware asset ordered by name.
// Assets without a bios row keep empty manufacturer, model and serial.
func (s *Store) FetchPrimaryDevices(ctx context.Context) ([]models.DeviceRecord, error) {
	var rows []hardwareRow
	if err := s.db.WithContext(ctx).Raw(primaryDevicesQuery).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query hardware: %w", err)
	}

	devices := make([]models.DeviceRecord, 0, len(rows))
	for _, r := range rows {
		devices = append(devices, models.DeviceRecord{
			Username:     r.Username,
			OSLabel:      r.OSLabel,
			ChassisType:  r.ChassisType,
			Manufacturer: r.Manufacturer,
			Model:        r.Model,
			SerialNumber: r.SerialNumber,
			HardwareID:   r.HardwareID,
		})
	}
	return devices, nil
}

// FetchPeripherals returns the peripherals of one class attached to a
// device. Query errors are reported in the lookup instead of being returned.
func (s *Store) FetchPeripherals(ctx context.Context, hardwareID int64, class models.PeripheralClass) models.PeripheralLookup {
	lookup := models.PeripheralLookup{Class: class}

	query, args, err := s.peripheralQuery(hardwareID, class)
	if err != nil {
		lookup.Err = &LookupError{HardwareID: hardwareID, Class: class, Err: err}
		return lookup
	}

	var rows []peripheralRow
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		lookup.Err = &LookupError{HardwareID: hardwareID, Class: class, Err: err}
		return lookup
	}

	for _, r := range rows {
		lookup.Records = append(lookup.Records, models.PeripheralRecord{
			Brand:        r.Brand,
			Identifier:   r.Identifier,
			SerialNumber: r.SerialNumber,
		})
	}
	return lookup
}

// peripheralQuery builds the SQL for class under the configured policy.
func (s *Store) peripheralQuery(hardwareID int64, class models.PeripheralClass) (string, []interface{}, error) {
	var b strings.Builder

	switch class {
	case models.ClassMonitor:
		b.WriteString(`SELECT COALESCE(MANUFACTURER, '') AS brand, COALESCE(CAPTION, '') AS identifier, COALESCE(SERIAL, '') AS serial_number FROM monitors WHERE HARDWARE_ID = ?`)
		if s.policy.RequireMonitorSerial {
			b.WriteString(` AND SERIAL IS NOT NULL AND SERIAL <> ''`)
		}
		b.WriteString(` ORDER BY ID`)
		return b.String(), []interface{}{hardwareID}, nil

	case models.ClassKeyboard, models.ClassPointing:
		brandColumn, err := s.inputBrandColumn()
		if err != nil {
			return "", nil, err
		}
		types := s.policy.KeyboardTypes
		if class == models.ClassPointing {
			types = s.policy.PointingTypes
		}
		if len(types) == 0 {
			return "", nil, fmt.Errorf("no input types configured for %s", class)
		}

		fmt.Fprintf(&b, `SELECT COALESCE(%s, '') AS brand, COALESCE(DESCRIPTION, '') AS identifier, '' AS serial_number FROM inputs WHERE HARDWARE_ID = ? AND TYPE IN ? ORDER BY ID`, brandColumn)
		if s.policy.SingleInputDevice {
			b.WriteString(` LIMIT 1`)
		}
		return b.String(), []interface{}{hardwareID, types}, nil
	}

	return "", nil, fmt.Errorf("unknown peripheral class %q", class)
}

func (s *Store) inputBrandColumn() (string, error) {
	switch s.policy.InputBrandColumn {
	case "name":
		return "NAME", nil
	case "type", "":
		return "TYPE", nil
	}
	return "", fmt.Errorf("invalid input brand column %q", s.policy.InputBrandColumn)
}

// Aggregate fetches every primary device and fills in its monitors,
// keyboards and pointing devices. Only the primary query can fail the call;
// a failed peripheral lookup leaves that class empty and is logged.
func (s *Store) Aggregate(ctx context.Context) ([]models.DeviceRecord, error) {
	devices, err := s.FetchPrimaryDevices(ctx)
	if err != nil {
		return nil, err
	}

	for i := range devices {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, class := range models.PeripheralClasses {
			lookup := s.FetchPeripherals(ctx, devices[i].HardwareID, class)
			if lookup.Failed() {
				s.log.Warn("peripheral lookup failed, continuing without it",
					zap.String("username", devices[i].Username),
					zap.Int64("hardware_id", devices[i].HardwareID),
					zap.String("class", string(class)),
					zap.Error(lookup.Err),
				)
			}
			devices[i].SetPeripherals(lookup)
		}
	}

	s.log.Info("devices aggregated", zap.Int("count", len(devices)))
	return devices, nil
}
