package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// MaintenanceType categorises maintenance events and reminders
type MaintenanceType string

const (
	MaintenanceTypeOilChange  MaintenanceType = "OIL_CHANGE"
	MaintenanceTypeTires      MaintenanceType = "TIRES"
	MaintenanceTypeBrakes     MaintenanceType = "BRAKES"
	MaintenanceTypeInspection MaintenanceType = "INSPECTION"
	MaintenanceTypeService    MaintenanceType = "SERVICE"
	MaintenanceTypeOther      MaintenanceType = "OTHER"
)

func ParseMaintenanceType(s string) (MaintenanceType, error) {
	t := MaintenanceType(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case MaintenanceTypeOilChange, MaintenanceTypeTires, MaintenanceTypeBrakes,
		MaintenanceTypeInspection, MaintenanceTypeService, MaintenanceTypeOther:
		return t, nil
	}
	return "", fmt.Errorf("maintenance type %q: %w", s, ErrUnknownCode)
}

func (t MaintenanceType) String() string {
	return string(t)
}

func (t *MaintenanceType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseMaintenanceType(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t MaintenanceType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *MaintenanceType) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*t = MaintenanceType(v)
	case []byte:
		*t = MaintenanceType(v)
	default:
		return fmt.Errorf("maintenance type: unsupported scan type %T", value)
	}
	return nil
}
