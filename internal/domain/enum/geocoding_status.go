package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// GeocodingStatus tracks address resolution for a fuel station
type GeocodingStatus int

const (
	GeocodingStatusPending   GeocodingStatus = 0
	GeocodingStatusSucceeded GeocodingStatus = 1
	GeocodingStatusFailed    GeocodingStatus = 2
)

func (s GeocodingStatus) String() string {
	names := [...]string{"PENDING", "SUCCEEDED", "FAILED"}
	if int(s) < 0 || int(s) >= len(names) {
		return "PENDING"
	}
	return names[s]
}

func (s GeocodingStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *GeocodingStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "PENDING":
		*s = GeocodingStatusPending
	case "SUCCEEDED":
		*s = GeocodingStatusSucceeded
	case "FAILED":
		*s = GeocodingStatusFailed
	default:
		return fmt.Errorf("geocoding status %q: %w", str, ErrUnknownCode)
	}
	return nil
}

func (s GeocodingStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *GeocodingStatus) Scan(value interface{}) error {
	if value == nil {
		*s = GeocodingStatusPending
		return nil
	}
	code, err := scanStatusCode("geocoding status", value, int64(GeocodingStatusFailed))
	if err != nil {
		return err
	}
	*s = GeocodingStatus(code)
	return nil
}
