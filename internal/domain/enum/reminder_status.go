package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// ReminderStatus represents the lifecycle of a maintenance reminder
type ReminderStatus int

const (
	ReminderStatusPending ReminderStatus = 0
	ReminderStatusDue     ReminderStatus = 1
	ReminderStatusDone    ReminderStatus = 2
)

func (s ReminderStatus) String() string {
	names := [...]string{"PENDING", "DUE", "DONE"}
	if int(s) < 0 || int(s) >= len(names) {
		return "PENDING"
	}
	return names[s]
}

// ParseReminderStatus accepts the upper or lower case name of a status
func ParseReminderStatus(s string) (ReminderStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PENDING":
		return ReminderStatusPending, nil
	case "DUE":
		return ReminderStatusDue, nil
	case "DONE":
		return ReminderStatusDone, nil
	}
	return 0, fmt.Errorf("reminder status %q: %w", s, ErrUnknownCode)
}

func (s ReminderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ReminderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseReminderStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s ReminderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *ReminderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ReminderStatusPending
		return nil
	}
	code, err := scanStatusCode("reminder status", value, int64(ReminderStatusDone))
	if err != nil {
		return err
	}
	*s = ReminderStatus(code)
	return nil
}

// scanStatusCode reads an integer status column and rejects codes outside [0, maxCode]
func scanStatusCode(kind string, value interface{}, maxCode int64) (int64, error) {
	var code int64
	switch v := value.(type) {
	case int64:
		code = v
	case int32:
		code = int64(v)
	case int:
		code = int64(v)
	default:
		return 0, fmt.Errorf("%s: unsupported scan type %T", kind, value)
	}
	if code < 0 || code > maxCode {
		return 0, fmt.Errorf("%s %d: %w", kind, code, ErrUnknownCode)
	}
	return code, nil
}
