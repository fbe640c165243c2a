package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DefaultLocation is used for backend timestamps that carry no zone offset.
// main sets it from TIMEZONE.
var DefaultLocation = time.Local

var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

var localLayouts = []string{
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp decodes the date formats the clinic backend emits.
type Timestamp struct {
	time.Time
}

func ParseTimestamp(s string) (Timestamp, error) {
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{t}, nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, DefaultLocation); err == nil {
			return Timestamp{t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("unrecognised timestamp %q", s)
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if s == "" {
		*t = Timestamp{}
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// DateLabel formats the date part, or "-" when unset.
func (t Timestamp) DateLabel() string {
	if t.IsZero() {
		return "-"
	}
	return t.In(DefaultLocation).Format("02.01.2006")
}
