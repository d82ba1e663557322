package dto

import (
	"fmt"
	"strings"
	"time"
)

// Timestamp acepta las fechas que emite el backend: RFC3339, isoformat sin zona
// (se asume UTC), fecha sola o el formato HTTP de jsonify.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123,
	time.RFC1123Z,
}

// UnmarshalJSON implementa json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("dto: fecha con formato desconocido %q", s)
}

// MarshalJSON implementa json.Marshaler (RFC3339 en UTC).
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format(time.RFC3339Nano) + `"`), nil
}

// Ptr devuelve nil para fechas ausentes.
func (t *Timestamp) Ptr() *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}

// NewTimestamp envuelve un *time.Time; nil = nil.
func NewTimestamp(v *time.Time) *Timestamp {
	if v == nil {
		return nil
	}
	return &Timestamp{Time: v.UTC()}
}
