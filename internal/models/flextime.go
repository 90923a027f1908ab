package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// FlexTime farklı tarih formatlarını kabul eden zaman tipi.
// Frontend ve CSV dosyaları hem ISO hem MM/DD/YYYY gönderebiliyor.
type FlexTime struct {
	time.Time
}

var flexTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// NewFlexTime time.Time'dan FlexTime oluşturur
func NewFlexTime(t time.Time) FlexTime {
	return FlexTime{Time: t}
}

// ParseFlexTime desteklenen formatlardan birini parse eder. Boş string sıfır değer döner.
func ParseFlexTime(s string) (FlexTime, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return FlexTime{}, nil
	}

	for _, layout := range flexTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return FlexTime{Time: t}, nil
		}
	}

	return FlexTime{}, fmt.Errorf("%w: tanınmayan tarih formatı %q", ErrInvalidInput, s)
}

// UnmarshalJSON string tarih değerini parse eder
func (f *FlexTime) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = FlexTime{}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: tarih string olmalı", ErrInvalidInput)
	}

	parsed, err := ParseFlexTime(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// MarshalJSON RFC3339 formatında yazar, sıfır değer null olur
func (f FlexTime) MarshalJSON() ([]byte, error) {
	if f.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(f.Time.Format(time.RFC3339))
}

// Scan sql.Scanner implementation'ı
func (f *FlexTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*f = FlexTime{}
		return nil
	case time.Time:
		*f = FlexTime{Time: v}
		return nil
	case string:
		parsed, err := ParseFlexTime(v)
		if err != nil {
			return err
		}
		*f = parsed
		return nil
	case []byte:
		parsed, err := ParseFlexTime(string(v))
		if err != nil {
			return err
		}
		*f = parsed
		return nil
	default:
		return fmt.Errorf("FlexTime scan edilemedi: desteklenmeyen tip %T", src)
	}
}

// Value driver.Valuer implementation'ı, sıfır değer NULL yazılır
func (f FlexTime) Value() (driver.Value, error) {
	if f.IsZero() {
		return nil, nil
	}
	return f.Time, nil
}
