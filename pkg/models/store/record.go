package store

import (
	"encoding/json"
	"strings"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// Record is a single row returned by the ERP, keyed by field name.
// Empty ERP values (Odoo sends `false`) are treated as missing by the typed accessors.
type Record map[string]any

// RecordSet is the table produced by one dataset fetch.
type RecordSet struct {
	Entity string
	Fields []string
	Rows   []Record
}

func (rs *RecordSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Rows)
}

func (r Record) Float(field string) (float64, bool) {
	switch v := r[field].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func (r Record) Int(field string) (int64, bool) {
	switch v := r[field].(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		if v != float64(int64(v)) {
			return 0, false
		}
		return int64(v), true
	case json.Number:
		i, err := v.Int64()
		return i, err == nil
	default:
		return 0, false
	}
}

func (r Record) String(field string) (string, bool) {
	v, ok := r[field].(string)
	return v, ok
}

// Date accepts both Odoo date ("2006-01-02") and datetime ("2006-01-02 15:04:05") strings.
func (r Record) Date(field string) (time.Time, bool) {
	switch v := r[field].(type) {
	case time.Time:
		return v, !v.IsZero()
	case string:
		layout := dateLayout
		if strings.Contains(v, " ") {
			layout = dateTimeLayout
		}
		t, err := time.Parse(layout, v)
		return t, err == nil
	default:
		return time.Time{}, false
	}
}
