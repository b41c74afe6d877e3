package repository

import "time"

// Row is one table record keyed by column name. Values use the Go types of
// ColumnType; NULL is nil.
type Row map[string]any

// ID returns the row's id column.
func (r Row) ID() string { return r.String("id") }

// String returns the text value of key, or "" when absent or NULL.
func (r Row) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Int64 returns the integer value of key, or 0.
func (r Row) Int64(key string) int64 {
	switch v := r[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

// Int returns the integer value of key as an int.
func (r Row) Int(key string) int { return int(r.Int64(key)) }

// Float64 returns the numeric value of key, or 0.
func (r Row) Float64(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

// Bool returns the boolean value of key, or false.
func (r Row) Bool(key string) bool {
	b, _ := r[key].(bool)
	return b
}

// Strings returns the text array value of key, or nil.
func (r Row) Strings(key string) []string {
	s, _ := r[key].([]string)
	return s
}

// Time returns the timestamp value of key, or the zero time.
func (r Row) Time(key string) time.Time {
	t, _ := r[key].(time.Time)
	return t
}

// TimePtr returns the timestamp value of key, or nil when NULL.
func (r Row) TimePtr(key string) *time.Time {
	t, ok := r[key].(time.Time)
	if !ok {
		return nil
	}
	return &t
}

// Clone returns a copy of the row that shares no slices with r.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		if s, ok := v.([]string); ok {
			v = append([]string{}, s...)
		}
		out[k] = v
	}
	return out
}
