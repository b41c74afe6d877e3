package repository

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Table names
const (
	TableServices               = "services"
	TableDetailLevels           = "service_detail_levels"
	TableVariants               = "service_variants"
	TableExtras                 = "extras"
	TableThemes                 = "commission_themes"
	TableEmoteConfig            = "emote_config"
	TableEmoteExtraAvailability = "emote_extra_availability"
	TableGalleryItems           = "gallery_items"
	TableTestimonials           = "testimonials"
	TableAnnouncements          = "announcements"
)

// ColumnType is the Go-side type a column's values are normalised to
type ColumnType int

const (
	ColText      ColumnType = iota // string
	ColInt                         // int64
	ColNumeric                     // float64
	ColBool                        // bool
	ColTextArray                   // []string
	ColTime                        // time.Time
)

// Column describes one table column. Default is applied by stores that do
// not have database-side defaults.
type Column struct {
	Name    string
	Type    ColumnType
	Default any
}

// TableSchema lists a table's columns in select order.
type TableSchema struct {
	Name    string
	Columns []Column
}

func catalogRowColumns(extra ...Column) []Column {
	cols := []Column{{Name: "id", Type: ColText}}
	cols = append(cols, extra...)
	return append(cols,
		Column{Name: "is_available", Type: ColBool, Default: true},
		Column{Name: "display_order", Type: ColInt, Default: int64(0)},
		Column{Name: "created_at", Type: ColTime},
	)
}

var schemas = map[string]TableSchema{
	TableServices: {Name: TableServices, Columns: []Column{
		{Name: "id", Type: ColText},
		{Name: "name", Type: ColText},
		{Name: "description", Type: ColText},
		{Name: "price_min_clp", Type: ColInt, Default: int64(0)},
		{Name: "price_max_clp", Type: ColInt, Default: int64(0)},
		{Name: "price_min_usd", Type: ColNumeric, Default: float64(0)},
		{Name: "price_max_usd", Type: ColNumeric, Default: float64(0)},
		{Name: "image_url", Type: ColText},
		{Name: "image_key", Type: ColText},
		{Name: "is_available", Type: ColBool, Default: true},
		{Name: "is_multi_unit_pack", Type: ColBool, Default: false},
		{Name: "unit_count", Type: ColInt, Default: int64(0)},
		{Name: "display_order", Type: ColInt, Default: int64(0)},
		{Name: "created_at", Type: ColTime},
	}},
	TableDetailLevels: {Name: TableDetailLevels, Columns: catalogRowColumns(
		Column{Name: "service_id", Type: ColText},
		Column{Name: "name", Type: ColText},
		Column{Name: "description", Type: ColText},
		Column{Name: "price_clp", Type: ColInt, Default: int64(0)},
		Column{Name: "price_usd", Type: ColNumeric, Default: float64(0)},
	)},
	TableVariants: {Name: TableVariants, Columns: catalogRowColumns(
		Column{Name: "service_id", Type: ColText},
		Column{Name: "name", Type: ColText},
		Column{Name: "description", Type: ColText},
		Column{Name: "price_clp", Type: ColInt, Default: int64(0)},
		Column{Name: "price_usd", Type: ColNumeric, Default: float64(0)},
	)},
	TableExtras: {Name: TableExtras, Columns: catalogRowColumns(
		Column{Name: "name", Type: ColText},
		Column{Name: "description", Type: ColText},
		Column{Name: "price_clp", Type: ColInt, Default: int64(0)},
		Column{Name: "price_usd", Type: ColNumeric, Default: float64(0)},
		Column{Name: "only_for", Type: ColTextArray, Default: []string{}},
	)},
	TableThemes: {Name: TableThemes, Columns: catalogRowColumns(
		Column{Name: "name", Type: ColText},
	)},
	TableEmoteConfig: {Name: TableEmoteConfig, Columns: []Column{
		{Name: "id", Type: ColText},
		{Name: "service_id", Type: ColText},
		{Name: "emote_number", Type: ColInt},
		{Name: "label", Type: ColText},
		{Name: "description", Type: ColText},
		{Name: "created_at", Type: ColTime},
	}},
	TableEmoteExtraAvailability: {Name: TableEmoteExtraAvailability, Columns: []Column{
		{Name: "id", Type: ColText},
		{Name: "service_id", Type: ColText},
		{Name: "extra_id", Type: ColText},
		{Name: "emote_number", Type: ColInt},
		{Name: "is_available", Type: ColBool},
		{Name: "updated_at", Type: ColTime},
	}},
	TableGalleryItems: {Name: TableGalleryItems, Columns: []Column{
		{Name: "id", Type: ColText},
		{Name: "title", Type: ColText},
		{Name: "description", Type: ColText},
		{Name: "image_url", Type: ColText},
		{Name: "image_key", Type: ColText},
		{Name: "is_visible", Type: ColBool, Default: true},
		{Name: "display_order", Type: ColInt, Default: int64(0)},
		{Name: "created_at", Type: ColTime},
	}},
	TableTestimonials: {Name: TableTestimonials, Columns: []Column{
		{Name: "id", Type: ColText},
		{Name: "author", Type: ColText},
		{Name: "content", Type: ColText},
		{Name: "rating", Type: ColInt},
		{Name: "approved", Type: ColBool, Default: false},
		{Name: "created_at", Type: ColTime},
	}},
	TableAnnouncements: {Name: TableAnnouncements, Columns: []Column{
		{Name: "id", Type: ColText},
		{Name: "message", Type: ColText},
		{Name: "link_url", Type: ColText},
		{Name: "is_active", Type: ColBool, Default: true},
		{Name: "starts_at", Type: ColTime},
		{Name: "ends_at", Type: ColTime},
		{Name: "created_at", Type: ColTime},
	}},
}

// SchemaFor returns the schema of table.
func SchemaFor(table string) (TableSchema, error) {
	s, ok := schemas[table]
	if !ok {
		return TableSchema{}, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	return s, nil
}

// Tables returns every known table name.
func Tables() []string {
	return []string{
		TableServices, TableDetailLevels, TableVariants, TableExtras, TableThemes,
		TableEmoteConfig, TableEmoteExtraAvailability,
		TableGalleryItems, TableTestimonials, TableAnnouncements,
	}
}

// Column looks up a column by name.
func (s TableSchema) Column(name string) (Column, error) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, nil
		}
	}
	return Column{}, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, s.Name, name)
}

// ColumnNames returns the column names in select order.
func (s TableSchema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// Normalize validates row against the schema and coerces every value to its
// column's Go type. JSON-decoded input (float64 numbers, []any arrays, RFC3339
// strings) is accepted.
func (s TableSchema) Normalize(row Row) (Row, error) {
	out := make(Row, len(row))
	for name, value := range row {
		col, err := s.Column(name)
		if err != nil {
			return nil, err
		}
		v, err := coerce(col, value)
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	return out, nil
}

func coerce(col Column, value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	invalid := func() error {
		return fmt.Errorf("%w: column %s cannot hold %T", ErrInvalidValue, col.Name, value)
	}

	switch col.Type {
	case ColText:
		switch v := value.(type) {
		case string:
			return v, nil
		case fmt.Stringer:
			return v.String(), nil
		}
		return nil, invalid()

	case ColInt:
		switch v := value.(type) {
		case int:
			return int64(v), nil
		case int32:
			return int64(v), nil
		case int64:
			return v, nil
		case float64:
			if v != math.Trunc(v) {
				return nil, invalid()
			}
			return int64(v), nil
		case json.Number:
			n, err := v.Int64()
			if err != nil {
				return nil, invalid()
			}
			return n, nil
		case string:
			n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				return nil, invalid()
			}
			return n, nil
		}
		return nil, invalid()

	case ColNumeric:
		switch v := value.(type) {
		case float64:
			return v, nil
		case float32:
			return float64(v), nil
		case int:
			return float64(v), nil
		case int64:
			return float64(v), nil
		case json.Number:
			f, err := v.Float64()
			if err != nil {
				return nil, invalid()
			}
			return f, nil
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, invalid()
			}
			return f, nil
		}
		return nil, invalid()

	case ColBool:
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			b, err := strconv.ParseBool(v)
			if err != nil {
				return nil, invalid()
			}
			return b, nil
		}
		return nil, invalid()

	case ColTextArray:
		switch v := value.(type) {
		case []string:
			return append([]string{}, v...), nil
		case []any:
			out := make([]string, 0, len(v))
			for _, item := range v {
				str, ok := item.(string)
				if !ok {
					return nil, invalid()
				}
				out = append(out, str)
			}
			return out, nil
		}
		return nil, invalid()

	case ColTime:
		switch v := value.(type) {
		case time.Time:
			return v, nil
		case string:
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				return nil, invalid()
			}
			return t, nil
		}
		return nil, invalid()
	}
	return nil, invalid()
}
