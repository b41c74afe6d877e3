package repository

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-process RecordStore used for tests and local
// development. Column defaults from the schema are applied on insert.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string][]Row
	now    func() time.Time
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tables: make(map[string][]Row),
		now:    time.Now,
	}
}

// SetClock overrides the clock used for created_at/updated_at.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Ensure MemoryStore implements RecordStore
var _ RecordStore = (*MemoryStore)(nil)

// Query returns copies of the rows of table matching all filters, ordered by
// sorts and then by insertion order.
func (s *MemoryStore) Query(ctx context.Context, table string, filters []Filter, sorts []Sort) ([]Row, error) {
	schema, err := SchemaFor(table)
	if err != nil {
		return nil, err
	}
	filters, err = normalizeFilters(schema, filters)
	if err != nil {
		return nil, err
	}
	for _, srt := range sorts {
		if _, err := schema.Column(srt.Column); err != nil {
			return nil, err
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Row
	for _, row := range s.tables[table] {
		if matchesAll(row, filters) {
			out = append(out, row.Clone())
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		for _, srt := range sorts {
			c := compareValues(out[i][srt.Column], out[j][srt.Column])
			if c == 0 {
				continue
			}
			if srt.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
	return out, nil
}

// Insert stores row, filling id, created_at and schema defaults.
func (s *MemoryStore) Insert(ctx context.Context, table string, row Row) (Row, error) {
	schema, err := SchemaFor(table)
	if err != nil {
		return nil, err
	}
	normalized, err := schema.Normalize(row)
	if err != nil {
		return nil, err
	}

	stored := make(Row, len(schema.Columns))
	for _, col := range schema.Columns {
		if v, ok := normalized[col.Name]; ok {
			stored[col.Name] = v
			continue
		}
		switch {
		case col.Name == "id":
			stored[col.Name] = uuid.NewString()
		case col.Type == ColTime && (col.Name == "created_at" || col.Name == "updated_at"):
			stored[col.Name] = s.now()
		default:
			stored[col.Name] = col.Default
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.tables[table] {
		if existing.ID() == stored.ID() {
			return nil, fmt.Errorf("insert into %s: duplicate id %s", table, stored.ID())
		}
	}
	s.tables[table] = append(s.tables[table], stored)
	return stored.Clone(), nil
}

// Update applies patch to the row with the given id.
func (s *MemoryStore) Update(ctx context.Context, table string, id string, patch Row) error {
	schema, err := SchemaFor(table)
	if err != nil {
		return err
	}
	normalized, err := schema.Normalize(patch)
	if err != nil {
		return err
	}
	delete(normalized, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.tables[table] {
		if row.ID() != id {
			continue
		}
		for k, v := range normalized {
			row[k] = v
		}
		if _, err := schema.Column("updated_at"); err == nil {
			if _, set := normalized["updated_at"]; !set {
				row["updated_at"] = s.now()
			}
		}
		return nil
	}
	return fmt.Errorf("update %s/%s: %w", table, id, ErrNotFound)
}

// Delete removes the row with the given id.
func (s *MemoryStore) Delete(ctx context.Context, table string, id string) error {
	if _, err := SchemaFor(table); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.tables[table]
	for i, row := range rows {
		if row.ID() == id {
			s.tables[table] = append(rows[:i:i], rows[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete %s/%s: %w", table, id, ErrNotFound)
}

func normalizeFilters(schema TableSchema, filters []Filter) ([]Filter, error) {
	out := make([]Filter, 0, len(filters))
	for _, f := range filters {
		col, err := schema.Column(f.Column)
		if err != nil {
			return nil, err
		}
		switch f.Op {
		case OpIn:
			rv := reflect.ValueOf(f.Value)
			if rv.Kind() != reflect.Slice {
				return nil, fmt.Errorf("%w: %s in filter needs a slice", ErrInvalidValue, f.Column)
			}
			values := make([]any, rv.Len())
			for i := range values {
				v, err := coerce(col, rv.Index(i).Interface())
				if err != nil {
					return nil, err
				}
				values[i] = v
			}
			out = append(out, Filter{Column: f.Column, Op: OpIn, Value: values})
		case OpEq, OpNeq, OpGte, OpLte:
			v, err := coerce(col, f.Value)
			if err != nil {
				return nil, err
			}
			out = append(out, Filter{Column: f.Column, Op: f.Op, Value: v})
		default:
			return nil, fmt.Errorf("%w: unsupported operator %q", ErrInvalidValue, f.Op)
		}
	}
	return out, nil
}

func matchesAll(row Row, filters []Filter) bool {
	for _, f := range filters {
		v := row[f.Column]
		switch f.Op {
		case OpEq:
			if !valuesEqual(v, f.Value) {
				return false
			}
		case OpNeq:
			if valuesEqual(v, f.Value) {
				return false
			}
		case OpGte:
			if v == nil || compareValues(v, f.Value) < 0 {
				return false
			}
		case OpLte:
			if v == nil || compareValues(v, f.Value) > 0 {
				return false
			}
		case OpIn:
			found := false
			for _, candidate := range f.Value.([]any) {
				if valuesEqual(v, candidate) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return compareValues(a, b) == 0 && reflect.TypeOf(a) == reflect.TypeOf(b)
}

// compareValues orders values of the same column type; nil sorts first.
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	switch av := a.(type) {
	case string:
		bv, _ := b.(string)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case int64:
		bv, _ := b.(int64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case float64:
		bv, _ := b.(float64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case bool:
		bv, _ := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		}
		return 1
	case time.Time:
		bv, _ := b.(time.Time)
		return av.Compare(bv)
	}
	return 0
}
