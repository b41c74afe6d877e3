package repository

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"
)

// PostgresStore implements RecordStore on a pgx-backed *sql.DB. Table and
// column names are checked against the schema before any SQL is built.
type PostgresStore struct {
	db      *sql.DB
	typeMap *pgtype.Map
	log     *zap.SugaredLogger
}

// NewPostgresStore creates a new PostgresStore
func NewPostgresStore(db *sql.DB, logger *zap.Logger) *PostgresStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresStore{
		db:      db,
		typeMap: pgtype.NewMap(),
		log:     logger.Sugar(),
	}
}

// Ensure PostgresStore implements RecordStore
var _ RecordStore = (*PostgresStore)(nil)

// Query selects every column of table matching filters, ordered by sorts.
func (s *PostgresStore) Query(ctx context.Context, table string, filters []Filter, sorts []Sort) ([]Row, error) {
	schema, err := SchemaFor(table)
	if err != nil {
		return nil, err
	}

	where, args, err := buildWhere(schema, filters, 1)
	if err != nil {
		return nil, err
	}
	orderBy, err := buildOrderBy(schema, sorts)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s%s%s", strings.Join(schema.ColumnNames(), ", "), table, where, orderBy)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.log.Errorf("❌ Error querying %s: %v", table, err)
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	result, err := s.scanRows(schema, rows)
	if err != nil {
		s.log.Errorf("❌ Error scanning %s: %v", table, err)
		return nil, err
	}

	s.log.Debugf("✓ Fetched %d rows from %s", len(result), table)
	return result, nil
}

// Insert writes row and returns the stored record including database defaults.
func (s *PostgresStore) Insert(ctx context.Context, table string, row Row) (Row, error) {
	schema, err := SchemaFor(table)
	if err != nil {
		return nil, err
	}
	normalized, err := schema.Normalize(row)
	if err != nil {
		return nil, err
	}

	returning := strings.Join(schema.ColumnNames(), ", ")
	cols := orderedKeys(schema, normalized)

	var query string
	args := make([]any, 0, len(cols))
	if len(cols) == 0 {
		query = fmt.Sprintf("INSERT INTO %s DEFAULT VALUES RETURNING %s", table, returning)
	} else {
		placeholders := make([]string, len(cols))
		for i, col := range cols {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
			args = append(args, normalized[col])
		}
		query = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
			table, strings.Join(cols, ", "), strings.Join(placeholders, ", "), returning)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.log.Errorf("❌ Error inserting into %s: %v", table, err)
		return nil, fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	defer rows.Close()

	inserted, err := s.scanRows(schema, rows)
	if err != nil {
		return nil, err
	}
	if len(inserted) == 0 {
		return nil, fmt.Errorf("insert into %s returned no row", table)
	}

	s.log.Infof("✓ Inserted %s/%s", table, inserted[0].ID())
	return inserted[0], nil
}

// Update sets the patched columns on the row with the given id.
func (s *PostgresStore) Update(ctx context.Context, table string, id string, patch Row) error {
	schema, err := SchemaFor(table)
	if err != nil {
		return err
	}
	normalized, err := schema.Normalize(patch)
	if err != nil {
		return err
	}
	delete(normalized, "id")
	if len(normalized) == 0 {
		return fmt.Errorf("%w: empty patch for %s/%s", ErrInvalidValue, table, id)
	}

	cols := orderedKeys(schema, normalized)
	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, col := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", col, i+1)
		args = append(args, normalized[col])
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", table, strings.Join(sets, ", "), len(args))
	return s.execAffectingOne(ctx, "update", table, id, query, args...)
}

// Delete removes the row with the given id.
func (s *PostgresStore) Delete(ctx context.Context, table string, id string) error {
	if _, err := SchemaFor(table); err != nil {
		return err
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", table)
	return s.execAffectingOne(ctx, "delete", table, id, query, id)
}

func (s *PostgresStore) execAffectingOne(ctx context.Context, action, table, id, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		s.log.Errorf("❌ Error on %s %s/%s: %v", action, table, id, err)
		return fmt.Errorf("failed to %s %s/%s: %w", action, table, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s/%s: %w", action, table, id, ErrNotFound)
	}
	s.log.Infof("✓ %s %s/%s", action, table, id)
	return nil
}

func (s *PostgresStore) scanRows(schema TableSchema, rows *sql.Rows) ([]Row, error) {
	var result []Row
	for rows.Next() {
		dests := make([]any, len(schema.Columns))
		arrays := make(map[int]*[]string)
		for i, col := range schema.Columns {
			switch col.Type {
			case ColText:
				dests[i] = new(sql.NullString)
			case ColInt:
				dests[i] = new(sql.NullInt64)
			case ColNumeric:
				dests[i] = new(sql.NullFloat64)
			case ColBool:
				dests[i] = new(sql.NullBool)
			case ColTime:
				dests[i] = new(sql.NullTime)
			case ColTextArray:
				arr := new([]string)
				arrays[i] = arr
				dests[i] = s.typeMap.SQLScanner(arr)
			}
		}

		if err := rows.Scan(dests...); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", schema.Name, err)
		}

		row := make(Row, len(schema.Columns))
		for i, col := range schema.Columns {
			switch d := dests[i].(type) {
			case *sql.NullString:
				row[col.Name] = nullable(d.Valid, d.String)
			case *sql.NullInt64:
				row[col.Name] = nullable(d.Valid, d.Int64)
			case *sql.NullFloat64:
				row[col.Name] = nullable(d.Valid, d.Float64)
			case *sql.NullBool:
				row[col.Name] = nullable(d.Valid, d.Bool)
			case *sql.NullTime:
				row[col.Name] = nullable(d.Valid, d.Time)
			default:
				if arr := arrays[i]; arr != nil && *arr != nil {
					row[col.Name] = *arr
				} else {
					row[col.Name] = nil
				}
			}
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s rows: %w", schema.Name, err)
	}
	return result, nil
}

func nullable[T any](valid bool, v T) any {
	if !valid {
		return nil
	}
	return v
}

// buildWhere renders filters as a WHERE clause with placeholders starting at
// $start.
func buildWhere(schema TableSchema, filters []Filter, start int) (string, []any, error) {
	if len(filters) == 0 {
		return "", nil, nil
	}

	var conditions []string
	var args []any
	argIndex := start

	for _, f := range filters {
		col, err := schema.Column(f.Column)
		if err != nil {
			return "", nil, err
		}

		if f.Op == OpIn {
			rv := reflect.ValueOf(f.Value)
			if rv.Kind() != reflect.Slice {
				return "", nil, fmt.Errorf("%w: %s in filter needs a slice", ErrInvalidValue, f.Column)
			}
			conditions = append(conditions, fmt.Sprintf("%s = ANY($%d)", col.Name, argIndex))
			args = append(args, f.Value)
			argIndex++
			continue
		}

		v, err := coerce(col, f.Value)
		if err != nil {
			return "", nil, err
		}
		if v == nil {
			switch f.Op {
			case OpEq:
				conditions = append(conditions, col.Name+" IS NULL")
				continue
			case OpNeq:
				conditions = append(conditions, col.Name+" IS NOT NULL")
				continue
			}
		}

		var op string
		switch f.Op {
		case OpEq:
			op = "="
		case OpNeq:
			op = "<>"
		case OpGte:
			op = ">="
		case OpLte:
			op = "<="
		default:
			return "", nil, fmt.Errorf("%w: unsupported operator %q", ErrInvalidValue, f.Op)
		}
		conditions = append(conditions, fmt.Sprintf("%s %s $%d", col.Name, op, argIndex))
		args = append(args, v)
		argIndex++
	}

	return " WHERE " + strings.Join(conditions, " AND "), args, nil
}

func buildOrderBy(schema TableSchema, sorts []Sort) (string, error) {
	if len(sorts) == 0 {
		return "", nil
	}
	parts := make([]string, len(sorts))
	for i, srt := range sorts {
		if _, err := schema.Column(srt.Column); err != nil {
			return "", err
		}
		dir := "ASC"
		if srt.Desc {
			dir = "DESC"
		}
		parts[i] = srt.Column + " " + dir
	}
	return " ORDER BY " + strings.Join(parts, ", "), nil
}

// orderedKeys returns the keys of row in schema column order.
func orderedKeys(schema TableSchema, row Row) []string {
	position := make(map[string]int, len(schema.Columns))
	for i, c := range schema.Columns {
		position[c.Name] = i
	}
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return position[keys[i]] < position[keys[j]] })
	return keys
}
