package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"commission-catalog/repository"
)

// ErrEmptyPatch is returned when an update carries no columns
var ErrEmptyPatch = errors.New("empty update")

// AdminService exposes row-level CRUD over the catalog and content tables.
// Table and column names are checked against the schema before reaching the
// store.
type AdminService struct {
	store repository.RecordStore
	log   *zap.SugaredLogger
}

// NewAdminService creates a new AdminService
func NewAdminService(store repository.RecordStore, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{store: store, log: logger.Sugar()}
}

// List returns every row of table. Tables with a display order are sorted by
// it; the rest newest first.
func (s *AdminService) List(ctx context.Context, table string, filters []repository.Filter) ([]repository.Row, error) {
	schema, err := repository.SchemaFor(table)
	if err != nil {
		return nil, err
	}

	var sorts []repository.Sort
	switch {
	case hasColumn(schema, "display_order"):
		sorts = []repository.Sort{repository.Asc("display_order")}
	case hasColumn(schema, "emote_number"):
		sorts = []repository.Sort{repository.Asc("service_id"), repository.Asc("emote_number")}
	case hasColumn(schema, "created_at"):
		sorts = []repository.Sort{repository.Desc("created_at")}
	}

	rows, err := s.store.Query(ctx, table, filters, sorts)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}
	if rows == nil {
		rows = []repository.Row{}
	}
	return rows, nil
}

// Create inserts row into table and returns the stored row.
func (s *AdminService) Create(ctx context.Context, table string, row repository.Row) (repository.Row, error) {
	schema, err := repository.SchemaFor(table)
	if err != nil {
		return nil, err
	}
	if _, err := schema.Normalize(row); err != nil {
		return nil, err
	}

	created, err := s.store.Insert(ctx, table, row)
	if err != nil {
		s.log.Errorf("❌ Error creating %s row: %v", table, err)
		return nil, fmt.Errorf("failed to create %s row: %w", table, err)
	}
	s.log.Infof("✓ Created %s/%s", table, created.ID())
	return created, nil
}

// Update applies patch to row id of table. The id column cannot be changed.
func (s *AdminService) Update(ctx context.Context, table, id string, patch repository.Row) error {
	schema, err := repository.SchemaFor(table)
	if err != nil {
		return err
	}
	delete(patch, "id")
	if len(patch) == 0 {
		return ErrEmptyPatch
	}
	if _, err := schema.Normalize(patch); err != nil {
		return err
	}

	if err := s.store.Update(ctx, table, id, patch); err != nil {
		s.log.Errorf("❌ Error updating %s/%s: %v", table, id, err)
		return fmt.Errorf("failed to update %s/%s: %w", table, id, err)
	}
	s.log.Infof("✓ Updated %s/%s", table, id)
	return nil
}

// Delete removes row id of table.
func (s *AdminService) Delete(ctx context.Context, table, id string) error {
	if _, err := repository.SchemaFor(table); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, table, id); err != nil {
		s.log.Errorf("❌ Error deleting %s/%s: %v", table, id, err)
		return fmt.Errorf("failed to delete %s/%s: %w", table, id, err)
	}
	s.log.Infof("🗑️  Deleted %s/%s", table, id)
	return nil
}

func hasColumn(schema repository.TableSchema, name string) bool {
	_, err := schema.Column(name)
	return err == nil
}
