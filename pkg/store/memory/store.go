package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"os"

	"github.com/de-tools/sales-stats/pkg/models/store"
	"github.com/de-tools/sales-stats/pkg/store/dataset"
	"github.com/de-tools/sales-stats/pkg/store/filter"
	"github.com/rs/zerolog"
)

// Store serves datasets from rows held in memory, evaluating filters locally.
// Rows are copied on every fetch so callers can never mutate the snapshot.
type Store struct {
	entities map[string][]store.Record
}

func NewStore(entities map[string][]store.Record) *Store {
	s := &Store{entities: make(map[string][]store.Record, len(entities))}
	for entity, rows := range entities {
		normalized := make([]store.Record, 0, len(rows))
		for _, row := range rows {
			normalized = append(normalized, dataset.NormalizeRelations(maps.Clone(row)))
		}
		s.entities[entity] = normalized
	}
	return s
}

// LoadFixtures reads a JSON object of entity name -> list of rows,
// in the same shape Odoo's search_read returns them.
func LoadFixtures(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures file: %w", err)
	}

	var entities map[string][]store.Record
	if err := json.Unmarshal(data, &entities); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures file: %w", err)
	}
	return NewStore(entities), nil
}

func (s *Store) GetDataset(
	ctx context.Context,
	entity string,
	expr filter.Expr,
	fields []string,
) (*store.RecordSet, error) {
	logger := zerolog.Ctx(ctx)

	if err := ctx.Err(); err != nil {
		return nil, dataset.NewError(entity, err)
	}
	if err := expr.Validate(); err != nil {
		return nil, dataset.NewError(entity, err)
	}

	rows, ok := s.entities[entity]
	if !ok {
		return nil, dataset.NewError(entity, fmt.Errorf("unknown entity"))
	}

	result := &store.RecordSet{Entity: entity, Fields: fields, Rows: []store.Record{}}
	for _, row := range rows {
		if expr.Match(row) {
			result.Rows = append(result.Rows, dataset.Project(row, fields))
		}
	}

	logger.Debug().
		Str("entity", entity).
		Str("filter", expr.String()).
		Int("rows", len(result.Rows)).
		Msg("served dataset from memory")

	return result, nil
}
