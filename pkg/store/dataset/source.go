package dataset

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/de-tools/sales-stats/pkg/models/store"
	"github.com/de-tools/sales-stats/pkg/store/filter"
)

// ErrDataSource marks every failure raised while fetching a dataset.
var ErrDataSource = errors.New("data source error")

// Source fetches raw ERP rows of an entity (e.g. "account.move.line") matching a filter.
// Implementations always return the record `id`, and split many2one fields into
// `<field>` (the related id) and `<field without _id>_name` (its display name).
type Source interface {
	GetDataset(ctx context.Context, entity string, expr filter.Expr, fields []string) (*store.RecordSet, error)
}

type DataSourceError struct {
	Entity string
	Err    error
}

func NewError(entity string, err error) *DataSourceError {
	return &DataSourceError{Entity: entity, Err: err}
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Entity, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

func (e *DataSourceError) Is(target error) bool {
	return target == ErrDataSource
}

// NormalizeRelations rewrites many2one values ([id, "display name"]) in place.
func NormalizeRelations(rec store.Record) store.Record {
	for field, value := range rec {
		pair, ok := value.([]any)
		if !ok || len(pair) != 2 {
			continue
		}
		name, ok := pair[1].(string)
		if !ok {
			continue
		}
		rec[field] = pair[0]
		rec[DisplayField(field)] = name
	}
	return rec
}

// DisplayField returns the column holding the display name of a relation,
// e.g. product_id -> product_name.
func DisplayField(field string) string {
	return strings.TrimSuffix(field, "_id") + "_name"
}

// Project keeps only id and the requested fields (plus their display columns).
func Project(rec store.Record, fields []string) store.Record {
	out := store.Record{}
	if id, ok := rec["id"]; ok {
		out["id"] = id
	}
	for _, f := range fields {
		if v, ok := rec[f]; ok {
			out[f] = v
		}
		if name, ok := rec[DisplayField(f)]; ok && strings.HasSuffix(f, "_id") {
			out[DisplayField(f)] = name
		}
	}
	return out
}
