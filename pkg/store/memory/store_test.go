package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/de-tools/sales-stats/pkg/models/store"
	"github.com/de-tools/sales-stats/pkg/store/dataset"
	"github.com/de-tools/sales-stats/pkg/store/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetDataset(t *testing.T) {
	s := NewStore(map[string][]store.Record{
		"sale.order": {
			{"id": 1, "name": "S001", "state": "sale", "user_id": []any{2, "Ana"}, "amount_untaxed": 100.0},
			{"id": 2, "name": "S002", "state": "draft", "user_id": []any{2, "Ana"}, "amount_untaxed": 50.0},
			{"id": 3, "name": "S003", "state": "sale", "user_id": []any{4, "Luz"}, "amount_untaxed": 80.0},
		},
	})
	ctx := context.Background()

	t.Run("filters and projects", func(t *testing.T) {
		rs, err := s.GetDataset(ctx, "sale.order", filter.Eq("state", "sale"), []string{"user_id", "amount_untaxed"})
		require.NoError(t, err)
		assert.Equal(t, 2, rs.Len())
		assert.Equal(t, store.Record{"id": 1, "user_id": 2, "user_name": "Ana", "amount_untaxed": 100.0}, rs.Rows[0])
		assert.Equal(t, store.Record{"id": 3, "user_id": 4, "user_name": "Luz", "amount_untaxed": 80.0}, rs.Rows[1])
	})

	t.Run("filters on relation ids", func(t *testing.T) {
		rs, err := s.GetDataset(ctx, "sale.order", filter.In("user_id", []int{4}), []string{"name"})
		require.NoError(t, err)
		require.Equal(t, 1, rs.Len())
		assert.Equal(t, "S003", rs.Rows[0]["name"])
	})

	t.Run("no match yields empty set", func(t *testing.T) {
		rs, err := s.GetDataset(ctx, "sale.order", filter.Eq("state", "cancel"), []string{"name"})
		require.NoError(t, err)
		assert.NotNil(t, rs.Rows)
		assert.Equal(t, 0, rs.Len())
	})

	t.Run("unknown entity", func(t *testing.T) {
		_, err := s.GetDataset(ctx, "res.partner", filter.Expr{}, []string{"name"})
		assert.True(t, errors.Is(err, dataset.ErrDataSource))
	})

	t.Run("invalid filter", func(t *testing.T) {
		_, err := s.GetDataset(ctx, "sale.order", filter.Leaf("state", "ilike", "s"), []string{"name"})
		assert.True(t, errors.Is(err, dataset.ErrDataSource))
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := s.GetDataset(cctx, "sale.order", filter.Expr{}, []string{"name"})
		assert.True(t, errors.Is(err, dataset.ErrDataSource))
		assert.True(t, errors.Is(err, context.Canceled))
	})

	t.Run("results do not alias the snapshot", func(t *testing.T) {
		rs, err := s.GetDataset(ctx, "sale.order", filter.Expr{}, []string{"name"})
		require.NoError(t, err)
		rs.Rows[0]["name"] = "mutated"

		again, err := s.GetDataset(ctx, "sale.order", filter.Expr{}, []string{"name"})
		require.NoError(t, err)
		assert.Equal(t, "S001", again.Rows[0]["name"])
	})
}

func TestLoadFixtures(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fixtures.json")
	content := `{
  "account.move": [
    {"id": 1, "name": "INV/F1-AB/0001", "state": "posted", "amount_untaxed": 10.5, "invoice_date": "2024-03-15"}
  ]
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := LoadFixtures(path)
	require.NoError(t, err)

	rs, err := s.GetDataset(context.Background(), "account.move", filter.Eq("state", "posted"), []string{"name", "amount_untaxed"})
	require.NoError(t, err)
	require.Equal(t, 1, rs.Len())
	amount, ok := rs.Rows[0].Float("amount_untaxed")
	assert.True(t, ok)
	assert.Equal(t, 10.5, amount)

	_, err = LoadFixtures(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
