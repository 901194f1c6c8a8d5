package stats

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/de-tools/sales-stats/pkg/adapters"
	"github.com/de-tools/sales-stats/pkg/models/domain"
	"github.com/de-tools/sales-stats/pkg/store/dataset"
	"github.com/de-tools/sales-stats/pkg/store/filter"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var saleOrderFields = []string{"name", "user_id", "amount_untaxed"}

func quotationsFilter(w QuotationsWindow) filter.Expr {
	return filter.And(
		filter.Eq("state", w.State),
		filter.And(
			filter.Gte("create_date", w.From),
			filter.Lte("create_date", w.To),
		),
	)
}

type salespersonAccumulator struct {
	id     int64
	name   string
	amount decimal.Decimal
}

// QuotationRanking returns the salespeople with the highest summed untaxed amount
// of confirmed orders, highest first, at most w.Limit of them (all when Limit is zero).
// Equal sums keep ascending salesperson id order. Orders without a salesperson are ignored.
func QuotationRanking(ctx context.Context, source dataset.Source, w QuotationsWindow) ([]domain.SalespersonTotal, error) {
	logger := zerolog.Ctx(ctx)

	orderSet, err := source.GetDataset(ctx, entitySaleOrder, quotationsFilter(w), saleOrderFields)
	if err != nil {
		return nil, fmt.Errorf("quotation ranking: %w", err)
	}

	groups := make(map[int64]*salespersonAccumulator)
	for _, row := range orderSet.Rows {
		order := adapters.MapRecordToSaleOrder(row)
		if order.UserID == nil {
			continue
		}
		acc, ok := groups[*order.UserID]
		if !ok {
			acc = &salespersonAccumulator{id: *order.UserID}
			groups[*order.UserID] = acc
		}
		if acc.name == "" {
			acc.name = order.UserName
		}
		if order.AmountUntaxed != nil {
			acc.amount = acc.amount.Add(decimal.NewFromFloat(*order.AmountUntaxed))
		}
	}

	ranked := make([]*salespersonAccumulator, 0, len(groups))
	for _, acc := range groups {
		ranked = append(ranked, acc)
	}
	slices.SortFunc(ranked, func(a, b *salespersonAccumulator) int {
		return cmp.Compare(a.id, b.id)
	})
	slices.SortStableFunc(ranked, func(a, b *salespersonAccumulator) int {
		return b.amount.Cmp(a.amount)
	})
	if w.Limit > 0 && len(ranked) > w.Limit {
		ranked = ranked[:w.Limit]
	}

	result := make([]domain.SalespersonTotal, 0, len(ranked))
	for _, acc := range ranked {
		result = append(result, domain.SalespersonTotal{
			UserID:        acc.id,
			UserName:      acc.name,
			AmountUntaxed: acc.amount.InexactFloat64(),
		})
	}

	logger.Debug().
		Int("orders", orderSet.Len()).
		Int("salespeople", len(groups)).
		Int("ranked", len(result)).
		Msg("built quotation ranking")

	return result, nil
}
