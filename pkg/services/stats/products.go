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

var (
	invoiceLineFields = []string{"quantity", "price_subtotal", "product_id"}
	productFields     = []string{"standard_price", "lst_price"}
)

func weeklyProductsFilter(w WeeklyProductsWindow) filter.Expr {
	return filter.And(
		filter.And(
			filter.Eq("move_type", w.MoveType),
			filter.In("account_id", w.AccountIDs),
		),
		filter.And(
			filter.Gte("date", w.From),
			filter.Lte("date", w.To),
		),
	)
}

type productAccumulator struct {
	subtotal  decimal.Decimal
	utility   decimal.Decimal
	listPrice *float64
}

// WeeklyProducts reports, per product name, the summed net subtotal, the summed
// utility (subtotal - standard_price * quantity) and the first known list price.
//
// Lines are left-joined to their product. A line whose product (or cost) cannot be
// resolved still adds its subtotal, but has no utility and is skipped in that sum.
// Lines without a product are dropped. Results are ordered by product name.
func WeeklyProducts(ctx context.Context, source dataset.Source, w WeeklyProductsWindow) ([]domain.ProductSales, error) {
	logger := zerolog.Ctx(ctx)

	lineSet, err := source.GetDataset(ctx, entityInvoiceLine, weeklyProductsFilter(w), invoiceLineFields)
	if err != nil {
		return nil, fmt.Errorf("weekly products: %w", err)
	}

	lines := make([]domain.InvoiceLine, 0, lineSet.Len())
	var productIDs []int64
	seen := make(map[int64]struct{})
	for _, row := range lineSet.Rows {
		line := adapters.MapRecordToInvoiceLine(row)
		lines = append(lines, line)
		if line.ProductID == nil {
			continue
		}
		if _, ok := seen[*line.ProductID]; !ok {
			seen[*line.ProductID] = struct{}{}
			productIDs = append(productIDs, *line.ProductID)
		}
	}

	products := make(map[int64]domain.Product, len(productIDs))
	if len(productIDs) > 0 {
		productSet, err := source.GetDataset(ctx, entityProduct, filter.In("id", productIDs), productFields)
		if err != nil {
			return nil, fmt.Errorf("weekly products: %w", err)
		}
		for _, row := range productSet.Rows {
			if p, ok := adapters.MapRecordToProduct(row); ok {
				products[p.ID] = p
			}
		}
	}

	groups := make(map[string]*productAccumulator)
	for _, line := range lines {
		if line.ProductName == "" {
			continue
		}
		acc, ok := groups[line.ProductName]
		if !ok {
			acc = &productAccumulator{}
			groups[line.ProductName] = acc
		}

		var product domain.Product
		if line.ProductID != nil {
			product = products[*line.ProductID]
		}

		if line.PriceSubtotal != nil {
			acc.subtotal = acc.subtotal.Add(decimal.NewFromFloat(*line.PriceSubtotal))
		}
		if utility, ok := lineUtility(line, product); ok {
			acc.utility = acc.utility.Add(utility)
		}
		if acc.listPrice == nil && product.ListPrice != nil {
			lp := *product.ListPrice
			acc.listPrice = &lp
		}
	}

	result := make([]domain.ProductSales, 0, len(groups))
	for name, acc := range groups {
		result = append(result, domain.ProductSales{
			ProductName: name,
			Subtotal:    acc.subtotal.InexactFloat64(),
			Utility:     acc.utility.InexactFloat64(),
			ListPrice:   acc.listPrice,
		})
	}
	slices.SortFunc(result, func(a, b domain.ProductSales) int {
		return cmp.Compare(a.ProductName, b.ProductName)
	})

	logger.Debug().
		Int("lines", len(lines)).
		Int("products", len(products)).
		Int("groups", len(result)).
		Msg("built weekly products report")

	return result, nil
}

func lineUtility(line domain.InvoiceLine, product domain.Product) (decimal.Decimal, bool) {
	if line.PriceSubtotal == nil || line.Quantity == nil || product.StandardPrice == nil {
		return decimal.Decimal{}, false
	}
	cost := decimal.NewFromFloat(*product.StandardPrice).Mul(decimal.NewFromFloat(*line.Quantity))
	return decimal.NewFromFloat(*line.PriceSubtotal).Sub(cost), true
}
