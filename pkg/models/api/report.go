package api

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Reports are JSON objects whose key order carries meaning (ranking, month order),
// so they are encoded by hand instead of through Go maps.

// ProductSales encodes as [subtotal, utility, list_price].
type ProductSales struct {
	ProductName string
	Subtotal    float64
	Utility     float64
	ListPrice   *float64
}

func (p ProductSales) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.Subtotal, p.Utility, p.ListPrice})
}

// WeeklyProductsReport encodes as {"<product name>": [subtotal, utility, list_price], ...}.
type WeeklyProductsReport []ProductSales

func (r WeeklyProductsReport) MarshalJSON() ([]byte, error) {
	obj := make(OrderedObject, 0, len(r))
	for _, p := range r {
		obj = append(obj, Member{Key: p.ProductName, Value: p})
	}
	return obj.MarshalJSON()
}

type SalespersonTotal struct {
	UserID        int64   `json:"-"`
	UserName      string  `json:"user_name"`
	AmountUntaxed float64 `json:"amount_untaxed"`
}

// QuotationRankingReport encodes as {"<salesperson id>": {"user_name": ..., "amount_untaxed": ...}, ...}.
type QuotationRankingReport []SalespersonTotal

func (r QuotationRankingReport) MarshalJSON() ([]byte, error) {
	obj := make(OrderedObject, 0, len(r))
	for _, s := range r {
		obj = append(obj, Member{Key: strconv.FormatInt(s.UserID, 10), Value: s})
	}
	return obj.MarshalJSON()
}

type WarehouseMonthTotal struct {
	Warehouse   string  `json:"warehouse"`
	Month       string  `json:"month"`
	TotalAmount float64 `json:"total_amount"`
}

// MonthlyTotalsReport encodes as {"0": {"warehouse": ..., "month": ..., "total_amount": ...}, ...}.
type MonthlyTotalsReport []WarehouseMonthTotal

func (r MonthlyTotalsReport) MarshalJSON() ([]byte, error) {
	obj := make(OrderedObject, 0, len(r))
	for i, row := range r {
		obj = append(obj, Member{Key: strconv.Itoa(i), Value: row})
	}
	return obj.MarshalJSON()
}

type Message struct {
	Message string `json:"message"`
}

type Error struct {
	Error string `json:"error"`
}

type Member struct {
	Key   string
	Value any
}

// OrderedObject encodes as a JSON object whose keys keep slice order.
type OrderedObject []Member

func (o OrderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
