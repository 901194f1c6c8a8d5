package filter

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/de-tools/sales-stats/pkg/models/store"
)

type Operator string

const (
	OpEq  Operator = "="
	OpNe  Operator = "!="
	OpGt  Operator = ">"
	OpGte Operator = ">="
	OpLt  Operator = "<"
	OpLte Operator = "<="
	OpIn  Operator = "in"
)

type nodeKind int

const (
	kindLeaf nodeKind = iota
	kindAnd
	kindOr
)

// Expr is a boolean predicate tree over record fields.
// The zero value matches every record.
type Expr struct {
	kind     nodeKind
	field    string
	op       Operator
	value    any
	children []Expr
}

func Leaf(field string, op Operator, value any) Expr {
	return Expr{kind: kindLeaf, field: field, op: op, value: value}
}

func Eq(field string, value any) Expr  { return Leaf(field, OpEq, value) }
func Gte(field string, value any) Expr { return Leaf(field, OpGte, value) }
func Lte(field string, value any) Expr { return Leaf(field, OpLte, value) }
func In(field string, value any) Expr  { return Leaf(field, OpIn, value) }

func And(children ...Expr) Expr {
	return Expr{kind: kindAnd, children: children}
}

func Or(children ...Expr) Expr {
	return Expr{kind: kindOr, children: children}
}

// IsEmpty reports whether the expression is the zero value.
func (e Expr) IsEmpty() bool {
	return e.kind == kindLeaf && e.field == ""
}

func (e Expr) String() string {
	switch e.kind {
	case kindAnd, kindOr:
		sep := " AND "
		if e.kind == kindOr {
			sep = " OR "
		}
		parts := make([]string, 0, len(e.children))
		for _, c := range e.children {
			parts = append(parts, c.String())
		}
		return "(" + strings.Join(parts, sep) + ")"
	default:
		if e.IsEmpty() {
			return "TRUE"
		}
		return fmt.Sprintf("%s %s %v", e.field, e.op, e.value)
	}
}

func (e Expr) Validate() error {
	switch e.kind {
	case kindAnd, kindOr:
		if len(e.children) == 0 {
			return fmt.Errorf("empty logical node in filter")
		}
		for _, c := range e.children {
			if err := c.Validate(); err != nil {
				return err
			}
		}
		return nil
	default:
		if e.IsEmpty() {
			return nil
		}
		switch e.op {
		case OpEq, OpNe, OpGt, OpGte, OpLt, OpLte:
			return nil
		case OpIn:
			if k := reflect.ValueOf(e.value).Kind(); k != reflect.Slice && k != reflect.Array {
				return fmt.Errorf("operator %q on field %s requires a list value", e.op, e.field)
			}
			return nil
		default:
			return fmt.Errorf("unsupported filter operator %q on field %s", e.op, e.field)
		}
	}
}

// Domain encodes the expression in Odoo prefix notation, e.g.
// ['&', ('state', '=', 'sale'), ('create_date', '>=', '2024-05-01')].
// Leaves are encoded as 3-element slices, which is what JSON-RPC expects.
func (e Expr) Domain() []any {
	if e.IsEmpty() {
		return []any{}
	}
	return e.appendDomain(nil)
}

func (e Expr) appendDomain(out []any) []any {
	switch e.kind {
	case kindAnd, kindOr:
		token := "&"
		if e.kind == kindOr {
			token = "|"
		}
		if len(e.children) == 1 {
			return e.children[0].appendDomain(out)
		}
		// A binary operator prefixes each pair, so n operands need n-1 tokens.
		for i := 0; i < len(e.children)-1; i++ {
			out = append(out, token)
		}
		for _, c := range e.children {
			out = c.appendDomain(out)
		}
		return out
	default:
		return append(out, []any{e.field, string(e.op), e.value})
	}
}

// Match evaluates the expression against an in-memory record.
// Missing fields never match.
func (e Expr) Match(r store.Record) bool {
	switch e.kind {
	case kindAnd:
		for _, c := range e.children {
			if !c.Match(r) {
				return false
			}
		}
		return true
	case kindOr:
		for _, c := range e.children {
			if c.Match(r) {
				return true
			}
		}
		return false
	default:
		if e.IsEmpty() {
			return true
		}
		v, ok := r[e.field]
		if !ok || v == nil {
			return false
		}
		return matchLeaf(v, e.op, e.value)
	}
}

func matchLeaf(actual any, op Operator, expected any) bool {
	if op == OpIn {
		list := reflect.ValueOf(expected)
		if list.Kind() != reflect.Slice && list.Kind() != reflect.Array {
			return false
		}
		for i := 0; i < list.Len(); i++ {
			if c, ok := compare(actual, list.Index(i).Interface()); ok && c == 0 {
				return true
			}
		}
		return false
	}

	c, ok := compare(actual, expected)
	if !ok {
		return false
	}
	switch op {
	case OpEq:
		return c == 0
	case OpNe:
		return c != 0
	case OpGt:
		return c > 0
	case OpGte:
		return c >= 0
	case OpLt:
		return c < 0
	case OpLte:
		return c <= 0
	default:
		return false
	}
}

// compare orders numbers numerically and strings lexicographically,
// which keeps ISO dates in calendar order.
func compare(a, b any) (int, bool) {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		if !ok {
			return 0, false
		}
		switch {
		case fa < fb:
			return -1, true
		case fa > fb:
			return 1, true
		default:
			return 0, true
		}
	}
	sa, ok := a.(string)
	if !ok {
		if ba, isBool := a.(bool); isBool {
			bb, ok := b.(bool)
			if !ok || ba != bb {
				return 1, ok
			}
			return 0, true
		}
		return 0, false
	}
	sb, ok := b.(string)
	if !ok {
		return 0, false
	}
	return strings.Compare(sa, sb), true
}

func toFloat(v any) (float64, bool) {
	rec := store.Record{"v": v}
	return rec.Float("v")
}
