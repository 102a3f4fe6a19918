package filter

import (
	"encoding/json"
	"fmt"
)

// Filter holds the parsed filter expressions of one search request.
// Top-level expressions combine with AND.
type Filter struct {
	Filters []Expression
}

// Parse parses the viewer's filter JSON. Empty input yields an empty
// Filter.
//
// Error conditions:
//   - Invalid JSON syntax
//   - Comparison with an unknown operator
//
// An unknown expression type parses into UnsupportedExpression rather than
// failing, so one exotic filter does not reject the whole request.
func Parse(data []byte) (*Filter, error) {
	if len(data) == 0 {
		return &Filter{}, nil
	}

	var raw rawFilter
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("filter: invalid JSON: %w", err)
	}

	f := &Filter{Filters: make([]Expression, 0, len(raw.Filters))}
	for i, rawExpr := range raw.Filters {
		expr, err := parseExpression(rawExpr)
		if err != nil {
			return nil, fmt.Errorf("filter: error parsing filter %d: %w", i, err)
		}
		f.Filters = append(f.Filters, expr)
	}
	return f, nil
}

type rawFilter struct {
	Filters []json.RawMessage `json:"filters"`
}

// rawExpression is used for two-phase parsing to determine the type first.
type rawExpression struct {
	Type     string            `json:"type"`
	Column   string            `json:"column"`
	Op       string            `json:"op"`
	Value    any               `json:"value"`
	Values   []any             `json:"values"`
	Negate   bool              `json:"negate"`
	Children []json.RawMessage `json:"children"`
}

func parseExpression(data json.RawMessage) (Expression, error) {
	var raw rawExpression
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid expression: %w", err)
	}

	switch ExpressionType(raw.Type) {
	case TypeCompare:
		if !validOp(CompareOp(raw.Op)) {
			return nil, fmt.Errorf("unknown comparison operator %q", raw.Op)
		}
		return &ComparisonExpression{Column: raw.Column, Op: CompareOp(raw.Op), Value: raw.Value}, nil

	case TypeAnd, TypeOr:
		children := make([]Expression, 0, len(raw.Children))
		for _, c := range raw.Children {
			child, err := parseExpression(c)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		return &ConjunctionExpression{Or: ExpressionType(raw.Type) == TypeOr, Children: children}, nil

	case TypeNull:
		return &NullExpression{Column: raw.Column, Negate: raw.Negate}, nil

	case TypeIn:
		return &MembershipExpression{Column: raw.Column, Values: raw.Values, Negate: raw.Negate}, nil

	case TypeContains:
		s, _ := raw.Value.(string)
		return &ContainsExpression{Column: raw.Column, Value: s}, nil
	}

	return &UnsupportedExpression{RawType: raw.Type}, nil
}

func validOp(op CompareOp) bool {
	switch op {
	case OpEqual, OpNotEqual, OpLess, OpLessOrEqual, OpGreater, OpGreaterOrEqual:
		return true
	}
	return false
}
