package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// DuckDBEncoder encodes filter expressions to DuckDB SQL syntax.
type DuckDBEncoder struct{}

// NewDuckDBEncoder creates a new DuckDB SQL encoder.
func NewDuckDBEncoder() *DuckDBEncoder {
	return &DuckDBEncoder{}
}

// EncodeFilters converts all filters to a WHERE clause body, joined with
// AND. Returns the condition portion without the "WHERE" keyword, or an
// empty string if no filter can be encoded.
func (e *DuckDBEncoder) EncodeFilters(f *Filter) string {
	if f == nil || len(f.Filters) == 0 {
		return ""
	}

	var parts []string
	for _, expr := range f.Filters {
		if encoded := e.Encode(expr); encoded != "" {
			parts = append(parts, encoded)
		}
	}
	return strings.Join(parts, " AND ")
}

// Encode converts a single expression to SQL. Returns an empty string for
// expressions that cannot be encoded.
func (e *DuckDBEncoder) Encode(expr Expression) string {
	switch x := expr.(type) {
	case *ComparisonExpression:
		lit, ok := e.literal(x.Value)
		if !ok {
			return ""
		}
		return fmt.Sprintf("%s %s %s", quoteIdent(x.Column), x.Op, lit)

	case *ConjunctionExpression:
		return e.encodeConjunction(x)

	case *NullExpression:
		if x.Negate {
			return quoteIdent(x.Column) + " IS NOT NULL"
		}
		return quoteIdent(x.Column) + " IS NULL"

	case *MembershipExpression:
		if len(x.Values) == 0 {
			return ""
		}
		lits := make([]string, 0, len(x.Values))
		for _, v := range x.Values {
			lit, ok := e.literal(v)
			if !ok {
				return ""
			}
			lits = append(lits, lit)
		}
		op := "IN"
		if x.Negate {
			op = "NOT IN"
		}
		return fmt.Sprintf("%s %s (%s)", quoteIdent(x.Column), op, strings.Join(lits, ", "))

	case *ContainsExpression:
		if x.Value == "" {
			return ""
		}
		pattern := "%" + escapeLike(x.Value) + "%"
		return fmt.Sprintf("%s ILIKE %s ESCAPE '\\'", quoteIdent(x.Column), quoteString(pattern))
	}

	return ""
}

// encodeConjunction applies the degradation policy: AND skips children
// that fail to encode, OR gives up entirely if any child fails (a partial
// OR would narrow the result set, which is not safe to do silently).
func (e *DuckDBEncoder) encodeConjunction(x *ConjunctionExpression) string {
	var parts []string
	for _, child := range x.Children {
		encoded := e.Encode(child)
		if encoded == "" {
			if x.Or {
				return ""
			}
			continue
		}
		parts = append(parts, encoded)
	}
	if len(parts) == 0 {
		return ""
	}
	if len(parts) == 1 {
		return parts[0]
	}
	op := " AND "
	if x.Or {
		op = " OR "
	}
	return "(" + strings.Join(parts, op) + ")"
}

// literal renders a JSON-decoded constant as a SQL literal. Composite
// values report ok=false.
func (e *DuckDBEncoder) literal(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "NULL", true
	case bool:
		if val {
			return "TRUE", true
		}
		return "FALSE", true
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case int:
		return strconv.Itoa(val), true
	case string:
		return quoteString(val), true
	}
	return "", false
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}
