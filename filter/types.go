package filter

// ExpressionType identifies the kind of filter expression, matching the
// "type" discriminator in the UI's filter JSON.
type ExpressionType string

const (
	TypeCompare  ExpressionType = "compare"
	TypeAnd      ExpressionType = "and"
	TypeOr       ExpressionType = "or"
	TypeNull     ExpressionType = "null"
	TypeIn       ExpressionType = "in"
	TypeContains ExpressionType = "contains"
)

// CompareOp is a binary comparison operator.
type CompareOp string

const (
	OpEqual          CompareOp = "="
	OpNotEqual       CompareOp = "!="
	OpLess           CompareOp = "<"
	OpLessOrEqual    CompareOp = "<="
	OpGreater        CompareOp = ">"
	OpGreaterOrEqual CompareOp = ">="
)

// Expression is the interface implemented by all filter expression types.
// Use type switches to access specific expression data.
type Expression interface {
	// Type returns the expression's discriminator.
	Type() ExpressionType

	// expressionMarker is a marker method to prevent external implementation.
	expressionMarker()
}

// ComparisonExpression is a binary comparison of a column against a
// constant value.
type ComparisonExpression struct {
	Column string
	Op     CompareOp
	Value  any
}

func (e *ComparisonExpression) Type() ExpressionType { return TypeCompare }
func (e *ComparisonExpression) expressionMarker()    {}

// ConjunctionExpression combines child expressions with AND or OR.
type ConjunctionExpression struct {
	Or       bool
	Children []Expression
}

func (e *ConjunctionExpression) Type() ExpressionType {
	if e.Or {
		return TypeOr
	}
	return TypeAnd
}
func (e *ConjunctionExpression) expressionMarker() {}

// NullExpression is an IS NULL / IS NOT NULL check.
type NullExpression struct {
	Column string
	Negate bool
}

func (e *NullExpression) Type() ExpressionType { return TypeNull }
func (e *NullExpression) expressionMarker()    {}

// MembershipExpression is a facet filter: column IN (values) or
// NOT IN (values).
type MembershipExpression struct {
	Column string
	Values []any
	Negate bool
}

func (e *MembershipExpression) Type() ExpressionType { return TypeIn }
func (e *MembershipExpression) expressionMarker()    {}

// ContainsExpression is a case-insensitive substring match.
type ContainsExpression struct {
	Column string
	Value  string
}

func (e *ContainsExpression) Type() ExpressionType { return TypeContains }
func (e *ContainsExpression) expressionMarker()    {}

// UnsupportedExpression stands in for filter JSON the parser recognizes
// structurally but cannot express. Encoders drop it per the package policy.
type UnsupportedExpression struct {
	// RawType is the unrecognized "type" discriminator.
	RawType string
}

func (e *UnsupportedExpression) Type() ExpressionType { return ExpressionType(e.RawType) }
func (e *UnsupportedExpression) expressionMarker()    {}
