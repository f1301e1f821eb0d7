package query

// Expr represents a search expression
type Expr interface {
	isExpr()
}

// BoolOp is a binary boolean operator
type BoolOp int

const (
	OpAnd BoolOp = iota
	OpOr
)

func (op BoolOp) String() string {
	if op == OpOr {
		return "OR"
	}
	return "AND"
}

// Binary joins two expressions with AND or OR
type Binary struct {
	Op    BoolOp
	Left  Expr
	Right Expr
}

func (Binary) isExpr() {}

// Unary negates its operand. NOT is the only unary operator.
type Unary struct {
	Operand Expr
}

func (Unary) isExpr() {}

// TagQuery matches images carrying a tag with this (lowercased) name
type TagQuery struct {
	Value string
}

func (TagQuery) isExpr() {}

// GroupTagQuery matches images carrying a tag that belongs to the named tag group.
// Parts that came from quoted literals keep their case.
type GroupTagQuery struct {
	Group string
	Tag   string
}

func (GroupTagQuery) isExpr() {}

// CmpOp is a comparison operator
type CmpOp int

const (
	CmpEq CmpOp = iota
	CmpGt
	CmpGte
	CmpLt
	CmpLte
)

func (op CmpOp) String() string {
	switch op {
	case CmpEq:
		return "="
	case CmpGt:
		return ">"
	case CmpGte:
		return ">="
	case CmpLt:
		return "<"
	case CmpLte:
		return "<="
	default:
		return "?"
	}
}

// FieldQuery filters on an artwork attribute: name, artist, year or version
type FieldQuery struct {
	Field string
	Op    CmpOp
	Value string
}

func (FieldQuery) isExpr() {}

// MatchPartial is the match:partial pseudo-predicate. It filters nothing;
// its presence switches the caller into ranked partial-match mode.
type MatchPartial struct{}

func (MatchPartial) isExpr() {}

func cmpOpFor(kind TokenKind) CmpOp {
	switch kind {
	case TokGt:
		return CmpGt
	case TokGte:
		return CmpGte
	case TokLt:
		return CmpLt
	case TokLte:
		return CmpLte
	default:
		return CmpEq
	}
}
