// Package ast defines the abstract syntax tree for the fluxo SQL dialect.
package ast

import (
	"encoding/json"
	"math"

	"github.com/sqlc-dev/fluxo/token"
)

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() token.Position
	End() token.Position
}

// Statement is the interface implemented by all statement nodes.
type Statement interface {
	Node
	statementNode()
}

// CreateStatement is implemented by the CREATE family. Every
// CreateStatement is also a Statement.
type CreateStatement interface {
	Statement
	createNode()
}

// SchemaElement is a CREATE statement that may be nested inside
// CREATE SCHEMA: tables, indexes, views, sequences and triggers.
type SchemaElement interface {
	CreateStatement
	schemaElementNode()
}

// AlterAction is implemented by the actions of ALTER TABLE.
type AlterAction interface {
	Node
	alterActionNode()
}

// Expression is the interface implemented by all expression nodes.
// An absent expression is a nil Expression.
type Expression interface {
	Node
	expressionNode()
}

// DataType is a column or literal type.
type DataType string

const (
	TypeInteger   DataType = "INTEGER"
	TypeBigint    DataType = "BIGINT"
	TypeText      DataType = "TEXT"
	TypeBoolean   DataType = "BOOLEAN"
	TypeDouble    DataType = "DOUBLE"
	TypeDate      DataType = "DATE"
	TypeTimestamp DataType = "TIMESTAMP"
	TypeVarchar   DataType = "VARCHAR"
	TypeNull      DataType = "NULL"
)

// -----------------------------------------------------------------------------
// Expressions

// ColumnRef references a column, optionally qualified by a table.
// A bare * projection is a ColumnRef named "*".
type ColumnRef struct {
	Position token.Position `json:"-" deep:"-"`
	Name     string         `json:"name"`
	Table    *string        `json:"table,omitempty"`
}

func (c *ColumnRef) Pos() token.Position { return c.Position }
func (c *ColumnRef) End() token.Position { return c.Position }
func (c *ColumnRef) expressionNode()     {}

// Literal represents a literal value. Value is nil, int64, float64,
// bool or string.
type Literal struct {
	Position token.Position `json:"-" deep:"-"`
	Type     DataType       `json:"type"`
	Value    interface{}    `json:"value"`
}

func (l *Literal) Pos() token.Position { return l.Position }
func (l *Literal) End() token.Position { return l.Position }
func (l *Literal) expressionNode()     {}

// MarshalJSON handles special float values (NaN, +Inf, -Inf) that JSON doesn't support.
func (l *Literal) MarshalJSON() ([]byte, error) {
	type literalAlias Literal
	if f, ok := l.Value.(float64); ok {
		var special string
		switch {
		case math.IsNaN(f):
			special = "NaN"
		case math.IsInf(f, 1):
			special = "+Inf"
		case math.IsInf(f, -1):
			special = "-Inf"
		}
		if special != "" {
			return json.Marshal(&struct {
				*literalAlias
				Value string `json:"value"`
			}{
				literalAlias: (*literalAlias)(l),
				Value:        special,
			})
		}
	}
	return json.Marshal((*literalAlias)(l))
}

// BinaryOp is the operator of a BinaryExpr. Values are the SQL spelling.
type BinaryOp string

const (
	OpPlus    BinaryOp = "+"
	OpMinus   BinaryOp = "-"
	OpMul     BinaryOp = "*"
	OpDiv     BinaryOp = "/"
	OpMod     BinaryOp = "%"
	OpPow     BinaryOp = "^"
	OpEq      BinaryOp = "="
	OpNeq     BinaryOp = "<>"
	OpLt      BinaryOp = "<"
	OpLte     BinaryOp = "<="
	OpGt      BinaryOp = ">"
	OpGte     BinaryOp = ">="
	OpAnd     BinaryOp = "AND"
	OpOr      BinaryOp = "OR"
	OpLike    BinaryOp = "LIKE"
	OpILike   BinaryOp = "ILIKE"
	OpNotLike BinaryOp = "NOT LIKE"
)

// BinaryExpr represents a binary operation.
type BinaryExpr struct {
	Position token.Position `json:"-" deep:"-"`
	Left     Expression     `json:"left"`
	Op       BinaryOp       `json:"op"`
	Right    Expression     `json:"right"`
}

func (b *BinaryExpr) Pos() token.Position { return b.Position }
func (b *BinaryExpr) End() token.Position { return b.Right.End() }
func (b *BinaryExpr) expressionNode()     {}

// UnaryOp is the operator of a UnaryExpr.
type UnaryOp string

const (
	OpNot       UnaryOp = "NOT"
	OpNeg       UnaryOp = "-"
	OpIsNull    UnaryOp = "IS NULL"
	OpIsNotNull UnaryOp = "IS NOT NULL"
)

// UnaryExpr represents a unary operation.
type UnaryExpr struct {
	Position token.Position `json:"-" deep:"-"`
	Op       UnaryOp        `json:"op"`
	Operand  Expression     `json:"operand"`
}

func (u *UnaryExpr) Pos() token.Position { return u.Position }
func (u *UnaryExpr) End() token.Position { return u.Operand.End() }
func (u *UnaryExpr) expressionNode()     {}

// FunctionCall represents a function call.
type FunctionCall struct {
	Position  token.Position `json:"-" deep:"-"`
	Name      string         `json:"name"`
	Args      []Expression   `json:"args,omitempty"`
	Aggregate bool           `json:"aggregate,omitempty"`
}

func (f *FunctionCall) Pos() token.Position { return f.Position }
func (f *FunctionCall) End() token.Position { return f.Position }
func (f *FunctionCall) expressionNode()     {}

// CastExpr represents CAST(expr AS type).
type CastExpr struct {
	Position token.Position `json:"-" deep:"-"`
	Expr     Expression     `json:"expr"`
	Type     DataType       `json:"type"`
}

func (c *CastExpr) Pos() token.Position { return c.Position }
func (c *CastExpr) End() token.Position { return c.Position }
func (c *CastExpr) expressionNode()     {}

// -----------------------------------------------------------------------------
// Clauses

// TableRef names a table in a FROM clause.
type TableRef struct {
	Position token.Position `json:"-" deep:"-"`
	Name     string         `json:"name"`
	Alias    *string        `json:"alias,omitempty"`
}

func (t *TableRef) Pos() token.Position { return t.Position }
func (t *TableRef) End() token.Position { return t.Position }

// OrderByItem is one element of ORDER BY.
type OrderByItem struct {
	Position token.Position `json:"-" deep:"-"`
	Expr     Expression     `json:"expr"`
	Desc     bool           `json:"desc,omitempty"`
}

func (o *OrderByItem) Pos() token.Position { return o.Position }
func (o *OrderByItem) End() token.Position { return o.Position }

// ColumnDef is a column definition inside CREATE TABLE or ADD COLUMN.
type ColumnDef struct {
	Position   token.Position `json:"-" deep:"-"`
	Name       string         `json:"name"`
	Type       DataType       `json:"type"`
	Length     *int64         `json:"length,omitempty"`
	NotNull    bool           `json:"not_null,omitempty"`
	PrimaryKey bool           `json:"primary_key,omitempty"`
	Unique     bool           `json:"unique,omitempty"`
	Default    Expression     `json:"default,omitempty"`
}

func (c *ColumnDef) Pos() token.Position { return c.Position }
func (c *ColumnDef) End() token.Position { return c.Position }

// ConstraintKind identifies a table constraint.
type ConstraintKind string

const (
	ConstraintPrimaryKey ConstraintKind = "PRIMARY KEY"
	ConstraintUnique     ConstraintKind = "UNIQUE"
	ConstraintForeignKey ConstraintKind = "FOREIGN KEY"
	ConstraintCheck      ConstraintKind = "CHECK"
)

// MatchType is the MATCH mode of a foreign key.
type MatchType byte

const (
	MatchSimple  MatchType = 's'
	MatchFull    MatchType = 'f'
	MatchPartial MatchType = 'p'
)

func (m MatchType) String() string {
	switch m {
	case MatchFull:
		return "FULL"
	case MatchPartial:
		return "PARTIAL"
	default:
		return "SIMPLE"
	}
}

// MarshalText encodes the match type by name.
func (m MatchType) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// RefAction is the referential action of ON UPDATE / ON DELETE.
type RefAction byte

const (
	ActionNoAction   RefAction = 'a'
	ActionRestrict   RefAction = 'r'
	ActionCascade    RefAction = 'c'
	ActionSetNull    RefAction = 'n'
	ActionSetDefault RefAction = 'd'
)

func (a RefAction) String() string {
	switch a {
	case ActionRestrict:
		return "RESTRICT"
	case ActionCascade:
		return "CASCADE"
	case ActionSetNull:
		return "SET NULL"
	case ActionSetDefault:
		return "SET DEFAULT"
	default:
		return "NO ACTION"
	}
}

// MarshalText encodes the action by name.
func (a RefAction) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// TableConstraint is a table-level constraint.
type TableConstraint struct {
	Position   token.Position `json:"-" deep:"-"`
	Kind       ConstraintKind `json:"kind"`
	Name       *string        `json:"name,omitempty"`
	Columns    []string       `json:"columns,omitempty"`
	RefTable   *string        `json:"ref_table,omitempty"`
	RefColumns []string       `json:"ref_columns,omitempty"`
	Match      MatchType      `json:"match"`
	OnUpdate   RefAction      `json:"on_update"`
	OnDelete   RefAction      `json:"on_delete"`
	Check      Expression     `json:"check,omitempty"`
}

func (t *TableConstraint) Pos() token.Position { return t.Position }
func (t *TableConstraint) End() token.Position { return t.Position }

// SortDirection orders an index element.
type SortDirection string

const (
	Asc  SortDirection = "ASC"
	Desc SortDirection = "DESC"
)

// IndexElem is one key of CREATE INDEX. Exactly one of Column and Expr
// is set.
type IndexElem struct {
	Position   token.Position `json:"-" deep:"-"`
	Column     *string        `json:"column,omitempty"`
	Expr       Expression     `json:"expr,omitempty"`
	Collation  *string        `json:"collation,omitempty"`
	OpClass    *string        `json:"opclass,omitempty"`
	Direction  SortDirection  `json:"direction"`
	NullsFirst *bool          `json:"nulls_first,omitempty"`
}

func (i *IndexElem) Pos() token.Position { return i.Position }
func (i *IndexElem) End() token.Position { return i.Position }

// SequenceOwner is the OWNED BY target of a sequence.
type SequenceOwner struct {
	Table  string `json:"table"`
	Column string `json:"column"`
}
