package ast

import "github.com/sqlc-dev/fluxo/token"

// -----------------------------------------------------------------------------
// Statements

// SelectStmt represents a SELECT statement.
type SelectStmt struct {
	Position    token.Position `json:"-" deep:"-"`
	Distinct    bool           `json:"distinct,omitempty"`
	Projections []Expression   `json:"projections"`
	From        []*TableRef    `json:"from,omitempty"`
	Where       Expression     `json:"where,omitempty"`
	GroupBy     []Expression   `json:"group_by,omitempty"`
	Having      Expression     `json:"having,omitempty"`
	OrderBy     []*OrderByItem `json:"order_by,omitempty"`
	Limit       *int64         `json:"limit,omitempty"`
	Offset      *int64         `json:"offset,omitempty"`
}

func (s *SelectStmt) Pos() token.Position { return s.Position }
func (s *SelectStmt) End() token.Position { return s.Position }
func (s *SelectStmt) statementNode()      {}

// InsertStmt represents INSERT INTO ... VALUES.
type InsertStmt struct {
	Position token.Position `json:"-" deep:"-"`
	Table    string         `json:"table"`
	Columns  []string       `json:"columns,omitempty"`
	Rows     [][]Expression `json:"rows"`
}

func (i *InsertStmt) Pos() token.Position { return i.Position }
func (i *InsertStmt) End() token.Position { return i.Position }
func (i *InsertStmt) statementNode()      {}

// ObjectType is the kind of object named by DROP.
type ObjectType string

const (
	ObjectTable     ObjectType = "TABLE"
	ObjectView      ObjectType = "VIEW"
	ObjectIndex     ObjectType = "INDEX"
	ObjectSchema    ObjectType = "SCHEMA"
	ObjectTrigger   ObjectType = "TRIGGER"
	ObjectSequence  ObjectType = "SEQUENCE"
	ObjectCollation ObjectType = "COLLATION"
	ObjectDatabase  ObjectType = "DATABASE"
	ObjectRole      ObjectType = "ROLE"
	ObjectUser      ObjectType = "USER"
	ObjectUserType  ObjectType = "TYPE"
)

// DropStmt represents a DROP statement. DROP INDEX is always
// concurrent; other objects are concurrent only when CONCURRENTLY is
// written.
type DropStmt struct {
	Position     token.Position `json:"-" deep:"-"`
	Object       ObjectType     `json:"object"`
	Names        []string       `json:"names"`
	IfExists     bool           `json:"if_exists,omitempty"`
	Cascade      bool           `json:"cascade,omitempty"`
	Restrict     bool           `json:"restrict,omitempty"`
	Concurrently bool           `json:"concurrently,omitempty"`
}

func (d *DropStmt) Pos() token.Position { return d.Position }
func (d *DropStmt) End() token.Position { return d.Position }
func (d *DropStmt) statementNode()      {}

// AlterTableStmt represents ALTER TABLE.
type AlterTableStmt struct {
	Position token.Position `json:"-" deep:"-"`
	Table    string         `json:"table"`
	IfExists bool           `json:"if_exists,omitempty"`
	Actions  []AlterAction  `json:"actions"`
}

func (a *AlterTableStmt) Pos() token.Position { return a.Position }
func (a *AlterTableStmt) End() token.Position { return a.Position }
func (a *AlterTableStmt) statementNode()      {}

// -----------------------------------------------------------------------------
// ALTER TABLE actions

// AddColumnAction is ADD COLUMN.
type AddColumnAction struct {
	Position    token.Position `json:"-" deep:"-"`
	Column      *ColumnDef     `json:"column"`
	IfNotExists bool           `json:"if_not_exists,omitempty"`
}

func (a *AddColumnAction) Pos() token.Position { return a.Position }
func (a *AddColumnAction) End() token.Position { return a.Position }
func (a *AddColumnAction) alterActionNode()    {}

// AddConstraintAction is ADD CONSTRAINT. Either the flag run
// (NOT NULL, UNIQUE, PRIMARY KEY) is used, or Constraint holds a full
// table constraint body.
type AddConstraintAction struct {
	Position   token.Position   `json:"-" deep:"-"`
	Name       *string          `json:"name,omitempty"`
	NotNull    bool             `json:"not_null,omitempty"`
	Unique     bool             `json:"unique,omitempty"`
	PrimaryKey bool             `json:"primary_key,omitempty"`
	Constraint *TableConstraint `json:"constraint,omitempty"`
}

func (a *AddConstraintAction) Pos() token.Position { return a.Position }
func (a *AddConstraintAction) End() token.Position { return a.Position }
func (a *AddConstraintAction) alterActionNode()    {}

// DropColumnAction is DROP COLUMN.
type DropColumnAction struct {
	Position token.Position `json:"-" deep:"-"`
	Column   string         `json:"column"`
	IfExists bool           `json:"if_exists,omitempty"`
	Cascade  bool           `json:"cascade,omitempty"`
}

func (d *DropColumnAction) Pos() token.Position { return d.Position }
func (d *DropColumnAction) End() token.Position { return d.Position }
func (d *DropColumnAction) alterActionNode()    {}

// DropConstraintAction is DROP CONSTRAINT.
type DropConstraintAction struct {
	Position token.Position `json:"-" deep:"-"`
	Name     string         `json:"name"`
	IfExists bool           `json:"if_exists,omitempty"`
	Cascade  bool           `json:"cascade,omitempty"`
}

func (d *DropConstraintAction) Pos() token.Position { return d.Position }
func (d *DropConstraintAction) End() token.Position { return d.Position }
func (d *DropConstraintAction) alterActionNode()    {}

// AlterColumnTypeAction is ALTER COLUMN ... TYPE.
type AlterColumnTypeAction struct {
	Position  token.Position `json:"-" deep:"-"`
	Column    string         `json:"column"`
	Type      DataType       `json:"type"`
	Using     Expression     `json:"using,omitempty"`
	Collation *string        `json:"collation,omitempty"`
}

func (a *AlterColumnTypeAction) Pos() token.Position { return a.Position }
func (a *AlterColumnTypeAction) End() token.Position { return a.Position }
func (a *AlterColumnTypeAction) alterActionNode()    {}

// AlterColumnDefaultAction is ALTER COLUMN ... SET DEFAULT / DROP DEFAULT.
type AlterColumnDefaultAction struct {
	Position token.Position `json:"-" deep:"-"`
	Column   string         `json:"column"`
	Default  Expression     `json:"default,omitempty"`
	Drop     bool           `json:"drop,omitempty"`
}

func (a *AlterColumnDefaultAction) Pos() token.Position { return a.Position }
func (a *AlterColumnDefaultAction) End() token.Position { return a.Position }
func (a *AlterColumnDefaultAction) alterActionNode()    {}

// AlterColumnNotNullAction is ALTER COLUMN ... SET NOT NULL / DROP NOT NULL.
type AlterColumnNotNullAction struct {
	Position   token.Position `json:"-" deep:"-"`
	Column     string         `json:"column"`
	SetNotNull bool           `json:"set_not_null"`
}

func (a *AlterColumnNotNullAction) Pos() token.Position { return a.Position }
func (a *AlterColumnNotNullAction) End() token.Position { return a.Position }
func (a *AlterColumnNotNullAction) alterActionNode()    {}

// RenameColumnAction is RENAME [COLUMN] old TO new.
type RenameColumnAction struct {
	Position token.Position `json:"-" deep:"-"`
	Old      string         `json:"old"`
	New      string         `json:"new"`
}

func (r *RenameColumnAction) Pos() token.Position { return r.Position }
func (r *RenameColumnAction) End() token.Position { return r.Position }
func (r *RenameColumnAction) alterActionNode()    {}

// RenameConstraintAction is RENAME CONSTRAINT old TO new.
type RenameConstraintAction struct {
	Position token.Position `json:"-" deep:"-"`
	Old      string         `json:"old"`
	New      string         `json:"new"`
}

func (r *RenameConstraintAction) Pos() token.Position { return r.Position }
func (r *RenameConstraintAction) End() token.Position { return r.Position }
func (r *RenameConstraintAction) alterActionNode()    {}

// RenameTableAction is RENAME [TO] new.
type RenameTableAction struct {
	Position token.Position `json:"-" deep:"-"`
	New      string         `json:"new"`
}

func (r *RenameTableAction) Pos() token.Position { return r.Position }
func (r *RenameTableAction) End() token.Position { return r.Position }
func (r *RenameTableAction) alterActionNode()    {}

// SetSchemaAction is SET SCHEMA name.
type SetSchemaAction struct {
	Position token.Position `json:"-" deep:"-"`
	Schema   string         `json:"schema"`
}

func (s *SetSchemaAction) Pos() token.Position { return s.Position }
func (s *SetSchemaAction) End() token.Position { return s.Position }
func (s *SetSchemaAction) alterActionNode()    {}

// OwnerToAction is OWNER TO name.
type OwnerToAction struct {
	Position token.Position `json:"-" deep:"-"`
	Owner    string         `json:"owner"`
}

func (o *OwnerToAction) Pos() token.Position { return o.Position }
func (o *OwnerToAction) End() token.Position { return o.Position }
func (o *OwnerToAction) alterActionNode()    {}
