package ast

import "github.com/sqlc-dev/fluxo/token"

// -----------------------------------------------------------------------------
// CREATE statements

// CreateTableStmt represents CREATE TABLE.
type CreateTableStmt struct {
	Position    token.Position     `json:"-" deep:"-"`
	Name        string             `json:"name"`
	Temporary   bool               `json:"temporary,omitempty"`
	IfNotExists bool               `json:"if_not_exists,omitempty"`
	Columns     []*ColumnDef       `json:"columns,omitempty"`
	Constraints []*TableConstraint `json:"constraints,omitempty"`
	Tablespace  *string            `json:"tablespace,omitempty"`
}

func (c *CreateTableStmt) Pos() token.Position { return c.Position }
func (c *CreateTableStmt) End() token.Position { return c.Position }
func (c *CreateTableStmt) statementNode()      {}
func (c *CreateTableStmt) createNode()         {}
func (c *CreateTableStmt) schemaElementNode()  {}

// CreateIndexStmt represents CREATE [UNIQUE] INDEX.
type CreateIndexStmt struct {
	Position     token.Position `json:"-" deep:"-"`
	Name         string         `json:"name"`
	Table        string         `json:"table"`
	Unique       bool           `json:"unique,omitempty"`
	Concurrently bool           `json:"concurrently,omitempty"`
	IfNotExists  bool           `json:"if_not_exists,omitempty"`
	Only         bool           `json:"only,omitempty"`
	Method       *string        `json:"method,omitempty"`
	Params       []*IndexElem   `json:"params"`
	Where        Expression     `json:"where,omitempty"`
	Tablespace   *string        `json:"tablespace,omitempty"`
}

func (c *CreateIndexStmt) Pos() token.Position { return c.Position }
func (c *CreateIndexStmt) End() token.Position { return c.Position }
func (c *CreateIndexStmt) statementNode()      {}
func (c *CreateIndexStmt) createNode()         {}
func (c *CreateIndexStmt) schemaElementNode()  {}

// TriggerTiming is when a trigger fires relative to its event.
type TriggerTiming string

const (
	TimingBefore    TriggerTiming = "BEFORE"
	TimingAfter     TriggerTiming = "AFTER"
	TimingInsteadOf TriggerTiming = "INSTEAD OF"
)

// TriggerEvent is an event a trigger fires on.
type TriggerEvent string

const (
	EventInsert   TriggerEvent = "INSERT"
	EventUpdate   TriggerEvent = "UPDATE"
	EventDelete   TriggerEvent = "DELETE"
	EventTruncate TriggerEvent = "TRUNCATE"
)

// TriggerForEach is the granularity of a trigger.
type TriggerForEach string

const (
	ForEachRow       TriggerForEach = "ROW"
	ForEachStatement TriggerForEach = "STATEMENT"
)

// CreateTriggerStmt represents CREATE [OR REPLACE] TRIGGER.
type CreateTriggerStmt struct {
	Position  token.Position `json:"-" deep:"-"`
	Name      string         `json:"name"`
	OrReplace bool           `json:"or_replace,omitempty"`
	Timing    TriggerTiming  `json:"timing"`
	Events    []TriggerEvent `json:"events"`
	UpdateOf  []string       `json:"update_of,omitempty"` // nil unless UPDATE OF was written
	Table     string         `json:"table"`
	ForEach   TriggerForEach `json:"for_each"`
	When      Expression     `json:"when,omitempty"`
	Function  string         `json:"function"`
	Args      []Expression   `json:"args,omitempty"`
}

func (c *CreateTriggerStmt) Pos() token.Position { return c.Position }
func (c *CreateTriggerStmt) End() token.Position { return c.Position }
func (c *CreateTriggerStmt) statementNode()      {}
func (c *CreateTriggerStmt) createNode()         {}
func (c *CreateTriggerStmt) schemaElementNode()  {}

// CreateSequenceStmt represents CREATE SEQUENCE. Start and Increment
// default to 1.
type CreateSequenceStmt struct {
	Position    token.Position `json:"-" deep:"-"`
	Name        string         `json:"name"`
	Temporary   bool           `json:"temporary,omitempty"`
	IfNotExists bool           `json:"if_not_exists,omitempty"`
	Start       int64          `json:"start"`
	Increment   int64          `json:"increment"`
	MinValue    *int64         `json:"min_value,omitempty"`
	MaxValue    *int64         `json:"max_value,omitempty"`
	Cycle       bool           `json:"cycle,omitempty"`
	Cache       *int64         `json:"cache,omitempty"`
	OwnedBy     *SequenceOwner `json:"owned_by,omitempty"`
}

func (c *CreateSequenceStmt) Pos() token.Position { return c.Position }
func (c *CreateSequenceStmt) End() token.Position { return c.Position }
func (c *CreateSequenceStmt) statementNode()      {}
func (c *CreateSequenceStmt) createNode()         {}
func (c *CreateSequenceStmt) schemaElementNode()  {}

// CreateSchemaStmt represents CREATE SCHEMA with optional nested elements.
type CreateSchemaStmt struct {
	Position      token.Position  `json:"-" deep:"-"`
	Name          string          `json:"name"`
	IfNotExists   bool            `json:"if_not_exists,omitempty"`
	Authorization *string         `json:"authorization,omitempty"`
	Elements      []SchemaElement `json:"elements,omitempty"` // nil when no element was written
}

func (c *CreateSchemaStmt) Pos() token.Position { return c.Position }
func (c *CreateSchemaStmt) End() token.Position { return c.Position }
func (c *CreateSchemaStmt) statementNode()      {}
func (c *CreateSchemaStmt) createNode()         {}

// CreateCollationStmt represents CREATE COLLATION.
type CreateCollationStmt struct {
	Position      token.Position `json:"-" deep:"-"`
	Name          string         `json:"name"`
	IfNotExists   bool           `json:"if_not_exists,omitempty"`
	Locale        *string        `json:"locale,omitempty"`
	Deterministic bool           `json:"deterministic"`
	Provider      *string        `json:"provider,omitempty"`
	Version       *string        `json:"version,omitempty"`
	Rules         *string        `json:"rules,omitempty"`
	From          *string        `json:"from,omitempty"`
}

func (c *CreateCollationStmt) Pos() token.Position { return c.Position }
func (c *CreateCollationStmt) End() token.Position { return c.Position }
func (c *CreateCollationStmt) statementNode()      {}
func (c *CreateCollationStmt) createNode()         {}

// Database defaults applied when an option is not written.
const (
	DefaultDatabaseOwner      = "DEFAULT"
	DefaultDatabaseEncoding   = "UTF-8"
	DefaultDatabaseTablespace = "fx_default"
	UnlimitedConnections      = -1
)

// CreateDatabaseStmt represents CREATE DATABASE.
type CreateDatabaseStmt struct {
	Position         token.Position `json:"-" deep:"-"`
	Name             string         `json:"name"`
	IfNotExists      bool           `json:"if_not_exists,omitempty"`
	Owner            string         `json:"owner"`
	Encoding         string         `json:"encoding"`
	Tablespace       string         `json:"tablespace"`
	AllowConnections bool           `json:"allow_connections"`
	ConnectionLimit  int64          `json:"connection_limit"`
}

func (c *CreateDatabaseStmt) Pos() token.Position { return c.Position }
func (c *CreateDatabaseStmt) End() token.Position { return c.Position }
func (c *CreateDatabaseStmt) statementNode()      {}
func (c *CreateDatabaseStmt) createNode()         {}

// CreateRoleStmt represents CREATE ROLE and CREATE USER. A user is a
// role that logs in by default.
type CreateRoleStmt struct {
	Position        token.Position `json:"-" deep:"-"`
	Name            string         `json:"name"`
	IsUser          bool           `json:"is_user,omitempty"`
	IfNotExists     bool           `json:"if_not_exists,omitempty"`
	Superuser       bool           `json:"superuser"`
	CreateDB        bool           `json:"createdb"`
	CreateRole      bool           `json:"createrole"`
	Inherit         bool           `json:"inherit"`
	Login           bool           `json:"login"`
	ConnectionLimit *int64         `json:"connection_limit,omitempty"`
	ValidUntil      *string        `json:"valid_until,omitempty"`
	Password        *string        `json:"password,omitempty"`
}

func (c *CreateRoleStmt) Pos() token.Position { return c.Position }
func (c *CreateRoleStmt) End() token.Position { return c.Position }
func (c *CreateRoleStmt) statementNode()      {}
func (c *CreateRoleStmt) createNode()         {}

// CreateViewStmt represents CREATE VIEW.
type CreateViewStmt struct {
	Position  token.Position `json:"-" deep:"-"`
	Name      string         `json:"name"`
	OrReplace bool           `json:"or_replace,omitempty"`
	Temporary bool           `json:"temporary,omitempty"`
	Recursive bool           `json:"recursive,omitempty"`
	Columns   []string       `json:"columns,omitempty"`
	Query     *SelectStmt    `json:"query"`
}

func (c *CreateViewStmt) Pos() token.Position { return c.Position }
func (c *CreateViewStmt) End() token.Position { return c.Position }
func (c *CreateViewStmt) statementNode()      {}
func (c *CreateViewStmt) createNode()         {}
func (c *CreateViewStmt) schemaElementNode()  {}
