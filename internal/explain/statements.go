package explain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sqlc-dev/fluxo/ast"
)

func explainCreateTable(sb *strings.Builder, n *ast.CreateTableStmt, indent string, depth int) {
	children := count(len(n.Columns) > 0, len(n.Constraints) > 0)
	header(sb, indent, children, "CreateTableQuery", n.Name,
		flag(n.Temporary, "temporary"),
		flag(n.IfNotExists, "if_not_exists"),
		opt("tablespace", n.Tablespace),
	)
	if len(n.Columns) > 0 {
		header(sb, indent+" ", len(n.Columns), "Columns")
		for _, col := range n.Columns {
			Column(sb, col, depth+2)
		}
	}
	if len(n.Constraints) > 0 {
		header(sb, indent+" ", len(n.Constraints), "Constraints")
		for _, c := range n.Constraints {
			Constraint(sb, c, depth+2)
		}
	}
}

func explainCreateIndex(sb *strings.Builder, n *ast.CreateIndexStmt, indent string, depth int) {
	children := 1 + count(n.Where != nil)
	header(sb, indent, children, "CreateIndexQuery", n.Name, "on", n.Table,
		flag(n.Unique, "unique"),
		flag(n.Concurrently, "concurrently"),
		flag(n.IfNotExists, "if_not_exists"),
		flag(n.Only, "only"),
		opt("using", n.Method),
		opt("tablespace", n.Tablespace),
	)
	header(sb, indent+" ", len(n.Params), "IndexParams")
	for _, p := range n.Params {
		Node(sb, p, depth+2)
	}
	if n.Where != nil {
		header(sb, indent+" ", 1, "Where")
		Node(sb, n.Where, depth+2)
	}
}

func explainCreateTrigger(sb *strings.Builder, n *ast.CreateTriggerStmt, indent string, depth int) {
	events := make([]string, len(n.Events))
	for i, e := range n.Events {
		events[i] = string(e)
	}
	children := count(len(n.UpdateOf) > 0, n.When != nil, len(n.Args) > 0)
	header(sb, indent, children, "CreateTriggerQuery", n.Name,
		flag(n.OrReplace, "or_replace"),
		"timing="+strings.ReplaceAll(string(n.Timing), " ", "_"),
		"events="+strings.Join(events, ","),
		"on", n.Table,
		"for_each="+string(n.ForEach),
		"execute="+n.Function,
	)
	if len(n.UpdateOf) > 0 {
		identifierList(sb, "UpdateOf", n.UpdateOf, depth+1)
	}
	if n.When != nil {
		header(sb, indent+" ", 1, "When")
		Node(sb, n.When, depth+2)
	}
	if len(n.Args) > 0 {
		ExpressionList(sb, n.Args, depth+1)
	}
}

func explainCreateSequence(sb *strings.Builder, n *ast.CreateSequenceStmt, indent string) {
	attrs := []string{
		n.Name,
		flag(n.Temporary, "temporary"),
		flag(n.IfNotExists, "if_not_exists"),
		"start=" + strconv.FormatInt(n.Start, 10),
		"increment=" + strconv.FormatInt(n.Increment, 10),
		optInt("min", n.MinValue),
		optInt("max", n.MaxValue),
		flag(n.Cycle, "cycle"),
		optInt("cache", n.Cache),
	}
	if n.OwnedBy != nil {
		attrs = append(attrs, "owned_by="+n.OwnedBy.Table+"."+n.OwnedBy.Column)
	}
	header(sb, indent, 0, "CreateSequenceQuery", attrs...)
}

func explainCreateSchema(sb *strings.Builder, n *ast.CreateSchemaStmt, indent string, depth int) {
	header(sb, indent, len(n.Elements), "CreateSchemaQuery", n.Name,
		flag(n.IfNotExists, "if_not_exists"),
		opt("authorization", n.Authorization),
	)
	for _, e := range n.Elements {
		Node(sb, e, depth+1)
	}
}

func explainCreateCollation(sb *strings.Builder, n *ast.CreateCollationStmt, indent string) {
	header(sb, indent, 0, "CreateCollationQuery", n.Name,
		flag(n.IfNotExists, "if_not_exists"),
		opt("from", n.From),
		opt("locale", quoted(n.Locale)),
		opt("provider", n.Provider),
		opt("version", quoted(n.Version)),
		opt("rules", quoted(n.Rules)),
		"deterministic="+strconv.FormatBool(n.Deterministic),
	)
}

func explainCreateDatabase(sb *strings.Builder, n *ast.CreateDatabaseStmt, indent string) {
	header(sb, indent, 0, "CreateDatabaseQuery", n.Name,
		flag(n.IfNotExists, "if_not_exists"),
		"owner="+n.Owner,
		"encoding='"+escapeStringLiteral(n.Encoding)+"'",
		"tablespace="+n.Tablespace,
		"allow_connections="+strconv.FormatBool(n.AllowConnections),
		"connection_limit="+strconv.FormatInt(n.ConnectionLimit, 10),
	)
}

func explainCreateRole(sb *strings.Builder, n *ast.CreateRoleStmt, indent string) {
	name := "CreateRoleQuery"
	if n.IsUser {
		name = "CreateUserQuery"
	}
	var password string
	if n.Password != nil {
		// The secret itself is never printed
		password = "password"
	}
	header(sb, indent, 0, name, n.Name,
		flag(n.IfNotExists, "if_not_exists"),
		flag(n.Superuser, "superuser"),
		flag(n.CreateDB, "createdb"),
		flag(n.CreateRole, "createrole"),
		flag(!n.Inherit, "noinherit"),
		flag(n.Login, "login"),
		optInt("connection_limit", n.ConnectionLimit),
		opt("valid_until", quoted(n.ValidUntil)),
		password,
	)
}

func explainCreateView(sb *strings.Builder, n *ast.CreateViewStmt, indent string, depth int) {
	children := 1 + count(len(n.Columns) > 0)
	header(sb, indent, children, "CreateViewQuery", n.Name,
		flag(n.OrReplace, "or_replace"),
		flag(n.Temporary, "temporary"),
		flag(n.Recursive, "recursive"),
	)
	if len(n.Columns) > 0 {
		identifierList(sb, "Columns", n.Columns, depth+1)
	}
	Node(sb, n.Query, depth+1)
}

func explainDropStmt(sb *strings.Builder, n *ast.DropStmt, indent string) {
	header(sb, indent, len(n.Names), "DropQuery", string(n.Object),
		flag(n.Concurrently, "concurrently"),
		flag(n.IfExists, "if_exists"),
		flag(n.Cascade, "cascade"),
		flag(n.Restrict, "restrict"),
	)
	for _, name := range n.Names {
		fmt.Fprintf(sb, "%s Identifier %s\n", indent, name)
	}
}

func explainAlterTableStmt(sb *strings.Builder, n *ast.AlterTableStmt, indent string, depth int) {
	header(sb, indent, len(n.Actions), "AlterTableQuery", n.Table, flag(n.IfExists, "if_exists"))
	for _, a := range n.Actions {
		explainAlterAction(sb, a, depth+1)
	}
}

func explainAlterAction(sb *strings.Builder, a ast.AlterAction, depth int) {
	indent := strings.Repeat(" ", depth)
	switch n := a.(type) {
	case *ast.AddColumnAction:
		header(sb, indent, 1, "AlterCommand ADD_COLUMN", flag(n.IfNotExists, "if_not_exists"))
		Column(sb, n.Column, depth+1)
	case *ast.AddConstraintAction:
		var name string
		if n.Name != nil {
			name = *n.Name
		}
		header(sb, indent, count(n.Constraint != nil), "AlterCommand ADD_CONSTRAINT", name,
			flag(n.NotNull, "not_null"),
			flag(n.Unique, "unique"),
			flag(n.PrimaryKey, "primary_key"),
		)
		if n.Constraint != nil {
			Constraint(sb, n.Constraint, depth+1)
		}
	case *ast.DropColumnAction:
		header(sb, indent, 0, "AlterCommand DROP_COLUMN", n.Column,
			flag(n.IfExists, "if_exists"), flag(n.Cascade, "cascade"))
	case *ast.DropConstraintAction:
		header(sb, indent, 0, "AlterCommand DROP_CONSTRAINT", n.Name,
			flag(n.IfExists, "if_exists"), flag(n.Cascade, "cascade"))
	case *ast.AlterColumnTypeAction:
		header(sb, indent, count(n.Using != nil), "AlterCommand ALTER_COLUMN_TYPE", n.Column,
			string(n.Type), opt("collate", n.Collation))
		if n.Using != nil {
			Node(sb, n.Using, depth+1)
		}
	case *ast.AlterColumnDefaultAction:
		if n.Drop {
			header(sb, indent, 0, "AlterCommand DROP_DEFAULT", n.Column)
			return
		}
		header(sb, indent, 1, "AlterCommand SET_DEFAULT", n.Column)
		Node(sb, n.Default, depth+1)
	case *ast.AlterColumnNotNullAction:
		kind := "DROP_NOT_NULL"
		if n.SetNotNull {
			kind = "SET_NOT_NULL"
		}
		header(sb, indent, 0, "AlterCommand "+kind, n.Column)
	case *ast.RenameColumnAction:
		header(sb, indent, 0, "AlterCommand RENAME_COLUMN", n.Old, "to", n.New)
	case *ast.RenameConstraintAction:
		header(sb, indent, 0, "AlterCommand RENAME_CONSTRAINT", n.Old, "to", n.New)
	case *ast.RenameTableAction:
		header(sb, indent, 0, "AlterCommand RENAME", "to", n.New)
	case *ast.SetSchemaAction:
		header(sb, indent, 0, "AlterCommand SET_SCHEMA", n.Schema)
	case *ast.OwnerToAction:
		header(sb, indent, 0, "AlterCommand OWNER_TO", n.Owner)
	default:
		fmt.Fprintf(sb, "%s%T\n", indent, a)
	}
}

func optInt(key string, v *int64) string {
	if v == nil {
		return ""
	}
	return key + "=" + strconv.FormatInt(*v, 10)
}

func quoted(v *string) *string {
	if v == nil {
		return nil
	}
	q := "'" + escapeStringLiteral(*v) + "'"
	return &q
}
