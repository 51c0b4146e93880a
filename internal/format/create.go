package format

import (
	"strconv"
	"strings"

	"github.com/sqlc-dev/fluxo/ast"
)

func formatCreateTable(sb *strings.Builder, q *ast.CreateTableStmt) {
	sb.WriteString("CREATE ")
	if q.Temporary {
		sb.WriteString("TEMPORARY ")
	}
	sb.WriteString("TABLE ")
	if q.IfNotExists {
		sb.WriteString("IF NOT EXISTS ")
	}
	sb.WriteString(q.Name)
	sb.WriteString(" (")
	i := 0
	for _, col := range q.Columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		formatColumnDef(sb, col)
		i++
	}
	for _, c := range q.Constraints {
		if i > 0 {
			sb.WriteString(", ")
		}
		if c.Name != nil {
			sb.WriteString("CONSTRAINT ")
			sb.WriteString(*c.Name)
			sb.WriteString(" ")
		}
		formatConstraintBody(sb, c)
		i++
	}
	sb.WriteString(")")
	if q.Tablespace != nil {
		sb.WriteString(" TABLESPACE ")
		sb.WriteString(*q.Tablespace)
	}
}

// formatColumnDef writes name TYPE[(n)] followed by its constraints.
// DEFAULT goes last so that its expression ends at the list separator.
func formatColumnDef(sb *strings.Builder, col *ast.ColumnDef) {
	sb.WriteString(col.Name)
	sb.WriteString(" ")
	sb.WriteString(string(col.Type))
	if col.Length != nil {
		sb.WriteString("(")
		sb.WriteString(strconv.FormatInt(*col.Length, 10))
		sb.WriteString(")")
	}
	if col.NotNull {
		sb.WriteString(" NOT NULL")
	}
	if col.PrimaryKey {
		sb.WriteString(" PRIMARY KEY")
	}
	if col.Unique {
		sb.WriteString(" UNIQUE")
	}
	if col.Default != nil {
		sb.WriteString(" DEFAULT ")
		Expression(sb, col.Default)
	}
}

// formatConstraintBody writes a table constraint without its name.
func formatConstraintBody(sb *strings.Builder, c *ast.TableConstraint) {
	switch c.Kind {
	case ast.ConstraintPrimaryKey, ast.ConstraintUnique:
		sb.WriteString(string(c.Kind))
		sb.WriteString(" ")
		writeParenList(sb, c.Columns)
	case ast.ConstraintForeignKey:
		sb.WriteString("FOREIGN KEY ")
		writeParenList(sb, c.Columns)
		if c.RefTable != nil {
			sb.WriteString(" REFERENCES ")
			sb.WriteString(*c.RefTable)
			sb.WriteString(" ")
			writeParenList(sb, c.RefColumns)
		}
		if c.Match != ast.MatchSimple {
			sb.WriteString(" MATCH ")
			sb.WriteString(c.Match.String())
		}
		if c.OnUpdate != ast.ActionNoAction {
			sb.WriteString(" ON UPDATE ")
			sb.WriteString(c.OnUpdate.String())
		}
		if c.OnDelete != ast.ActionNoAction {
			sb.WriteString(" ON DELETE ")
			sb.WriteString(c.OnDelete.String())
		}
	case ast.ConstraintCheck:
		sb.WriteString("CHECK (")
		Expression(sb, c.Check)
		sb.WriteString(")")
	}
}

func formatCreateIndex(sb *strings.Builder, q *ast.CreateIndexStmt) {
	sb.WriteString("CREATE ")
	if q.Unique {
		sb.WriteString("UNIQUE ")
	}
	sb.WriteString("INDEX ")
	if q.Concurrently {
		sb.WriteString("CONCURRENTLY ")
	}
	if q.IfNotExists {
		sb.WriteString("IF NOT EXISTS ")
	}
	sb.WriteString(q.Name)
	sb.WriteString(" ON ")
	if q.Only {
		sb.WriteString("ONLY ")
	}
	sb.WriteString(q.Table)
	if q.Method != nil {
		sb.WriteString(" USING ")
		sb.WriteString(*q.Method)
	}
	sb.WriteString(" (")
	for i, p := range q.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		formatIndexElem(sb, p)
	}
	sb.WriteString(")")
	if q.Where != nil {
		sb.WriteString(" WHERE ")
		Expression(sb, q.Where)
	}
	if q.Tablespace != nil {
		sb.WriteString(" TABLESPACE ")
		sb.WriteString(*q.Tablespace)
	}
}

func formatIndexElem(sb *strings.Builder, e *ast.IndexElem) {
	if e.Column != nil {
		sb.WriteString(*e.Column)
	} else {
		Expression(sb, e.Expr)
	}
	if e.Collation != nil {
		sb.WriteString(" COLLATE ")
		sb.WriteString(*e.Collation)
	}
	if e.OpClass != nil {
		sb.WriteString(" ")
		sb.WriteString(*e.OpClass)
	}
	if e.Direction == ast.Desc {
		sb.WriteString(" DESC")
	}
	if e.NullsFirst != nil {
		if *e.NullsFirst {
			sb.WriteString(" NULLS FIRST")
		} else {
			sb.WriteString(" NULLS LAST")
		}
	}
}

func formatCreateTrigger(sb *strings.Builder, q *ast.CreateTriggerStmt) {
	sb.WriteString("CREATE ")
	if q.OrReplace {
		sb.WriteString("OR REPLACE ")
	}
	sb.WriteString("TRIGGER ")
	sb.WriteString(q.Name)
	sb.WriteString(" ")
	sb.WriteString(string(q.Timing))
	updateOf := q.UpdateOf
	for i, ev := range q.Events {
		if i > 0 {
			sb.WriteString(" OR")
		}
		sb.WriteString(" ")
		sb.WriteString(string(ev))
		// All OF columns are attached to the first UPDATE event
		if ev == ast.EventUpdate && len(updateOf) > 0 {
			sb.WriteString(" OF ")
			writeList(sb, updateOf)
			updateOf = nil
		}
	}
	if q.ForEach == ast.ForEachRow {
		sb.WriteString(" FOR EACH ROW")
	}
	if q.When != nil {
		sb.WriteString(" WHEN (")
		Expression(sb, q.When)
		sb.WriteString(")")
	}
	sb.WriteString(" ON ")
	sb.WriteString(q.Table)
	sb.WriteString(" EXECUTE FUNCTION ")
	sb.WriteString(q.Function)
	sb.WriteString("(")
	writeExprList(sb, q.Args)
	sb.WriteString(")")
}

func formatCreateSequence(sb *strings.Builder, q *ast.CreateSequenceStmt) {
	sb.WriteString("CREATE ")
	if q.Temporary {
		sb.WriteString("TEMPORARY ")
	}
	sb.WriteString("SEQUENCE ")
	if q.IfNotExists {
		sb.WriteString("IF NOT EXISTS ")
	}
	sb.WriteString(q.Name)
	if q.Increment != 1 {
		sb.WriteString(" INCREMENT BY ")
		sb.WriteString(strconv.FormatInt(q.Increment, 10))
	}
	if q.MinValue != nil {
		sb.WriteString(" MINVALUE ")
		sb.WriteString(strconv.FormatInt(*q.MinValue, 10))
	}
	if q.MaxValue != nil {
		sb.WriteString(" MAXVALUE ")
		sb.WriteString(strconv.FormatInt(*q.MaxValue, 10))
	}
	if q.Start != 1 {
		sb.WriteString(" START WITH ")
		sb.WriteString(strconv.FormatInt(q.Start, 10))
	}
	if q.Cache != nil {
		sb.WriteString(" CACHE ")
		sb.WriteString(strconv.FormatInt(*q.Cache, 10))
	}
	if q.Cycle {
		sb.WriteString(" CYCLE")
	}
	if q.OwnedBy != nil {
		sb.WriteString(" OWNED BY ")
		sb.WriteString(q.OwnedBy.Table + "." + q.OwnedBy.Column)
	}
}

func formatCreateSchema(sb *strings.Builder, q *ast.CreateSchemaStmt) {
	sb.WriteString("CREATE SCHEMA ")
	if q.IfNotExists {
		sb.WriteString("IF NOT EXISTS ")
	}
	sb.WriteString(q.Name)
	if q.Authorization != nil {
		sb.WriteString(" AUTHORIZATION ")
		sb.WriteString(*q.Authorization)
	}
	for _, e := range q.Elements {
		sb.WriteString(" ")
		Statement(sb, e)
	}
}

func formatCreateCollation(sb *strings.Builder, q *ast.CreateCollationStmt) {
	sb.WriteString("CREATE COLLATION ")
	if q.IfNotExists {
		sb.WriteString("IF NOT EXISTS ")
	}
	sb.WriteString(q.Name)
	if q.From != nil {
		sb.WriteString(" FROM ")
		sb.WriteString(*q.From)
		return
	}
	var opts []string
	if q.Locale != nil {
		opts = append(opts, "LOCALE = "+quote(*q.Locale))
	}
	if q.Provider != nil {
		opts = append(opts, "PROVIDER = "+quote(*q.Provider))
	}
	opts = append(opts, "DETERMINISTIC = "+strings.ToUpper(strconv.FormatBool(q.Deterministic)))
	if q.Rules != nil {
		opts = append(opts, "RULES = "+quote(*q.Rules))
	}
	if q.Version != nil {
		opts = append(opts, "VERSION = "+quote(*q.Version))
	}
	sb.WriteString(" ")
	writeParenList(sb, opts)
}

func formatCreateDatabase(sb *strings.Builder, q *ast.CreateDatabaseStmt) {
	sb.WriteString("CREATE DATABASE ")
	if q.IfNotExists {
		sb.WriteString("IF NOT EXISTS ")
	}
	sb.WriteString(q.Name)

	var opts []string
	if q.Owner != ast.DefaultDatabaseOwner {
		opts = append(opts, "OWNER = "+q.Owner)
	}
	if q.Encoding != ast.DefaultDatabaseEncoding {
		opts = append(opts, "ENCODING = "+quote(q.Encoding))
	}
	if q.Tablespace != ast.DefaultDatabaseTablespace {
		opts = append(opts, "TABLESPACE = "+q.Tablespace)
	}
	if !q.AllowConnections {
		opts = append(opts, "ALLOW_CONNECTIONS = FALSE")
	}
	if q.ConnectionLimit != ast.UnlimitedConnections {
		opts = append(opts, "CONNECTION_LIMIT = "+strconv.FormatInt(q.ConnectionLimit, 10))
	}
	if len(opts) > 0 {
		sb.WriteString(" WITH ")
		writeParenList(sb, opts)
	}
}

func formatCreateRole(sb *strings.Builder, q *ast.CreateRoleStmt) {
	sb.WriteString("CREATE ")
	if q.IsUser {
		sb.WriteString("USER ")
	} else {
		sb.WriteString("ROLE ")
	}
	if q.IfNotExists {
		sb.WriteString("IF NOT EXISTS ")
	}
	sb.WriteString(q.Name)

	var opts []string
	if q.Superuser {
		opts = append(opts, "SUPERUSER")
	}
	if q.CreateDB {
		opts = append(opts, "CREATEDB")
	}
	if q.CreateRole {
		opts = append(opts, "CREATEROLE")
	}
	if !q.Inherit {
		opts = append(opts, "NOINHERIT")
	}
	// A user logs in unless told otherwise, a role does not
	switch {
	case q.Login && !q.IsUser:
		opts = append(opts, "LOGIN")
	case !q.Login && q.IsUser:
		opts = append(opts, "NOLOGIN")
	}
	if q.ConnectionLimit != nil {
		opts = append(opts, "CONNECTION LIMIT "+strconv.FormatInt(*q.ConnectionLimit, 10))
	}
	if q.ValidUntil != nil {
		opts = append(opts, "VALID UNTIL "+quote(*q.ValidUntil))
	}
	if q.Password != nil {
		opts = append(opts, "PASSWORD "+quote(*q.Password))
	}
	if len(opts) > 0 {
		sb.WriteString(" WITH ")
		sb.WriteString(strings.Join(opts, " "))
	}
}

func formatCreateView(sb *strings.Builder, q *ast.CreateViewStmt) {
	sb.WriteString("CREATE ")
	if q.OrReplace {
		sb.WriteString("OR REPLACE ")
	}
	if q.Temporary {
		sb.WriteString("TEMPORARY ")
	}
	if q.Recursive {
		sb.WriteString("RECURSIVE ")
	}
	sb.WriteString("VIEW ")
	sb.WriteString(q.Name)
	if len(q.Columns) > 0 {
		sb.WriteString(" ")
		writeParenList(sb, q.Columns)
	}
	sb.WriteString(" AS ")
	formatSelect(sb, q.Query)
}
