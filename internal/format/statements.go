package format

import (
	"strconv"
	"strings"

	"github.com/sqlc-dev/fluxo/ast"
)

// formatSelect formats a SELECT query.
func formatSelect(sb *strings.Builder, q *ast.SelectStmt) {
	if q == nil {
		return
	}

	sb.WriteString("SELECT ")
	if q.Distinct {
		sb.WriteString("DISTINCT ")
	}
	writeExprList(sb, q.Projections)

	if len(q.From) > 0 {
		sb.WriteString(" FROM ")
		for i, t := range q.From {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(t.Name)
			if t.Alias != nil {
				sb.WriteString(" AS ")
				sb.WriteString(*t.Alias)
			}
		}
	}
	if q.Where != nil {
		sb.WriteString(" WHERE ")
		Expression(sb, q.Where)
	}
	if len(q.GroupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		writeExprList(sb, q.GroupBy)
	}
	if q.Having != nil {
		sb.WriteString(" HAVING ")
		Expression(sb, q.Having)
	}
	if len(q.OrderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		for i, o := range q.OrderBy {
			if i > 0 {
				sb.WriteString(", ")
			}
			Expression(sb, o.Expr)
			if o.Desc {
				sb.WriteString(" DESC")
			}
		}
	}
	if q.Limit != nil {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.FormatInt(*q.Limit, 10))
	}
	if q.Offset != nil {
		sb.WriteString(" OFFSET ")
		sb.WriteString(strconv.FormatInt(*q.Offset, 10))
	}
}

// formatInsert formats an INSERT ... VALUES query.
func formatInsert(sb *strings.Builder, q *ast.InsertStmt) {
	sb.WriteString("INSERT INTO ")
	sb.WriteString(q.Table)
	if len(q.Columns) > 0 {
		sb.WriteString(" ")
		writeParenList(sb, q.Columns)
	}
	sb.WriteString(" VALUES ")
	for i, row := range q.Rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		writeExprList(sb, row)
		sb.WriteString(")")
	}
}

// formatDrop formats a DROP query.
func formatDrop(sb *strings.Builder, q *ast.DropStmt) {
	sb.WriteString("DROP ")
	sb.WriteString(string(q.Object))
	if q.Concurrently {
		sb.WriteString(" CONCURRENTLY")
	}
	if q.IfExists {
		sb.WriteString(" IF EXISTS")
	}
	sb.WriteString(" ")
	writeList(sb, q.Names)
	switch {
	case q.Cascade:
		sb.WriteString(" CASCADE")
	case q.Restrict:
		sb.WriteString(" RESTRICT")
	}
}

// formatAlterTable formats ALTER TABLE with its action list.
func formatAlterTable(sb *strings.Builder, q *ast.AlterTableStmt) {
	sb.WriteString("ALTER TABLE ")
	if q.IfExists {
		sb.WriteString("IF EXISTS ")
	}
	sb.WriteString(q.Table)
	for i, a := range q.Actions {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(" ")
		formatAlterAction(sb, a)
	}
}

func formatAlterAction(sb *strings.Builder, a ast.AlterAction) {
	switch n := a.(type) {
	case *ast.AddColumnAction:
		sb.WriteString("ADD COLUMN ")
		if n.IfNotExists {
			sb.WriteString("IF NOT EXISTS ")
		}
		formatColumnDef(sb, n.Column)
	case *ast.AddConstraintAction:
		sb.WriteString("ADD")
		if n.Name != nil {
			sb.WriteString(" CONSTRAINT ")
			sb.WriteString(*n.Name)
		}
		if n.Constraint != nil {
			sb.WriteString(" ")
			formatConstraintBody(sb, n.Constraint)
			return
		}
		if n.NotNull {
			sb.WriteString(" NOT NULL")
		}
		if n.Unique {
			sb.WriteString(" UNIQUE")
		}
		if n.PrimaryKey {
			sb.WriteString(" PRIMARY KEY")
		}
	case *ast.DropColumnAction:
		sb.WriteString("DROP COLUMN ")
		if n.IfExists {
			sb.WriteString("IF EXISTS ")
		}
		sb.WriteString(n.Column)
		if n.Cascade {
			sb.WriteString(" CASCADE")
		}
	case *ast.DropConstraintAction:
		sb.WriteString("DROP CONSTRAINT ")
		if n.IfExists {
			sb.WriteString("IF EXISTS ")
		}
		sb.WriteString(n.Name)
		if n.Cascade {
			sb.WriteString(" CASCADE")
		}
	case *ast.AlterColumnTypeAction:
		sb.WriteString("ALTER COLUMN ")
		sb.WriteString(n.Column)
		sb.WriteString(" TYPE ")
		sb.WriteString(string(n.Type))
		if n.Using != nil {
			sb.WriteString(" USING ")
			Expression(sb, n.Using)
		}
		if n.Collation != nil {
			sb.WriteString(" COLLATE ")
			sb.WriteString(*n.Collation)
		}
	case *ast.AlterColumnDefaultAction:
		sb.WriteString("ALTER COLUMN ")
		sb.WriteString(n.Column)
		if n.Drop {
			sb.WriteString(" DROP DEFAULT")
			return
		}
		sb.WriteString(" SET DEFAULT ")
		Expression(sb, n.Default)
	case *ast.AlterColumnNotNullAction:
		sb.WriteString("ALTER COLUMN ")
		sb.WriteString(n.Column)
		if n.SetNotNull {
			sb.WriteString(" SET NOT NULL")
		} else {
			sb.WriteString(" DROP NOT NULL")
		}
	case *ast.RenameColumnAction:
		sb.WriteString("RENAME COLUMN " + n.Old + " TO " + n.New)
	case *ast.RenameConstraintAction:
		sb.WriteString("RENAME CONSTRAINT " + n.Old + " TO " + n.New)
	case *ast.RenameTableAction:
		sb.WriteString("RENAME TO " + n.New)
	case *ast.SetSchemaAction:
		sb.WriteString("SET SCHEMA " + n.Schema)
	case *ast.OwnerToAction:
		sb.WriteString("OWNER TO " + n.Owner)
	}
}
