package explain

import (
	"fmt"
	"strings"

	"github.com/sqlc-dev/fluxo/ast"
)

// Column writes a column definition. Constraint flags are attributes,
// the DEFAULT expression is the only child.
func Column(sb *strings.Builder, col *ast.ColumnDef, depth int) {
	indent := strings.Repeat(" ", depth)
	children := count(col.Default != nil)
	header(sb, indent, children, "ColumnDeclaration", col.Name,
		FormatDataType(col.Type, col.Length),
		flag(col.NotNull, "not_null"),
		flag(col.PrimaryKey, "primary_key"),
		flag(col.Unique, "unique"),
	)
	if col.Default != nil {
		Node(sb, col.Default, depth+1)
	}
}

// Constraint writes a table constraint.
func Constraint(sb *strings.Builder, c *ast.TableConstraint, depth int) {
	indent := strings.Repeat(" ", depth)
	children := count(len(c.Columns) > 0, c.RefTable != nil, c.Check != nil)

	var attrs []string
	if c.Name != nil {
		attrs = append(attrs, *c.Name)
	}
	attrs = append(attrs, "("+string(c.Kind)+")")
	if c.Kind == ast.ConstraintForeignKey {
		attrs = append(attrs,
			"match="+c.Match.String(),
			"on_update="+c.OnUpdate.String(),
			"on_delete="+c.OnDelete.String(),
		)
	}
	header(sb, indent, children, "Constraint", attrs...)

	if len(c.Columns) > 0 {
		identifierList(sb, "Columns", c.Columns, depth+1)
	}
	if c.RefTable != nil {
		header(sb, indent+" ", len(c.RefColumns), "References", *c.RefTable)
		for _, col := range c.RefColumns {
			fmt.Fprintf(sb, "%s  Identifier %s\n", indent, col)
		}
	}
	if c.Check != nil {
		Node(sb, c.Check, depth+1)
	}
}

func explainIndexElem(sb *strings.Builder, n *ast.IndexElem, indent string, depth int) {
	var nulls string
	if n.NullsFirst != nil {
		nulls = "NULLS LAST"
		if *n.NullsFirst {
			nulls = "NULLS FIRST"
		}
	}
	attrs := []string{
		string(n.Direction),
		opt("collate", n.Collation),
		opt("opclass", n.OpClass),
		nulls,
	}
	if n.Column != nil {
		header(sb, indent, 0, "IndexElem", append([]string{*n.Column}, attrs...)...)
		return
	}
	header(sb, indent, 1, "IndexElem", attrs...)
	Node(sb, n.Expr, depth+1)
}
