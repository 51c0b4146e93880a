package explain

import (
	"fmt"
	"strings"

	"github.com/sqlc-dev/fluxo/ast"
)

func explainSelectStmt(sb *strings.Builder, n *ast.SelectStmt, indent string, depth int) {
	children := 1 + count(
		len(n.From) > 0,
		n.Where != nil,
		len(n.GroupBy) > 0,
		n.Having != nil,
		len(n.OrderBy) > 0,
		n.Limit != nil,
		n.Offset != nil,
	)
	header(sb, indent, children, "SelectQuery", flag(n.Distinct, "distinct"))

	ExpressionList(sb, n.Projections, depth+1)
	if len(n.From) > 0 {
		header(sb, indent+" ", len(n.From), "TablesInSelectQuery")
		for _, t := range n.From {
			Node(sb, t, depth+2)
		}
	}
	if n.Where != nil {
		header(sb, indent+" ", 1, "Where")
		Node(sb, n.Where, depth+2)
	}
	if len(n.GroupBy) > 0 {
		header(sb, indent+" ", 1, "GroupBy")
		ExpressionList(sb, n.GroupBy, depth+2)
	}
	if n.Having != nil {
		header(sb, indent+" ", 1, "Having")
		Node(sb, n.Having, depth+2)
	}
	if len(n.OrderBy) > 0 {
		header(sb, indent+" ", len(n.OrderBy), "OrderBy")
		for _, o := range n.OrderBy {
			Node(sb, o, depth+2)
		}
	}
	if n.Limit != nil {
		fmt.Fprintf(sb, "%s Limit %d\n", indent, *n.Limit)
	}
	if n.Offset != nil {
		fmt.Fprintf(sb, "%s Offset %d\n", indent, *n.Offset)
	}
}

func explainTableRef(sb *strings.Builder, n *ast.TableRef, indent string) {
	if n.Alias != nil {
		fmt.Fprintf(sb, "%sTableIdentifier %s (alias %s)\n", indent, n.Name, *n.Alias)
		return
	}
	fmt.Fprintf(sb, "%sTableIdentifier %s\n", indent, n.Name)
}

func explainOrderByItem(sb *strings.Builder, n *ast.OrderByItem, indent string, depth int) {
	dir := "ASC"
	if n.Desc {
		dir = "DESC"
	}
	header(sb, indent, 1, "OrderByElement", dir)
	Node(sb, n.Expr, depth+1)
}

func explainInsertStmt(sb *strings.Builder, n *ast.InsertStmt, indent string, depth int) {
	children := 2
	if len(n.Columns) > 0 {
		children++
	}
	header(sb, indent, children, "InsertQuery")
	fmt.Fprintf(sb, "%s Identifier %s\n", indent, n.Table)
	if len(n.Columns) > 0 {
		identifierList(sb, "Columns", n.Columns, depth+1)
	}
	header(sb, indent+" ", len(n.Rows), "Values")
	for _, row := range n.Rows {
		ExpressionList(sb, row, depth+2)
	}
}
