package ast_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/sqlc-dev/fluxo/ast"
	"github.com/sqlc-dev/fluxo/token"
)

func TestLiteralMarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		lit  *ast.Literal
		want string
	}{
		{"integer", &ast.Literal{Type: ast.TypeInteger, Value: int64(42)}, `{"type":"INTEGER","value":42}`},
		{"text", &ast.Literal{Type: ast.TypeText, Value: "hi"}, `{"type":"TEXT","value":"hi"}`},
		{"null", &ast.Literal{Type: ast.TypeNull}, `{"type":"NULL","value":null}`},
		{"nan", &ast.Literal{Type: ast.TypeDouble, Value: math.NaN()}, `{"type":"DOUBLE","value":"NaN"}`},
		{"inf", &ast.Literal{Type: ast.TypeDouble, Value: math.Inf(1)}, `{"type":"DOUBLE","value":"+Inf"}`},
		{"neg inf", &ast.Literal{Type: ast.TypeDouble, Value: math.Inf(-1)}, `{"type":"DOUBLE","value":"-Inf"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.lit)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPositionsAreNotSerialized(t *testing.T) {
	ref := &ast.ColumnRef{Position: token.Position{Line: 3, Column: 7}, Name: "id"}
	got, err := json.Marshal(ref)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"name":"id"}` {
		t.Errorf("got %s", got)
	}
	if ref.Pos().Line != 3 || ref.End().Column != 7 {
		t.Errorf("Pos/End = %s/%s", ref.Pos(), ref.End())
	}
}

func TestForeignKeyCodes(t *testing.T) {
	c := &ast.TableConstraint{
		Kind:     ast.ConstraintForeignKey,
		Match:    ast.MatchPartial,
		OnUpdate: ast.ActionSetDefault,
		OnDelete: ast.ActionCascade,
	}
	got, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"kind":"FOREIGN KEY","match":"PARTIAL","on_update":"SET DEFAULT","on_delete":"CASCADE"}`
	if string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}

	for m, want := range map[ast.MatchType]string{
		ast.MatchSimple:  "SIMPLE",
		ast.MatchFull:    "FULL",
		ast.MatchPartial: "PARTIAL",
	} {
		if m.String() != want {
			t.Errorf("MatchType(%c) = %s, want %s", m, m, want)
		}
	}
	for a, want := range map[ast.RefAction]string{
		ast.ActionNoAction:   "NO ACTION",
		ast.ActionRestrict:   "RESTRICT",
		ast.ActionCascade:    "CASCADE",
		ast.ActionSetNull:    "SET NULL",
		ast.ActionSetDefault: "SET DEFAULT",
	} {
		if a.String() != want {
			t.Errorf("RefAction(%c) = %s, want %s", a, a, want)
		}
	}
}

func TestBinaryExprEnd(t *testing.T) {
	expr := &ast.BinaryExpr{
		Position: token.Position{Line: 1, Column: 3},
		Left:     &ast.Literal{Position: token.Position{Line: 1, Column: 1}, Type: ast.TypeInteger, Value: int64(1)},
		Op:       ast.OpPlus,
		Right:    &ast.Literal{Position: token.Position{Line: 1, Column: 5}, Type: ast.TypeInteger, Value: int64(2)},
	}
	if got := expr.End(); got.Column != 5 {
		t.Errorf("End = %s, want 1:5", got)
	}
}

// Compile-time checks that every statement kind sits in the right family.
var (
	_ ast.SchemaElement   = (*ast.CreateTableStmt)(nil)
	_ ast.SchemaElement   = (*ast.CreateIndexStmt)(nil)
	_ ast.SchemaElement   = (*ast.CreateViewStmt)(nil)
	_ ast.SchemaElement   = (*ast.CreateSequenceStmt)(nil)
	_ ast.SchemaElement   = (*ast.CreateTriggerStmt)(nil)
	_ ast.CreateStatement = (*ast.CreateSchemaStmt)(nil)
	_ ast.CreateStatement = (*ast.CreateCollationStmt)(nil)
	_ ast.CreateStatement = (*ast.CreateDatabaseStmt)(nil)
	_ ast.CreateStatement = (*ast.CreateRoleStmt)(nil)
	_ ast.Statement       = (*ast.SelectStmt)(nil)
	_ ast.Statement       = (*ast.InsertStmt)(nil)
	_ ast.Statement       = (*ast.DropStmt)(nil)
	_ ast.Statement       = (*ast.AlterTableStmt)(nil)

	_ ast.AlterAction = (*ast.AddColumnAction)(nil)
	_ ast.AlterAction = (*ast.AddConstraintAction)(nil)
	_ ast.AlterAction = (*ast.DropColumnAction)(nil)
	_ ast.AlterAction = (*ast.DropConstraintAction)(nil)
	_ ast.AlterAction = (*ast.AlterColumnTypeAction)(nil)
	_ ast.AlterAction = (*ast.AlterColumnDefaultAction)(nil)
	_ ast.AlterAction = (*ast.AlterColumnNotNullAction)(nil)
	_ ast.AlterAction = (*ast.RenameColumnAction)(nil)
	_ ast.AlterAction = (*ast.RenameConstraintAction)(nil)
	_ ast.AlterAction = (*ast.RenameTableAction)(nil)
	_ ast.AlterAction = (*ast.SetSchemaAction)(nil)
	_ ast.AlterAction = (*ast.OwnerToAction)(nil)

	_ ast.Expression = (*ast.ColumnRef)(nil)
	_ ast.Expression = (*ast.Literal)(nil)
	_ ast.Expression = (*ast.BinaryExpr)(nil)
	_ ast.Expression = (*ast.UnaryExpr)(nil)
	_ ast.Expression = (*ast.FunctionCall)(nil)
	_ ast.Expression = (*ast.CastExpr)(nil)
)
