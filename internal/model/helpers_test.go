package model

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

func hclExpr(t *testing.T, src string) (hcl.Expression, hcl.Diagnostics) {
	t.Helper()
	return hclsyntax.ParseExpression([]byte(src), "expr.hcl", hcl.Pos{Line: 1, Column: 1})
}
