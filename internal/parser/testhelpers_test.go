package parser

import (
	"fmt"
	"strings"

	"nyanc/internal/ast"
	"nyanc/internal/diag"
	"nyanc/internal/lexer"
	"nyanc/internal/source"
)

type parsed struct {
	tree *ast.Tree
	mod  ast.ModuleID
	strs *source.Interner
	bag  *diag.Bag
}

func parseSource(input string) parsed {
	return parseSourceWith(input, 0)
}

func parseSourceWith(input string, maxErrors uint) parsed {
	const file = source.FileID(1)
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	strs := source.NewInterner()
	tree := ast.NewTree(file, ast.Hints{})
	ts := lexer.Frontend{}.Lex(file, input, rep)
	mod := Parse(ts, tree, Env{File: file, Reporter: rep, Strings: strs, MaxErrors: maxErrors})
	return parsed{tree: tree, mod: mod, strs: strs, bag: bag}
}

func (r parsed) items() []ast.ItemID {
	return r.tree.Module(r.mod).Items
}

func (r parsed) codes() []diag.Code {
	items := r.bag.Items()
	out := make([]diag.Code, len(items))
	for i, d := range items {
		out[i] = d.Code
	}
	return out
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

// exprString печатает выражение в s-форме, чтобы проверять приоритеты.
func (r parsed) exprString(id ast.ExprID) string {
	ex := r.tree.Exprs.Get(id)
	if ex == nil {
		return "<none>"
	}
	switch ex.Kind {
	case ast.ExprLit:
		lit, _ := r.tree.Exprs.Literal(id)
		return r.strs.Lookup(lit.Value)
	case ast.ExprPath:
		data, _ := r.tree.Exprs.Path(id)
		return strings.Join(r.tree.PathSegments(data.Path, r.strs), "::")
	case ast.ExprBinary:
		b, _ := r.tree.Exprs.Binary(id)
		return "(" + b.Op.String() + " " + r.exprString(b.Left) + " " + r.exprString(b.Right) + ")"
	case ast.ExprUnary:
		u, _ := r.tree.Exprs.Unary(id)
		return "(" + u.Op.String() + r.exprString(u.Operand) + ")"
	case ast.ExprCall:
		c, _ := r.tree.Exprs.Call(id)
		parts := []string{r.exprString(c.Callee)}
		for _, a := range c.Args {
			parts = append(parts, r.exprString(a))
		}
		return "call(" + strings.Join(parts, " ") + ")"
	case ast.ExprMember:
		m, _ := r.tree.Exprs.Member(id)
		return r.exprString(m.Target) + "." + r.strs.Lookup(m.Field)
	case ast.ExprIndex:
		ix, _ := r.tree.Exprs.Index(id)
		return r.exprString(ix.Target) + "[" + r.exprString(ix.Index) + "]"
	case ast.ExprGroup:
		g, _ := r.tree.Exprs.Group(id)
		return "{" + r.exprString(g.Inner) + "}"
	}
	return "<bad>"
}
