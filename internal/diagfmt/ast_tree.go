package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"nyanc/internal/ast"
	"nyanc/internal/source"
)

type treeNode struct {
	label    string
	children []*treeNode
}

func (n *treeNode) add(label string, children ...*treeNode) *treeNode {
	child := &treeNode{label: label, children: children}
	n.children = append(n.children, child)
	return child
}

// treeBuilder собирает дерево меток по синтаксической арене одного файла.
type treeBuilder struct {
	tree *ast.Tree
	sm   *source.Manager
}

// FormatASTTree prints the module rooted at root as an indented tree.
// Spans are shown as line:col when sm is non-nil, as byte ranges otherwise.
func FormatASTTree(w io.Writer, tree *ast.Tree, root ast.ModuleID, sm *source.Manager) error {
	b := treeBuilder{tree: tree, sm: sm}
	var sb strings.Builder
	renderTree(&sb, b.module(root), "", true, true)
	_, err := io.WriteString(w, sb.String())
	return err
}

func (b treeBuilder) span(sp source.Span) string {
	if b.sm == nil {
		return fmt.Sprintf("%d..%d", sp.Start, sp.End)
	}
	start, end := b.sm.Resolve(sp)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

func (b treeBuilder) sym(s source.Symbol) string {
	if b.tree.Strings == nil {
		return fmt.Sprintf("#%d", s)
	}
	return b.tree.Strings.Lookup(s)
}

func (b treeBuilder) path(id ast.PathID) string {
	if b.tree.Strings == nil {
		return fmt.Sprintf("path#%d", id)
	}
	return strings.Join(b.tree.PathSegments(id, b.tree.Strings), "::")
}

func (b treeBuilder) module(id ast.ModuleID) *treeNode {
	mod := b.tree.Module(id)
	if mod == nil {
		return &treeNode{label: "Module <nil>"}
	}
	header := "Module"
	if b.sm != nil {
		if p, ok := b.sm.Path(b.tree.File); ok {
			header = p
		}
	}
	node := &treeNode{label: fmt.Sprintf("%s (span: %s)", header, b.span(mod.Span))}
	for _, item := range mod.Items {
		node.children = append(node.children, b.item(item))
	}
	return node
}

func (b treeBuilder) item(id ast.ItemID) *treeNode {
	it := b.tree.Items.Get(id)
	node := &treeNode{label: fmt.Sprintf("Item %s (span: %s)", it.Kind, b.span(it.Span))}
	switch it.Kind {
	case ast.ItemImport:
		imp, _ := b.tree.Items.Import(id)
		node.add("Module: " + b.path(imp.Path))
		if imp.Alias != source.NoSymbol {
			node.add("Alias: " + b.sym(imp.Alias))
		}
	case ast.ItemFn:
		fn, _ := b.tree.Items.Fn(id)
		node.add("Name: " + b.sym(fn.Name))
		if fn.Public {
			node.add("Public")
		}
		if len(fn.Params) > 0 {
			params := node.add("Params")
			for _, p := range fn.Params {
				params.add(b.sym(p.Name), b.typ(p.Type))
			}
		}
		if fn.Result.IsValid() {
			node.add("Result", b.typ(fn.Result))
		}
		node.children = append(node.children, b.stmt(fn.Body))
	case ast.ItemLet:
		let, _ := b.tree.Items.Let(id)
		b.let(node, let)
	case ast.ItemType:
		td, _ := b.tree.Items.TypeDecl(id)
		node.add("Name: " + b.sym(td.Name))
		if td.Public {
			node.add("Public")
		}
		node.add("Target", b.typ(td.Target))
	}
	return node
}

func (b treeBuilder) let(node *treeNode, let *ast.LetDecl) {
	node.add("Name: " + b.sym(let.Name))
	if let.Mut {
		node.add("Mutable")
	}
	if let.Type.IsValid() {
		node.add("Type", b.typ(let.Type))
	}
	node.add("Value", b.expr(let.Value))
}

func (b treeBuilder) typ(id ast.TypeID) *treeNode {
	ty := b.tree.Type(id)
	if ty == nil {
		return &treeNode{label: "<no type>"}
	}
	switch ty.Kind {
	case ast.TypePath:
		return &treeNode{label: "Type " + b.path(ty.Path)}
	case ast.TypeSlice, ast.TypeRef:
		return &treeNode{label: "Type " + ty.Kind.String(), children: []*treeNode{b.typ(ty.Elem)}}
	}
	return &treeNode{label: "Type Bad"}
}

func (b treeBuilder) stmt(id ast.StmtID) *treeNode {
	st := b.tree.Stmts.Get(id)
	if st == nil {
		return &treeNode{label: "<no stmt>"}
	}
	node := &treeNode{label: fmt.Sprintf("Stmt %s (span: %s)", st.Kind, b.span(st.Span))}
	switch st.Kind {
	case ast.StmtBlock:
		for _, child := range b.tree.Stmts.Block(id).Stmts {
			node.children = append(node.children, b.stmt(child))
		}
	case ast.StmtLet:
		b.let(node, b.tree.Stmts.Let(id))
	case ast.StmtExpr:
		node.children = append(node.children, b.expr(b.tree.Stmts.Expr(id).Expr))
	case ast.StmtAssign:
		as := b.tree.Stmts.Assign(id)
		node.add("Target", b.expr(as.Target))
		node.add("Value", b.expr(as.Value))
	case ast.StmtReturn:
		if v := b.tree.Stmts.Return(id).Value; v.IsValid() {
			node.children = append(node.children, b.expr(v))
		}
	case ast.StmtIf:
		s := b.tree.Stmts.If(id)
		node.add("Cond", b.expr(s.Cond))
		node.add("Then", b.stmt(s.Then))
		if s.Else.IsValid() {
			node.add("Else", b.stmt(s.Else))
		}
	case ast.StmtWhile:
		s := b.tree.Stmts.While(id)
		node.add("Cond", b.expr(s.Cond))
		node.children = append(node.children, b.stmt(s.Body))
	}
	return node
}

func (b treeBuilder) expr(id ast.ExprID) *treeNode {
	e := b.tree.Exprs.Get(id)
	if e == nil {
		return &treeNode{label: "<no expr>"}
	}
	label := "Expr " + e.Kind.String()
	node := &treeNode{}
	switch e.Kind {
	case ast.ExprPath:
		p, _ := b.tree.Exprs.Path(id)
		label += " " + b.path(p.Path)
	case ast.ExprLit:
		lit, _ := b.tree.Exprs.Literal(id)
		label += " " + b.sym(lit.Value)
	case ast.ExprBinary:
		bin, _ := b.tree.Exprs.Binary(id)
		label += " " + bin.Op.String()
		node.children = append(node.children, b.expr(bin.Left), b.expr(bin.Right))
	case ast.ExprUnary:
		un, _ := b.tree.Exprs.Unary(id)
		label += " " + un.Op.String()
		node.children = append(node.children, b.expr(un.Operand))
	case ast.ExprCall:
		call, _ := b.tree.Exprs.Call(id)
		node.add("Callee", b.expr(call.Callee))
		if len(call.Args) > 0 {
			args := node.add("Args")
			for _, a := range call.Args {
				args.children = append(args.children, b.expr(a))
			}
		}
	case ast.ExprMember:
		m, _ := b.tree.Exprs.Member(id)
		label += " ." + b.sym(m.Field)
		node.children = append(node.children, b.expr(m.Target))
	case ast.ExprIndex:
		ix, _ := b.tree.Exprs.Index(id)
		node.children = append(node.children, b.expr(ix.Target), b.expr(ix.Index))
	case ast.ExprGroup:
		g, _ := b.tree.Exprs.Group(id)
		node.children = append(node.children, b.expr(g.Inner))
	}
	node.label = fmt.Sprintf("%s (span: %s)", label, b.span(e.Span))
	return node
}

// renderTree печатает узел с ветками ├── / └── .
func renderTree(sb *strings.Builder, node *treeNode, prefix string, last, root bool) {
	switch {
	case root:
		sb.WriteString(node.label)
	case last:
		sb.WriteString(prefix + "└── " + node.label)
	default:
		sb.WriteString(prefix + "├── " + node.label)
	}
	sb.WriteByte('\n')

	childPrefix := prefix
	if !root {
		if last {
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
	}
	for i, child := range node.children {
		renderTree(sb, child, childPrefix, i == len(node.children)-1, false)
	}
}
