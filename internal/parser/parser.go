package parser

import (
	"slices"

	"nyanc/internal/ast"
	"nyanc/internal/diag"
	"nyanc/internal/source"
	"nyanc/internal/token"
)

// Env — всё, что парсеру нужно снаружи, кроме потока токенов и дерева.
type Env struct {
	File      source.FileID
	Reporter  diag.Reporter    // может быть nil — тогда ошибки не репортим
	Strings   *source.Interner // идентификаторы и литералы
	MaxErrors uint             // 0 — без ограничения
}

// Parser — состояние парсера на один файл
type Parser struct {
	ts       token.Stream
	tree     *ast.Tree
	env      Env
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
	consumed int         // сколько токенов съедено; нужен для гарантии прогресса
	errors   uint
	capped   bool
}

// Parse builds the module rooted in tree from ts. It never fails: syntax
// errors are reported through env.Reporter and the damaged regions become
// Bad nodes, so the returned module always exists.
func Parse(ts token.Stream, tree *ast.Tree, env Env) ast.ModuleID {
	if env.Strings == nil {
		env.Strings = tree.Strings
	}
	if env.Strings == nil {
		env.Strings = source.NewInterner()
	}
	if tree.Strings == nil {
		tree.Strings = env.Strings
	}
	p := Parser{
		ts:       ts,
		tree:     tree,
		env:      env,
		lastSpan: source.Span{File: env.File},
	}
	return p.parseModule()
}

// Frontend adapts Parse to the compilation database.
type Frontend struct{}

func (Frontend) Parse(ts token.Stream, tree *ast.Tree, env Env) ast.ModuleID {
	return Parse(ts, tree, env)
}

func (p *Parser) at(k token.Kind) bool {
	return p.ts.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.ts.Peek().Kind)
}

// parseModule — основной цикл верхнего уровня: пока не EOF — parseItem.
func (p *Parser) parseModule() ast.ModuleID {
	mod := p.tree.NewModule(source.Span{File: p.env.File})
	for !p.at(token.EOF) {
		start := p.ts.Peek().Span
		before := p.consumed
		itemID, ok := p.parseItem()
		if ok {
			p.tree.PushItem(mod, itemID)
			continue
		}
		p.resyncTop(before)
		p.tree.PushItem(mod, p.tree.Items.NewBad(p.spanFrom(start)))
	}
	eof := p.ts.Next()
	p.tree.Module(mod).Span = source.Span{File: p.env.File, Start: 0, End: eof.Span.End}
	return mod
}

// parseItem выбирает по первому токену нужный распознаватель top-level конструкции.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	switch p.ts.Peek().Kind {
	case token.KwImport:
		return p.parseImportItem()
	case token.KwLet:
		return p.parseLetItem()
	case token.KwFn:
		return p.parseFnItem(source.Span{}, false)
	case token.KwType:
		return p.parseTypeItem(source.Span{}, false)
	case token.KwPub:
		pub := p.advance()
		switch p.ts.Peek().Kind {
		case token.KwFn:
			return p.parseFnItem(pub.Span, true)
		case token.KwType:
			return p.parseTypeItem(pub.Span, true)
		}
		p.err(diag.SynUnexpectedToken, "expected 'fn' or 'type' after 'pub'")
		return ast.NoItemID, false
	case token.Invalid:
		// лексер уже отрепортил
		return ast.NoItemID, false
	default:
		p.report(diag.SynUnexpectedTopLevel, diag.SevError, p.ts.Peek().Span,
			"unexpected top-level construct "+describe(p.ts.Peek()))
		return ast.NoItemID, false
	}
}

// resyncTop — восстановление после ошибки на верхнем уровне: прокручиваем до
// ';' (съедаем) или до стартового токена следующего item. Хотя бы один токен
// будет съеден, если item не продвинулся.
func (p *Parser) resyncTop(before int) {
	if p.consumed == before && !p.at(token.EOF) {
		p.advance()
	}
	for !p.at(token.EOF) {
		if isTopLevelStarter(p.ts.Peek().Kind) {
			return
		}
		if p.advance().Kind == token.Semicolon {
			return
		}
	}
}

func isTopLevelStarter(k token.Kind) bool {
	switch k {
	case token.KwImport, token.KwLet, token.KwFn, token.KwType, token.KwPub:
		return true
	default:
		return false
	}
}
