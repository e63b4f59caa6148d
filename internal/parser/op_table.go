package parser

import (
	"nyanc/internal/ast"
	"nyanc/internal/token"
)

// Таблица приоритетов для бинарных операторов.
// Чем больше число, тем выше приоритет; все левоассоциативные.
const (
	precLogicalOr      = 1 // ||
	precLogicalAnd     = 2 // &&
	precEquality       = 3 // == !=
	precComparison     = 4 // < <= > >=
	precAdditive       = 5 // + -
	precMultiplicative = 6 // * / %
)

// binaryOp возвращает приоритет и оператор; prec < 0 — не бинарный оператор.
func binaryOp(kind token.Kind) (int, ast.BinaryOp) {
	switch kind {
	case token.OrOr:
		return precLogicalOr, ast.OpOr
	case token.AndAnd:
		return precLogicalAnd, ast.OpAnd
	case token.EqEq:
		return precEquality, ast.OpEq
	case token.BangEq:
		return precEquality, ast.OpNe
	case token.Lt:
		return precComparison, ast.OpLt
	case token.LtEq:
		return precComparison, ast.OpLe
	case token.Gt:
		return precComparison, ast.OpGt
	case token.GtEq:
		return precComparison, ast.OpGe
	case token.Plus:
		return precAdditive, ast.OpAdd
	case token.Minus:
		return precAdditive, ast.OpSub
	case token.Star:
		return precMultiplicative, ast.OpMul
	case token.Slash:
		return precMultiplicative, ast.OpDiv
	case token.Percent:
		return precMultiplicative, ast.OpRem
	default:
		return -1, 0
	}
}
