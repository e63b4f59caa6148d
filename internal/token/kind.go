package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	KwFn     // fn
	KwLet    // let
	KwMut    // mut
	KwIf     // if
	KwElse   // else
	KwWhile  // while
	KwReturn // return
	KwImport // import
	KwAs     // as
	KwType   // type
	KwPub    // pub
	KwTrue   // true
	KwFalse  // false

	// NothingLit represents the nothing literal token.
	NothingLit
	// IntLit represents the integer literal token.
	IntLit
	// FloatLit represents the float literal token.
	FloatLit
	// StringLit represents the string literal token.
	StringLit

	Plus       // +
	Minus      // -
	Star       // *
	Slash      // /
	Percent    // %
	Assign     // =
	EqEq       // ==
	Bang       // !
	BangEq     // !=
	Lt         // <
	LtEq       // <=
	Gt         // >
	GtEq       // >=
	Amp        // &
	AndAnd     // &&
	OrOr       // ||
	Colon      // :
	ColonColon // ::
	Semicolon  // ;
	Comma      // ,
	Dot        // .
	Arrow      // ->
	LParen     // (
	RParen     // )
	LBrace     // {
	RBrace     // }
	LBracket   // [
	RBracket   // ]
)

var kindNames = [...]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Ident:      "Ident",
	KwFn:       "fn",
	KwLet:      "let",
	KwMut:      "mut",
	KwIf:       "if",
	KwElse:     "else",
	KwWhile:    "while",
	KwReturn:   "return",
	KwImport:   "import",
	KwAs:       "as",
	KwType:     "type",
	KwPub:      "pub",
	KwTrue:     "true",
	KwFalse:    "false",
	NothingLit: "nothing",
	IntLit:     "IntLit",
	FloatLit:   "FloatLit",
	StringLit:  "StringLit",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	Percent:    "%",
	Assign:     "=",
	EqEq:       "==",
	Bang:       "!",
	BangEq:     "!=",
	Lt:         "<",
	LtEq:       "<=",
	Gt:         ">",
	GtEq:       ">=",
	Amp:        "&",
	AndAnd:     "&&",
	OrOr:       "||",
	Colon:      ":",
	ColonColon: "::",
	Semicolon:  ";",
	Comma:      ",",
	Dot:        ".",
	Arrow:      "->",
	LParen:     "(",
	RParen:     ")",
	LBrace:     "{",
	RBrace:     "}",
	LBracket:   "[",
	RBracket:   "]",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
