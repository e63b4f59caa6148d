package token

// Stream is a pull-based token source. After EOF it keeps returning EOF.
type Stream interface {
	Next() Token
	Peek() Token
}

// SliceStream replays a fixed token slice. A missing trailing EOF is implied.
type SliceStream struct {
	toks []Token
	pos  int
}

func NewSliceStream(toks []Token) *SliceStream {
	return &SliceStream{toks: toks}
}

func (s *SliceStream) Peek() Token {
	if s.pos < len(s.toks) {
		return s.toks[s.pos]
	}
	if n := len(s.toks); n > 0 {
		last := s.toks[n-1]
		return Token{Kind: EOF, Span: last.Span.At()}
	}
	return Token{Kind: EOF}
}

func (s *SliceStream) Next() Token {
	tok := s.Peek()
	if s.pos < len(s.toks) {
		s.pos++
	}
	return tok
}

// Collect drains s into a slice that ends with exactly one EOF token.
func Collect(s Stream) []Token {
	var out []Token
	for {
		tok := s.Next()
		out = append(out, tok)
		if tok.Kind == EOF {
			return out
		}
	}
}
