package token

import "github.com/dimelords/rtfdom/pkg/common"

// Scanner is a pure, position-advancing lexer over a loaded byte buffer.
// A given (buffer, position) pair always yields the same next Token and
// the same advanced position; the Scanner holds no other state.
type Scanner struct {
	buf []byte
	pos int
}

// New creates a Scanner over buf, starting at the beginning of the buffer.
func New(buf []byte) *Scanner {
	return &Scanner{buf: buf}
}

// Pos returns the current byte offset into the buffer.
func (s *Scanner) Pos() int { return s.pos }

// Next returns the next Token and advances the cursor past it.
func (s *Scanner) Next() (Token, error) {
	if s.pos >= len(s.buf) {
		return Token{Type: EOF}, nil
	}

	b := s.buf[s.pos]

	switch {
	case b == '{':
		s.pos++
		return Token{Type: OpenBrace}, nil
	case b == '}':
		s.pos++
		return Token{Type: CloseBrace}, nil
	case b == '\\':
		return s.scanControl()
	default:
		s.pos++
		return Token{Type: Character, Ch: b}, nil
	}
}

// scanControl lexes a control word or control symbol. s.pos is positioned
// at the leading backslash on entry.
func (s *Scanner) scanControl() (Token, error) {
	start := s.pos
	s.pos++ // consume '\'

	if s.pos >= len(s.buf) {
		return Token{}, common.Errorf("token", "scan", "", "unescaped '\\' at end of buffer")
	}

	b := s.buf[s.pos]

	switch {
	// \'HH -- an 8-bit ANSI escape, up to two hex digits.
	case b == '\'':
		s.pos++
		digits := 0
		for digits < 2 && s.pos < len(s.buf) && isHexDigit(s.buf[s.pos]) {
			s.pos++
			digits++
		}
		return Token{Type: Control, Raw: string(s.buf[start:s.pos])}, nil

	// Control word: an alphabetic run, optional signed integer parameter,
	// optional single trailing space delimiter (consumed, not retained).
	case isAlpha(b):
		wordStart := s.pos
		for s.pos < len(s.buf) && isAlpha(s.buf[s.pos]) {
			s.pos++
		}
		wordEnd := s.pos

		paramStart := s.pos
		if s.pos < len(s.buf) && (s.buf[s.pos] == '-' || isDigit(s.buf[s.pos])) {
			s.pos++
			for s.pos < len(s.buf) && isDigit(s.buf[s.pos]) {
				s.pos++
			}
		}
		paramEnd := s.pos

		raw := "\\" + string(s.buf[wordStart:wordEnd]) + string(s.buf[paramStart:paramEnd])

		if s.pos < len(s.buf) && s.buf[s.pos] == ' ' {
			s.pos++ // delimiter space: consumed, excluded from raw
		}

		return Token{Type: Control, Raw: raw}, nil

	// A backslash directly followed by whitespace is neither a control word
	// nor a recognized control symbol.
	case isSpace(b):
		return Token{}, common.Errorf("token", "scan", "", "unescaped '\\' before whitespace")

	// Control symbol: backslash plus exactly one more byte.
	default:
		s.pos++
		return Token{Type: Control, Raw: string(s.buf[start:s.pos])}, nil
	}
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
