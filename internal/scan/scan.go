// Package scan provides tokenization of symbol-bearing text.
package scan

// symbolChars are the bytes that may appear in a mangled symbol name,
// beyond letters and digits.
const symbolChars = "_$."

// Token is a maximal run of either symbol bytes or other bytes.
type Token struct {
	Text   string
	Symbol bool
}

// Scanner splits text into symbol-shaped tokens and the separators
// between them. The concatenation of all tokens reproduces the input
// byte-for-byte.
type Scanner struct {
	data   string
	offset int
}

// NewScanner creates a Scanner over data.
func NewScanner(data string) *Scanner {
	return &Scanner{data: data}
}

// Offset returns the current read position.
func (s *Scanner) Offset() int {
	return s.offset
}

// Remaining returns the number of bytes left to scan.
func (s *Scanner) Remaining() int {
	if s.offset >= len(s.data) {
		return 0
	}
	return len(s.data) - s.offset
}

// Next returns the next token. ok is false once the input is
// exhausted.
func (s *Scanner) Next() (tok Token, ok bool) {
	if s.offset >= len(s.data) {
		return Token{}, false
	}

	start := s.offset
	symbol := isSymbolByte(s.data[start])
	for s.offset < len(s.data) && isSymbolByte(s.data[s.offset]) == symbol {
		s.offset++
	}
	return Token{Text: s.data[start:s.offset], Symbol: symbol}, true
}

func isSymbolByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z',
		c >= 'A' && c <= 'Z',
		c >= '0' && c <= '9':
		return true
	}
	for i := 0; i < len(symbolChars); i++ {
		if c == symbolChars[i] {
			return true
		}
	}
	return false
}
