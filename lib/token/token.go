package token

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Kind classifies a token.
type Kind string

// Position is where a token starts in its source file.
type Position = lexer.Position

type Token struct {
	Kind Kind
	Text string  // source spelling; identifier name for ID
	Int  int64   // value of an INTEGER_CONST
	Real float64 // value of a REAL_CONST
	Pos  Position
}

func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "end of input"
	case ID, INTEGER_CONST, REAL_CONST:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	}
	return fmt.Sprintf("%q", string(t.Kind))
}

// Source produces tokens one at a time. After the EOF token has been
// returned the source must not be asked for more.
type Source interface {
	Next() (Token, error)
}

const (
	EOF Kind = "EOF"

	// Identifiers + literals
	ID            Kind = "ID"
	INTEGER_CONST Kind = "INTEGER_CONST"
	REAL_CONST    Kind = "REAL_CONST"

	// Operators
	ASSIGN      Kind = ":="
	PLUS        Kind = "+"
	MINUS       Kind = "-"
	MUL         Kind = "*"
	FLOAT_DIV   Kind = "/"
	INTEGER_DIV Kind = "DIV"

	// Delimiters
	LPAREN Kind = "("
	RPAREN Kind = ")"
	COMMA  Kind = ","
	COLON  Kind = ":"
	SEMI   Kind = ";"
	DOT    Kind = "."

	// Keywords
	PROGRAM   Kind = "PROGRAM"
	VAR       Kind = "VAR"
	PROCEDURE Kind = "PROCEDURE"
	BEGIN     Kind = "BEGIN"
	END       Kind = "END"
	INTEGER   Kind = "INTEGER"
	REAL      Kind = "REAL"
)

var keywords = map[string]Kind{
	"PROGRAM":   PROGRAM,
	"VAR":       VAR,
	"PROCEDURE": PROCEDURE,
	"BEGIN":     BEGIN,
	"END":       END,
	"INTEGER":   INTEGER,
	"REAL":      REAL,
	"DIV":       INTEGER_DIV,
}

// LookupIdent maps a word to its keyword kind, ignoring case, or to ID.
func LookupIdent(ident string) Kind {
	if k, ok := keywords[strings.ToUpper(ident)]; ok {
		return k
	}
	return ID
}

var punctuation = map[string]Kind{
	":=": ASSIGN,
	"+":  PLUS,
	"-":  MINUS,
	"*":  MUL,
	"/":  FLOAT_DIV,
	"(":  LPAREN,
	")":  RPAREN,
	",":  COMMA,
	":":  COLON,
	";":  SEMI,
	".":  DOT,
}

// LookupPunct maps an operator or delimiter spelling to its kind.
func LookupPunct(s string) (Kind, bool) {
	k, ok := punctuation[s]
	return k, ok
}

// FormatPos renders a position as file:line:col, or line:col when the
// source has no file name.
func FormatPos(p Position) string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}
