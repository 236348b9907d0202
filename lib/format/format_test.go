package format

import (
	"errors"
	"testing"

	"github.com/vyPal/pasc/lib/ast"
	"github.com/vyPal/pasc/lib/parser"
)

func TestExpr(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"2+3*4", "2 + 3 * 4"},
		{"(2+3)*4", "(2 + 3) * 4"},
		{"8-(3-2)", "8 - (3 - 2)"},
		{"(8-3)-2", "8 - 3 - 2"},
		{"a*(b DIV c)", "a * (b DIV c)"},
		{"(a*b) DIV c", "a * b DIV c"},
		{"((x))", "x"},
		{"-(1+y)", "-(1 + y)"},
		{"-(a*b)", "-(a * b)"},
		{"-a*b", "-a * b"},
		{"- -5", "- -5"},
		{"+x", "+x"},
		{"2*-3", "2 * -3"},
		{"10 div 3", "10 DIV 3"},
		{"3.0", "3.0"},
		{"3.50", "3.5"},
		{"20 / 7 + 3.14", "20 / 7 + 3.14"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			e, err := parser.ParseExpr("", tt.input)
			if err != nil {
				t.Fatalf("ParseExpr(%q): %v", tt.input, err)
			}
			if got := Expr(e); got != tt.expected {
				t.Errorf("Expr(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestExprKeepsHandBuiltShape(t *testing.T) {
	// a - (b + c) cannot be written without parentheses
	e := &ast.BinOp{
		Left: &ast.Var{Name: "a"},
		Op:   ast.Minus,
		Right: &ast.BinOp{
			Left:  &ast.Var{Name: "b"},
			Op:    ast.Plus,
			Right: &ast.Var{Name: "c"},
		},
	}
	if got, want := Expr(e), "a - (b + c)"; got != want {
		t.Fatalf("Expr = %q, want %q", got, want)
	}

	back, err := parser.ParseExpr("", Expr(e))
	if err != nil {
		t.Fatal(err)
	}
	if !ast.Equal(e, back) {
		t.Errorf("reparsed tree differs")
	}
}

func TestProgram(t *testing.T) {
	input := `program demo; var x,y:integer; z : real;
procedure p; begin end;
begin x := -(1+y); begin z := x / 2 end; end.`

	expected := `PROGRAM demo;
VAR
  x, y : INTEGER;
  z : REAL;

PROCEDURE p;
BEGIN
END;

BEGIN
  x := -(1 + y);
  BEGIN
    z := x / 2
  END;
END.
`

	got, err := Source("", input)
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	if got != expected {
		t.Errorf("Source output:\n%s\nwant:\n%s", got, expected)
	}
}

func TestNestedProcedures(t *testing.T) {
	input := `PROGRAM Part12;
VAR a : INTEGER;
PROCEDURE P1;
VAR a : REAL; k : INTEGER;
   PROCEDURE P2;
   VAR a, z : INTEGER;
   BEGIN z := 777 END;
BEGIN END;
BEGIN a := 10 END.`

	expected := `PROGRAM Part12;
VAR
  a : INTEGER;

PROCEDURE P1;
VAR
  a : REAL;
  k : INTEGER;

  PROCEDURE P2;
  VAR
    a, z : INTEGER;

  BEGIN
    z := 777
  END;

BEGIN
END;

BEGIN
  a := 10
END.
`

	got, err := Source("", input)
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	if got != expected {
		t.Errorf("Source output:\n%s\nwant:\n%s", got, expected)
	}
}

func TestRoundTrip(t *testing.T) {
	programs := []string{
		"PROGRAM Empty; BEGIN END.",
		"PROGRAM P; BEGIN ; ; END.",
		"PROGRAM P; BEGIN a := 1; ; b := 2 END.",
		"PROGRAM P; BEGIN BEGIN END; BEGIN BEGIN x := 1 END END END.",
		"PROGRAM P; VAR BEGIN END.",
		`PROGRAM Part10;
VAR
   number     : INTEGER;
   a, b, c, x : INTEGER;
   y          : REAL;
BEGIN {Part10}
   BEGIN
      number := 2;
      a := number;
      b := 10 * a + 10 * number DIV 4;
      c := a - - b
   END;
   x := 11;
   y := 20 / 7 + 3.14;
   x := (x - (a - b)) * -(c DIV (2 * 3));
END.  {Part10}`,
		`PROGRAM Deep;
PROCEDURE A; PROCEDURE B; PROCEDURE C; BEGIN END; BEGIN END; BEGIN END;
PROCEDURE D; VAR q : REAL; BEGIN q := 1.5 / (2.0 - 0.25) END;
BEGIN END.`,
	}

	for _, src := range programs {
		first, err := parser.ParseString("", src)
		if err != nil {
			t.Fatalf("ParseString(%q): %v", src, err)
		}
		out := Program(first)

		second, err := parser.ParseString("", out)
		if err != nil {
			t.Fatalf("formatted output does not parse: %v\n%s", err, out)
		}
		if !ast.Equal(first, second) {
			t.Errorf("round trip changed the tree:\n%s", out)
		}
		if again := Program(second); again != out {
			t.Errorf("formatting is not idempotent:\n%s\nthen:\n%s", out, again)
		}
	}
}

func TestSourceError(t *testing.T) {
	_, err := Source("bad.pas", "PROGRAM P; BEGIN a := END.")
	var serr *parser.SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("Source error = %v, want *parser.SyntaxError", err)
	}
}
