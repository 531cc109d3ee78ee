// Package checker provides a static syntax check for Tarzan source
// using a Participle v2 grammar defined as Go structs with tags.
//
// The engine never parses ahead of its cursor, so the checker is a
// purely advisory pre-pass: it validates statement shapes and block
// balance and reports positions, but nothing in execution depends on it.
package checker

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Program is the top-level grammar node.
type Program struct {
	Statements []*Statement `@@*`
}

// Statement covers every Tarzan statement form.
type Statement struct {
	Num    *NumDecl    `  @@`
	If     *IfStmt     `| @@`
	While  *WhileStmt  `| @@`
	Def    *DefStmt    `| @@`
	Use    *UseStmt    `| @@`
	Print  *PrintStmt  `| @@`
	Assign *AssignStmt `| @@`
}

// NumDecl: num name = expr;
type NumDecl struct {
	Name  string `"num" @Ident`
	Value *Expr  `"=" @@ ";"`
}

// AssignStmt: name = expr;
type AssignStmt struct {
	Name  string `@Ident`
	Value *Expr  `"=" @@ ";"`
}

// PrintStmt: print expr — the engine ends the statement at the line
// break, so the semicolon is optional.
type PrintStmt struct {
	Value *Expr `"print" @@ ";"?`
}

// IfStmt: if (cond) { … } with optional else-if and else arms.
type IfStmt struct {
	Cond  *Cond   `"if" "(" @@ ")"`
	Then  *Block  `@@`
	Elifs []*Elif `@@*`
	Else  *Block  `("else" @@)?`
}

// Elif is one else-if arm.
type Elif struct {
	Cond *Cond  `"else" "if" "(" @@ ")"`
	Then *Block `@@`
}

// WhileStmt: while (cond) { … }
type WhileStmt struct {
	Cond *Cond  `"while" "(" @@ ")"`
	Body *Block `@@`
}

// DefStmt: def name { … }
type DefStmt struct {
	Name string `"def" @Ident`
	Body *Block `@@`
}

// UseStmt: use name
type UseStmt struct {
	Name string `"use" @Ident`
}

// Block is a braced statement list.
type Block struct {
	Statements []*Statement `"{" @@* "}"`
}

// Cond: expr comparator expr
type Cond struct {
	Left  *Expr  `@@`
	Op    string `@("==" | "<=" | ">=" | "<" | ">")`
	Right *Expr  `@@`
}

// Expr has the engine's two precedence tiers, left-associative.
type Expr struct {
	Head *Term       `@@`
	Tail []*ExprRest `@@*`
}

// ExprRest is one low-priority step.
type ExprRest struct {
	Op   string `@("+" | "-")`
	Term *Term  `@@`
}

// Term is a run of high-priority operations.
type Term struct {
	Head *Factor     `@@`
	Tail []*TermRest `@@*`
}

// TermRest is one high-priority step.
type TermRest struct {
	Op     string  `@("*" | "/")`
	Factor *Factor `@@`
}

// Factor is a literal, a variable or a parenthesised sub-expression.
type Factor struct {
	Neg    bool    `@"-"?`
	Number *string `( @Number`
	Ident  *string `| @Ident`
	Sub    *Expr   `| "(" @@ ")" )`
}

var tarzanLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "Number", Pattern: `[0-9]+(\.[0-9]+)?`},
	{Name: "Ident", Pattern: `[a-z_]+`},
	{Name: "Cmp", Pattern: `==|<=|>=|<|>`},
	{Name: "Punct", Pattern: `[-+*/=;(){}]`},
})

// Parser is the Tarzan syntax parser.
var Parser = participle.MustBuild[Program](
	participle.Lexer(tarzanLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(2),
)

// Parse parses Tarzan source into its grammar tree.
func Parse(filename string, src []byte) (*Program, error) {
	return Parser.ParseBytes(filename, src)
}

// Check validates source without executing it, returning the first
// syntax error with position information.
func Check(filename string, src []byte) error {
	_, err := Parser.ParseBytes(filename, src)
	return err
}
