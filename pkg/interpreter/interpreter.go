// Package interpreter implements the Tarzan execution engine.
//
// Tarzan has no lexer, parser or AST. The engine advances a single read
// cursor over the source bytes, recognising and executing one statement
// per step; loops and snippet insertions rewind the cursor instead of
// running an intermediate representation. The source buffer is the
// program representation, and the cursor is the only control flow.
package interpreter

import (
	"fmt"
	"io"
	"os"

	"github.com/tarzanLang/tarzan/pkg/number"
)

// jumpKind says what to do when the matching "}" of a block is reached.
type jumpKind byte

const (
	// skipElse swallows any else or else-if arms after a taken branch.
	skipElse jumpKind = iota + 1
	// returnTo rewinds the cursor: backward for while, forward for use.
	returnTo
)

// jump is pushed when a managed block is entered, one entry per open block.
type jump struct {
	kind  jumpKind
	index int
}

// Variable is a named Number tagged with the block level it was declared
// at. Variables live in an append-only sequence; lookup scans newest
// first, so inner-scope shadowing is automatic.
type Variable struct {
	Name  string
	Value number.Number
	Level int
}

// Snippet maps a name to the byte just past the "{" of its body.
type Snippet struct {
	Name string
	Body int
}

// Engine holds all interpreter state.
type Engine struct {
	src []byte
	pos int

	vars     []Variable
	snippets []Snippet
	jumps    []jump
	level    int

	// Output receives print lines and unknown-token notices (default: os.Stdout)
	Output io.Writer
}

// New creates an Engine over the given source bytes.
func New(src []byte) *Engine {
	return &Engine{src: src, Output: os.Stdout}
}

// Append extends the source buffer without touching the cursor; the REPL
// feeds input through here. Snippets and variables from earlier input
// stay live because the buffer is never discarded.
func (e *Engine) Append(src []byte) {
	e.src = append(e.src, src...)
}

// Resync abandons the rest of the buffer after a runtime error, so an
// interactive session can continue with fresh input.
func (e *Engine) Resync() {
	e.pos = len(e.src)
	e.jumps = e.jumps[:0]
	for len(e.vars) > 0 && e.vars[len(e.vars)-1].Level > 0 {
		e.vars = e.vars[:len(e.vars)-1]
	}
	e.level = 0
}

// Run executes statements until the cursor reaches the end of the buffer.
func (e *Engine) Run() error {
	for !e.atEOF() {
		if err := e.step(); err != nil {
			return err
		}
	}
	return nil
}

// --- cursor ---

func (e *Engine) atEOF() bool { return e.pos >= len(e.src) }

// peekToken reports whether the upcoming bytes match lit. This is the
// engine's only form of lookahead; it never consumes.
func (e *Engine) peekToken(lit string) bool {
	if e.pos+len(lit) > len(e.src) {
		return false
	}
	return string(e.src[e.pos:e.pos+len(lit)]) == lit
}

// --- skimming ---

// skipSpaces consumes spaces only; newlines are statement territory.
func (e *Engine) skipSpaces() {
	for e.peekToken(" ") {
		e.pos++
	}
}

// skipLine moves the cursor just past the next newline.
func (e *Engine) skipLine() {
	for !e.peekToken("\n") && !e.atEOF() {
		e.pos++
	}
	e.pos++
}

// enterBlock advances to the next "{" and steps past it.
func (e *Engine) enterBlock() {
	for !e.peekToken("{") && !e.atEOF() {
		e.pos++
	}
	e.pos++
}

// skipBlock steps past the matching "}" of the block the cursor is in,
// skipping nested blocks.
func (e *Engine) skipBlock() {
	depth := 1
	for depth > 0 && !e.atEOF() {
		if e.peekToken("{") {
			depth++
		} else if e.peekToken("}") {
			depth--
		}
		e.pos++
	}
}

// --- environment ---

// lookupVariable returns the index of the newest variable with the given
// name, or -1.
func (e *Engine) lookupVariable(name string) int {
	for i := len(e.vars) - 1; i >= 0; i-- {
		if e.vars[i].Name == name {
			return i
		}
	}
	return -1
}

// dropBlockVariables prunes variables declared at the closing block's
// level, then decrements the level. Inner blocks have already pruned
// themselves, so the current level's declarations sit contiguously at
// the tail.
func (e *Engine) dropBlockVariables() {
	for len(e.vars) > 0 && e.vars[len(e.vars)-1].Level == e.level {
		e.vars = e.vars[:len(e.vars)-1]
	}
	e.level--
}

// lookupSnippet returns the body offset of the named snippet, or -1.
// Last definition wins.
func (e *Engine) lookupSnippet(name string) int {
	for i := len(e.snippets) - 1; i >= 0; i-- {
		if e.snippets[i].Name == name {
			return e.snippets[i].Body
		}
	}
	return -1
}

// --- statements ---

// step recognises and executes one statement.
func (e *Engine) step() error {
	for e.peekToken(" ") || e.peekToken("\n") {
		e.pos++
	}
	switch {
	case e.atEOF():
		return nil
	case e.peekToken("}"):
		e.pos++
		e.closeBlock()
	case e.peekToken("while"):
		return e.whileStatement()
	case e.peekToken("if"):
		e.pos += 2
		return e.branch()
	case e.peekToken("else if"):
		e.pos += 7
		return e.branch()
	case e.peekToken("else"):
		e.pos += 4
		e.enterBlock()
		e.level++
	case e.peekToken("num"):
		e.pos += 3
		return e.declareVariable()
	case e.peekToken("use"):
		e.pos += 3
		return e.insertSnippet()
	case e.peekToken("def"):
		e.pos += 3
		e.defineSnippet()
	case e.peekToken("//"):
		e.skipLine()
	case e.peekToken("print"):
		e.pos += 6
		return e.printStatement()
	case e.src[e.pos] >= 'a' && e.src[e.pos] <= 'z':
		return e.assignVariable()
	default:
		fmt.Fprintf(e.Output, "Unknown token: %c\n", e.src[e.pos])
		e.pos++
	}
	return nil
}

// closeBlock handles "}". The popped jump decides whether to fall
// through past trailing else arms or to rewind the cursor. An else arm
// pushed nothing, so its "}" only prunes and falls through.
func (e *Engine) closeBlock() {
	if len(e.jumps) == 0 {
		if e.level > 0 {
			e.dropBlockVariables()
		}
		return
	}
	j := e.jumps[len(e.jumps)-1]
	e.jumps = e.jumps[:len(e.jumps)-1]
	e.dropBlockVariables()
	switch j.kind {
	case skipElse:
		e.skipSpaces()
		e.skipElses()
	case returnTo:
		e.pos = j.index
	}
}

// skipElses swallows else and else-if arms after a taken branch.
func (e *Engine) skipElses() {
	for e.peekToken("else") && !e.atEOF() {
		e.pos += 4
		e.enterBlock()
		e.skipBlock()
		e.skipSpaces()
	}
}

// whileStatement re-parses the loop head on every iteration: the closing
// "}" of a taken body rewinds the cursor to the "w" saved here.
func (e *Engine) whileStatement() error {
	head := e.pos
	e.pos += 5
	e.skipSpaces()
	e.pos++ // opening parenthesis
	taken, err := e.evaluateCondition()
	if err != nil {
		return err
	}
	if taken {
		e.jumps = append(e.jumps, jump{kind: returnTo, index: head})
		e.enterBlock()
		e.level++
	} else {
		e.enterBlock()
		e.skipBlock()
	}
	return nil
}

// branch handles if and else-if heads once the keyword is consumed.
func (e *Engine) branch() error {
	e.skipSpaces()
	e.pos++ // opening parenthesis
	taken, err := e.evaluateCondition()
	if err != nil {
		return err
	}
	if taken {
		e.jumps = append(e.jumps, jump{kind: skipElse})
		e.enterBlock()
		e.level++
	} else {
		e.enterBlock()
		e.skipBlock()
	}
	return nil
}

// declareVariable handles num: parse the name, evaluate the initialiser
// and append a variable at the current block level.
func (e *Engine) declareVariable() error {
	name := e.parseName()
	for e.peekToken(" ") || e.peekToken("=") {
		e.pos++
	}
	value, err := e.evaluateExpression()
	if err != nil {
		return err
	}
	e.pos++ // trailing ;
	e.vars = append(e.vars, Variable{Name: name, Value: value, Level: e.level})
	return nil
}

// assignVariable overwrites an existing variable in place; name and
// level are unchanged, so the innermost shadowing variable is updated.
func (e *Engine) assignVariable() error {
	name := e.parseName()
	i := e.lookupVariable(name)
	if i < 0 {
		return fmt.Errorf("variable %s not found", name)
	}
	for e.peekToken(" ") || e.peekToken("=") {
		e.pos++
	}
	value, err := e.evaluateExpression()
	if err != nil {
		return err
	}
	e.pos++ // trailing ;
	e.vars[i].Value = value
	return nil
}

// defineSnippet records where the body starts and skips it; the body
// only runs when a use statement jumps into it.
func (e *Engine) defineSnippet() {
	name := e.parseName()
	e.enterBlock()
	e.snippets = append(e.snippets, Snippet{Name: name, Body: e.pos})
	e.skipBlock()
}

// insertSnippet jumps into a snippet body, leaving a return marker just
// past the end of the use line.
func (e *Engine) insertSnippet() error {
	name := e.parseName()
	body := e.lookupSnippet(name)
	if body < 0 {
		return fmt.Errorf("snippet %s not found", name)
	}
	e.skipLine()
	e.jumps = append(e.jumps, jump{kind: returnTo, index: e.pos})
	e.pos = body
	e.level++
	return nil
}

// printStatement evaluates one expression and emits it as a line. The
// rest of the line is discarded.
func (e *Engine) printStatement() error {
	result, err := e.evaluateExpression()
	if err != nil {
		return err
	}
	fmt.Fprintln(e.Output, result)
	e.skipLine()
	return nil
}
