package calculator

import "github.com/msto63/numerik/internal/calc"

// lineKind selects the scrollback style of a line
type lineKind int

const (
	kindInput lineKind = iota
	kindResult
	kindVoid
	kindError
	kindInfo
	kindLog
)

// line is one scrollback entry
type line struct {
	kind lineKind
	text string
}

// evaluatedMsg carries the outcome of an expression
type evaluatedMsg struct {
	expr   string
	result calc.Result
	err    error
}

// previewMsg carries the running value of the accumulator program
type previewMsg struct {
	added  int
	result calc.RunResult
	err    error
}

// committedMsg is sent after :end ran and journaled the program
type committedMsg struct {
	result calc.RunResult
	err    error
}
