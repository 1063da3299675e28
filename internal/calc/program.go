package calc

import (
	"fmt"
	"strconv"
	"strings"

	mdwerrors "github.com/msto63/numerik/foundation/core/errors"
	"github.com/msto63/numerik/foundation/utils/mathx"
)

// Instruction is one parsed accumulator step
type Instruction struct {
	Line int
	Op   string
	Args []string
	// set for div*, rdiv* and scale when given explicitly
	Scale *int32
	Mode  *mathx.RoundingMode
}

// Program is a parsed accumulator program
type Program struct {
	Text         string
	Origin       string
	Instructions []Instruction
}

type arity struct {
	min, max int
	divide   bool
}

var instructions = map[string]arity{
	"add":       {1, -1, false},
	"sub":       {1, -1, false},
	"mul":       {1, -1, false},
	"depercent": {1, -1, false},
	"div":       {1, 3, true},
	"divpct":    {1, 3, true},
	"rdiv":      {1, 3, true},
	"rdivpct":   {1, 3, true},
	"mod":       {1, 1, false},
	"rmod":      {1, 1, false},
	"neg":       {0, 0, false},
	"abs":       {0, 0, false},
	"scale":     {1, 2, false},
	"clear":     {0, 0, false},
}

// ParseProgram parses one instruction per line or ';'-separated statement.
// Blank statements and '#' comments are ignored. Operands stay text; an
// operand that does not parse as a number counts as void.
func ParseProgram(text string) (Program, error) {
	program := Program{Text: text}
	line := 0
	for _, raw := range strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == ';' }) {
		if i := strings.IndexByte(raw, '#'); i >= 0 {
			raw = raw[:i]
		}
		fields := strings.Fields(raw)
		if len(fields) == 0 {
			continue
		}
		line++
		inst, err := parseInstruction(line, fields)
		if err != nil {
			return Program{}, err
		}
		program.Instructions = append(program.Instructions, inst)
	}
	if len(program.Instructions) == 0 {
		return Program{}, mdwerrors.CalcInvalidProgram(0, "", "program is empty")
	}
	return program, nil
}

func parseInstruction(line int, fields []string) (Instruction, error) {
	op := strings.ToLower(fields[0])
	args := fields[1:]
	a, ok := instructions[op]
	if !ok {
		return Instruction{}, mdwerrors.CalcInvalidProgram(line, op, "unknown instruction")
	}
	if len(args) < a.min || (a.max >= 0 && len(args) > a.max) {
		return Instruction{}, mdwerrors.CalcInvalidProgram(line, op, arityText(a, len(args)))
	}

	inst := Instruction{Line: line, Op: op, Args: args}
	var tail []string
	switch {
	case a.divide:
		tail = args[1:]
		inst.Args = args[:1]
	case op == "scale":
		tail = args
		inst.Args = nil
	}
	if len(tail) > 0 {
		scale, err := strconv.ParseInt(tail[0], 10, 32)
		if err != nil || scale < 0 {
			return Instruction{}, mdwerrors.CalcInvalidProgram(line, op, fmt.Sprintf("invalid scale %q", tail[0]))
		}
		s := int32(scale)
		inst.Scale = &s
	}
	if len(tail) > 1 {
		mode, err := mathx.ParseRoundingMode(tail[1])
		if err != nil {
			return Instruction{}, mdwerrors.CalcInvalidProgram(line, op, fmt.Sprintf("invalid rounding mode %q", tail[1]))
		}
		inst.Mode = &mode
	}
	return inst, nil
}

func arityText(a arity, got int) string {
	switch {
	case a.max < 0:
		return fmt.Sprintf("needs at least %d operand(s), got %d", a.min, got)
	case a.min == a.max:
		return fmt.Sprintf("needs %d operand(s), got %d", a.min, got)
	default:
		return fmt.Sprintf("needs %d to %d operand(s), got %d", a.min, a.max, got)
	}
}

// String renders the program in canonical form, one instruction per line
func (p Program) String() string {
	var b strings.Builder
	for _, inst := range p.Instructions {
		b.WriteString(inst.Op)
		for _, arg := range inst.Args {
			b.WriteByte(' ')
			b.WriteString(arg)
		}
		if inst.Scale != nil {
			fmt.Fprintf(&b, " %d", *inst.Scale)
		}
		if inst.Mode != nil {
			b.WriteByte(' ')
			b.WriteString(inst.Mode.String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// execute applies the program to acc
func (p Program) execute(acc *mathx.Accumulator) {
	for _, inst := range p.Instructions {
		inst.apply(acc)
	}
}

func (inst Instruction) operands() []mathx.Source {
	return mathx.Texts(inst.Args...)
}

// divide runs plain when no scale or mode was given, so the log only records
// a scale change when the program asked for one
func (inst Instruction) divide(acc *mathx.Accumulator,
	plain func(mathx.Source) *mathx.Accumulator,
	with func(mathx.Source, int32, mathx.RoundingMode) *mathx.Accumulator,
) {
	operand := mathx.Text(inst.Args[0])
	if inst.Scale == nil {
		plain(operand)
		return
	}
	mode := acc.RoundingMode()
	if inst.Mode != nil {
		mode = *inst.Mode
	}
	with(operand, *inst.Scale, mode)
}

func (inst Instruction) apply(acc *mathx.Accumulator) {
	switch inst.Op {
	case "add":
		acc.Add(inst.operands()...)
	case "sub":
		acc.Subtract(inst.operands()...)
	case "mul":
		acc.Multiply(inst.operands()...)
	case "depercent":
		acc.MultiplyDepercent(inst.operands()...)
	case "div":
		inst.divide(acc, acc.Divide, acc.DivideWith)
	case "divpct":
		inst.divide(acc, acc.DividePercent, acc.DividePercentWith)
	case "rdiv":
		inst.divide(acc, acc.DivideAsDivisor, acc.DivideAsDivisorWith)
	case "rdivpct":
		inst.divide(acc, acc.DivideAsDivisorPercent, acc.DivideAsDivisorPercentWith)
	case "mod":
		acc.Mod(mathx.Text(inst.Args[0]))
	case "rmod":
		acc.ModAsDivisor(mathx.Text(inst.Args[0]))
	case "neg":
		acc.Negate()
	case "abs":
		acc.Absolute()
	case "scale":
		if inst.Mode != nil {
			acc.SetScaleWith(*inst.Scale, *inst.Mode)
		} else {
			acc.SetScale(*inst.Scale)
		}
	case "clear":
		acc.Clear()
	}
}
