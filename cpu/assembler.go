// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Assembler validates source text and lays it out into a Program.
//
// Every line is assembled independently; errors and warnings from all
// lines are collected before deciding whether a Program is produced.
type Assembler struct {
	Verbose bool         // If set, logs each assembled line.
	Strict  bool         // If set, more than PROGRAM_SIZE instructions is an error, not a warning.
	Logger  *slog.Logger // Destination for verbose logs; slog.Default() if nil.

	Opcode   []Opcode    // Assembled lines, in source order.
	Errors   []ErrSyntax // Fatal diagnostics from the last Parse.
	Warnings []ErrSyntax // Non-fatal diagnostics from the last Parse.

	predefine map[string]string // Predefines
	equate    map[string]string // Names visible to $(...) expressions.
}

// Predefine defines a name for $(...) expressions, or redefines an existing one.
// Names are stored upper-case.
func (asm *Assembler) Predefine(name string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{}
	}
	asm.predefine[strings.ToUpper(name)] = value
}

func (asm *Assembler) logger() *slog.Logger {
	if asm.Logger != nil {
		return asm.Logger
	}
	return slog.Default()
}

// Parse reads source lines from an input stream and assembles them.
// A read failure leaves no diagnostics from any earlier parse behind.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	var lines []string

	asm.reset()

	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	return asm.ParseLines(lines)
}

func (asm *Assembler) reset() {
	asm.Opcode = nil
	asm.Errors = nil
	asm.Warnings = nil
	asm.equate = maps.Clone(_cpu_defines)
	maps.Copy(asm.equate, asm.predefine)
}

// ParseLines assembles an ordered list of source lines.
// On any error no Program is returned, and err is an *ErrAssembly.
func (asm *Assembler) ParseLines(lines []string) (prog *Program, err error) {
	asm.reset()

	for lineno, text := range lines {
		var words []string
		var ins Instruction
		words, ins, err = asm.parseLine(text)
		if err != nil {
			asm.Errors = append(asm.Errors, ErrSyntax{LineNo: lineno, Line: text, Err: err})
			if asm.Verbose {
				asm.logger().Info("asm: error", "line", lineno, "text", text, "err", err)
			}
			continue
		}

		if asm.Verbose {
			asm.logger().Info("asm", "line", lineno, "text", text, "instruction", ins.String())
		}

		asm.Opcode = append(asm.Opcode, Opcode{LineNo: lineno, Words: words, Instruction: ins})

		for _, warn := range asm.checkKinds(ins) {
			asm.Warnings = append(asm.Warnings, ErrSyntax{LineNo: lineno, Line: text, Err: warn})
		}
	}
	err = nil

	if len(asm.Opcode) > PROGRAM_SIZE {
		diag := ErrSyntax{LineNo: PROGRAM_SIZE, Err: ErrTooManyInstructions(len(asm.Opcode))}
		if PROGRAM_SIZE < len(lines) {
			diag.Line = lines[PROGRAM_SIZE]
		}
		if asm.Strict {
			asm.Errors = append(asm.Errors, diag)
		} else {
			asm.Warnings = append(asm.Warnings, diag)
		}
	}

	if len(asm.Errors) != 0 {
		err = &ErrAssembly{Errors: slices.Clone(asm.Errors)}
		return
	}

	prog = NewProgram(asm.Opcode)

	return
}

// upperWord upper-cases a source word, up to any $(...) expression.
func upperWord(word string) string {
	if expr := strings.Index(word, "$("); expr >= 0 {
		return strings.ToUpper(word[:expr]) + word[expr:]
	}
	return strings.ToUpper(word)
}

// parseLine assembles a single line of source.
func (asm *Assembler) parseLine(text string) (words []string, ins Instruction, err error) {
	line := text
	if comment := strings.IndexByte(line, ';'); comment >= 0 {
		line = line[:comment]
	}

	words = strings.Fields(line)
	for n, word := range words {
		words[n] = upperWord(word)
	}

	ins = NoOp()
	if len(words) == 0 {
		return
	}

	ins.Op, ins.Mode, err = asm.parseOperation(words[0])
	if err != nil {
		return
	}

	args := words[1:]
	kinds := [2]OperandKind{}
	kinds[0], kinds[1] = ins.Op.Operands(ins.Mode)
	operands := [2](*Operand){&ins.A, &ins.B}
	for n, kind := range kinds {
		if kind == KIND_NONE {
			continue
		}
		if len(args) == 0 {
			err = ErrMissingOperand{Op: ins.Op, Slot: n}
			return
		}
		*operands[n], err = asm.parseOperand(args[0])
		if err != nil {
			return
		}
		args = args[1:]
	}

	return
}

// parseOperation resolves a mnemonic, with an optional ALU mode prefix letter.
// The whole word is tried first, so ADDC is never read as a prefixed DDC.
func (asm *Assembler) parseOperation(word string) (op Operation, mode Mode, err error) {
	op, ok := opMap[word]
	if ok {
		return
	}

	if len(word) > 1 {
		op, ok = opMap[word[1:]]
		if ok {
			if !op.IsAlu() {
				err = ErrNotAlu(op)
				return
			}
			mode, ok = modeMap[word[0]]
			if !ok {
				err = ErrModePrefix(word)
			}
			return
		}
	}

	err = ErrMnemonic(word)

	return
}

// parseOperand parses a single operand word.
func (asm *Assembler) parseOperand(word string) (operand Operand, err error) {
	value, perr := strconv.ParseUint(word, 10, 8)
	if perr == nil {
		operand = Immediate(uint8(value))
		return
	}

	var kind OperandKind
	switch word[0] {
	case 'R':
		kind = KIND_REGISTER
	case '#':
		kind = KIND_ADDRESS
	case '%':
		kind = KIND_PORT
	default:
		operand.Kind = KIND_IMMEDIATE
		operand.Value, err = asm.valueOf(word)
		if err != nil && !isExpression(word) {
			err = ErrParseOperand(word)
		}
		return
	}

	operand.Kind = kind
	operand.Value, err = asm.valueOf(word[1:])
	if err != nil && !isExpression(word[1:]) {
		err = ErrParseOperand(word)
	}

	return
}

func isExpression(word string) bool {
	return strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")")
}

// valueOf returns the value of a number: decimal, B-prefixed binary, or a $(...) expression.
func (asm *Assembler) valueOf(word string) (value uint8, err error) {
	if isExpression(word) {
		return asm.parenEval(word[2 : len(word)-1])
	}

	word = strings.ReplaceAll(word, "_", "")

	if !strings.HasPrefix(word, "B") {
		var v64 uint64
		v64, err = strconv.ParseUint(word, 10, 8)
		value = uint8(v64)
		return
	}

	var total uint
	for _, digit := range word[1:] {
		switch digit {
		case '0', '1':
			total = total<<1 | uint(digit-'0')
		default:
			err = strconv.ErrSyntax
			return
		}
		if total > 0xff {
			err = strconv.ErrRange
			return
		}
	}
	value = uint8(total)

	return
}

// parenEval does compile-time $(...) evaluations.
func (asm *Assembler) parenEval(expr string) (value uint8, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.equate {
		v64, perr := strconv.ParseInt(str, 0, 64)
		if perr != nil {
			// Only integer equates are visible.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression{Expr: expr, Err: err}
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression{Expr: expr}
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 < 0 || st_int64 > 0xff {
		err = ErrParseExpression{Expr: expr}
		return
	}
	value = uint8(st_int64)

	return
}

// checkKinds returns a warning for each operand whose kind is not the one the operation expects.
func (asm *Assembler) checkKinds(ins Instruction) (warnings []error) {
	expected := [2]OperandKind{}
	expected[0], expected[1] = ins.Op.Operands(ins.Mode)
	actual := [2]OperandKind{ins.A.Kind, ins.B.Kind}

	for n, kind := range expected {
		if kind == KIND_NONE || kind == actual[n] {
			continue
		}
		warnings = append(warnings, ErrKindMismatch{
			Op:       ins.Op,
			Slot:     n,
			Expected: kind,
			Actual:   actual[n],
		})
	}

	return
}
