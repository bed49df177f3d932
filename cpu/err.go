package cpu

import (
	"errors"
	"strings"

	"github.com/ezrec/elt/translate"
)

var f = translate.From

var (
	// Program errors
	ErrProgramSize = errors.New(f("program too large"))

	// Assembler errors
	ErrOperandMissing     = errors.New(f("operand missing"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrOperandInvalid     = errors.New(f("operand invalid"))
	ErrOperandKind        = errors.New(f("operand kind mismatch"))
)

type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%08x", uint32(eo))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrSyntax locates an assembler diagnostic on a 0-based source line.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

// Message is the diagnostic text without its location.
func (err ErrSyntax) Message() string {
	return err.Err.Error()
}

type ErrMnemonic string

func (err ErrMnemonic) Error() string {
	return f("%q is not a valid instruction", string(err))
}

func (err ErrMnemonic) Unwrap() error {
	return ErrInstructionInvalid
}

type ErrModePrefix string

func (err ErrModePrefix) Error() string {
	return f("%q has a malformed ALU argument prefix", string(err))
}

func (err ErrModePrefix) Unwrap() error {
	return ErrInstructionInvalid
}

type ErrNotAlu Operation

func (err ErrNotAlu) Error() string {
	return f("%q does not take ALU arguments", Operation(err).String())
}

func (err ErrNotAlu) Unwrap() error {
	return ErrInstructionInvalid
}

type ErrParseOperand string

func (err ErrParseOperand) Error() string {
	return f("%q is not a valid operand", string(err))
}

func (err ErrParseOperand) Unwrap() error {
	return ErrOperandInvalid
}

// ErrParseExpression reports a $(...) operand that did not evaluate to a byte.
type ErrParseExpression struct {
	Expr string
	Err  error
}

func (err ErrParseExpression) Error() string {
	if err.Err != nil {
		return f("$(%v) is not a valid expression: %v", err.Expr, err.Err)
	}
	return f("$(%v) is not a valid expression", err.Expr)
}

func (err ErrParseExpression) Unwrap() error {
	return ErrOperandInvalid
}

// ErrMissingOperand reports a line that ran out of words; Slot is 0 for A, 1 for B.
type ErrMissingOperand struct {
	Op   Operation
	Slot int
}

func (err ErrMissingOperand) Error() string {
	return f("%v is missing operand %v", err.Op, slotName(err.Slot))
}

func (err ErrMissingOperand) Unwrap() error {
	return ErrOperandMissing
}

// ErrKindMismatch is the warning for an operand of an unexpected kind.
type ErrKindMismatch struct {
	Op       Operation
	Slot     int
	Expected OperandKind
	Actual   OperandKind
}

func (err ErrKindMismatch) Error() string {
	return f("%v takes a %v for operand %v, not a %v", err.Op, err.Expected, slotName(err.Slot), err.Actual)
}

func (err ErrKindMismatch) Unwrap() error {
	return ErrOperandKind
}

type ErrTooManyInstructions int

func (err ErrTooManyInstructions) Error() string {
	return f("too many lines of instruction (%d/%d)", int(err), PROGRAM_SIZE)
}

func (err ErrTooManyInstructions) Unwrap() error {
	return ErrProgramSize
}

// ErrAssembly is returned when any line failed to assemble.
type ErrAssembly struct {
	Errors []ErrSyntax
}

func (err *ErrAssembly) Error() string {
	lines := make([]string, len(err.Errors))
	for n, e := range err.Errors {
		lines[n] = e.Error()
	}
	return f("%d assembly errors: %v", len(err.Errors), strings.Join(lines, "; "))
}

func (err *ErrAssembly) Unwrap() []error {
	errs := make([]error, len(err.Errors))
	for n, e := range err.Errors {
		errs[n] = e
	}
	return errs
}

func slotName(slot int) string {
	if slot == 0 {
		return "A"
	}
	return "B"
}
