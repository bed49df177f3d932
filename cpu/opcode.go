package cpu

import (
	"fmt"
	"strings"
)

// Operation is an instruction operation tag.
type Operation int

//go:generate go tool stringer -linecomment -type=Operation
const (
	OP_NOOP = Operation(0) // NOOP
	OP_IMM  = Operation(1) // IMM
	OP_MOV  = Operation(2) // MOV
	OP_ADD  = Operation(3) // ADD
	OP_ADDC = Operation(4) // ADDC
	OP_SHR  = Operation(5) // SHR
	OP_NOT  = Operation(6) // NOT
	OP_OUT  = Operation(7) // OUT
	OP_JMP  = Operation(8) // JMP
	OP_BIE  = Operation(9) // BIE
)

// Mode is the ALU addressing mode, selected by a one letter mnemonic prefix.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_NONE = Mode(0) // none
	MODE_S    = Mode(1) // S
	MODE_U    = Mode(2) // U
	MODE_X    = Mode(3) // X
)

// OperandKind is the type of an operand.
type OperandKind int

//go:generate go tool stringer -linecomment -type=OperandKind
const (
	KIND_NONE      = OperandKind(0) // none
	KIND_REGISTER  = OperandKind(1) // Register
	KIND_ADDRESS   = OperandKind(2) // MemoryAddress
	KIND_IMMEDIATE = OperandKind(3) // Immediate
	KIND_PORT      = OperandKind(4) // Port
)

// opMap maps mnemonics to operations.
var opMap = map[string]Operation{
	"NOOP": OP_NOOP,
	"NOP":  OP_NOOP,
	"IMM":  OP_IMM,
	"MOV":  OP_MOV,
	"ADD":  OP_ADD,
	"ADDC": OP_ADDC,
	"SHR":  OP_SHR,
	"NOT":  OP_NOT,
	"OUT":  OP_OUT,
	"JMP":  OP_JMP,
	"BIE":  OP_BIE,
}

// modeMap maps mnemonic prefix letters to addressing modes.
var modeMap = map[byte]Mode{
	'S': MODE_S,
	'U': MODE_U,
	'X': MODE_X,
}

// IsAlu returns true if the operation accepts an addressing mode prefix.
func (op Operation) IsAlu() bool {
	return op == OP_ADD || op == OP_ADDC
}

// Operands returns the operand kinds consumed by the operation for slots A and B.
// KIND_NONE marks a slot that takes no source operand; it is filled with Immediate(0).
func (op Operation) Operands(mode Mode) (a, b OperandKind) {
	switch op {
	case OP_NOOP:
		return KIND_NONE, KIND_NONE
	case OP_IMM:
		return KIND_REGISTER, KIND_IMMEDIATE
	case OP_MOV, OP_SHR, OP_NOT:
		return KIND_REGISTER, KIND_REGISTER
	case OP_ADD, OP_ADDC:
		switch mode {
		case MODE_NONE, MODE_S, MODE_U:
			return KIND_REGISTER, KIND_REGISTER
		case MODE_X:
			return KIND_NONE, KIND_REGISTER
		default:
			panic("unknown mode")
		}
	case OP_OUT:
		return KIND_PORT, KIND_REGISTER
	case OP_JMP, OP_BIE:
		return KIND_IMMEDIATE, KIND_NONE
	default:
		panic("unknown operation")
	}
}

// MarshalText renders the operation mnemonic.
func (op Operation) MarshalText() ([]byte, error) {
	return []byte(op.String()), nil
}

// Prefix returns the mnemonic prefix for the mode.
func (mode Mode) Prefix() string {
	if mode == MODE_NONE {
		return ""
	}
	return mode.String()
}

// sigil returns the assembler prefix for the operand kind.
func (kind OperandKind) sigil() string {
	switch kind {
	case KIND_NONE, KIND_IMMEDIATE:
		return ""
	case KIND_REGISTER:
		return "R"
	case KIND_ADDRESS:
		return "#"
	case KIND_PORT:
		return "%"
	default:
		panic("unknown operand kind")
	}
}

// Operand is an 8-bit value tagged with its kind.
type Operand struct {
	Kind  OperandKind
	Value uint8
}

// Register makes a register operand.
func Register(index uint8) Operand { return Operand{Kind: KIND_REGISTER, Value: index} }

// Address makes a memory address operand.
func Address(addr uint8) Operand { return Operand{Kind: KIND_ADDRESS, Value: addr} }

// Immediate makes an immediate operand.
func Immediate(value uint8) Operand { return Operand{Kind: KIND_IMMEDIATE, Value: value} }

// Port makes a port operand.
func Port(index uint8) Operand { return Operand{Kind: KIND_PORT, Value: index} }

// String returns the operand in assembler syntax.
func (o Operand) String() string {
	return fmt.Sprintf("%v%d", o.Kind.sigil(), o.Value)
}

// Instruction is a single decoded instruction.
type Instruction struct {
	Op   Operation
	Mode Mode
	A    Operand
	B    Operand
}

// NoOp returns the canonical no-op instruction used for padding and
// for the reset state of the pipeline registers.
func NoOp() Instruction {
	return Instruction{
		Op:   OP_NOOP,
		Mode: MODE_NONE,
		A:    Immediate(0),
		B:    Immediate(0),
	}
}

// String returns the assembly language representation of this instruction.
func (ins Instruction) String() string {
	words := []string{ins.Mode.Prefix() + ins.Op.String()}

	a, b := ins.Op.Operands(ins.Mode)
	if a != KIND_NONE {
		words = append(words, ins.A.String())
	}
	if b != KIND_NONE {
		words = append(words, ins.B.String())
	}

	return strings.Join(words, " ")
}

// MarshalText renders the instruction in assembler syntax.
func (ins Instruction) MarshalText() ([]byte, error) {
	return []byte(ins.String()), nil
}

// Code is the 32-bit ROM word encoding of an instruction.
//
//	[27:24] operation
//	[23:22] mode
//	[21:19] kind of A
//	[18:16] kind of B
//	[15:8]  value of A
//	[7:0]   value of B
type Code uint32

// Code encodes the instruction as a ROM word.
func (ins Instruction) Code() Code {
	return Code((uint32(ins.Op)&0xf)<<24 |
		(uint32(ins.Mode)&0x3)<<22 |
		(uint32(ins.A.Kind)&0x7)<<19 |
		(uint32(ins.B.Kind)&0x7)<<16 |
		uint32(ins.A.Value)<<8 |
		uint32(ins.B.Value))
}

// Instruction decodes a ROM word.
func (code Code) Instruction() (ins Instruction, err error) {
	if code>>28 != 0 {
		err = ErrOpcode(code)
		return
	}

	ins = Instruction{
		Op:   Operation((code >> 24) & 0xf),
		Mode: Mode((code >> 22) & 0x3),
		A:    Operand{Kind: OperandKind((code >> 19) & 0x7), Value: uint8(code >> 8)},
		B:    Operand{Kind: OperandKind((code >> 16) & 0x7), Value: uint8(code)},
	}

	if ins.Op > OP_BIE || ins.A.Kind > KIND_PORT || ins.B.Kind > KIND_PORT {
		err = ErrOpcode(code)
		return
	}

	if ins.Mode != MODE_NONE && !ins.Op.IsAlu() {
		err = ErrOpcode(code)
		return
	}

	return
}
