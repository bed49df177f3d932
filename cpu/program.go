package cpu

import (
	"fmt"
	"iter"
	"strings"
)

// Opcode is an assembled source line.
type Opcode struct {
	LineNo      int         `yaml:"line"`
	Words       []string    `yaml:"words,flow"`
	Instruction Instruction `yaml:"instruction"`
}

// Program is the instruction store. It always holds PROGRAM_SIZE instructions;
// Opcodes is the source listing for the leading, assembled part.
type Program struct {
	Instructions [PROGRAM_SIZE]Instruction `yaml:"-"`
	Opcodes      []Opcode                  `yaml:"opcodes"`
}

// NewProgram lays out opcodes from address 0, padding with no-ops.
// Opcodes past the end of the store are dropped.
func NewProgram(opcodes []Opcode) (prog *Program) {
	prog = &Program{}

	for n := range prog.Instructions {
		prog.Instructions[n] = NoOp()
	}

	if len(opcodes) > PROGRAM_SIZE {
		opcodes = opcodes[:PROGRAM_SIZE]
	}

	prog.Opcodes = make([]Opcode, len(opcodes))
	for n, op := range opcodes {
		prog.Opcodes[n] = op
		prog.Instructions[n] = op.Instruction
	}

	return
}

// ProgramFromBinary decodes a ROM image.
func ProgramFromBinary(bins []uint32) (prog *Program, err error) {
	if len(bins) > PROGRAM_SIZE {
		err = ErrTooManyInstructions(len(bins))
		return
	}

	opcodes := make([]Opcode, len(bins))
	for n, word := range bins {
		var ins Instruction
		ins, err = Code(word).Instruction()
		if err != nil {
			return
		}
		opcodes[n] = Opcode{LineNo: n, Words: strings.Fields(ins.String()), Instruction: ins}
	}

	prog = NewProgram(opcodes)

	return
}

// Debug returns the source line assembled at an address, or nil for padding.
func (prog *Program) Debug(pc uint8) (op *Opcode) {
	if int(pc) < len(prog.Opcodes) {
		op = &prog.Opcodes[pc]
	}

	return
}

// Binary encodes the whole store as ROM words.
func (prog *Program) Binary() (bins []uint32) {
	for _, ins := range prog.All() {
		bins = append(bins, uint32(ins.Code()))
	}

	return
}

// All iterates the store by address.
func (prog *Program) All() iter.Seq2[uint8, Instruction] {
	return func(yield func(pc uint8, ins Instruction) bool) {
		for n, ins := range prog.Instructions {
			if !yield(uint8(n), ins) {
				return
			}
		}
	}
}

// String returns the program listing.
func (prog *Program) String() string {
	var text strings.Builder
	for pc, ins := range prog.All() {
		line := "-"
		if op := prog.Debug(pc); op != nil {
			line = fmt.Sprintf("%d", op.LineNo)
		}
		fmt.Fprintf(&text, "%02d: %-14v ; line %v\n", pc, ins, line)
	}
	return text.String()
}
