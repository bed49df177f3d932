package cpu

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/elt/io"
)

// fuzzProgram builds a program from raw bytes, four bytes per instruction.
func fuzzProgram(raw []byte) (prog *Program) {
	var opcodes []Opcode
	for n := 0; n+4 <= len(raw) && len(opcodes) < PROGRAM_SIZE; n += 4 {
		op := Operation(raw[n] % uint8(OP_BIE+1))
		mode := MODE_NONE
		if op.IsAlu() {
			mode = Mode(raw[n+1] % 4)
		}
		ins := Instruction{
			Op:   op,
			Mode: mode,
			A:    Operand{Kind: OperandKind((raw[n+1] >> 4) % uint8(KIND_PORT+1)), Value: raw[n+2]},
			B:    Operand{Kind: KIND_REGISTER, Value: raw[n+3]},
		}
		opcodes = append(opcodes, Opcode{LineNo: len(opcodes), Instruction: ins})
	}

	prog = NewProgram(opcodes)

	return
}

func FuzzCpu(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{1, 0, 1, 200, 1, 0, 2, 100, 3, 1, 1, 2, 8, 0, 0, 0})
	f.Add([]byte{7, 0, 255, 255, 8, 0, 255, 0, 4, 3, 9, 9})
	f.Add(bytes.Repeat([]byte{0xff}, 4*PROGRAM_SIZE))

	f.Fuzz(func(t *testing.T, raw []byte) {
		assert := assert.New(t)

		prog := fuzzProgram(raw)
		cpu := NewCpu(prog)

		tape := &io.Tape{Output: &bytes.Buffer{}}
		cpu.Ports.SetChannel(0, tape)

		for range 3 * PROGRAM_SIZE {
			assert.NotPanics(cpu.Clock)
			assert.Less(cpu.Pc, uint8(PROGRAM_SIZE))
			assert.Equal(uint8(0), cpu.Register.Read(0))
		}

		assert.Equal(3*PROGRAM_SIZE, cpu.Ticks)
	})
}
