package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProgram(t *testing.T) {
	assert := assert.New(t)

	prog := NewProgram(nil)
	assert.Empty(prog.Opcodes)
	for _, ins := range prog.Instructions {
		assert.Equal(NoOp(), ins)
	}

	opcodes := make([]Opcode, PROGRAM_SIZE+4)
	for n := range opcodes {
		opcodes[n] = Opcode{LineNo: n * 2, Instruction: Instruction{OP_JMP, MODE_NONE, Immediate(uint8(n)), Immediate(0)}}
	}

	prog = NewProgram(opcodes)
	assert.Len(prog.Opcodes, PROGRAM_SIZE)
	assert.Equal(Immediate(PROGRAM_SIZE-1), prog.Instructions[PROGRAM_SIZE-1].A)

	// The program owns its listing.
	opcodes[0].LineNo = 99
	assert.Equal(0, prog.Opcodes[0].LineNo)
}

func TestProgramDebug(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.ParseLines([]string{
		"; start",
		"imm r1 1",
		"out %1 r1",
	})
	assert.NoError(err)

	op := prog.Debug(1)
	if assert.NotNil(op) {
		assert.Equal(1, op.LineNo)
		assert.Equal([]string{"IMM", "R1", "1"}, op.Words)
	}
	assert.Equal(2, prog.Debug(2).LineNo)
	assert.Nil(prog.Debug(3))
	assert.Nil(prog.Debug(200))
}

func TestProgramBinary(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.ParseLines([]string{
		"imm r1 200",
		"uaddc r2 r1",
		"xadd r1",
		"out %7 r2",
		"jmp 0",
	})
	assert.NoError(err)

	bins := prog.Binary()
	assert.Len(bins, PROGRAM_SIZE)
	assert.Equal(uint32(0x010B_01C8), bins[0])
	assert.Equal(uint32(NoOp().Code()), bins[PROGRAM_SIZE-1])

	decoded, err := ProgramFromBinary(bins[:5])
	assert.NoError(err)
	assert.Equal(prog.Instructions, decoded.Instructions)
	assert.Equal([]string{"UADDC", "R2", "R1"}, decoded.Opcodes[1].Words)
	assert.Equal(4, decoded.Debug(4).LineNo)

	_, err = ProgramFromBinary(make([]uint32, PROGRAM_SIZE+1))
	assert.ErrorIs(err, ErrProgramSize)

	_, err = ProgramFromBinary([]uint32{0xffff_ffff})
	assert.ErrorIs(err, ErrOpcode(0))
}

func TestProgramString(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.ParseLines([]string{"", "imm r1 5"})
	assert.NoError(err)

	lines := strings.Split(strings.TrimSuffix(prog.String(), "\n"), "\n")
	assert.Len(lines, PROGRAM_SIZE)
	assert.Equal("00: NOOP           ; line 0", lines[0])
	assert.Equal("01: IMM R1 5       ; line 1", lines[1])
	assert.Equal("02: NOOP           ; line -", lines[2])
}
