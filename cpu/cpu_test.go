package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestCpu(t *testing.T, program ...string) (cpu *Cpu) {
	asm := &Assembler{}
	prog, err := asm.ParseLines(program)
	if err != nil {
		t.Fatalf("%v", err)
	}

	cpu = NewCpu(prog)

	return
}

func clockN(cpu *Cpu, n int) {
	for range n {
		cpu.Clock()
	}
}

func TestCpuReset(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu(nil)
	assert.Equal(uint8(0), cpu.Pc)
	assert.Equal(NoOp(), cpu.Fetch)
	assert.Equal(NoOp(), cpu.Decode)
	assert.Equal(NoOp(), cpu.Execute)
	assert.Equal(NoOp(), cpu.WriteBack)

	cpu = newTestCpu(t, "IMM R1 5", "OUT %1 R1", "SADD R1 R1")
	clockN(cpu, 6)
	assert.NotEqual(uint8(0), cpu.Register.Read(1))
	assert.NotEqual(uint8(0), cpu.Ports.ReadOut(1))

	cpu.Reset()
	assert.Equal(uint8(0), cpu.Pc)
	assert.Equal(0, cpu.Ticks)
	assert.Equal([REGISTER_COUNT]uint8{}, cpu.Register.Values())
	assert.Equal(uint8(0), cpu.Ports.ReadOut(1))
	assert.Equal(Alu{}, cpu.Alu)
	assert.Equal(NoOp(), cpu.WriteBack)

	// The program survives a reset.
	clockN(cpu, 4)
	assert.Equal(uint8(5), cpu.Register.Read(1))
}

func TestCpuStageOrder(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, "IMM R3 5", "MOV R4 R3")

	cpu.Clock()
	assert.Equal(OP_IMM, cpu.Fetch.Op)
	assert.Equal(OP_NOOP, cpu.Decode.Op)
	assert.Equal(OP_NOOP, cpu.Execute.Op)
	assert.Equal(uint8(1), cpu.Pc)

	cpu.Clock()
	assert.Equal(OP_MOV, cpu.Fetch.Op)
	assert.Equal(OP_IMM, cpu.Decode.Op)
	assert.Equal(OP_NOOP, cpu.Execute.Op)

	cpu.Clock()
	assert.Equal(OP_NOOP, cpu.Fetch.Op)
	assert.Equal(OP_MOV, cpu.Decode.Op)
	assert.Equal(OP_IMM, cpu.Execute.Op)
	assert.Equal(OP_NOOP, cpu.WriteBack.Op)
	assert.Equal(uint8(0), cpu.Register.Read(3))

	cpu.Clock()
	assert.Equal(OP_IMM, cpu.WriteBack.Op)
	assert.Equal(OP_MOV, cpu.Execute.Op)
	assert.Equal(uint8(5), cpu.Register.Read(3))
	assert.Equal(uint8(0), cpu.Register.Read(4))

	cpu.Clock()
	assert.Equal(uint8(5), cpu.Register.Read(4))
	assert.Equal(5, cpu.Ticks)
}

func TestCpuImmediateLatency(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, "IMM R3 5")
	clockN(cpu, 3)
	assert.Equal(uint8(0), cpu.Register.Read(3))

	cpu = newTestCpu(t, "IMM R3 5")
	clockN(cpu, 4)
	assert.Equal(uint8(5), cpu.Register.Read(3))
}

func TestCpuAdd(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name        string
		program     []string
		clocks      int
		accumulator uint8
		flags       Flags
	}){
		{"overflow", []string{"IMM R1 200", "IMM R2 100", "ADD R1 R2", "ADD R1 R2"}, 6,
			45, Flags{GreaterThan: true, OverFlow: true}},
		{"equal", []string{"IMM R1 5", "IMM R2 5", "ADD R1 R2"}, 5,
			10, Flags{Equals: true}},
		{"less", []string{"IMM R1 1", "IMM R2 2", "ADD R1 R2"}, 5,
			3, Flags{LessThan: true}},
		{"carry", []string{"IMM R1 1", "IMM R2 2", "ADDC R1 R2"}, 5,
			4, Flags{LessThan: true}},
		{"carry_overflow", []string{"IMM R1 255", "ADDC R1 R0"}, 4,
			1, Flags{GreaterThan: true, OverFlow: true}},
		{"not_alu", []string{"IMM R1 7", "MOV R1 R0"}, 4,
			0, Flags{GreaterThan: true}},
	}

	for _, entry := range table {
		cpu := newTestCpu(t, entry.program...)
		clockN(cpu, entry.clocks)
		assert.Equal(entry.accumulator, cpu.Alu.Accumulator, entry.name)
		assert.Equal(entry.flags, cpu.Alu.Flags, entry.name)
	}
}

func TestCpuAddWriteBack(t *testing.T) {
	assert := assert.New(t)

	// No prefix: flags and accumulator only.
	cpu := newTestCpu(t, "IMM R1 200", "IMM R2 100", "ADD R1 R2")
	clockN(cpu, 8)
	assert.Equal([REGISTER_COUNT]uint8{0, 200, 100}, cpu.Register.Values())

	// S: R[A] + R[B] into R[A]
	cpu = newTestCpu(t, "IMM R1 200", "IMM R2 100", "SADD R1 R2")
	clockN(cpu, 6)
	assert.Equal([REGISTER_COUNT]uint8{0, 45, 100}, cpu.Register.Values())

	// U: accumulator + R[B] into R[A]
	cpu = newTestCpu(t, "IMM R1 3", "IMM R2 4", "SADD R1 R2", "UADD R3 R2")
	clockN(cpu, 7)
	assert.Equal([REGISTER_COUNT]uint8{0, 7, 4, 11}, cpu.Register.Values())

	// X: accumulator + R[B], no write.
	cpu = newTestCpu(t, "IMM R1 3", "IMM R2 4", "SADD R1 R2", "XADD R2")
	clockN(cpu, 6)
	assert.Equal(uint8(11), cpu.Alu.Accumulator)
	cpu.Clock()
	assert.Equal([REGISTER_COUNT]uint8{0, 7, 4}, cpu.Register.Values())

	// UADDC
	cpu = newTestCpu(t, "IMM R1 3", "IMM R2 4", "SADD R1 R2", "UADDC R3 R2")
	clockN(cpu, 7)
	assert.Equal(uint8(12), cpu.Register.Read(3))
}

func TestCpuJump(t *testing.T) {
	assert := assert.New(t)

	program := make([]string, PROGRAM_SIZE)
	program[3] = "JMP 10"
	program[4] = "IMM R5 1"
	program[5] = "IMM R6 1"
	program[10] = "IMM R7 9"

	cpu := newTestCpu(t, program...)
	clockN(cpu, 6)
	assert.Equal(uint8(11), cpu.Pc)
	assert.Equal(Instruction{OP_IMM, MODE_NONE, Register(7), Immediate(9)}, cpu.Fetch)
	assert.Equal(OP_JMP, cpu.Execute.Op)

	clockN(cpu, 4)
	assert.Equal(uint8(1), cpu.Register.Read(5))
	assert.Equal(uint8(0), cpu.Register.Read(6))
	assert.Equal(uint8(9), cpu.Register.Read(7))

	// Jump to the last address wraps on increment.
	cpu = newTestCpu(t, "JMP 31")
	clockN(cpu, 3)
	assert.Equal(uint8(0), cpu.Pc)

	// Targets past the store restart at address 0.
	for _, target := range []string{"32", "33", "40", "200", "255"} {
		cpu = newTestCpu(t, "JMP "+target, "IMM R1 1")
		clockN(cpu, 3)
		assert.Equal(uint8(0), cpu.Pc, target)
		clockN(cpu, 1)
		assert.Equal(OP_JMP, cpu.Fetch.Op, target)
	}
}

func TestCpuPcWrap(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, "IMM R1 1")
	clockN(cpu, PROGRAM_SIZE-1)
	assert.Equal(uint8(PROGRAM_SIZE-1), cpu.Pc)
	cpu.Clock()
	assert.Equal(uint8(0), cpu.Pc)
	cpu.Clock()
	assert.Equal(uint8(1), cpu.Pc)
	assert.Equal(OP_IMM, cpu.Fetch.Op)
}

func TestCpuRegisterZero(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, "IMM R0 9", "MOV R1 R0", "SADD R0 R0", "IMM R9 9", "MOV R2 R9")
	clockN(cpu, 10)
	assert.Equal([REGISTER_COUNT]uint8{}, cpu.Register.Values())
}

func TestCpuOut(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, "IMM R1 42", "OUT %5 R1", "OUT %9 R1", "OUT %0 R0")
	clockN(cpu, 4)
	assert.Equal(uint8(0), cpu.Ports.ReadOut(5))
	cpu.Clock()
	assert.Equal(uint8(42), cpu.Ports.ReadOut(5))
	clockN(cpu, 2)
	assert.Equal([8]uint8{0, 0, 0, 0, 0, 42}, cpu.Ports.Out)
}

func TestCpuNoEffect(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, "IMM R1 5", "IMM R2 6", "BIE 20", "SHR R1 R2", "NOT R1 R2")
	clockN(cpu, 9)
	assert.Equal(uint8(9), cpu.Pc)
	assert.Equal([REGISTER_COUNT]uint8{0, 5, 6}, cpu.Register.Values())
}

func TestCpuString(t *testing.T) {
	assert := assert.New(t)

	cpu := newTestCpu(t, "IMM R1 5")
	cpu.Clock()

	text := cpu.String()
	assert.Contains(text, "   pc: 01\n")
	assert.Contains(text, "fetch: IMM R1 5\n")
	assert.Contains(text, "   r1: 00\n")
}
