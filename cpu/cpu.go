// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"iter"
	"log/slog"
	"maps"

	"github.com/ezrec/elt/io"
)

const (
	ADDRESS_BITS = 5                 // Width of the program counter.
	PROGRAM_SIZE = 1 << ADDRESS_BITS // Instructions in the program store.
)

var _cpu_defines = map[string]string{
	"ADDRESS_BITS":   fmt.Sprintf("%v", ADDRESS_BITS),
	"PROGRAM_SIZE":   fmt.Sprintf("%v", PROGRAM_SIZE),
	"REGISTER_COUNT": fmt.Sprintf("%v", REGISTER_COUNT),
}

// Cpu is the four stage pipelined processor: fetch, decode, execute, write-back.
//
// Each stage has a single pipeline register and no hazard handling, so an
// instruction reads its registers before any instruction still ahead of it
// in the pipeline has written back.
type Cpu struct {
	Verbose bool         // Set to enable verbose logging.
	Logger  *slog.Logger // Destination for verbose logs; slog.Default() if nil.

	Pc        uint8       // Program counter, 0 to PROGRAM_SIZE-1 between clocks.
	Fetch     Instruction // Fetch stage register.
	Decode    Instruction // Decode stage register.
	Execute   Instruction // Execute stage register.
	WriteBack Instruction // Write-back stage register.

	Alu      Alu          // Accumulator and flags.
	Register RegisterFile // Register bank.
	Ports    io.Ports     // Output latches and input lines.

	Ticks int // Clock cycles since reset.

	program Program
}

// NewCpu creates a CPU owning a copy of the program. A nil program runs no-ops.
func NewCpu(prog *Program) (cpu *Cpu) {
	if prog == nil {
		prog = NewProgram(nil)
	}

	cpu = &Cpu{
		program: *prog,
	}

	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

func (cpu *Cpu) logger() *slog.Logger {
	if cpu.Logger != nil {
		return cpu.Logger
	}
	return slog.Default()
}

// Reset the CPU state.
// - Fills all pipeline registers with no-ops.
// - Clears the registers, ALU, and ports.
// - Sets the program counter to 0.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		cpu.logger().Info("cpu: reset")
	}

	cpu.Pc = 0
	cpu.Fetch = NoOp()
	cpu.Decode = NoOp()
	cpu.Execute = NoOp()
	cpu.WriteBack = NoOp()
	cpu.Alu.Reset()
	cpu.Register.Reset()
	cpu.Ports.Reset()
	cpu.Ticks = 0
}

// Clock advances the pipeline by one cycle.
//
// The pipeline registers are single buffered, so the stages are evaluated
// in reverse order: write-back consumes what execute latched on the
// previous cycle before execute overwrites it with the previous decode,
// and so on up to fetch. Evaluating them front to back would push each
// instruction through every stage in a single cycle.
func (cpu *Cpu) Clock() {
	cpu.writeBack()
	cpu.execute()
	cpu.decode()
	cpu.fetch()
	cpu.incrementPc()

	cpu.Ticks++

	if cpu.Verbose {
		cpu.logger().Info("cpu: clock",
			"tick", cpu.Ticks,
			"pc", cpu.Pc,
			"fetch", cpu.Fetch.String(),
			"decode", cpu.Decode.String(),
			"execute", cpu.Execute.String(),
			"write_back", cpu.WriteBack.String(),
			"acc", cpu.Alu.Accumulator,
		)
	}
}

// incrementPc advances the program counter. Any address past the end of
// the store, including a jump target, restarts at 0.
func (cpu *Cpu) incrementPc() {
	cpu.Pc++
	if cpu.Pc >= PROGRAM_SIZE {
		cpu.Pc = 0
	}
}

// writeBack commits the side effects of the instruction executed last cycle.
func (cpu *Cpu) writeBack() {
	cpu.WriteBack = cpu.Execute

	ins := cpu.WriteBack
	a, b := ins.A.Value, ins.B.Value

	switch ins.Op {
	case OP_IMM:
		cpu.Register.Write(a, b)
	case OP_MOV:
		cpu.Register.Write(a, cpu.Register.Read(b))
	case OP_ADD, OP_ADDC:
		switch ins.Mode {
		case MODE_S, MODE_U:
			cpu.Register.Write(a, cpu.Alu.Accumulator)
		case MODE_NONE, MODE_X:
			// Flags only.
		default:
			panic("unknown mode")
		}
	case OP_OUT:
		err := cpu.Ports.WriteOut(a, cpu.Register.Read(b))
		if err != nil {
			cpu.logger().Warn("cpu: port write", "err", err)
		}
	case OP_NOOP, OP_JMP, OP_BIE, OP_SHR, OP_NOT:
		// No register or port side effect.
	default:
		panic("unknown operation")
	}
}

// execute latches the decoded instruction, resolves branches, and runs the ALU.
func (cpu *Cpu) execute() {
	cpu.Execute = cpu.Decode

	cpu.checkForBranch()

	cpu.Alu.Execute(&cpu.Register, cpu.Execute)
}

// checkForBranch redirects the program counter for a jump in execute.
// The increment at the end of the same cycle still applies, so the
// instruction fetched next cycle is the one after the target.
func (cpu *Cpu) checkForBranch() {
	switch cpu.Execute.Op {
	case OP_JMP:
		cpu.Pc = cpu.Execute.A.Value
	case OP_BIE:
		// Not implemented by the hardware; executes as a no-op.
	}
}

func (cpu *Cpu) decode() {
	cpu.Decode = cpu.Fetch
}

func (cpu *Cpu) fetch() {
	cpu.Fetch = cpu.program.Instructions[cpu.Pc%PROGRAM_SIZE]
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: %02d\n", "pc", cpu.Pc)
	stages := []struct {
		name string
		ins  Instruction
	}{
		{"fetch", cpu.Fetch},
		{"decode", cpu.Decode},
		{"exec", cpu.Execute},
		{"wb", cpu.WriteBack},
	}
	for _, stage := range stages {
		text += fmt.Sprintf("% 5s: %v\n", stage.name, stage.ins)
	}

	flags := cpu.Alu.Flags
	text += fmt.Sprintf("% 5s: %02X eq=%v gt=%v lt=%v of=%v\n", "acc", cpu.Alu.Accumulator,
		flags.Equals, flags.GreaterThan, flags.LessThan, flags.OverFlow)

	for n, val := range cpu.Register.Values() {
		text += fmt.Sprintf("% 5s: %02X\n", fmt.Sprintf("r%d", n), val)
	}
	for n, val := range cpu.Ports.Out {
		text += fmt.Sprintf("% 5s: %02X\n", fmt.Sprintf("out%d", n), val)
	}

	return
}
