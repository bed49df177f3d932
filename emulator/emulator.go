// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	stdio "io"
	"iter"
	"log/slog"

	"github.com/ezrec/elt/cpu"
	"github.com/ezrec/elt/internal"
	"github.com/ezrec/elt/io"
)

// Emulator state. CPU + program + IO channels.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	Logger   *slog.Logger // Destination for verbose logs; slog.Default() if nil.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program listing.

	Tape     io.Tape // Tape IO channel, attached on reset if it has an Output.
	TapePort uint8   // Output port the tape is attached to.
	Rom      io.Rom  // ROM image of the loaded program.
}

// NewEmulator creates a new emulator, running an empty program.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Program: cpu.NewProgram(nil),
	}

	emu.Reset()

	return
}

// Defines returns an iterator over all of the defines, ordered by name.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Sorted(internal.IterSeq2Concat(
		emu.Cpu.Defines(),
		emu.Cpu.Ports.Defines(),
	))
}

// Assemble source text with the emulator defines, and load the result.
// Diagnostics remain available on the assembler.
func (emu *Emulator) Assemble(asm *cpu.Assembler, name string, input stdio.Reader) (err error) {
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	prog, err := asm.Parse(input)
	if err != nil {
		err = &ErrLoad{Name: name, Err: err}
		return
	}

	emu.Load(prog)

	return
}

// LoadRom loads a ROM image.
func (emu *Emulator) LoadRom(name string, input stdio.Reader) (err error) {
	var rom io.Rom
	_, err = rom.ReadFrom(input)
	if err != nil {
		err = &ErrLoad{Name: name, Err: err}
		return
	}

	prog, err := cpu.ProgramFromBinary(rom.Data)
	if err != nil {
		err = &ErrLoad{Name: name, Err: err}
		return
	}

	emu.Load(prog)

	return
}

// Load a program, and reset the emulator.
func (emu *Emulator) Load(prog *cpu.Program) {
	emu.Program = prog
	emu.Reset()
}

// Reset the CPU to run the current program from address 0.
func (emu *Emulator) Reset() {
	if emu.Program == nil {
		emu.Program = cpu.NewProgram(nil)
	}

	emu.Rom.Data = emu.Program.Binary()

	emu.Cpu = cpu.NewCpu(emu.Program)
	emu.Cpu.Logger = emu.Logger
	if emu.Tape.Output != nil {
		emu.Cpu.Ports.SetChannel(emu.TapePort, &emu.Tape)
	}
	emu.Cpu.Ports.Reset()

	emu.Cpu.Verbose = emu.Verbose
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Pc returns the current program counter.
func (emu *Emulator) Pc() uint8 {
	return emu.Cpu.Pc
}

// LineNo returns the source line of the instruction at the program counter,
// or -1 if the address is padding.
func (emu *Emulator) LineNo() int {
	op := emu.Program.Debug(emu.Cpu.Pc)
	if op == nil {
		return -1
	}

	return op.LineNo
}

// Tick performs a single clock of the emulator.
func (emu *Emulator) Tick() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Clock()
}

// Run clocks the emulator for a number of cycles, checking for
// cancellation between cycles.
func (emu *Emulator) Run(ctx context.Context, cycles int) (err error) {
	for range cycles {
		err = ctx.Err()
		if err != nil {
			err = &ErrRuntime{LineNo: emu.LineNo(), Ticks: emu.Ticks(), Err: err}
			return
		}
		emu.Tick()
	}

	return
}

// Trace clocks the emulator for a number of cycles, yielding the state
// after each one.
func (emu *Emulator) Trace(cycles int) iter.Seq[Snapshot] {
	return func(yield func(Snapshot) bool) {
		for range cycles {
			emu.Tick()
			if !yield(emu.Snapshot()) {
				return
			}
		}
	}
}
