package emulator

import (
	"github.com/ezrec/elt/cpu"
	"github.com/ezrec/elt/io"
)

// Stages are the operations held in each pipeline register.
type Stages struct {
	Fetch     cpu.Operation `yaml:"fetch"`
	Decode    cpu.Operation `yaml:"decode"`
	Execute   cpu.Operation `yaml:"execute"`
	WriteBack cpu.Operation `yaml:"write_back"`
}

// Snapshot is the externally visible machine state between cycles.
type Snapshot struct {
	Ticks       int                       `yaml:"ticks"`
	Pc          uint8                     `yaml:"pc"`
	LineNo      int                       `yaml:"line"`
	Stages      Stages                    `yaml:"stages"`
	Accumulator uint8                     `yaml:"accumulator"`
	Flags       cpu.Flags                 `yaml:"flags"`
	Out         [io.PORT_COUNT]uint8      `yaml:"out,flow"`
	In          [io.PORT_COUNT]uint8      `yaml:"in,flow"`
	Registers   [cpu.REGISTER_COUNT]uint8 `yaml:"registers,flow"`
}

// Snapshot captures the current machine state.
func (emu *Emulator) Snapshot() Snapshot {
	c := emu.Cpu
	return Snapshot{
		Ticks:  c.Ticks,
		Pc:     c.Pc,
		LineNo: emu.LineNo(),
		Stages: Stages{
			Fetch:     c.Fetch.Op,
			Decode:    c.Decode.Op,
			Execute:   c.Execute.Op,
			WriteBack: c.WriteBack.Op,
		},
		Accumulator: c.Alu.Accumulator,
		Flags:       c.Alu.Flags,
		Out:         c.Ports.Out,
		In:          c.Ports.In,
		Registers:   c.Register.Values(),
	}
}
