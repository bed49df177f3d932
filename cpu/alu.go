package cpu

// Flags are the ALU condition flags, recomputed on every execute cycle.
type Flags struct {
	Equals      bool `yaml:"equals"`
	GreaterThan bool `yaml:"greater_than"`
	LessThan    bool `yaml:"less_than"`
	OverFlow    bool `yaml:"over_flow"`
}

// Alu is the accumulator and its flags.
type Alu struct {
	Accumulator uint8
	Flags       Flags
}

// Execute runs the ALU on an instruction in the execute stage.
// Operations other than ADD and ADDC produce 0, but still update the flags
// from their operand registers.
func (alu *Alu) Execute(regs *RegisterFile, ins Instruction) {
	var a uint16
	switch ins.Mode {
	case MODE_NONE, MODE_S:
		a = uint16(regs.Read(ins.A.Value))
	case MODE_U, MODE_X:
		a = uint16(alu.Accumulator)
	default:
		panic("unknown mode")
	}
	b := uint16(regs.Read(ins.B.Value))

	var result uint16
	switch ins.Op {
	case OP_ADD:
		result = a + b
	case OP_ADDC:
		result = a + b + 1
	}

	alu.Flags = Flags{
		Equals:      a == b,
		GreaterThan: a > b,
		LessThan:    a < b,
		OverFlow:    result > 0xff,
	}

	// Overflow wraps by 255, not 256.
	if result > 0xff {
		result -= 0xff
	}

	alu.Accumulator = uint8(result)
}

func (alu *Alu) Reset() {
	*alu = Alu{}
}
