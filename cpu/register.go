package cpu

const (
	REGISTER_COUNT = 8 // Number of general purpose registers.
)

// RegisterFile is the bank of byte registers. Register 0 is hardwired to ground.
type RegisterFile struct {
	data [REGISTER_COUNT]uint8
}

// Read returns the register value. r0 and out-of-range registers read as 0.
func (rf *RegisterFile) Read(index uint8) uint8 {
	if index == 0 || int(index) >= len(rf.data) {
		return 0
	}
	return rf.data[index]
}

// Write stores a register value. Writes to out-of-range registers are dropped.
func (rf *RegisterFile) Write(index uint8, value uint8) {
	if int(index) < len(rf.data) {
		rf.data[index] = value
	}
}

// Values returns the register bank as it reads.
func (rf *RegisterFile) Values() (values [REGISTER_COUNT]uint8) {
	for n := range values {
		values[n] = rf.Read(uint8(n))
	}
	return
}

func (rf *RegisterFile) Reset() {
	clear(rf.data[:])
}
