// Package io provides the memory-mapped port space of the ELT processor
// and the host side channels attached to it: a Tape that streams bytes
// written to an output port, and the Rom image format for assembled programs.
package io

// Channel receives every byte latched into the output port it is attached to.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Send delivers a byte written to the port.
	Send(value uint8) error
}
