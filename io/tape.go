package io

import (
	"io"
)

// Tape streams every byte written to its port to an io.Writer.
type Tape struct {
	Output io.Writer

	Written int // Bytes sent since the last rewind.
}

var _ Channel = (*Tape)(nil)

// Rewind is not possible on a tape; only the counter restarts.
func (tc *Tape) Rewind() {
	tc.Written = 0
}

// Send writes the byte to the output stream.
func (tc *Tape) Send(value uint8) (err error) {
	if tc.Output == nil {
		err = ErrChannelFull
		return
	}

	_, err = tc.Output.Write([]byte{value})
	if err != nil {
		return
	}

	tc.Written++

	return
}
