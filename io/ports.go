package io

import (
	"fmt"
	"iter"
	"maps"
)

const (
	PORT_COUNT = 8 // Number of output latches, and of input lines.
)

var _port_defines = map[string]string{
	"PORT_COUNT": fmt.Sprintf("%v", PORT_COUNT),
}

// Ports are the output latches written by OUT, and the input lines set by the host.
type Ports struct {
	Out [PORT_COUNT]uint8 // Output latches.
	In  [PORT_COUNT]uint8 // Input lines, written only by the host.

	channel [PORT_COUNT]Channel
}

// Defines for the port space.
func (p *Ports) Defines() iter.Seq2[string, string] {
	return maps.All(_port_defines)
}

// WriteOut latches a value into an output port. Out-of-range writes are dropped.
// The error, if any, comes from the attached channel; the latch is updated regardless.
func (p *Ports) WriteOut(index uint8, value uint8) (err error) {
	if int(index) >= len(p.Out) {
		return
	}

	p.Out[index] = value

	if ch := p.channel[index]; ch != nil {
		err = ch.Send(value)
		if err != nil {
			err = &ErrPort{Index: index, Err: err}
		}
	}

	return
}

// ReadOut returns the latched output value, or 0 for an out-of-range port.
func (p *Ports) ReadOut(index uint8) uint8 {
	if int(index) >= len(p.Out) {
		return 0
	}
	return p.Out[index]
}

// ReadIn returns an input line, or 0 for an out-of-range port.
func (p *Ports) ReadIn(index uint8) uint8 {
	if int(index) >= len(p.In) {
		return 0
	}
	return p.In[index]
}

// SetIn sets an input line. Out-of-range lines are ignored.
func (p *Ports) SetIn(index uint8, value uint8) {
	if int(index) < len(p.In) {
		p.In[index] = value
	}
}

// SetChannel attaches a channel to an output port, or detaches it when nil.
func (p *Ports) SetChannel(index uint8, channel Channel) {
	if int(index) < len(p.channel) {
		p.channel[index] = channel
	}
}

// GetChannel returns the channel attached to an output port.
func (p *Ports) GetChannel(index uint8) (channel Channel) {
	if int(index) < len(p.channel) {
		channel = p.channel[index]
	}
	return
}

// Reset clears all latches and input lines, and rewinds attached channels.
func (p *Ports) Reset() {
	clear(p.Out[:])
	clear(p.In[:])

	for _, ch := range p.channel {
		if ch != nil {
			ch.Rewind()
		}
	}
}
