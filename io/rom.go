package io

import (
	"encoding/binary"
	"io"
)

// Rom is a program image: one big-endian 32-bit word per instruction.
type Rom struct {
	Data []uint32
}

// ReadFrom replaces the image with the words read from r.
func (rom *Rom) ReadFrom(r io.Reader) (n int64, err error) {
	raw, err := io.ReadAll(r)
	n = int64(len(raw))
	if err != nil {
		return
	}

	if len(raw)%4 != 0 {
		err = ErrRomSize
		return
	}

	rom.Data = make([]uint32, len(raw)/4)
	for i := range rom.Data {
		rom.Data[i] = binary.BigEndian.Uint32(raw[i*4:])
	}

	return
}

// WriteTo writes the image to w.
func (rom *Rom) WriteTo(w io.Writer) (n int64, err error) {
	raw := make([]byte, 0, len(rom.Data)*4)
	for _, word := range rom.Data {
		raw = binary.BigEndian.AppendUint32(raw, word)
	}

	written, err := w.Write(raw)
	n = int64(written)

	return
}
