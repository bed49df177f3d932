package io

import (
	"errors"

	"github.com/ezrec/elt/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelFull = errors.New(f("channel full"))

	// Rom errors
	ErrRomSize = errors.New(f("rom image is not a whole number of words"))
)

// ErrPort reports a channel failure on an output port.
type ErrPort struct {
	Index uint8
	Err   error
}

func (err *ErrPort) Error() string {
	return f("port %d %v", err.Index, err.Err)
}

func (err *ErrPort) Unwrap() error {
	return err.Err
}
