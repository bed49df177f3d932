package emulator

import (
	"github.com/ezrec/elt/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a run that was stopped.
type ErrRuntime struct {
	LineNo int
	Ticks  int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d tick %d %v", err.LineNo, err.Ticks, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrLoad indicates a program image that could not be loaded.
type ErrLoad struct {
	Name string
	Err  error
}

func (err *ErrLoad) Error() string {
	return f("%v: %v", err.Name, err.Err)
}

func (err *ErrLoad) Unwrap() error {
	return err.Err
}
