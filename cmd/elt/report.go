package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/fatih/color"

	"github.com/ezrec/elt/cpu"
)

var (
	colorError   = color.New(color.FgRed, color.Bold)
	colorWarning = color.New(color.FgYellow)
	colorSource  = color.New(color.FgHiBlack)
	colorAddr    = color.New(color.FgCyan)
	colorValue   = color.New(color.FgWhite, color.Bold)
)

type diagnostic struct {
	warning bool
	cpu.ErrSyntax
}

// report writes the assembler diagnostics in source order, as name:line: severity: message.
// Line numbers are shown 1-based.
func report(w io.Writer, name string, asm *cpu.Assembler) {
	var diags []diagnostic
	for _, err := range asm.Errors {
		diags = append(diags, diagnostic{ErrSyntax: err})
	}
	for _, err := range asm.Warnings {
		diags = append(diags, diagnostic{warning: true, ErrSyntax: err})
	}

	slices.SortStableFunc(diags, func(a, b diagnostic) int {
		return a.LineNo - b.LineNo
	})

	for _, diag := range diags {
		fmt.Fprintf(w, "%v:%d: ", name, diag.LineNo+1)
		if diag.warning {
			colorWarning.Fprint(w, f("warning"))
		} else {
			colorError.Fprint(w, f("error"))
		}
		fmt.Fprintf(w, ": %v\n", diag.Message())
		if diag.Line != "" {
			colorSource.Fprintf(w, "    %v\n", diag.Line)
		}
	}
}
