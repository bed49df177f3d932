// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Command elt assembles and runs programs for the ELT 8-bit pipelined processor.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := Execute(ctx)
	if err != nil {
		stop()
		os.Exit(1)
	}
}
