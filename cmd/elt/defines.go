package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var definesCmd = &cobra.Command{
	Use:   "defines",
	Short: "List the names predefined for $(...) operand expressions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		emu := newEmulator()
		for key, value := range emu.Defines() {
			fmt.Fprintf(cmd.OutOrStdout(), "%v=%v\n", key, value)
		}

		return
	},
}
