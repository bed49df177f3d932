package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ezrec/elt/emulator"
	"github.com/ezrec/elt/io"
)

var (
	runTape   int
	runInputs []string
	runTrace  bool
)

var runCmd = &cobra.Command{
	Use:   "run <source-file|rom-file>",
	Short: "Run a program for a number of cycles",
	Long: `Loads a source file, or a ROM image ending in .rom, and clocks the
pipeline for the requested number of cycles.

Final state formats:
  text  - pipeline, accumulator, registers and ports (default)
  yaml  - the final machine snapshot as YAML
  none  - no final state

Examples:
  elt run --cycles 100 blink.elt
  elt run --tape 2 --dump none hello.rom
  elt run --input 0=5 --trace count.elt`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().Int("cycles", 64, "Number of clock cycles to run")
	runCmd.Flags().String("dump", "text", "Final state format: text, yaml, none")
	runCmd.Flags().IntVar(&runTape, "tape", -1, "Stream bytes written to this output port to stdout")
	runCmd.Flags().StringArrayVarP(&runInputs, "input", "i", nil, "Set an input line, as port=value")
	runCmd.Flags().BoolVar(&runTrace, "trace", false, "Print the machine state after every cycle")
}

// parseInput parses a port=value input line setting.
func parseInput(text string) (port uint8, value uint8, err error) {
	key, val, ok := strings.Cut(text, "=")
	if !ok {
		err = fmt.Errorf("%v: %v", f("input is not port=value"), text)
		return
	}

	p64, err := strconv.ParseUint(key, 0, 8)
	if err != nil || p64 >= io.PORT_COUNT {
		err = fmt.Errorf("%v: %v", f("invalid input port"), text)
		return
	}

	v64, err := strconv.ParseUint(val, 0, 8)
	if err != nil {
		err = fmt.Errorf("%v: %v", f("invalid input value"), text)
		return
	}

	port, value = uint8(p64), uint8(v64)

	return
}

func loadProgram(cmd *cobra.Command, emu *emulator.Emulator, path string) (err error) {
	if !strings.HasSuffix(path, ".rom") {
		return assembleFile(cmd, emu, path)
	}

	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	return emu.LoadRom(path, inf)
}

func runRun(cmd *cobra.Command, args []string) (err error) {
	path := args[0]
	out := cmd.OutOrStdout()

	emu := newEmulator()
	if runTape >= 0 {
		if runTape >= io.PORT_COUNT {
			err = fmt.Errorf("%v: %d", f("invalid tape port"), runTape)
			return
		}
		emu.TapePort = uint8(runTape)
		emu.Tape.Output = out
	}

	err = loadProgram(cmd, emu, path)
	if err != nil {
		return
	}

	for _, input := range runInputs {
		var port, value uint8
		port, value, err = parseInput(input)
		if err != nil {
			return
		}
		emu.Cpu.Ports.SetIn(port, value)
	}

	cycles := viper.GetInt("cycles")

	if runTrace {
		for snap := range emu.Trace(cycles) {
			fmt.Fprintf(out, "%v %v %v\n",
				colorAddr.Sprintf("%5d pc=%02d", snap.Ticks, snap.Pc),
				colorValue.Sprintf("acc=%02X", snap.Accumulator),
				snap.Stages)
			if err = cmd.Context().Err(); err != nil {
				return
			}
		}
	} else {
		err = emu.Run(cmd.Context(), cycles)
		if err != nil {
			return
		}
	}

	if runTape >= 0 {
		logger.Info("elt: tape", "port", runTape, "written", emu.Tape.Written)
	}

	switch dump := viper.GetString("dump"); dump {
	case "text":
		fmt.Fprint(out, emu.Cpu.String())
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		err = enc.Encode(emu.Snapshot())
		if err != nil {
			return
		}
		err = enc.Close()
	case "none":
	default:
		err = fmt.Errorf("%v: %v", f("unknown dump format"), dump)
	}

	return
}
