package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ezrec/elt/cpu"
	"github.com/ezrec/elt/emulator"
)

var (
	asmOutput string
	asmDebug  bool
	asmWatch  bool
)

var errAssembly = errors.New(f("assembly failed"))

var asmCmd = &cobra.Command{
	Use:   "asm <source-file>",
	Short: "Assemble a source file",
	Long: `Assembles a source file into the 32 instruction program store.

Diagnostics are written to stderr; the listing is written to stdout.

Listing formats:
  text  - address, instruction and source line (default)
  yaml  - the assembled source lines as YAML
  none  - no listing

Examples:
  elt asm blink.elt
  elt asm -o blink.rom blink.elt
  elt asm --watch --dump none blink.elt`,
	Args: cobra.ExactArgs(1),
	RunE: runAsm,
}

func init() {
	asmCmd.Flags().StringVarP(&asmOutput, "output", "o", "", "Write the ROM image to this file")
	asmCmd.Flags().String("dump", "text", "Listing format: text, yaml, none")
	asmCmd.Flags().BoolVar(&asmDebug, "debug", false, "Pretty print the assembled program")
	asmCmd.Flags().BoolVar(&asmWatch, "watch", false, "Re-assemble whenever the source file changes")
}

func newEmulator() (emu *emulator.Emulator) {
	emu = emulator.NewEmulator()
	emu.Verbose = viper.GetBool("verbose")
	emu.Logger = logger

	return
}

func newAssembler() *cpu.Assembler {
	return &cpu.Assembler{
		Verbose: viper.GetBool("verbose"),
		Strict:  viper.GetBool("strict"),
		Logger:  logger,
	}
}

// assembleFile loads a source file into the emulator, reporting diagnostics.
func assembleFile(cmd *cobra.Command, emu *emulator.Emulator, path string) (err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	asm := newAssembler()
	err = emu.Assemble(asm, path, inf)
	report(cmd.ErrOrStderr(), path, asm)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, errAssembly)
		return
	}

	return
}

func runAsm(cmd *cobra.Command, args []string) (err error) {
	path := args[0]

	err = assemble(cmd, path)
	if !asmWatch {
		return
	}

	if err != nil {
		logger.Warn("elt: asm", "err", err)
	}

	return watchFile(cmd.Context(), path, func() {
		err := assemble(cmd, path)
		if err != nil {
			logger.Warn("elt: asm", "err", err)
		}
	})
}

func assemble(cmd *cobra.Command, path string) (err error) {
	emu := newEmulator()

	err = assembleFile(cmd, emu, path)
	if err != nil {
		return
	}

	out := cmd.OutOrStdout()

	switch dump := viper.GetString("dump"); dump {
	case "text":
		fmt.Fprint(out, emu.Program.String())
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		err = enc.Encode(emu.Program)
		if err != nil {
			return
		}
		err = enc.Close()
		if err != nil {
			return
		}
	case "none":
	default:
		err = fmt.Errorf("%v: %v", f("unknown listing format"), dump)
		return
	}

	if asmDebug {
		printer := pp.New()
		printer.SetOutput(out)
		printer.SetColoringEnabled(false)
		printer.Println(emu.Program)
	}

	if asmOutput != "" {
		err = writeRom(emu, asmOutput)
		if err != nil {
			return
		}
		logger.Info("elt: rom", "file", asmOutput, "words", len(emu.Rom.Data))
	}

	return
}

func writeRom(emu *emulator.Emulator, path string) (err error) {
	ouf, err := os.Create(path)
	if err != nil {
		return
	}

	_, err = emu.Rom.WriteTo(ouf)
	if err != nil {
		ouf.Close()
		return
	}

	err = ouf.Close()

	return
}

// watchFile calls rebuild each time the file is written, until the context ends.
// The directory is watched, since editors often replace the file on save.
func watchFile(ctx context.Context, path string, rebuild func()) (err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return
	}
	defer watcher.Close()

	err = watcher.Add(filepath.Dir(path))
	if err != nil {
		return
	}

	target := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write ||
				event.Op&fsnotify.Create == fsnotify.Create {
				logger.Info("elt: watch", "file", path, "op", event.Op.String())
				rebuild()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("elt: watch", "err", err)
		}
	}
}
