package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ezrec/elt/translate"
)

var f = translate.From

var (
	cfgFile string

	logger  = slog.Default()
	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:   "elt",
	Short: "Assembler and emulator for the ELT 8-bit pipelined processor",
	Long: `elt assembles ELT source into a 32 instruction program store, and
clocks it through the four stage fetch/decode/execute/write-back pipeline.

Settings are read from flags, from ELT_* environment variables (a .env file
in the working directory is loaded first), and from $HOME/.elt.yaml.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the command line, reporting any error on stderr.
func Execute(ctx context.Context) (err error) {
	err = rootCmd.ExecuteContext(ctx)

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}

	if err != nil {
		colorError.Fprintf(rootCmd.ErrOrStderr(), "elt: %v\n", err)
	}

	return
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.elt.yaml)")
	pf.BoolP("verbose", "v", false, "Log every assembled line and clock")
	pf.String("log-file", "", "Also write JSON logs to this file")
	pf.Bool("strict", false, "Reject programs longer than the program store")
	pf.String("locale", "", "Locale for diagnostics (default is the host locale)")

	rootCmd.AddCommand(asmCmd, runCmd, definesCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("elt: .env", "err", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName(".elt")
	}

	viper.SetEnvPrefix("elt")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err == nil {
		slog.Debug("elt: config", "file", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		slog.Warn("elt: config", "file", cfgFile, "err", err)
	}
}

// setup binds the running command's flags, then builds the logger.
func setup(cmd *cobra.Command, args []string) (err error) {
	err = viper.BindPFlags(cmd.Flags())
	if err != nil {
		return
	}

	if locale := viper.GetString("locale"); locale != "" {
		translate.SetLocales(locale)
	}

	level := slog.LevelWarn
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}),
	}

	if path := viper.GetString("log-file"); path != "" {
		logFile, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return
		}
		handlers = append(handlers, slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	logger = slog.New(slogmulti.Fanout(handlers...))

	return
}
