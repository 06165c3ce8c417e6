package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/classreader/classfile"
	"github.com/dhamidi/classreader/config"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var version = "0.1.0"

// globalOptions holds the root flags and the configuration they resolve
// to before any subcommand runs.
type globalOptions struct {
	configPath string
	verbose    int
	logFile    string

	config *config.Config
}

func main() {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:          "classdump",
		Short:        "Inspect Java class files",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", config.FileName, "configuration file")
	rootCmd.PersistentFlags().CountVarP(&opts.verbose, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().StringVar(&opts.logFile, "log", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(newDumpCmd(opts))
	rootCmd.AddCommand(newDisasmCmd())
	rootCmd.AddCommand(newPoolCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func (o *globalOptions) load(cmd *cobra.Command) error {
	var (
		cfg *config.Config
		err error
	)
	if cmd.Flags().Changed("config") {
		cfg, err = config.Load(o.configPath)
	} else {
		cfg, err = config.LoadOrDefault(o.configPath)
	}
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("verbose") {
		cfg.Log.Verbosity = o.verbose
	}
	if cmd.Flags().Changed("log") {
		cfg.Log.File = o.logFile
	}

	var path *string
	if cfg.Log.File != "" {
		path = &cfg.Log.File
	}
	commonlog.Configure(cfg.Log.Verbosity, path)

	o.config = cfg
	return nil
}

// parseClass decodes a class file, or standard input when filename is "-".
func parseClass(filename string) (*classfile.ClassFile, error) {
	var (
		cf  *classfile.ClassFile
		err error
	)
	if filename == "-" {
		cf, err = classfile.ParseReader(os.Stdin)
	} else {
		cf, err = classfile.ParseFile(filename)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	return cf, nil
}
