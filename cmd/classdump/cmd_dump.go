package main

import (
	"fmt"

	"github.com/dhamidi/classreader/format"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newDumpCmd(opts *globalOptions) *cobra.Command {
	var (
		dumpFormat   string
		colorMode    string
		disassemble  bool
		constantPool bool
	)

	cmd := &cobra.Command{
		Use:   "dump <file.class>...",
		Short: "Dump the decoded structure of class files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.config.Output
			if cmd.Flags().Changed("format") {
				out.Format = dumpFormat
			}
			if cmd.Flags().Changed("color") {
				out.Color = colorMode
			}
			if cmd.Flags().Changed("disasm") {
				out.Disassemble = disassemble
			}
			if cmd.Flags().Changed("pool") {
				out.ConstantPool = constantPool
			}

			encOpts := []format.Option{format.WithColor(useColor(out.Color))}
			if out.Disassemble {
				encOpts = append(encOpts, format.WithDisassembly())
			}
			if out.ConstantPool {
				encOpts = append(encOpts, format.WithConstantPool())
			}

			for _, filename := range args {
				cf, err := parseClass(filename)
				if err != nil {
					return err
				}
				enc, err := format.New(out.Format, cmd.OutOrStdout(), encOpts...)
				if err != nil {
					return err
				}
				if err := enc.Encode(cf); err != nil {
					return fmt.Errorf("encode %s: %w", out.Format, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dumpFormat, "format", "f", "text", "output format (text, line, json, yaml)")
	cmd.Flags().StringVar(&colorMode, "color", "auto", "colorize text output (auto, always, never)")
	cmd.Flags().BoolVarP(&disassemble, "disasm", "c", false, "include disassembled method bodies")
	cmd.Flags().BoolVarP(&constantPool, "pool", "p", false, "include the constant pool")

	return cmd
}

func useColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return !color.NoColor
	}
}
