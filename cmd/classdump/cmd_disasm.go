package main

import (
	"errors"
	"fmt"

	"github.com/dhamidi/classreader/bytecode"
	"github.com/dhamidi/classreader/classfile"
	"github.com/spf13/cobra"
)

func newDisasmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disasm <file.class> [method]",
		Short: "Disassemble method bodies",
		Long: `Disassemble every method body of a class file, or only the overloads of
the named method. Methods that use unsupported instructions are reported and
skipped.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cf, err := parseClass(args[0])
			if err != nil {
				return err
			}

			methods := make([]*classfile.Method, 0, len(cf.Methods))
			if len(args) == 2 {
				methods = cf.MethodsNamed(args[1])
				if len(methods) == 0 {
					return fmt.Errorf("no method %s in %s", args[1], cf.SourceName())
				}
			} else {
				for i := range cf.Methods {
					methods = append(methods, &cf.Methods[i])
				}
			}

			w := cmd.OutOrStdout()
			var errs []error
			for _, m := range methods {
				if m.Code == nil {
					continue
				}
				fmt.Fprintf(w, "%s%s\n", m.Name, m.Descriptor)
				insns, err := bytecode.DecodeAll(m.Code.Code)
				if err != nil {
					fmt.Fprintf(w, "  %v\n\n", err)
					errs = append(errs, fmt.Errorf("%s%s: %w", m.Name, m.Descriptor, err))
					continue
				}
				for _, insn := range insns {
					if line, ok := m.Code.LineNumber(uint16(insn.Address)); ok {
						fmt.Fprintf(w, "  %5d: %-32s // line %d\n", insn.Address, insn.Instruction, line)
					} else {
						fmt.Fprintf(w, "  %5d: %s\n", insn.Address, insn.Instruction)
					}
				}
				fmt.Fprintln(w)
			}
			return errors.Join(errs...)
		},
	}
}
