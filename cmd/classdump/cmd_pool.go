package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPoolCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pool <file.class>",
		Short: "Print the constant pool of a class file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cf, err := parseClass(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), cf.ConstantPool.String())
			return nil
		},
	}
}
