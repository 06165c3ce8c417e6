package main

import (
	"fmt"

	"github.com/dhamidi/classreader/classfile"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version and the supported class file versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			oldest := classfile.Version{Major: classfile.MinMajorVersion, Minor: 3}
			newest := classfile.Version{Major: classfile.MaxMajorVersion}
			fmt.Fprintf(cmd.OutOrStdout(), "classdump %s\nclass files %s through %s\n", version, oldest, newest)
			return nil
		},
	}
}
