package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/jdec"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of jdec",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "jdec version %s\n", jdec.Version)
		},
	}
}
