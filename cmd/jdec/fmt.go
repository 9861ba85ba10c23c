package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/jdec/jsonvalue"
)

func newFmtCmd(o *options) *cobra.Command {
	var indent string
	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Print a document as canonical JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := o.load(cmd, argOrStdin(args))
			if err != nil {
				return err
			}
			if indent == "" {
				fmt.Fprintln(cmd.OutOrStdout(), jsonvalue.Render(v))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), jsonvalue.Indent(v, indent))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&indent, "indent", "", "indent string; compact output when empty")
	return cmd
}
