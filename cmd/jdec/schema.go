package main

import (
	"fmt"

	j "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/jdec"
)

func newSchemaCmd(o *options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "schema [file]",
		Short: "Infer a schema from a sample document",
		Long:  `Infers a decoder from the sample and prints the JSON Schema it accepts, as JSON, YAML or an OpenAPI 3 schema object.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := o.load(cmd, argOrStdin(args))
			if err != nil {
				return err
			}
			s := jdec.InferSchema(v)

			var out []byte
			switch format {
			case "json":
				out, err = s.JSONIndent("  ")
			case "yaml":
				out, err = s.YAML()
			case "openapi":
				out, err = j.MarshalIndent(s.OpenAPI(), "", "  ")
			default:
				return fmt.Errorf("unknown format %q", format)
			}
			if err != nil {
				return fmt.Errorf("render schema: %w", err)
			}
			w := cmd.OutOrStdout()
			if _, err := w.Write(out); err != nil {
				return err
			}
			if len(out) > 0 && out[len(out)-1] != '\n' {
				fmt.Fprintln(w)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format: json, yaml or openapi")
	return cmd
}
