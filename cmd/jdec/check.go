package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/jdec"
)

func newCheckCmd(o *options) *cobra.Command {
	var (
		sample  string
		openapi bool
	)
	cmd := &cobra.Command{
		Use:   "check --sample sample.json [file]",
		Short: "Check a document against the shape of a sample",
		Long: `Infers a decoder from the sample document and decodes the input with it.
Prints "ok" on success; otherwise reports the path to the first mismatch and exits 1.
With --openapi the input is also validated against the inferred OpenAPI 3 schema.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if sample == "" {
				return errors.New("--sample is required")
			}
			sv, err := o.load(cmd, sample)
			if err != nil {
				return err
			}
			in, err := o.load(cmd, argOrStdin(args))
			if err != nil {
				return err
			}

			d := jdec.Debug(o.log, "check", jdec.Infer(sv))
			if r := jdec.DecodeValue(in, d); r.IsErr() {
				return fmt.Errorf("check failed: %s", r.Message())
			}
			if openapi {
				if err := jdec.InferSchema(sv).Validate(in); err != nil {
					return fmt.Errorf("openapi validation failed: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
	cmd.Flags().StringVar(&sample, "sample", "", "sample document describing the expected shape")
	cmd.Flags().BoolVar(&openapi, "openapi", false, "also validate with the OpenAPI 3 validator")
	return cmd
}
