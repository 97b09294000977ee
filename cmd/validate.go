package cmd

import (
	"errors"
	"fmt"
	"io"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ZacxDev/folio/content"
	"github.com/ZacxDev/folio/loader"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate every content file against its collection schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, l, err := newLoader()
		if err != nil {
			return err
		}
		res, err := l.Load(cmd.Context())
		if err != nil {
			return err
		}

		report(cmd.OutOrStdout(), res)
		if !res.OK() {
			return pkgerrors.Errorf("%d content files failed validation", len(res.Failures))
		}
		if cfg.Strict && len(res.Warnings) > 0 {
			return pkgerrors.Errorf("%d sources matched no files (strict)", len(res.Warnings))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// report prints one line per failure and warning, then a summary.
func report(out io.Writer, res *loader.Result) {
	for _, f := range res.Failures {
		var ve *content.ViolationError
		if errors.As(f.Err, &ve) {
			fmt.Fprintf(out, "✗ %s (%s)\n", f.File, f.Collection)
			for _, v := range ve.Violations {
				fmt.Fprintf(out, "    %s\n", v.Error())
			}
			continue
		}
		fmt.Fprintf(out, "✗ %s (%s): %v\n", f.File, f.Collection, f.Err)
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(out, "! %v\n", w)
	}
	fmt.Fprintf(out, "%d entries, %d failures, %d warnings\n",
		len(res.Entries), len(res.Failures), len(res.Warnings))
}
