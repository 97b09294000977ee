package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ZacxDev/folio/schema"
)

var schemaCmd = &cobra.Command{
	Use:   "schema <collection>",
	Short: "Print the schema of a collection as JSON or YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		reg, _, err := newLoader()
		if err != nil {
			return err
		}
		s, err := reg.Schema(args[0])
		if err != nil {
			return err
		}
		d := schema.Describe(s)

		var out []byte
		switch format {
		case "json":
			out, err = json.MarshalIndent(d, "", "  ")
			out = append(out, '\n')
		case "yaml":
			out, err = yaml.Marshal(d)
		default:
			return errors.Errorf("unknown format %q, want json or yaml", format)
		}
		if err != nil {
			return errors.Wrap(err, "encoding schema")
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), string(out))
		return err
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().StringP("format", "f", "json", "output format: json or yaml")
}
