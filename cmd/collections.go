package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ZacxDev/folio/content"
	"github.com/ZacxDev/folio/schema"
)

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List the registered collections",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, _, err := newLoader()
		if err != nil {
			return err
		}
		if err := reg.Check(); err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tKIND\tSOURCES\tFIELDS")
		for _, c := range reg.Collections() {
			s, err := reg.Schema(c.Name)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Name, c.Kind, sources(c), fieldNames(s.Fields()))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(collectionsCmd)
}

func sources(c content.Collection) string {
	parts := make([]string, len(c.Sources))
	for i, s := range c.Sources {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}

// fieldNames lists fields in declaration order, optional ones suffixed "?".
func fieldNames(fields []schema.Field) string {
	if len(fields) == 0 {
		return "-"
	}
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.Name
		if _, ok := f.Schema.(*schema.OptionalSchema); ok {
			parts[i] += "?"
		}
	}
	return strings.Join(parts, ", ")
}
