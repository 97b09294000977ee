package cmd

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Print the resolved site app config as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		site := cfg.Site
		credits, err := site.Footer.RenderCredits(time.Now())
		if err != nil {
			return err
		}
		site.Footer.Credits = credits

		out, err := yaml.Marshal(site)
		if err != nil {
			return errors.Wrap(err, "encoding site config")
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), string(out))
		return err
	},
}

func init() {
	rootCmd.AddCommand(siteCmd)
}
