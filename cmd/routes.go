package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ZacxDev/folio/sitemap"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the routes of page entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sitemapFile, _ := cmd.Flags().GetString("sitemap")
		if sitemapFile != "" && cfg.Site.URL == "" {
			return errors.New("--sitemap needs site.url in the config")
		}

		_, l, err := newLoader()
		if err != nil {
			return err
		}
		res, err := l.Load(cmd.Context())
		if err != nil {
			return err
		}
		for _, f := range res.Failures {
			logger.Warn("entry skipped", "file", f.File, "error", f.Err)
		}

		routes, dups := sitemap.Routes(res.Entries)
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PATH\tCOLLECTION\tFILE")
		for _, r := range routes {
			fmt.Fprintf(w, "%s\t%s\t%s\n", r.Path, r.Collection, r.File)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if sitemapFile != "" {
			xmlOutput, err := sitemap.Generate(cfg.Site.URL, routes)
			if err != nil {
				return err
			}
			if err := os.WriteFile(sitemapFile, []byte(xmlOutput), 0644); err != nil {
				return errors.Wrap(err, "writing sitemap")
			}
			logger.Info("sitemap written", "file", sitemapFile, "urls", len(routes))
		}

		if len(dups) > 0 {
			for _, d := range dups {
				fmt.Fprintf(cmd.OutOrStdout(), "! %v\n", d)
			}
			return errors.Errorf("%d routes are claimed by more than one file", len(dups))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
	routesCmd.Flags().String("sitemap", "", "also write a sitemap.xml to this file")
}
