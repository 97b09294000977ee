package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ZacxDev/folio/config"
	"github.com/ZacxDev/folio/loader"
	"github.com/ZacxDev/folio/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Validate the content again whenever it or the config changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		debounce, _ := cmd.Flags().GetDuration("debounce")
		cache := loader.NewDocumentCache(loader.DefaultCacheExpiration, loader.DefaultCacheCleanupInterval)
		contentDir := cfg.ContentDir
		configFile := cfgFile
		if configFile == "" {
			configFile = config.FileName + ".yaml"
		}

		// Each run re-reads the config, rebuilds the registry and reloads
		// everything.
		run := func() error {
			loaded, used, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if used != "" {
				configFile = used
			}
			if loaded.ContentDir != contentDir {
				logger.Warn("content_dir changed, restart watch to follow it", "watching", contentDir, "configured", loaded.ContentDir)
				loaded.ContentDir = contentDir
			}
			cfg = loaded

			_, l, err := newLoader(loader.WithCache(cache))
			if err != nil {
				return err
			}
			res, err := l.Load(ctx)
			if err != nil {
				return err
			}
			report(out, res)
			logger.Debug("document cache", "documents", cache.Len())
			return nil
		}
		if err := run(); err != nil {
			return err
		}

		wcfg := watcher.DefaultConfig(contentDir)
		wcfg.DebounceDur = debounce
		wcfg.Logger = logger
		wcfg.Files = []string{configFile}
		w, err := watcher.New(wcfg)
		if err != nil {
			return err
		}
		defer func() { _ = w.Stop() }()
		onChange, err := w.Start()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Watching %s for changes\n", contentDir)

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-onChange:
				if err := run(); err != nil {
					if ctx.Err() != nil {
						return nil
					}
					logger.Error("reload failed", "error", err)
				}
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().Duration("debounce", watcher.DefaultConfig("").DebounceDur, "quiet period before reloading")
}
