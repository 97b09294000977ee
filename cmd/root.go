package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ZacxDev/folio/config"
	"github.com/ZacxDev/folio/content"
	"github.com/ZacxDev/folio/loader"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  = slog.New(slog.DiscardHandler)
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Folio - content schemas for your blog and portfolio",
	Long: `Folio checks the content of a blog/portfolio site against its collection schemas.
It validates front matter, describes collection schemas and lists the routes pages resolve to.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./folio.yaml)")
	rootCmd.PersistentFlags().String("content", "",
		"content directory (default: content)")
	rootCmd.PersistentFlags().String("log-level", "",
		"log level: debug, info, warn or error")
}

func initConfig(cmd *cobra.Command, args []string) error {
	loaded, used, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	level, _ := loaded.Level()
	cfg = loaded
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	if used != "" {
		logger.Debug("config loaded", "file", used)
	}
	return nil
}

// loadConfig reads the configuration into a fresh viper, so it can run again
// whenever the config file changes. It also returns the file it read, if any.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	v := viper.New()
	flags := cmd.Root().PersistentFlags()
	if f := flags.Lookup("content"); f.Changed {
		_ = v.BindPFlag("content_dir", f)
	}
	if f := flags.Lookup("log-level"); f.Changed {
		_ = v.BindPFlag("log_level", f)
	}

	loaded, err := config.Load(v, cfgFile)
	if err != nil {
		return nil, "", err
	}
	return loaded, v.ConfigFileUsed(), nil
}

// newLoader builds the registry and a loader over the configured content
// directory.
func newLoader(opts ...loader.Option) (*content.Registry, *loader.Loader, error) {
	reg, err := cfg.Registry()
	if err != nil {
		return nil, nil, err
	}
	opts = append([]loader.Option{
		loader.WithConcurrency(cfg.Concurrency),
		loader.WithLogger(logger),
	}, opts...)
	return reg, loader.New(reg, cfg.ContentDir, opts...), nil
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		stop()
		os.Exit(1)
	}
}
