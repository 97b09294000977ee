// Package config loads the project configuration from folio.yaml, the
// environment and command-line flags.
package config

import (
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/ZacxDev/folio/content"
	"github.com/ZacxDev/folio/schema"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. FOLIO_CONTENT_DIR.
	EnvPrefix = "FOLIO"
	// FileName is the config file looked up in the working directory.
	FileName = "folio"
)

// Config holds all configuration options of a folio project.
type Config struct {
	ContentDir  string             `mapstructure:"content_dir" yaml:"content_dir"`
	Concurrency int                `mapstructure:"concurrency" yaml:"concurrency"`
	Strict      bool               `mapstructure:"strict" yaml:"strict"`       // missing sources fail validation
	LogLevel    string             `mapstructure:"log_level" yaml:"log_level"` // debug, info, warn or error
	Site        Site               `mapstructure:"site" yaml:"site"`
	Collections []CollectionConfig `mapstructure:"collections" yaml:"collections,omitempty"`
}

// CollectionConfig declares a collection in addition to the site's own.
type CollectionConfig struct {
	Name    string            `mapstructure:"name" yaml:"name"`
	Type    content.Kind      `mapstructure:"type" yaml:"type"`
	Sources []content.Source  `mapstructure:"sources" yaml:"sources"`
	Schema  schema.Descriptor `mapstructure:"schema" yaml:"schema"`
}

// Collection builds the collection. The schema must describe an object.
func (c CollectionConfig) Collection() (content.Collection, error) {
	s, err := schema.Build(c.Schema)
	if err != nil {
		return content.Collection{}, errors.Wrapf(err, "collection %s", c.Name)
	}
	obj, ok := s.(*schema.ObjectSchema)
	if !ok {
		return content.Collection{}, errors.Errorf("collection %s: schema must be an object, got %s", c.Name, s.Type())
	}
	kind := c.Type
	if kind == "" {
		kind = content.KindData
	}
	return content.Collection{Name: c.Name, Kind: kind, Sources: c.Sources, Schema: obj}, nil
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		ContentDir: "content",
		LogLevel:   "info",
		Site:       DefaultSite(),
	}
}

// SetDefaults registers the defaults on v.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("content_dir", d.ContentDir)
	v.SetDefault("concurrency", d.Concurrency)
	v.SetDefault("strict", d.Strict)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("site.url", d.Site.URL)
	v.SetDefault("site.global.picture.dark", d.Site.Global.Picture.Dark)
	v.SetDefault("site.global.picture.light", d.Site.Global.Picture.Light)
	v.SetDefault("site.global.picture.alt", d.Site.Global.Picture.Alt)
	v.SetDefault("site.global.meetingLink", d.Site.Global.MeetingLink)
	v.SetDefault("site.global.email", d.Site.Global.Email)
	v.SetDefault("site.global.available", d.Site.Global.Available)
	v.SetDefault("site.ui.colors.primary", d.Site.UI.Colors.Primary)
	v.SetDefault("site.ui.colors.neutral", d.Site.UI.Colors.Neutral)
	v.SetDefault("site.ui.pageHero.slots", d.Site.UI.PageHero.Slots)
	v.SetDefault("site.footer.credits", d.Site.Footer.Credits)
	v.SetDefault("site.footer.colorMode", d.Site.Footer.ColorMode)
	v.SetDefault("site.footer.links", d.Site.Footer.Links)
}

// Load reads the configuration into v and decodes it. When file is empty
// folio.yaml is looked up in the working directory and may be absent.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envKeys)
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "reading config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		sourceHook,
		mapstructure.StringToSliceHookFunc(","),
	))); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// sourceHook lets a source be written as a bare path or pattern.
func sourceHook(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(content.Source{}) || from.Kind() != reflect.String {
		return data, nil
	}
	return content.Source{Include: data.(string)}, nil
}

// Validate reports the first invalid option.
func (c *Config) Validate() error {
	if c.ContentDir == "" {
		return errors.New("content_dir must not be empty")
	}
	if c.Concurrency < 0 {
		return errors.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if err := c.Site.Validate(); err != nil {
		return errors.Wrap(err, "site")
	}
	seen := map[string]bool{}
	for _, cc := range c.Collections {
		if cc.Name == "" {
			return errors.New("collections: name must not be empty")
		}
		if seen[cc.Name] {
			return errors.Errorf("collections: %s declared twice", cc.Name)
		}
		seen[cc.Name] = true
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, errors.Errorf("log_level %q is not one of debug, info, warn, error", c.LogLevel)
	}
	return l, nil
}

// Registry returns the site collections plus the configured ones.
func (c *Config) Registry() (*content.Registry, error) {
	extra := make([]content.Collection, 0, len(c.Collections))
	for _, cc := range c.Collections {
		col, err := cc.Collection()
		if err != nil {
			return nil, err
		}
		extra = append(extra, col)
	}
	return content.SiteRegistry(extra...)
}

var envKeys = strings.NewReplacer(".", "_")
