package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZacxDev/folio/content"
	"github.com/ZacxDev/folio/schema"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "folio.yaml")
	require.NoError(t, os.WriteFile(file, []byte(body), 0o644))
	return file
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "content", cfg.ContentDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "blue", cfg.Site.UI.Colors.Primary)
	assert.Equal(t, "https://cal.com/", cfg.Site.Global.MeetingLink)
	assert.True(t, cfg.Site.Global.Available)
	require.Len(t, cfg.Site.Footer.Links, 3)
	assert.Equal(t, "Doctor Nyte on GitHub", cfg.Site.Footer.Links[2].AriaLabel)
	assert.Equal(t, DefaultSite().UI.PageHero.Slots, cfg.Site.UI.PageHero.Slots)
}

func TestLoadFile(t *testing.T) {
	file := writeConfig(t, `
content_dir: site/content
strict: true
log_level: debug
site:
  url: https://nyte.dev
  global:
    meetingLink: https://cal.com/nyte
  footer:
    links:
      - icon: i-simple-icons-github
        to: https://github.com/docnyte
        aria-label: GitHub
collections:
  - name: projects
    type: page
    sources: [projects/*.yml]
    schema:
      type: object
      fields:
        - name: name
          type: string
        - name: url
          type: string
          format: url
          optional: true
`)

	cfg, err := Load(viper.New(), file)
	require.NoError(t, err)
	assert.Equal(t, "site/content", cfg.ContentDir)
	assert.True(t, cfg.Strict)
	assert.Equal(t, "https://nyte.dev", cfg.Site.URL)
	assert.Equal(t, "https://cal.com/nyte", cfg.Site.Global.MeetingLink)
	assert.Equal(t, "ui-pro@nuxt.com", cfg.Site.Global.Email, "defaults fill unset keys")
	require.Len(t, cfg.Site.Footer.Links, 1)
	assert.Equal(t, "GitHub", cfg.Site.Footer.Links[0].AriaLabel)

	require.Len(t, cfg.Collections, 1)
	assert.Equal(t, []content.Source{{Include: "projects/*.yml"}}, cfg.Collections[0].Sources)

	reg, err := cfg.Registry()
	require.NoError(t, err)
	require.NoError(t, reg.Check())
	rec, err := reg.Validate("projects", map[string]any{"name": "folio", "title": "Folio"})
	require.NoError(t, err)
	assert.Equal(t, content.Record{"name": "folio", "title": "Folio"}, rec)

	_, err = reg.Validate("projects", map[string]any{"name": "folio", "url": "not a url"})
	var ve *content.ViolationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"url"}, ve.Violations.Paths())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FOLIO_CONTENT_DIR", "elsewhere")
	t.Setenv("FOLIO_SITE_UI_COLORS_PRIMARY", "green")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "elsewhere", cfg.ContentDir)
	assert.Equal(t, "green", cfg.Site.UI.Colors.Primary)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := map[string]string{
		"log level":    "log_level: loud\n",
		"concurrency":  "concurrency: -1\n",
		"site url":     "site:\n  url: nyte.dev\n",
		"footer link":  "site:\n  footer:\n    links:\n      - icon: x\n        to: /relative\n",
		"link target":  "site:\n  footer:\n    links:\n      - icon: x\n        to: https://x.com\n        target: _top\n",
		"duplicate":    "collections:\n  - name: a\n  - name: a\n",
		"bad template": "site:\n  footer:\n    credits: \"<%= year( %>\"\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(viper.New(), writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestCollectionMustBeObject(t *testing.T) {
	cfg := Defaults()
	cfg.Collections = []CollectionConfig{{Name: "tags", Schema: schema.Descriptor{Type: schema.TypeString}}}
	_, err := cfg.Registry()
	assert.ErrorContains(t, err, "schema must be an object")
}

func TestRenderCredits(t *testing.T) {
	now := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)

	out, err := DefaultSite().Footer.RenderCredits(now)
	require.NoError(t, err)
	assert.Equal(t, "© 2026 • Doctor Nyte . All rights reserved.", out)

	out, err = Footer{Credits: "Plain text"}.RenderCredits(now)
	require.NoError(t, err)
	assert.Equal(t, "Plain text", out)
}
