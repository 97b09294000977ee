package config

import (
	"strings"
	"time"

	"github.com/gobuffalo/plush"
	"github.com/pkg/errors"

	"github.com/ZacxDev/folio/content"
	"github.com/ZacxDev/folio/schema"
)

// Site is the app config the theme reads: profile details, UI tokens and
// the footer.
type Site struct {
	// URL is the public origin used for sitemap locations.
	URL    string `mapstructure:"url" yaml:"url,omitempty"`
	Global Global `mapstructure:"global" yaml:"global"`
	UI     UI     `mapstructure:"ui" yaml:"ui"`
	Footer Footer `mapstructure:"footer" yaml:"footer"`
}

type Picture struct {
	Dark  string `mapstructure:"dark" yaml:"dark"`
	Light string `mapstructure:"light" yaml:"light"`
	Alt   string `mapstructure:"alt" yaml:"alt"`
}

type Global struct {
	Picture     Picture `mapstructure:"picture" yaml:"picture"`
	MeetingLink string  `mapstructure:"meetingLink" yaml:"meetingLink"`
	Email       string  `mapstructure:"email" yaml:"email"`
	Available   bool    `mapstructure:"available" yaml:"available"`
}

type Colors struct {
	Primary string `mapstructure:"primary" yaml:"primary"`
	Neutral string `mapstructure:"neutral" yaml:"neutral"`
}

// PageHero carries class overrides per slot of the page hero component.
type PageHero struct {
	Slots map[string]string `mapstructure:"slots" yaml:"slots"`
}

type UI struct {
	Colors   Colors   `mapstructure:"colors" yaml:"colors"`
	PageHero PageHero `mapstructure:"pageHero" yaml:"pageHero"`
}

type FooterLink struct {
	Icon      string `mapstructure:"icon" yaml:"icon"`
	To        string `mapstructure:"to" yaml:"to"`
	Target    string `mapstructure:"target" yaml:"target,omitempty"`
	AriaLabel string `mapstructure:"aria-label" yaml:"aria-label,omitempty"`
}

type Footer struct {
	// Credits is a plush template; <%= year %> is the current year.
	Credits   string       `mapstructure:"credits" yaml:"credits"`
	ColorMode bool         `mapstructure:"colorMode" yaml:"colorMode"`
	Links     []FooterLink `mapstructure:"links" yaml:"links"`
}

// DefaultSite returns the site shipped with the theme.
func DefaultSite() Site {
	return Site{
		Global: Global{
			Picture: Picture{
				Dark:  "/avatar.jpg",
				Light: "/avatar.jpg",
				Alt:   "My profile picture",
			},
			MeetingLink: "https://cal.com/",
			Email:       "ui-pro@nuxt.com",
			Available:   true,
		},
		UI: UI{
			Colors: Colors{Primary: "blue", Neutral: "neutral"},
			PageHero: PageHero{Slots: map[string]string{
				"container":   "py-18 sm:py-24 lg:py-32",
				"title":       "mx-auto max-w-xl text-pretty text-3xl sm:text-4xl lg:text-5xl",
				"description": "mt-2 text-md mx-auto max-w-2xl text-pretty sm:text-md text-muted",
			}},
		},
		Footer: Footer{
			Credits:   "© <%= year %> • Doctor Nyte . All rights reserved.",
			ColorMode: false,
			Links: []FooterLink{
				{Icon: "i-simple-icons-discord", To: "https://go.nuxt.com/discord", Target: "_blank", AriaLabel: "Nuxt on Discord"},
				{Icon: "i-simple-icons-x", To: "https://x.com/docnyte", Target: "_blank", AriaLabel: "Doctor Nyte on X"},
				{Icon: "i-simple-icons-github", To: "https://github.com/docnyte", Target: "_blank", AriaLabel: "Doctor Nyte on GitHub"},
			},
		},
	}
}

// FooterLinkSchema describes one footer icon link.
func FooterLinkSchema() *schema.ObjectSchema {
	return schema.Object(
		schema.F("icon", schema.String().NonEmpty()),
		schema.F("to", schema.String().URL()),
		schema.F("target", schema.Optional(schema.Enum(content.LinkTargets...))),
		schema.F("aria-label", schema.Optional(schema.String())),
	)
}

func (l FooterLink) record() map[string]any {
	rec := map[string]any{"icon": l.Icon, "to": l.To}
	if l.Target != "" {
		rec["target"] = l.Target
	}
	if l.AriaLabel != "" {
		rec["aria-label"] = l.AriaLabel
	}
	return rec
}

// Validate checks the site URL, the UI colors and every footer link.
func (s Site) Validate() error {
	if s.URL != "" {
		if _, err := schema.Validate(schema.String().URL(), s.URL); err != nil {
			return errors.Wrap(err, "url")
		}
	}
	if s.UI.Colors.Primary == "" || s.UI.Colors.Neutral == "" {
		return errors.New("ui.colors: primary and neutral are required")
	}
	links := make([]any, len(s.Footer.Links))
	for i, l := range s.Footer.Links {
		links[i] = l.record()
	}
	if _, err := schema.Validate(schema.Array(FooterLinkSchema()), links); err != nil {
		return errors.Wrap(err, "footer.links")
	}
	if _, err := s.Footer.RenderCredits(time.Now()); err != nil {
		return err
	}
	return nil
}

// RenderCredits executes the credits template for the year of now.
func (f Footer) RenderCredits(now time.Time) (string, error) {
	if !strings.Contains(f.Credits, "<%") {
		return f.Credits, nil
	}
	ctx := plush.NewContext()
	ctx.Set("year", now.Year())
	tmpl, err := plush.Parse(f.Credits)
	if err != nil {
		return "", errors.Wrap(err, "parsing footer credits")
	}
	out, err := tmpl.Exec(ctx)
	if err != nil {
		return "", errors.Wrap(err, "rendering footer credits")
	}
	return out, nil
}
