// Package sitemap lists the routes of the loaded page entries and renders
// them as a sitemaps.org urlset.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/ZacxDev/folio/content"
	"github.com/ZacxDev/folio/loader"
)

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

type Sitemap struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	Urls    []Url    `xml:"url"`
}

type Url struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// Route is one routable page.
type Route struct {
	Path       string    `json:"path" yaml:"path"`
	Collection string    `json:"collection" yaml:"collection"`
	File       string    `json:"file" yaml:"file"`
	LastMod    time.Time `json:"lastmod,omitempty" yaml:"lastmod,omitempty"`
}

// DuplicateRouteError reports two page entries resolving to the same path.
type DuplicateRouteError struct {
	Path  string
	Files []string
}

func (e *DuplicateRouteError) Error() string {
	return fmt.Sprintf("route %s is produced by %s", e.Path, strings.Join(e.Files, ", "))
}

// Routes returns the routes of the page entries ordered by path. Every path
// claimed by more than one entry is reported as a *DuplicateRouteError; the
// first entry in ID order keeps the route.
func Routes(entries []loader.Entry) ([]Route, []error) {
	byPath := map[string]*Route{}
	claims := map[string][]string{}
	for _, e := range entries {
		if e.Kind != content.KindPage || e.Path == "" {
			continue
		}
		claims[e.Path] = append(claims[e.Path], e.File)
		if _, taken := byPath[e.Path]; taken {
			continue
		}
		r := &Route{Path: e.Path, Collection: e.Collection, File: e.File}
		if d, ok := e.Meta["date"].(time.Time); ok {
			r.LastMod = d
		}
		byPath[e.Path] = r
	}

	routes := make([]Route, 0, len(byPath))
	for _, r := range byPath {
		routes = append(routes, *r)
	}
	sort.Slice(routes, func(a, b int) bool { return routes[a].Path < routes[b].Path })

	var errs []error
	for _, r := range routes {
		if files := claims[r.Path]; len(files) > 1 {
			errs = append(errs, &DuplicateRouteError{Path: r.Path, Files: files})
		}
	}
	return routes, errs
}

// Generate renders routes below baseURL, including the XML header.
func Generate(baseURL string, routes []Route) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return "", errors.Errorf("sitemap base URL %q must be absolute", baseURL)
	}
	prefix := strings.TrimSuffix(base.String(), "/")

	sitemap := Sitemap{
		Xmlns: xmlns,
	}
	for _, r := range routes {
		u := Url{Loc: prefix + r.Path}
		if !r.LastMod.IsZero() {
			u.LastMod = r.LastMod.Format("2006-01-02")
		}
		sitemap.Urls = append(sitemap.Urls, u)
	}

	xmlOutput, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "encoding sitemap")
	}
	return xml.Header + string(xmlOutput) + "\n", nil
}
