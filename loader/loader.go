// Package loader is the content pipeline of the site: it resolves every
// collection's source selectors against a content directory, parses the
// matching files and validates them against the registry.
//
// A file that fails to parse or validate becomes a Failure of its own; it
// never stops the other files from loading.
package loader

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/ZacxDev/folio/content"
	"github.com/ZacxDev/folio/frontmatter"
	"github.com/ZacxDev/folio/markdown"
)

// Entry is one validated content file of one collection.
type Entry struct {
	// ID is "<collection>/<file>".
	ID         string       `json:"id" yaml:"id"`
	Collection string       `json:"collection" yaml:"collection"`
	Kind       content.Kind `json:"kind" yaml:"kind"`
	// File is the slash-separated path relative to the content root.
	File      string `json:"file" yaml:"file"`
	Stem      string `json:"stem" yaml:"stem"`
	Extension string `json:"extension" yaml:"extension"`
	// Path is the route of a page entry; empty for data entries.
	Path        string             `json:"path,omitempty" yaml:"path,omitempty"`
	Title       string             `json:"title,omitempty" yaml:"title,omitempty"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Headings    []markdown.Heading `json:"headings,omitempty" yaml:"headings,omitempty"`
	Meta        content.Record     `json:"meta" yaml:"meta"`
	// Extra holds front matter keys the schema does not declare.
	Extra map[string]any `json:"extra,omitempty" yaml:"extra,omitempty"`
	Body  string         `json:"-" yaml:"-"`
}

// Failure is a file that could not become an entry.
type Failure struct {
	Collection string
	File       string
	Err        error
}

func (f Failure) Error() string {
	return f.File + ": " + f.Err.Error()
}

// Result is the outcome of one Load.
type Result struct {
	Entries  []Entry
	Failures []Failure
	// Warnings are non-fatal problems such as *content.SourceNotFoundError.
	Warnings []error
}

// OK reports whether every matched file produced an entry.
func (r *Result) OK() bool {
	return len(r.Failures) == 0
}

// Collection returns the entries of one collection, ordered by ID.
func (r *Result) Collection(name string) []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.Collection == name {
			out = append(out, e)
		}
	}
	return out
}

// Loader loads a content directory against a registry.
type Loader struct {
	registry    *content.Registry
	root        string
	concurrency int
	logger      *slog.Logger
	cache       *DocumentCache
}

// Option configures a Loader.
type Option func(*Loader)

// WithConcurrency bounds the number of files parsed at once.
func WithConcurrency(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.concurrency = n
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithCache reuses parsed documents across loads of unchanged files.
func WithCache(c *DocumentCache) Option {
	return func(l *Loader) {
		l.cache = c
	}
}

// New creates a Loader for the content directory root.
func New(registry *content.Registry, root string, opts ...Option) *Loader {
	l := &Loader{
		registry:    registry,
		root:        root,
		concurrency: runtime.GOMAXPROCS(0),
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Root returns the content directory.
func (l *Loader) Root() string { return l.root }

type job struct {
	collection content.Collection
	source     content.Source
	file       string
}

// Load reads the whole content directory. It returns an error only for
// problems that prevent loading at all: a malformed registry, an unreadable
// content root or a cancelled context.
func (l *Loader) Load(ctx context.Context) (*Result, error) {
	if err := l.registry.Check(); err != nil {
		return nil, err
	}

	files, err := l.scan()
	if err != nil {
		return nil, err
	}

	res := &Result{}
	var jobs []job
	for _, c := range l.registry.Collections() {
		// A file matched by several sources of one collection is loaded once,
		// through the first source that matches it.
		claimed := map[string]bool{}
		for _, src := range c.Sources {
			matched := 0
			for _, f := range files {
				if !src.Match(f) {
					continue
				}
				matched++
				if claimed[f] {
					continue
				}
				claimed[f] = true
				jobs = append(jobs, job{collection: c, source: src, file: f})
			}
			if matched == 0 {
				warn := &content.SourceNotFoundError{Collection: c.Name, Source: src}
				l.logger.Warn("source matched no files", "collection", c.Name, "source", src.Include)
				res.Warnings = append(res.Warnings, warn)
			}
		}
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for _, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			entry, err := l.loadFile(j)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				l.logger.Debug("entry failed", "collection", j.collection.Name, "file", j.file, "error", err)
				res.Failures = append(res.Failures, Failure{Collection: j.collection.Name, File: j.file, Err: err})
				return nil
			}
			res.Entries = append(res.Entries, entry)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "loading content")
	}

	sort.Slice(res.Entries, func(a, b int) bool { return res.Entries[a].ID < res.Entries[b].ID })
	sort.Slice(res.Failures, func(a, b int) bool {
		if res.Failures[a].File != res.Failures[b].File {
			return res.Failures[a].File < res.Failures[b].File
		}
		return res.Failures[a].Collection < res.Failures[b].Collection
	})
	l.logger.Info("content loaded",
		"root", l.root,
		"entries", len(res.Entries),
		"failures", len(res.Failures),
		"warnings", len(res.Warnings))
	return res, nil
}

// scan lists supported files below root as slash-separated relative paths.
// Dot files and dot directories are skipped.
func (l *Loader) scan() ([]string, error) {
	info, err := os.Stat(l.root)
	if err != nil {
		return nil, errors.Wrap(err, "reading content root")
	}
	if !info.IsDir() {
		return nil, errors.Errorf("content root %s is not a directory", l.root)
	}

	var files []string
	err = filepath.WalkDir(l.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != l.root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !frontmatter.Supported(p) {
			return nil
		}
		rel, err := filepath.Rel(l.root, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "walking content root")
	}
	sort.Strings(files)
	return files, nil
}

func (l *Loader) loadFile(j job) (Entry, error) {
	doc, err := l.parse(j.file)
	if err != nil {
		return Entry{}, err
	}

	rec, err := l.registry.Validate(j.collection.Name, doc.Meta)
	if err != nil {
		var ve *content.ViolationError
		if errors.As(err, &ve) {
			ve.Source = j.file
		}
		return Entry{}, err
	}

	ext := path.Ext(j.file)
	e := Entry{
		ID:         j.collection.Name + "/" + j.file,
		Collection: j.collection.Name,
		Kind:       j.collection.Kind,
		File:       j.file,
		Stem:       strings.TrimSuffix(j.file, ext),
		Extension:  strings.TrimPrefix(ext, "."),
		Meta:       rec,
		Body:       doc.Body,
	}
	for k, v := range doc.Meta {
		if _, kept := rec[k]; !kept {
			if e.Extra == nil {
				e.Extra = make(map[string]any)
			}
			e.Extra[k] = v
		}
	}
	if j.collection.Kind == content.KindPage {
		l.describePage(&e, j.source)
	}
	return e, nil
}

// describePage fills the route and the title/description, preferring front
// matter over what the body provides.
func (l *Loader) describePage(e *Entry, src content.Source) {
	e.Path = src.RoutePath(e.File)
	sum := markdown.Summarize(e.Body)
	e.Headings = sum.Headings

	e.Title = sum.Title
	if t, ok := e.Meta["title"].(string); ok {
		e.Title = t
	}
	if e.Title == "" {
		e.Title = humanize(path.Base(e.Stem))
	}
	e.Description = sum.Description
	if d, ok := e.Meta["description"].(string); ok {
		e.Description = d
	}
}

func (l *Loader) parse(rel string) (*frontmatter.Document, error) {
	full := filepath.Join(l.root, filepath.FromSlash(rel))
	info, err := os.Stat(full)
	if err != nil {
		return nil, errors.Wrapf(err, "stat %s", rel)
	}
	if l.cache != nil {
		if doc, ok := l.cache.get(full, info); ok {
			return doc, nil
		}
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", rel)
	}
	doc, err := frontmatter.Parse(rel, data)
	if err != nil {
		return nil, err
	}
	if l.cache != nil {
		l.cache.put(full, info, doc)
	}
	return doc, nil
}

var orderingPrefix = regexp.MustCompile(`^\d+\.`)

// humanize turns a file stem such as "1.getting-started" into "Getting started".
func humanize(stem string) string {
	stem = orderingPrefix.ReplaceAllString(stem, "")
	stem = strings.NewReplacer("-", " ", "_", " ").Replace(stem)
	stem = strings.TrimSpace(stem)
	if stem == "" {
		return ""
	}
	return strings.ToUpper(stem[:1]) + stem[1:]
}
