package loader_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZacxDev/folio/content"
	"github.com/ZacxDev/folio/frontmatter"
	"github.com/ZacxDev/folio/loader"
	"github.com/ZacxDev/folio/schema"
)

func writeFile(t *testing.T, root, rel, body string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(body), 0o644))
}

const helloPost = `---
minRead: 5
date: 2025-02-14
image: /images/blog/hello.png
author:
  name: Doctor Nyte
  avatar:
    src: /avatar.jpg
    alt: Doctor Nyte
tags: [go, nuxt]
draft: true
---
# Hello, world

The first post on the new site.

## Why Go
`

const brokenPost = `---
minRead: 3
date: 2025-03-01
author:
  name: Doctor Nyte
---
# Missing image
`

const pagesFile = `links:
  - label: Read the blog
    to: /blog
    color: primary
  - label: Say hi
    color: rainbow
`

func siteContent(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "index.yml", "title: Home\n")
	writeFile(t, root, "about.yml", "content:\n  intro: I build things.\n")
	writeFile(t, root, "blog/hello.md", helloPost)
	writeFile(t, root, "blog/broken.md", brokenPost)
	writeFile(t, root, "blog.yml", pagesFile)
	writeFile(t, root, ".drafts/secret.md", "---\ntitle: x\n---\n")
	writeFile(t, root, "blog/cover.png", "not content")
	return root
}

func load(t *testing.T, root string, opts ...loader.Option) *loader.Result {
	t.Helper()
	reg, err := content.SiteRegistry()
	require.NoError(t, err)
	res, err := loader.New(reg, root, opts...).Load(context.Background())
	require.NoError(t, err)
	return res
}

func TestLoadIsolatesFailures(t *testing.T) {
	res := load(t, siteContent(t), loader.WithConcurrency(2))

	ids := []string{}
	for _, e := range res.Entries {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"about/about.yml", "blog/blog/hello.md", "index/index.yml"}, ids)

	require.Len(t, res.Failures, 2)
	assert.Equal(t, "blog.yml", res.Failures[0].File)
	assert.Equal(t, content.CollectionPages, res.Failures[0].Collection)
	assert.Equal(t, "blog/broken.md", res.Failures[1].File)

	var ve *content.ViolationError
	require.ErrorAs(t, res.Failures[1].Err, &ve)
	assert.Equal(t, "blog/broken.md", ve.Source)
	assert.Equal(t, []string{"image"}, ve.Violations.Paths())

	require.ErrorAs(t, res.Failures[0].Err, &ve)
	assert.Equal(t, []string{"links[1].color"}, ve.Violations.Paths())
	assert.False(t, res.OK())
	assert.Empty(t, res.Warnings)
}

func TestLoadPageEntry(t *testing.T) {
	res := load(t, siteContent(t))
	posts := res.Collection(content.CollectionBlog)
	require.Len(t, posts, 1)
	post := posts[0]

	assert.Equal(t, "/blog/hello", post.Path)
	assert.Equal(t, "blog/hello", post.Stem)
	assert.Equal(t, "md", post.Extension)
	assert.Equal(t, content.KindPage, post.Kind)
	assert.Equal(t, "Hello, world", post.Title)
	assert.Equal(t, "The first post on the new site.", post.Description)
	require.Len(t, post.Headings, 1)
	assert.Equal(t, "Why Go", post.Headings[0].Text)
	assert.Equal(t, map[string]any{"draft": true}, post.Extra)

	var typed content.BlogPost
	require.NoError(t, content.Decode(post.Meta, &typed))
	assert.Equal(t, []string{"go", "nuxt"}, typed.Tags)
	assert.True(t, typed.Date.Equal(time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)))

	index := res.Collection(content.CollectionIndex)
	require.Len(t, index, 1)
	assert.Equal(t, "/", index[0].Path)
	assert.Equal(t, "Home", index[0].Title, "front matter title wins")
}

func TestLoadWarnsOnEmptySource(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.yml", "")

	res := load(t, root)
	assert.True(t, res.OK())
	require.Len(t, res.Warnings, 3)
	var nf *content.SourceNotFoundError
	require.ErrorAs(t, res.Warnings[0], &nf)
	assert.Equal(t, content.CollectionBlog, nf.Collection)
	assert.Equal(t, "blog/*.md", nf.Source.Include)
}

func TestLoadParseErrorIsPerFile(t *testing.T) {
	root := siteContent(t)
	writeFile(t, root, "blog/bad.md", "---\ntitle: [unclosed\n---\n")

	res := load(t, root)
	var pe *frontmatter.ParseError
	found := false
	for _, f := range res.Failures {
		if f.File == "blog/bad.md" {
			found = true
			require.ErrorAs(t, f.Err, &pe)
		}
	}
	assert.True(t, found)
	assert.Len(t, res.Collection(content.CollectionBlog), 1, "other posts still load")
}

func TestLoadDataCollection(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "team/ada.json", `{"name": "Ada", "role": "CTO"}`)
	reg, err := content.NewRegistry(content.Collection{
		Name:    "team",
		Kind:    content.KindData,
		Sources: []content.Source{content.Glob("team/*.json")},
		Schema:  schema.Object(schema.F("name", schema.String()), schema.F("role", schema.Enum("CTO", "CEO"))),
	})
	require.NoError(t, err)

	res, err := loader.New(reg, root).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	assert.Empty(t, res.Entries[0].Path, "data entries are not routed")
	assert.Equal(t, content.Record{"name": "Ada", "role": "CTO"}, res.Entries[0].Meta)
}

func TestLoadFailsOnMalformedRegistry(t *testing.T) {
	reg, err := content.NewRegistry(content.Collection{
		Name:    "broken",
		Kind:    content.KindData,
		Sources: []content.Source{content.File("a.yml")},
		Schema:  schema.Object(schema.F("a", schema.String()), schema.F("a", schema.String())),
	})
	require.NoError(t, err)

	_, err = loader.New(reg, t.TempDir()).Load(context.Background())
	var de *content.DefinitionError
	require.ErrorAs(t, err, &de)
}

func TestLoadMissingRoot(t *testing.T) {
	reg, err := content.SiteRegistry()
	require.NoError(t, err)
	_, err = loader.New(reg, filepath.Join(t.TempDir(), "nope")).Load(context.Background())
	require.Error(t, err)
}

func TestLoadHonorsCancellation(t *testing.T) {
	reg, err := content.SiteRegistry()
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = loader.New(reg, siteContent(t)).Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoadReusesCachedDocuments(t *testing.T) {
	root := siteContent(t)
	cache := loader.NewDocumentCache(loader.DefaultCacheExpiration, loader.DefaultCacheCleanupInterval)

	first := load(t, root, loader.WithCache(cache))
	assert.Equal(t, 5, cache.Len())

	second := load(t, root, loader.WithCache(cache))
	assert.Equal(t, first.Entries, second.Entries)

	// A changed file is parsed again.
	writeFile(t, root, "blog/broken.md", "---\nminRead: 3\ndate: 2025-03-01\nimage: /x.png\nauthor:\n  name: N\n---\n")
	future := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(filepath.Join(root, "blog/broken.md"), future, future))
	third := load(t, root, loader.WithCache(cache))
	assert.Len(t, third.Collection(content.CollectionBlog), 2)
}

func TestLoadOverlappingSourcesYieldOneEntry(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "projects/folio.yml", "name: folio\n")
	reg, err := content.NewRegistry(content.Collection{
		Name:    "projects",
		Kind:    content.KindPage,
		Sources: []content.Source{content.Glob("projects/*.yml"), content.Glob("**/*.yml")},
		Schema:  schema.Object(schema.F("name", schema.String())),
	})
	require.NoError(t, err)

	res, err := loader.New(reg, root).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "/projects/folio", res.Entries[0].Path, "the first matching source decides the route")
	assert.Empty(t, res.Warnings)
}

func TestLoadFreeFormContentWithNumericKeys(t *testing.T) {
	root := siteContent(t)
	writeFile(t, root, "about.yml", "content:\n  2024: launched\n  2025:\n    q1: folio\n")

	res := load(t, root)
	about := res.Collection(content.CollectionAbout)
	require.Len(t, about, 1)
	assert.Equal(t, map[string]any{
		"2024": "launched",
		"2025": map[string]any{"q1": "folio"},
	}, about[0].Meta["content"])
}
