package loader

import (
	"fmt"
	"io/fs"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ZacxDev/folio/frontmatter"
)

const (
	DefaultCacheExpiration      = 30 * time.Minute
	DefaultCacheCleanupInterval = time.Hour
)

// DocumentCache keeps parsed documents between loads. An entry is reused only
// while the file's size and modification time are unchanged.
type DocumentCache struct {
	cache *gocache.Cache
}

// NewDocumentCache creates a cache whose entries expire after expiration.
func NewDocumentCache(expiration, cleanupInterval time.Duration) *DocumentCache {
	return &DocumentCache{cache: gocache.New(expiration, cleanupInterval)}
}

type cachedDocument struct {
	stamp string
	doc   *frontmatter.Document
}

func stamp(info fs.FileInfo) string {
	return fmt.Sprintf("%d:%d", info.Size(), info.ModTime().UnixNano())
}

func (c *DocumentCache) get(file string, info fs.FileInfo) (*frontmatter.Document, bool) {
	v, found := c.cache.Get(file)
	if !found {
		return nil, false
	}
	cd, ok := v.(cachedDocument)
	if !ok || cd.stamp != stamp(info) {
		return nil, false
	}
	return cd.doc, true
}

func (c *DocumentCache) put(file string, info fs.FileInfo, doc *frontmatter.Document) {
	c.cache.SetDefault(file, cachedDocument{stamp: stamp(info), doc: doc})
}

// Len reports the number of cached documents.
func (c *DocumentCache) Len() int {
	return c.cache.ItemCount()
}
