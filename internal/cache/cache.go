// Package cache stores bundles by a digest of their content.
//
// Two indexes are kept: the ordered list of requested files maps to a key,
// and the key maps to the bundle content. The key is derived from the
// content only, so different file lists that produce byte-identical bundles
// share one entry. Entries are never evicted or changed.
package cache

import (
	"crypto/md5" //nolint:gosec // content addressing, not a security boundary
	"encoding/hex"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	oerrors "github.com/jsmodule/cli/internal/errors"
	"github.com/jsmodule/cli/internal/output"
)

// KeySuffix is appended to the hex digest to form a key.
const KeySuffix = ".js"

// Key returns the cache key of content: its MD5 digest in lowercase hex
// followed by KeySuffix.
func Key(content string) string {
	sum := md5.Sum([]byte(content)) //nolint:gosec // see import
	return hex.EncodeToString(sum[:]) + KeySuffix
}

// BundleCache is a concurrency-safe, content-addressed bundle store.
// The zero value is not usable; call New.
type BundleCache struct {
	mu       sync.RWMutex
	keys     map[string]string // files identity -> key
	contents map[string]string // key -> content

	builds singleflight.Group
}

// New creates an empty BundleCache.
func New() *BundleCache {
	return &BundleCache{
		keys:     make(map[string]string),
		contents: make(map[string]string),
	}
}

// filesIdentity encodes an ordered file list so that two lists map to the
// same string only when they are element-wise equal.
func filesIdentity(files []string) string {
	var b strings.Builder
	for _, f := range files {
		b.WriteString(strconv.Itoa(len(f)))
		b.WriteByte(':')
		b.WriteString(f)
	}
	return b.String()
}

// Store records content as the bundle for files and returns its key.
func (c *BundleCache) Store(files []string, content string) (string, error) {
	if len(files) == 0 {
		return "", oerrors.InvalidArgument("files", "cannot be nil or empty")
	}
	if content == "" {
		return "", oerrors.InvalidArgument("content", "cannot be empty")
	}

	key := Key(content)
	id := filesIdentity(files)

	c.mu.Lock()
	c.keys[id] = key
	if _, ok := c.contents[key]; !ok {
		c.contents[key] = content
	}
	c.mu.Unlock()

	output.With("cache").Debug("stored bundle", "key", key, "files", len(files), "bytes", len(content))
	return key, nil
}

// FindKey returns the key previously stored for exactly this ordered list.
// The boolean is false when the list was never stored.
func (c *BundleCache) FindKey(files []string) (string, bool, error) {
	if len(files) == 0 {
		return "", false, oerrors.InvalidArgument("files", "cannot be nil or empty")
	}

	c.mu.RLock()
	key, ok := c.keys[filesIdentity(files)]
	c.mu.RUnlock()
	return key, ok, nil
}

// FindContent returns the bundle stored under key.
func (c *BundleCache) FindContent(key string) (string, error) {
	if key == "" {
		return "", oerrors.InvalidArgument("key", "cannot be empty")
	}

	c.mu.RLock()
	content, ok := c.contents[key]
	c.mu.RUnlock()
	if !ok {
		return "", &oerrors.NotFoundError{Key: key}
	}
	return content, nil
}

// GetOrBuild returns the key for files, calling build to produce the bundle
// only when none is cached. Concurrent calls for the same list share one
// build.
func (c *BundleCache) GetOrBuild(files []string, build func() (string, error)) (string, error) {
	if build == nil {
		return "", oerrors.InvalidArgument("build", "cannot be nil")
	}
	if key, ok, err := c.FindKey(files); err != nil || ok {
		return key, err
	}

	v, err, shared := c.builds.Do(filesIdentity(files), func() (interface{}, error) {
		// Another caller may have stored while this one waited for the group.
		if key, ok, _ := c.FindKey(files); ok {
			return key, nil
		}
		content, err := build()
		if err != nil {
			return "", err
		}
		return c.Store(files, content)
	})
	if err != nil {
		return "", err
	}
	if shared {
		output.With("cache").Debug("shared concurrent build", "key", v)
	}
	return v.(string), nil
}

// Len returns the number of distinct bundles stored.
func (c *BundleCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.contents)
}
