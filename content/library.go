// Package content serves static assets from a filesystem root, with a small
// read-through cache in front of the disk.
package content

import (
	"context"
	"fmt"
	"io/ioutil"
	"mime"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/cespare/xxhash/v2"
)

type (
	// Library resolves request paths against a single root directory.
	// Asset bytes are cached with a bounded TTL, so an edited file shows
	// up after the entry expires (or a restart) rather than immediately.
	Library struct {
		root  string
		cache *bigcache.BigCache
	}
)

func OpenLibrary(root string) (*Library, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("unable to resolve content root %v, cause %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("unable to open content root %v, cause %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content root %v is not a directory", abs)
	}
	cache, _ := bigcache.NewBigCache(bigcache.DefaultConfig(10 * time.Minute))
	return &Library{
		root:  abs,
		cache: cache,
	}, nil
}

func (l *Library) Root() string {
	return l.root
}

// Asset returns the bytes, mime type and strong ETag for the asset the
// request path points at. The path is rooted and cleaned before touching
// the disk, so no request can read outside the library root.
func (l *Library) Asset(_ context.Context, assetPath string) ([]byte, string, string, error) {
	clean := path.Clean("/" + assetPath)
	if buf, err := l.cache.Get(clean); err == nil {
		return buf, mimeFor(clean), etagFor(buf), nil
	}
	full := filepath.Join(l.root, filepath.FromSlash(clean))
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return nil, "", "", AssetNotFound{Path: clean}
	}
	buf, err := ioutil.ReadFile(full)
	if err != nil {
		return nil, "", "", fmt.Errorf("unable to read asset %v, cause %w", clean, err)
	}
	l.cache.Set(clean, buf)
	return buf, mimeFor(clean), etagFor(buf), nil
}

func mimeFor(assetPath string) string {
	mt := mime.TypeByExtension(path.Ext(assetPath))
	if mt == "" {
		mt = "application/octet-stream"
	}
	return mt
}

func etagFor(buf []byte) string {
	return fmt.Sprintf("%q", fmt.Sprintf("%016x", xxhash.Sum64(buf)))
}
