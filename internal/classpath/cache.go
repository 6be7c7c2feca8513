package classpath

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// CachedListing holds a classpath listing along with source modification
// times used for invalidation.
type CachedListing struct {
	Entries    []Entry          `json:"entries"`
	SourceMods map[string]int64 `json:"source_mods"` // source name -> mtime unix nanos
	CachedAt   time.Time        `json:"cached_at"`
}

// ListCached returns the classpath listing, using the cache file at
// cachePath when it is still valid. A stale or missing cache is rebuilt
// and rewritten.
func ListCached(sources []Source, cachePath string) ([]Entry, error) {
	cached, err := loadCache(cachePath)
	if err == nil && isCacheValid(cached, sources) {
		return cached.Entries, nil
	}

	entries, err := Walk(sources)
	if err != nil {
		return nil, err
	}

	// Best effort; the listing is still returned if the write fails.
	writeCache(cachePath, entries, sources)

	return entries, nil
}

func loadCache(path string) (*CachedListing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var listing CachedListing
	if err := json.Unmarshal(data, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

// isCacheValid checks whether the cached source mtimes still match. Any
// change (or missing source) invalidates.
func isCacheValid(cached *CachedListing, sources []Source) bool {
	if cached == nil || len(cached.SourceMods) == 0 {
		return false
	}
	if len(cached.SourceMods) != len(sources) {
		return false
	}
	for _, src := range sources {
		cachedMtime, ok := cached.SourceMods[src.Name]
		if !ok {
			return false
		}
		if latestMtime(src.BasePath) != cachedMtime {
			return false
		}
	}
	return true
}

// latestMtime returns the latest modification time across all directories
// of a root. Adding or removing a class file touches its package directory.
func latestMtime(basePath string) int64 {
	var latest int64
	_ = filepath.WalkDir(basePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if t := info.ModTime().UnixNano(); t > latest {
			latest = t
		}
		return nil
	})
	return latest
}

func writeCache(path string, entries []Entry, sources []Source) {
	mods := make(map[string]int64, len(sources))
	for _, src := range sources {
		mods[src.Name] = latestMtime(src.BasePath)
	}

	listing := CachedListing{
		Entries:    entries,
		SourceMods: mods,
		CachedAt:   time.Now(),
	}

	data, err := json.MarshalIndent(listing, "", "  ")
	if err != nil {
		return
	}

	_ = os.MkdirAll(filepath.Dir(path), 0755)
	_ = os.WriteFile(path, data, 0644)
}
