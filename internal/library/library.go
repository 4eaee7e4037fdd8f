// Package library collects tracks from directories and playlists, groups
// them by artist and turns them into a nested shuffle.
package library

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"go.uber.org/zap"

	"github.com/llehouerou/spread/internal/cache"
	"github.com/llehouerou/spread/internal/playlist"
	"github.com/llehouerou/spread/internal/shuffle"
	"github.com/llehouerou/spread/internal/tags"
)

const defaultWorkers = 8

// TagCache stores resolved tags between runs.
type TagCache interface {
	Lookup(ctx context.Context, path string, mtime, size int64) (cache.Entry, bool, error)
	Store(ctx context.Context, entries []cache.Entry) error
	Forget(ctx context.Context, paths []string) error
}

// Options configures a Library.
type Options struct {
	// RatingStep is the number of rating units per extra weight.
	// Zero or negative gives every track weight 1.
	RatingStep int
	// Workers bounds concurrent tag reads. Defaults to 8.
	Workers int
	// AllFiles includes non-music files found while walking directories.
	AllFiles bool
	// Cache is optional.
	Cache  TagCache
	Logger *zap.Logger
}

// Track is a file assigned to an artist bucket.
type Track struct {
	Path   string
	Artist string
	Rating int
	Rated  bool
}

// Stats summarizes a library.
type Stats struct {
	Tracks  int // distinct paths
	Artists int // buckets
	Slots   int // sum of weights, the length of one shuffled output
}

// Library groups tracks into weighted artist buckets.
// It is not safe for concurrent use.
type Library struct {
	opts    Options
	log     *zap.Logger
	buckets map[string]*shuffle.Counter[string]
}

// New creates an empty library.
func New(opts Options) *Library {
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Library{
		opts:    opts,
		log:     log,
		buckets: make(map[string]*shuffle.Counter[string]),
	}
}

// Weight returns how many slots t gets: one, plus one per RatingStep of
// rating. Unrated tracks weigh 1.
func (l *Library) Weight(t Track) int {
	if !t.Rated || l.opts.RatingStep <= 0 || t.Rating <= 0 {
		return 1
	}
	return t.Rating/l.opts.RatingStep + 1
}

// Add assigns t to its artist bucket. Adding the same path twice to a
// bucket sums the weights.
func (l *Library) Add(t Track) {
	key := NormalizeArtist(t.Artist)
	c, ok := l.buckets[key]
	if !ok {
		c = shuffle.NewCounter[string]()
		l.buckets[key] = c
	}
	c.AddN(filepath.Clean(t.Path), l.Weight(t))
}

// AddPath adds a directory, a music file or a playlist, depending on what
// path is. Any file that is not music is read as a playlist.
func (l *Library) AddPath(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	switch {
	case info.IsDir():
		return l.AddDir(ctx, path)
	case tags.IsMusicFile(path) && !playlist.IsPlaylist(path):
		return l.AddFile(ctx, path)
	default:
		return l.AddPlaylist(ctx, path)
	}
}

// AddDir walks dir and adds every music file under it (every file when
// AllFiles is set). Entries starting with a dot are skipped.
func (l *Library) AddDir(ctx context.Context, dir string) error {
	files, err := l.discoverFiles(ctx, dir)
	if err != nil {
		return err
	}
	l.log.Debug("discovered files", zap.String("dir", dir), zap.Int("count", len(files)))
	return l.processFiles(ctx, files)
}

// AddPlaylist adds every entry of a playlist file. Entries that cannot be
// stat'ed are still added, grouped by their path.
func (l *Library) AddPlaylist(ctx context.Context, path string) error {
	entries, err := playlist.ReadFile(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)

	files := make([]fileInfo, 0, len(entries))
	for _, p := range entries {
		f := fileInfo{path: p, rel: relativePath(dir, p)}
		if info, err := os.Stat(p); err == nil {
			f.mtime = info.ModTime().Unix()
			f.size = info.Size()
			f.exists = true
		} else {
			l.log.Debug("playlist entry not found", zap.String("playlist", path), zap.String("path", p))
		}
		files = append(files, f)
	}
	l.log.Debug("read playlist", zap.String("playlist", path), zap.Int("count", len(files)))
	return l.processFiles(ctx, files)
}

// AddFile adds a single music file.
func (l *Library) AddFile(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return l.processFiles(ctx, []fileInfo{{
		path:   path,
		rel:    path,
		mtime:  info.ModTime().Unix(),
		size:   info.Size(),
		exists: true,
	}})
}

// Build assembles a nested shuffle with one inner sequence per artist.
// Buckets and paths are added in sorted order so a seeded shuffle is
// reproducible.
func (l *Library) Build() (*shuffle.Nested[string], error) {
	nested := shuffle.NewNested[string]()
	for _, key := range slices.Sorted(maps.Keys(l.buckets)) {
		seq := shuffle.NewSequence[string]()
		for _, e := range sortedEntries(l.buckets[key]) {
			if err := seq.AddN(e.path, e.weight); err != nil {
				return nil, fmt.Errorf("artist %q: %w", key, err)
			}
		}
		if err := nested.Add(seq); err != nil {
			return nil, fmt.Errorf("artist %q: %w", key, err)
		}
	}
	return nested, nil
}

// Stats returns the size of the library.
func (l *Library) Stats() Stats {
	s := Stats{Artists: len(l.buckets)}
	for _, c := range l.buckets {
		for _, n := range c.All() {
			s.Tracks++
			s.Slots += n
		}
	}
	return s
}

type weightedPath struct {
	path   string
	weight int
}

func sortedEntries(c *shuffle.Counter[string]) []weightedPath {
	entries := make([]weightedPath, 0, c.Len())
	for p, n := range c.All() {
		entries = append(entries, weightedPath{path: p, weight: n})
	}
	slices.SortFunc(entries, func(a, b weightedPath) int {
		return cmp.Compare(a.path, b.path)
	})
	return entries
}
