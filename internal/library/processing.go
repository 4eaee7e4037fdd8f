package library

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/llehouerou/spread/internal/cache"
	"github.com/llehouerou/spread/internal/tags"
)

type trackResult struct {
	track  Track
	entry  cache.Entry
	cached bool // entry came from the cache
	store  bool // entry should be written to the cache
	failed bool // tags could not be read
}

// processFiles resolves tags for files in parallel and adds the tracks.
func (l *Library) processFiles(ctx context.Context, files []fileInfo) error {
	if len(files) == 0 {
		return nil
	}

	var hits atomic.Int64
	workCh := make(chan fileInfo)
	resultCh := make(chan trackResult)

	var wg sync.WaitGroup
	for range min(l.opts.Workers, len(files)) {
		wg.Go(func() {
			for f := range workCh {
				r := l.resolve(ctx, f)
				if r.cached {
					hits.Add(1)
				}
				select {
				case resultCh <- r:
				case <-ctx.Done():
					return
				}
			}
		})
	}

	go func() {
		defer close(workCh)
		for _, f := range files {
			select {
			case workCh <- f:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	// Results are applied sequentially; Library is not safe for concurrent use
	var toStore []cache.Entry
	var toForget []string
	for r := range resultCh {
		l.Add(r.track)
		switch {
		case r.store:
			toStore = append(toStore, r.entry)
		case r.failed:
			toForget = append(toForget, r.track.Path)
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	l.log.Debug("resolved tags",
		zap.Int("files", len(files)),
		zap.Int64("cached", hits.Load()),
		zap.Int("read", len(toStore)),
		zap.Int("failed", len(toForget)),
	)

	if l.opts.Cache != nil {
		if err := l.opts.Cache.Store(ctx, toStore); err != nil {
			l.log.Warn("could not update tag cache", zap.Error(err))
		}
		if err := l.opts.Cache.Forget(ctx, toForget); err != nil {
			l.log.Warn("could not prune tag cache", zap.Error(err))
		}
	}
	return nil
}

// resolve returns the track for f, from the cache when it is fresh.
// Files whose tags cannot be read are grouped by their path.
func (l *Library) resolve(ctx context.Context, f fileInfo) trackResult {
	fallback := Track{Path: f.path, Artist: tags.ArtistFromPath(f.rel)}

	if !f.exists || !tags.IsMusicFile(f.path) {
		return trackResult{track: fallback}
	}

	if l.opts.Cache != nil {
		e, ok, err := l.opts.Cache.Lookup(ctx, f.path, f.mtime, f.size)
		if err != nil {
			l.log.Debug("tag cache lookup failed", zap.String("path", f.path), zap.Error(err))
		}
		if ok {
			track := Track{Path: f.path, Artist: e.Artist, Rating: e.Rating, Rated: e.Rated}
			if track.Artist == "" {
				track.Artist = fallback.Artist
			}
			return trackResult{track: track, cached: true}
		}
	}

	t, err := tags.Read(f.path)
	if err != nil {
		l.log.Debug("could not read tags", zap.String("path", f.path), zap.Error(err))
		return trackResult{track: fallback, failed: true}
	}

	// The cache keeps the tagged artist only; the path fallback depends on
	// how the file was reached
	entry := cache.Entry{
		Path:   f.path,
		MTime:  f.mtime,
		Size:   f.size,
		Artist: t.BucketArtist(),
		Rating: t.Rating,
		Rated:  t.Rated,
	}
	track := Track{Path: f.path, Artist: entry.Artist, Rating: t.Rating, Rated: t.Rated}
	if track.Artist == "" {
		track.Artist = fallback.Artist
	}
	return trackResult{track: track, entry: entry, store: true}
}
