package library

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/llehouerou/spread/internal/tags"
)

// fileInfo is a file waiting for its tags to be resolved.
type fileInfo struct {
	path   string
	rel    string // used to guess the artist when tags name none
	mtime  int64
	size   int64
	exists bool
}

// discoverFiles walks dir and returns the files to add.
func (l *Library) discoverFiles(ctx context.Context, dir string) ([]fileInfo, error) {
	var files []fileInfo
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if path == dir {
				return walkErr
			}
			// Skip unreadable entries and keep scanning the rest
			l.log.Debug("skipping entry", zap.String("path", path), zap.Error(walkErr))
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !l.opts.AllFiles && !tags.IsMusicFile(path) {
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			l.log.Debug("skipping file", zap.String("path", path), zap.Error(infoErr))
			return nil
		}

		files = append(files, fileInfo{
			path:   path,
			rel:    relativePath(dir, path),
			mtime:  info.ModTime().Unix(),
			size:   info.Size(),
			exists: true,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// relativePath returns path relative to base, or path itself if it cannot
// be expressed relative to base.
func relativePath(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return rel
}
