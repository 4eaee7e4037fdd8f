// Package playlist reads and writes plain playlists: one file path per line,
// as used by M3U players.
package playlist

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

// Extensions recognized as playlist inputs.
var extensions = map[string]bool{
	".m3u":  true,
	".m3u8": true,
	".txt":  true,
	".csv":  true,
}

const bom = "\ufeff"

// IsPlaylist returns true if path has a playlist extension.
func IsPlaylist(path string) bool {
	return extensions[strings.ToLower(filepath.Ext(path))]
}

// Read parses playlist lines from r. Blank lines and '#' comments
// (including M3U directives) are skipped. Relative entries are joined
// to dir.
func Read(r io.Reader, dir string) ([]string, error) {
	var paths []string
	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, bom)
			first = false
		}
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !filepath.IsAbs(line) {
			line = filepath.Join(dir, line)
		}
		paths = append(paths, filepath.Clean(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return paths, nil
}

// ReadFile reads the playlist at path, resolving relative entries against
// the playlist's directory.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	paths, err := Read(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return paths, nil
}

// Write writes one path per line to w. Relative items are rewritten relative
// to dir so the playlist resolves from its own location; absolute items are
// written as-is. An empty dir writes every item verbatim.
func Write(w io.Writer, items iter.Seq[string], dir string) error {
	bw := bufio.NewWriter(w)
	for item := range items {
		if _, err := bw.WriteString(relativeTo(item, dir)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile creates (or truncates) the playlist at path, creating parent
// directories as needed.
func WriteFile(path string, items iter.Seq[string]) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return Write(f, items, dir)
}

func relativeTo(item, dir string) string {
	if dir == "" || filepath.IsAbs(item) {
		return item
	}
	rel, err := filepath.Rel(dir, item)
	if err != nil {
		return item
	}
	return filepath.ToSlash(rel)
}
