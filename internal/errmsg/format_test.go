//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpWritePlaylist,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpWritePlaylist,
			err:      errors.New("permission denied"),
			expected: "Failed to write playlist: permission denied",
		},
		{
			name:     "config operation",
			op:       OpLoadConfig,
			err:      errors.New("bad toml"),
			expected: "Failed to load config: bad toml",
		},
		{
			name:     "cache operation",
			op:       OpOpenCache,
			err:      errors.New("database is locked"),
			expected: "Failed to open tag cache: database is locked",
		},
		{
			name:     "build operation",
			op:       OpBuild,
			err:      errors.New("too many slots"),
			expected: "Failed to build shuffle: too many slots",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpReadPlaylist,
			context:  "mix.m3u",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpReadPlaylist,
			context:  "mix.m3u",
			err:      errors.New("no such file"),
			expected: "Failed to read playlist 'mix.m3u': no such file",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpReadDir,
			context:  "",
			err:      errors.New("permission denied"),
			expected: "Failed to scan directory: permission denied",
		},
		{
			name:     "output file context",
			op:       OpWritePlaylist,
			context:  "/tmp/out.m3u",
			err:      errors.New("read-only file system"),
			expected: "Failed to write playlist '/tmp/out.m3u': read-only file system",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}
