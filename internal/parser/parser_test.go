package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "one identifier per line",
			input:    "pkg-a\npkg-b\n",
			expected: []string{"pkg-a", "pkg-b"},
		},
		{
			name:     "blank lines are skipped",
			input:    "pkg-a\n\npkg-b\n\n\npkg-c\n",
			expected: []string{"pkg-a", "pkg-b", "pkg-c"},
		},
		{
			name:     "whitespace-only lines are skipped",
			input:    "pkg-a\n   \npkg-b\n",
			expected: []string{"pkg-a", "pkg-b"},
		},
		{
			name:     "lone newline yields nothing",
			input:    "\n",
			expected: nil,
		},
		{
			name:     "empty input yields nothing",
			input:    "",
			expected: nil,
		},
		{
			name:     "source order and duplicates preserved",
			input:    "b\na\nb\n",
			expected: []string{"b", "a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Lines(tt.input))
		})
	}
}

func TestInstalled(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Entry
	}{
		{
			name:  "cargo list with indented binaries",
			input: "ripgrep v14.1.0:\n    rg\nbat v0.24.0:\n    bat\n",
			expected: []Entry{
				{Name: "ripgrep", Version: "v14.1.0"},
				{Name: "bat", Version: "v0.24.0"},
			},
		},
		{
			name:  "registry source marker",
			input: "ripgrep 14.1.0 (registry+https://crates.io)\n",
			expected: []Entry{
				{Name: "ripgrep", Version: "14.1.0", Origin: OriginRegistry},
			},
		},
		{
			name:  "path source marker",
			input: "tm 1.2.0 (path+file:///home/user/tm)\n",
			expected: []Entry{
				{Name: "tm", Version: "1.2.0", Origin: OriginLocal},
			},
		},
		{
			name:  "bare directory source marker with trailing colon",
			input: "tm v0.1.0 (/home/user/tm):\n    tm\n",
			expected: []Entry{
				{Name: "tm", Version: "v0.1.0", Origin: OriginLocal},
			},
		},
		{
			name:  "name only",
			input: "lonely\n",
			expected: []Entry{
				{Name: "lonely"},
			},
		},
		{
			name:     "empty and whitespace lines yield nothing",
			input:    "\n\n   \n\t\n",
			expected: nil,
		},
		{
			name:     "empty input yields nothing",
			input:    "",
			expected: nil,
		},
		{
			name:  "unrecognized source marker is Unknown",
			input: "weird 1.0.0 (git+ssh://somewhere)\n",
			expected: []Entry{
				{Name: "weird", Version: "1.0.0", Origin: OriginUnknown},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Installed(tt.input))
		})
	}
}

// Parsing must be deterministic: the same captured text always yields the
// same ordered sequence.
func TestParsingIsIdempotent(t *testing.T) {
	raw := "ripgrep v14.1.0:\n    rg\ntm v0.1.0 (/home/user/tm):\n    tm\nbat 0.24.0 (registry+https://crates.io)\n"
	assert.Equal(t, Installed(raw), Installed(raw))

	orphans := "pkg-a\n\npkg-b\n"
	assert.Equal(t, Lines(orphans), Lines(orphans))
}

// Every parsed name must be a token drawn verbatim from the input; nothing is
// fabricated from blank lines.
func TestInstalledNamesAreNonEmpty(t *testing.T) {
	raw := "good 1.0.0\n\n   \nalso-good\n"
	for _, entry := range Installed(raw) {
		assert.NotEmpty(t, entry.Name)
		assert.Contains(t, raw, entry.Name)
	}
}
