// Package metadata resolves the display title and artist for an audio
// resource. Embedded tags win when readable; otherwise the filename carries
// the title and the artist falls back to a placeholder.
package metadata

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// UnknownArtist is the artist shown when no tag data is available.
const UnknownArtist = "Unknown Artist"

// Resolve determines the title and artist for the resource at path.
// Local files are probed for embedded tags; remote URLs and untagged files
// fall back to the display name with the ".mp3" suffix stripped.
func Resolve(path string) (title, artist string) {
	title = DisplayName(path)
	artist = UnknownArtist

	if isRemote(path) {
		return title, artist
	}

	f, err := os.Open(path)
	if err != nil {
		return title, artist
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return title, artist
	}
	if t := strings.TrimSpace(m.Title()); t != "" {
		title = t
	}
	if a := strings.TrimSpace(m.Artist()); a != "" {
		artist = a
	}
	return title, artist
}

// DisplayName derives a human-readable name from a path or URL: the last
// path segment without the ".mp3" suffix.
func DisplayName(path string) string {
	name := filepath.Base(path)
	if isRemote(path) {
		if u, err := url.Parse(path); err == nil && u.Path != "" {
			name = filepath.Base(u.Path)
		}
	}
	return strings.TrimSuffix(name, ".mp3")
}

func isRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
