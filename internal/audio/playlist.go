package audio

import (
	"path/filepath"
	"strings"
)

// Playlist is an ordered list of track paths with a cursor. Next and Prev
// stop at the ends instead of wrapping.
type Playlist struct {
	tracks  []string
	current int
}

// Add appends paths and returns the index of the first one added, or -1
// when paths is empty.
func (p *Playlist) Add(paths ...string) int {
	if len(paths) == 0 {
		return -1
	}
	first := len(p.tracks)
	p.tracks = append(p.tracks, paths...)
	return first
}

func (p *Playlist) Len() int { return len(p.tracks) }

// Current is the index of the selected track; 0 for an empty list.
func (p *Playlist) Current() int { return p.current }

// At returns the path at index i.
func (p *Playlist) At(i int) (string, bool) {
	if i < 0 || i >= len(p.tracks) {
		return "", false
	}
	return p.tracks[i], true
}

// Select moves the cursor to i if it is in range.
func (p *Playlist) Select(i int) bool {
	if i < 0 || i >= len(p.tracks) {
		return false
	}
	p.current = i
	return true
}

// HasNext reports whether a track follows the current one.
func (p *Playlist) HasNext() bool { return p.current < len(p.tracks)-1 }

func (p *Playlist) HasPrev() bool { return p.current > 0 && len(p.tracks) > 0 }

// Names returns display names: base names without the extension.
func (p *Playlist) Names() []string {
	names := make([]string, len(p.tracks))
	for i, t := range p.tracks {
		names[i] = TrackName(t)
	}
	return names
}

// TrackName strips the directory and extension from path.
func TrackName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
