package playlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jscyril/wpl_player/api"
	playerrors "github.com/jscyril/wpl_player/pkg/errors"
	"github.com/samber/lo"
)

// Format names a playlist file format
type Format string

// FormatWPL is the only format playlists are saved in
const FormatWPL Format = "wpl"

// FormatFromPath derives the format from a file extension
func FormatFromPath(path string) Format {
	return Format(strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")))
}

// Playlist is an ordered, mutable list of tracks with an optional
// associated file. It is safe for concurrent use.
type Playlist struct {
	name   string
	author string
	tracks []*api.Track
	file   string
	mu     sync.RWMutex
}

// New creates an empty playlist
func New(name, author string) *Playlist {
	return &Playlist{
		name:   name,
		author: author,
		tracks: make([]*api.Track, 0),
	}
}

// Name returns the playlist name
func (p *Playlist) Name() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.name
}

// SetName sets the playlist name
func (p *Playlist) SetName(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.name = name
}

// Author returns the playlist author
func (p *Playlist) Author() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.author
}

// SetAuthor sets the playlist author
func (p *Playlist) SetAuthor(author string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.author = author
}

// File returns the associated file path, or "" if there is none
func (p *Playlist) File() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.file
}

// SetFile associates the playlist with a file without writing it
func (p *Playlist) SetFile(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.file = path
}

// Add appends tracks and returns the new size
func (p *Playlist) Add(tracks ...*api.Track) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tracks = append(p.tracks, tracks...)
	return len(p.tracks)
}

// Remove removes the track at index
func (p *Playlist) Remove(index int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if index < 0 || index >= len(p.tracks) {
		return fmt.Errorf("%w: %d", playerrors.ErrIndexOutOfRange, index)
	}

	p.tracks = slices.Delete(p.tracks, index, index+1)
	return nil
}

// Track returns the track at index, or nil when index is out of range
func (p *Playlist) Track(index int) *api.Track {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if index < 0 || index >= len(p.tracks) {
		return nil
	}
	return p.tracks[index]
}

// Swap exchanges the tracks at i and j
func (p *Playlist) Swap(i, j int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(p.tracks)
	if i < 0 || i >= n || j < 0 || j >= n {
		return fmt.Errorf("%w: %d, %d", playerrors.ErrIndexOutOfRange, i, j)
	}

	p.tracks[i], p.tracks[j] = p.tracks[j], p.tracks[i]
	return nil
}

// Move moves the track at from to position to, shifting the tracks between
func (p *Playlist) Move(from, to int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(p.tracks)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: %d, %d", playerrors.ErrIndexOutOfRange, from, to)
	}

	track := p.tracks[from]
	p.tracks = slices.Delete(p.tracks, from, from+1)
	p.tracks = slices.Insert(p.tracks, to, track)
	return nil
}

// IndexOf returns the position of this exact track instance, or -1
func (p *Playlist) IndexOf(track *api.Track) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.indexOf(track)
}

func (p *Playlist) indexOf(track *api.Track) int {
	if track == nil {
		return -1
	}
	return slices.Index(p.tracks, track)
}

// First returns the first track, or nil when empty
func (p *Playlist) First() *api.Track {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if len(p.tracks) == 0 {
		return nil
	}
	return p.tracks[0]
}

// Last returns the last track, or nil when empty
func (p *Playlist) Last() *api.Track {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if len(p.tracks) == 0 {
		return nil
	}
	return p.tracks[len(p.tracks)-1]
}

// Tracks returns a copy of the track list
func (p *Playlist) Tracks() []*api.Track {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.tracks)
}

// Size returns the number of tracks
func (p *Playlist) Size() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.tracks)
}

// TotalDuration sums the whole-second durations of all tracks
func (p *Playlist) TotalDuration() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()

	seconds := lo.SumBy(p.tracks, func(t *api.Track) int { return t.Seconds() })
	return time.Duration(seconds) * time.Second
}

// PlayTime formats the total duration as "1h 2m 3s". The hours segment is
// dropped when zero, and the minutes segment too when both are zero.
func (p *Playlist) PlayTime() string {
	return FormatPlayTime(p.TotalDuration())
}

// FormatPlayTime formats d the way PlayTime does
func FormatPlayTime(d time.Duration) string {
	total := int(d / time.Second)
	hours := total / 3600
	minutes := total % 3600 / 60
	seconds := total % 60

	var sb strings.Builder
	if hours > 0 {
		fmt.Fprintf(&sb, "%dh ", hours)
	}
	if hours > 0 || minutes > 0 {
		fmt.Fprintf(&sb, "%dm ", minutes)
	}
	fmt.Fprintf(&sb, "%ds", seconds)
	return sb.String()
}

// Save writes the playlist to its associated file
func (p *Playlist) Save(format Format) error {
	path := p.File()
	if path == "" {
		return fmt.Errorf("%w: playlist has no file", playerrors.ErrNotFound)
	}
	return p.SaveAs(path, format)
}

// SaveAs writes the playlist to path in format and associates the file.
// Unsupported formats leave the file system untouched.
func (p *Playlist) SaveAs(path string, format Format) error {
	if format != FormatWPL {
		return fmt.Errorf("%w: %q", playerrors.ErrUnsupportedFormat, format)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	data := render(p.name, p.author, p.tracks) + "\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return fmt.Errorf("write playlist file: %w", err)
	}

	p.file = path
	return nil
}

// IsSaved reports whether the associated file's first line matches the
// current rendering. A playlist without a file is saved only while blank.
func (p *Playlist) IsSaved() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.file == "" {
		return p.name == "" && p.author == "" && len(p.tracks) == 0
	}

	line, err := readFirstLine(p.file)
	if err != nil {
		return false
	}
	return line == render(p.name, p.author, p.tracks)
}

func readFirstLine(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	line, err := bufio.NewReader(file).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
