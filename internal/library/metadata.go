package library

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/faiface/beep/mp3"
	"github.com/google/uuid"
	"github.com/jscyril/wpl_player/api"
	playerrors "github.com/jscyril/wpl_player/pkg/errors"
)

const (
	UnknownArtist = "unknown artist"
	UnknownAlbum  = "unknown album"
)

// MetadataReader builds tracks from MP3 files
type MetadataReader struct{}

// NewMetadataReader creates a new metadata reader
func NewMetadataReader() *MetadataReader {
	return &MetadataReader{}
}

// Read builds a Track for the file at filePath. Only a missing file is an
// error; unreadable tags or an undecodable stream fall back to defaults.
func (r *MetadataReader) Read(filePath string) (*api.Track, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", playerrors.ErrNotFound, filePath)
	}

	info, err := os.Stat(absPath)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: %s", playerrors.ErrNotFound, absPath)
	}

	track := &api.Track{
		ID:     uuid.NewString(),
		Path:   absPath,
		Title:  titleFromPath(absPath),
		Artist: UnknownArtist,
		Album:  UnknownAlbum,
		Size:   info.Size(),
	}

	r.readTags(track)
	track.Duration = decodeDuration(absPath)

	return track, nil
}

// readTags fills title, artist, album and cover art from the file's tags
func (r *MetadataReader) readTags(track *api.Track) {
	file, err := os.Open(track.Path)
	if err != nil {
		return
	}
	defer file.Close()

	metadata, err := tag.ReadFrom(file)
	if err != nil {
		return
	}

	track.Title = getOrDefault(metadata.Title(), track.Title)
	track.Artist = getOrDefault(metadata.Artist(), UnknownArtist)
	track.Album = getOrDefault(metadata.Album(), UnknownAlbum)

	if picture := metadata.Picture(); picture != nil && len(picture.Data) > 0 {
		track.Cover = api.NewCoverArt(picture.MIMEType, picture.Data)
	}
}

// decodeDuration decodes the frame headers to count samples. The decoder can
// panic on truncated frames, which is treated like any other failure.
func decodeDuration(filePath string) (d time.Duration) {
	defer func() {
		if recover() != nil {
			d = 0
		}
	}()

	file, err := os.Open(filePath)
	if err != nil {
		return 0
	}

	// Closing the streamer closes the file.
	streamer, format, err := mp3.Decode(file)
	if err != nil {
		file.Close()
		return 0
	}
	defer streamer.Close()

	if format.SampleRate <= 0 {
		return 0
	}
	return format.SampleRate.D(streamer.Len()).Truncate(time.Second)
}

// titleFromPath returns the file name without its extension
func titleFromPath(filePath string) string {
	base := filepath.Base(filePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// getOrDefault returns the value if non-blank, otherwise returns the default
func getOrDefault(value, defaultValue string) string {
	if strings.TrimSpace(value) == "" {
		return defaultValue
	}
	return value
}
