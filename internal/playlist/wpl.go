package playlist

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jscyril/wpl_player/api"
	"github.com/jscyril/wpl_player/internal/library"
	playerrors "github.com/jscyril/wpl_player/pkg/errors"
)

// wplHeader precedes the document on the same line
const wplHeader = `<?wpl version="1.0"?>`

type wplDocument struct {
	XMLName xml.Name `xml:"smil"`
	Head    *wplHead `xml:"head"`
	Body    *wplBody `xml:"body"`
}

type wplHead struct {
	Title  *string `xml:"title"`
	Author *string `xml:"author"`
}

type wplBody struct {
	Seq *wplSeq `xml:"seq"`
}

type wplSeq struct {
	Media []wplMedia `xml:"media"`
}

type wplMedia struct {
	Src         *string `xml:"src,attr"`
	AlbumTitle  string  `xml:"albumTitle,attr"`
	AlbumArtist string  `xml:"albumArtist,attr"`
	TrackTitle  string  `xml:"trackTitle,attr"`
	TrackArtist string  `xml:"trackArtist,attr"`
	Duration    string  `xml:"duration,attr"`
}

// Loader builds tracks for a list of files, keeping their order
type Loader interface {
	Load(ctx context.Context, files []string) ([]*api.Track, error)
}

// Parse reads a .wpl file. Track metadata comes from the referenced files,
// not from the document; a referenced file that is missing fails the parse.
// A nil loader reads tags with library.MetadataReader.
func Parse(ctx context.Context, path string, loader Loader) (*Playlist, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", playerrors.ErrNotFound, path)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", playerrors.ErrNotFound, absPath)
		}
		return nil, fmt.Errorf("read playlist file: %w", err)
	}

	if FormatFromPath(absPath) != FormatWPL {
		return nil, fmt.Errorf("%w: %s", playerrors.ErrUnsupportedFormat, absPath)
	}

	var doc wplDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", playerrors.ErrMalformedPlaylist, err)
	}
	if doc.Head == nil || doc.Head.Title == nil {
		return nil, fmt.Errorf("%w: missing head/title", playerrors.ErrMalformedPlaylist)
	}
	if doc.Body == nil || doc.Body.Seq == nil {
		return nil, fmt.Errorf("%w: missing body/seq", playerrors.ErrMalformedPlaylist)
	}

	baseDir := filepath.Dir(absPath)
	files := make([]string, 0, len(doc.Body.Seq.Media))
	for i, media := range doc.Body.Seq.Media {
		if media.Src == nil || strings.TrimSpace(*media.Src) == "" {
			return nil, fmt.Errorf("%w: media %d has no src", playerrors.ErrMalformedPlaylist, i)
		}
		src := *media.Src
		if !filepath.IsAbs(src) {
			src = filepath.Join(baseDir, src)
		}
		files = append(files, src)
	}

	if loader == nil {
		loader = library.NewScanner(0, nil)
	}
	tracks, err := loader.Load(ctx, files)
	if err != nil {
		return nil, err
	}

	p := New(*doc.Head.Title, "")
	if doc.Head.Author != nil {
		p.author = *doc.Head.Author
	}
	p.tracks = append(p.tracks, tracks...)
	p.file = absPath
	return p, nil
}

// Render serialises the playlist as a single line: the wpl processing
// instruction followed by the smil document, without a trailing newline.
func Render(p *Playlist) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return render(p.name, p.author, p.tracks)
}

func render(name, author string, tracks []*api.Track) string {
	doc := wplDocument{
		Head: &wplHead{Title: &name, Author: &author},
		Body: &wplBody{Seq: &wplSeq{Media: make([]wplMedia, 0, len(tracks))}},
	}
	for _, t := range tracks {
		src := t.Path
		doc.Body.Seq.Media = append(doc.Body.Seq.Media, wplMedia{
			Src:         &src,
			AlbumTitle:  t.Album,
			AlbumArtist: t.Artist,
			TrackTitle:  t.Title,
			TrackArtist: t.Artist,
			Duration:    strconv.Itoa(t.Seconds()),
		})
	}

	// Marshalling plain structs of strings cannot fail.
	out, _ := xml.Marshal(doc)
	return wplHeader + string(out)
}
