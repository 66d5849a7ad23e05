package library

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jscyril/wpl_player/api"
	playerrors "github.com/jscyril/wpl_player/pkg/errors"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// TrackReader builds a Track from a file path
type TrackReader interface {
	Read(filePath string) (*api.Track, error)
}

// Scanner expands paths into tracks using a bounded worker pool
type Scanner struct {
	workers int
	formats []string
	reader  TrackReader
}

// NewScanner creates a new scanner. A nil reader uses MetadataReader.
func NewScanner(workers int, reader TrackReader) *Scanner {
	if workers <= 0 {
		workers = 4 // Default worker count
	}
	if reader == nil {
		reader = NewMetadataReader()
	}
	return &Scanner{
		workers: workers,
		formats: []string{".mp3"},
		reader:  reader,
	}
}

// SupportedFormats returns list of supported audio formats
func (s *Scanner) SupportedFormats() []string {
	return s.formats
}

// IsSupported checks if a file format is supported
func (s *Scanner) IsSupported(filePath string) bool {
	return lo.Contains(s.formats, strings.ToLower(filepath.Ext(filePath)))
}

// Expand resolves every path to the audio files it names. Directories are
// walked in lexical order and contribute only supported files. Plain files
// are kept as given so that a missing file surfaces when it is loaded, but
// one with an unsupported extension fails with ErrUnsupportedFormat.
func (s *Scanner) Expand(ctx context.Context, paths []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			if !s.IsSupported(path) {
				return nil, unsupported(path)
			}
			files = append(files, path)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return &playerrors.ScanError{Path: p, Err: err}
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if !d.IsDir() && s.IsSupported(p) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// Load builds tracks for files concurrently. The result keeps the order of
// files and the first failure cancels the remaining work.
func (s *Scanner) Load(ctx context.Context, files []string) ([]*api.Track, error) {
	tracks := make([]*api.Track, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			track, err := s.ScanFile(file)
			if err != nil {
				return err
			}
			tracks[i] = track
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tracks, nil
}

// Scan expands paths and loads the resulting tracks
func (s *Scanner) Scan(ctx context.Context, paths []string) ([]*api.Track, error) {
	files, err := s.Expand(ctx, paths)
	if err != nil {
		return nil, err
	}
	return s.Load(ctx, files)
}

// ScanFile builds a single Track
func (s *Scanner) ScanFile(filePath string) (*api.Track, error) {
	if !s.IsSupported(filePath) {
		return nil, unsupported(filePath)
	}
	return s.reader.Read(filePath)
}

func unsupported(path string) error {
	return fmt.Errorf("%w: %s", playerrors.ErrUnsupportedFormat, path)
}
