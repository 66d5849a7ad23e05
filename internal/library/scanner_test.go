package library

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jscyril/wpl_player/api"
	playerrors "github.com/jscyril/wpl_player/pkg/errors"
)

type pathReader struct{}

func (pathReader) Read(filePath string) (*api.Track, error) {
	if _, err := os.Stat(filePath); err != nil {
		return nil, playerrors.ErrNotFound
	}
	return &api.Track{Path: filePath, Title: filepath.Base(filePath)}, nil
}

func TestIsSupported(t *testing.T) {
	s := NewScanner(0, nil)

	tests := []struct {
		path     string
		expected bool
	}{
		{"/music/song.mp3", true},
		{"/music/song.MP3", true},
		{"/music/song.wav", false},
		{"/music/song.flac", false},
		{"/music/song.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := s.IsSupported(tt.path); got != tt.expected {
				t.Errorf("IsSupported(%s) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	b := writeFile(t, dir, "b.mp3", []byte("x"))
	a := writeFile(t, dir, "a.mp3", []byte("x"))
	writeFile(t, dir, "cover.jpg", []byte("x"))
	c := writeFile(t, sub, "c.mp3", []byte("x"))
	single := writeFile(t, t.TempDir(), "z.mp3", []byte("x"))

	files, err := NewScanner(2, pathReader{}).Expand(context.Background(), []string{single, dir})
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}

	want := []string{single, a, b, c}
	if len(files) != len(want) {
		t.Fatalf("Expand() = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %s, want %s", i, files[i], want[i])
		}
	}
}

func TestLoad_KeepsOrder(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for _, name := range []string{"1.mp3", "2.mp3", "3.mp3", "4.mp3", "5.mp3"} {
		files = append(files, writeFile(t, dir, name, []byte("x")))
	}

	tracks, err := NewScanner(3, pathReader{}).Load(context.Background(), files)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	for i, track := range tracks {
		if track.Path != files[i] {
			t.Errorf("tracks[%d] = %s, want %s", i, track.Path, files[i])
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeFile(t, dir, "a.mp3", []byte("x")),
		filepath.Join(dir, "missing.mp3"),
	}

	_, err := NewScanner(2, pathReader{}).Scan(context.Background(), files)
	if !errors.Is(err, playerrors.ErrNotFound) {
		t.Errorf("Scan() error = %v, want ErrNotFound", err)
	}
}

func TestScanFile_Unsupported(t *testing.T) {
	_, err := NewScanner(1, pathReader{}).ScanFile("/music/a.ogg")
	if !errors.Is(err, playerrors.ErrUnsupportedFormat) {
		t.Errorf("ScanFile() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestScan_UnsupportedPlainFile(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name  string
		paths []string
	}{
		{"existing", []string{writeFile(t, dir, "song.flac", []byte("x"))}},
		{"missing", []string{filepath.Join(dir, "gone.wav")}},
		{"mixed", []string{writeFile(t, dir, "a.mp3", []byte("x")), filepath.Join(dir, "song.flac")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracks, err := NewScanner(1, pathReader{}).Scan(context.Background(), tt.paths)
			if !errors.Is(err, playerrors.ErrUnsupportedFormat) {
				t.Errorf("Scan() error = %v, want ErrUnsupportedFormat", err)
			}
			if tracks != nil {
				t.Errorf("Scan() returned %d tracks", len(tracks))
			}
		})
	}
}

func TestLoad_Unsupported(t *testing.T) {
	file := writeFile(t, t.TempDir(), "song.ogg", []byte("x"))

	_, err := NewScanner(1, pathReader{}).Load(context.Background(), []string{file})
	if !errors.Is(err, playerrors.ErrUnsupportedFormat) {
		t.Errorf("Load() error = %v, want ErrUnsupportedFormat", err)
	}
}
