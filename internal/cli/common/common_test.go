package common

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jscyril/wpl_player/internal/library"
	"github.com/jscyril/wpl_player/internal/playlist"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("not really audio"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadPlaylist(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.mp3")
	b := filepath.Join(dir, "b.mp3")
	writeFile(t, a)
	writeFile(t, b)
	scanner := library.NewScanner(2, nil)

	t.Run("empty", func(t *testing.T) {
		pl, err := LoadPlaylist(context.Background(), nil, scanner)
		if err != nil {
			t.Fatalf("LoadPlaylist() error = %v", err)
		}
		if pl.Size() != 0 || pl.File() != "" {
			t.Errorf("expected an empty unsaved playlist")
		}
	})

	t.Run("tracks", func(t *testing.T) {
		pl, err := LoadPlaylist(context.Background(), []string{b, a}, scanner)
		if err != nil {
			t.Fatalf("LoadPlaylist() error = %v", err)
		}
		if pl.Size() != 2 || pl.Track(0).Path != b {
			t.Errorf("tracks should keep argument order")
		}
	})

	t.Run("wpl", func(t *testing.T) {
		src := playlist.New("Mix", "me")
		track, err := scanner.ScanFile(a)
		if err != nil {
			t.Fatal(err)
		}
		src.Add(track)
		path := filepath.Join(dir, "mix.wpl")
		if err := src.SaveAs(path, playlist.FormatWPL); err != nil {
			t.Fatal(err)
		}

		pl, err := LoadPlaylist(context.Background(), []string{path}, scanner)
		if err != nil {
			t.Fatalf("LoadPlaylist() error = %v", err)
		}
		if pl.Name() != "Mix" || pl.Size() != 1 || pl.File() != path {
			t.Errorf("loaded %q with %d tracks from %q", pl.Name(), pl.Size(), pl.File())
		}
	})
}

func TestLoadConfig_WritesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.SampleRate != 44100 {
		t.Errorf("SampleRate = %d", cfg.SampleRate)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("defaults should be written: %v", err)
	}
}
