package ui

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jscyril/wpl_player/api"
	"github.com/jscyril/wpl_player/internal/audio"
	"github.com/jscyril/wpl_player/internal/config"
	"github.com/jscyril/wpl_player/internal/library"
	"github.com/jscyril/wpl_player/internal/logging"
	"github.com/jscyril/wpl_player/internal/playlist"
)

func newTestModel(t *testing.T, pl *playlist.Playlist) Model {
	t.Helper()
	cfg := config.GetDefaultConfig()
	cfg.DefaultPlaylistDir = t.TempDir()
	cfg.DefaultBrowserDir = t.TempDir()

	engine := audio.NewEngine(pl, nil, audio.WithLogger(logging.Discard()))
	t.Cleanup(func() { engine.Close() })

	m, err := NewModel(engine, library.NewScanner(1, nil), cfg, logging.Discard())
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	t.Cleanup(func() { m.watcher.Close() })
	return m
}

func writeTrack(t *testing.T, dir, name string) *api.Track {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, make([]byte, 64), 0644); err != nil {
		t.Fatal(err)
	}
	return &api.Track{Path: path, Title: name}
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAddTracks_FirstBecomesCurrent(t *testing.T) {
	m := newTestModel(t, nil)
	dir := t.TempDir()
	first := writeTrack(t, dir, "a.mp3")
	second := writeTrack(t, dir, "b.mp3")

	m.addTracks([]*api.Track{first, second})

	if got := m.engine.CurrentTrack(); got != first {
		t.Errorf("current track = %v, want first added track", got)
	}
	if m.engine.Playlist().Size() != 2 {
		t.Errorf("playlist size = %d, want 2", m.engine.Playlist().Size())
	}
	if m.saved {
		t.Errorf("playlist with unsaved tracks should not be marked saved")
	}
}

func TestAddTracks_KeepsCurrentWhenNotEmpty(t *testing.T) {
	dir := t.TempDir()
	first := writeTrack(t, dir, "a.mp3")
	pl := playlist.New("", "")
	pl.Add(first)

	m := newTestModel(t, pl)
	m.addTracks([]*api.Track{writeTrack(t, dir, "b.mp3")})

	if got := m.engine.CurrentTrack(); got != first {
		t.Errorf("current track changed to %v", got)
	}
}

func TestQuit_AsksTwiceWhenUnsaved(t *testing.T) {
	m := newTestModel(t, nil)
	m.addTracks([]*api.Track{writeTrack(t, t.TempDir(), "a.mp3")})

	model, cmd := m.Update(keyPress("q"))
	if cmd != nil {
		t.Fatalf("first quit with unsaved changes should not exit")
	}
	m = model.(Model)
	if !m.confirmQuit {
		t.Errorf("confirmQuit should be set")
	}

	_, cmd = m.Update(keyPress("q"))
	if cmd == nil {
		t.Fatalf("second quit should exit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("second quit should return tea.Quit")
	}
}

func TestQuit_OtherKeyResetsConfirmation(t *testing.T) {
	m := newTestModel(t, nil)
	m.addTracks([]*api.Track{writeTrack(t, t.TempDir(), "a.mp3")})

	model, _ := m.Update(keyPress("q"))
	model, _ = model.(Model).Update(keyPress("?"))
	if model.(Model).confirmQuit {
		t.Errorf("another key should reset the quit confirmation")
	}
}

func TestQuit_SavedExitsImmediately(t *testing.T) {
	m := newTestModel(t, nil)

	_, cmd := m.Update(keyPress("q"))
	if cmd == nil {
		t.Fatalf("quit on a blank playlist should exit")
	}
}

func TestAdd_BrowserOffersScannerFormats(t *testing.T) {
	m := newTestModel(t, nil)

	model, _ := m.Update(keyPress("a"))
	m = model.(Model)
	if !m.browsing {
		t.Fatalf("add key should open the browser")
	}

	want := []string{".mp3", ".wpl"}
	if !slices.Equal(m.browserView.Extensions, want) {
		t.Errorf("browser extensions = %v, want %v", m.browserView.Extensions, want)
	}
	if got := m.scanner.SupportedFormats(); !slices.Equal(got, []string{".mp3"}) {
		t.Errorf("scanner formats changed to %v", got)
	}
}

func TestSave_WritesToPlaylistDir(t *testing.T) {
	m := newTestModel(t, nil)
	m.engine.Playlist().SetName("Road Trip")
	m.addTracks([]*api.Track{writeTrack(t, t.TempDir(), "a.mp3")})

	m.save()

	want := filepath.Join(m.cfg.DefaultPlaylistDir, "Road Trip.wpl")
	if m.engine.Playlist().File() != want {
		t.Errorf("file = %q, want %q", m.engine.Playlist().File(), want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("playlist not written: %v", err)
	}
	if !m.saved {
		t.Errorf("playlist should be marked saved")
	}
}

func TestMoveSelected(t *testing.T) {
	dir := t.TempDir()
	a := writeTrack(t, dir, "a.mp3")
	b := writeTrack(t, dir, "b.mp3")
	pl := playlist.New("", "")
	pl.Add(a, b)

	m := newTestModel(t, pl)
	m.moveSelected(1)

	if pl.Track(0) != b || pl.Track(1) != a {
		t.Errorf("tracks not swapped")
	}
	if m.playlistView.SelectedIndex() != 1 {
		t.Errorf("selection should follow the moved track, got %d", m.playlistView.SelectedIndex())
	}

	m.moveSelected(1)
	if pl.Track(1) != a {
		t.Errorf("moving past the end should do nothing")
	}
}

func TestPlaylistFileName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", "playlist.wpl"},
		{"  ", "playlist.wpl"},
		{"Mix", "Mix.wpl"},
		{"a/b", "a_b.wpl"},
	}

	for _, tt := range tests {
		if got := playlistFileName(tt.name); got != tt.want {
			t.Errorf("playlistFileName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestKeyMap_SpaceLabel(t *testing.T) {
	keys := newKeyMap(config.GetDefaultConfig().KeyBindings)
	if keys.PlayPause.Help().Key != "space" {
		t.Errorf("play/pause help key = %q, want space", keys.PlayPause.Help().Key)
	}
	if len(keys.FullHelp()) == 0 || len(keys.ShortHelp()) == 0 {
		t.Errorf("help should list bindings")
	}
}

func TestFileWatcher(t *testing.T) {
	w, err := newFileWatcher(logging.Discard())
	if err != nil {
		t.Fatalf("newFileWatcher() error = %v", err)
	}
	defer w.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "list.wpl")
	if err := os.WriteFile(path, []byte("one\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	got := make(chan tea.Msg, 1)
	go func() { got <- w.Wait()() }()

	// Changes to other files in the directory are ignored
	if err := os.WriteFile(filepath.Join(dir, "other.wpl"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("two\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case msg := <-got:
		changed, ok := msg.(PlaylistFileChangedMsg)
		if !ok || changed.Path != path {
			t.Errorf("Wait() = %#v, want change of %s", msg, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change event")
	}
}
