package ui

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jscyril/wpl_player/api"
	"github.com/jscyril/wpl_player/internal/audio"
	"github.com/jscyril/wpl_player/internal/config"
	"github.com/jscyril/wpl_player/internal/library"
	"github.com/jscyril/wpl_player/internal/playlist"
	"github.com/jscyril/wpl_player/internal/ui/views"
	playerrors "github.com/jscyril/wpl_player/pkg/errors"
)

// Model is the main bubbletea model
type Model struct {
	// Dimensions
	width  int
	height int

	// Views
	playerView   views.PlayerView
	playlistView views.PlaylistView
	browserView  views.BrowserView
	browsing     bool

	// Components
	engine  *audio.Engine
	scanner *library.Scanner
	watcher *fileWatcher
	events  <-chan api.AudioEvent
	keys    keyMap
	help    help.Model
	cfg     *config.Config
	logger  *slog.Logger

	// State
	saved       bool
	confirmQuit bool
	status      string
	ctx         context.Context
	cancel      context.CancelFunc
	err         error

	// Styles
	headerStyle lipgloss.Style
	statusStyle lipgloss.Style
	errorStyle  lipgloss.Style
}

// StateUpdateMsg is sent when the engine publishes an event
type StateUpdateMsg struct {
	Event api.AudioEvent
}

// TracksLoadedMsg carries tracks read for the add browser
type TracksLoadedMsg struct {
	Tracks []*api.Track
	Err    error
}

// PlaylistLoadedMsg carries a playlist opened from the add browser
type PlaylistLoadedMsg struct {
	Playlist *playlist.Playlist
	Err      error
}

// NewModel creates a new application model around a running engine
func NewModel(engine *audio.Engine, scanner *library.Scanner, cfg *config.Config, logger *slog.Logger) (Model, error) {
	if logger == nil {
		logger = slog.Default()
	}
	watcher, err := newFileWatcher(logger)
	if err != nil {
		return Model{}, fmt.Errorf("create playlist watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		width:   80,
		height:  24,
		engine:  engine,
		scanner: scanner,
		watcher: watcher,
		events:  engine.Events(),
		keys:    newKeyMap(cfg.KeyBindings),
		help:    help.New(),
		cfg:     cfg,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		headerStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Padding(0, 1),
		statusStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Padding(0, 1),
		errorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true).
			Padding(0, 1),
	}

	m.playerView = views.NewPlayerView(m.width, 10)
	m.playlistView = views.NewPlaylistView(m.width, m.height-14)

	if err := m.watchPlaylistFile(); err != nil {
		logger.Warn("cannot watch playlist file", "error", err)
	}
	m.saved = engine.Playlist().IsSaved()
	m.refresh()

	return m, nil
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.listenForEvents(),
		m.watcher.Wait(),
	)
}

// listenForEvents returns a command that waits for the next engine event
func (m Model) listenForEvents() tea.Cmd {
	return func() tea.Msg {
		select {
		case event, ok := <-m.events:
			if !ok {
				return nil
			}
			return StateUpdateMsg{Event: event}
		case <-m.ctx.Done():
			return nil
		}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewSizes()

	case StateUpdateMsg:
		if msg.Event.Type == api.EventError {
			if err, ok := msg.Event.Payload.(error); ok {
				m.err = err
			}
		}
		m.refresh()
		cmds = append(cmds, m.listenForEvents())

	case PlaylistFileChangedMsg:
		m.saved = m.engine.Playlist().IsSaved()
		m.refresh()
		cmds = append(cmds, m.watcher.Wait())

	case views.BrowserClosedMsg:
		m.browsing = false

	case views.FileChosenMsg:
		m.browsing = false
		if strings.EqualFold(filepath.Ext(msg.Path), ".wpl") {
			m.status = "Opening " + filepath.Base(msg.Path) + "..."
			cmds = append(cmds, m.openPlaylist(msg.Path))
		} else {
			m.status = "Reading " + filepath.Base(msg.Path) + "..."
			cmds = append(cmds, m.loadTracks(msg.Path))
		}

	case views.DirChosenMsg:
		m.browsing = false
		m.status = "Scanning " + msg.Path + "..."
		cmds = append(cmds, m.loadTracks(msg.Path))

	case TracksLoadedMsg:
		m.addTracks(msg.Tracks)
		m.setErr(msg.Err)

	case PlaylistLoadedMsg:
		if msg.Err != nil {
			m.setErr(msg.Err)
			break
		}
		m.setErr(m.engine.UpdatePlaylist(msg.Playlist))
		if err := m.watchPlaylistFile(); err != nil {
			m.logger.Warn("cannot watch playlist file", "error", err)
		}
		m.playlistView.Select(0)
		m.markChanged()
		m.status = fmt.Sprintf("Opened %s", msg.Playlist.Name())

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}

		if m.browsing {
			var cmd tea.Cmd
			m.browserView, cmd = m.browserView.Update(msg)
			return m, cmd
		}

		m.err = nil
		if !key.Matches(msg, m.keys.Quit) {
			m.confirmQuit = false
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			if !m.saved && !m.confirmQuit {
				m.confirmQuit = true
				m.status = "Playlist has unsaved changes, press " + m.keys.Quit.Help().Key + " again to quit"
				return m, nil
			}
			return m, m.quit()

		case key.Matches(msg, m.keys.PlayPause):
			m.setErr(m.engine.PlayPause())

		case key.Matches(msg, m.keys.Next):
			m.setErr(m.engine.SkipForward())

		case key.Matches(msg, m.keys.Previous):
			m.setErr(m.engine.SkipBack())

		case key.Matches(msg, m.keys.SeekForward):
			m.setErr(m.engine.SetProgress(m.engine.Progress() + m.seekStep()))

		case key.Matches(msg, m.keys.SeekBack):
			m.setErr(m.engine.SetProgress(m.engine.Progress() - m.seekStep()))

		case key.Matches(msg, m.keys.PlaySelect):
			if i := m.playlistView.SelectedIndex(); i >= 0 {
				m.setErr(m.engine.Play(i))
			}

		case key.Matches(msg, m.keys.MoveUp):
			m.moveSelected(-1)

		case key.Matches(msg, m.keys.MoveDown):
			m.moveSelected(1)

		case key.Matches(msg, m.keys.Remove):
			if i := m.playlistView.SelectedIndex(); i >= 0 {
				if err := m.engine.Playlist().Remove(i); err != nil {
					m.setErr(err)
				} else {
					m.markChanged()
				}
			}

		case key.Matches(msg, m.keys.Add):
			m.browsing = true
			m.browserView = views.NewBrowserView(m.cfg.DefaultBrowserDir, m.browserExtensions(), m.width, m.height-2)

		case key.Matches(msg, m.keys.Save):
			m.save()

		case key.Matches(msg, m.keys.SplitFirst):
			m.split(true)

		case key.Matches(msg, m.keys.SplitSecond):
			m.split(false)

		case msg.String() == "?":
			m.help.ShowAll = !m.help.ShowAll

		default:
			var cmd tea.Cmd
			m.playlistView, cmd = m.playlistView.Update(msg)
			cmds = append(cmds, cmd)
		}
		m.refresh()
	}

	return m, tea.Batch(cmds...)
}

// quit stops background work before leaving the program
func (m Model) quit() tea.Cmd {
	m.cancel()
	if err := m.watcher.Close(); err != nil {
		m.logger.Warn("close playlist watcher", "error", err)
	}
	return tea.Quit
}

func (m *Model) setErr(err error) {
	if err == nil {
		return
	}
	m.err = err
	m.logger.Warn("player action failed", "error", err)
}

// refresh copies engine and playlist state into the views
func (m *Model) refresh() {
	state := m.engine.GetState()
	m.playerView.SetState(state)
	m.playlistView.SetPlaylist(m.engine.Playlist(), state.CurrentTrack, m.saved)
}

// markChanged recomputes the saved flag after the playlist was edited
func (m *Model) markChanged() {
	m.saved = m.engine.Playlist().IsSaved()
	m.refresh()
}

// seekStep is a twentieth of the current file
func (m Model) seekStep() int64 {
	return max(m.engine.Length()/20, 1)
}

func (m *Model) moveSelected(delta int) {
	pl := m.engine.Playlist()
	i := m.playlistView.SelectedIndex()
	j := i + delta
	if i < 0 || j < 0 || j >= pl.Size() {
		return
	}
	if err := pl.Move(i, j); err != nil {
		m.setErr(err)
		return
	}
	m.markChanged()
	m.playlistView.Select(j)
}

// addTracks appends tracks; the first track added to an empty playlist
// becomes the engine's current track
func (m *Model) addTracks(tracks []*api.Track) {
	if len(tracks) == 0 {
		m.status = "No tracks found"
		return
	}
	pl := m.engine.Playlist()
	for _, t := range tracks {
		if pl.Add(t) == 1 {
			m.setErr(m.engine.SetCurrentTrack(t))
		}
	}
	m.markChanged()
	m.status = fmt.Sprintf("Added %d track(s)", len(tracks))
}

func (m Model) loadTracks(path string) tea.Cmd {
	ctx, scanner := m.ctx, m.scanner
	return func() tea.Msg {
		tracks, err := scanner.Scan(ctx, []string{path})
		return TracksLoadedMsg{Tracks: tracks, Err: err}
	}
}

func (m Model) openPlaylist(path string) tea.Cmd {
	ctx, scanner := m.ctx, m.scanner
	return func() tea.Msg {
		pl, err := playlist.Parse(ctx, path, scanner)
		return PlaylistLoadedMsg{Playlist: pl, Err: err}
	}
}

// save writes the playlist to its file, or to the playlist directory when
// it has none yet
func (m *Model) save() {
	pl := m.engine.Playlist()

	var err error
	if pl.File() != "" {
		err = pl.Save(playlist.FormatFromPath(pl.File()))
	} else {
		path := filepath.Join(m.cfg.DefaultPlaylistDir, playlistFileName(pl.Name()))
		err = pl.SaveAs(path, playlist.FormatWPL)
		if err == nil {
			if werr := m.watchPlaylistFile(); werr != nil {
				m.logger.Warn("cannot watch playlist file", "error", werr)
			}
		}
	}
	if err != nil {
		m.setErr(err)
		return
	}

	m.markChanged()
	m.status = "Saved " + pl.File()
	m.logger.Info("playlist saved", "file", pl.File(), "tracks", pl.Size())
}

// split writes the part of the current track before or after the playback
// position next to the source file
func (m *Model) split(keepFirstHalf bool) {
	track := m.engine.CurrentTrack()
	if track == nil {
		m.setErr(playerrors.ErrNoCurrentTrack)
		return
	}

	suffix := "_part2"
	if keepFirstHalf {
		suffix = "_part1"
	}
	ext := filepath.Ext(track.Path)
	dest := strings.TrimSuffix(track.Path, ext) + suffix + ext

	if err := m.engine.SplitCurrentTrack(dest, keepFirstHalf); err != nil {
		m.setErr(err)
		return
	}
	m.status = "Wrote " + dest
}

func (m *Model) watchPlaylistFile() error {
	return m.watcher.Watch(m.engine.Playlist().File())
}

// playlistFileName derives a file name from the playlist name
func playlistFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "playlist"
	}
	name = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == filepath.Separator {
			return '_'
		}
		return r
	}, name)
	return name + ".wpl"
}

// updateViewSizes updates view dimensions
func (m *Model) updateViewSizes() {
	m.playerView.SetWidth(m.width)
	m.playlistView.SetSize(m.width, m.height-14)
	m.browserView.SetSize(m.width, m.height-2)
	m.help.Width = m.width
}

// View renders the UI
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.headerStyle.Render("♫ wplayer"))
	sb.WriteString("\n")

	if m.browsing {
		sb.WriteString(m.browserView.View())
		return sb.String()
	}

	sb.WriteString(m.playerView.View())
	sb.WriteString("\n")
	sb.WriteString(m.playlistView.View())
	sb.WriteString("\n")

	if m.err != nil {
		sb.WriteString(m.errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	} else if m.status != "" {
		sb.WriteString(m.statusStyle.Render(m.status))
	}
	sb.WriteString("\n")
	sb.WriteString(m.statusStyle.Render(m.help.View(m.keys)))

	return sb.String()
}

// browserExtensions are the files the add browser offers: whatever the
// scanner accepts plus playlist files
func (m Model) browserExtensions() []string {
	return append(slices.Clone(m.scanner.SupportedFormats()), ".wpl")
}

// Run starts the bubbletea program
func Run(engine *audio.Engine, scanner *library.Scanner, cfg *config.Config, logger *slog.Logger) error {
	model, err := NewModel(engine, scanner, cfg, logger)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
