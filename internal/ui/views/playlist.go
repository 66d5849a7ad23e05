package views

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jscyril/wpl_player/api"
	"github.com/jscyril/wpl_player/internal/playlist"
	"github.com/jscyril/wpl_player/internal/ui/components"
)

// PlaylistView shows the playlist details and its tracks
type PlaylistView struct {
	Width     int
	Height    int
	TrackList components.TrackList

	name     string
	author   string
	file     string
	size     int
	playTime string
	saved    bool

	BorderStyle lipgloss.Style
	TitleStyle  lipgloss.Style
	InfoStyle   lipgloss.Style
	SavedStyle  lipgloss.Style
	DirtyStyle  lipgloss.Style
}

// NewPlaylistView creates a new playlist view
func NewPlaylistView(width, height int) PlaylistView {
	return PlaylistView{
		Width:     width,
		Height:    height,
		TrackList: components.NewTrackList(height-6, width-6),
		BorderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 2),
		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")),
		InfoStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")),
		SavedStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")),
		DirtyStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true),
	}
}

// SetPlaylist refreshes the details and tracks from pl
func (v *PlaylistView) SetPlaylist(pl *playlist.Playlist, current *api.Track, saved bool) {
	v.name = pl.Name()
	v.author = pl.Author()
	v.file = pl.File()
	v.size = pl.Size()
	v.playTime = pl.PlayTime()
	v.saved = saved
	v.TrackList.Current = current
	v.TrackList.SetItems(pl.Tracks())
}

// SetSize resizes the view
func (v *PlaylistView) SetSize(width, height int) {
	v.Width = width
	v.Height = height
	v.TrackList.Width = width - 6
	v.TrackList.Height = height - 6
	v.TrackList.Select(v.TrackList.Selected)
}

// SelectedIndex returns the index of the highlighted track, or -1
func (v *PlaylistView) SelectedIndex() int {
	if v.TrackList.SelectedItem() == nil {
		return -1
	}
	return v.TrackList.Selected
}

// Select highlights the track at index
func (v *PlaylistView) Select(index int) {
	v.TrackList.Select(index)
}

// Update handles messages
func (v PlaylistView) Update(msg tea.Msg) (PlaylistView, tea.Cmd) {
	var cmd tea.Cmd
	v.TrackList, cmd = v.TrackList.Update(msg)
	return v, cmd
}

// Header renders the playlist details line
func (v PlaylistView) Header() string {
	name := v.name
	if name == "" {
		name = "Untitled"
	}

	var sb strings.Builder
	sb.WriteString(v.TitleStyle.Render("📋 " + name))
	if v.author != "" {
		sb.WriteString(v.InfoStyle.Render(" by " + v.author))
	}
	sb.WriteString(v.InfoStyle.Render(fmt.Sprintf("  %d tracks · %s", v.size, v.playTime)))
	sb.WriteString("  ")
	if v.saved {
		sb.WriteString(v.SavedStyle.Render("✓ saved"))
	} else {
		sb.WriteString(v.DirtyStyle.Render("● unsaved"))
	}
	if v.file != "" {
		sb.WriteString("\n")
		sb.WriteString(v.InfoStyle.Render(filepath.Base(v.file)))
	}
	return sb.String()
}

// View renders the playlist view
func (v PlaylistView) View() string {
	var sb strings.Builder
	sb.WriteString(v.Header())
	sb.WriteString("\n\n")
	sb.WriteString(v.TrackList.View())

	return v.BorderStyle.Width(max(v.Width-4, 10)).Render(sb.String())
}
