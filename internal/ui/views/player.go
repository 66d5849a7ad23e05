package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jscyril/wpl_player/api"
	"github.com/jscyril/wpl_player/internal/playlist"
	"github.com/jscyril/wpl_player/internal/ui/components"
)

// coverSize is the thumbnail edge in pixels; it renders as coverSize/2 lines
const coverSize = 16

// PlayerView displays the current playback state
type PlayerView struct {
	Width       int
	Height      int
	State       *api.PlaybackState
	ProgressBar components.ProgressBar

	coverTrack *api.Track
	cover      string

	// Styles
	TitleStyle  lipgloss.Style
	ArtistStyle lipgloss.Style
	AlbumStyle  lipgloss.Style
	StatusStyle lipgloss.Style
	BorderStyle lipgloss.Style
}

// NewPlayerView creates a new player view
func NewPlayerView(width, height int) PlayerView {
	return PlayerView{
		Width:       width,
		Height:      height,
		ProgressBar: components.NewProgressBar(width - 4),
		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")),
		ArtistStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")),
		AlbumStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true),
		StatusStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true),
		BorderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 2),
	}
}

// SetState updates the playback state
func (v *PlayerView) SetState(state *api.PlaybackState) {
	v.State = state
	if state == nil {
		return
	}
	v.ProgressBar.SetProgress(state.Progress, state.Length)

	if state.CurrentTrack != v.coverTrack {
		v.coverTrack = state.CurrentTrack
		v.cover = ""
		if state.CurrentTrack != nil {
			v.cover = components.RenderCover(state.CurrentTrack.Thumbnail(coverSize))
		}
	}
}

// SetWidth resizes the view and its progress bar
func (v *PlayerView) SetWidth(width int) {
	v.Width = width
	v.ProgressBar.Width = width - 8
}

// Update handles messages
func (v PlayerView) Update(msg tea.Msg) (PlayerView, tea.Cmd) {
	return v, nil
}

// View renders the player view
func (v PlayerView) View() string {
	var sb strings.Builder

	if v.State == nil || v.State.CurrentTrack == nil {
		sb.WriteString(v.TitleStyle.Render("♪ No track"))
		sb.WriteString("\n\n")
		sb.WriteString(v.AlbumStyle.Render("Add tracks to the playlist to start"))
		return v.BorderStyle.Width(max(v.Width-4, 10)).Render(sb.String())
	}

	track := v.State.CurrentTrack

	var statusIcon string
	switch v.State.Status {
	case api.StatusPlaying:
		statusIcon = "▶"
	case api.StatusPaused:
		statusIcon = "⏸"
	default:
		statusIcon = "⏹"
	}

	sb.WriteString(v.StatusStyle.Render(statusIcon + " " + v.State.Status.String() + "  "))
	sb.WriteString(v.TitleStyle.Render(track.Title))
	sb.WriteString("\n")
	sb.WriteString(v.ArtistStyle.Render(track.Artist))
	sb.WriteString("\n")
	sb.WriteString(v.AlbumStyle.Render(track.Album + " · " + playlist.FormatPlayTime(track.Duration)))
	sb.WriteString("\n\n")
	bar := v.ProgressBar
	if v.cover != "" {
		bar.Width -= coverSize + 2
	}
	sb.WriteString(bar.View())

	body := sb.String()
	if v.cover != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, v.cover, "  ", body)
	}

	return v.BorderStyle.Width(max(v.Width-4, 10)).Render(body)
}
