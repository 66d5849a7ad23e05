package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jscyril/wpl_player/api"
	"github.com/jscyril/wpl_player/internal/playlist"
)

// TrackList represents a scrollable list of tracks
type TrackList struct {
	Items         []*api.Track
	Current       *api.Track // marked as the engine's current track
	Selected      int
	Height        int
	Width         int
	Offset        int
	Title         string
	SelectedStyle lipgloss.Style
	NormalStyle   lipgloss.Style
	CurrentStyle  lipgloss.Style
	TitleStyle    lipgloss.Style
}

// NewTrackList creates a new track list
func NewTrackList(height, width int) TrackList {
	return TrackList{
		Items:  make([]*api.Track, 0),
		Height: height,
		Width:  width,
		SelectedStyle: lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")).
			Bold(true).
			Padding(0, 1),
		NormalStyle: lipgloss.NewStyle().
			Padding(0, 1),
		CurrentStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Padding(0, 1),
		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			MarginBottom(1),
	}
}

// SetItems replaces the list items, keeping the selection in range
func (l *TrackList) SetItems(items []*api.Track) {
	l.Items = items
	l.Select(l.Selected)
}

// Select moves the selection to index, clamped to the list
func (l *TrackList) Select(index int) {
	l.Selected = min(max(index, 0), max(len(l.Items)-1, 0))
	l.ensureVisible()
}

// Update handles messages for the track list
func (l TrackList) Update(msg tea.Msg) (TrackList, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home":
			l.Select(0)
		case "end":
			l.Select(len(l.Items) - 1)
		case "pgup":
			l.Select(l.Selected - l.visibleHeight())
		case "pgdown":
			l.Select(l.Selected + l.visibleHeight())
		}
	}
	return l, nil
}

// MoveUp moves selection up
func (l *TrackList) MoveUp() {
	if l.Selected > 0 {
		l.Select(l.Selected - 1)
	}
}

// MoveDown moves selection down
func (l *TrackList) MoveDown() {
	if l.Selected < len(l.Items)-1 {
		l.Select(l.Selected + 1)
	}
}

func (l *TrackList) visibleHeight() int {
	// Account for title and scroll indicator
	return max(l.Height-2, 1)
}

// ensureVisible ensures the selected item is visible
func (l *TrackList) ensureVisible() {
	visible := l.visibleHeight()
	if l.Selected < l.Offset {
		l.Offset = l.Selected
	} else if l.Selected >= l.Offset+visible {
		l.Offset = l.Selected - visible + 1
	}
}

// SelectedItem returns the currently selected track
func (l *TrackList) SelectedItem() *api.Track {
	if l.Selected >= 0 && l.Selected < len(l.Items) {
		return l.Items[l.Selected]
	}
	return nil
}

// View renders the track list
func (l TrackList) View() string {
	var sb strings.Builder

	if l.Title != "" {
		sb.WriteString(l.TitleStyle.Render(l.Title))
		sb.WriteString("\n")
	}

	if len(l.Items) == 0 {
		sb.WriteString(l.NormalStyle.Render("No tracks"))
		return sb.String()
	}

	visible := l.visibleHeight()
	end := min(l.Offset+visible, len(l.Items))

	for i := l.Offset; i < end; i++ {
		line := FormatTrackLine(i, l.Items[i], l.Items[i] == l.Current)
		line = truncate(line, l.Width-2)

		switch {
		case i == l.Selected:
			sb.WriteString(l.SelectedStyle.Render(line))
		case l.Items[i] == l.Current:
			sb.WriteString(l.CurrentStyle.Render(line))
		default:
			sb.WriteString(l.NormalStyle.Render(line))
		}

		if i < end-1 {
			sb.WriteString("\n")
		}
	}

	if len(l.Items) > visible {
		sb.WriteString("\n")
		sb.WriteString(l.NormalStyle.Render(fmt.Sprintf("  [%d/%d]", l.Selected+1, len(l.Items))))
	}

	return sb.String()
}

// FormatTrackLine renders one playlist row
func FormatTrackLine(index int, track *api.Track, current bool) string {
	marker := " "
	if current {
		marker = "♪"
	}
	return fmt.Sprintf("%s%3d. %s - %s [%s] %s",
		marker,
		index+1,
		truncate(track.Artist, 20),
		truncate(track.Title, 30),
		truncate(track.Album, 20),
		playlist.FormatPlayTime(track.Duration),
	)
}

// truncate shortens s to at most maxLen runes
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if maxLen <= 0 || len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
