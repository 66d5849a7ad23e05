package views

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jscyril/wpl_player/internal/ui/components"
)

// FileChosenMsg is sent when a file is picked in the browser
type FileChosenMsg struct {
	Path string
}

// DirChosenMsg is sent when a whole directory is picked in the browser
type DirChosenMsg struct {
	Path string
}

// BrowserClosedMsg is sent when the browser is dismissed
type BrowserClosedMsg struct{}

// BrowserView wraps the file browser used to add tracks and open playlists
type BrowserView struct {
	Width       int
	Height      int
	Extensions  []string
	FileBrowser components.FileBrowser
}

// NewBrowserView creates a browser listing files with the given extensions
func NewBrowserView(startDir string, extensions []string, width, height int) BrowserView {
	return BrowserView{
		Width:       width,
		Height:      height,
		Extensions:  extensions,
		FileBrowser: components.NewFileBrowser(startDir, extensions, width, height),
	}
}

// SetSize resizes the view
func (v *BrowserView) SetSize(width, height int) {
	v.Width = width
	v.Height = height
	v.FileBrowser.Width = width
	v.FileBrowser.Height = height
}

// Update handles messages
func (v BrowserView) Update(msg tea.Msg) (BrowserView, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch keyMsg.String() {
	case "esc":
		return v, func() tea.Msg { return BrowserClosedMsg{} }
	case "enter":
		// Directories are navigated, files are handed back
		if path := v.FileBrowser.EnterSelected(); path != "" {
			return v, func() tea.Msg { return FileChosenMsg{Path: path} }
		}
		return v, nil
	case "a":
		entry := v.FileBrowser.SelectedEntry()
		dir := v.FileBrowser.CurrentPath
		if entry != nil && entry.IsDir && entry.Name != ".." {
			dir = entry.Path
		}
		return v, func() tea.Msg { return DirChosenMsg{Path: dir} }
	default:
		var cmd tea.Cmd
		v.FileBrowser, cmd = v.FileBrowser.Update(msg)
		return v, cmd
	}
}

// View renders the browser
func (v BrowserView) View() string {
	return v.FileBrowser.View()
}
