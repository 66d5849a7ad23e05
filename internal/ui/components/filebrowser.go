package components

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

// FileEntry represents a file or directory in the browser
type FileEntry struct {
	Name  string
	Path  string
	IsDir bool
}

// FileBrowser is a component for navigating the filesystem
type FileBrowser struct {
	Width       int
	Height      int
	CurrentPath string
	Entries     []FileEntry
	Selected    int
	Offset      int
	Extensions  []string // lower-case, with the leading dot
	Err         error

	// Styles
	DirStyle      lipgloss.Style
	FileStyle     lipgloss.Style
	SelectedStyle lipgloss.Style
	PathStyle     lipgloss.Style
	BorderStyle   lipgloss.Style
}

// NewFileBrowser creates a file browser at startPath listing only files
// with one of the given extensions
func NewFileBrowser(startPath string, extensions []string, width, height int) FileBrowser {
	fb := FileBrowser{
		Width:      width,
		Height:     height,
		Extensions: extensions,
		DirStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true),
		FileStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")),
		SelectedStyle: lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("255")).
			Bold(true),
		PathStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true),
		BorderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2),
	}

	if startPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			startPath = "/"
		} else {
			startPath = home
		}
	}
	if abs, err := filepath.Abs(startPath); err == nil {
		startPath = abs
	}

	fb.Navigate(startPath)
	return fb
}

// Navigate changes to the specified directory
func (fb *FileBrowser) Navigate(path string) {
	fb.CurrentPath = path
	fb.Selected = 0
	fb.Offset = 0
	fb.Err = nil

	entries, err := os.ReadDir(path)
	if err != nil {
		fb.Err = err
		fb.Entries = nil
		return
	}

	fb.Entries = make([]FileEntry, 0, len(entries)+1)

	if parent := filepath.Dir(path); parent != path {
		fb.Entries = append(fb.Entries, FileEntry{
			Name:  "..",
			Path:  parent,
			IsDir: true,
		})
	}

	var dirs, files []FileEntry
	for _, entry := range entries {
		// Skip hidden files
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		e := FileEntry{
			Name:  entry.Name(),
			Path:  filepath.Join(path, entry.Name()),
			IsDir: entry.IsDir(),
		}
		switch {
		case e.IsDir:
			dirs = append(dirs, e)
		case lo.Contains(fb.Extensions, strings.ToLower(filepath.Ext(e.Name))):
			files = append(files, e)
		}
	}

	byName := func(a, b FileEntry) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	}
	slices.SortFunc(dirs, byName)
	slices.SortFunc(files, byName)

	// Directories first, then files
	fb.Entries = append(fb.Entries, dirs...)
	fb.Entries = append(fb.Entries, files...)
}

// Update handles input messages
func (fb FileBrowser) Update(msg tea.Msg) (FileBrowser, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			fb.selectIndex(fb.Selected - 1)
		case "down", "j":
			fb.selectIndex(fb.Selected + 1)
		case "pgup":
			fb.selectIndex(fb.Selected - fb.visibleHeight())
		case "pgdown":
			fb.selectIndex(fb.Selected + fb.visibleHeight())
		case "home":
			fb.selectIndex(0)
		case "end":
			fb.selectIndex(len(fb.Entries) - 1)
		case "backspace":
			if parent := filepath.Dir(fb.CurrentPath); parent != fb.CurrentPath {
				fb.Navigate(parent)
			}
		case "~":
			if home, err := os.UserHomeDir(); err == nil {
				fb.Navigate(home)
			}
		}
	}
	return fb, nil
}

func (fb *FileBrowser) selectIndex(i int) {
	fb.Selected = min(max(i, 0), max(len(fb.Entries)-1, 0))
	fb.ensureVisible()
}

// SelectedEntry returns the currently selected entry, or nil if none
func (fb *FileBrowser) SelectedEntry() *FileEntry {
	if fb.Selected >= 0 && fb.Selected < len(fb.Entries) {
		return &fb.Entries[fb.Selected]
	}
	return nil
}

// EnterSelected handles Enter on the selected entry.
// Returns the file path if a file was selected, empty string if navigated to dir
func (fb *FileBrowser) EnterSelected() string {
	entry := fb.SelectedEntry()
	if entry == nil {
		return ""
	}

	if entry.IsDir {
		fb.Navigate(entry.Path)
		return ""
	}

	return entry.Path
}

// FileCount returns the number of listed files
func (fb *FileBrowser) FileCount() int {
	return lo.CountBy(fb.Entries, func(e FileEntry) bool { return !e.IsDir })
}

// visibleHeight returns the number of visible items
func (fb *FileBrowser) visibleHeight() int {
	// Account for border, path, help
	return max(fb.Height-8, 1)
}

// ensureVisible ensures the selected item is visible
func (fb *FileBrowser) ensureVisible() {
	visible := fb.visibleHeight()
	if fb.Selected < fb.Offset {
		fb.Offset = fb.Selected
	} else if fb.Selected >= fb.Offset+visible {
		fb.Offset = fb.Selected - visible + 1
	}
}

// View renders the file browser
func (fb FileBrowser) View() string {
	var sb strings.Builder

	sb.WriteString(fb.PathStyle.Render("📁 " + fb.CurrentPath))
	sb.WriteString("\n\n")

	if fb.Err != nil {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
		sb.WriteString(errorStyle.Render("Error: " + fb.Err.Error()))
		sb.WriteString("\n")
	}

	visible := fb.visibleHeight()
	end := min(fb.Offset+visible, len(fb.Entries))

	for i := fb.Offset; i < end; i++ {
		entry := fb.Entries[i]

		var line string
		switch {
		case entry.IsDir:
			line = "📂 " + entry.Name
		case strings.EqualFold(filepath.Ext(entry.Name), ".wpl"):
			line = "📋 " + entry.Name
		default:
			line = "🎵 " + entry.Name
		}
		line = truncate(line, fb.Width-10)

		switch {
		case i == fb.Selected:
			sb.WriteString(fb.SelectedStyle.Render(line))
		case entry.IsDir:
			sb.WriteString(fb.DirStyle.Render(line))
		default:
			sb.WriteString(fb.FileStyle.Render(line))
		}
		sb.WriteString("\n")
	}

	// Padding if not enough entries
	for i := end - fb.Offset; i < visible; i++ {
		sb.WriteString("\n")
	}

	countStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	sb.WriteString(countStyle.Render(strings.Repeat("─", 20) + "\n" + fmt.Sprintf("Files: %d", fb.FileCount())))

	sb.WriteString("\n\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	sb.WriteString(helpStyle.Render("[Enter] Open/Add  [a] Add folder  [Backspace] Up  [~] Home  [Esc] Cancel"))

	return fb.BorderStyle.Width(max(fb.Width-4, 10)).Render(sb.String())
}
