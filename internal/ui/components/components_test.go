package components

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jscyril/wpl_player/api"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"much longer text", 10, "much lo..."},
		{"abcdef", 3, "abc"},
		{"héllo wörld", 8, "héllo..."},
		{"anything", 0, "anything"},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0B"},
		{1023, "1023B"},
		{1536, "1.5KiB"},
		{3 << 20, "3.0MiB"},
	}

	for _, tt := range tests {
		if got := FormatBytes(tt.n); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestProgressBar_Percent(t *testing.T) {
	p := NewProgressBar(40)
	if p.Percent() != 0 {
		t.Errorf("empty bar Percent() = %v", p.Percent())
	}

	p.SetProgress(250, 1000)
	if p.Percent() != 0.25 {
		t.Errorf("Percent() = %v, want 0.25", p.Percent())
	}

	p.SetProgress(2000, 1000)
	if p.Percent() != 1 {
		t.Errorf("Percent() should clamp to 1, got %v", p.Percent())
	}
}

func TestTrackList_Selection(t *testing.T) {
	tracks := []*api.Track{{Title: "a"}, {Title: "b"}, {Title: "c"}}

	l := NewTrackList(10, 80)
	l.SetItems(tracks)
	l.MoveDown()
	l.MoveDown()
	l.MoveDown()
	if l.SelectedItem() != tracks[2] {
		t.Errorf("selection should stop at the last item")
	}

	l.SetItems(tracks[:1])
	if l.Selected != 0 {
		t.Errorf("selection should clamp after shrink, got %d", l.Selected)
	}

	l.SetItems(nil)
	if l.SelectedItem() != nil {
		t.Errorf("empty list should have no selection")
	}
}

func TestFormatTrackLine(t *testing.T) {
	track := &api.Track{Title: "Song", Artist: "Band", Album: "Record", Duration: 75 * time.Second}

	line := FormatTrackLine(0, track, true)
	for _, part := range []string{"♪", "1.", "Band - Song", "[Record]", "1m 15s"} {
		if !strings.Contains(line, part) {
			t.Errorf("FormatTrackLine() = %q, missing %q", line, part)
		}
	}
	if strings.Contains(FormatTrackLine(0, track, false), "♪") {
		t.Errorf("non-current track should not be marked")
	}
}

func TestRenderCover(t *testing.T) {
	if RenderCover(nil) != "" {
		t.Errorf("nil image should render empty")
	}

	img := image.NewRGBA(image.Rect(0, 0, 3, 4))
	for x := 0; x < 3; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}

	out := RenderCover(img)
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("4 pixel rows should give 2 lines, got %d newlines", got)
	}
	if got := strings.Count(out, "▀"); got != 6 {
		t.Errorf("expected 6 half blocks, got %d", got)
	}
}

func TestFileBrowser_Navigate(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.mp3", "A.WPL", "notes.txt", ".hidden.mp3"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}

	fb := NewFileBrowser(dir, []string{".mp3", ".wpl"}, 80, 30)
	if fb.Err != nil {
		t.Fatalf("Navigate error = %v", fb.Err)
	}

	var names []string
	for _, e := range fb.Entries {
		names = append(names, e.Name)
	}
	want := []string{"..", "sub", "A.WPL", "b.mp3"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("entries = %v, want %v", names, want)
	}
	if fb.FileCount() != 2 {
		t.Errorf("FileCount() = %d, want 2", fb.FileCount())
	}

	fb.Selected = 1
	if path := fb.EnterSelected(); path != "" {
		t.Errorf("entering a directory should return no path, got %q", path)
	}
	if fb.CurrentPath != filepath.Join(dir, "sub") {
		t.Errorf("CurrentPath = %q", fb.CurrentPath)
	}
}
