package split

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	data := make([]byte, 1000)
	for i := range data {
		data[i] = byte(i % 251)
	}
	track := filepath.Join(dir, "song.mp3")
	if err := os.WriteFile(track, data, 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		at     int
		second bool
		want   []byte
	}{
		{"first part", 300, false, data[:300]},
		{"second part", 300, true, data[300:]},
		{"clamped past end", 5000, false, data},
		{"at start", 0, false, []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "part.mp3")
			var stdout, stderr bytes.Buffer

			code := Run(&Params{Track: track, At: tt.at, Output: out, Second: tt.second}, &stdout, &stderr)
			if code != 0 {
				t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
			}

			got, err := os.ReadFile(out)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("wrote %d bytes, want %d", len(got), len(tt.want))
			}
		})
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	notAudio := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notAudio, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		track string
	}{
		{"missing", filepath.Join(dir, "none.mp3")},
		{"unsupported", notAudio},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := Run(&Params{Track: tt.track, Output: filepath.Join(dir, "out.mp3")}, &stdout, &stderr)
			if code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
		})
	}
}
