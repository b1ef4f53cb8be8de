package contract

import "testing"

// FuzzTruncatePath fuzzes TruncatePath with random paths and widths.
func FuzzTruncatePath(f *testing.F) {
	seeds := []struct {
		path  string
		width int
	}{
		{"src/main.go", 5},
		{"very/long/path/to/file.txt", 10},
		{"", 0},
		{"日本語/ファイル.go", 6},
	}
	for _, seed := range seeds {
		f.Add(seed.path, seed.width)
	}

	f.Fuzz(func(t *testing.T, path string, width int) {
		got := TruncatePath(path, width)
		if width > 3 && len([]rune(got)) > width {
			t.Errorf("TruncatePath(%q, %d) returned %d runes", path, width, len([]rune(got)))
		}
	})
}
