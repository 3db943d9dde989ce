package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestWalker_IncludesAndExcludes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.txt"), "BBBB 2\n")
	writeFile(t, filepath.Join(root, "a.txt"), "AAAA 1\n")
	writeFile(t, filepath.Join(root, "notes.md"), "# notes\n")
	writeFile(t, filepath.Join(root, "sub", "c.txt"), "CCCC 3\n")
	writeFile(t, filepath.Join(root, "skip", "d.txt"), "DDDD 4\n")

	w := NewWalker([]string{"**/*.txt"}, []string{"skip/**"})
	files, err := w.Walk(context.Background(), root)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"a.txt", "b.txt", "sub/c.txt"}
	if len(files) != len(want) {
		t.Fatalf("expected %d files, got %d: %+v", len(want), len(files), files)
	}
	for i, f := range files {
		if f.RelPath != want[i] {
			t.Errorf("file %d: expected %s, got %s", i, want[i], f.RelPath)
		}
	}
}

func TestWalker_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "AAAA 1\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewWalker(nil, nil).Walk(ctx, root); err == nil {
		t.Error("expected context error")
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.txt")
	writeFile(t, path, "TION 5\n")

	got, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != "TION 5\n" {
		t.Errorf("expected file contents, got %q", got)
	}
}
