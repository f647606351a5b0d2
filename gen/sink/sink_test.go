package sink

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"simple file", "module.pyi", false},
		{"nested file", "pkg/core.pyi", false},
		{"index stub", "pkg/core/__init__.pyi", false},
		{"empty", "", true},
		{"absolute", "/etc/passwd", true},
		{"windows drive", `C:\stubs\module.pyi`, true},
		{"traversal", "../escape.pyi", true},
		{"embedded traversal", "pkg/../../escape.pyi", true},
		{"not clean", "pkg//core.pyi", true},
		{"dot prefix", "./module.pyi", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestFilesystemSinkWrite(t *testing.T) {
	root := t.TempDir()
	s := NewFilesystemSink(root)
	ctx := context.Background()

	if err := s.WriteFile(ctx, "pkg/core.pyi", []byte("stub\n")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(root, "pkg", "core.pyi"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(content) != "stub\n" {
		t.Errorf("content = %q, want %q", content, "stub\n")
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Join(root, "pkg"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1", len(entries))
	}
}

func TestFilesystemSinkOverwrites(t *testing.T) {
	root := t.TempDir()
	s := NewFilesystemSink(root)
	ctx := context.Background()

	if err := s.WriteFile(ctx, "module.pyi", []byte("old")); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteFile(ctx, "module.pyi", []byte("new")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	content, _ := os.ReadFile(filepath.Join(root, "module.pyi"))
	if string(content) != "new" {
		t.Errorf("content = %q, want %q", content, "new")
	}
}

func TestFilesystemSinkRejectsInvalidPath(t *testing.T) {
	s := NewFilesystemSink(t.TempDir())
	if err := s.WriteFile(context.Background(), "../escape.pyi", []byte("x")); err == nil {
		t.Error("WriteFile accepted a traversal path")
	}
}

func TestFilesystemSinkCancelledContext(t *testing.T) {
	s := NewFilesystemSink(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.WriteFile(ctx, "module.pyi", []byte("x")); err == nil {
		t.Error("WriteFile ignored cancelled context")
	}
}

func TestMemorySink(t *testing.T) {
	s := NewMemorySink()
	ctx := context.Background()

	if err := s.WriteFile(ctx, "a.pyi", []byte("alpha")); err != nil {
		t.Fatal(err)
	}
	if err := s.WriteFile(ctx, "b.pyi", []byte("beta")); err != nil {
		t.Fatal(err)
	}

	if got := string(s.Get("a.pyi")); got != "alpha" {
		t.Errorf("Get(a.pyi) = %q", got)
	}
	if s.Get("missing.pyi") != nil {
		t.Error("Get returned content for a missing path")
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}

	// Returned content is a copy; mutating it does not affect the store.
	content := s.Get("a.pyi")
	content[0] = 'X'
	if got := string(s.Get("a.pyi")); got != "alpha" {
		t.Errorf("stored content mutated through Get copy: %q", got)
	}

	files := s.Files()
	if len(files) != 2 {
		t.Errorf("Files() returned %d entries, want 2", len(files))
	}
}
