package storage

import (
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"
)

func TestSave_WritesFileAndReturnsReference(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "videos")
	store, err := NewLocal(dir, 1)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}

	ref, err := store.Save(strings.NewReader("fake video bytes"), "answer.webm")
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !strings.HasPrefix(ref, PublicMount+"/") {
		t.Errorf("reference = %q, want prefix %q", ref, PublicMount+"/")
	}
	if !strings.HasSuffix(ref, "answer.webm") {
		t.Errorf("reference = %q, want original name preserved", ref)
	}

	// the file itself lives directly under Dir, named by the reference's
	// final segment
	name := path.Base(ref)
	data, err := os.ReadFile(filepath.Join(store.Dir, name))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "fake video bytes" {
		t.Errorf("stored content = %q", data)
	}
}

func TestSave_ReferenceNeverEmbedsDir(t *testing.T) {
	// an absolute upload dir must not leak into the reference
	dir := filepath.Join(t.TempDir(), "videos")
	if !filepath.IsAbs(dir) {
		t.Fatalf("test dir %q is not absolute", dir)
	}
	store, err := NewLocal(dir, 1)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}

	ref, err := store.Save(strings.NewReader("x"), "clip.webm")
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if strings.Contains(ref, "//") {
		t.Errorf("reference = %q contains a double slash", ref)
	}
	if strings.Contains(ref, dir) {
		t.Errorf("reference = %q embeds the upload dir %q", ref, dir)
	}
	if path.Dir(ref) != PublicMount {
		t.Errorf("reference = %q, want a flat name directly under %q", ref, PublicMount)
	}
}

func TestSave_UniqueNamesForSameFilename(t *testing.T) {
	store, err := NewLocal(filepath.Join(t.TempDir(), "videos"), 1)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}

	first, err := store.Save(strings.NewReader("a"), "clip.webm")
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	second, err := store.Save(strings.NewReader("b"), "clip.webm")
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if first == second {
		t.Errorf("both uploads stored at %q, want distinct references", first)
	}
}

func TestSave_RejectsOversizedUpload(t *testing.T) {
	store, err := NewLocal(filepath.Join(t.TempDir(), "videos"), 1) // 1 MB limit
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}

	big := strings.NewReader(strings.Repeat("x", 1024*1024+1))
	if _, err := store.Save(big, "huge.webm"); err == nil {
		t.Fatal("Save() error = nil, want size limit rejection")
	}

	// nothing is left behind on rejection
	entries, err := os.ReadDir(store.Dir)
	if err != nil {
		t.Fatalf("read upload dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("upload dir has %d files after rejected upload, want 0", len(entries))
	}
}

func TestSave_SanitizesClientFilenames(t *testing.T) {
	store, err := NewLocal(filepath.Join(t.TempDir(), "videos"), 1)
	if err != nil {
		t.Fatalf("NewLocal() error = %v", err)
	}

	tests := []struct {
		name string
		want string
	}{
		{"../../etc/passwd", "passwd"},
		{"..\\..\\evil.webm", "evil.webm"},
		{"my answer (final).webm", "my_answer__final_.webm"},
		{"", "upload"},
	}
	for _, tt := range tests {
		ref, err := store.Save(strings.NewReader("x"), tt.name)
		if err != nil {
			t.Fatalf("Save(%q) error = %v", tt.name, err)
		}
		if !strings.HasSuffix(ref, tt.want) {
			t.Errorf("Save(%q) reference = %q, want suffix %q", tt.name, ref, tt.want)
		}
		if strings.Contains(ref[1:], "..") {
			t.Errorf("Save(%q) reference %q escapes the upload dir", tt.name, ref)
		}
	}
}
