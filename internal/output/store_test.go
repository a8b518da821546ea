package output

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to create %s: %v", name, err)
	}
}

func TestNextFilename(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{"empty directory", nil, "img1.png"},
		{"contiguous sequence", []string{"img1.png", "img2.png", "img3.png"}, "img4.png"},
		{"gap is not reused", []string{"img1.png", "img3.png"}, "img4.png"},
		{"unrelated files ignored", []string{"notes.txt", "imgX.png", "img.png", "banner2.png"}, "img1.png"},
		{"large index", []string{"img99.png"}, "img100.png"},
		{"prefix match only", []string{"img7.png.bak", "aimg8.png"}, "img1.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.existing {
				touch(t, dir, f)
			}

			got, err := NewStore(dir).NextFilename()
			if err != nil {
				t.Fatalf("NextFilename() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("NextFilename() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNextFilename_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")

	got, err := NewStore(dir).NextFilename()
	if err != nil {
		t.Fatalf("NextFilename() error = %v", err)
	}
	if got != "img1.png" {
		t.Errorf("NextFilename() = %q, want img1.png", got)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("output directory was not created: %v", err)
	}
}

func TestSave(t *testing.T) {
	t.Run("writes first file in empty directory", func(t *testing.T) {
		dir := t.TempDir()
		store := NewStore(dir)

		name, err := store.Save([]byte("banner-bytes"))
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if name != "img1.png" {
			t.Errorf("Save() = %q, want img1.png", name)
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("reading saved file: %v", err)
		}
		if string(data) != "banner-bytes" {
			t.Errorf("saved content = %q, want banner-bytes", data)
		}
	})

	t.Run("never overwrites existing files", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "img1.png")
		touch(t, dir, "img2.png")
		store := NewStore(dir)

		name, err := store.Save([]byte("new"))
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if name != "img3.png" {
			t.Errorf("Save() = %q, want img3.png", name)
		}

		// Earlier files untouched.
		for _, f := range []string{"img1.png", "img2.png"} {
			data, err := os.ReadFile(filepath.Join(dir, f))
			if err != nil {
				t.Fatal(err)
			}
			if string(data) != "x" {
				t.Errorf("%s was overwritten: %q", f, data)
			}
		}
	})

	t.Run("sequence across repeated saves", func(t *testing.T) {
		dir := t.TempDir()
		store := NewStore(dir)
		for i, want := range []string{"img1.png", "img2.png", "img3.png"} {
			name, err := store.Save([]byte{byte(i)})
			if err != nil {
				t.Fatalf("Save() #%d error = %v", i+1, err)
			}
			if name != want {
				t.Errorf("Save() #%d = %q, want %q", i+1, name, want)
			}
		}
	})

	t.Run("unwritable directory yields ErrWrite", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("running as root, permission bits are not enforced")
		}
		dir := t.TempDir()
		if err := os.Chmod(dir, 0o555); err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { os.Chmod(dir, 0o755) })

		_, err := NewStore(dir).Save([]byte("x"))
		if !errors.Is(err, ErrWrite) {
			t.Errorf("Save() error = %v, want ErrWrite", err)
		}
	})
}
