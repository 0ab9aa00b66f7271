package storage

import (
	"os"
	"strings"
	"testing"
)

// TestStageRelease
func TestStageRelease(t *testing.T) {
	staging, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path, err := staging.Stage("face.jpg", []byte("image bytes"))
	if err != nil {
		t.Fatalf("unable to stage, error %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("staged file unreadable, error %v", err)
	}
	if string(data) != "image bytes" {
		t.Errorf("wrong staged content %q", data)
	}
	staging.Release(path)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("staged file still exists after release")
	}
	// double release is allowed
	staging.Release(path)
}

// TestStageUniqueNames
func TestStageUniqueNames(t *testing.T) {
	staging, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	first, err := staging.Stage("webcam.jpg", []byte("a"))
	if err != nil {
		t.Fatal(err)
	}
	second, err := staging.Stage("webcam.jpg", []byte("b"))
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Errorf("concurrent stages of the same name collide: %s", first)
	}
	staging.Release(first)
	staging.Release(second)
}

// TestSanitize
func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"face.jpg":               "face.jpg",
		"../../etc/passwd":       "passwd",
		"my photo (1).png":       "my_photo__1_.png",
		"..":                     "unnamed",
		"":                       "unnamed",
		"virus.exe":              "virus.exe",
		"dir\\sub\\evil.png":     "evil.png",
	}
	for in, expected := range cases {
		if out := Sanitize(in); out != expected {
			t.Errorf("Sanitize(%q) = %q, expected %q", in, out, expected)
		}
	}
}

// TestSanitizeNoSeparators
func TestSanitizeNoSeparators(t *testing.T) {
	for _, in := range []string{"a/b/c.png", "/abs/path.jpg", "..\\..\\x.gif"} {
		out := Sanitize(in)
		if strings.ContainsAny(out, "/\\") {
			t.Errorf("Sanitize(%q) kept a separator: %q", in, out)
		}
	}
}
