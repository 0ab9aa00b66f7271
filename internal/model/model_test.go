package model

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestInferUnloaded
func TestInferUnloaded(t *testing.T) {
	handle := NewHandle("")
	if handle.Loaded() {
		t.Errorf("fresh handle reports loaded")
	}
	input := make([]float32, 1*128*128*3)
	if _, err := handle.Infer(input); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("expected ErrNotLoaded, got %v", err)
	}
}

// TestMetadataDefaults
func TestMetadataDefaults(t *testing.T) {
	handle := NewHandle("no-such-metadata.json")
	if len(handle.Metadata.Classes) != 2 {
		t.Errorf("wrong default classes %+v", handle.Metadata.Classes)
	}
	if handle.Metadata.ImageSize != 128 {
		t.Errorf("wrong default image size %d", handle.Metadata.ImageSize)
	}
	if len(handle.Metadata.InputShape) != 4 || handle.Metadata.InputShape[3] != 3 {
		t.Errorf("wrong default input shape %+v", handle.Metadata.InputShape)
	}
}

// TestMetadataFile
func TestMetadataFile(t *testing.T) {
	content := `{"input_shape":[1,64,64,3],"output_shape":[1,2],"classes":["a","b"],"image_size":64}`
	fname := filepath.Join(t.TempDir(), "model_metadata.json")
	if err := os.WriteFile(fname, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	handle := NewHandle(fname)
	if handle.Metadata.ImageSize != 64 {
		t.Errorf("metadata file not applied, image size %d", handle.Metadata.ImageSize)
	}
}

// TestMetadataBadFile
func TestMetadataBadFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "model_metadata.json")
	if err := os.WriteFile(fname, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	handle := NewHandle(fname)
	// unparsable metadata falls back to defaults
	if handle.Metadata.ImageSize != 128 {
		t.Errorf("defaults not restored, image size %d", handle.Metadata.ImageSize)
	}
}
